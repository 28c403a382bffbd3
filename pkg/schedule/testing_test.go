package schedule

import (
	"github.com/mission-control/core/pkg/models"
)

func job(id, name, expr string, enabled bool) models.JobRecord {
	return models.JobRecord{
		ID:       id,
		Name:     name,
		Enabled:  enabled,
		Schedule: models.JobSchedule{Expr: expr},
	}
}

func jobWithNextRun(id string, enabled bool, nextRunMs int64) models.JobRecord {
	j := job(id, "Job "+id, "0 9 * * *", enabled)
	j.State.NextRunMs = &nextRunMs
	return j
}

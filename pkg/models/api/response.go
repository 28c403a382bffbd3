package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mission-control/core/pkg/models"
	"github.com/mission-control/core/pkg/schedule"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ScheduleResponse is the weekly calendar
type ScheduleResponse struct {
	Events []schedule.CalendarEntry `json:"events"`
}

// UpcomingResponse is the next-up list
type UpcomingResponse struct {
	Tasks []schedule.UpcomingEntry `json:"tasks"`
}

// ScheduledTasksResponse lists enabled jobs with their run timing
type ScheduledTasksResponse struct {
	Tasks []schedule.ScheduledTask `json:"tasks"`
}

// SubmittedTasksResponse lists tasks submitted through the dashboard
type SubmittedTasksResponse struct {
	Tasks []models.Task `json:"tasks"`
}

// TaskSubmitResponse acknowledges a submitted task
type TaskSubmitResponse struct {
	Success bool        `json:"success"`
	Task    models.Task `json:"task"`
}

// BoardResponse is the kanban board
type BoardResponse struct {
	Tasks []models.BoardTask `json:"tasks"`
}

// IdeasResponse is the ideas board
type IdeasResponse struct {
	Ideas []models.Idea `json:"ideas"`
}

// IdeaResponse acknowledges an idea change
type IdeaResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Idea    *models.Idea `json:"idea,omitempty"`
}

// BuildQueueResponse lists pending build requests
type BuildQueueResponse struct {
	Queue []models.BuildRequest `json:"queue"`
}

// ProjectsResponse lists project cards
type ProjectsResponse struct {
	Projects []models.Project `json:"projects"`
}

// SystemsResponse lists monitored systems
type SystemsResponse struct {
	Systems []models.System `json:"systems"`
}

// DashboardResponse aggregates the overview page
type DashboardResponse struct {
	Projects []models.Project   `json:"projects"`
	Systems  []models.System    `json:"systems"`
	Tasks    []models.BoardTask `json:"tasks"`
}

// ProgressResponse is the analytics task progress list
type ProgressResponse struct {
	Tasks []models.TaskProgress `json:"tasks"`
}

// NotificationsResponse lists the newest notification lines
type NotificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

// TeamResponse is the agent roster
type TeamResponse struct {
	Agents []models.Agent `json:"agents"`
	Active int            `json:"active"`
	Idle   int            `json:"idle"`
}

// WriteJSON encodes v with the given status code
func WriteJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

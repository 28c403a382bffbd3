// Package catalog holds the static dashboard content: the agent roster, the
// hand-maintained projects and systems, recurring board tasks, completed
// history and the sample ideas used to seed an empty ideas board.
package catalog

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mission-control/core/pkg/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Catalog struct {
	Agents          []models.Agent        `yaml:"agents"`
	Projects        []models.Project      `yaml:"projects"`
	TradingProjects []models.Project      `yaml:"trading_projects"`
	Systems         []models.System       `yaml:"systems"`
	BoardTasks      []models.BoardTask    `yaml:"board_tasks"`
	History         []models.TaskProgress `yaml:"history"`
	SampleIdeas     []models.Idea         `yaml:"sample_ideas"`
}

// Default parses the embedded catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a catalog document
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &c, nil
}

// ProjectsAt returns the main projects, stamping lastActivity with now where unset
func (c *Catalog) ProjectsAt(now time.Time) []models.Project {
	return stampProjects(c.Projects, now)
}

// TradingProjectsAt returns the static trading entries stamped like ProjectsAt
func (c *Catalog) TradingProjectsAt(now time.Time) []models.Project {
	return stampProjects(c.TradingProjects, now)
}

func stampProjects(in []models.Project, now time.Time) []models.Project {
	out := make([]models.Project, len(in))
	for i, p := range in {
		if p.LastActivity == "" {
			p.LastActivity = now.UTC().Format(time.RFC3339)
		}
		out[i] = p
	}
	return out
}

// SystemsAt returns the static systems checked at now
func (c *Catalog) SystemsAt(now time.Time) []models.System {
	out := make([]models.System, len(c.Systems))
	for i, s := range c.Systems {
		s.LastCheck = now.UTC().Format(time.RFC3339)
		out[i] = s
	}
	return out
}

// BoardTasksAt returns the system board cards created AgeDays before now
func (c *Catalog) BoardTasksAt(now time.Time) []models.BoardTask {
	out := make([]models.BoardTask, len(c.BoardTasks))
	for i, t := range c.BoardTasks {
		t.CreatedAt = now.Add(-time.Duration(t.AgeDays) * 24 * time.Hour)
		out[i] = t
	}
	return out
}

// SampleIdeasAt returns the seed ideas, status new, created AgeHours before now
func (c *Catalog) SampleIdeasAt(now time.Time) []models.Idea {
	out := make([]models.Idea, len(c.SampleIdeas))
	for i, idea := range c.SampleIdeas {
		idea.Status = models.IdeaStatusNew
		idea.CreatedAt = now.Add(-time.Duration(idea.AgeHours) * time.Hour)
		out[i] = idea
	}
	return out
}

// HistoryProgress returns a copy of the completed-work history
func (c *Catalog) HistoryProgress() []models.TaskProgress {
	return append([]models.TaskProgress(nil), c.History...)
}

// Team returns a copy of the agent roster
func (c *Catalog) Team() []models.Agent {
	return append([]models.Agent(nil), c.Agents...)
}

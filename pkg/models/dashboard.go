package models

import "time"

// Task statuses
const (
	TaskStatusPending = "pending"
	TaskStatusDone    = "done"
)

// Idea statuses
const (
	IdeaStatusNew      = "new"
	IdeaStatusBuilding = "building"
	IdeaStatusRemoved  = "removed"
)

// Task is a task submitted through the dashboard
type Task struct {
	ID        string    `json:"id"`
	Task      string    `json:"task"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// BoardTask is a card on the kanban board
type BoardTask struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description *string   `json:"description" yaml:"description"`
	Status      string    `json:"status" yaml:"status"`
	Project     *string   `json:"project" yaml:"project"`
	Priority    string    `json:"priority" yaml:"priority"`
	CreatedAt   time.Time `json:"createdAt" yaml:"-"`
	IsUserTask  bool      `json:"isUserTask,omitempty" yaml:"-"`

	// AgeDays places CreatedAt relative to the request time for catalog cards
	AgeDays int `json:"-" yaml:"age_days"`
}

// TaskProgress is one row of the analytics progress list
type TaskProgress struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Status string `json:"status" yaml:"status"`
	Date   string `json:"date" yaml:"date"`
	Agent  string `json:"agent" yaml:"agent"`
}

// Idea is a product idea surfaced on the ideas board
type Idea struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Source      string    `json:"source" yaml:"source"`
	SourceURL   string    `json:"sourceUrl,omitempty" yaml:"source_url"`
	Upvotes     int       `json:"upvotes" yaml:"upvotes"`
	Comments    int       `json:"comments" yaml:"comments"`
	Status      string    `json:"status" yaml:"-"`
	Slug        string    `json:"slug" yaml:"-"`
	CreatedAt   time.Time `json:"createdAt" yaml:"-"`

	// AgeHours places CreatedAt relative to seeding time for sample ideas
	AgeHours int `json:"-" yaml:"age_hours"`
}

// BuildRequest asks the build agent to pick up an idea
type BuildRequest struct {
	IdeaID      string    `json:"ideaId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	RequestedAt time.Time `json:"requestedAt"`
}

// Notification is a line in the agent's notification log
type Notification struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionSnapshot records the session count seen by the sync worker
type SessionSnapshot struct {
	Count    int       `json:"count"`
	SyncedAt time.Time `json:"syncedAt"`
}

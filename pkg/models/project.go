package models

// Project is a status card on the dashboard
type Project struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Status        string         `json:"status" yaml:"status"`
	Health        string         `json:"health" yaml:"health"`
	Type          string         `json:"type" yaml:"type"`
	Metrics       ProjectMetrics `json:"metrics" yaml:"metrics"`
	LastActivity  string         `json:"lastActivity" yaml:"last_activity"`
	NextMilestone string         `json:"nextMilestone,omitempty" yaml:"next_milestone"`
	Priority      *int           `json:"priority,omitempty" yaml:"priority"`
}

type ProjectMetrics struct {
	Revenue  *float64 `json:"revenue,omitempty" yaml:"revenue"`
	PnL      *float64 `json:"pnl,omitempty" yaml:"pnl"`
	Progress *float64 `json:"progress,omitempty" yaml:"progress"`
	Uptime   *float64 `json:"uptime,omitempty" yaml:"uptime"`
}

// SortPriority returns the card's priority, treating a missing one as 99
func (p Project) SortPriority() int {
	if p.Priority == nil || *p.Priority == 0 {
		return 99
	}
	return *p.Priority
}

// System is a running component shown on the systems panel
type System struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"type" yaml:"type"`
	Status    string `json:"status" yaml:"status"`
	Health    string `json:"health" yaml:"health"`
	Uptime    string `json:"uptime,omitempty" yaml:"uptime"`
	LastCheck string `json:"lastCheck" yaml:"-"`
}

// Agent is a member of the static team roster
type Agent struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Role         string   `json:"role" yaml:"role"`
	Description  string   `json:"description" yaml:"description"`
	Model        string   `json:"model" yaml:"model"`
	Tags         []string `json:"tags" yaml:"tags"`
	Color        string   `json:"color" yaml:"color"`
	Emoji        string   `json:"emoji" yaml:"emoji"`
	Capabilities string   `json:"capabilities" yaml:"capabilities"`
	Status       string   `json:"status" yaml:"status"`
}

// KalshiState is the subset of the paper-trading bot's state file we read.
// Money values are in cents.
type KalshiState struct {
	PaperBalance  float64          `json:"paperBalance"`
	Stats         *KalshiStats     `json:"stats"`
	OpenPositions []KalshiPosition `json:"openPositions"`
}

type KalshiStats struct {
	PnL   float64 `json:"pnl"`
	Total float64 `json:"total"`
}

type KalshiPosition struct {
	Timestamp string `json:"timestamp"`
}

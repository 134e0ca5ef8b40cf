package domain

import "time"

type MilestoneCategory string

const (
	MilestoneTraction MilestoneCategory = "traction"
	MilestoneRevenue  MilestoneCategory = "revenue"
	MilestoneSystems  MilestoneCategory = "systems"
	MilestoneGrowth   MilestoneCategory = "growth"
)

type Milestone struct {
	Key         string            `json:"key" yaml:"key"`
	PathID      string            `json:"path_id" yaml:"path_id"`
	Sequence    int               `json:"sequence" yaml:"sequence"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Category    MilestoneCategory `json:"category" yaml:"category"`
}

type MilestoneRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	MilestoneKey string    `json:"milestone_key"`
	CompletedAt  time.Time `json:"completed_at"`
}

// MilestoneStatus combina la definicion estatica con el estado del usuario.
type MilestoneStatus struct {
	Milestone
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

package models

import "time"

// ActivityStatus represents the current lifecycle state of a scheduled activity.
type ActivityStatus string

const (
	StatusNotStarted ActivityStatus = "not_started"
	StatusInProgress ActivityStatus = "in_progress"
	StatusCompleted  ActivityStatus = "completed"
)

// IsValid returns true if the status is a known value.
func (s ActivityStatus) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Activity represents one unit of scheduled work on a project. Activities are
// read-only snapshots owned by the external scheduling system; the engine
// never mutates them.
type Activity struct {
	ID              string         `yaml:"id" json:"id"`
	Name            string         `yaml:"name" json:"name"`
	Trade           string         `yaml:"trade,omitempty" json:"trade,omitempty"`
	Start           time.Time      `yaml:"start" json:"start"`
	End             time.Time      `yaml:"end" json:"end"`
	PercentComplete int            `yaml:"percent_complete" json:"percent_complete"`
	IsCritical      bool           `yaml:"is_critical" json:"is_critical"`
	Status          ActivityStatus `yaml:"status" json:"status"`
}

// Dependency is a directed predecessor -> successor edge between activities.
// LagDays is the planned gap between predecessor finish and successor start.
type Dependency struct {
	PredecessorID string `yaml:"predecessor_id" json:"predecessor_id"`
	SuccessorID   string `yaml:"successor_id" json:"successor_id"`
	LagDays       int    `yaml:"lag_days,omitempty" json:"lag_days,omitempty"`
}

// ActivityRef is a lightweight reference to an activity used inside report
// output, where repeating the full activity record would bloat the payload.
type ActivityRef struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	IsCritical bool   `yaml:"is_critical" json:"is_critical"`
}

// Ref returns a report-friendly reference to the activity.
func (a *Activity) Ref() ActivityRef {
	return ActivityRef{ID: a.ID, Name: a.Name, IsCritical: a.IsCritical}
}

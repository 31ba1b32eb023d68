package models

import "time"

// Project statuses.
const (
	ProjectStatusActive    = "active"
	ProjectStatusPaused    = "paused"
	ProjectStatusCompleted = "completed"
)

// Project is a tracked build/initiative owned by a user. Optional text
// fields are nil when the user left them blank; empty strings are never
// persisted.
type Project struct {
	ID                   string
	UserID               string
	Name                 string
	Description          *string
	Goals                *string
	TargetAudience       *string
	ContentAngle         *string
	Technologies         []string
	TargetCompletionDate *time.Time
	Status               string
	ProgressPercentage   int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ValidProjectStatus reports whether s is one of the known statuses.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusActive, ProjectStatusPaused, ProjectStatusCompleted:
		return true
	}
	return false
}

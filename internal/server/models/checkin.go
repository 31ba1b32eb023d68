package models

import "time"

// Check-in time-of-day slots.
const (
	CheckInTypeMorning = "morning"
	CheckInTypeMidday  = "midday"
	CheckInTypeEvening = "evening"
)

// Day type classification of a check-in.
const (
	DayTypeBreakthrough = "breakthrough"
	DayTypeGrind        = "grind"
	DayTypeStuck        = "stuck"
)

// CheckIn is a dated journal entry for one time-of-day slot. Child rows
// (project updates, uploads) reference it by id and are loaded separately.
type CheckIn struct {
	ID           string
	UserID       string
	CheckInType  string
	CheckInDate  time.Time
	GeneralNotes *string
	// DayType classifies the update as breakthrough/grind/stuck; nil when
	// the user skipped the selector.
	DayType       *string
	Breakthroughs *string
	// VideoWorthy and PostWorthy flag the check-in for content repurposing.
	VideoWorthy  bool
	PostWorthy   bool
	InMyOwnWords *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidDayType reports whether s is a known day type.
func ValidDayType(s string) bool {
	switch s {
	case DayTypeBreakthrough, DayTypeGrind, DayTypeStuck:
		return true
	}
	return false
}

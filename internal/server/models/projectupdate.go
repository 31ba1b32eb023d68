package models

import "time"

// ProjectUpdate describes progress on one project within a check-in.
// UpdateText carries the free-text brain dump; the structured fields break
// the same story into problem / what didn't work / what worked / surprise.
type ProjectUpdate struct {
	ID            string
	CheckInID     string
	ProjectID     string
	UpdateText    *string
	Problem       *string
	WhatDidntWork *string
	WhatWorked    *string
	Surprise      *string
	IsWin         bool
	IsBlocker     bool
	// BlockerDescription is only ever non-nil while IsBlocker is true.
	BlockerDescription *string
	CreatedAt          time.Time

	// ProjectName is joined in on read; empty when the referenced project
	// was deleted (viewers render "Unknown project").
	ProjectName string
}

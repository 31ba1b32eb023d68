package models

import "time"

// UserSettings is the single per-user configuration row for brand voice and
// downstream content generation. Upserted by UserID.
type UserSettings struct {
	UserID              string
	BusinessName        string
	BusinessDescription string
	BrandVoice          string
	AudienceDescription string
	AudienceInterests   []string
	NotificationEmail   string
	UpdatedAt           time.Time
}

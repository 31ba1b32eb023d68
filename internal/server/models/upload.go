package models

import "time"

// Upload describes metadata for a media file attached to a check-in.
// The blob itself lives in object storage under FilePath, which is always
// the bucket-relative key; display URLs are resolved at read time and
// never persisted.
type Upload struct {
	ID     string
	UserID string
	// CheckInID is nil until the upload is attached to a saved check-in.
	CheckInID *string
	FileName  string
	FilePath  string
	// FileType is the MIME type supplied at ingestion.
	FileType string
	FileSize int64
	// LookingAt and WhyItMatters are the user's caption: what am I looking
	// at, and why does it matter.
	LookingAt    *string
	WhyItMatters *string
	CreatedAt    time.Time
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/buildlog-app/buildlog/internal/common"
	"github.com/buildlog-app/buildlog/internal/server/models"
	"github.com/buildlog-app/buildlog/internal/server/repositories/repomanager"
)

// SettingsInput carries the settings form. AudienceInterests arrives as the
// comma-separated string the form displays.
type SettingsInput struct {
	BusinessName        string
	BusinessDescription string
	BrandVoice          string
	AudienceDescription string
	AudienceInterests   string
	NotificationEmail   string
}

// SettingsService reads and upserts the per-user settings row.
type SettingsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(db *sql.DB, m repomanager.RepositoryManager) *SettingsService {
	return &SettingsService{db: db, repomanager: m}
}

// Get returns the user's settings. A user who never saved the form gets a
// zero-value row with the notification email defaulted to the account email.
func (s *SettingsService) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	settings, err := s.repomanager.Settings(s.db).Get(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.UserSettings{
		UserID:            userID,
		NotificationEmail: user.Email,
	}, nil
}

// Save upserts the settings row from the form values.
func (s *SettingsService) Save(ctx context.Context, userID string, in *SettingsInput) (*models.UserSettings, error) {
	settings := &models.UserSettings{
		UserID:              userID,
		BusinessName:        strings.TrimSpace(in.BusinessName),
		BusinessDescription: strings.TrimSpace(in.BusinessDescription),
		BrandVoice:          strings.TrimSpace(in.BrandVoice),
		AudienceDescription: strings.TrimSpace(in.AudienceDescription),
		AudienceInterests:   common.SplitList(in.AudienceInterests),
		NotificationEmail:   strings.TrimSpace(in.NotificationEmail),
	}
	if err := s.repomanager.Settings(s.db).Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

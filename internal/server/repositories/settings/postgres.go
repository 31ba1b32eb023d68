package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/buildlog-app/buildlog/internal/common"
	"github.com/buildlog-app/buildlog/internal/dbx"
	"github.com/buildlog-app/buildlog/internal/server/models"
)

// PostgresRepository implements settings storage over a dbx.DBTX. The row
// is keyed by user_id; audience interests persist comma-joined like the
// projects technologies column.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	query := `
		SELECT user_id, business_name, business_description, brand_voice,
			audience_description, audience_interests, notification_email, updated_at
		FROM user_settings
		WHERE user_id = $1
	`
	var (
		s         models.UserSettings
		interests string
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&s.UserID, &s.BusinessName, &s.BusinessDescription, &s.BrandVoice,
		&s.AudienceDescription, &interests, &s.NotificationEmail, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	s.AudienceInterests = common.SplitList(interests)
	return &s, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, s *models.UserSettings) error {
	query := `
		INSERT INTO user_settings (user_id, business_name, business_description, brand_voice,
			audience_description, audience_interests, notification_email, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (user_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			business_description = EXCLUDED.business_description,
			brand_voice = EXCLUDED.brand_voice,
			audience_description = EXCLUDED.audience_description,
			audience_interests = EXCLUDED.audience_interests,
			notification_email = EXCLUDED.notification_email,
			updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, query,
		s.UserID, s.BusinessName, s.BusinessDescription, s.BrandVoice,
		s.AudienceDescription, common.JoinList(s.AudienceInterests), s.NotificationEmail,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

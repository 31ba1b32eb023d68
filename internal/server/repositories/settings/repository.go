// Package settings declares the repository contract for the per-user
// settings row.
package settings

import (
	"context"

	"github.com/buildlog-app/buildlog/internal/server/models"
)

type Repository interface {
	// Get returns the user's settings row, or common.ErrorNotFound when it
	// was never saved.
	Get(ctx context.Context, userID string) (*models.UserSettings, error)

	// Upsert inserts or replaces the user's settings row.
	Upsert(ctx context.Context, s *models.UserSettings) error
}

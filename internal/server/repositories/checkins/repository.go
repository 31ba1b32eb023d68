// Package checkins declares the repository contract for check-in rows.
// Child rows (project updates, uploads) live in their own repositories.
package checkins

import (
	"context"

	"github.com/buildlog-app/buildlog/internal/server/models"
)

type Repository interface {
	// Create inserts a check-in and returns it with the assigned id and timestamps.
	Create(ctx context.Context, checkIn *models.CheckIn) (*models.CheckIn, error)

	// GetByID returns the check-in owned by userID, or common.ErrorNotFound.
	GetByID(ctx context.Context, id, userID string) (*models.CheckIn, error)

	// ListRecent returns up to limit check-ins for the user, newest first.
	ListRecent(ctx context.Context, userID string, limit int) ([]*models.CheckIn, error)

	// Update replaces the editable fields of the check-in owned by userID.
	Update(ctx context.Context, checkIn *models.CheckIn) error

	// Delete removes the check-in row owned by userID. Child rows must be
	// removed first; there is no cascading delete.
	Delete(ctx context.Context, id, userID string) error
}

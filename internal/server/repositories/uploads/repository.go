// Package uploads declares the repository contract for upload metadata rows.
// The file bytes live in object storage; rows hold the bucket-relative key.
package uploads

import (
	"context"

	"github.com/buildlog-app/buildlog/internal/server/models"
)

type Repository interface {
	// Create inserts an upload row and returns it with the assigned id and
	// timestamp.
	Create(ctx context.Context, upload *models.Upload) (*models.Upload, error)

	// GetByID returns the upload owned by userID, or common.ErrorNotFound.
	GetByID(ctx context.Context, id, userID string) (*models.Upload, error)

	// ListByCheckIn returns uploads attached to one check-in, oldest first.
	ListByCheckIn(ctx context.Context, checkInID string) ([]*models.Upload, error)

	// ListByCheckIns returns uploads attached to any of the given
	// check-ins in one query, keyed by check-in id.
	ListByCheckIns(ctx context.Context, checkInIDs []string) (map[string][]*models.Upload, error)

	// ListRecentByUser returns the user's newest uploads, attached or not.
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]*models.Upload, error)

	// AttachToCheckIn points an unattached upload at a saved check-in.
	AttachToCheckIn(ctx context.Context, id, userID, checkInID string) error

	// UpdateContext replaces the caption fields of an upload owned by
	// userID. Returns common.ErrorNotFound when no row matches.
	UpdateContext(ctx context.Context, id, userID string, lookingAt, whyItMatters *string) error

	// Delete removes the metadata row owned by userID.
	Delete(ctx context.Context, id, userID string) error

	// DeleteByCheckIn removes all upload rows of a check-in. Deleting zero
	// rows is not an error.
	DeleteByCheckIn(ctx context.Context, checkInID string) error
}

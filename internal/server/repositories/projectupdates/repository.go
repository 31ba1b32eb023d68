// Package projectupdates declares the repository contract for per-project
// update rows belonging to check-ins.
package projectupdates

import (
	"context"

	"github.com/buildlog-app/buildlog/internal/server/models"
)

type Repository interface {
	// CreateBatch inserts all updates for one check-in. The caller runs it
	// inside the same transaction as the check-in insert.
	CreateBatch(ctx context.Context, updates []*models.ProjectUpdate) error

	// ListByCheckIn returns the updates of one check-in with the project
	// name joined in, insertion order.
	ListByCheckIn(ctx context.Context, checkInID string) ([]*models.ProjectUpdate, error)

	// ListByCheckIns returns the updates of all given check-ins in one
	// query, keyed by check-in id.
	ListByCheckIns(ctx context.Context, checkInIDs []string) (map[string][]*models.ProjectUpdate, error)

	// DeleteByCheckIn removes all updates of a check-in. Deleting zero rows
	// is not an error.
	DeleteByCheckIn(ctx context.Context, checkInID string) error
}

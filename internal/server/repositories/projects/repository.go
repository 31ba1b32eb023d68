// Package projects declares the repository contract for project rows.
package projects

import (
	"context"

	"github.com/buildlog-app/buildlog/internal/server/models"
)

type Repository interface {
	// Create inserts a project and returns it with the assigned id and timestamps.
	Create(ctx context.Context, project *models.Project) (*models.Project, error)

	// GetByID returns the project owned by userID, or common.ErrorNotFound.
	GetByID(ctx context.Context, id, userID string) (*models.Project, error)

	// ListByUser returns all of the user's projects, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Project, error)

	// Update replaces the editable fields of the project owned by userID.
	// Returns common.ErrorNotFound when no row matches.
	Update(ctx context.Context, project *models.Project) error

	// Delete hard-deletes the project owned by userID.
	// Returns common.ErrorNotFound when no row matches.
	Delete(ctx context.Context, id, userID string) error
}

package repositories

import (
	"context"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
)

// ResourceRepository defines data access operations for the uniform
// nested-resource record. Only the fields authorization needs are
// stored here; rich domain payloads live with the storage collaborator.
type ResourceRepository interface {
	// Create inserts a record and fills in its generated ID and timestamps.
	Create(ctx context.Context, resource *models.Resource) error

	// GetByID retrieves a record by type and ID.
	GetByID(ctx context.Context, resourceType models.ResourceType, id int64) (*models.Resource, error)

	// ListByObject retrieves all records of one type anchored directly
	// at an object, newest first.
	ListByObject(ctx context.Context, resourceType models.ResourceType, objectID int64) ([]models.Resource, error)

	// Update persists name changes on a record.
	Update(ctx context.Context, resource *models.Resource) error

	// SetVisibility flips the owner-visibility flag on a record.
	SetVisibility(ctx context.Context, resourceType models.ResourceType, id int64, visible bool) error

	// Delete removes a record.
	Delete(ctx context.Context, resourceType models.ResourceType, id int64) error
}

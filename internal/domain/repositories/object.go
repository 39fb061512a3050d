package repositories

import (
	"context"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
)

// ObjectRepository defines data access operations for top-level objects.
type ObjectRepository interface {
	// Create inserts an object and fills in its generated ID and timestamps.
	Create(ctx context.Context, object *models.Object) error

	// GetByID retrieves an object by ID.
	GetByID(ctx context.Context, id int64) (*models.Object, error)

	// GetOwner returns the owning actor's id for an object.
	GetOwner(ctx context.Context, objectID int64) (int64, error)

	// ListByOwner retrieves all objects owned by an actor, newest first.
	ListByOwner(ctx context.Context, ownerActorID int64) ([]models.Object, error)

	// Delete removes an object. Cascading removal of nested resources is
	// the storage schema's responsibility.
	Delete(ctx context.Context, id int64) error
}

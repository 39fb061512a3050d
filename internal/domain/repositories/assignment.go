package repositories

import (
	"context"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
)

// AssignmentRepository defines data access operations for scoped-role
// bindings. The (actor_id, object_id) pair is unique; Upsert must be
// backed by that constraint so concurrent writers serialize at the
// storage layer (last writer wins, never a torn row).
type AssignmentRepository interface {
	// Get retrieves the binding for an (actor, object) pair.
	// Returns domain.ErrNotFound if no binding exists.
	Get(ctx context.Context, actorID, objectID int64) (*models.Assignment, error)

	// ListByObject retrieves all bindings on an object.
	ListByObject(ctx context.Context, objectID int64) ([]models.Assignment, error)

	// ListByActor retrieves all bindings an actor holds.
	ListByActor(ctx context.Context, actorID int64) ([]models.Assignment, error)

	// Upsert inserts the binding or overwrites the scoped role of an
	// existing binding for the same pair.
	Upsert(ctx context.Context, assignment *models.Assignment) error

	// Delete removes the binding for an (actor, object) pair.
	// Returns domain.ErrNotFound if no binding exists.
	Delete(ctx context.Context, actorID, objectID int64) error
}

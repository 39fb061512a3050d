package authz

import (
	"context"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
)

// UpsertAssignmentRequest represents a request to bind an actor to an
// object under a scoped role.
type UpsertAssignmentRequest struct {
	ObjectID      int64             `json:"object_id"`
	TargetActorID int64             `json:"target_actor_id"`
	ScopedRole    models.ScopedRole `json:"scoped_role"`
}

// RemoveAssignmentRequest represents a request to remove a binding.
// RequestingActor decides whether removal is permitted: the object
// owner, an admin, or the assigned actor themself.
type RemoveAssignmentRequest struct {
	ObjectID        int64
	TargetActorID   int64
	RequestingActor *models.Actor
}

// Registry is the ownership and assignment registry. It is the single
// source of truth for who owns an object and who is assigned to it.
type Registry interface {
	// GetObjectOwner returns the owning actor's id for an object.
	// Returns domain.ErrNotFound if the object does not exist.
	GetObjectOwner(ctx context.Context, objectID int64) (int64, error)

	// GetAssignment returns the binding for an (actor, object) pair,
	// or nil with no error when no binding exists.
	GetAssignment(ctx context.Context, actorID, objectID int64) (*models.Assignment, error)

	// ListAssignments returns all bindings on an object.
	ListAssignments(ctx context.Context, objectID int64) ([]models.Assignment, error)

	// ListActorAssignments returns every binding the actor holds across
	// objects. Fails with domain.ErrUnauthenticated when actor is nil.
	ListActorAssignments(ctx context.Context, actor *models.Actor) ([]models.Assignment, error)

	// UpsertAssignment creates or overwrites the binding for the pair.
	// Fails with domain.ErrRoleMismatch if the target actor's global
	// role differs from the requested scoped role, and with
	// domain.ErrNotFound if the object or the target actor is missing.
	UpsertAssignment(ctx context.Context, req *UpsertAssignmentRequest) (*models.Assignment, error)

	// RemoveAssignment deletes the binding for the pair. Fails with
	// domain.ErrNotFound if no binding exists and domain.ErrNotPermitted
	// unless the requesting actor is the object owner, an admin, or the
	// target removing themself.
	RemoveAssignment(ctx context.Context, req *RemoveAssignmentRequest) error
}

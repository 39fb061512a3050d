package authz

import (
	"context"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/policy"
)

// RelationshipKind classifies an actor's standing toward an anchor object.
type RelationshipKind string

const (
	// RelationOwner means the actor personally owns the anchor object.
	RelationOwner RelationshipKind = "OWNER"
	// RelationAssigned means an assignment binds the actor to the object.
	RelationAssigned RelationshipKind = "ASSIGNED"
	// RelationNone means the actor has no standing toward the object.
	RelationNone RelationshipKind = "NONE"
)

// Relationship is an actor's standing toward one object. ScopedRole is
// set only for RelationAssigned.
type Relationship struct {
	Kind       RelationshipKind
	ScopedRole models.ScopedRole
}

// Resolver finds the anchor object of any resource reference by walking
// its declared parent links. It fails closed: a missing link anywhere in
// the chain yields domain.ErrNotFound, never a partial result.
type Resolver interface {
	// ResolveAnchor returns the anchor object id for an existing resource.
	ResolveAnchor(ctx context.Context, resourceType models.ResourceType, id int64) (int64, error)

	// ResolveCreateAnchor returns the anchor object id for a resource
	// about to be created inside the given container (the object for
	// most types, the project for stages, the photo for comments).
	ResolveCreateAnchor(ctx context.Context, resourceType models.ResourceType, containerID int64) (int64, error)
}

// Authorizer is the decision function. The Decision is a value - a Deny
// is never escalated to an error. The error return is reserved for
// storage failures during resolution, which are fatal to the request.
type Authorizer interface {
	// Authorize decides whether actor may perform action on the resource.
	// For ActionCreate, resourceID names the container the new resource
	// will attach to rather than the (not yet existing) resource itself.
	Authorize(ctx context.Context, actor *models.Actor, action models.Action, resourceType models.ResourceType, resourceID int64) (policy.Decision, error)

	// AuthorizeAnchored decides an action on records of resourceType
	// anchored at a known object - the collection form used by list
	// endpoints, where no single resource id exists.
	AuthorizeAnchored(ctx context.Context, actor *models.Actor, action models.Action, resourceType models.ResourceType, objectID int64) (policy.Decision, error)

	// RelationshipTo computes the actor's standing toward an object.
	RelationshipTo(ctx context.Context, actor *models.Actor, objectID int64) (Relationship, error)
}

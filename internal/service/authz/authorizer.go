package authz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/repositories"
	svcauthz "github.com/DGersmv/personal-227-info-sub000/internal/domain/services/authz"
	"github.com/DGersmv/personal-227-info-sub000/internal/policy"
)

// authorizer implements the decision function. It composes the policy
// matrix with the actor's relationship to the anchor object; assignment
// removal has its own rules inside the registry (§ self-removal), so
// the authorizer never sees assignment deletes.
type authorizer struct {
	registry     svcauthz.Registry
	resolver     svcauthz.Resolver
	resourceRepo repositories.ResourceRepository
	matrix       *policy.Matrix
	logger       *slog.Logger
}

// NewAuthorizer creates the decision function.
func NewAuthorizer(
	registry svcauthz.Registry,
	resolver svcauthz.Resolver,
	resourceRepo repositories.ResourceRepository,
	matrix *policy.Matrix,
	logger *slog.Logger,
) svcauthz.Authorizer {
	return &authorizer{
		registry:     registry,
		resolver:     resolver,
		resourceRepo: resourceRepo,
		matrix:       matrix,
		logger:       logger,
	}
}

// Authorize decides whether actor may perform action on the resource.
//
// The admin bypass is evaluated once, here, before anything else - it
// is a precondition, not a rule refined by ownership. After that the
// anchor object is resolved, the actor's relationship to it computed,
// the matrix consulted, and per-resource refinements applied, in that
// order. Storage failures surface as errors; everything else is a
// Decision value.
func (a *authorizer) Authorize(ctx context.Context, actor *models.Actor, action models.Action, resourceType models.ResourceType, resourceID int64) (policy.Decision, error) {
	if actor == nil {
		return policy.Deny(policy.ReasonUnauthenticated), nil
	}
	if actor.IsAdmin() {
		return policy.Allow(), nil
	}

	// Creating a top-level object needs no anchor: creation is unscoped
	// and the creator becomes the owner.
	if action == models.ActionCreate && resourceType == models.ResourceObject {
		if !a.matrix.Allows(actor.GlobalRole, resourceType, action) {
			return policy.Deny(policy.ReasonNotPermitted), nil
		}
		return policy.Allow(), nil
	}

	anchorID, err := a.resolveAnchor(ctx, action, resourceType, resourceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			return policy.Deny(policy.ReasonNotFound), nil
		}
		return policy.Decision{}, err
	}

	rel, err := a.RelationshipTo(ctx, actor, anchorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return policy.Deny(policy.ReasonNotFound), nil
		}
		return policy.Decision{}, err
	}
	if rel.Kind == svcauthz.RelationNone {
		// No relationship means no access, for every global role: an
		// OWNER-role actor has implicit access only to objects they
		// personally own, and the working roles require an assignment.
		return policy.Deny(policy.ReasonNoAccess), nil
	}

	if !a.matrix.Allows(actor.GlobalRole, resourceType, action) {
		return policy.Deny(policy.ReasonNotPermitted), nil
	}

	decision, err := a.refine(ctx, actor, action, resourceType, resourceID, rel)
	if err != nil {
		return policy.Decision{}, err
	}
	if !decision.Allowed {
		a.logger.Debug("authorization denied by refinement",
			"actor_id", actor.ID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
			"reason", decision.Reason,
		)
	}
	return decision, nil
}

// AuthorizeAnchored decides an action on records of resourceType
// anchored at a known object. Same algorithm as Authorize with the
// resolution step skipped; relationship, matrix and refinement order
// are identical, so a Deny here can never be widened by filtering.
func (a *authorizer) AuthorizeAnchored(ctx context.Context, actor *models.Actor, action models.Action, resourceType models.ResourceType, objectID int64) (policy.Decision, error) {
	if actor == nil {
		return policy.Deny(policy.ReasonUnauthenticated), nil
	}
	if actor.IsAdmin() {
		return policy.Allow(), nil
	}

	rel, err := a.RelationshipTo(ctx, actor, objectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return policy.Deny(policy.ReasonNotFound), nil
		}
		return policy.Decision{}, err
	}
	if rel.Kind == svcauthz.RelationNone {
		return policy.Deny(policy.ReasonNoAccess), nil
	}
	if !a.matrix.Allows(actor.GlobalRole, resourceType, action) {
		return policy.Deny(policy.ReasonNotPermitted), nil
	}
	return policy.Allow(), nil
}

// RelationshipTo computes the actor's standing toward an object.
// Ownership wins over any assignment the same actor might also hold.
func (a *authorizer) RelationshipTo(ctx context.Context, actor *models.Actor, objectID int64) (svcauthz.Relationship, error) {
	ownerID, err := a.registry.GetObjectOwner(ctx, objectID)
	if err != nil {
		return svcauthz.Relationship{}, err
	}
	if ownerID == actor.ID {
		return svcauthz.Relationship{Kind: svcauthz.RelationOwner}, nil
	}

	assignment, err := a.registry.GetAssignment(ctx, actor.ID, objectID)
	if err != nil {
		return svcauthz.Relationship{}, err
	}
	if assignment != nil {
		return svcauthz.Relationship{Kind: svcauthz.RelationAssigned, ScopedRole: assignment.ScopedRole}, nil
	}
	return svcauthz.Relationship{Kind: svcauthz.RelationNone}, nil
}

func (a *authorizer) resolveAnchor(ctx context.Context, action models.Action, resourceType models.ResourceType, resourceID int64) (int64, error) {
	if action == models.ActionCreate {
		return a.resolver.ResolveCreateAnchor(ctx, resourceType, resourceID)
	}
	if resourceType == models.ResourceAssignment {
		// assignment reads are anchored at their object directly
		return a.resolver.ResolveAnchor(ctx, models.ResourceObject, resourceID)
	}
	return a.resolver.ResolveAnchor(ctx, resourceType, resourceID)
}

// refine applies the per-resource rules that narrow a matrix grant.
func (a *authorizer) refine(ctx context.Context, actor *models.Actor, action models.Action, resourceType models.ResourceType, resourceID int64, rel svcauthz.Relationship) (policy.Decision, error) {
	switch {
	case action == models.ActionCreate && resourceType == models.ResourceProject:
		// Projects are created by the object's owner or by a designer
		// already assigned to that object.
		if rel.Kind == svcauthz.RelationOwner {
			return policy.Allow(), nil
		}
		if rel.Kind == svcauthz.RelationAssigned && rel.ScopedRole == models.ScopedDesigner {
			return policy.Allow(), nil
		}
		return policy.Deny(policy.ReasonNotPermitted), nil

	case action == models.ActionCreate && resourceType == models.ResourceAssignment:
		// Only the object's owner hands out assignments (admins were
		// short-circuited above).
		if rel.Kind == svcauthz.RelationOwner {
			return policy.Allow(), nil
		}
		return policy.Deny(policy.ReasonNotPermitted), nil

	case action == models.ActionDelete &&
		(resourceType == models.ResourceComment || resourceType == models.ResourceBimModel):
		// Author-only delete: not even the object owner removes someone
		// else's comment or model. Hiding from the owner view is a
		// separate mechanism and never merged with deletion.
		record, err := a.resourceRepo.GetByID(ctx, resourceType, resourceID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return policy.Deny(policy.ReasonNotFound), nil
			}
			return policy.Decision{}, err
		}
		if record.AuthorActorID != actor.ID {
			return policy.Deny(policy.ReasonNotPermitted), nil
		}
		return policy.Allow(), nil

	case action == models.ActionDelete && resourceType == models.ResourceObject:
		// Objects are deleted by their owner only (or an admin).
		if rel.Kind == svcauthz.RelationOwner {
			return policy.Allow(), nil
		}
		return policy.Deny(policy.ReasonNotPermitted), nil
	}

	return policy.Allow(), nil
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

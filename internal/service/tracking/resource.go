package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/repositories"
	svcauthz "github.com/DGersmv/personal-227-info-sub000/internal/domain/services/authz"
	svctracking "github.com/DGersmv/personal-227-info-sub000/internal/domain/services/tracking"
	"github.com/DGersmv/personal-227-info-sub000/internal/service/authz"
)

// resourceService implements the ResourceService interface
type resourceService struct {
	resourceRepo repositories.ResourceRepository
	authorizer   svcauthz.Authorizer
	resolver     svcauthz.Resolver
	logger       *slog.Logger
}

// NewResourceService creates a new nested-resource service.
func NewResourceService(
	resourceRepo repositories.ResourceRepository,
	authorizer svcauthz.Authorizer,
	resolver svcauthz.Resolver,
	logger *slog.Logger,
) svctracking.ResourceService {
	return &resourceService{
		resourceRepo: resourceRepo,
		authorizer:   authorizer,
		resolver:     resolver,
		logger:       logger,
	}
}

// CreateResource creates a nested record under its container.
func (s *resourceService) CreateResource(ctx context.Context, actor *models.Actor, req *svctracking.CreateResourceRequest) (*models.Resource, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	decision, err := s.authorizer.Authorize(ctx, actor, models.ActionCreate, req.Type, req.ContainerID)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	anchorID, err := s.resolver.ResolveCreateAnchor(ctx, req.Type, req.ContainerID)
	if err != nil {
		return nil, err
	}
	rel, err := s.authorizer.RelationshipTo(ctx, actor, anchorID)
	if err != nil {
		return nil, err
	}

	resource := &models.Resource{
		Type:           req.Type,
		AuthorActorID:  actor.ID,
		VisibleToOwner: authz.DefaultVisibility(rel, req.VisibleToOwner),
		Name:           strings.TrimSpace(req.Name),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	// Every record stores its anchor object id so collection reads stay
	// one indexed lookup. Transitively-contained records keep the parent
	// link on top of it.
	resource.ObjectID = anchorID
	if container, _ := authz.ContainerOf(req.Type); container != models.ResourceObject {
		resource.ParentType = container
		resource.ParentID = req.ContainerID
	}

	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, err
	}
	s.logger.Info("resource created",
		"resource_type", resource.Type,
		"resource_id", resource.ID,
		"object_id", anchorID,
		"author_actor_id", actor.ID,
		"visible_to_owner", resource.VisibleToOwner,
	)
	return resource, nil
}

// GetResource retrieves a single record the actor may read. The
// visibility filter applies to collection responses only, so a direct
// read of a hidden record by its object's owner still succeeds.
func (s *resourceService) GetResource(ctx context.Context, actor *models.Actor, resourceType models.ResourceType, id int64) (*models.Resource, error) {
	decision, err := s.authorizer.Authorize(ctx, actor, models.ActionRead, resourceType, id)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return s.resourceRepo.GetByID(ctx, resourceType, id)
}

// ListResources retrieves all records of one type under an object and
// strips the ones an owner-relationship viewer must not see. A denied
// read returns no records at all, regardless of their flags.
func (s *resourceService) ListResources(ctx context.Context, actor *models.Actor, resourceType models.ResourceType, objectID int64) ([]models.Resource, error) {
	decision, err := s.authorizer.AuthorizeAnchored(ctx, actor, models.ActionRead, resourceType, objectID)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	records, err := s.resourceRepo.ListByObject(ctx, resourceType, objectID)
	if err != nil {
		return nil, err
	}
	rel, err := s.authorizer.RelationshipTo(ctx, actor, objectID)
	if err != nil {
		return nil, err
	}
	return authz.FilterVisible(actor, rel, records), nil
}

// UpdateResource renames a record.
func (s *resourceService) UpdateResource(ctx context.Context, actor *models.Actor, resourceType models.ResourceType, id int64, req *svctracking.UpdateResourceRequest) (*models.Resource, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	decision, err := s.authorizer.Authorize(ctx, actor, models.ActionUpdate, resourceType, id)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	resource, err := s.resourceRepo.GetByID(ctx, resourceType, id)
	if err != nil {
		return nil, err
	}
	resource.Name = strings.TrimSpace(req.Name)
	resource.UpdatedAt = time.Now()
	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// SetResourceVisibility flips the owner-visibility flag. Hiding and
// deleting stay independent mechanisms: the flag is flipped only by the
// record's author, the object's owner, or an admin, and flipping it
// grants nothing else.
func (s *resourceService) SetResourceVisibility(ctx context.Context, actor *models.Actor, resourceType models.ResourceType, id int64, visible bool) (*models.Resource, error) {
	decision, err := s.authorizer.Authorize(ctx, actor, models.ActionUpdate, resourceType, id)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	resource, err := s.resourceRepo.GetByID(ctx, resourceType, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && resource.AuthorActorID != actor.ID {
		anchorID, err := s.resolver.ResolveAnchor(ctx, resourceType, id)
		if err != nil {
			return nil, err
		}
		rel, err := s.authorizer.RelationshipTo(ctx, actor, anchorID)
		if err != nil {
			return nil, err
		}
		if rel.Kind != svcauthz.RelationOwner {
			return nil, fmt.Errorf("actor %d may not change visibility of %s %d: %w",
				actor.ID, resourceType, id, domain.ErrNotPermitted)
		}
	}

	if err := s.resourceRepo.SetVisibility(ctx, resourceType, id, visible); err != nil {
		return nil, err
	}
	resource.VisibleToOwner = visible
	s.logger.Info("resource visibility changed",
		"resource_type", resourceType,
		"resource_id", id,
		"visible_to_owner", visible,
		"actor_id", actor.ID,
	)
	return resource, nil
}

// DeleteResource removes a record, subject to the per-resource
// refinements enforced by the decision function.
func (s *resourceService) DeleteResource(ctx context.Context, actor *models.Actor, resourceType models.ResourceType, id int64) error {
	decision, err := s.authorizer.Authorize(ctx, actor, models.ActionDelete, resourceType, id)
	if err != nil {
		return err
	}
	if err := decision.Err(); err != nil {
		return err
	}

	if err := s.resourceRepo.Delete(ctx, resourceType, id); err != nil {
		return err
	}
	s.logger.Info("resource deleted",
		"resource_type", resourceType,
		"resource_id", id,
		"actor_id", actor.ID,
	)
	return nil
}

func (s *resourceService) validateCreateRequest(req *svctracking.CreateResourceRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Type, validation.Required, validation.By(func(v interface{}) error {
			t := v.(models.ResourceType)
			if !t.Nested() {
				return fmt.Errorf("type %q is not a nested resource", t)
			}
			return nil
		})),
		validation.Field(&req.ContainerID, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
	)
}

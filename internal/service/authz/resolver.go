package authz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/repositories"
	svcauthz "github.com/DGersmv/personal-227-info-sub000/internal/domain/services/authz"
)

// maxHops bounds the parent-chain walk. The deepest declared chain is
// comment -> photo -> object.
const maxHops = 3

// containerOf declares, per resource type, the type of the container a
// new record of that type attaches to.
var containerOf = map[models.ResourceType]models.ResourceType{
	models.ResourceProject:    models.ResourceObject,
	models.ResourceStage:      models.ResourceProject,
	models.ResourcePhoto:      models.ResourceObject,
	models.ResourceVideo:      models.ResourceObject,
	models.ResourceBimModel:   models.ResourceObject,
	models.ResourceDocument:   models.ResourceObject,
	models.ResourceComment:    models.ResourcePhoto,
	models.ResourceFolder:     models.ResourceObject,
	models.ResourcePortfolio:  models.ResourceObject,
	models.ResourceAssignment: models.ResourceObject,
}

// ContainerOf returns the declared container type for records of the
// given type, and whether one is declared.
func ContainerOf(resourceType models.ResourceType) (models.ResourceType, bool) {
	container, ok := containerOf[resourceType]
	return container, ok
}

// resolver implements the Resolver interface over the resource and
// object repositories.
type resolver struct {
	objectRepo   repositories.ObjectRepository
	resourceRepo repositories.ResourceRepository
	logger       *slog.Logger
}

// NewResolver creates a new hierarchy resolver.
func NewResolver(
	objectRepo repositories.ObjectRepository,
	resourceRepo repositories.ResourceRepository,
	logger *slog.Logger,
) svcauthz.Resolver {
	return &resolver{
		objectRepo:   objectRepo,
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// ResolveAnchor walks the parent chain of an existing resource up to its
// anchor object. A record's direct object id always wins over any other
// linkage it carries, so the walk can never disagree with itself.
func (r *resolver) ResolveAnchor(ctx context.Context, resourceType models.ResourceType, id int64) (int64, error) {
	if resourceType == models.ResourceObject {
		if _, err := r.objectRepo.GetByID(ctx, id); err != nil {
			return 0, err
		}
		return id, nil
	}
	if !resourceType.Valid() || resourceType == models.ResourceAssignment {
		return 0, fmt.Errorf("%w: cannot resolve anchor for %q", domain.ErrValidation, resourceType)
	}

	currentType, currentID := resourceType, id
	for hop := 0; hop < maxHops; hop++ {
		record, err := r.resourceRepo.GetByID(ctx, currentType, currentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return 0, fmt.Errorf("%s %d: %w", currentType, currentID, domain.ErrNotFound)
			}
			return 0, err
		}

		if record.ObjectID > 0 {
			return record.ObjectID, nil
		}
		if record.ParentType == "" || record.ParentID == 0 {
			// no direct anchor and no parent link: the chain is broken
			return 0, fmt.Errorf("%s %d has no anchor: %w", currentType, currentID, domain.ErrNotFound)
		}
		currentType, currentID = record.ParentType, record.ParentID
	}

	r.logger.Warn("anchor resolution exceeded hop limit",
		"resource_type", resourceType,
		"resource_id", id,
	)
	return 0, fmt.Errorf("%s %d: anchor deeper than %d hops: %w", resourceType, id, maxHops, domain.ErrNotFound)
}

// ResolveCreateAnchor resolves the anchor for a record that does not
// exist yet: the container id is interpreted per the declared container
// type of the resource being created.
func (r *resolver) ResolveCreateAnchor(ctx context.Context, resourceType models.ResourceType, containerID int64) (int64, error) {
	container, ok := containerOf[resourceType]
	if !ok {
		return 0, fmt.Errorf("%w: no container declared for %q", domain.ErrValidation, resourceType)
	}
	return r.ResolveAnchor(ctx, container, containerID)
}

package tracking

import (
	"context"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
)

// CreateResourceRequest represents a request to create a nested record.
// ContainerID names what the record attaches to: the object for most
// types, the project for stages, the photo for comments.
//
// VisibleToOwner is the caller-supplied visibility flag. It is ignored
// when the creator's relationship to the anchor object is Owner (such
// records are always visible to the owner); for every other creator a
// nil value defaults to hidden so work in progress is never exposed by
// accident.
type CreateResourceRequest struct {
	Type           models.ResourceType `json:"type"`
	ContainerID    int64               `json:"container_id"`
	Name           string              `json:"name"`
	VisibleToOwner *bool               `json:"visible_to_owner,omitempty"`
}

// UpdateResourceRequest represents a rename of a nested record.
type UpdateResourceRequest struct {
	Name string `json:"name"`
}

// ResourceService defines business logic operations for the uniform
// nested-resource records. Reads returning collections pass through the
// visibility filter before they are returned.
type ResourceService interface {
	// CreateResource creates a nested record under its container.
	CreateResource(ctx context.Context, actor *models.Actor, req *CreateResourceRequest) (*models.Resource, error)

	// GetResource retrieves a single record the actor may read.
	GetResource(ctx context.Context, actor *models.Actor, resourceType models.ResourceType, id int64) (*models.Resource, error)

	// ListResources retrieves all records of one type under an object,
	// filtered for owner-relationship viewers.
	ListResources(ctx context.Context, actor *models.Actor, resourceType models.ResourceType, objectID int64) ([]models.Resource, error)

	// UpdateResource renames a record.
	UpdateResource(ctx context.Context, actor *models.Actor, resourceType models.ResourceType, id int64, req *UpdateResourceRequest) (*models.Resource, error)

	// SetResourceVisibility flips the owner-visibility flag. Hiding is
	// independent of deletion: only the record author, the object owner
	// or an admin may flip the flag.
	SetResourceVisibility(ctx context.Context, actor *models.Actor, resourceType models.ResourceType, id int64, visible bool) (*models.Resource, error)

	// DeleteResource removes a record, subject to the per-resource
	// refinements (author-only delete for comments and BIM models).
	DeleteResource(ctx context.Context, actor *models.Actor, resourceType models.ResourceType, id int64) error
}

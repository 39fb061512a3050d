package tracking

import (
	"context"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
)

// CreateObjectRequest represents a request to create a top-level object.
type CreateObjectRequest struct {
	Name string `json:"name"`
}

// ObjectService defines business logic operations for objects. Every
// operation authorizes first; on a Deny the underlying storage call is
// never issued.
type ObjectService interface {
	// CreateObject creates an object owned by the acting actor. Object
	// creation is unscoped: any authenticated actor may create one and
	// their global role is unaffected.
	CreateObject(ctx context.Context, actor *models.Actor, req *CreateObjectRequest) (*models.Object, error)

	// GetObject retrieves an object the actor may read.
	GetObject(ctx context.Context, actor *models.Actor, id int64) (*models.Object, error)

	// ListOwnObjects retrieves the objects the actor owns, newest first.
	ListOwnObjects(ctx context.Context, actor *models.Actor) ([]models.Object, error)

	// DeleteObject removes an object. Only the owner or an admin may
	// delete; nested resources cascade at the storage layer.
	DeleteObject(ctx context.Context, actor *models.Actor, id int64) error
}

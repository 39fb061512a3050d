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
)

// objectService implements the ObjectService interface
type objectService struct {
	objectRepo repositories.ObjectRepository
	authorizer svcauthz.Authorizer
	logger     *slog.Logger
}

// NewObjectService creates a new object service.
func NewObjectService(
	objectRepo repositories.ObjectRepository,
	authorizer svcauthz.Authorizer,
	logger *slog.Logger,
) svctracking.ObjectService {
	return &objectService{
		objectRepo: objectRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// CreateObject creates an object owned by the acting actor.
func (s *objectService) CreateObject(ctx context.Context, actor *models.Actor, req *svctracking.CreateObjectRequest) (*models.Object, error) {
	decision, err := s.authorizer.Authorize(ctx, actor, models.ActionCreate, models.ResourceObject, 0)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	object := &models.Object{
		OwnerActorID: actor.ID,
		Status:       models.ObjectActive,
		Name:         strings.TrimSpace(req.Name),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.objectRepo.Create(ctx, object); err != nil {
		return nil, err
	}

	s.logger.Info("object created", "object_id", object.ID, "owner_actor_id", actor.ID)
	return object, nil
}

// GetObject retrieves an object the actor may read.
func (s *objectService) GetObject(ctx context.Context, actor *models.Actor, id int64) (*models.Object, error) {
	decision, err := s.authorizer.Authorize(ctx, actor, models.ActionRead, models.ResourceObject, id)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return s.objectRepo.GetByID(ctx, id)
}

// ListOwnObjects retrieves the objects the actor owns.
func (s *objectService) ListOwnObjects(ctx context.Context, actor *models.Actor) ([]models.Object, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.objectRepo.ListByOwner(ctx, actor.ID)
}

// DeleteObject removes an object; nested resources cascade at the
// storage layer.
func (s *objectService) DeleteObject(ctx context.Context, actor *models.Actor, id int64) error {
	decision, err := s.authorizer.Authorize(ctx, actor, models.ActionDelete, models.ResourceObject, id)
	if err != nil {
		return err
	}
	if err := decision.Err(); err != nil {
		return err
	}

	if err := s.objectRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("object deleted", "object_id", id, "actor_id", actor.ID)
	return nil
}

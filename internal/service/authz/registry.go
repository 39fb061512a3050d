package authz

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/repositories"
	svcauthz "github.com/DGersmv/personal-227-info-sub000/internal/domain/services/authz"
)

// registry implements the Registry interface
type registry struct {
	objectRepo     repositories.ObjectRepository
	actorRepo      repositories.ActorRepository
	assignmentRepo repositories.AssignmentRepository
	txManager      repositories.TransactionManager
	logger         *slog.Logger
}

// NewRegistry creates the ownership and assignment registry.
func NewRegistry(
	objectRepo repositories.ObjectRepository,
	actorRepo repositories.ActorRepository,
	assignmentRepo repositories.AssignmentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) svcauthz.Registry {
	return &registry{
		objectRepo:     objectRepo,
		actorRepo:      actorRepo,
		assignmentRepo: assignmentRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// GetObjectOwner returns the owning actor's id for an object.
func (r *registry) GetObjectOwner(ctx context.Context, objectID int64) (int64, error) {
	return r.objectRepo.GetOwner(ctx, objectID)
}

// GetAssignment returns the binding for the pair, or nil if none exists.
// Absence of a binding is an ordinary answer here, not an error; callers
// that need NotFound semantics get them from RemoveAssignment.
func (r *registry) GetAssignment(ctx context.Context, actorID, objectID int64) (*models.Assignment, error) {
	assignment, err := r.assignmentRepo.Get(ctx, actorID, objectID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return assignment, nil
}

// ListAssignments returns all bindings on an object.
func (r *registry) ListAssignments(ctx context.Context, objectID int64) ([]models.Assignment, error) {
	if _, err := r.objectRepo.GetOwner(ctx, objectID); err != nil {
		return nil, err
	}
	return r.assignmentRepo.ListByObject(ctx, objectID)
}

// ListActorAssignments returns every binding the actor holds. Actors
// only ever see their own bindings through this path, so no further
// authorization applies beyond authentication.
func (r *registry) ListActorAssignments(ctx context.Context, actor *models.Actor) ([]models.Assignment, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return r.assignmentRepo.ListByActor(ctx, actor.ID)
}

// UpsertAssignment creates or overwrites the binding for the pair.
// The existence checks and the write run inside one transaction so a
// concurrent RemoveAssignment cannot interleave to leave a torn row;
// the unique (actor_id, object_id) constraint serializes concurrent
// upserts, last writer wins.
func (r *registry) UpsertAssignment(ctx context.Context, req *svcauthz.UpsertAssignmentRequest) (*models.Assignment, error) {
	if err := validateUpsertRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var assignment *models.Assignment
	err := r.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := r.objectRepo.GetOwner(ctx, req.ObjectID); err != nil {
			return err
		}
		target, err := r.actorRepo.GetByID(ctx, req.TargetActorID)
		if err != nil {
			return err
		}
		if !req.ScopedRole.Matches(target.GlobalRole) {
			return fmt.Errorf("actor %d has global role %s, cannot be assigned as %s: %w",
				target.ID, target.GlobalRole, req.ScopedRole, domain.ErrRoleMismatch)
		}

		assignment = &models.Assignment{
			ActorID:    req.TargetActorID,
			ObjectID:   req.ObjectID,
			ScopedRole: req.ScopedRole,
			AssignedAt: time.Now(),
		}
		return r.assignmentRepo.Upsert(ctx, assignment)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("assignment upserted",
		"object_id", req.ObjectID,
		"actor_id", req.TargetActorID,
		"scoped_role", req.ScopedRole,
	)
	return assignment, nil
}

// RemoveAssignment deletes the binding for the pair. Self-removal is
// always permitted regardless of scoped role; otherwise only the object
// owner or an admin may remove a binding.
func (r *registry) RemoveAssignment(ctx context.Context, req *svcauthz.RemoveAssignmentRequest) error {
	if req.RequestingActor == nil {
		return domain.ErrUnauthenticated
	}
	if err := validateRemoveRequest(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return r.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := r.assignmentRepo.Get(ctx, req.TargetActorID, req.ObjectID); err != nil {
			return err
		}

		permitted := req.RequestingActor.IsAdmin() || req.RequestingActor.ID == req.TargetActorID
		if !permitted {
			ownerID, err := r.objectRepo.GetOwner(ctx, req.ObjectID)
			if err != nil {
				return err
			}
			permitted = ownerID == req.RequestingActor.ID
		}
		if !permitted {
			return fmt.Errorf("actor %d may not remove assignment of actor %d on object %d: %w",
				req.RequestingActor.ID, req.TargetActorID, req.ObjectID, domain.ErrNotPermitted)
		}

		if err := r.assignmentRepo.Delete(ctx, req.TargetActorID, req.ObjectID); err != nil {
			return err
		}
		r.logger.Info("assignment removed",
			"object_id", req.ObjectID,
			"actor_id", req.TargetActorID,
			"requested_by", req.RequestingActor.ID,
		)
		return nil
	})
}

func validateUpsertRequest(req *svcauthz.UpsertAssignmentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ObjectID, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.TargetActorID, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.ScopedRole, validation.Required, validation.In(models.ScopedDesigner, models.ScopedBuilder)),
	)
}

func validateRemoveRequest(req *svcauthz.RemoveAssignmentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ObjectID, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.TargetActorID, validation.Required, validation.Min(int64(1))),
	)
}

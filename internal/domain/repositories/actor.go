package repositories

import (
	"context"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
)

// ActorRepository defines data access operations for actors.
// Account creation and credential handling belong to the identity
// collaborator; the core only ever reads actors.
type ActorRepository interface {
	// Create inserts an actor and fills in its generated ID and timestamps.
	Create(ctx context.Context, actor *models.Actor) error

	// GetByID retrieves an actor by ID.
	GetByID(ctx context.Context, id int64) (*models.Actor, error)
}

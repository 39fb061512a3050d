package inmem

import (
	"context"
	"fmt"
	"time"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/repositories"
)

// ActorRepository is the in-memory ActorRepository implementation
type ActorRepository struct {
	store *Store
}

// NewActorRepository creates an actor repository over the store
func NewActorRepository(store *Store) repositories.ActorRepository {
	return &ActorRepository{store: store}
}

// Create inserts an actor and assigns its id
func (r *ActorRepository) Create(_ context.Context, actor *models.Actor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextActorID++
	actor.ID = r.store.nextActorID
	if actor.CreatedAt.IsZero() {
		actor.CreatedAt = time.Now()
	}
	r.store.actors[actor.ID] = *actor
	return nil
}

// GetByID retrieves an actor by ID
func (r *ActorRepository) GetByID(_ context.Context, id int64) (*models.Actor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	actor, ok := r.store.actors[id]
	if !ok {
		return nil, fmt.Errorf("actor %d: %w", id, domain.ErrNotFound)
	}
	return &actor, nil
}

package inmem

import (
	"context"
	"fmt"
	"sort"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/repositories"
)

// AssignmentRepository is the in-memory AssignmentRepository implementation
type AssignmentRepository struct {
	store *Store
}

// NewAssignmentRepository creates an assignment repository over the store
func NewAssignmentRepository(store *Store) repositories.AssignmentRepository {
	return &AssignmentRepository{store: store}
}

// Get retrieves the binding for an (actor, object) pair
func (r *AssignmentRepository) Get(_ context.Context, actorID, objectID int64) (*models.Assignment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	assignment, ok := r.store.assignments[assignmentKey{actorID: actorID, objectID: objectID}]
	if !ok {
		return nil, fmt.Errorf("assignment (%d, %d): %w", actorID, objectID, domain.ErrNotFound)
	}
	return &assignment, nil
}

// ListByObject retrieves all bindings on an object
func (r *AssignmentRepository) ListByObject(_ context.Context, objectID int64) ([]models.Assignment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var assignments []models.Assignment
	for key, assignment := range r.store.assignments {
		if key.objectID == objectID {
			assignments = append(assignments, assignment)
		}
	}
	sortAssignments(assignments)
	return assignments, nil
}

// ListByActor retrieves all bindings an actor holds
func (r *AssignmentRepository) ListByActor(_ context.Context, actorID int64) ([]models.Assignment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var assignments []models.Assignment
	for key, assignment := range r.store.assignments {
		if key.actorID == actorID {
			assignments = append(assignments, assignment)
		}
	}
	sortAssignments(assignments)
	return assignments, nil
}

// Upsert inserts the binding or overwrites the scoped role for the pair.
// The single store mutex stands in for the unique-constraint-backed
// upsert: concurrent writers serialize, last writer wins.
func (r *AssignmentRepository) Upsert(_ context.Context, assignment *models.Assignment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.actors[assignment.ActorID]; !ok {
		return fmt.Errorf("assignment (%d, %d): %w", assignment.ActorID, assignment.ObjectID, domain.ErrNotFound)
	}
	if _, ok := r.store.objects[assignment.ObjectID]; !ok {
		return fmt.Errorf("assignment (%d, %d): %w", assignment.ActorID, assignment.ObjectID, domain.ErrNotFound)
	}

	r.store.assignments[assignmentKey{actorID: assignment.ActorID, objectID: assignment.ObjectID}] = *assignment
	return nil
}

// Delete removes the binding for an (actor, object) pair
func (r *AssignmentRepository) Delete(_ context.Context, actorID, objectID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := assignmentKey{actorID: actorID, objectID: objectID}
	if _, ok := r.store.assignments[key]; !ok {
		return fmt.Errorf("assignment (%d, %d): %w", actorID, objectID, domain.ErrNotFound)
	}
	delete(r.store.assignments, key)
	return nil
}

func sortAssignments(assignments []models.Assignment) {
	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].AssignedAt.After(assignments[j].AssignedAt)
	})
}

package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/repositories"
)

// ObjectRepository is the in-memory ObjectRepository implementation
type ObjectRepository struct {
	store *Store
}

// NewObjectRepository creates an object repository over the store
func NewObjectRepository(store *Store) repositories.ObjectRepository {
	return &ObjectRepository{store: store}
}

// Create inserts an object and assigns its id
func (r *ObjectRepository) Create(_ context.Context, object *models.Object) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.actors[object.OwnerActorID]; !ok {
		return fmt.Errorf("owner actor %d: %w", object.OwnerActorID, domain.ErrNotFound)
	}
	for _, existing := range r.store.objects {
		if existing.OwnerActorID == object.OwnerActorID && existing.Name == object.Name {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("object named %q already exists", object.Name),
				ResourceType: "object",
			}
		}
	}

	r.store.nextObjectID++
	object.ID = r.store.nextObjectID
	now := time.Now()
	if object.CreatedAt.IsZero() {
		object.CreatedAt = now
	}
	if object.UpdatedAt.IsZero() {
		object.UpdatedAt = now
	}
	r.store.objects[object.ID] = *object
	return nil
}

// GetByID retrieves an object by ID
func (r *ObjectRepository) GetByID(_ context.Context, id int64) (*models.Object, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	object, ok := r.store.objects[id]
	if !ok {
		return nil, fmt.Errorf("object %d: %w", id, domain.ErrNotFound)
	}
	return &object, nil
}

// GetOwner returns the owning actor's id for an object
func (r *ObjectRepository) GetOwner(_ context.Context, objectID int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	object, ok := r.store.objects[objectID]
	if !ok {
		return 0, fmt.Errorf("object %d: %w", objectID, domain.ErrNotFound)
	}
	return object.OwnerActorID, nil
}

// ListByOwner retrieves all objects owned by an actor, newest first
func (r *ObjectRepository) ListByOwner(_ context.Context, ownerActorID int64) ([]models.Object, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var objects []models.Object
	for _, object := range r.store.objects {
		if object.OwnerActorID == ownerActorID {
			objects = append(objects, object)
		}
	}
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].CreatedAt.After(objects[j].CreatedAt)
	})
	return objects, nil
}

// Delete removes an object and cascades to its assignments and nested
// resources, matching the foreign-key behavior of the postgres schema.
func (r *ObjectRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.objects[id]; !ok {
		return fmt.Errorf("object %d: %w", id, domain.ErrNotFound)
	}
	delete(r.store.objects, id)

	for key := range r.store.assignments {
		if key.objectID == id {
			delete(r.store.assignments, key)
		}
	}
	// cascade through parent links until nothing anchored at the object remains
	for {
		removed := false
		for resourceID, resource := range r.store.resources {
			if resource.ObjectID == id {
				delete(r.store.resources, resourceID)
				removed = true
				continue
			}
			if resource.ParentID != 0 {
				if _, ok := r.store.resources[resource.ParentID]; !ok {
					delete(r.store.resources, resourceID)
					removed = true
				}
			}
		}
		if !removed {
			return nil
		}
	}
}

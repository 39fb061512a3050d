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

// ResourceRepository is the in-memory ResourceRepository implementation
type ResourceRepository struct {
	store *Store
}

// NewResourceRepository creates a resource repository over the store
func NewResourceRepository(store *Store) repositories.ResourceRepository {
	return &ResourceRepository{store: store}
}

// Create inserts a record and assigns its id
func (r *ResourceRepository) Create(_ context.Context, resource *models.Resource) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if resource.ObjectID != 0 {
		if _, ok := r.store.objects[resource.ObjectID]; !ok {
			return fmt.Errorf("container of %s: %w", resource.Type, domain.ErrNotFound)
		}
	}
	if resource.ParentID != 0 {
		if _, ok := r.store.resources[resource.ParentID]; !ok {
			return fmt.Errorf("container of %s: %w", resource.Type, domain.ErrNotFound)
		}
	}

	r.store.nextResourceID++
	resource.ID = r.store.nextResourceID
	now := time.Now()
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = now
	}
	if resource.UpdatedAt.IsZero() {
		resource.UpdatedAt = now
	}
	r.store.resources[resource.ID] = *resource
	return nil
}

// GetByID retrieves a record by type and ID
func (r *ResourceRepository) GetByID(_ context.Context, resourceType models.ResourceType, id int64) (*models.Resource, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	resource, ok := r.store.resources[id]
	if !ok || resource.Type != resourceType {
		return nil, fmt.Errorf("%s %d: %w", resourceType, id, domain.ErrNotFound)
	}
	return &resource, nil
}

// ListByObject retrieves all records of one type anchored at an object,
// newest first
func (r *ResourceRepository) ListByObject(_ context.Context, resourceType models.ResourceType, objectID int64) ([]models.Resource, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var resources []models.Resource
	for _, resource := range r.store.resources {
		if resource.Type == resourceType && resource.ObjectID == objectID {
			resources = append(resources, resource)
		}
	}
	sort.Slice(resources, func(i, j int) bool {
		return resources[i].CreatedAt.After(resources[j].CreatedAt)
	})
	return resources, nil
}

// Update persists name changes on a record
func (r *ResourceRepository) Update(_ context.Context, resource *models.Resource) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.resources[resource.ID]
	if !ok || existing.Type != resource.Type {
		return fmt.Errorf("%s %d: %w", resource.Type, resource.ID, domain.ErrNotFound)
	}
	existing.Name = resource.Name
	existing.UpdatedAt = resource.UpdatedAt
	r.store.resources[resource.ID] = existing
	return nil
}

// SetVisibility flips the owner-visibility flag on a record
func (r *ResourceRepository) SetVisibility(_ context.Context, resourceType models.ResourceType, id int64, visible bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	resource, ok := r.store.resources[id]
	if !ok || resource.Type != resourceType {
		return fmt.Errorf("%s %d: %w", resourceType, id, domain.ErrNotFound)
	}
	resource.VisibleToOwner = visible
	resource.UpdatedAt = time.Now()
	r.store.resources[id] = resource
	return nil
}

// Delete removes a record
func (r *ResourceRepository) Delete(_ context.Context, resourceType models.ResourceType, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	resource, ok := r.store.resources[id]
	if !ok || resource.Type != resourceType {
		return fmt.Errorf("%s %d: %w", resourceType, id, domain.ErrNotFound)
	}
	delete(r.store.resources, id)
	return nil
}

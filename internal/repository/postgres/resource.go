package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/repositories"
)

// PostgresResourceRepository implements the ResourceRepository interface.
// All nested resource types share one table; every record stores its
// anchor object_id, and the nullable parent link columns carry the
// transitive containment on top of it.
type PostgresResourceRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(config *RepositoryConfig) repositories.ResourceRepository {
	return &PostgresResourceRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a record
func (r *PostgresResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (resource_type, object_id, parent_type, parent_id, author_actor_id, visible_to_owner, name, created_at, updated_at)
		VALUES ($1, NULLIF($2, 0::bigint), NULLIF($3, ''), NULLIF($4, 0::bigint), $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, r.tables.Resources)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		resource.Type,
		resource.ObjectID,
		string(resource.ParentType),
		resource.ParentID,
		resource.AuthorActorID,
		resource.VisibleToOwner,
		resource.Name,
		resource.CreatedAt,
		resource.UpdatedAt,
	).Scan(&resource.ID, &resource.CreatedAt, &resource.UpdatedAt)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("container of %s: %w", resource.Type, domain.ErrNotFound)
		}
		return fmt.Errorf("create %s: %w", resource.Type, err)
	}
	return nil
}

// GetByID retrieves a record by type and ID
func (r *PostgresResourceRepository) GetByID(ctx context.Context, resourceType models.ResourceType, id int64) (*models.Resource, error) {
	query := fmt.Sprintf(`
		SELECT id, resource_type, COALESCE(object_id, 0), COALESCE(parent_type, ''), COALESCE(parent_id, 0),
		       author_actor_id, visible_to_owner, name, created_at, updated_at
		FROM %s
		WHERE id = $1 AND resource_type = $2
	`, r.tables.Resources)

	var resource models.Resource
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, resourceType).Scan(
		&resource.ID,
		&resource.Type,
		&resource.ObjectID,
		&resource.ParentType,
		&resource.ParentID,
		&resource.AuthorActorID,
		&resource.VisibleToOwner,
		&resource.Name,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("%s %d: %w", resourceType, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get %s: %w", resourceType, err)
	}
	return &resource, nil
}

// ListByObject retrieves all records of one type anchored at an object,
// newest first
func (r *PostgresResourceRepository) ListByObject(ctx context.Context, resourceType models.ResourceType, objectID int64) ([]models.Resource, error) {
	query := fmt.Sprintf(`
		SELECT id, resource_type, COALESCE(object_id, 0), COALESCE(parent_type, ''), COALESCE(parent_id, 0),
		       author_actor_id, visible_to_owner, name, created_at, updated_at
		FROM %s
		WHERE resource_type = $1 AND object_id = $2
		ORDER BY created_at DESC
	`, r.tables.Resources)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, resourceType, objectID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", resourceType, err)
	}
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		var resource models.Resource
		err := rows.Scan(
			&resource.ID,
			&resource.Type,
			&resource.ObjectID,
			&resource.ParentType,
			&resource.ParentID,
			&resource.AuthorActorID,
			&resource.VisibleToOwner,
			&resource.Name,
			&resource.CreatedAt,
			&resource.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", resourceType, err)
		}
		resources = append(resources, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", resourceType, err)
	}
	return resources, nil
}

// Update persists name changes on a record
func (r *PostgresResourceRepository) Update(ctx context.Context, resource *models.Resource) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $1, updated_at = $2
		WHERE id = $3 AND resource_type = $4
	`, r.tables.Resources)

	tag, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		resource.Name,
		resource.UpdatedAt,
		resource.ID,
		resource.Type,
	)
	if err != nil {
		return fmt.Errorf("update %s: %w", resource.Type, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", resource.Type, resource.ID, domain.ErrNotFound)
	}
	return nil
}

// SetVisibility flips the owner-visibility flag on a record
func (r *PostgresResourceRepository) SetVisibility(ctx context.Context, resourceType models.ResourceType, id int64, visible bool) error {
	query := fmt.Sprintf(`
		UPDATE %s SET visible_to_owner = $1, updated_at = NOW()
		WHERE id = $2 AND resource_type = $3
	`, r.tables.Resources)

	tag, err := GetExecutor(ctx, r.pool).Exec(ctx, query, visible, id, resourceType)
	if err != nil {
		return fmt.Errorf("set visibility of %s: %w", resourceType, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", resourceType, id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a record
func (r *PostgresResourceRepository) Delete(ctx context.Context, resourceType models.ResourceType, id int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND resource_type = $2
	`, r.tables.Resources)

	tag, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, resourceType)
	if err != nil {
		return fmt.Errorf("delete %s: %w", resourceType, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", resourceType, id, domain.ErrNotFound)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/repositories"
)

// PostgresObjectRepository implements the ObjectRepository interface
type PostgresObjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewObjectRepository creates a new object repository
func NewObjectRepository(config *RepositoryConfig) repositories.ObjectRepository {
	return &PostgresObjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts an object
func (r *PostgresObjectRepository) Create(ctx context.Context, object *models.Object) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_actor_id, status, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Objects)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		object.OwnerActorID,
		object.Status,
		object.Name,
		object.CreatedAt,
		object.UpdatedAt,
	).Scan(&object.ID, &object.CreatedAt, &object.UpdatedAt)
	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("object named %q already exists", object.Name),
				ResourceType: "object",
			}
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("owner actor %d: %w", object.OwnerActorID, domain.ErrNotFound)
		}
		return fmt.Errorf("create object: %w", err)
	}
	return nil
}

// GetByID retrieves an object by ID
func (r *PostgresObjectRepository) GetByID(ctx context.Context, id int64) (*models.Object, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_actor_id, status, name, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Objects)

	var object models.Object
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&object.ID,
		&object.OwnerActorID,
		&object.Status,
		&object.Name,
		&object.CreatedAt,
		&object.UpdatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("object %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get object: %w", err)
	}
	return &object, nil
}

// GetOwner returns the owning actor's id for an object
func (r *PostgresObjectRepository) GetOwner(ctx context.Context, objectID int64) (int64, error) {
	query := fmt.Sprintf(`
		SELECT owner_actor_id FROM %s WHERE id = $1
	`, r.tables.Objects)

	var ownerID int64
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, objectID).Scan(&ownerID)
	if err != nil {
		if isPgNoRowsError(err) {
			return 0, fmt.Errorf("object %d: %w", objectID, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("get object owner: %w", err)
	}
	return ownerID, nil
}

// ListByOwner retrieves all objects owned by an actor, newest first
func (r *PostgresObjectRepository) ListByOwner(ctx context.Context, ownerActorID int64) ([]models.Object, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_actor_id, status, name, created_at, updated_at
		FROM %s
		WHERE owner_actor_id = $1
		ORDER BY created_at DESC
	`, r.tables.Objects)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ownerActorID)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer rows.Close()

	var objects []models.Object
	for rows.Next() {
		var object models.Object
		err := rows.Scan(
			&object.ID,
			&object.OwnerActorID,
			&object.Status,
			&object.Name,
			&object.CreatedAt,
			&object.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan object: %w", err)
		}
		objects = append(objects, object)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate objects: %w", err)
	}
	return objects, nil
}

// Delete removes an object; assignments and nested resources cascade
// via foreign keys.
func (r *PostgresObjectRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Objects)

	tag, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("object %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

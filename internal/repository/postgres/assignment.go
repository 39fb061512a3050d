package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/repositories"
)

// PostgresAssignmentRepository implements the AssignmentRepository interface
type PostgresAssignmentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(config *RepositoryConfig) repositories.AssignmentRepository {
	return &PostgresAssignmentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Get retrieves the binding for an (actor, object) pair
func (r *PostgresAssignmentRepository) Get(ctx context.Context, actorID, objectID int64) (*models.Assignment, error) {
	query := fmt.Sprintf(`
		SELECT actor_id, object_id, scoped_role, assigned_at
		FROM %s
		WHERE actor_id = $1 AND object_id = $2
	`, r.tables.Assignments)

	var assignment models.Assignment
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, actorID, objectID).Scan(
		&assignment.ActorID,
		&assignment.ObjectID,
		&assignment.ScopedRole,
		&assignment.AssignedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("assignment (%d, %d): %w", actorID, objectID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return &assignment, nil
}

// ListByObject retrieves all bindings on an object
func (r *PostgresAssignmentRepository) ListByObject(ctx context.Context, objectID int64) ([]models.Assignment, error) {
	query := fmt.Sprintf(`
		SELECT actor_id, object_id, scoped_role, assigned_at
		FROM %s
		WHERE object_id = $1
		ORDER BY assigned_at DESC
	`, r.tables.Assignments)

	return r.list(ctx, query, objectID)
}

// ListByActor retrieves all bindings an actor holds
func (r *PostgresAssignmentRepository) ListByActor(ctx context.Context, actorID int64) ([]models.Assignment, error) {
	query := fmt.Sprintf(`
		SELECT actor_id, object_id, scoped_role, assigned_at
		FROM %s
		WHERE actor_id = $1
		ORDER BY assigned_at DESC
	`, r.tables.Assignments)

	return r.list(ctx, query, actorID)
}

// Upsert inserts the binding or overwrites the scoped role for the pair.
// The unique (actor_id, object_id) constraint makes concurrent upserts
// serialize at the storage layer; last writer wins.
func (r *PostgresAssignmentRepository) Upsert(ctx context.Context, assignment *models.Assignment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (actor_id, object_id, scoped_role, assigned_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (actor_id, object_id)
		DO UPDATE SET scoped_role = EXCLUDED.scoped_role, assigned_at = EXCLUDED.assigned_at
		RETURNING assigned_at
	`, r.tables.Assignments)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		assignment.ActorID,
		assignment.ObjectID,
		assignment.ScopedRole,
		assignment.AssignedAt,
	).Scan(&assignment.AssignedAt)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("assignment (%d, %d): %w", assignment.ActorID, assignment.ObjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("upsert assignment: %w", err)
	}
	return nil
}

// Delete removes the binding for an (actor, object) pair
func (r *PostgresAssignmentRepository) Delete(ctx context.Context, actorID, objectID int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE actor_id = $1 AND object_id = $2
	`, r.tables.Assignments)

	tag, err := GetExecutor(ctx, r.pool).Exec(ctx, query, actorID, objectID)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assignment (%d, %d): %w", actorID, objectID, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresAssignmentRepository) list(ctx context.Context, query string, arg int64) ([]models.Assignment, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var assignment models.Assignment
		err := rows.Scan(
			&assignment.ActorID,
			&assignment.ObjectID,
			&assignment.ScopedRole,
			&assignment.AssignedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}
	return assignments, nil
}

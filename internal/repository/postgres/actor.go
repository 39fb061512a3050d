package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/repositories"
)

// PostgresActorRepository implements the ActorRepository interface
type PostgresActorRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewActorRepository creates a new actor repository
func NewActorRepository(config *RepositoryConfig) repositories.ActorRepository {
	return &PostgresActorRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts an actor
func (r *PostgresActorRepository) Create(ctx context.Context, actor *models.Actor) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (global_role, name, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.Actors)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		actor.GlobalRole,
		actor.Name,
		actor.CreatedAt,
	).Scan(&actor.ID, &actor.CreatedAt)
	if err != nil {
		return fmt.Errorf("create actor: %w", err)
	}
	return nil
}

// GetByID retrieves an actor by ID
func (r *PostgresActorRepository) GetByID(ctx context.Context, id int64) (*models.Actor, error) {
	query := fmt.Sprintf(`
		SELECT id, global_role, name, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Actors)

	var actor models.Actor
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&actor.ID,
		&actor.GlobalRole,
		&actor.Name,
		&actor.CreatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("actor %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}
	return &actor, nil
}

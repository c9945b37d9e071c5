package team

import (
	"context"
	"fmt"

	"github.com/daap14/heroes/internal/storage"
)

// PostgresRepository implements Repository on top of a pool or a transaction.
type PostgresRepository struct {
	db storage.DBTX
}

// NewRepository creates a new Repository that runs its statements on db.
func NewRepository(db storage.DBTX) Repository {
	return &PostgresRepository{db: db}
}

// Create inserts a new team record and stores the generated ID on t.
func (r *PostgresRepository) Create(ctx context.Context, t *Team) error {
	query := `
		INSERT INTO teams (name, headquarters)
		VALUES ($1, $2)
		RETURNING id`

	if err := r.db.QueryRow(ctx, query, t.Name, t.Headquarters).Scan(&t.ID); err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}

	return nil
}

// GetByName retrieves the single team with the given name. It returns
// ErrTeamNotFound for zero matches and ErrMultipleTeams for more than one.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Team, error) {
	query := `
		SELECT id, name, headquarters
		FROM teams
		WHERE name = $1
		ORDER BY id ASC
		LIMIT 2`

	rows, err := r.db.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("querying team by name: %w", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Headquarters); err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team rows: %w", err)
	}

	switch len(teams) {
	case 0:
		return nil, ErrTeamNotFound
	case 1:
		return &teams[0], nil
	default:
		return nil, fmt.Errorf("%w: name %q", ErrMultipleTeams, name)
	}
}

// List retrieves all teams ordered by ID.
func (r *PostgresRepository) List(ctx context.Context) ([]Team, error) {
	query := `
		SELECT id, name, headquarters
		FROM teams
		ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Headquarters); err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team rows: %w", err)
	}

	if teams == nil {
		teams = []Team{}
	}

	return teams, nil
}

// Delete removes a team by its ID. Heroes referencing the team must be
// removed first; the foreign key rejects the delete otherwise.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTeamNotFound
	}

	return nil
}

// DeleteAll removes every team and reports how many rows were deleted.
func (r *PostgresRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM teams`)
	if err != nil {
		return 0, fmt.Errorf("deleting all teams: %w", err)
	}
	return result.RowsAffected(), nil
}

package hero

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/daap14/heroes/internal/storage"
	"github.com/daap14/heroes/internal/team"
)

const heroColumns = `id, name, secret_name, age, team_id`

// PostgresRepository implements Repository on top of a pool or a transaction.
type PostgresRepository struct {
	db storage.DBTX
}

// NewRepository creates a new Repository that runs its statements on db.
func NewRepository(db storage.DBTX) Repository {
	return &PostgresRepository{db: db}
}

// Create inserts a new hero record and stores the generated ID on h. A Team
// reference on h takes precedence over TeamID.
func (r *PostgresRepository) Create(ctx context.Context, h *Hero) error {
	if err := h.ResolveTeamID(); err != nil {
		return err
	}

	query := `
		INSERT INTO heroes (name, secret_name, age, team_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRow(ctx, query, h.Name, h.SecretName, h.Age, h.TeamID).Scan(&h.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return team.ErrTeamNotFound
		}
		return fmt.Errorf("inserting hero: %w", err)
	}

	return nil
}

// GetByID retrieves a hero by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Hero, error) {
	query := `SELECT ` + heroColumns + ` FROM heroes WHERE id = $1`

	h, err := scanHero(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHeroNotFound
		}
		return nil, fmt.Errorf("querying hero: %w", err)
	}

	return h, nil
}

// GetByName retrieves the single hero with the given name. It returns
// ErrHeroNotFound for zero matches and ErrMultipleHeroes for more than one.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Hero, error) {
	query := `
		SELECT ` + heroColumns + `
		FROM heroes
		WHERE name = $1
		ORDER BY id ASC
		LIMIT 2`

	heroes, err := r.list(ctx, "querying hero by name", query, name)
	if err != nil {
		return nil, err
	}

	switch len(heroes) {
	case 0:
		return nil, ErrHeroNotFound
	case 1:
		return &heroes[0], nil
	default:
		return nil, fmt.Errorf("%w: name %q", ErrMultipleHeroes, name)
	}
}

// ListWithTeams returns every hero paired with its team using a left outer
// join, so heroes without a team are included with a nil Team.
func (r *PostgresRepository) ListWithTeams(ctx context.Context) ([]WithTeam, error) {
	query := `
		SELECT h.id, h.name, h.secret_name, h.age, h.team_id,
		       t.id, t.name, t.headquarters
		FROM heroes h
		LEFT OUTER JOIN teams t ON t.id = h.team_id
		ORDER BY h.id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing heroes with teams: %w", err)
	}
	defer rows.Close()

	result := []WithTeam{}
	for rows.Next() {
		var (
			h            Hero
			teamID       *int64
			teamName     *string
			headquarters *string
		)
		err := rows.Scan(&h.ID, &h.Name, &h.SecretName, &h.Age, &h.TeamID, &teamID, &teamName, &headquarters)
		if err != nil {
			return nil, fmt.Errorf("scanning hero row: %w", err)
		}

		pair := WithTeam{Hero: h}
		if teamID != nil {
			pair.Team = &team.Team{ID: *teamID, Name: deref(teamName), Headquarters: deref(headquarters)}
			pair.Hero.Team = pair.Team
		}
		result = append(result, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hero rows: %w", err)
	}

	return result, nil
}

// ListByTeam returns the heroes referencing the given team, ordered by ID.
func (r *PostgresRepository) ListByTeam(ctx context.Context, teamID int64) ([]Hero, error) {
	query := `
		SELECT ` + heroColumns + `
		FROM heroes
		WHERE team_id = $1
		ORDER BY id ASC`

	return r.list(ctx, "listing heroes by team", query, teamID)
}

// ListOlderThan returns one page of heroes whose age is strictly greater than
// minAge. Heroes without an age never match.
func (r *PostgresRepository) ListOlderThan(ctx context.Context, minAge, offset, limit int) ([]Hero, error) {
	query := `
		SELECT ` + heroColumns + `
		FROM heroes
		WHERE age > $1
		ORDER BY id ASC
		OFFSET $2 LIMIT $3`

	return r.list(ctx, "listing heroes by age", query, minAge, offset, limit)
}

// Update persists the mutable fields of h.
func (r *PostgresRepository) Update(ctx context.Context, h *Hero) error {
	query := `
		UPDATE heroes
		SET name = $2, secret_name = $3, age = $4, team_id = $5
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query, h.ID, h.Name, h.SecretName, h.Age, h.TeamID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return team.ErrTeamNotFound
		}
		return fmt.Errorf("updating hero: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrHeroNotFound
	}

	return nil
}

// Delete removes a hero by its ID.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM heroes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting hero: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrHeroNotFound
	}

	return nil
}

// DeleteByTeam removes every hero referencing the team and reports how many were deleted.
func (r *PostgresRepository) DeleteByTeam(ctx context.Context, teamID int64) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM heroes WHERE team_id = $1`, teamID)
	if err != nil {
		return 0, fmt.Errorf("deleting heroes of team: %w", err)
	}
	return result.RowsAffected(), nil
}

// DeleteAll removes every hero and reports how many rows were deleted.
func (r *PostgresRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM heroes`)
	if err != nil {
		return 0, fmt.Errorf("deleting all heroes: %w", err)
	}
	return result.RowsAffected(), nil
}

func (r *PostgresRepository) list(ctx context.Context, op, query string, args ...any) ([]Hero, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	heroes := []Hero{}
	for rows.Next() {
		h, err := scanHero(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning hero row: %w", err)
		}
		heroes = append(heroes, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hero rows: %w", err)
	}

	return heroes, nil
}

func scanHero(row pgx.Row) (*Hero, error) {
	var h Hero
	if err := row.Scan(&h.ID, &h.Name, &h.SecretName, &h.Age, &h.TeamID); err != nil {
		return nil, err
	}
	return &h, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

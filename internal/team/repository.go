package team

import (
	"context"
	"errors"
)

// ErrTeamNotFound is returned when no team matches a lookup that expects exactly one.
var ErrTeamNotFound = errors.New("team not found")

// ErrMultipleTeams is returned when more than one team matches a lookup that expects exactly one.
var ErrMultipleTeams = errors.New("multiple teams found")

// ErrTeamNotPersisted is returned when a team reference without an identity is used as a foreign key.
var ErrTeamNotPersisted = errors.New("team has not been persisted")

// Repository provides CRUD operations on the teams table.
type Repository interface {
	Create(ctx context.Context, team *Team) error
	GetByName(ctx context.Context, name string) (*Team, error)
	List(ctx context.Context) ([]Team, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

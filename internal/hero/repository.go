package hero

import (
	"context"
	"errors"
)

// ErrHeroNotFound is returned when no hero matches a lookup that expects exactly one.
var ErrHeroNotFound = errors.New("hero not found")

// ErrMultipleHeroes is returned when more than one hero matches a lookup that expects exactly one.
var ErrMultipleHeroes = errors.New("multiple heroes found")

// Repository provides CRUD operations on the heroes table.
type Repository interface {
	Create(ctx context.Context, hero *Hero) error
	GetByID(ctx context.Context, id int64) (*Hero, error)
	GetByName(ctx context.Context, name string) (*Hero, error)
	ListWithTeams(ctx context.Context) ([]WithTeam, error)
	ListByTeam(ctx context.Context, teamID int64) ([]Hero, error)
	ListOlderThan(ctx context.Context, minAge, offset, limit int) ([]Hero, error)
	Update(ctx context.Context, hero *Hero) error
	Delete(ctx context.Context, id int64) error
	DeleteByTeam(ctx context.Context, teamID int64) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

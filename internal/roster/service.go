// Package roster is the access layer for teams and heroes. Every exported
// operation runs as its own unit of work, committed only when the operation
// succeeds.
package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/daap14/heroes/internal/hero"
	"github.com/daap14/heroes/internal/storage"
	"github.com/daap14/heroes/internal/team"
)

// TeamRoster is a team together with the heroes referencing it.
type TeamRoster struct {
	Team   team.Team
	Heroes []hero.Hero
}

// Service runs roster operations against a transactional store.
type Service struct {
	db storage.Beginner
}

// NewService creates a Service whose operations each open a transaction on db.
func NewService(db storage.Beginner) *Service {
	return &Service{db: db}
}

// repos groups the repositories bound to a single transaction.
type repos struct {
	teams  team.Repository
	heroes hero.Repository
}

func (s *Service) run(ctx context.Context, fn func(r repos) error) error {
	return storage.WithUnitOfWork(ctx, s.db, func(tx pgx.Tx) error {
		return fn(repos{
			teams:  team.NewRepository(tx),
			heroes: hero.NewRepository(tx),
		})
	})
}

// CreateTeams inserts all teams in one unit of work. On success every team
// carries its generated ID.
func (s *Service) CreateTeams(ctx context.Context, teams []*team.Team) ([]*team.Team, error) {
	err := s.run(ctx, func(r repos) error {
		for _, t := range teams {
			if err := r.teams.Create(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for _, t := range teams {
			t.ID = 0
		}
		return nil, err
	}
	return teams, nil
}

// CreateHeroes inserts all heroes in one unit of work. A hero carrying a Team
// reference gets that team's ID as its foreign key.
func (s *Service) CreateHeroes(ctx context.Context, heroes []*hero.Hero) ([]*hero.Hero, error) {
	err := s.run(ctx, func(r repos) error {
		for _, h := range heroes {
			if err := r.heroes.Create(ctx, h); err != nil {
				return fmt.Errorf("creating hero %q: %w", h.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		for _, h := range heroes {
			h.ID = 0
		}
		return nil, err
	}
	return heroes, nil
}

// FindHeroByName returns the hero with the given name, or nil without an
// error when none exists. More than one match yields hero.ErrMultipleHeroes.
func (s *Service) FindHeroByName(ctx context.Context, name string) (*hero.Hero, error) {
	var found *hero.Hero
	err := s.run(ctx, func(r repos) error {
		h, err := r.heroes.GetByName(ctx, name)
		if err != nil {
			return err
		}
		found = h
		return nil
	})
	if errors.Is(err, hero.ErrHeroNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return found, nil
}

// GetHero returns the hero with the given ID, or nil when it does not exist.
func (s *Service) GetHero(ctx context.Context, id int64) (*hero.Hero, error) {
	var found *hero.Hero
	err := s.run(ctx, func(r repos) error {
		h, err := r.heroes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		found = h
		return nil
	})
	if errors.Is(err, hero.ErrHeroNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListHeroesWithTeams pairs every hero with its team. Heroes without a team
// are returned with a nil Team.
func (s *Service) ListHeroesWithTeams(ctx context.Context) ([]hero.WithTeam, error) {
	var pairs []hero.WithTeam
	err := s.run(ctx, func(r repos) error {
		var err error
		pairs, err = r.heroes.ListWithTeams(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

// ListHeroesOlderThan returns a page of heroes whose age exceeds minAge.
func (s *Service) ListHeroesOlderThan(ctx context.Context, minAge, offset, limit int) ([]hero.Hero, error) {
	var heroes []hero.Hero
	err := s.run(ctx, func(r repos) error {
		var err error
		heroes, err = r.heroes.ListOlderThan(ctx, minAge, offset, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return heroes, nil
}

// UpdateHeroAge sets the age of the hero with the given name and returns the
// persisted row. The hero must exist exactly once.
func (s *Service) UpdateHeroAge(ctx context.Context, name string, age int) (*hero.Hero, error) {
	var updated *hero.Hero
	err := s.run(ctx, func(r repos) error {
		h, err := r.heroes.GetByName(ctx, name)
		if err != nil {
			return err
		}
		h.Age = &age
		if err := r.heroes.Update(ctx, h); err != nil {
			return err
		}
		updated, err = r.heroes.GetByID(ctx, h.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ReassignHeroTeam points the named hero at t, or clears its team when t is
// nil. It returns nil without an error when the hero does not exist.
func (s *Service) ReassignHeroTeam(ctx context.Context, name string, t *team.Team) (*hero.Hero, error) {
	var updated *hero.Hero
	err := s.run(ctx, func(r repos) error {
		h, err := r.heroes.GetByName(ctx, name)
		if err != nil {
			return err
		}

		h.Team = t
		h.TeamID = nil
		if err := h.ResolveTeamID(); err != nil {
			return err
		}
		if err := r.heroes.Update(ctx, h); err != nil {
			return err
		}
		updated = h
		return nil
	})
	if errors.Is(err, hero.ErrHeroNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteHeroByName removes the named hero. It reports false without an error
// when there is nothing to delete.
func (s *Service) DeleteHeroByName(ctx context.Context, name string) (bool, error) {
	err := s.run(ctx, func(r repos) error {
		h, err := r.heroes.GetByName(ctx, name)
		if err != nil {
			return err
		}
		return r.heroes.Delete(ctx, h.ID)
	})
	if errors.Is(err, hero.ErrHeroNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddHeroToTeam makes the named hero a member of the named team. Both must
// exist exactly once. The relationship is persisted from the hero side.
func (s *Service) AddHeroToTeam(ctx context.Context, heroName, teamName string) (*hero.Hero, error) {
	var updated *hero.Hero
	err := s.run(ctx, func(r repos) error {
		h, err := r.heroes.GetByName(ctx, heroName)
		if err != nil {
			return err
		}
		t, err := r.teams.GetByName(ctx, teamName)
		if err != nil {
			return err
		}

		h.Team = t
		if err := h.ResolveTeamID(); err != nil {
			return err
		}
		if err := r.heroes.Update(ctx, h); err != nil {
			return err
		}
		updated = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// FindTeamByName returns the single team with the given name.
func (s *Service) FindTeamByName(ctx context.Context, name string) (*team.Team, error) {
	var found *team.Team
	err := s.run(ctx, func(r repos) error {
		var err error
		found, err = r.teams.GetByName(ctx, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListTeams returns all teams ordered by ID.
func (s *Service) ListTeams(ctx context.Context) ([]team.Team, error) {
	var teams []team.Team
	err := s.run(ctx, func(r repos) error {
		var err error
		teams, err = r.teams.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// TeamWithHeroes returns the named team and the heroes referencing it.
func (s *Service) TeamWithHeroes(ctx context.Context, name string) (*TeamRoster, error) {
	var roster *TeamRoster
	err := s.run(ctx, func(r repos) error {
		t, err := r.teams.GetByName(ctx, name)
		if err != nil {
			return err
		}
		heroes, err := r.heroes.ListByTeam(ctx, t.ID)
		if err != nil {
			return err
		}
		for i := range heroes {
			heroes[i].Team = t
		}
		roster = &TeamRoster{Team: *t, Heroes: heroes}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return roster, nil
}

// DeleteTeamByName removes the named team together with every hero that
// references it, and reports how many heroes were removed.
func (s *Service) DeleteTeamByName(ctx context.Context, name string) (int64, error) {
	var removed int64
	err := s.run(ctx, func(r repos) error {
		t, err := r.teams.GetByName(ctx, name)
		if err != nil {
			return err
		}
		removed, err = r.heroes.DeleteByTeam(ctx, t.ID)
		if err != nil {
			return err
		}
		return r.teams.Delete(ctx, t.ID)
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// ClearAll removes every hero and then every team.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.run(ctx, func(r repos) error {
		if _, err := r.heroes.DeleteAll(ctx); err != nil {
			return err
		}
		_, err := r.teams.DeleteAll(ctx)
		return err
	})
}

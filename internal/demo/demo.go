// Package demo runs the scripted walkthrough of the roster operations and
// prints a status line for each step.
package demo

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/daap14/heroes/internal/hero"
	"github.com/daap14/heroes/internal/team"
)

// Roster is the subset of *roster.Service the walkthrough uses.
type Roster interface {
	ClearAll(ctx context.Context) error
	CreateTeams(ctx context.Context, teams []*team.Team) ([]*team.Team, error)
	CreateHeroes(ctx context.Context, heroes []*hero.Hero) ([]*hero.Hero, error)
	FindHeroByName(ctx context.Context, name string) (*hero.Hero, error)
	ListHeroesWithTeams(ctx context.Context) ([]hero.WithTeam, error)
	ListHeroesOlderThan(ctx context.Context, minAge, offset, limit int) ([]hero.Hero, error)
	UpdateHeroAge(ctx context.Context, name string, age int) (*hero.Hero, error)
	ReassignHeroTeam(ctx context.Context, name string, t *team.Team) (*hero.Hero, error)
	AddHeroToTeam(ctx context.Context, heroName, teamName string) (*hero.Hero, error)
	DeleteHeroByName(ctx context.Context, name string) (bool, error)
	DeleteTeamByName(ctx context.Context, name string) (int64, error)
}

// Run clears the store, seeds two teams and seven heroes, and then exercises
// every query and mutation, writing progress to out.
func Run(ctx context.Context, r Roster, out io.Writer) error {
	if err := r.ClearAll(ctx); err != nil {
		return fmt.Errorf("clearing tables: %w", err)
	}
	fmt.Fprintln(out, "Tables cleaned successfully.")

	preventers := &team.Team{Name: "Preventers", Headquarters: "Sharp Tower"}
	zForce := &team.Team{Name: "Z-Force", Headquarters: "Sister Margaret's Bar"}

	fmt.Fprintln(out, "Starting to create teams...")
	if _, err := r.CreateTeams(ctx, []*team.Team{preventers, zForce}); err != nil {
		return fmt.Errorf("creating teams: %w", err)
	}
	for _, t := range []*team.Team{preventers, zForce} {
		fmt.Fprintf(out, "Team created: %s (id %d), Headquarters: %s\n", t.Name, t.ID, t.Headquarters)
	}

	fmt.Fprintln(out, "Starting to create heroes...")
	if _, err := r.CreateHeroes(ctx, seedHeroes(preventers, zForce)); err != nil {
		return fmt.Errorf("creating heroes: %w", err)
	}
	fmt.Fprintln(out, "Heroes created successfully.")

	steps := []func(context.Context, Roster, io.Writer) error{
		findDeadpond,
		listWithTeams,
		listOlderThan,
		updateSpiderBoy,
		func(ctx context.Context, r Roster, out io.Writer) error {
			return moveCaptain(ctx, r, out, preventers)
		},
		deleteMissingHero,
		deleteZForce,
	}
	for _, step := range steps {
		if err := step(ctx, r, out); err != nil {
			return err
		}
	}

	return nil
}

// seedHeroes builds the canonical seven heroes: four on Preventers, two on
// Z-Force and one without a team.
func seedHeroes(preventers, zForce *team.Team) []*hero.Hero {
	age := func(v int) *int { return &v }
	return []*hero.Hero{
		{Name: "Deadpond", SecretName: "Dive Wilson", Team: preventers},
		{Name: "Spider-Boy", SecretName: "Pedro Parqueador", Team: preventers},
		{Name: "Rusty-Man", SecretName: "Tommy Sharp", Age: age(48), Team: zForce},
		{Name: "Tarantula", SecretName: "Natalia Roman-on", Age: age(32), Team: preventers},
		{Name: "Black Lion", SecretName: "Trevor Challa", Age: age(35), Team: zForce},
		{Name: "Dr. Weird", SecretName: "Steve Weird", Age: age(36), Team: preventers},
		{Name: "Captain North America", SecretName: "Esteban Rogelios", Age: age(93)},
	}
}

func findDeadpond(ctx context.Context, r Roster, out io.Writer) error {
	h, err := r.FindHeroByName(ctx, "Deadpond")
	if err != nil {
		return fmt.Errorf("finding Deadpond: %w", err)
	}
	if h == nil {
		fmt.Fprintln(out, "Hero Deadpond not found.")
		return nil
	}
	fmt.Fprintf(out, "Hero found: %s, Secret Name: %s, Age: %s\n", h.Name, h.SecretName, formatAge(h.Age))
	return nil
}

func listWithTeams(ctx context.Context, r Roster, out io.Writer) error {
	pairs, err := r.ListHeroesWithTeams(ctx)
	if err != nil {
		return fmt.Errorf("listing heroes with teams: %w", err)
	}
	for _, p := range pairs {
		teamName := "No Team"
		if p.Team != nil {
			teamName = p.Team.Name
		}
		fmt.Fprintf(out, "Hero: %s, Team: %s\n", p.Hero.Name, teamName)
	}
	return nil
}

func listOlderThan(ctx context.Context, r Roster, out io.Writer) error {
	heroes, err := r.ListHeroesOlderThan(ctx, 32, 0, 2)
	if err != nil {
		return fmt.Errorf("listing heroes older than 32: %w", err)
	}
	fmt.Fprintf(out, "First %d heroes older than 32:\n", len(heroes))
	for _, h := range heroes {
		fmt.Fprintf(out, "  %s (%s)\n", h.Name, formatAge(h.Age))
	}
	return nil
}

func updateSpiderBoy(ctx context.Context, r Roster, out io.Writer) error {
	h, err := r.UpdateHeroAge(ctx, "Spider-Boy", 16)
	if err != nil {
		return fmt.Errorf("updating Spider-Boy: %w", err)
	}
	fmt.Fprintf(out, "Hero after update: %s, Age: %s\n", h.Name, formatAge(h.Age))
	return nil
}

func moveCaptain(ctx context.Context, r Roster, out io.Writer, preventers *team.Team) error {
	const name = "Captain North America"

	if _, err := r.ReassignHeroTeam(ctx, name, preventers); err != nil {
		return fmt.Errorf("assigning %s to %s: %w", name, preventers.Name, err)
	}
	fmt.Fprintf(out, "%s joined %s.\n", name, preventers.Name)

	if _, err := r.ReassignHeroTeam(ctx, name, nil); err != nil {
		return fmt.Errorf("removing %s from team: %w", name, err)
	}
	fmt.Fprintf(out, "%s left %s.\n", name, preventers.Name)

	if _, err := r.AddHeroToTeam(ctx, name, "Z-Force"); err != nil {
		return fmt.Errorf("adding %s to Z-Force: %w", name, err)
	}
	fmt.Fprintf(out, "%s added to Z-Force.\n", name)
	return nil
}

func deleteMissingHero(ctx context.Context, r Roster, out io.Writer) error {
	deleted, err := r.DeleteHeroByName(ctx, "Spider-Man")
	if err != nil {
		return fmt.Errorf("deleting Spider-Man: %w", err)
	}
	if !deleted {
		fmt.Fprintln(out, "Hero Spider-Man not found, nothing to delete.")
		return nil
	}
	fmt.Fprintln(out, "Hero Spider-Man deleted successfully.")
	return nil
}

func deleteZForce(ctx context.Context, r Roster, out io.Writer) error {
	removed, err := r.DeleteTeamByName(ctx, "Z-Force")
	if err != nil {
		return fmt.Errorf("deleting Z-Force: %w", err)
	}
	fmt.Fprintf(out, "Team Z-Force deleted successfully, along with %d heroes.\n", removed)
	return nil
}

func formatAge(age *int) string {
	if age == nil {
		return "unset"
	}
	return strconv.Itoa(*age)
}

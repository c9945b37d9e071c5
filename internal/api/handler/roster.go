package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/daap14/heroes/internal/api/middleware"
	"github.com/daap14/heroes/internal/api/response"
	"github.com/daap14/heroes/internal/hero"
	"github.com/daap14/heroes/internal/roster"
	"github.com/daap14/heroes/internal/team"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Roster is the access layer used by the team and hero handlers.
// *roster.Service implements it.
type Roster interface {
	CreateTeams(ctx context.Context, teams []*team.Team) ([]*team.Team, error)
	ListTeams(ctx context.Context) ([]team.Team, error)
	FindTeamByName(ctx context.Context, name string) (*team.Team, error)
	TeamWithHeroes(ctx context.Context, name string) (*roster.TeamRoster, error)
	DeleteTeamByName(ctx context.Context, name string) (int64, error)

	CreateHeroes(ctx context.Context, heroes []*hero.Hero) ([]*hero.Hero, error)
	FindHeroByName(ctx context.Context, name string) (*hero.Hero, error)
	ListHeroesWithTeams(ctx context.Context) ([]hero.WithTeam, error)
	ListHeroesOlderThan(ctx context.Context, minAge, offset, limit int) ([]hero.Hero, error)
	UpdateHeroAge(ctx context.Context, name string, age int) (*hero.Hero, error)
	ReassignHeroTeam(ctx context.Context, name string, t *team.Team) (*hero.Hero, error)
	AddHeroToTeam(ctx context.Context, heroName, teamName string) (*hero.Hero, error)
	DeleteHeroByName(ctx context.Context, name string) (bool, error)

	ClearAll(ctx context.Context) error
}

// RosterHandler handles operations spanning both teams and heroes.
type RosterHandler struct {
	roster Roster
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(r Roster) *RosterHandler {
	return &RosterHandler{roster: r}
}

// Clear handles DELETE /roster. Heroes are removed before teams.
func (h *RosterHandler) Clear(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.roster.ClearAll(r.Context()); err != nil {
		middleware.Logger(r.Context()).Error("failed to clear roster", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to clear roster", requestID)
		return
	}

	middleware.Logger(r.Context()).Info("roster cleared")
	response.NoContent(w)
}

// decodeJSON reads a bounded JSON body into dst and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", middleware.GetRequestID(r.Context()))
		return false
	}
	return true
}

// writeLookupError maps the exactly-one lookup errors to HTTP responses and
// falls back to a 500 for storage failures.
func writeLookupError(w http.ResponseWriter, r *http.Request, err error, action string) {
	requestID := middleware.GetRequestID(r.Context())

	switch {
	case errors.Is(err, hero.ErrHeroNotFound):
		response.Err(w, http.StatusNotFound, "HERO_NOT_FOUND", "Hero not found", requestID)
	case errors.Is(err, team.ErrTeamNotFound):
		response.Err(w, http.StatusNotFound, "TEAM_NOT_FOUND", "Team not found", requestID)
	case errors.Is(err, hero.ErrMultipleHeroes):
		response.Err(w, http.StatusConflict, "AMBIGUOUS_NAME", "More than one hero has this name", requestID)
	case errors.Is(err, team.ErrMultipleTeams):
		response.Err(w, http.StatusConflict, "AMBIGUOUS_NAME", "More than one team has this name", requestID)
	default:
		middleware.Logger(r.Context()).Error("failed to "+action, "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to "+action, requestID)
	}
}

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/daap14/heroes/internal/hero"
	"github.com/daap14/heroes/internal/roster"
	"github.com/daap14/heroes/internal/team"
)

// --- Mock Roster ---

type mockRoster struct {
	createTeamsFn         func(ctx context.Context, teams []*team.Team) ([]*team.Team, error)
	listTeamsFn           func(ctx context.Context) ([]team.Team, error)
	findTeamByNameFn      func(ctx context.Context, name string) (*team.Team, error)
	teamWithHeroesFn      func(ctx context.Context, name string) (*roster.TeamRoster, error)
	deleteTeamByNameFn    func(ctx context.Context, name string) (int64, error)
	createHeroesFn        func(ctx context.Context, heroes []*hero.Hero) ([]*hero.Hero, error)
	findHeroByNameFn      func(ctx context.Context, name string) (*hero.Hero, error)
	listHeroesWithTeamsFn func(ctx context.Context) ([]hero.WithTeam, error)
	listHeroesOlderThanFn func(ctx context.Context, minAge, offset, limit int) ([]hero.Hero, error)
	updateHeroAgeFn       func(ctx context.Context, name string, age int) (*hero.Hero, error)
	reassignHeroTeamFn    func(ctx context.Context, name string, t *team.Team) (*hero.Hero, error)
	addHeroToTeamFn       func(ctx context.Context, heroName, teamName string) (*hero.Hero, error)
	deleteHeroByNameFn    func(ctx context.Context, name string) (bool, error)
	clearAllFn            func(ctx context.Context) error
}

func (m *mockRoster) CreateTeams(ctx context.Context, teams []*team.Team) ([]*team.Team, error) {
	if m.createTeamsFn != nil {
		return m.createTeamsFn(ctx, teams)
	}
	for i, t := range teams {
		t.ID = int64(i + 1)
	}
	return teams, nil
}

func (m *mockRoster) ListTeams(ctx context.Context) ([]team.Team, error) {
	if m.listTeamsFn != nil {
		return m.listTeamsFn(ctx)
	}
	return []team.Team{}, nil
}

func (m *mockRoster) FindTeamByName(ctx context.Context, name string) (*team.Team, error) {
	if m.findTeamByNameFn != nil {
		return m.findTeamByNameFn(ctx, name)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockRoster) TeamWithHeroes(ctx context.Context, name string) (*roster.TeamRoster, error) {
	if m.teamWithHeroesFn != nil {
		return m.teamWithHeroesFn(ctx, name)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockRoster) DeleteTeamByName(ctx context.Context, name string) (int64, error) {
	if m.deleteTeamByNameFn != nil {
		return m.deleteTeamByNameFn(ctx, name)
	}
	return 0, team.ErrTeamNotFound
}

func (m *mockRoster) CreateHeroes(ctx context.Context, heroes []*hero.Hero) ([]*hero.Hero, error) {
	if m.createHeroesFn != nil {
		return m.createHeroesFn(ctx, heroes)
	}
	for i, h := range heroes {
		h.ID = int64(i + 1)
		if err := h.ResolveTeamID(); err != nil {
			return nil, err
		}
	}
	return heroes, nil
}

func (m *mockRoster) FindHeroByName(ctx context.Context, name string) (*hero.Hero, error) {
	if m.findHeroByNameFn != nil {
		return m.findHeroByNameFn(ctx, name)
	}
	return nil, nil
}

func (m *mockRoster) ListHeroesWithTeams(ctx context.Context) ([]hero.WithTeam, error) {
	if m.listHeroesWithTeamsFn != nil {
		return m.listHeroesWithTeamsFn(ctx)
	}
	return []hero.WithTeam{}, nil
}

func (m *mockRoster) ListHeroesOlderThan(ctx context.Context, minAge, offset, limit int) ([]hero.Hero, error) {
	if m.listHeroesOlderThanFn != nil {
		return m.listHeroesOlderThanFn(ctx, minAge, offset, limit)
	}
	return []hero.Hero{}, nil
}

func (m *mockRoster) UpdateHeroAge(ctx context.Context, name string, age int) (*hero.Hero, error) {
	if m.updateHeroAgeFn != nil {
		return m.updateHeroAgeFn(ctx, name, age)
	}
	return nil, hero.ErrHeroNotFound
}

func (m *mockRoster) ReassignHeroTeam(ctx context.Context, name string, t *team.Team) (*hero.Hero, error) {
	if m.reassignHeroTeamFn != nil {
		return m.reassignHeroTeamFn(ctx, name, t)
	}
	return nil, nil
}

func (m *mockRoster) AddHeroToTeam(ctx context.Context, heroName, teamName string) (*hero.Hero, error) {
	if m.addHeroToTeamFn != nil {
		return m.addHeroToTeamFn(ctx, heroName, teamName)
	}
	return nil, hero.ErrHeroNotFound
}

func (m *mockRoster) DeleteHeroByName(ctx context.Context, name string) (bool, error) {
	if m.deleteHeroByNameFn != nil {
		return m.deleteHeroByNameFn(ctx, name)
	}
	return false, nil
}

func (m *mockRoster) ClearAll(ctx context.Context) error {
	if m.clearAllFn != nil {
		return m.clearAllFn(ctx)
	}
	return nil
}

// --- Helpers ---

func makeChiRequest(method, path string, body []byte, params map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req, w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err, "failed to parse response body")
	return env
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseEnvelope(t, w)["error"].(map[string]interface{})
	require.True(t, ok, "expected an error object")
	return errObj["code"].(string)
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func preventers() *team.Team {
	return &team.Team{ID: 1, Name: "Preventers", Headquarters: "Sharp Tower"}
}

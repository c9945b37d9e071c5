package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	specpkg "github.com/daap14/heroes/api"
	"github.com/daap14/heroes/internal/api"
	"github.com/daap14/heroes/internal/api/handler"
	"github.com/daap14/heroes/internal/hero"
	"github.com/daap14/heroes/internal/roster"
	"github.com/daap14/heroes/internal/team"
)

// openAPISpec is the minimal structure needed to extract paths from the spec.
type openAPISpec struct {
	Paths map[string]map[string]interface{} `json:"paths"`
}

var httpMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true, "DELETE": true,
}

// --- Noop dependencies ---

type noopPinger struct{}

func (noopPinger) Ping(_ context.Context) error { return nil }

type noopRoster struct{}

func (noopRoster) CreateTeams(_ context.Context, teams []*team.Team) ([]*team.Team, error) {
	return teams, nil
}
func (noopRoster) ListTeams(_ context.Context) ([]team.Team, error) { return []team.Team{}, nil }
func (noopRoster) FindTeamByName(_ context.Context, _ string) (*team.Team, error) {
	return nil, team.ErrTeamNotFound
}
func (noopRoster) TeamWithHeroes(_ context.Context, _ string) (*roster.TeamRoster, error) {
	return nil, team.ErrTeamNotFound
}
func (noopRoster) DeleteTeamByName(_ context.Context, _ string) (int64, error) {
	return 0, team.ErrTeamNotFound
}
func (noopRoster) CreateHeroes(_ context.Context, heroes []*hero.Hero) ([]*hero.Hero, error) {
	return heroes, nil
}
func (noopRoster) FindHeroByName(_ context.Context, _ string) (*hero.Hero, error) { return nil, nil }
func (noopRoster) ListHeroesWithTeams(_ context.Context) ([]hero.WithTeam, error) {
	return []hero.WithTeam{}, nil
}
func (noopRoster) ListHeroesOlderThan(_ context.Context, _, _, _ int) ([]hero.Hero, error) {
	return []hero.Hero{}, nil
}
func (noopRoster) UpdateHeroAge(_ context.Context, _ string, _ int) (*hero.Hero, error) {
	return nil, hero.ErrHeroNotFound
}
func (noopRoster) ReassignHeroTeam(_ context.Context, _ string, _ *team.Team) (*hero.Hero, error) {
	return nil, nil
}
func (noopRoster) AddHeroToTeam(_ context.Context, _, _ string) (*hero.Hero, error) {
	return nil, hero.ErrHeroNotFound
}
func (noopRoster) DeleteHeroByName(_ context.Context, _ string) (bool, error) { return false, nil }
func (noopRoster) ClearAll(_ context.Context) error                           { return nil }

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	openapi, err := handler.NewOpenAPIHandler(specpkg.OpenAPISpec)
	require.NoError(t, err, "embedded spec must convert to JSON")

	return api.NewRouter(api.RouterDeps{
		DBPinger:    noopPinger{},
		Version:     "test",
		Roster:      noopRoster{},
		OpenAPISpec: openapi,
	})
}

// --- Tests ---

func TestOpenAPISpec_RoutesCoverAllPaths(t *testing.T) {
	t.Parallel()

	specJSON, err := yaml.YAMLToJSON(specpkg.OpenAPISpec)
	require.NoError(t, err)

	var spec openAPISpec
	require.NoError(t, json.Unmarshal(specJSON, &spec))

	specRoutes := extractSpecRoutes(spec)
	require.NotEmpty(t, specRoutes)

	chiRoutes := extractChiRoutes(t, newTestRouter(t))
	require.NotEmpty(t, chiRoutes)

	for _, sr := range specRoutes {
		assert.Contains(t, chiRoutes, sr, "spec route %s %s not found in Chi router", sr.method, sr.path)
	}
	for _, cr := range chiRoutes {
		assert.Contains(t, specRoutes, cr, "Chi route %s %s not found in OpenAPI spec", cr.method, cr.path)
	}
}

func TestRouter_SetsRequestIDAndServesHealth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_DispatchesByName(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/teams", http.StatusOK},
		{http.MethodGet, "/teams/Z-Force", http.StatusNotFound},
		{http.MethodDelete, "/teams/Z-Force", http.StatusNotFound},
		{http.MethodGet, "/heroes", http.StatusOK},
		{http.MethodGet, "/heroes/Dr.%20Weird", http.StatusNotFound},
		{http.MethodDelete, "/heroes/Spider-Man", http.StatusNotFound},
		{http.MethodDelete, "/roster", http.StatusNoContent},
		{http.MethodGet, "/openapi.json", http.StatusOK},
		{http.MethodPost, "/health", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

type route struct {
	method string
	path   string
}

func extractSpecRoutes(spec openAPISpec) []route {
	var routes []route
	for path, methods := range spec.Paths {
		for method := range methods {
			m := strings.ToUpper(method)
			if !httpMethods[m] {
				continue
			}
			routes = append(routes, route{method: m, path: path})
		}
	}
	sortRoutes(routes)
	return routes
}

func extractChiRoutes(t *testing.T, r *chi.Mux) []route {
	t.Helper()
	var routes []route
	walkFunc := func(method, routePath string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		// Chi subroutes register "/teams/"; OpenAPI uses "/teams".
		normalized := strings.TrimRight(routePath, "/")
		if normalized == "" {
			normalized = "/"
		}
		routes = append(routes, route{method: method, path: normalized})
		return nil
	}
	require.NoError(t, chi.Walk(r, walkFunc))
	sortRoutes(routes)
	return routes
}

func sortRoutes(routes []route) {
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].path == routes[j].path {
			return routes[i].method < routes[j].method
		}
		return routes[i].path < routes[j].path
	})
}

package api

import (
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"

	"github.com/daap14/heroes/internal/api/handler"
	"github.com/daap14/heroes/internal/api/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger    handler.DBPinger
	Version     string
	Roster      handler.Roster
	OpenAPISpec *handler.OpenAPIHandler
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	if deps.OpenAPISpec != nil {
		r.Get("/openapi.json", deps.OpenAPISpec.ServeHTTP)
	}

	if deps.Roster != nil {
		teamHandler := handler.NewTeamHandler(deps.Roster)
		r.Route("/teams", func(r chi.Router) {
			r.Post("/", teamHandler.Create)
			r.Get("/", teamHandler.List)
			r.Get("/{name}", teamHandler.Get)
			r.Delete("/{name}", teamHandler.Delete)
		})

		heroHandler := handler.NewHeroHandler(deps.Roster)
		r.Route("/heroes", func(r chi.Router) {
			r.Post("/", heroHandler.Create)
			r.Get("/", heroHandler.List)
			r.Get("/{name}", heroHandler.Get)
			r.Patch("/{name}", heroHandler.Update)
			r.Put("/{name}/team", heroHandler.AssignTeam)
			r.Delete("/{name}", heroHandler.Delete)
		})

		rosterHandler := handler.NewRosterHandler(deps.Roster)
		r.Delete("/roster", rosterHandler.Clear)
	}

	return r
}

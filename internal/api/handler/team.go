package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daap14/heroes/internal/api/middleware"
	"github.com/daap14/heroes/internal/api/response"
	"github.com/daap14/heroes/internal/api/validation"
	"github.com/daap14/heroes/internal/team"
)

type teamResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Headquarters string `json:"headquarters"`
}

type teamRosterResponse struct {
	teamResponse
	Heroes []heroResponse `json:"heroes"`
}

type deleteTeamResponse struct {
	Name          string `json:"name"`
	RemovedHeroes int64  `json:"removedHeroes"`
}

func toTeamResponse(t *team.Team) teamResponse {
	return teamResponse{
		ID:           t.ID,
		Name:         t.Name,
		Headquarters: t.Headquarters,
	}
}

// TeamHandler handles team endpoints.
type TeamHandler struct {
	roster Roster
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(r Roster) *TeamHandler {
	return &TeamHandler{roster: r}
}

// Create handles POST /teams.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req validation.CreateTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fieldErrors := validation.ValidateCreateTeamRequest(&req); len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	t := &team.Team{Name: req.Name, Headquarters: req.Headquarters}
	if _, err := h.roster.CreateTeams(r.Context(), []*team.Team{t}); err != nil {
		middleware.Logger(r.Context()).Error("failed to create team", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create team", requestID)
		return
	}

	middleware.Logger(r.Context()).Info("team created", "id", t.ID, "name", t.Name)
	response.Success(w, http.StatusCreated, toTeamResponse(t), requestID)
}

// List handles GET /teams.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	teams, err := h.roster.ListTeams(r.Context())
	if err != nil {
		middleware.Logger(r.Context()).Error("failed to list teams", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list teams", requestID)
		return
	}

	items := make([]teamResponse, 0, len(teams))
	for i := range teams {
		items = append(items, toTeamResponse(&teams[i]))
	}

	response.SuccessList(w, http.StatusOK, items, len(items), nil, requestID)
}

// Get handles GET /teams/{name}, returning the team with its heroes.
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	name := chi.URLParam(r, "name")

	tr, err := h.roster.TeamWithHeroes(r.Context(), name)
	if err != nil {
		writeLookupError(w, r, err, "get team")
		return
	}

	heroes := make([]heroResponse, 0, len(tr.Heroes))
	for i := range tr.Heroes {
		heroes = append(heroes, toHeroResponse(&tr.Heroes[i]))
	}

	response.Success(w, http.StatusOK, teamRosterResponse{
		teamResponse: toTeamResponse(&tr.Team),
		Heroes:       heroes,
	}, requestID)
}

// Delete handles DELETE /teams/{name}. Heroes of the team are deleted with it.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	name := chi.URLParam(r, "name")

	removed, err := h.roster.DeleteTeamByName(r.Context(), name)
	if err != nil {
		writeLookupError(w, r, err, "delete team")
		return
	}

	middleware.Logger(r.Context()).Info("team deleted", "name", name, "removedHeroes", removed)
	response.Success(w, http.StatusOK, deleteTeamResponse{Name: name, RemovedHeroes: removed}, requestID)
}

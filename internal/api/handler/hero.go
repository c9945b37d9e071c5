package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/daap14/heroes/internal/api/middleware"
	"github.com/daap14/heroes/internal/api/response"
	"github.com/daap14/heroes/internal/api/validation"
	"github.com/daap14/heroes/internal/hero"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type heroResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	SecretName string `json:"secretName"`
	Age        *int   `json:"age"`
	TeamID     *int64 `json:"teamId"`
}

type heroWithTeamResponse struct {
	heroResponse
	Team *teamResponse `json:"team"`
}

func toHeroResponse(h *hero.Hero) heroResponse {
	return heroResponse{
		ID:         h.ID,
		Name:       h.Name,
		SecretName: h.SecretName,
		Age:        h.Age,
		TeamID:     h.TeamID,
	}
}

// HeroHandler handles hero endpoints.
type HeroHandler struct {
	roster Roster
}

// NewHeroHandler creates a new HeroHandler.
func NewHeroHandler(r Roster) *HeroHandler {
	return &HeroHandler{roster: r}
}

// Create handles POST /heroes. An optional teamName must name exactly one team.
func (h *HeroHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req validation.CreateHeroRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fieldErrors := validation.ValidateCreateHeroRequest(&req); len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	hr := &hero.Hero{Name: req.Name, SecretName: req.SecretName, Age: req.Age}
	if req.TeamName != nil {
		t, err := h.roster.FindTeamByName(r.Context(), *req.TeamName)
		if err != nil {
			writeLookupError(w, r, err, "create hero")
			return
		}
		hr.Team = t
	}

	if _, err := h.roster.CreateHeroes(r.Context(), []*hero.Hero{hr}); err != nil {
		writeLookupError(w, r, err, "create hero")
		return
	}

	middleware.Logger(r.Context()).Info("hero created", "id", hr.ID, "name", hr.Name)
	response.Success(w, http.StatusCreated, toHeroResponse(hr), requestID)
}

// List handles GET /heroes. Without query parameters every hero is returned
// with its team. With olderThan, a page of heroes older than that age is
// returned instead, controlled by offset and limit.
func (h *HeroHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	q := r.URL.Query()

	if q.Get("olderThan") == "" {
		h.listWithTeams(w, r)
		return
	}

	minAge, err := strconv.Atoi(q.Get("olderThan"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_QUERY", "olderThan must be an integer", requestID)
		return
	}
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	heroes, err := h.roster.ListHeroesOlderThan(r.Context(), minAge, page.Offset, page.Limit)
	if err != nil {
		middleware.Logger(r.Context()).Error("failed to list heroes", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list heroes", requestID)
		return
	}

	items := make([]heroResponse, 0, len(heroes))
	for i := range heroes {
		items = append(items, toHeroResponse(&heroes[i]))
	}

	response.SuccessList(w, http.StatusOK, items, len(items), &page, requestID)
}

func (h *HeroHandler) listWithTeams(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	pairs, err := h.roster.ListHeroesWithTeams(r.Context())
	if err != nil {
		middleware.Logger(r.Context()).Error("failed to list heroes", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list heroes", requestID)
		return
	}

	items := make([]heroWithTeamResponse, 0, len(pairs))
	for i := range pairs {
		item := heroWithTeamResponse{heroResponse: toHeroResponse(&pairs[i].Hero)}
		if pairs[i].Team != nil {
			tr := toTeamResponse(pairs[i].Team)
			item.Team = &tr
		}
		items = append(items, item)
	}

	response.SuccessList(w, http.StatusOK, items, len(items), nil, requestID)
}

// Get handles GET /heroes/{name}.
func (h *HeroHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	found, err := h.roster.FindHeroByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeLookupError(w, r, err, "get hero")
		return
	}
	if found == nil {
		response.Err(w, http.StatusNotFound, "HERO_NOT_FOUND", "Hero not found", requestID)
		return
	}

	response.Success(w, http.StatusOK, toHeroResponse(found), requestID)
}

// Update handles PATCH /heroes/{name}, which changes the hero's age.
func (h *HeroHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	name := chi.URLParam(r, "name")

	var req validation.UpdateHeroRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fieldErrors := validation.ValidateUpdateHeroRequest(&req); len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	updated, err := h.roster.UpdateHeroAge(r.Context(), name, *req.Age)
	if err != nil {
		writeLookupError(w, r, err, "update hero")
		return
	}

	middleware.Logger(r.Context()).Info("hero age updated", "name", name, "age", *req.Age)
	response.Success(w, http.StatusOK, toHeroResponse(updated), requestID)
}

// AssignTeam handles PUT /heroes/{name}/team. A null teamName removes the
// hero from its team.
func (h *HeroHandler) AssignTeam(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	name := chi.URLParam(r, "name")

	var req validation.AssignTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fieldErrors := validation.ValidateAssignTeamRequest(&req); len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	var (
		updated *hero.Hero
		err     error
	)
	if req.TeamName == nil {
		updated, err = h.roster.ReassignHeroTeam(r.Context(), name, nil)
	} else {
		updated, err = h.roster.AddHeroToTeam(r.Context(), name, *req.TeamName)
	}
	if err != nil {
		writeLookupError(w, r, err, "assign team")
		return
	}
	if updated == nil {
		response.Err(w, http.StatusNotFound, "HERO_NOT_FOUND", "Hero not found", requestID)
		return
	}

	response.Success(w, http.StatusOK, toHeroResponse(updated), requestID)
}

// Delete handles DELETE /heroes/{name}.
func (h *HeroHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	name := chi.URLParam(r, "name")

	deleted, err := h.roster.DeleteHeroByName(r.Context(), name)
	if err != nil {
		writeLookupError(w, r, err, "delete hero")
		return
	}
	if !deleted {
		response.Err(w, http.StatusNotFound, "HERO_NOT_FOUND", "Hero not found, nothing to delete", requestID)
		return
	}

	middleware.Logger(r.Context()).Info("hero deleted", "name", name)
	response.NoContent(w)
}

func parsePage(w http.ResponseWriter, r *http.Request) (response.Page, bool) {
	requestID := middleware.GetRequestID(r.Context())
	q := r.URL.Query()
	page := response.Page{Offset: 0, Limit: defaultPageLimit}

	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.Err(w, http.StatusBadRequest, "INVALID_QUERY", "offset must be a non-negative integer", requestID)
			return page, false
		}
		page.Offset = n
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageLimit {
			response.Err(w, http.StatusBadRequest, "INVALID_QUERY", "limit must be between 1 and 100", requestID)
			return page, false
		}
		page.Limit = n
	}

	return page, true
}

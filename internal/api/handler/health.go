package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/daap14/heroes/internal/api/middleware"
	"github.com/daap14/heroes/internal/api/response"
)

// pingTimeout bounds the database check of a health request.
const pingTimeout = 2 * time.Second

// DBPinger checks database connectivity. *pgxpool.Pool implements it.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db      DBPinger
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db DBPinger, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		version: version,
	}
}

type databaseStatus struct {
	Connected bool `json:"connected"`
}

type healthData struct {
	Status   string         `json:"status"`
	Version  string         `json:"version"`
	Database databaseStatus `json:"database"`
}

// ServeHTTP reports "healthy" when the database answers a ping and
// "degraded" otherwise. The response is always 200.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	connected := false
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		err := h.db.Ping(ctx)
		cancel()
		if err != nil {
			middleware.Logger(r.Context()).Warn("database ping failed", "error", err)
		}
		connected = err == nil
	}

	status := "healthy"
	if !connected {
		status = "degraded"
	}

	response.Success(w, http.StatusOK, healthData{
		Status:   status,
		Version:  h.version,
		Database: databaseStatus{Connected: connected},
	}, requestID)
}

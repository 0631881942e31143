package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stafflow-io/staffing-backend/pkg/logger"
)

// HealthResponse reports liveness in the same envelope shape the API uses,
// with an "ok" flag up front.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	DB      string `json:"db,omitempty"`
}

// HealthHandler answers liveness probes. With a pool configured it also
// pings Postgres; a nil pool reports the database as disabled rather than
// failing the probe.
type HealthHandler struct {
	service string
	version string
	db      *pgxpool.Pool
	started time.Time
}

func NewHealthHandler(service, version string, db *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{
		service: service,
		version: version,
		db:      db,
		started: time.Now().UTC(),
	}
}

func (h *HealthHandler) check(c *gin.Context) {
	dbStatus := "disabled"
	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := h.db.Ping(pingCtx); err != nil {
			logger.Warn().Err(err).Msg("health check: database unreachable")
			dbStatus = "down"
		} else {
			dbStatus = "up"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		OK:      true,
		Service: h.service,
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		DB:      dbStatus,
	})
}

// RegisterRoutes mounts the probe on /health plus the /healthz alias the
// deployment manifests expect.
func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.check)
	r.GET("/healthz", h.check)
}

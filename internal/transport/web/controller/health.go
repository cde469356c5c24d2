package controller

import (
	"net/http"

	"github.com/americanadages/adages-society/internal/datasources"
	"github.com/americanadages/adages-society/internal/domain"
)

type HealthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /api/health.
type Health struct {
	Checker datasources.HealthChecker
}

func (c Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := c.Checker.CheckHealth(ctx); err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "content store health check failed", "error", err)
		WriteError(w, r, http.StatusServiceUnavailable, "content store unavailable")
		return
	}

	writeSuccess(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

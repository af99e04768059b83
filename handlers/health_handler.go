package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/upb/healthedu-backend/utils"
	"go.uber.org/zap"
)

// readinessTimeout bounds the dependency checks behind /readyz
const readinessTimeout = 5 * time.Second

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// DatabaseChecker reports whether the database can serve queries
type DatabaseChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler serves liveness and readiness checks
type HealthHandler struct {
	db     DatabaseChecker
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. db may be nil.
func NewHealthHandler(db DatabaseChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// HandleLiveness handles GET /healthz.
// Returns 200 while the process is serving.
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleReadiness handles GET /readyz.
// Returns 503 when the database cannot serve queries.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	if err := h.checkDatabase(ctx); err != nil {
		h.logger.Warn("database readiness check failed", zap.Error(err))
		checks["database"] = "unhealthy"
		healthy = false
	} else {
		checks["database"] = "healthy"
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
	bodyStatus := utils.StatusSuccess
	httpStatus := http.StatusOK
	if !healthy {
		response.Status = "unhealthy"
		bodyStatus = utils.StatusError
		httpStatus = http.StatusServiceUnavailable
	}

	body := utils.SuccessResponse{Status: bodyStatus, Data: response}
	if err := utils.WriteJSON(w, httpStatus, body); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}

func (h *HealthHandler) checkDatabase(ctx context.Context) error {
	if h.db == nil {
		return nil
	}
	return h.db.HealthCheck(ctx)
}

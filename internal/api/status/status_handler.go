package status

import (
	"log/slog"
	"net/http"

	"github.com/daytrip-ai/daytrip-server/internal/api"
)

type HandlerImpl struct {
	statusService Service
	version       string
	logger        *slog.Logger
}

func NewHandlerImpl(statusService Service, version string, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		statusService: statusService,
		version:       version,
		logger:        logger,
	}
}

// Health handles GET /health. A cheap liveness answer with no dependency
// probing.
func (h *HandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": h.version,
	})
}

// Status handles GET /status: probes every registered dependency and reports
// per-target health.
func (h *HandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	report := h.statusService.Report(r.Context())

	code := http.StatusOK
	if report.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	api.WriteJSONResponse(w, r, code, report)
}

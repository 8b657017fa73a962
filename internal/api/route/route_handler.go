package route

import (
	"log/slog"
	"net/http"

	"github.com/daytrip-ai/daytrip-server/internal/api"
)

type HandlerImpl struct {
	routeService Service
	logger       *slog.Logger
}

func NewHandlerImpl(routeService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		routeService: routeService,
		logger:       logger,
	}
}

// Calculate handles POST /route/calculate.
func (h *HandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Calculate"))

	var req CalculateRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(r.Context(), "Invalid calculate request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	mode, err := ParseTransportMode(req.TransportMode)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.routeService.ComputeRoute(r.Context(), req.Places, mode)
	if err != nil {
		l.ErrorContext(r.Context(), "Route computation failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to calculate route")
		return
	}
	if summary == nil {
		// Not enough places for a route yet.
		api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{
			"success": true,
			"summary": nil,
			"message": "최소 2개 이상의 장소가 필요합니다",
		})
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, summary)
}

// Optimize handles POST /route/optimize.
func (h *HandlerImpl) Optimize(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Optimize"))

	var req OptimizeRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(r.Context(), "Invalid optimize request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	optimized, err := h.routeService.Optimize(r.Context(), req.Places, req.StartIndex)
	if err != nil {
		l.ErrorContext(r.Context(), "Route optimization failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to optimize route")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, OptimizeResponse{
		Success:         true,
		OptimizedPlaces: optimized,
	})
}

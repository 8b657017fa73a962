package weather

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daytrip-ai/daytrip-server/internal/api"
)

type HandlerImpl struct {
	weatherService Service
	logger         *slog.Logger
}

func NewHandlerImpl(weatherService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		weatherService: weatherService,
		logger:         logger,
	}
}

// Current handles GET /weather/{city}.
func (h *HandlerImpl) Current(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Current"))

	city := chi.URLParam(r, "city")
	if city == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "city is required")
		return
	}

	info, err := h.weatherService.Current(r.Context(), city)
	if err != nil {
		l.ErrorContext(r.Context(), "Weather lookup failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to fetch weather")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{
		"success": true,
		"weather": info,
	})
}

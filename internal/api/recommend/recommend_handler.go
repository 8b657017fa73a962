package recommend

import (
	"log/slog"
	"net/http"

	"github.com/daytrip-ai/daytrip-server/internal/api"
)

type HandlerImpl struct {
	recommendService Service
	logger           *slog.Logger
}

func NewHandlerImpl(recommendService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		recommendService: recommendService,
		logger:           logger,
	}
}

// Recommend handles POST /recommend.
func (h *HandlerImpl) Recommend(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Recommend"))

	var req RecommendRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(r.Context(), "Invalid recommend request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.recommendService.Recommend(r.Context(), req)
	if err != nil {
		l.ErrorContext(r.Context(), "Recommendation failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to generate recommendations")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

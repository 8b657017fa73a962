package places

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daytrip-ai/daytrip-server/internal/api"
)

type HandlerImpl struct {
	placesService Service
	logger        *slog.Logger
}

func NewHandlerImpl(placesService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		placesService: placesService,
		logger:        logger,
	}
}

// Select handles POST /places/select.
func (h *HandlerImpl) Select(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Select"))

	var req SelectRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(r.Context(), "Invalid select request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.placesService.Select(r.Context(), req)
	if err != nil {
		l.ErrorContext(r.Context(), "Place selection failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to select places")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Analyze handles POST /places/analyze.
func (h *HandlerImpl) Analyze(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Analyze"))

	var req AnalyzeRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(r.Context(), "Invalid analyze request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.placesService.Analyze(r.Context(), req)
	if err != nil {
		l.ErrorContext(r.Context(), "Place analysis failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to analyze places")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// CreateSet handles POST /places/sets.
func (h *HandlerImpl) CreateSet(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "CreateSet"))

	var req CreateSetRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(r.Context(), "Invalid create set request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ws, err := h.placesService.CreateSet(r.Context(), req.Location, req.TravelStyle)
	if err != nil {
		l.ErrorContext(r.Context(), "Working set creation failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to create working set")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, ws)
}

// GetSet handles GET /places/sets/{setID}.
func (h *HandlerImpl) GetSet(w http.ResponseWriter, r *http.Request) {
	setID := chi.URLParam(r, "setID")

	ws, err := h.placesService.GetSet(r.Context(), setID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, ws)
}

// ToggleLock handles POST /places/sets/{setID}/lock/{placeID}.
func (h *HandlerImpl) ToggleLock(w http.ResponseWriter, r *http.Request) {
	setID := chi.URLParam(r, "setID")
	placeID := chi.URLParam(r, "placeID")

	ws, err := h.placesService.ToggleLock(r.Context(), setID, placeID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, ws)
}

// Refresh handles POST /places/sets/{setID}/refresh.
func (h *HandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Refresh"))
	setID := chi.URLParam(r, "setID")

	ws, err := h.placesService.Refresh(r.Context(), setID)
	if err != nil {
		if errors.Is(err, ErrAllLocked) {
			api.ErrorResponse(w, r, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, ErrSetNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, err.Error())
			return
		}
		l.ErrorContext(r.Context(), "Working set refresh failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to refresh working set")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, ws)
}

func (h *HandlerImpl) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrSetNotFound) {
		api.ErrorResponse(w, r, http.StatusNotFound, err.Error())
		return
	}
	api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

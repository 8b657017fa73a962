package survey

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daytrip-ai/daytrip-server/internal/api"
)

type HandlerImpl struct {
	surveyService Service
	logger        *slog.Logger
}

func NewHandlerImpl(surveyService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		surveyService: surveyService,
		logger:        logger,
	}
}

// Start handles POST /survey/start.
func (h *HandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Start"))

	var req StartRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(r.Context(), "Invalid start request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.surveyService.Start(r.Context(), req.Location)
	if err != nil {
		l.WarnContext(r.Context(), "Failed to start survey", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, resp)
}

// Answer handles POST /survey/{sessionID}/answer.
func (h *HandlerImpl) Answer(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Answer"))
	sessionID := chi.URLParam(r, "sessionID")

	var req AnswerRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(r.Context(), "Invalid answer request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.surveyService.Answer(r.Context(), sessionID, req.Value)
	if err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Back handles POST /survey/{sessionID}/back.
func (h *HandlerImpl) Back(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Back"))
	sessionID := chi.URLParam(r, "sessionID")

	resp, err := h.surveyService.Back(r.Context(), sessionID)
	if err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// State handles GET /survey/{sessionID}.
func (h *HandlerImpl) State(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "State"))
	sessionID := chi.URLParam(r, "sessionID")

	resp, err := h.surveyService.State(r.Context(), sessionID)
	if err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Result handles GET /survey/{sessionID}/result.
func (h *HandlerImpl) Result(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Result"))
	sessionID := chi.URLParam(r, "sessionID")

	profile, err := h.surveyService.Result(r.Context(), sessionID)
	if err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, profile)
}

func (h *HandlerImpl) writeServiceError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidOption), errors.Is(err, ErrAtRoot),
		errors.Is(err, ErrAlreadyCompleted), errors.Is(err, ErrNotCompleted):
		api.ErrorResponse(w, r, http.StatusConflict, err.Error())
	default:
		l.ErrorContext(r.Context(), "Survey operation failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "internal server error")
	}
}

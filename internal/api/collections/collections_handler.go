package collections

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	appMiddleware "github.com/daytrip-ai/daytrip-server/app/middleware"
	"github.com/daytrip-ai/daytrip-server/internal/api"
)

type HandlerImpl struct {
	collectionsService Service
	logger             *slog.Logger
}

func NewHandlerImpl(collectionsService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		collectionsService: collectionsService,
		logger:             logger,
	}
}

func (h *HandlerImpl) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := appMiddleware.GetUserIDFromContext(r.Context())
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}

// ListItineraries handles GET /itineraries.
func (h *HandlerImpl) ListItineraries(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "ListItineraries"))

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	itineraries, err := h.collectionsService.ListItineraries(r.Context(), userID)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to list itineraries", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get itineraries")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{"success": true, "itineraries": itineraries})
}

// GetItinerary handles GET /itineraries/{id}.
func (h *HandlerImpl) GetItinerary(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "GetItinerary"))

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	itinerary, err := h.collectionsService.GetItinerary(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrItineraryNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
			return
		}
		l.ErrorContext(r.Context(), "Failed to get itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get itinerary")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{"success": true, "itinerary": itinerary})
}

// CreateItinerary handles POST /itineraries.
func (h *HandlerImpl) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "CreateItinerary"))

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req CreateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	itinerary, err := h.collectionsService.CreateItinerary(r.Context(), userID, req)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to create itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create itinerary")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]any{"success": true, "itinerary": itinerary})
}

// DeleteItinerary handles DELETE /itineraries/{id}.
func (h *HandlerImpl) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "DeleteItinerary"))

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.collectionsService.DeleteItinerary(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		l.ErrorContext(r.Context(), "Failed to delete itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete itinerary")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{"success": true})
}

// ListBookmarks handles GET /bookmarks.
func (h *HandlerImpl) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "ListBookmarks"))

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	bookmarks, err := h.collectionsService.ListBookmarks(r.Context(), userID)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to list bookmarks", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get bookmarks")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{"success": true, "bookmarks": bookmarks})
}

// CreateBookmark handles POST /bookmarks.
func (h *HandlerImpl) CreateBookmark(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "CreateBookmark"))

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req CreateBookmarkRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	bookmark, err := h.collectionsService.CreateBookmark(r.Context(), userID, req)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to create bookmark", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to add bookmark")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]any{"success": true, "bookmark": bookmark})
}

// DeleteBookmark handles DELETE /bookmarks/{id}.
func (h *HandlerImpl) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "DeleteBookmark"))

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.collectionsService.DeleteBookmark(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		l.ErrorContext(r.Context(), "Failed to delete bookmark", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to remove bookmark")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{"success": true})
}

// CheckBookmark handles GET /bookmarks/check/{placeId}.
func (h *HandlerImpl) CheckBookmark(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "CheckBookmark"))

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	isBookmarked, err := h.collectionsService.IsBookmarked(r.Context(), userID, chi.URLParam(r, "placeId"))
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to check bookmark", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to check bookmark")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{"success": true, "isBookmarked": isBookmarked})
}

// ListReviews handles GET /reviews.
func (h *HandlerImpl) ListReviews(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "ListReviews"))

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	reviews, err := h.collectionsService.ListReviews(r.Context(), userID)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to list reviews", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get reviews")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{"success": true, "reviews": reviews})
}

// ListPlaceReviews handles GET /reviews/place/{placeId}. Public: place
// reviews render for signed-out visitors too.
func (h *HandlerImpl) ListPlaceReviews(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "ListPlaceReviews"))

	reviews, err := h.collectionsService.ListPlaceReviews(r.Context(), chi.URLParam(r, "placeId"))
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to list place reviews", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get place reviews")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{"success": true, "reviews": reviews})
}

// CreateReview handles POST /reviews.
func (h *HandlerImpl) CreateReview(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "CreateReview"))

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	userName, _ := appMiddleware.GetUserNameFromContext(r.Context())
	userEmail, _ := appMiddleware.GetUserEmailFromContext(r.Context())

	var req CreateReviewRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	review, err := h.collectionsService.CreateReview(r.Context(), userID, userName, userEmail, req)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to create review", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create review")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]any{"success": true, "review": review})
}

// DeleteReview handles DELETE /reviews/{id}.
func (h *HandlerImpl) DeleteReview(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "DeleteReview"))

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.collectionsService.DeleteReview(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		l.ErrorContext(r.Context(), "Failed to delete review", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{"success": true})
}

package auth

import (
	"errors"
	"log/slog"
	"net/http"

	appMiddleware "github.com/daytrip-ai/daytrip-server/app/middleware"
	"github.com/daytrip-ai/daytrip-server/internal/api"
)

type HandlerImpl struct {
	authService Service
	logger      *slog.Logger
}

func NewHandlerImpl(authService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		authService: authService,
		logger:      logger,
	}
}

// SignUp handles POST /auth/signup.
func (h *HandlerImpl) SignUp(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "SignUp"))

	var req SignUpRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Email and password are required")
		return
	}

	resp, err := h.authService.SignUp(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			api.ErrorResponse(w, r, http.StatusConflict, "Email already registered")
			return
		}
		l.ErrorContext(r.Context(), "Sign up failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Sign up failed")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, resp)
}

// SignIn handles POST /auth/signin.
func (h *HandlerImpl) SignIn(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "SignIn"))

	var req SignInRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Email and password are required")
		return
	}

	resp, err := h.authService.SignIn(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		l.ErrorContext(r.Context(), "Sign in failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Sign in failed")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Me handles GET /auth/me. Runs behind the authentication middleware, which
// puts the verified user ID on the context.
func (h *HandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Me"))

	userID, ok := appMiddleware.GetUserIDFromContext(r.Context())
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}
		l.ErrorContext(r.Context(), "Failed to load current user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

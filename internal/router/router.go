package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/daytrip-ai/daytrip-server/internal/api/auth"
	"github.com/daytrip-ai/daytrip-server/internal/api/collections"
	"github.com/daytrip-ai/daytrip-server/internal/api/places"
	"github.com/daytrip-ai/daytrip-server/internal/api/recommend"
	"github.com/daytrip-ai/daytrip-server/internal/api/route"
	"github.com/daytrip-ai/daytrip-server/internal/api/status"
	"github.com/daytrip-ai/daytrip-server/internal/api/survey"
	"github.com/daytrip-ai/daytrip-server/internal/api/weather"
)

// Config carries the handlers and middleware the router mounts.
type Config struct {
	AuthHandler        *auth.HandlerImpl
	SurveyHandler      *survey.HandlerImpl
	PlacesHandler      *places.HandlerImpl
	RouteHandler       *route.HandlerImpl
	RecommendHandler   *recommend.HandlerImpl
	WeatherHandler     *weather.HandlerImpl
	CollectionsHandler *collections.HandlerImpl
	StatusHandler      *status.HandlerImpl

	AuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter wires all API routes. Server-wide middleware (request ID,
// logging, recoverer) is applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	r.Get("/health", cfg.StatusHandler.Health)
	r.Get("/status", cfg.StatusHandler.Status)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes: the planning flow works without an account.
		r.Group(func(r chi.Router) {
			r.Post("/auth/signup", cfg.AuthHandler.SignUp)
			r.Post("/auth/signin", cfg.AuthHandler.SignIn)

			r.Post("/survey/start", cfg.SurveyHandler.Start)
			r.Post("/survey/{sessionID}/answer", cfg.SurveyHandler.Answer)
			r.Post("/survey/{sessionID}/back", cfg.SurveyHandler.Back)
			r.Get("/survey/{sessionID}", cfg.SurveyHandler.State)
			r.Get("/survey/{sessionID}/result", cfg.SurveyHandler.Result)

			r.Post("/places/select", cfg.PlacesHandler.Select)
			r.Post("/places/analyze", cfg.PlacesHandler.Analyze)
			r.Post("/places/sets", cfg.PlacesHandler.CreateSet)
			r.Get("/places/sets/{setID}", cfg.PlacesHandler.GetSet)
			r.Post("/places/sets/{setID}/lock/{placeID}", cfg.PlacesHandler.ToggleLock)
			r.Post("/places/sets/{setID}/refresh", cfg.PlacesHandler.Refresh)

			r.Post("/route/calculate", cfg.RouteHandler.Calculate)
			r.Post("/route/optimize", cfg.RouteHandler.Optimize)

			r.Post("/recommend", cfg.RecommendHandler.Recommend)
			r.Get("/weather/{city}", cfg.WeatherHandler.Current)

			r.Get("/reviews/place/{placeId}", cfg.CollectionsHandler.ListPlaceReviews)
		})

		// Protected routes: everything tied to a user account.
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Get("/auth/me", cfg.AuthHandler.Me)

			r.Get("/itineraries", cfg.CollectionsHandler.ListItineraries)
			r.Post("/itineraries", cfg.CollectionsHandler.CreateItinerary)
			r.Get("/itineraries/{id}", cfg.CollectionsHandler.GetItinerary)
			r.Delete("/itineraries/{id}", cfg.CollectionsHandler.DeleteItinerary)

			r.Get("/bookmarks", cfg.CollectionsHandler.ListBookmarks)
			r.Post("/bookmarks", cfg.CollectionsHandler.CreateBookmark)
			r.Delete("/bookmarks/{id}", cfg.CollectionsHandler.DeleteBookmark)
			r.Get("/bookmarks/check/{placeId}", cfg.CollectionsHandler.CheckBookmark)

			r.Get("/reviews", cfg.CollectionsHandler.ListReviews)
			r.Post("/reviews", cfg.CollectionsHandler.CreateReview)
			r.Delete("/reviews/{id}", cfg.CollectionsHandler.DeleteReview)
		})
	})

	return r
}

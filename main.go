package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/daytrip-ai/daytrip-server/app/db"
	appLogger "github.com/daytrip-ai/daytrip-server/app/logger"
	appMiddleware "github.com/daytrip-ai/daytrip-server/app/middleware"
	"github.com/daytrip-ai/daytrip-server/app/observability/metrics"
	"github.com/daytrip-ai/daytrip-server/app/tracer"
	"github.com/daytrip-ai/daytrip-server/config"
	"github.com/daytrip-ai/daytrip-server/internal/api/auth"
	"github.com/daytrip-ai/daytrip-server/internal/api/collections"
	generativeAI "github.com/daytrip-ai/daytrip-server/internal/api/generative_ai"
	"github.com/daytrip-ai/daytrip-server/internal/api/places"
	"github.com/daytrip-ai/daytrip-server/internal/api/recommend"
	"github.com/daytrip-ai/daytrip-server/internal/api/route"
	"github.com/daytrip-ai/daytrip-server/internal/api/status"
	"github.com/daytrip-ai/daytrip-server/internal/api/survey"
	"github.com/daytrip-ai/daytrip-server/internal/api/weather"
	"github.com/daytrip-ai/daytrip-server/internal/kv"
	"github.com/daytrip-ai/daytrip-server/internal/router"
)

const version = "1.0.0"

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger(cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tracer.InitTracingAndMetrics(cfg.Handlers.Prometheus.Port)
	metrics.InitAppMetrics()

	// --- Database Setup ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Services and Handlers ---
	store := kv.NewPostgresStore(pool, logger)

	jwtSecret := []byte(os.Getenv("JWT_SECRET_KEY"))
	if len(jwtSecret) == 0 {
		logger.Error("JWT_SECRET_KEY is not set, exiting.")
		os.Exit(1)
	}
	authService := auth.NewServiceImpl(store, auth.Options{
		Secret:     jwtSecret,
		Issuer:     cfg.JWT.Issuer,
		Audience:   cfg.JWT.Audience,
		AccessTTL:  cfg.JWT.AccessTTL,
		BcryptCost: cfg.JWT.BcryptCost,
	}, logger)
	authHandler := auth.NewHandlerImpl(authService, logger)

	surveyService := survey.NewServiceImpl(logger)
	surveyHandler := survey.NewHandlerImpl(surveyService, logger)

	kakaoKey := os.Getenv("KAKAO_REST_API_KEY")
	placesClient := places.NewKakaoPlacesClient(cfg.Providers.Places.BaseURL, kakaoKey, cfg.Providers.Places.Timeout, logger)
	placesService := places.NewServiceImpl(placesClient, logger)
	placesHandler := places.NewHandlerImpl(placesService, logger)

	directionsClient := route.NewKakaoDirectionsClient(cfg.Providers.Directions.BaseURL, kakaoKey, cfg.Providers.Directions.Timeout, logger)
	routeService := route.NewServiceImpl(directionsClient, logger)
	routeHandler := route.NewHandlerImpl(routeService, logger)

	var aiProvider recommend.AIProvider
	aiClient, err := generativeAI.NewAIClient(ctx, cfg.Providers.Gemini.Model)
	if err != nil {
		logger.Warn("AI client unavailable, recommendations will use local fallback", slog.Any("error", err))
	} else {
		aiProvider = aiClient
	}
	recommendService := recommend.NewServiceImpl(aiProvider, logger)
	recommendHandler := recommend.NewHandlerImpl(recommendService, logger)

	weatherClient := weather.NewOpenWeatherClient(cfg.Providers.Weather.BaseURL, os.Getenv("OPENWEATHER_API_KEY"), cfg.Providers.Weather.Timeout, logger)
	weatherService := weather.NewServiceImpl(weatherClient, logger)
	weatherHandler := weather.NewHandlerImpl(weatherService, logger)

	collectionsService := collections.NewServiceImpl(store, logger)
	collectionsHandler := collections.NewHandlerImpl(collectionsService, logger)

	statusService := status.NewServiceImpl(statusChecks(pool), logger)
	statusHandler := status.NewHandlerImpl(statusService, version, logger)

	// --- Router Setup ---
	apiRouter := router.SetupRouter(&router.Config{
		AuthHandler:            authHandler,
		SurveyHandler:          surveyHandler,
		PlacesHandler:          placesHandler,
		RouteHandler:           routeHandler,
		RecommendHandler:       recommendHandler,
		WeatherHandler:         weatherHandler,
		CollectionsHandler:     collectionsHandler,
		StatusHandler:          statusHandler,
		AuthenticateMiddleware: appMiddleware.Authenticate(jwtSecret, cfg.JWT.Audience),
	})

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(60 * time.Second))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", apiRouter)

	// --- HTTP Server Setup ---
	serverAddress := cfg.Server.HTTPPort
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
	logger.Info("Application shut down complete.")
}

// statusChecks lists the dependencies the /status endpoint probes.
func statusChecks(pool *pgxpool.Pool) []status.Check {
	return []status.Check{
		{
			Name: "postgres",
			Fn: func(ctx context.Context) error {
				return pool.Ping(ctx)
			},
		},
	}
}

// setupLogger configures the application logger: colored text in development,
// JSON elsewhere.
func setupLogger(mode string) *slog.Logger {
	if mode == "development" || mode == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger := slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
		return logger
	}

	jsonOpts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
	log.Println("Initialized production logger (JSON)")
	return logger
}

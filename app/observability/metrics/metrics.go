package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	SurveyCompletionsTotal      metric.Int64Counter
	RouteComputeDurationSeconds metric.Float64Histogram
	RecommendationRequestsTotal metric.Int64Counter
	ProviderFallbacksTotal      metric.Int64Counter
	KvQueryDurationSeconds      metric.Float64Histogram
	KvQueryErrorsTotal          metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments once, using the
// globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("daytrip-server")
		var err error
		m := &AppMetrics{}

		m.SurveyCompletionsTotal, err = meter.Int64Counter(
			"survey_completions_total",
			metric.WithDescription("Total number of surveys finalized into a travel profile"),
			metric.WithUnit("{survey}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create survey_completions_total: %v", err)
		}

		m.RouteComputeDurationSeconds, err = meter.Float64Histogram(
			"route_compute_duration_seconds",
			metric.WithDescription("Duration of full route computations in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create route_compute_duration_seconds: %v", err)
		}

		m.RecommendationRequestsTotal, err = meter.Int64Counter(
			"recommendation_requests_total",
			metric.WithDescription("Total number of AI recommendation requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create recommendation_requests_total: %v", err)
		}

		m.ProviderFallbacksTotal, err = meter.Int64Counter(
			"provider_fallbacks_total",
			metric.WithDescription("Total number of upstream provider calls served from mock fallbacks"),
			metric.WithUnit("{fallback}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create provider_fallbacks_total: %v", err)
		}

		m.KvQueryDurationSeconds, err = meter.Float64Histogram(
			"kv_query_duration_seconds",
			metric.WithDescription("Duration of key-value store queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create kv_query_duration_seconds: %v", err)
		}

		m.KvQueryErrorsTotal, err = meter.Int64Counter(
			"kv_query_errors_total",
			metric.WithDescription("Total number of key-value store query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create kv_query_errors_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance. Panics if
// InitAppMetrics was not called at startup.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

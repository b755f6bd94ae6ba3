package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	PlanRunsTotal           metric.Int64Counter
	GenerationFailuresTotal metric.Int64Counter
	RoutingFailuresTotal    metric.Int64Counter
	RunDurationSeconds      metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("DayTripPlanner")
		var err error
		m := &AppMetrics{}

		m.PlanRunsTotal, err = meter.Int64Counter(
			"plan_runs_total",
			metric.WithDescription("Total number of planning pipeline runs settled"),
			metric.WithUnit("{run}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_runs_total: %v", err)
		}

		m.GenerationFailuresTotal, err = meter.Int64Counter(
			"generation_failures_total",
			metric.WithDescription("Total number of runs that failed itinerary generation"),
			metric.WithUnit("{run}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create generation_failures_total: %v", err)
		}

		m.RoutingFailuresTotal, err = meter.Int64Counter(
			"routing_failures_total",
			metric.WithDescription("Total number of runs where route computation failed"),
			metric.WithUnit("{run}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create routing_failures_total: %v", err)
		}

		m.RunDurationSeconds, err = meter.Float64Histogram(
			"plan_run_duration_seconds",
			metric.WithDescription("Duration of planning pipeline runs in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_run_duration_seconds: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

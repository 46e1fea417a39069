package analysis

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("ngaudit.analysis")
	meter  = otel.Meter("ngaudit.analysis")
)

var (
	runDuration metric.Float64Histogram
	issuesFound metric.Int64Counter
	ruleFaults  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments once. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		runDuration, err = meter.Float64Histogram(
			"analysis_run_duration_seconds",
			metric.WithDescription("Duration of analysis runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		issuesFound, err = meter.Int64Counter(
			"analysis_issues_total",
			metric.WithDescription("Issues found per category before the severity floor"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		ruleFaults, err = meter.Int64Counter(
			"analysis_rule_faults_total",
			metric.WithDescription("Rules that failed internally"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordCategoryMetrics(ctx context.Context, category string, issues, faults int) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("category", category))
	issuesFound.Add(ctx, int64(issues), attrs)
	if faults > 0 {
		ruleFaults.Add(ctx, int64(faults), attrs)
	}
}

func recordRunMetrics(ctx context.Context, duration time.Duration, success bool) {
	if err := initMetrics(); err != nil {
		return
	}
	runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.Bool("success", success)))
}

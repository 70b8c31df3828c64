package main

import (
	"context"
	"fmt"

	"calculation-console/internal/calculator"
	"calculation-console/internal/observability"
)

// initMetrics starts the OTLP meter provider and registers the calculation
// API instruments on it. The console's action counters are promauto
// counters on the Prometheus default registry and need no setup here.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("calculator metrics: %w", err)
	}

	return shutdown, nil
}

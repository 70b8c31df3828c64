package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"calculation-console/internal/auth"
	"calculation-console/internal/calculator"
	"calculation-console/internal/console"
	"calculation-console/internal/handlers"
	"calculation-console/internal/observability"
	"calculation-console/internal/report"
)

// Deps are the handlers and services the router mounts.
type Deps struct {
	Tokens     *auth.TokenManager
	Auth       *auth.Handler
	Calculator *calculator.Handler
	Report     *report.Handler
	Console    *console.Handler
}

func NewRouter(d Deps) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(auth.Authenticate(d.Tokens))

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	d.Auth.RegisterRoutes(r)
	d.Calculator.RegisterRoutes(r)
	d.Report.RegisterRoutes(r)
	d.Console.RegisterRoutes(r)

	return r
}

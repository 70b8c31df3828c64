package report

import (
	"net/http"

	"calculation-console/internal/auth"
	"calculation-console/internal/handlers"
	"calculation-console/internal/observability"
	"calculation-console/internal/store"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("report")

// Handler serves /reports.
type Handler struct {
	repo *store.Calculations
}

// NewHandler creates a report Handler.
func NewHandler(repo *store.Calculations) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts the report endpoints. They require an authenticated
// user; auth.Authenticate must run earlier in the chain.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Get("/summary", h.Summary)
	})
}

// Summary handles GET /reports/summary over all stored calculations.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "report.summary")
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	all, err := h.repo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load calculations")
		logger.Error("building usage summary failed",
			zap.Error(err),
			zap.String("request_id", observability.RequestIDFromContext(ctx)),
		)
		handlers.WriteError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	summary := BuildUsageSummary(all)
	span.SetAttributes(attribute.Int("report.total_calculations", summary.TotalCalculations))
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, summary)
}

package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"calculation-console/internal/auth"
	"calculation-console/internal/calculation"
	"calculation-console/internal/handlers"
	"calculation-console/internal/observability"
	"calculation-console/internal/store"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculation API's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

const (
	msgNotFound  = "Calculation not found"
	msgNotFinite = "Result is not a finite number"
)

// Handler serves the calculation BREAD endpoints.
type Handler struct {
	repo *store.Calculations
}

// NewHandler creates a Handler backed by repo.
func NewHandler(repo *store.Calculations) *Handler {
	return &Handler{repo: repo}
}

// ---------------------------------------------------------------------------
// Browse / Read
// ---------------------------------------------------------------------------

// Browse handles GET /calculations.
func (h *Handler) Browse(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "browse")
	defer span.End()
	start := time.Now()

	all, err := h.repo.FindAll(ctx)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "browse", "failed to list calculations", err, http.StatusInternalServerError, w)
		return
	}

	out := make([]Response, 0, len(all))
	for _, c := range all {
		out = append(out, newResponse(c))
	}

	span.SetAttributes(attribute.Int("calculator.count", len(out)))
	recordOp(ctx, span, "browse", start)

	handlers.WriteJSON(w, http.StatusOK, out)
}

// Read handles GET /calculations/{id}.
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "read")
	defer span.End()
	start := time.Now()

	id, ok := h.parseID(ctx, span, logger, "read", w, r)
	if !ok {
		return
	}

	c, err := h.repo.FindByID(ctx, id)
	if err != nil {
		h.storeError(ctx, span, logger, "read", err, w)
		return
	}

	recordOp(ctx, span, "read", start)
	handlers.WriteJSON(w, http.StatusOK, newResponse(c))
}

// ---------------------------------------------------------------------------
// Add / Edit / Delete
// ---------------------------------------------------------------------------

// Add handles POST /calculations. The result is computed server-side.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "add")
	defer span.End()
	start := time.Now()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "add", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	a, b := req.a(), req.b()
	if a == nil || b == nil {
		observability.RecordError(ctx, span, logger, errorCounter, "add", "a and b are required", fmt.Errorf("a=%v b=%v", a, b), http.StatusBadRequest, w)
		return
	}

	c := &store.Calculation{A: *a, B: *b}
	if uid, ok := auth.UserID(ctx); ok {
		c.UserID = &uid
	}

	if !h.apply(ctx, span, logger, "add", req.op(), c, w) {
		return
	}

	if err := h.repo.Create(ctx, c); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "add", "failed to save calculation", err, http.StatusInternalServerError, w)
		return
	}

	span.SetAttributes(attribute.Int64("calculator.id", int64(c.ID)))
	recordOp(ctx, span, "add", start)
	logger.Info("calculation created",
		zap.Uint("id", c.ID),
		zap.String("operation", c.Type),
		zap.Float64("a", c.A),
		zap.Float64("b", c.B),
		zap.Float64p("result", c.Result),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, newResponse(c))
}

// Edit handles PUT /calculations/{id}. Omitted fields keep their stored
// value and the result is recomputed.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "edit")
	defer span.End()
	start := time.Now()

	id, ok := h.parseID(ctx, span, logger, "edit", w, r)
	if !ok {
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "edit", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	c, err := h.repo.FindByID(ctx, id)
	if err != nil {
		h.storeError(ctx, span, logger, "edit", err, w)
		return
	}

	if a := req.a(); a != nil {
		c.A = *a
	}
	if b := req.b(); b != nil {
		c.B = *b
	}
	op := req.op()
	if op == "" {
		op = c.Type
	}

	if !h.apply(ctx, span, logger, "edit", op, c, w) {
		return
	}

	if err := h.repo.Update(ctx, c); err != nil {
		h.storeError(ctx, span, logger, "edit", err, w)
		return
	}

	recordOp(ctx, span, "edit", start)
	logger.Info("calculation updated",
		zap.Uint("id", c.ID),
		zap.String("operation", c.Type),
		zap.Float64p("result", c.Result),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, newResponse(c))
}

// Delete handles DELETE /calculations/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "delete")
	defer span.End()
	start := time.Now()

	id, ok := h.parseID(ctx, span, logger, "delete", w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		h.storeError(ctx, span, logger, "delete", err, w)
		return
	}

	recordOp(ctx, span, "delete", start)
	logger.Info("calculation deleted",
		zap.Uint("id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// startSpan opens the child span for an API operation and returns a
// trace-correlated logger.
func startSpan(r *http.Request, opName string) (context.Context, trace.Span, *zap.Logger) {
	ctx, span := tracer.Start(r.Context(), "calculator."+opName,
		trace.WithAttributes(
			attribute.String("calculator.api_operation", opName),
			attribute.String("request.id", observability.RequestIDFromContext(r.Context())),
		),
	)
	return ctx, span, observability.LoggerWithTrace(ctx)
}

// apply validates the operation name, computes the result and stores both
// on c. It writes the error response and returns false on failure.
func (h *Handler) apply(ctx context.Context, span trace.Span, logger *zap.Logger, opName, rawOp string, c *store.Calculation, w http.ResponseWriter) bool {
	if rawOp == "" {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "operation is required", errors.New("missing operation"), http.StatusBadRequest, w)
		return false
	}

	op, ok := calculation.ParseOperation(rawOp)
	if !ok {
		msg := "Unsupported operation: " + rawOp
		observability.RecordError(ctx, span, logger, errorCounter, opName, msg, calculation.ErrUnsupportedOperation, http.StatusBadRequest, w)
		return false
	}

	span.SetAttributes(
		attribute.String("calculator.operation", string(op)),
		attribute.Float64("calculator.operand.a", c.A),
		attribute.Float64("calculator.operand.b", c.B),
	)

	result, err := calculation.Compute(op, c.A, c.B)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return false
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, msgNotFinite,
			fmt.Errorf("%s(%g, %g) = %g", op, c.A, c.B, result), http.StatusBadRequest, w)
		return false
	}

	c.Type = string(op)
	c.Result = &result

	span.AddEvent("computation.complete", trace.WithAttributes(attribute.Float64("result", result)))
	resultGauge.Record(ctx, result, metric.WithAttributes(attribute.String("operation", string(op))))

	return true
}

func (h *Handler) parseID(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, opName, msgNotFound, fmt.Errorf("invalid id %q", raw), http.StatusNotFound, w)
		return 0, false
	}
	span.SetAttributes(attribute.Int64("calculator.id", int64(id)))
	return uint(id), true
}

func (h *Handler) storeError(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, err error, w http.ResponseWriter) {
	if errors.Is(err, store.ErrNotFound) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, msgNotFound, err, http.StatusNotFound, w)
		return
	}
	observability.RecordError(ctx, span, logger, errorCounter, opName, "storage failure", err, http.StatusInternalServerError, w)
}

// recordOp records the counter and latency histogram and marks the span ok.
func recordOp(ctx context.Context, span trace.Span, opName string, start time.Time) {
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)

	span.SetAttributes(attribute.Float64("duration_ms", elapsed))
	span.SetStatus(codes.Ok, "")
}

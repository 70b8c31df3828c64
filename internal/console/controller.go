// Package console is the server-rendered calculation console and usage
// report. The form controller is an explicit state machine over State;
// every transition returns a View to render.
package console

import (
	"context"
	"errors"
	"fmt"

	"calculation-console/internal/calculation"
	"calculation-console/internal/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Messages shown on the console's message line.
const (
	MsgCreated       = "Calculation created."
	MsgUpdated       = "Calculation updated."
	MsgSaveFailed    = "Failed to save calculation."
	MsgLoadFailed    = "Failed to load calculations."
	MsgDeleteFailed  = "Failed to delete calculation."
	MsgDuplicate     = "This form was already submitted."
	MsgDeleteRunning = "Delete already in progress."
	MsgEditFailed    = "Failed to load calculation."
)

var tracer = otel.Tracer("console")

// Backend is the calculation API as the console uses it.
type Backend interface {
	List(ctx context.Context) ([]calculation.Calculation, error)
	Get(ctx context.Context, id string) (calculation.Calculation, error)
	Create(ctx context.Context, v calculation.Validated) (calculation.Calculation, error)
	Update(ctx context.Context, id string, v calculation.Validated) (calculation.Calculation, error)
	Delete(ctx context.Context, id string) error
}

// View is the result of a controller transition. Fresh reports whether
// Rows came from a list request made during the transition.
type View struct {
	State State
	Rows  []calculation.Calculation
	Fresh bool
}

// Controller drives the form.
type Controller struct {
	backend  Backend
	guard    *Guard
	newToken func() string
}

// NewController creates a Controller. A nil guard disables duplicate
// detection.
func NewController(b Backend, g *Guard) *Controller {
	if g == nil {
		g = NewGuard(0)
	}
	return &Controller{backend: b, guard: g, newToken: uuid.NewString}
}

// WithBackend returns a copy of c that talks to b and shares c's guard.
func (c *Controller) WithBackend(b Backend) *Controller {
	cp := *c
	cp.backend = b
	return &cp
}

// Start is the initial state: create mode, add selected, fields empty.
func (c *Controller) Start() State {
	return State{Mode: ModeCreate, Operation: string(calculation.Add), Token: c.newToken()}
}

// Reset returns the form to create mode.
func (c *Controller) Reset() State {
	return c.Start()
}

// Edit loads calc into the form. Operations the form doesn't know fall
// back to add.
func (c *Controller) Edit(calc calculation.Calculation) State {
	op := string(calculation.Add)
	if parsed, ok := calculation.ParseOperation(calc.Operation); ok {
		op = string(parsed)
	}
	return State{
		Mode:      ModeEdit,
		ID:        calc.ID,
		Operation: op,
		A:         formatNumber(calc.A),
		B:         formatNumber(calc.B),
		Token:     c.newToken(),
	}
}

// EditByID fetches the record with id and loads it into the form. When the
// fetch fails, st is kept with an error.
func (c *Controller) EditByID(ctx context.Context, st State, id string) View {
	ctx, span := tracer.Start(ctx, "console.edit")
	defer span.End()
	span.SetAttributes(attribute.String("calculation.id", id))

	calc, err := c.backend.Get(ctx, id)
	if err != nil {
		c.logFailure(ctx, "edit", err, zap.String("calculation_id", id))
		span.RecordError(err)
		span.SetStatus(codes.Error, "edit failed")
		countAction("edit", outcomeError)
		return c.Load(ctx, st.clearMessages().withError(MsgEditFailed))
	}
	countAction("edit", outcomeOK)
	return c.Load(ctx, c.Edit(calc))
}

// Load lists calculations. Messages already on st are kept unless the
// list fails.
func (c *Controller) Load(ctx context.Context, st State) View {
	ctx, span := tracer.Start(ctx, "console.load")
	defer span.End()

	rows, err := c.backend.List(ctx)
	if err != nil {
		c.logFailure(ctx, "load", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		countAction("load", outcomeError)
		return View{State: st.withError(MsgLoadFailed)}
	}
	countAction("load", outcomeOK)
	return View{State: st, Rows: rows, Fresh: true}
}

// Submit validates the form and creates or updates. Validation failures
// and duplicate submissions issue no requests and leave the form as it
// was. A successful save resets the form and reloads the table.
func (c *Controller) Submit(ctx context.Context, st State) View {
	st = st.clearMessages()
	action := "create"
	if st.ID != "" {
		action = "update"
		st.Mode = ModeEdit
	} else {
		st.Mode = ModeCreate
	}

	ctx, span := tracer.Start(ctx, "console."+action)
	defer span.End()
	span.SetAttributes(attribute.String("calculation.id", st.ID))

	v, err := calculation.Validate(st.Input())
	if err != nil {
		var ve *calculation.ValidationError
		if !errors.As(err, &ve) {
			ve = &calculation.ValidationError{Message: err.Error()}
		}
		countAction(action, outcomeInvalid)
		return View{State: st.withError(ve.Message)}
	}

	if !c.guard.Begin(st.Token) {
		countAction(action, outcomeDuplicate)
		return View{State: st.withError(MsgDuplicate)}
	}

	if st.ID != "" {
		_, err = c.backend.Update(ctx, st.ID, v)
	} else {
		_, err = c.backend.Create(ctx, v)
	}
	c.guard.Finish(st.Token, err == nil)

	if err != nil {
		c.logFailure(ctx, action, err, zap.String("calculation_id", st.ID))
		span.RecordError(err)
		span.SetStatus(codes.Error, action+" failed")
		countAction(action, outcomeError)
		return View{State: st.withError(MsgSaveFailed)}
	}
	countAction(action, outcomeOK)

	msg := MsgCreated
	if action == "update" {
		msg = MsgUpdated
	}
	return c.Load(ctx, c.Reset().withSuccess(msg))
}

// Delete removes the calculation with id and reloads the table. The form
// is kept unless it holds the deleted record.
func (c *Controller) Delete(ctx context.Context, st State, id string) View {
	st = st.clearMessages()

	ctx, span := tracer.Start(ctx, "console.delete")
	defer span.End()
	span.SetAttributes(attribute.String("calculation.id", id))

	key := "delete:" + id
	if !c.guard.Begin(key) {
		countAction("delete", outcomeDuplicate)
		return View{State: st.withError(MsgDeleteRunning)}
	}
	err := c.backend.Delete(ctx, id)
	c.guard.Finish(key, false)

	if err != nil {
		c.logFailure(ctx, "delete", err, zap.String("calculation_id", id))
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		countAction("delete", outcomeError)
		return c.Load(ctx, st.withError(MsgDeleteFailed))
	}
	countAction("delete", outcomeOK)

	if st.ID == id {
		st = c.Reset()
	}
	return c.Load(ctx, st.withSuccess(fmt.Sprintf("Calculation %s deleted.", id)))
}

// logFailure sends the detailed error to the diagnostic log. The user only
// sees the generic message.
func (c *Controller) logFailure(ctx context.Context, action string, err error, fields ...zap.Field) {
	logger := observability.LoggerWithTrace(ctx)
	logger.Error("console action failed",
		append([]zap.Field{zap.String("action", action), zap.Error(err)}, fields...)...)
}

package calculation

import (
	"math"
	"strconv"
	"strings"
)

// User-facing validation messages, in the order the rules are checked.
const (
	MsgRequired     = "Both a and b are required."
	MsgNotNumbers   = "a and b must be numbers."
	MsgDivideByZero = "Cannot divide by zero."
)

// ValidationError describes the first rule an Input failed. It is raised
// before any request is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks in that order: both operands present, both numeric and
// finite, and no division by zero. An empty operation falls back to add.
func Validate(in Input) (Validated, error) {
	aText := strings.TrimSpace(in.A)
	bText := strings.TrimSpace(in.B)

	if aText == "" || bText == "" {
		return Validated{}, &ValidationError{Message: MsgRequired}
	}

	a, okA := parseFinite(aText)
	b, okB := parseFinite(bText)
	if !okA || !okB {
		return Validated{}, &ValidationError{Message: MsgNotNumbers}
	}

	op := Operation(strings.ToLower(strings.TrimSpace(in.Operation)))
	if op == "" {
		op = Add
	}

	if op == Divide && b == 0 {
		return Validated{}, &ValidationError{Message: MsgDivideByZero}
	}

	return Validated{Operation: op, A: a, B: b}, nil
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

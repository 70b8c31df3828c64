package console

import (
	"math"
	"strconv"

	"calculation-console/internal/calculation"
)

// Mode is the form controller's state.
type Mode int

const (
	// ModeCreate submits a new record.
	ModeCreate Mode = iota
	// ModeEdit submits an update to the loaded record.
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// State is everything the form shows: the mode, the loaded record ID, the
// raw field values, the submission token and the message line. It is
// round-tripped through the page's form so handlers stay stateless.
type State struct {
	Mode      Mode
	ID        string
	Operation string
	A         string
	B         string
	Token     string
	Error     string
	Success   string
}

// SubmitLabel is the submit button text for the current mode.
func (s State) SubmitLabel() string {
	if s.Mode == ModeEdit {
		return "Update"
	}
	return "Create"
}

// Input returns the form values for validation.
func (s State) Input() calculation.Input {
	return calculation.Input{Operation: s.Operation, A: s.A, B: s.B}
}

func (s State) clearMessages() State {
	s.Error = ""
	s.Success = ""
	return s
}

func (s State) withError(msg string) State {
	s.Error = msg
	s.Success = ""
	return s
}

func (s State) withSuccess(msg string) State {
	s.Success = msg
	s.Error = ""
	return s
}

// formatNumber renders f the way a browser prints a number: shortest
// round-trip digits, exponent only for very large or small magnitudes.
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

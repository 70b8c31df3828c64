package calculation

import (
	"errors"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		op   Operation
		a, b float64
		want float64
	}{
		{Add, 2, 3, 5},
		{Subtract, 2, 3, -1},
		{Multiply, 2, 3, 6},
		{Divide, 9, 3, 3},
	}

	for _, tc := range tests {
		t.Run(string(tc.op), func(t *testing.T) {
			got, err := Compute(tc.op, tc.a, tc.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %g, got %g", tc.want, got)
			}
		})
	}
}

func TestComputeErrors(t *testing.T) {
	if _, err := Compute(Divide, 1, 0); !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("expected ErrDivideByZero, got %v", err)
	}

	if _, err := Compute("power", 2, 3); !errors.Is(err, ErrUnsupportedOperation) {
		t.Fatalf("expected ErrUnsupportedOperation, got %v", err)
	}
}

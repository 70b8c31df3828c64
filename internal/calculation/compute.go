package calculation

import (
	"errors"
	"fmt"
)

var (
	// ErrDivideByZero is returned by Compute for divide with b == 0.
	ErrDivideByZero = errors.New("Cannot divide by zero")
	// ErrUnsupportedOperation is returned by Compute for unknown operations.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// Compute applies op to a and b.
func Compute(op Operation, a, b float64) (float64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Subtract:
		return a - b, nil
	case Multiply:
		return a * b, nil
	case Divide:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedOperation, op)
}

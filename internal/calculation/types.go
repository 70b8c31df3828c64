package calculation

import "strings"

// Operation names the arithmetic applied to a and b.
type Operation string

const (
	Add      Operation = "add"
	Subtract Operation = "subtract"
	Multiply Operation = "multiply"
	Divide   Operation = "divide"
)

// Operations lists the supported operations in selector order.
var Operations = []Operation{Add, Subtract, Multiply, Divide}

// ParseOperation lower-cases and trims s and reports whether the result is a
// supported operation.
func ParseOperation(s string) (Operation, bool) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	return op, op.Valid()
}

// Valid reports whether op is one of the supported operations.
func (op Operation) Valid() bool {
	switch op {
	case Add, Subtract, Multiply, Divide:
		return true
	}
	return false
}

// Calculation is the canonical in-memory shape of a calculation record,
// independent of the field names used on the wire.
type Calculation struct {
	ID        string   `json:"id"`
	Operation string   `json:"operation"`
	A         float64  `json:"a"`
	B         float64  `json:"b"`
	Result    *float64 `json:"result"`
	CreatedAt *string  `json:"created_at"`
}

// Input holds raw form values as typed by the user.
type Input struct {
	Operation string
	A         string
	B         string
}

// Validated is an Input that passed Validate.
type Validated struct {
	Operation Operation
	A         float64
	B         float64
}

// Payload is the request body sent on create and update. The operation is
// duplicated under "type" for servers that only read that key.
type Payload struct {
	Operation string  `json:"operation"`
	Type      string  `json:"type"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
}

// NewPayload builds the wire body for v.
func NewPayload(v Validated) Payload {
	return Payload{
		Operation: string(v.Operation),
		Type:      string(v.Operation),
		A:         v.A,
		B:         v.B,
	}
}

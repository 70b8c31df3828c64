package calculator

import (
	"time"

	"calculation-console/internal/store"
)

// Request is the JSON body of POST and PUT /calculations. The operation may
// arrive as "operation", "type" or "operator" and the operands as a/b or
// operand1/operand2; on PUT every field is optional.
type Request struct {
	Operation string   `json:"operation"`
	Type      string   `json:"type"`
	Operator  string   `json:"operator"`
	A         *float64 `json:"a"`
	Operand1  *float64 `json:"operand1"`
	B         *float64 `json:"b"`
	Operand2  *float64 `json:"operand2"`
}

// op returns the first non-empty operation alias.
func (r Request) op() string {
	for _, s := range []string{r.Operation, r.Type, r.Operator} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (r Request) a() *float64 {
	if r.A != nil {
		return r.A
	}
	return r.Operand1
}

func (r Request) b() *float64 {
	if r.B != nil {
		return r.B
	}
	return r.Operand2
}

// Response is the JSON shape of a stored calculation. The operation is
// exposed under both "operation" and "type".
type Response struct {
	ID        uint      `json:"id"`
	Operation string    `json:"operation"`
	Type      string    `json:"type"`
	A         float64   `json:"a"`
	B         float64   `json:"b"`
	Result    *float64  `json:"result"`
	CreatedAt time.Time `json:"created_at"`
	UserID    *uint     `json:"user_id,omitempty"`
}

func newResponse(c *store.Calculation) Response {
	return Response{
		ID:        c.ID,
		Operation: c.Type,
		Type:      c.Type,
		A:         c.A,
		B:         c.B,
		Result:    c.Result,
		CreatedAt: c.CreatedAt.UTC(),
		UserID:    c.UserID,
	}
}

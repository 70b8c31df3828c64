package calculation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Field aliases seen on calculation records, in lookup order.
var (
	operationKeys = []string{"operation", "type", "operator"}
	aKeys         = []string{"a", "operand1"}
	bKeys         = []string{"b", "operand2"}
)

// Normalize maps a decoded record onto the canonical Calculation. It never
// fails: unknown or malformed fields fall back to zero values, and a missing
// result or created_at stays nil.
func Normalize(raw map[string]any) Calculation {
	c := Calculation{
		ID:        formatID(raw["id"]),
		Operation: firstString(raw, operationKeys),
		A:         firstNumber(raw, aKeys),
		B:         firstNumber(raw, bKeys),
	}

	if v, ok := toFloat(raw["result"]); ok {
		c.Result = &v
	}

	switch v := raw["created_at"].(type) {
	case nil:
	case string:
		c.CreatedAt = &v
	default:
		s := fmt.Sprint(v)
		c.CreatedAt = &s
	}

	return c
}

// NormalizeAll normalizes every record, keeping order.
func NormalizeAll(raws []map[string]any) []Calculation {
	out := make([]Calculation, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}

// firstString returns the first non-empty string among keys.
func firstString(raw map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// firstNumber returns the first key that is present and not null. A present
// but non-numeric value yields 0 rather than falling through.
func firstNumber(raw map[string]any, keys []string) float64 {
	for _, k := range keys {
		v, present := raw[k]
		if !present || v == nil {
			continue
		}
		f, _ := toFloat(v)
		return f
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func formatID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

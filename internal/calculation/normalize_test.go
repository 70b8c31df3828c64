package calculation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ptr[T any](v T) *T { return &v }

func TestNormalizeMissingResultIsNil(t *testing.T) {
	got := Normalize(map[string]any{
		"id":        float64(4),
		"operation": "add",
		"a":         float64(1),
		"b":         float64(2),
	})

	want := Calculation{ID: "4", Operation: "add", A: 1, B: 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeAliasesMatchCanonicalShape(t *testing.T) {
	canonical := Normalize(map[string]any{
		"id":         float64(9),
		"operation":  "divide",
		"a":          float64(8),
		"b":          float64(2),
		"result":     float64(4),
		"created_at": "2025-11-30T10:00:00",
	})

	aliased := Normalize(map[string]any{
		"id":         float64(9),
		"type":       "divide",
		"operand1":   float64(8),
		"operand2":   float64(2),
		"result":     float64(4),
		"created_at": "2025-11-30T10:00:00",
	})

	operator := Normalize(map[string]any{
		"id":         float64(9),
		"operator":   "divide",
		"operand1":   float64(8),
		"operand2":   float64(2),
		"result":     float64(4),
		"created_at": "2025-11-30T10:00:00",
	})

	if diff := cmp.Diff(canonical, aliased); diff != "" {
		t.Fatalf("type/operand aliases differ (-canonical +aliased):\n%s", diff)
	}
	if diff := cmp.Diff(canonical, operator); diff != "" {
		t.Fatalf("operator alias differs (-canonical +operator):\n%s", diff)
	}
}

func TestNormalizePrecedence(t *testing.T) {
	got := Normalize(map[string]any{
		"operation": "",
		"type":      "multiply",
		"operator":  "add",
		"a":         float64(0),
		"operand1":  float64(7),
		"b":         nil,
		"operand2":  float64(3),
	})

	want := Calculation{Operation: "multiply", A: 0, B: 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeIsTotal(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want Calculation
	}{
		{name: "nil map", raw: nil, want: Calculation{}},
		{name: "empty map", raw: map[string]any{}, want: Calculation{}},
		{
			name: "wrong types",
			raw: map[string]any{
				"id":         []any{1},
				"operation":  42,
				"a":          "not a number",
				"b":          map[string]any{},
				"result":     "n/a",
				"created_at": float64(1700000000),
			},
			want: Calculation{ID: "[1]", CreatedAt: ptr("1.7e+09")},
		},
		{
			name: "numeric strings",
			raw:  map[string]any{"id": "abc", "a": "2.5", "b": " 4 ", "result": "10"},
			want: Calculation{ID: "abc", A: 2.5, B: 4, Result: ptr(10.0)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Normalize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeAllKeepsServerOrder(t *testing.T) {
	body := `[{"id":3,"type":"add","operand1":1,"operand2":2,"result":3},
	          {"id":1,"operation":"subtract","a":5,"b":4,"result":null}]`

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var raws []map[string]any
	if err := dec.Decode(&raws); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}

	got := NormalizeAll(raws)
	want := []Calculation{
		{ID: "3", Operation: "add", A: 1, B: 2, Result: ptr(3.0)},
		{ID: "1", Operation: "subtract", A: 5, B: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("NormalizeAll mismatch (-want +got):\n%s", diff)
	}
}

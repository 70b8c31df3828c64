package calculation

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		want    Validated
		wantMsg string
	}{
		{
			name: "add",
			in:   Input{Operation: "add", A: "10", B: "5"},
			want: Validated{Operation: Add, A: 10, B: 5},
		},
		{
			name: "decimal and negative operands",
			in:   Input{Operation: "multiply", A: "-2.5", B: " 4 "},
			want: Validated{Operation: Multiply, A: -2.5, B: 4},
		},
		{
			name: "empty operation defaults to add",
			in:   Input{A: "1", B: "2"},
			want: Validated{Operation: Add, A: 1, B: 2},
		},
		{
			name: "divide with non-zero b",
			in:   Input{Operation: "divide", A: "0", B: "2"},
			want: Validated{Operation: Divide, A: 0, B: 2},
		},
		{name: "both empty", in: Input{Operation: "add"}, wantMsg: MsgRequired},
		{name: "a empty", in: Input{Operation: "add", B: "3"}, wantMsg: MsgRequired},
		{name: "b whitespace", in: Input{Operation: "add", A: "3", B: "  "}, wantMsg: MsgRequired},
		{name: "a not a number", in: Input{Operation: "add", A: "ten", B: "3"}, wantMsg: MsgNotNumbers},
		{name: "b NaN", in: Input{Operation: "add", A: "1", B: "NaN"}, wantMsg: MsgNotNumbers},
		{name: "b infinite", in: Input{Operation: "add", A: "1", B: "Inf"}, wantMsg: MsgNotNumbers},
		{name: "required wins over numbers", in: Input{Operation: "divide", A: "x", B: ""}, wantMsg: MsgRequired},
		{name: "divide by zero", in: Input{Operation: "divide", A: "7", B: "0"}, wantMsg: MsgDivideByZero},
		{name: "divide by negative zero", in: Input{Operation: "divide", A: "-3", B: "-0.0"}, wantMsg: MsgDivideByZero},
		{name: "numbers wins over divide", in: Input{Operation: "divide", A: "x", B: "0"}, wantMsg: MsgNotNumbers},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Validate(tc.in)

			if tc.wantMsg != "" {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected *ValidationError, got %v", err)
				}
				if verr.Message != tc.wantMsg {
					t.Fatalf("expected message %q, got %q", tc.wantMsg, verr.Message)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestParseOperation(t *testing.T) {
	for _, s := range []string{"add", "Subtract", " MULTIPLY ", "divide"} {
		if _, ok := ParseOperation(s); !ok {
			t.Errorf("expected %q to parse", s)
		}
	}

	if op, ok := ParseOperation("modulo"); ok {
		t.Fatalf("expected modulo to be rejected, got %q", op)
	}
}

func TestNewPayloadDuplicatesOperationUnderType(t *testing.T) {
	p := NewPayload(Validated{Operation: Subtract, A: 3, B: 1})

	if p.Operation != "subtract" || p.Type != "subtract" {
		t.Fatalf("expected operation and type to be subtract, got %+v", p)
	}
	if p.A != 3 || p.B != 1 {
		t.Fatalf("unexpected operands %+v", p)
	}
}

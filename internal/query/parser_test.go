package query

import (
	"strings"
	"testing"
)

func TestParse_Comparison(t *testing.T) {
	expr, err := Parse("age > 1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cmp, ok := expr.(*ComparisonExpr)
	if !ok {
		t.Fatalf("Parse() = %T, want *ComparisonExpr", expr)
	}

	if cmp.Field != "age" {
		t.Errorf("Field = %q, want age", cmp.Field)
	}
	if cmp.Operator != TokenGreater {
		t.Errorf("Operator = %v, want TokenGreater", cmp.Operator)
	}
	if cmp.Value != int64(1) {
		t.Errorf("Value = %v (%T), want int64 1", cmp.Value, cmp.Value)
	}
}

func TestParse_Precedence(t *testing.T) {
	// AND binds tighter than OR
	expr, err := Parse("a = 1 or b = 2 and c = 3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	or, ok := expr.(*BinaryExpr)
	if !ok || or.Operator != TokenOr {
		t.Fatalf("top operator = %v, want OR", expr)
	}

	and, ok := or.Right.(*BinaryExpr)
	if !ok || and.Operator != TokenAnd {
		t.Fatalf("right operand = %v, want AND expression", or.Right)
	}
}

func TestParse_Parentheses(t *testing.T) {
	expr, err := Parse("(a = 1 or b = 2) and c = 3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	and, ok := expr.(*BinaryExpr)
	if !ok || and.Operator != TokenAnd {
		t.Fatalf("top operator = %v, want AND", expr)
	}

	or, ok := and.Left.(*BinaryExpr)
	if !ok || or.Operator != TokenOr {
		t.Fatalf("left operand = %v, want OR expression", and.Left)
	}
}

func TestParse_Literals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  interface{}
	}{
		{"integer", "x = 42", int64(42)},
		{"float", "x = 3.5", float64(3.5)},
		{"negative", "x = -7", int64(-7)},
		{"string", "x = 'y'", "y"},
		{"bool true", "x = true", true},
		{"bool false", "x = FALSE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			cmp := expr.(*ComparisonExpr)
			if cmp.Value != tt.want {
				t.Errorf("Value = %v (%T), want %v (%T)", cmp.Value, cmp.Value, tt.want, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing operator", "age 1"},
		{"missing value", "age >"},
		{"missing field", "> 1"},
		{"dangling and", "a = 1 and"},
		{"unclosed paren", "(a = 1"},
		{"trailing garbage", "a = 1 b"},
		{"operator as value", "a = ="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.input); err == nil {
				t.Errorf("Parse(%q) expected error, got nil", tt.input)
			}
		})
	}
}

func TestParse_ValidationLimits(t *testing.T) {
	longExpr := "a = '" + strings.Repeat("x", MaxExpressionLength) + "'"
	if _, err := Parse(longExpr); err == nil {
		t.Error("Parse() expected length error, got nil")
	}

	longField := strings.Repeat("f", MaxFieldNameLength+1) + " = 1"
	if _, err := Parse(longField); err == nil {
		t.Error("Parse() expected field name error, got nil")
	}
}

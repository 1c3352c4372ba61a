package query

import (
	"errors"
	"testing"
)

func TestCompare_Numbers(t *testing.T) {
	tests := []struct {
		name     string
		left     interface{}
		operator TokenType
		right    interface{}
		want     bool
	}{
		// Integer comparisons
		{"int equal", int64(30), TokenEqual, int64(30), true},
		{"int not equal", int64(30), TokenNotEqual, int64(25), true},
		{"int less", int32(25), TokenLess, int64(30), true},
		{"int greater", int64(35), TokenGreater, int32(30), true},
		{"int less equal same", int64(30), TokenLessEqual, int64(30), true},
		{"int greater equal same", int64(30), TokenGreaterEqual, int64(30), true},

		// Float comparisons
		{"float equal", float64(3.14), TokenEqual, float64(3.14), true},
		{"float less", float64(2.5), TokenLess, float64(3.0), true},

		// Mixed int/float comparisons
		{"int vs float equal", int64(30), TokenEqual, float64(30.0), true},
		{"int vs float less", int32(25), TokenLess, float64(30.5), true},

		// Negative results
		{"int not equal same", int64(30), TokenNotEqual, int64(30), false},
		{"int less wrong", int64(35), TokenLess, int64(30), false},
		{"int greater wrong", int64(25), TokenGreater, int64(30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compare(tt.left, tt.operator, tt.right)
			if err != nil {
				t.Errorf("compare() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("compare(%v, %v, %v) = %v, want %v", tt.left, tt.operator, tt.right, got, tt.want)
			}
		})
	}
}

func TestCompare_StringsAndBools(t *testing.T) {
	tests := []struct {
		name     string
		left     interface{}
		operator TokenType
		right    interface{}
		want     bool
	}{
		{"string equal", "alice", TokenEqual, "alice", true},
		{"string not equal", "alice", TokenNotEqual, "bob", true},
		{"string less", "alice", TokenLess, "bob", true},
		{"string case sensitive", "Alice", TokenEqual, "alice", false},
		{"bool equal", true, TokenEqual, true, true},
		{"bool not equal", true, TokenNotEqual, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compare(tt.left, tt.operator, tt.right)
			if err != nil {
				t.Errorf("compare() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("compare(%v, %v, %v) = %v, want %v", tt.left, tt.operator, tt.right, got, tt.want)
			}
		})
	}
}

func TestCompare_Nil(t *testing.T) {
	if got, _ := compare(nil, TokenEqual, nil); !got {
		t.Error("compare(nil, =, nil) = false, want true")
	}
	if got, _ := compare(nil, TokenNotEqual, "x"); !got {
		t.Error("compare(nil, !=, x) = false, want true")
	}
	if got, _ := compare(nil, TokenLess, int64(1)); got {
		t.Error("compare(nil, <, 1) = true, want false")
	}
}

func TestCompare_TypeMismatch(t *testing.T) {
	_, err := compare("alice", TokenEqual, int64(1))
	if !errors.Is(err, ErrEvaluation) {
		t.Errorf("compare() error = %v, want ErrEvaluation", err)
	}
}

func TestEvaluate(t *testing.T) {
	fields := map[string]interface{}{
		"name": "alice",
		"age":  int64(30),
	}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"match", "age > 1", true},
		{"no match", "age > 99", false},
		{"and both", "age > 1 and name = 'alice'", true},
		{"and one", "age > 99 and name = 'alice'", false},
		{"or one", "age > 99 or name = 'alice'", true},
		{"parens", "(age > 99 or age < 40) and name = 'alice'", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			got, err := expr.Evaluate(fields)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluate_UnknownField(t *testing.T) {
	expr, err := Parse("missing > 1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	_, err = expr.Evaluate(map[string]interface{}{"age": int64(30)})
	if !errors.Is(err, ErrEvaluation) {
		t.Errorf("Evaluate() error = %v, want ErrEvaluation", err)
	}
}

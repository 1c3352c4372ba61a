package query

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "simple comparison",
			input: "age > 1",
			want: []Token{
				{TokenIdent, "age"},
				{TokenGreater, ">"},
				{TokenNumber, "1"},
				{TokenEOF, ""},
			},
		},
		{
			name:  "all operators",
			input: "= != < > <= >=",
			want: []Token{
				{TokenEqual, "="},
				{TokenNotEqual, "!="},
				{TokenLess, "<"},
				{TokenGreater, ">"},
				{TokenLessEqual, "<="},
				{TokenGreaterEqual, ">="},
				{TokenEOF, ""},
			},
		},
		{
			name:  "quoted strings",
			input: `name = 'alice' or name = "bob"`,
			want: []Token{
				{TokenIdent, "name"},
				{TokenEqual, "="},
				{TokenString, "alice"},
				{TokenOr, "or"},
				{TokenIdent, "name"},
				{TokenEqual, "="},
				{TokenString, "bob"},
				{TokenEOF, ""},
			},
		},
		{
			name:  "keywords are case insensitive",
			input: "a = 1 AND b = 2 Or c = true",
			want: []Token{
				{TokenIdent, "a"},
				{TokenEqual, "="},
				{TokenNumber, "1"},
				{TokenAnd, "AND"},
				{TokenIdent, "b"},
				{TokenEqual, "="},
				{TokenNumber, "2"},
				{TokenOr, "Or"},
				{TokenIdent, "c"},
				{TokenEqual, "="},
				{TokenBool, "true"},
				{TokenEOF, ""},
			},
		},
		{
			name:  "parentheses",
			input: "(a = 1)",
			want: []Token{
				{TokenLParen, "("},
				{TokenIdent, "a"},
				{TokenEqual, "="},
				{TokenNumber, "1"},
				{TokenRParen, ")"},
				{TokenEOF, ""},
			},
		},
		{
			name:  "negative and float numbers",
			input: "x < -1.5",
			want: []Token{
				{TokenIdent, "x"},
				{TokenLess, "<"},
				{TokenNumber, "-1.5"},
				{TokenEOF, ""},
			},
		},
		{
			name:  "escaped quote in string",
			input: `s = 'it\'s'`,
			want: []Token{
				{TokenIdent, "s"},
				{TokenEqual, "="},
				{TokenString, "it's"},
				{TokenEOF, ""},
			},
		},
		{
			name:  "lone bang is an error",
			input: "a ! 1",
			want: []Token{
				{TokenIdent, "a"},
				{TokenError, "!"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize() = %v tokens, want %v: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

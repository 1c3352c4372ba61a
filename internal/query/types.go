// Package query implements the boolean filter expression applied to records
// by the cat pipeline.
//
// The language is a small, closed grammar: comparisons between a field name
// and a literal, combined with AND/OR and parentheses. The package includes
// a lexer for tokenization, a parser for building expression trees, and an
// evaluator over record field mappings. No general-purpose evaluator is ever
// invoked on user input.
//
// Example usage:
//
//	expr, err := Parse("age > 30 and name = 'alice'")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	match, err := expr.Evaluate(rec.Fields())
package query

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenAnd TokenType = iota
	TokenOr

	// Operators
	TokenEqual        // =
	TokenNotEqual     // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Literals
	TokenString
	TokenNumber
	TokenIdent
	TokenBool

	// Grouping
	TokenLParen
	TokenRParen

	// Special
	TokenEOF
	TokenError
)

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Expression represents a boolean expression over one record
type Expression interface {
	Evaluate(fields map[string]interface{}) (bool, error)
}

// BinaryExpr represents a binary expression (AND/OR)
type BinaryExpr struct {
	Left     Expression
	Operator TokenType // TokenAnd or TokenOr
	Right    Expression
}

// ComparisonExpr represents a comparison between a field and a literal
type ComparisonExpr struct {
	Field    string
	Operator TokenType
	Value    interface{}
}

// Evaluate evaluates a binary expression
func (b *BinaryExpr) Evaluate(fields map[string]interface{}) (bool, error) {
	left, err := b.Left.Evaluate(fields)
	if err != nil {
		return false, err
	}

	right, err := b.Right.Evaluate(fields)
	if err != nil {
		return false, err
	}

	switch b.Operator {
	case TokenAnd:
		return left && right, nil
	case TokenOr:
		return left || right, nil
	default:
		return false, nil
	}
}

// Evaluate evaluates a comparison expression. Referencing a field the record
// does not have is an evaluation error, not a non-match.
func (c *ComparisonExpr) Evaluate(fields map[string]interface{}) (bool, error) {
	value, exists := fields[c.Field]
	if !exists {
		return false, unknownFieldError(c.Field)
	}

	return compare(value, c.Operator, c.Value)
}

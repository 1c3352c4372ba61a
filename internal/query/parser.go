package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser parses filter expressions into expression trees
type Parser struct {
	tokens       []Token
	pos          int
	depthCounter *ExpressionDepthCounter
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:       tokens,
		pos:          0,
		depthCounter: NewExpressionDepthCounter(),
	}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// expect checks if current token matches expected type and advances
func (p *Parser) expect(tokType TokenType) error {
	if p.current().Type != tokType {
		return fmt.Errorf("expected %v, got %q", tokType, p.current().Value)
	}
	p.advance()
	return nil
}

// Parse parses a filter expression string
func Parse(expr string) (Expression, error) {
	// Validate expression length
	if err := ValidateExpression(expr); err != nil {
		return nil, err
	}

	tokens := Tokenize(expr)

	// Validate token count
	if err := ValidateTokens(tokens); err != nil {
		return nil, err
	}

	parser := NewParser(tokens)

	parsed, err := parser.parseOr()
	if err != nil {
		return nil, err
	}

	if parser.current().Type != TokenEOF {
		return nil, fmt.Errorf("unexpected trailing input: %q", parser.current().Value)
	}

	return parsed, nil
}

// parseOr parses OR expressions (lowest precedence)
func (p *Parser) parseOr() (Expression, error) {
	if err := p.depthCounter.Enter(); err != nil {
		return nil, err
	}
	defer p.depthCounter.Exit()

	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: TokenOr,
			Right:    right,
		}
	}

	return left, nil
}

// parseAnd parses AND expressions (higher precedence than OR)
func (p *Parser) parseAnd() (Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: TokenAnd,
			Right:    right,
		}
	}

	return left, nil
}

// parseComparison parses a comparison or a parenthesized expression
func (p *Parser) parseComparison() (Expression, error) {
	// Parenthesized sub-expression
	if p.current().Type == TokenLParen {
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil
	}

	// Parse field name
	if p.current().Type != TokenIdent {
		return nil, fmt.Errorf("expected field name, got %q", p.current().Value)
	}
	field := p.current().Value

	// Validate field name length
	if err := ValidateFieldName(field); err != nil {
		return nil, err
	}

	p.advance()

	// Parse operator
	operator := p.current().Type
	switch operator {
	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		p.advance()
	default:
		return nil, fmt.Errorf("expected comparison operator, got %q", p.current().Value)
	}

	// Parse value
	var value interface{}
	switch p.current().Type {
	case TokenString:
		value = p.current().Value
		p.advance()
	case TokenNumber:
		numStr := p.current().Value
		// Try to parse as int first, then float
		if intVal, err := strconv.ParseInt(numStr, 10, 64); err == nil {
			value = intVal
		} else if floatVal, err := strconv.ParseFloat(numStr, 64); err == nil {
			value = floatVal
		} else {
			return nil, fmt.Errorf("invalid number: %s", numStr)
		}
		p.advance()
	case TokenBool:
		value = strings.EqualFold(p.current().Value, "true")
		p.advance()
	default:
		return nil, fmt.Errorf("expected value (string, number, or bool), got %q", p.current().Value)
	}

	return &ComparisonExpr{
		Field:    field,
		Operator: operator,
		Value:    value,
	}, nil
}

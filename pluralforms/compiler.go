package pluralforms

import (
	"fmt"
	"strconv"
	"strings"
)

// parser is a recursive descent parser over a plural-forms expression,
// following the C operator precedence the gettext manual prescribes.
type parser struct {
	data string
	pos  int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.data) && (p.data[p.pos] == ' ' || p.data[p.pos] == '\t') {
		p.pos++
	}
}

// accept consumes tok if it appears next and reports whether it did.
func (p *parser) accept(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.data[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *parser) expect(tok string) error {
	if !p.accept(tok) {
		return fmt.Errorf("expected %q at offset %d in %q", tok, p.pos, p.data)
	}
	return nil
}

func (p *parser) atEnd() bool {
	p.skipSpace()
	return p.pos >= len(p.data) || p.data[p.pos] == ';' || p.data[p.pos] == '\n'
}

// expression: condition ('?' expression ':' expression)?
func (p *parser) expression() (Expression, error) {
	cond, err := p.logicalOr()
	if err != nil {
		return nil, err
	}
	if !p.accept("?") {
		return cond, nil
	}
	then, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	els, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ternaryExpr{cond: cond, then: then, els: els}, nil
}

type opToken struct {
	tok string
	op  binaryOp
}

// binaryLevel parses a left-associative run of same-precedence operators,
// where next parses the operands one level down.
func (p *parser) binaryLevel(next func() (Expression, error), ops ...opToken) (Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
loop:
	for {
		for _, cand := range ops {
			if p.accept(cand.tok) {
				right, err := next()
				if err != nil {
					return nil, err
				}
				left = binaryExpr{op: cand.op, left: left, right: right}
				continue loop
			}
		}
		return left, nil
	}
}

func (p *parser) logicalOr() (Expression, error) {
	return p.binaryLevel(p.logicalAnd, opToken{"||", opOr})
}

func (p *parser) logicalAnd() (Expression, error) {
	return p.binaryLevel(p.equality, opToken{"&&", opAnd})
}

func (p *parser) equality() (Expression, error) {
	return p.binaryLevel(p.relational, opToken{"==", opEq}, opToken{"!=", opNe})
}

func (p *parser) relational() (Expression, error) {
	// two-char tokens first so "<=" is not taken as "<" "="
	return p.binaryLevel(p.additive,
		opToken{"<=", opLe}, opToken{">=", opGe}, opToken{"<", opLt}, opToken{">", opGt})
}

func (p *parser) additive() (Expression, error) {
	return p.binaryLevel(p.multiplicative, opToken{"+", opAdd}, opToken{"-", opSub})
}

func (p *parser) multiplicative() (Expression, error) {
	return p.binaryLevel(p.unary, opToken{"*", opMul}, opToken{"/", opDiv}, opToken{"%", opMod})
}

func (p *parser) unary() (Expression, error) {
	if p.accept("!") {
		arg, err := p.unary()
		if err != nil {
			return nil, err
		}
		return notExpr{arg: arg}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expression, error) {
	if p.accept("(") {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return e, nil
	}
	if p.accept("n") {
		return operand{}, nil
	}

	p.skipSpace()
	start := p.pos
	for p.pos < len(p.data) && p.data[p.pos] >= '0' && p.data[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return nil, fmt.Errorf("unexpected input at offset %d in %q", p.pos, p.data)
	}
	val, err := strconv.ParseInt(p.data[start:p.pos], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("bad number at offset %d in %q: %v", start, p.data, err)
	}
	return number(val), nil
}

// Compile a string containing a plural form expression to an Expression
// object.
func Compile(expr string) (Expression, error) {
	p := parser{data: expr}
	e, err := p.expression()
	if err != nil {
		return nil, fmt.Errorf("cannot parse expression: %v", err)
	}
	if !p.atEnd() {
		return nil, fmt.Errorf("cannot parse expression: trailing input at offset %d in %q", p.pos, expr)
	}
	return e, nil
}

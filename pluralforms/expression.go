package pluralforms

import "fmt"

// Expression is a compiled plural-forms expression. Eval maps a count n to
// the index of the plural form to use. Use Compile to build one.
type Expression interface {
	Eval(n uint32) int
}

func truth(b bool) int {
	if b {
		return 1
	}
	return 0
}

type number int

func (e number) Eval(n uint32) int { return int(e) }

func (e number) String() string { return fmt.Sprintf("%d", int(e)) }

// operand is the variable "n".
type operand struct{}

func (operand) Eval(n uint32) int { return int(n) }

func (operand) String() string { return "n" }

type notExpr struct {
	arg Expression
}

func (e notExpr) Eval(n uint32) int { return truth(e.arg.Eval(n) == 0) }

func (e notExpr) String() string { return fmt.Sprintf("!%v", e.arg) }

// binaryOp enumerates the operators of the C subset this grammar allows.
type binaryOp int

const (
	opOr binaryOp = iota
	opAnd
	opEq
	opNe
	opLt
	opLe
	opGt
	opGe
	opAdd
	opSub
	opMul
	opDiv
	opMod
)

var opNames = map[binaryOp]string{
	opOr: "||", opAnd: "&&",
	opEq: "==", opNe: "!=",
	opLt: "<", opLe: "<=", opGt: ">", opGe: ">=",
	opAdd: "+", opSub: "-",
	opMul: "*", opDiv: "/", opMod: "%",
}

type binaryExpr struct {
	op          binaryOp
	left, right Expression
}

func (e binaryExpr) Eval(n uint32) int {
	switch e.op {
	case opOr:
		// short circuits like C
		if e.left.Eval(n) != 0 {
			return 1
		}
		return truth(e.right.Eval(n) != 0)
	case opAnd:
		if e.left.Eval(n) == 0 {
			return 0
		}
		return truth(e.right.Eval(n) != 0)
	}

	l, r := e.left.Eval(n), e.right.Eval(n)
	switch e.op {
	case opEq:
		return truth(l == r)
	case opNe:
		return truth(l != r)
	case opLt:
		return truth(l < r)
	case opLe:
		return truth(l <= r)
	case opGt:
		return truth(l > r)
	case opGe:
		return truth(l >= r)
	case opAdd:
		return l + r
	case opSub:
		return l - r
	case opMul:
		return l * r
	case opDiv:
		if r == 0 {
			return 0
		}
		return l / r
	case opMod:
		if r == 0 {
			return 0
		}
		return l % r
	}
	return 0
}

func (e binaryExpr) String() string {
	return fmt.Sprintf("(%v%s%v)", e.left, opNames[e.op], e.right)
}

type ternaryExpr struct {
	cond, then, els Expression
}

func (e ternaryExpr) Eval(n uint32) int {
	if e.cond.Eval(n) != 0 {
		return e.then.Eval(n)
	}
	return e.els.Eval(n)
}

func (e ternaryExpr) String() string {
	return fmt.Sprintf("(%v?%v:%v)", e.cond, e.then, e.els)
}

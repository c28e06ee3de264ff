package kestrel

import "fmt"

// BinOp identifies an arithmetic or bitwise binary operator.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMult
	OpMatMult
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpLShift
	OpRShift
	OpBitAnd
	OpBitXor
	OpBitOr
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMult:
		return "*"
	case OpMatMult:
		return "@"
	case OpDiv:
		return "/"
	case OpFloorDiv:
		return "//"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	case OpLShift:
		return "<<"
	case OpRShift:
		return ">>"
	case OpBitAnd:
		return "&"
	case OpBitXor:
		return "^"
	case OpBitOr:
		return "|"
	default:
		return fmt.Sprintf("<unknown BinOp %d>", int(op))
	}
}

// CmpOp identifies a comparison operator.
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNotEq
	CmpLt
	CmpLtE
	CmpGt
	CmpGtE
	CmpIn
	CmpNotIn
	CmpIs
	CmpIsNot
)

func (op CmpOp) String() string {
	switch op {
	case CmpEq:
		return "=="
	case CmpNotEq:
		return "!="
	case CmpLt:
		return "<"
	case CmpLtE:
		return "<="
	case CmpGt:
		return ">"
	case CmpGtE:
		return ">="
	case CmpIn:
		return "in"
	case CmpNotIn:
		return "not in"
	case CmpIs:
		return "is"
	case CmpIsNot:
		return "is not"
	default:
		return fmt.Sprintf("<unknown CmpOp %d>", int(op))
	}
}

// Precedence is an operator tier used only for layout decisions: it decides
// which operators a chain splits at first. A higher ordinal binds more
// loosely, so the lowest precedence in a chain is the maximum ordinal
// present. Evaluation order was fixed by the parser and is unaffected.
type Precedence int

const (
	// PrecedenceNone is the sentinel for a slice with no operators.
	PrecedenceNone Precedence = iota
	PrecedencePow
	PrecedenceMultiplicative
	PrecedenceAdditive
	PrecedenceShift
	PrecedenceBitAnd
	PrecedenceBitXor
	PrecedenceBitOr
	PrecedenceComparator
)

func (p Precedence) String() string {
	switch p {
	case PrecedenceNone:
		return "none"
	case PrecedencePow:
		return "pow"
	case PrecedenceMultiplicative:
		return "multiplicative"
	case PrecedenceAdditive:
		return "additive"
	case PrecedenceShift:
		return "shift"
	case PrecedenceBitAnd:
		return "bitand"
	case PrecedenceBitXor:
		return "bitxor"
	case PrecedenceBitOr:
		return "bitor"
	case PrecedenceComparator:
		return "comparator"
	default:
		return fmt.Sprintf("<unknown Precedence %d>", int(p))
	}
}

// LayoutPrecedence returns the layout tier of a binary operator.
func (op BinOp) LayoutPrecedence() Precedence {
	switch op {
	case OpPow:
		return PrecedencePow
	case OpMult, OpMatMult, OpDiv, OpFloorDiv, OpMod:
		return PrecedenceMultiplicative
	case OpAdd, OpSub:
		return PrecedenceAdditive
	case OpLShift, OpRShift:
		return PrecedenceShift
	case OpBitAnd:
		return PrecedenceBitAnd
	case OpBitXor:
		return PrecedenceBitXor
	case OpBitOr:
		return PrecedenceBitOr
	default:
		panic(fmt.Sprintf("no layout precedence for operator %q", op.String()))
	}
}

// UnaryOpKind identifies a unary operator.
type UnaryOpKind int

const (
	UnaryPlus UnaryOpKind = iota
	UnaryMinus
	UnaryInvert
	UnaryNot
)

func (op UnaryOpKind) String() string {
	switch op {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	case UnaryInvert:
		return "~"
	case UnaryNot:
		return "not"
	default:
		return fmt.Sprintf("<unknown UnaryOpKind %d>", int(op))
	}
}

// UnaryOp represents a unary operation, e.g. `-x` or `not flag`.
type UnaryOp struct {
	Op      UnaryOpKind
	Operand Node
	Loc     Span
}

var _ Node = (*UnaryOp)(nil)

func (u *UnaryOp) Span() Span { return u.Loc }

func (u *UnaryOp) Walk(fn func(Node) bool) {
	if fn(u) {
		u.Operand.Walk(fn)
	}
}

// BinaryOp represents one binary operation, e.g. `a + b`. Nested operations
// of the same kind form a chain that the formatter flattens for layout.
type BinaryOp struct {
	Left  Node
	Op    BinOp
	OpLoc Span
	Right Node
	Loc   Span
}

var _ Node = (*BinaryOp)(nil)

func (b *BinaryOp) Span() Span { return b.Loc }

func (b *BinaryOp) Walk(fn func(Node) bool) {
	if fn(b) {
		b.Left.Walk(fn)
		b.Right.Walk(fn)
	}
}

// Compare represents a comparison chain, e.g. `a < b <= c`. Ops, OpLocs, and
// Comparators are parallel: entry i holds the operator between comparand i
// and comparand i+1. The parser always produces balanced slices; the
// formatter treats an imbalance as a fatal precondition violation.
type Compare struct {
	Left        Node
	Ops         []CmpOp
	OpLocs      []Span
	Comparators []Node
	Loc         Span
}

var _ Node = (*Compare)(nil)

func (c *Compare) Span() Span { return c.Loc }

func (c *Compare) Walk(fn func(Node) bool) {
	if fn(c) {
		c.Left.Walk(fn)
		for _, comparator := range c.Comparators {
			comparator.Walk(fn)
		}
	}
}

// BoolOpKind identifies a boolean operator.
type BoolOpKind int

const (
	BoolAnd BoolOpKind = iota
	BoolOr
)

func (op BoolOpKind) String() string {
	switch op {
	case BoolAnd:
		return "and"
	case BoolOr:
		return "or"
	default:
		return fmt.Sprintf("<unknown BoolOpKind %d>", int(op))
	}
}

// BoolOp represents an `and`/`or` expression with two or more values.
// Boolean operators sit outside the binary/comparison chain machinery; they
// are laid out generically.
type BoolOp struct {
	Op     BoolOpKind
	Values []Node
	Loc    Span
}

var _ Node = (*BoolOp)(nil)

func (b *BoolOp) Span() Span { return b.Loc }

func (b *BoolOp) Walk(fn func(Node) bool) {
	if fn(b) {
		for _, v := range b.Values {
			v.Walk(fn)
		}
	}
}

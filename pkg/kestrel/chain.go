package kestrel

import (
	"fmt"
	"iter"
)

// A binary or comparison chain represented as a flat sequence where operands
// sit at even indices and operators at odd indices.
//
//	a + 5 * 3 + 2
//
// gets parsed as a tree with the second `+` at the root, but its slice
// representation is closer to what is written in source:
//
//	-----------------------------
//	| a | + | 5 | * | 3 | + | 2 |
//	-----------------------------
//
// The flat form makes it possible to regroup the chain by layout precedence
// (for example splitting implicitly concatenated strings before `+`
// operations) and to slice it arbitrarily, as long as every slice starts and
// ends with an operand. The smallest valid slice is a single operand.

// chainElement is either an *operand or an *operator.
type chainElement interface {
	isChainElement()
}

type operandKind int

const (
	// leftOperand was the left side of a binary-like node. It carries the
	// leading comments of the outermost chain node starting at it.
	leftOperand operandKind = iota
	// middleOperand is neither first nor last; only comparison chains with
	// two or more comparators produce these. It carries no chain-level
	// comments.
	middleOperand
	// rightOperand was the right side of a binary-like node. It carries the
	// trailing comments of the outermost chain node ending at it.
	rightOperand
)

// operand is one leaf expression in a flattened chain.
type operand struct {
	kind operandKind
	expr Node

	// leading holds the outer chain's leading comments; only set for left
	// operands.
	leading []*Comment

	// trailing holds the outer chain's trailing comments; only set for
	// right operands.
	trailing []*Comment
}

func (*operand) isChainElement() {}

func (o *operand) String() string {
	return fmt.Sprintf("operand(%T)", o.expr)
}

// chainLeading returns the outer chain's leading comments. The second
// return is false for middle and right operands, which rely on the general
// comment store instead.
func (o *operand) chainLeading() ([]*Comment, bool) {
	if o.kind == leftOperand {
		return o.leading, true
	}
	return nil, false
}

// chainTrailing returns the outer chain's trailing comments; only right
// operands carry them.
func (o *operand) chainTrailing() ([]*Comment, bool) {
	if o.kind == rightOperand {
		return o.trailing, true
	}
	return nil, false
}

func (o *operand) hasLeadingComments(comments *Comments) bool {
	if leading, ok := o.chainLeading(); ok {
		return len(leading) > 0
	}
	return comments.HasLeading(o.expr)
}

// opSymbol is the symbol of a chain operator: either a binary operator or a
// comparison operator.
type opSymbol struct {
	binary BinOp
	cmp    CmpOp
	isCmp  bool
}

func binarySymbol(op BinOp) opSymbol {
	return opSymbol{binary: op}
}

func comparatorSymbol(op CmpOp) opSymbol {
	return opSymbol{cmp: op, isCmp: true}
}

func (s opSymbol) isPow() bool {
	return !s.isCmp && s.binary == OpPow
}

// precedence returns the layout tier. All comparison operators share one
// tier, looser than any arithmetic or bitwise operator.
func (s opSymbol) precedence() Precedence {
	if s.isCmp {
		return PrecedenceComparator
	}
	return s.binary.LayoutPrecedence()
}

func (s opSymbol) String() string {
	if s.isCmp {
		return s.cmp.String()
	}
	return s.binary.String()
}

// operator is one binary or comparison symbol between two operands, plus the
// comments dangling on it.
type operator struct {
	symbol   opSymbol
	trailing []*Comment
}

func (*operator) isChainElement() {}

func (o *operator) String() string {
	return fmt.Sprintf("operator(%s)", o.symbol)
}

func (o *operator) precedence() Precedence {
	return o.symbol.precedence()
}

func (o *operator) hasTrailingComments() bool {
	return len(o.trailing) > 0
}

// mustOperand asserts that the element is an operand. A mismatch is an
// invariant violation in chain construction, never user input.
func mustOperand(el chainElement) *operand {
	o, ok := el.(*operand)
	if !ok {
		panic(fmt.Sprintf("expected operand but found %v", el))
	}
	return o
}

func mustOperator(el chainElement) *operator {
	o, ok := el.(*operator)
	if !ok {
		panic(fmt.Sprintf("expected operator but found %v", el))
	}
	return o
}

// operandIndex addresses an operand in a chain slice; always even.
type operandIndex int

// operatorIndex addresses an operator in a chain slice; always odd.
type operatorIndex int

// noOperatorIndex is the "no previous split" sentinel for betweenOperators.
const noOperatorIndex operatorIndex = -1

func newOperandIndex(i int) operandIndex {
	if i%2 != 0 {
		panic(fmt.Sprintf("operand index %d is not an even position", i))
	}
	return operandIndex(i)
}

func newOperatorIndex(i int) operatorIndex {
	if i < 1 || i%2 != 1 {
		panic(fmt.Sprintf("operator index %d is not an odd position", i))
	}
	return operatorIndex(i)
}

// leftOperator returns the index of the operator directly left of this
// operand, or false if this is the first operand in the chain.
func (i operandIndex) leftOperator() (operatorIndex, bool) {
	if i == 0 {
		return noOperatorIndex, false
	}
	return newOperatorIndex(int(i) - 1), true
}

// rightOperator returns the index of the operand's right operator. The index
// may be out of bounds for the last operand; use chainSlice.operatorAt to
// test for that.
func (i operandIndex) rightOperator() operatorIndex {
	return newOperatorIndex(int(i) + 1)
}

// rightOperand returns the index of the operand directly right of this
// operator.
func (i operatorIndex) rightOperand() operandIndex {
	if i < 0 {
		panic("cannot take the right operand of the sentinel operator index")
	}
	return newOperandIndex(int(i) + 1)
}

// chainSlice is a borrowed view into a flattened chain. It always starts and
// ends with an operand; constructing an empty slice panics.
type chainSlice struct {
	parts []chainElement
}

func newChainSlice(parts []chainElement) chainSlice {
	if len(parts) == 0 {
		panic("chain slice must contain at least one operand")
	}
	return chainSlice{parts: parts}
}

func (s chainSlice) len() int {
	return len(s.parts)
}

// operands iterates over the operands in the slice with their indices.
func (s chainSlice) operands() iter.Seq2[operandIndex, *operand] {
	return func(yield func(operandIndex, *operand) bool) {
		for i, part := range s.parts {
			if o, ok := part.(*operand); ok {
				if !yield(newOperandIndex(i), o) {
					return
				}
			}
		}
	}
}

// operators iterates over the operators in the slice with their indices.
func (s chainSlice) operators() iter.Seq2[operatorIndex, *operator] {
	return func(yield func(operatorIndex, *operator) bool) {
		for i, part := range s.parts {
			if o, ok := part.(*operator); ok {
				if !yield(newOperatorIndex(i), o) {
					return
				}
			}
		}
	}
}

// betweenOperators returns the sub-slice after `last`'s right operand (or
// from the start when last is noOperatorIndex) up to but excluding `end`.
func (s chainSlice) betweenOperators(last, end operatorIndex) chainSlice {
	start := 0
	if last != noOperatorIndex {
		start = int(last.rightOperand())
	}
	return newChainSlice(s.parts[start:int(end)])
}

// afterOperator returns the sub-slice starting at the operator's right
// operand.
func (s chainSlice) afterOperator(idx operatorIndex) chainSlice {
	mustOperator(s.parts[int(idx)])
	return newChainSlice(s.parts[int(idx.rightOperand()):])
}

// lowestPrecedence returns the loosest-binding tier among the operators in
// the slice, or PrecedenceNone for a single-operand slice.
func (s chainSlice) lowestPrecedence() Precedence {
	lowest := PrecedenceNone
	for _, op := range s.operators() {
		if p := op.precedence(); p > lowest {
			lowest = p
		}
	}
	return lowest
}

// firstOperand returns the first operand in the slice.
func (s chainSlice) firstOperand() *operand {
	return mustOperand(s.parts[0])
}

// lastOperand returns the last (right most) operand.
func (s chainSlice) lastOperand() *operand {
	return mustOperand(s.parts[len(s.parts)-1])
}

// operandAt returns the operand at the given index, panicking if the index
// addresses an operator.
func (s chainSlice) operandAt(idx operandIndex) *operand {
	return mustOperand(s.parts[int(idx)])
}

// operatorAt returns the operator at the given index, or false if the index
// is out of bounds.
func (s chainSlice) operatorAt(idx operatorIndex) (*operator, bool) {
	if int(idx) >= len(s.parts) {
		return nil, false
	}
	return mustOperator(s.parts[int(idx)]), true
}

package kestrel

import "fmt"

// chainKind tells the flattener which node kind it may recurse into. Binary
// and comparison chains never merge: an unparenthesized comparison inside a
// binary chain (or the reverse) stays an opaque leaf so each chain kind
// keeps its own layout decision.
type chainKind int

const (
	binaryChain chainKind = iota
	compareChain
)

// flattenChain flattens the hierarchical binary or comparison expression
// rooted at root into the flat operand, operator, operand... sequence. The
// root's own leading and trailing comments are handled by the caller.
func flattenChain(root Node, comments *Comments) chainSlice {
	parts := make([]chainElement, 0, 8)
	switch n := root.(type) {
	case *BinaryOp:
		parts = flattenBinary(n, nil, nil, comments, parts)
	case *Compare:
		parts = flattenCompare(n, nil, nil, comments, parts)
	default:
		panic(fmt.Sprintf("cannot flatten %T: not a binary or comparison expression", root))
	}
	return newChainSlice(parts)
}

func flattenBinary(bin *BinaryOp, leading, trailing []*Comment, comments *Comments, parts []chainElement) []chainElement {
	parts = flattenOperand(&operand{
		kind:    leftOperand,
		expr:    bin.Left,
		leading: leading,
	}, binaryChain, comments, parts)

	parts = append(parts, &operator{
		symbol:   binarySymbol(bin.Op),
		trailing: comments.Dangling(bin),
	})

	parts = flattenOperand(&operand{
		kind:     rightOperand,
		expr:     bin.Right,
		trailing: trailing,
	}, binaryChain, comments, parts)

	return parts
}

func flattenCompare(cmp *Compare, leading, trailing []*Comment, comments *Comments, parts []chainElement) []chainElement {
	if len(cmp.Comparators) != len(cmp.Ops) {
		panic(fmt.Sprintf(
			"comparison with an unbalanced number of comparators (%d) and operators (%d)",
			len(cmp.Comparators), len(cmp.Ops),
		))
	}

	parts = flattenOperand(&operand{
		kind:    leftOperand,
		expr:    cmp.Left,
		leading: leading,
	}, compareChain, comments, parts)

	if len(cmp.Comparators) == 0 {
		return parts
	}

	last := len(cmp.Comparators) - 1
	for i := 0; i < last; i++ {
		parts = append(parts, &operator{symbol: comparatorSymbol(cmp.Ops[i])})
		parts = flattenOperand(&operand{
			kind: middleOperand,
			expr: cmp.Comparators[i],
		}, compareChain, comments, parts)
	}

	parts = append(parts, &operator{symbol: comparatorSymbol(cmp.Ops[last])})
	parts = flattenOperand(&operand{
		kind:     rightOperand,
		expr:     cmp.Comparators[last],
		trailing: trailing,
	}, compareChain, comments, parts)

	return parts
}

// flattenOperand either inlines the operand's own flat sequence, when it is
// an unparenthesized chain of the same kind, or appends it as a leaf.
// Parenthesized sub-chains parse into Grouped nodes and therefore always
// land in the leaf case.
//
// When recursing, the outer chain's leading comments follow the leftmost
// operand and its trailing comments follow the rightmost operand so they
// stay attached to the correct physical position after flattening. Interior
// nested chains thread their own node's comments instead.
func flattenOperand(op *operand, kind chainKind, comments *Comments, parts []chainElement) []chainElement {
	switch expr := op.expr.(type) {
	case *BinaryOp:
		if kind != binaryChain {
			break
		}
		leading, ok := op.chainLeading()
		if !ok {
			leading = comments.Leading(expr)
		}
		trailing, ok := op.chainTrailing()
		if !ok {
			trailing = comments.Trailing(expr)
		}
		return flattenBinary(expr, leading, trailing, comments, parts)

	case *Compare:
		if kind != compareChain {
			break
		}
		leading, ok := op.chainLeading()
		if !ok {
			leading = comments.Leading(expr)
		}
		trailing, ok := op.chainTrailing()
		if !ok {
			trailing = comments.Trailing(expr)
		}
		return flattenCompare(expr, leading, trailing, comments, parts)
	}

	return append(parts, op)
}

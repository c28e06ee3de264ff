package kestrel

// formatBinaryLike lays out a binary or comparison chain. The chain is
// flattened into its linear form first, so grouping can follow layout
// precedence instead of the parse tree's nesting.
//
// When the chain contains an implicitly concatenated string operand, the
// string literals become the outermost breaking unit: one group encloses the
// whole chain so all strings break together, and each operator-bound span
// between them gets its own lower-priority group. Otherwise the chain is
// grouped purely by operator precedence.
func (p *printer) formatBinaryLike(root Node) {
	chain := flattenChain(root, p.comments)

	var stringOperands []operandIndex
	for idx, op := range chain.operands() {
		if str, ok := op.expr.(*String); ok && str.ImplicitConcat() {
			stringOperands = append(stringOperands, idx)
		}
	}

	if len(stringOperands) == 0 {
		p.doc.OpenGroup()
		p.formatChainSlice(chain)
		p.doc.CloseGroup()
		return
	}
	p.formatStringChain(chain, stringOperands)
}

// formatChainSlice emits a chain slice, splitting before the operators at
// the lowest layout precedence present. Either every operator at that tier
// breaks or none does; the renderer makes that call per group. Recursion
// depth is bounded by the number of distinct precedence tiers in the slice.
//
// Comments before or after the slice's first operand are flushed by the
// caller, outside the enclosing group, so an unrelated group never expands
// just because of a neighboring comment.
func (p *printer) formatChainSlice(s chainSlice) {
	if s.len() == 1 {
		p.formatExpr(s.firstOperand().expr)
		return
	}

	last := noOperatorIndex
	lowest := s.lowestPrecedence()

	for idx, op := range s.operators() {
		if op.precedence() != lowest {
			continue
		}

		left := s.betweenOperators(last, idx)
		right := s.afterOperator(idx)

		isPow := op.symbol.isPow() &&
			isSimplePowerOperand(left.lastOperand().expr) &&
			isSimplePowerOperand(right.firstOperand().expr)

		if leading, ok := left.firstOperand().chainLeading(); ok {
			p.emitLeadingComments(leading)
		}

		p.doc.OpenGroup()
		p.formatChainSlice(left)
		p.doc.CloseGroup()

		if trailing, ok := left.lastOperand().chainTrailing(); ok {
			p.emitTrailingComments(trailing)
		}

		if isPow {
			p.doc.SoftLine()
		} else {
			p.doc.SoftLineOrSpace()
		}

		p.emitOperator(op)

		// Put the operator on its own line if the right side has leading
		// comments; a soft break would let the comment hide behind a
		// collapsed group.
		if right.firstOperand().hasLeadingComments(p.comments) || op.hasTrailingComments() {
			p.doc.HardLine()
		} else if !isPow {
			p.doc.Space()
		}

		last = idx
	}

	// The slice has at least one operator at the lowest precedence, so the
	// loop above always advances `last`; afterOperator panics otherwise.
	right := s.afterOperator(last)

	if leading, ok := right.firstOperand().chainLeading(); ok {
		p.emitLeadingComments(leading)
	}

	p.doc.OpenGroup()
	p.formatChainSlice(right)
	p.doc.CloseGroup()
}

// formatStringChain interleaves implicitly concatenated string operands with
// the precedence-grouped spans around them. Groups opened during the scan
// close in reverse order of opening.
func (p *printer) formatStringChain(chain chainSlice, stringOperands []operandIndex) {
	// One group encloses the whole chain so that all implicit concatenated
	// strings break together or none of them do.
	p.doc.OpenGroup()

	groupOpen := false
	if stringOperands[0] != 0 {
		// Group the span coming before the first string:
		//
		//	a + "b" "c"
		//	^^^- this group
		p.doc.OpenGroup()
		groupOpen = true
	}

	last := noOperatorIndex

	for _, idx := range stringOperands {
		opnd := chain.operandAt(idx)
		str := opnd.expr.(*String)

		if leftIdx, ok := idx.leftOperator(); ok {
			leftOp, ok := chain.operatorAt(leftIdx)
			if !ok {
				panic("string operand has no operator on its left")
			}

			if last != leftIdx {
				// Everything between the previous split point and the
				// operator right before this string:
				//
				//	a + b + "c" "d"
				//	      ^--- leftOp
				//	^^^^^-- left
				left := chain.betweenOperators(last, leftIdx)

				if leading, ok := left.firstOperand().chainLeading(); ok {
					p.emitLeadingComments(leading)
				}
				p.formatChainSlice(left)
				if trailing, ok := left.lastOperand().chainTrailing(); ok {
					p.emitTrailingComments(trailing)
				}
				p.doc.SoftLineOrSpace()
				p.emitOperator(leftOp)

				if groupOpen {
					p.doc.CloseGroup()
					groupOpen = false
				}

				if opnd.hasLeadingComments(p.comments) || leftOp.hasTrailingComments() {
					p.doc.HardLine()
				} else {
					p.doc.Space()
				}
			} else if groupOpen {
				// The previous iteration already emitted this operator and
				// its surrounding spacing; the span between the two strings
				// is empty.
				p.doc.CloseGroup()
				groupOpen = false
			}

			if leading, ok := opnd.chainLeading(); ok {
				p.emitLeadingComments(leading)
			}
			p.emitLeadingComments(p.comments.Leading(str))
			p.formatImplicitConcatString(str)
			p.emitTrailingComments(p.comments.Trailing(str))
			if trailing, ok := opnd.chainTrailing(); ok {
				p.emitTrailingComments(trailing)
			}
			p.doc.LineSuffixBoundary()
		} else {
			// The chain starts with the implicit concatenated string:
			//
			//	"a" "b" + c
			//	^^^^^^^-- the first operand, no preceding operator
			p.emitLeadingComments(p.comments.Leading(str))
			p.formatImplicitConcatString(str)
			p.emitTrailingComments(p.comments.Trailing(str))
		}

		// Write the operator following the string and open the group for
		// the next span:
		//
		//	a + "b" "c" + ddddddd
		//	            ^^--- written here
		//	            ^^^^^^^^^-- the group opened here
		rightIdx := idx.rightOperator()
		if rightOp, ok := chain.operatorAt(rightIdx); ok {
			p.doc.OpenGroup()
			groupOpen = true

			rightOperand := chain.operandAt(rightIdx.rightOperand())
			rightHasLeading := rightOperand.hasLeadingComments(p.comments)

			// Keep the operator on the same line if the right side has
			// leading comments (and thus breaks).
			if rightHasLeading {
				p.doc.Space()
			} else {
				p.doc.SoftLineOrSpace()
			}

			p.emitOperator(rightOp)

			if rightHasLeading || rightOp.hasTrailingComments() {
				p.doc.HardLine()
			} else {
				p.doc.Space()
			}

			last = rightIdx
		}
	}

	if groupOpen {
		// Flush the trailing non-string remainder into the group opened
		// after the final string.
		end := chain.afterOperator(last)
		p.formatChainSlice(end)
		p.doc.CloseGroup()
	}

	p.doc.CloseGroup()
}

// isSimplePowerOperand reports whether an expression adheres to Black's
// definition of a simple operand in the context of a power operation:
// identifiers, attribute chains bottoming out in an identifier, and numeric
// literals, optionally under unary negation or inversion. Boolean `not` is
// never simple. When both sides of `**` are simple, the operator keeps no
// surrounding space and never breaks.
func isSimplePowerOperand(expr Node) bool {
	switch e := expr.(type) {
	case *UnaryOp:
		if e.Op == UnaryNot {
			return false
		}
		return isSimplePowerOperand(e.Operand)
	case *Number:
		return true
	case *Name:
		return true
	case *Attribute:
		return isSimplePowerOperand(e.Value)
	default:
		return false
	}
}

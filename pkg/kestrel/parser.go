package kestrel

import (
	"github.com/pkg/errors"
)

// ParseModule parses a newline-separated sequence of expression statements.
// Comments are returned separately; use AssociateComments to attach them to
// nodes.
func ParseModule(name string, source []byte) (*Module, []*Comment, error) {
	tokens, comments, err := lex(name, source)
	if err != nil {
		return nil, nil, err
	}

	p := &parser{name: name, tokens: tokens}
	mod, err := p.parseModule()
	if err != nil {
		return nil, nil, err
	}
	return mod, comments, nil
}

// ParseExpr parses a single expression.
func ParseExpr(name string, source []byte) (Node, []*Comment, error) {
	mod, comments, err := ParseModule(name, source)
	if err != nil {
		return nil, nil, err
	}
	if len(mod.Stmts) != 1 {
		return nil, nil, errors.Errorf("%s: expected a single expression, found %d statements", name, len(mod.Stmts))
	}
	return mod.Stmts[0].Expr, comments, nil
}

type parser struct {
	name   string
	tokens []token
	pos    int
}

func (p *parser) cur() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

// atOp reports whether the current token is the given operator symbol.
func (p *parser) atOp(sym string) bool {
	tok := p.cur()
	return tok.kind == tokOp && tok.text == sym
}

// atKeyword reports whether the current token is the given keyword.
func (p *parser) atKeyword(kw string) bool {
	tok := p.cur()
	return tok.kind == tokName && tok.text == kw
}

func (p *parser) expectOp(sym string) (token, error) {
	if !p.atOp(sym) {
		return token{}, p.errorf("expected %q, found %s", sym, p.describe(p.cur()))
	}
	return p.next(), nil
}

func (p *parser) describe(tok token) string {
	if tok.kind == tokEOF {
		return "end of input"
	}
	if tok.kind == tokNewline {
		return "end of line"
	}
	return "\"" + tok.text + "\""
}

func (p *parser) errorf(format string, args ...any) error {
	tok := p.cur()
	return errors.Errorf("%s:%d:%d: "+format,
		append([]any{p.name, tok.loc.Start.Line, tok.loc.Start.Column}, args...)...)
}

func (p *parser) parseModule() (*Module, error) {
	mod := &Module{}
	for {
		for p.cur().kind == tokNewline {
			p.next()
		}
		if p.cur().kind == tokEOF {
			break
		}

		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		mod.Stmts = append(mod.Stmts, &ExprStmt{Expr: expr, Loc: expr.Span()})

		switch p.cur().kind {
		case tokNewline:
			p.next()
		case tokEOF:
		default:
			return nil, p.errorf("unexpected %s after expression", p.describe(p.cur()))
		}
	}

	if len(mod.Stmts) > 0 {
		mod.Loc = Span{
			Start: mod.Stmts[0].Loc.Start,
			End:   mod.Stmts[len(mod.Stmts)-1].Loc.End,
		}
	}
	return mod, nil
}

func (p *parser) parseExpression() (Node, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (Node, error) {
	return p.parseBoolOp("or", BoolOr, p.parseAnd)
}

func (p *parser) parseAnd() (Node, error) {
	return p.parseBoolOp("and", BoolAnd, p.parseNot)
}

func (p *parser) parseBoolOp(kw string, op BoolOpKind, operand func() (Node, error)) (Node, error) {
	first, err := operand()
	if err != nil {
		return nil, err
	}
	if !p.atKeyword(kw) {
		return first, nil
	}

	values := []Node{first}
	for p.atKeyword(kw) {
		p.next()
		val, err := operand()
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return &BoolOp{
		Op:     op,
		Values: values,
		Loc:    Span{Start: first.Span().Start, End: values[len(values)-1].Span().End},
	}, nil
}

func (p *parser) parseNot() (Node, error) {
	if p.atKeyword("not") {
		tok := p.next()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{
			Op:      UnaryNot,
			Operand: operand,
			Loc:     Span{Start: tok.loc.Start, End: operand.Span().End},
		}, nil
	}
	return p.parseComparison()
}

// parseComparison collects a whole comparison chain into one Compare node
// with parallel operator and comparand slices, matching how the formatter
// consumes it.
func (p *parser) parseComparison() (Node, error) {
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}

	var (
		ops         []CmpOp
		opLocs      []Span
		comparators []Node
	)
	for {
		op, loc, ok := p.peekCmpOp()
		if !ok {
			break
		}
		comparator, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		opLocs = append(opLocs, loc)
		comparators = append(comparators, comparator)
	}

	if len(ops) == 0 {
		return left, nil
	}
	return &Compare{
		Left:        left,
		Ops:         ops,
		OpLocs:      opLocs,
		Comparators: comparators,
		Loc:         Span{Start: left.Span().Start, End: comparators[len(comparators)-1].Span().End},
	}, nil
}

// peekCmpOp consumes and returns the comparison operator at the current
// position, if any. Handles the two-keyword forms `not in` and `is not`.
func (p *parser) peekCmpOp() (CmpOp, Span, bool) {
	tok := p.cur()
	if tok.kind == tokOp {
		var op CmpOp
		switch tok.text {
		case "==":
			op = CmpEq
		case "!=":
			op = CmpNotEq
		case "<":
			op = CmpLt
		case "<=":
			op = CmpLtE
		case ">":
			op = CmpGt
		case ">=":
			op = CmpGtE
		default:
			return 0, Span{}, false
		}
		p.next()
		return op, tok.loc, true
	}

	if tok.kind == tokName {
		switch tok.text {
		case "in":
			p.next()
			return CmpIn, tok.loc, true
		case "is":
			p.next()
			if p.atKeyword("not") {
				notTok := p.next()
				return CmpIsNot, Span{Start: tok.loc.Start, End: notTok.loc.End}, true
			}
			return CmpIs, tok.loc, true
		case "not":
			if p.tokens[p.pos+1].kind == tokName && p.tokens[p.pos+1].text == "in" {
				p.next()
				inTok := p.next()
				return CmpNotIn, Span{Start: tok.loc.Start, End: inTok.loc.End}, true
			}
		}
	}
	return 0, Span{}, false
}

type binaryLevel struct {
	ops map[string]BinOp
}

var (
	bitOrLevel  = binaryLevel{ops: map[string]BinOp{"|": OpBitOr}}
	bitXorLevel = binaryLevel{ops: map[string]BinOp{"^": OpBitXor}}
	bitAndLevel = binaryLevel{ops: map[string]BinOp{"&": OpBitAnd}}
	shiftLevel  = binaryLevel{ops: map[string]BinOp{"<<": OpLShift, ">>": OpRShift}}
	arithLevel  = binaryLevel{ops: map[string]BinOp{"+": OpAdd, "-": OpSub}}
	termLevel = binaryLevel{ops: map[string]BinOp{
		"*": OpMult, "/": OpDiv, "//": OpFloorDiv, "%": OpMod, "@": OpMatMult,
	}}
)

func (p *parser) parseBitOr() (Node, error) {
	return p.parseBinaryLevel(bitOrLevel, p.parseBitXor)
}

func (p *parser) parseBitXor() (Node, error) {
	return p.parseBinaryLevel(bitXorLevel, p.parseBitAnd)
}

func (p *parser) parseBitAnd() (Node, error) {
	return p.parseBinaryLevel(bitAndLevel, p.parseShift)
}

func (p *parser) parseShift() (Node, error) {
	return p.parseBinaryLevel(shiftLevel, p.parseArith)
}

func (p *parser) parseArith() (Node, error) {
	return p.parseBinaryLevel(arithLevel, p.parseTerm)
}

func (p *parser) parseTerm() (Node, error) {
	return p.parseBinaryLevel(termLevel, p.parseFactor)
}

// parseBinaryLevel parses one left-associative tier of binary operators.
func (p *parser) parseBinaryLevel(level binaryLevel, operand func() (Node, error)) (Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.cur()
		if tok.kind != tokOp {
			return left, nil
		}
		op, ok := level.ops[tok.text]
		if !ok {
			return left, nil
		}
		p.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{
			Left:  left,
			Op:    op,
			OpLoc: tok.loc,
			Right: right,
			Loc:   Span{Start: left.Span().Start, End: right.Span().End},
		}
	}
}

// parseFactor handles unary prefixes, which bind tighter than any binary
// operator except ** on their left.
func (p *parser) parseFactor() (Node, error) {
	tok := p.cur()
	if tok.kind == tokOp {
		var op UnaryOpKind
		switch tok.text {
		case "+":
			op = UnaryPlus
		case "-":
			op = UnaryMinus
		case "~":
			op = UnaryInvert
		default:
			return p.parsePower()
		}
		p.next()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{
			Op:      op,
			Operand: operand,
			Loc:     Span{Start: tok.loc.Start, End: operand.Span().End},
		}, nil
	}
	return p.parsePower()
}

// parsePower parses `base ** exponent`, right-associative with a unary-ready
// exponent, per Python grammar.
func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if !p.atOp("**") {
		return base, nil
	}
	tok := p.next()
	exp, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return &BinaryOp{
		Left:  base,
		Op:    OpPow,
		OpLoc: tok.loc,
		Right: exp,
		Loc:   Span{Start: base.Span().Start, End: exp.Span().End},
	}, nil
}

func (p *parser) parsePostfix() (Node, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.atOp("."):
			p.next()
			attr := p.cur()
			if attr.kind != tokName {
				return nil, p.errorf("expected attribute name, found %s", p.describe(attr))
			}
			p.next()
			expr = &Attribute{
				Value: expr,
				Attr:  attr.text,
				Loc:   Span{Start: expr.Span().Start, End: attr.loc.End},
			}
		case p.atOp("("):
			p.next()
			var args []Node
			for !p.atOp(")") {
				arg, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.atOp(",") {
					break
				}
				p.next()
			}
			close, err := p.expectOp(")")
			if err != nil {
				return nil, err
			}
			expr = &Call{
				Fun:  expr,
				Args: args,
				Loc:  Span{Start: expr.Span().Start, End: close.loc.End},
			}
		case p.atOp("["):
			p.next()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			close, err := p.expectOp("]")
			if err != nil {
				return nil, err
			}
			expr = &Subscript{
				Value: expr,
				Index: index,
				Loc:   Span{Start: expr.Span().Start, End: close.loc.End},
			}
		default:
			return expr, nil
		}
	}
}

var keywords = map[string]bool{
	"and": true, "or": true, "not": true, "in": true, "is": true,
}

func (p *parser) parseAtom() (Node, error) {
	tok := p.cur()
	switch tok.kind {
	case tokName:
		if keywords[tok.text] {
			return nil, p.errorf("unexpected keyword %q", tok.text)
		}
		p.next()
		return &Name{Ident: tok.text, Loc: tok.loc}, nil

	case tokNumber:
		p.next()
		return &Number{Raw: tok.text, Kind: tok.numKind, Loc: tok.loc}, nil

	case tokString:
		// Adjacent string literals are one implicitly concatenated string.
		parts := []StringPart{{Raw: tok.text, Loc: tok.loc}}
		p.next()
		for p.cur().kind == tokString {
			next := p.next()
			parts = append(parts, StringPart{Raw: next.text, Loc: next.loc})
		}
		return &String{
			Parts: parts,
			Loc:   Span{Start: parts[0].Loc.Start, End: parts[len(parts)-1].Loc.End},
		}, nil

	case tokOp:
		if tok.text == "(" {
			open := p.next()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			close, err := p.expectOp(")")
			if err != nil {
				return nil, err
			}
			return &Grouped{
				Expr: expr,
				Loc:  Span{Start: open.loc.Start, End: close.loc.End},
			}, nil
		}
	}
	return nil, p.errorf("unexpected %s", p.describe(tok))
}

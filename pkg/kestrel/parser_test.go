package kestrel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, source string) Node {
	t.Helper()
	expr, _, err := ParseExpr("test", []byte(source))
	require.NoError(t, err)
	return expr
}

func TestParseBinaryPrecedence(t *testing.T) {
	expr := parseOne(t, "a + b * c")

	root, ok := expr.(*BinaryOp)
	require.True(t, ok)
	require.Equal(t, OpAdd, root.Op)

	right, ok := root.Right.(*BinaryOp)
	require.True(t, ok)
	require.Equal(t, OpMult, right.Op)
}

func TestParseLeftAssociative(t *testing.T) {
	expr := parseOne(t, "a - b - c")

	root, ok := expr.(*BinaryOp)
	require.True(t, ok)
	require.Equal(t, OpSub, root.Op)

	left, ok := root.Left.(*BinaryOp)
	require.True(t, ok)
	require.Equal(t, OpSub, left.Op)
	require.Equal(t, "a", left.Left.(*Name).Ident)
	require.Equal(t, "c", root.Right.(*Name).Ident)
}

func TestParsePowerRightAssociative(t *testing.T) {
	expr := parseOne(t, "a ** b ** c")

	root, ok := expr.(*BinaryOp)
	require.True(t, ok)
	require.Equal(t, OpPow, root.Op)
	require.Equal(t, "a", root.Left.(*Name).Ident)

	right, ok := root.Right.(*BinaryOp)
	require.True(t, ok)
	require.Equal(t, OpPow, right.Op)
}

func TestParseUnaryBindsLooserThanPower(t *testing.T) {
	expr := parseOne(t, "-x ** 2")

	un, ok := expr.(*UnaryOp)
	require.True(t, ok)
	require.Equal(t, UnaryMinus, un.Op)

	pow, ok := un.Operand.(*BinaryOp)
	require.True(t, ok)
	require.Equal(t, OpPow, pow.Op)
}

func TestParseUnaryExponent(t *testing.T) {
	expr := parseOne(t, "x ** -y")

	pow, ok := expr.(*BinaryOp)
	require.True(t, ok)
	require.Equal(t, OpPow, pow.Op)

	exp, ok := pow.Right.(*UnaryOp)
	require.True(t, ok)
	require.Equal(t, UnaryMinus, exp.Op)
}

func TestParseComparisonChain(t *testing.T) {
	expr := parseOne(t, "a < b <= c")

	cmp, ok := expr.(*Compare)
	require.True(t, ok)
	require.Equal(t, []CmpOp{CmpLt, CmpLtE}, cmp.Ops)
	require.Len(t, cmp.Comparators, 2)
	require.Len(t, cmp.OpLocs, 2)
	require.Equal(t, "a", cmp.Left.(*Name).Ident)
}

func TestParseKeywordComparisons(t *testing.T) {
	tests := []struct {
		source string
		op     CmpOp
	}{
		{"a in b", CmpIn},
		{"a not in b", CmpNotIn},
		{"a is b", CmpIs},
		{"a is not b", CmpIsNot},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			cmp, ok := parseOne(t, tt.source).(*Compare)
			require.True(t, ok)
			require.Equal(t, []CmpOp{tt.op}, cmp.Ops)
		})
	}
}

func TestParseBoolOps(t *testing.T) {
	expr := parseOne(t, "a and b or not c")

	or, ok := expr.(*BoolOp)
	require.True(t, ok)
	require.Equal(t, BoolOr, or.Op)
	require.Len(t, or.Values, 2)

	and, ok := or.Values[0].(*BoolOp)
	require.True(t, ok)
	require.Equal(t, BoolAnd, and.Op)

	not, ok := or.Values[1].(*UnaryOp)
	require.True(t, ok)
	require.Equal(t, UnaryNot, not.Op)
}

func TestParseGrouped(t *testing.T) {
	expr := parseOne(t, "(a + b) * c")

	mult, ok := expr.(*BinaryOp)
	require.True(t, ok)
	require.Equal(t, OpMult, mult.Op)

	grouped, ok := mult.Left.(*Grouped)
	require.True(t, ok)
	inner, ok := grouped.Expr.(*BinaryOp)
	require.True(t, ok)
	require.Equal(t, OpAdd, inner.Op)
}

func TestParseImplicitConcat(t *testing.T) {
	str, ok := parseOne(t, `"a" 'b' "c"`).(*String)
	require.True(t, ok)
	require.Len(t, str.Parts, 3)
	require.True(t, str.ImplicitConcat())

	single, ok := parseOne(t, `"only"`).(*String)
	require.True(t, ok)
	require.False(t, single.ImplicitConcat())
}

func TestParsePostfix(t *testing.T) {
	expr := parseOne(t, "obj.attr(x, y)[0]")

	sub, ok := expr.(*Subscript)
	require.True(t, ok)

	call, ok := sub.Value.(*Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)

	attr, ok := call.Fun.(*Attribute)
	require.True(t, ok)
	require.Equal(t, "attr", attr.Attr)
	require.Equal(t, "obj", attr.Value.(*Name).Ident)
}

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		source string
		kind   NumberKind
	}{
		{"42", IntNumber},
		{"0xff", IntNumber},
		{"0b101", IntNumber},
		{"3.14", FloatNumber},
		{"1e10", FloatNumber},
		{"2.5e-3", FloatNumber},
		{"4j", ImaginaryNumber},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			num, ok := parseOne(t, tt.source).(*Number)
			require.True(t, ok)
			require.Equal(t, tt.kind, num.Kind)
			require.Equal(t, tt.source, num.Raw)
		})
	}
}

func TestParseMultipleStatements(t *testing.T) {
	mod, _, err := ParseModule("test", []byte("a + b\nc * d\n"))
	require.NoError(t, err)
	require.Len(t, mod.Stmts, 2)
}

func TestParseLineContinuation(t *testing.T) {
	expr := parseOne(t, "a + \\\nb")
	bin, ok := expr.(*BinaryOp)
	require.True(t, ok)
	require.Equal(t, OpAdd, bin.Op)
}

func TestParseBracketsJoinLines(t *testing.T) {
	expr := parseOne(t, "(a +\nb)")
	grouped, ok := expr.(*Grouped)
	require.True(t, ok)
	_, ok = grouped.Expr.(*BinaryOp)
	require.True(t, ok)
}

func TestParseComments(t *testing.T) {
	_, comments, err := ParseModule("test", []byte("# own line\na + b  # trailing\n"))
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.True(t, comments[0].OwnLine)
	require.Equal(t, "# own line", comments[0].Text)
	require.False(t, comments[1].OwnLine)
	require.Equal(t, "# trailing", comments[1].Text)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"dangling operator", "a +"},
		{"unmatched close paren", "a)"},
		{"unterminated string", `"oops`},
		{"keyword as operand", "in"},
		{"missing close paren", "(a + b"},
		{"missing attribute name", "obj."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseModule("test", []byte(tt.source))
			require.Error(t, err)
		})
	}
}

func TestParseExprRejectsMultipleStatements(t *testing.T) {
	_, _, err := ParseExpr("test", []byte("a\nb"))
	require.Error(t, err)
}

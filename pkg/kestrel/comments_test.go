package kestrel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func associate(t *testing.T, source string) (*Module, *Comments) {
	t.Helper()
	mod, comments, err := ParseModule("test", []byte(source))
	require.NoError(t, err)
	return mod, AssociateComments(mod, comments)
}

func findName(t *testing.T, root Node, ident string) *Name {
	t.Helper()
	var found *Name
	root.Walk(func(n Node) bool {
		if name, ok := n.(*Name); ok && name.Ident == ident {
			found = name
		}
		return true
	})
	require.NotNil(t, found, "name %q not found", ident)
	return found
}

func findBinaryOp(t *testing.T, root Node) *BinaryOp {
	t.Helper()
	var found *BinaryOp
	root.Walk(func(n Node) bool {
		if bin, ok := n.(*BinaryOp); ok && found == nil {
			found = bin
		}
		return true
	})
	require.NotNil(t, found, "binary operation not found")
	return found
}

func TestTrailingCommentAttachesToInnermostNode(t *testing.T) {
	mod, cm := associate(t, "a + b  # hey")

	trailing := cm.Trailing(findName(t, mod, "b"))
	require.Len(t, trailing, 1)
	require.Equal(t, "# hey", trailing[0].Text)
}

func TestOwnLineCommentLeadsStatement(t *testing.T) {
	mod, cm := associate(t, "# note\nfoo")

	leading := cm.Leading(mod.Stmts[0])
	require.Len(t, leading, 1)
	require.Equal(t, "# note", leading[0].Text)
	require.False(t, cm.HasLeading(findName(t, mod, "foo")))
}

func TestCommentBetweenStatementsLeadsNext(t *testing.T) {
	mod, cm := associate(t, "first\n# between\nsecond")

	require.Empty(t, cm.Leading(mod.Stmts[0]))
	leading := cm.Leading(mod.Stmts[1])
	require.Len(t, leading, 1)
	require.Equal(t, "# between", leading[0].Text)
}

func TestOperatorCommentDangles(t *testing.T) {
	mod, cm := associate(t, "(a +  # why\nb)")

	bin := findBinaryOp(t, mod)
	dangling := cm.Dangling(bin)
	require.Len(t, dangling, 1)
	require.Equal(t, "# why", dangling[0].Text)
	require.Empty(t, cm.Trailing(findName(t, mod, "a")))
}

func TestOwnLineCommentLeadsOperand(t *testing.T) {
	mod, cm := associate(t, "(a +\n# reason\nb)")

	leading := cm.Leading(findName(t, mod, "b"))
	require.Len(t, leading, 1)
	require.Equal(t, "# reason", leading[0].Text)

	bin := findBinaryOp(t, mod)
	require.Empty(t, cm.Dangling(bin))
}

func TestTailCommentAttachesToModule(t *testing.T) {
	mod, cm := associate(t, "foo\n# tail")

	trailing := cm.Trailing(mod)
	require.Len(t, trailing, 1)
	require.Equal(t, "# tail", trailing[0].Text)
}

func TestCommentOnlySourceAttachesToModule(t *testing.T) {
	mod, cm := associate(t, "# alone\n")

	require.Empty(t, mod.Stmts)
	require.Len(t, cm.Trailing(mod), 1)
}

func TestLeadingCommentInsideCall(t *testing.T) {
	mod, cm := associate(t, "f(\n# arg note\nx)")

	leading := cm.Leading(findName(t, mod, "x"))
	require.Len(t, leading, 1)
	require.Equal(t, "# arg note", leading[0].Text)
}

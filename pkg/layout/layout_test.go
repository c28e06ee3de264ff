package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderFlat(t *testing.T) {
	b := NewBuilder()
	b.OpenGroup()
	b.Text("aaaa")
	b.SoftLineOrSpace()
	b.Text("bbbb")
	b.CloseGroup()

	require.Equal(t, "aaaa bbbb", Render(b.Doc(), 20))
}

func TestRenderBreaksWhenTooWide(t *testing.T) {
	b := NewBuilder()
	b.OpenGroup()
	b.Text("aaaa")
	b.SoftLineOrSpace()
	b.Text("bbbb")
	b.CloseGroup()

	require.Equal(t, "aaaa\nbbbb", Render(b.Doc(), 5))
}

func TestSoftLineCollapsesToNothing(t *testing.T) {
	b := NewBuilder()
	b.OpenGroup()
	b.Text("a")
	b.SoftLine()
	b.Text("b")
	b.CloseGroup()

	require.Equal(t, "ab", Render(b.Doc(), 10))
}

func TestHardLineForcesGroupBreak(t *testing.T) {
	b := NewBuilder()
	b.OpenGroup()
	b.Text("a")
	b.SoftLineOrSpace()
	b.Text("b")
	b.HardLine()
	b.Text("c")
	b.CloseGroup()

	// The group would fit on one line but the hard break poisons it.
	require.Equal(t, "a\nb\nc", Render(b.Doc(), 80))
}

func TestNestedGroupsBreakIndependently(t *testing.T) {
	b := NewBuilder()
	b.OpenGroup()
	b.OpenGroup()
	b.Text("aa")
	b.SoftLineOrSpace()
	b.Text("bb")
	b.CloseGroup()
	b.SoftLineOrSpace()
	b.Text("cccccc")
	b.CloseGroup()

	// The outer group breaks; the inner one still fits on its line.
	require.Equal(t, "aa bb\ncccccc", Render(b.Doc(), 7))
}

func TestIndentAppliesAfterLineBreaks(t *testing.T) {
	b := NewBuilder()
	b.Text("f(")
	b.OpenIndent()
	b.HardLine()
	b.Text("x")
	b.CloseIndent()
	b.HardLine()
	b.Text(")")

	require.Equal(t, "f(\n    x\n)", Render(b.Doc(), 80))
}

func TestLineSuffixFlushesAtLineEnd(t *testing.T) {
	b := NewBuilder()
	b.Text("a")
	b.LineSuffix("  # c")
	b.Text(" + b")

	require.Equal(t, "a + b  # c", Render(b.Doc(), 80))
}

func TestLineSuffixFlushesBeforeNewline(t *testing.T) {
	b := NewBuilder()
	b.Text("a")
	b.LineSuffix("  # c")
	b.HardLine()
	b.Text("b")

	require.Equal(t, "a  # c\nb", Render(b.Doc(), 80))
}

func TestLineSuffixBoundary(t *testing.T) {
	b := NewBuilder()
	b.Text("x")
	b.LineSuffix("  # c")
	b.LineSuffixBoundary()
	b.Text("y")

	require.Equal(t, "x  # c\ny", Render(b.Doc(), 80))
}

func TestLineSuffixBoundaryWithoutSuffixes(t *testing.T) {
	b := NewBuilder()
	b.Text("x")
	b.LineSuffixBoundary()
	b.Text("y")

	require.Equal(t, "xy", Render(b.Doc(), 80))
}

func TestSuffixesHaveZeroFlatWidth(t *testing.T) {
	b := NewBuilder()
	b.OpenGroup()
	b.Text("aaaa")
	b.LineSuffix("  # a very long trailing comment")
	b.SoftLineOrSpace()
	b.Text("bbbb")
	b.CloseGroup()

	// The suffix moves past the line end, so it never causes a break.
	require.Equal(t, "aaaa bbbb  # a very long trailing comment", Render(b.Doc(), 10))
}

func TestTrailingWhitespaceTrimmed(t *testing.T) {
	b := NewBuilder()
	b.Text("a")
	b.Space()
	b.HardLine()
	b.Text("b")

	require.Equal(t, "a\nb", Render(b.Doc(), 80))
}

func TestFits(t *testing.T) {
	b := NewBuilder()
	b.Text("aaaa")
	b.SoftLineOrSpace()
	b.Text("bbbb")
	doc := b.Doc()

	require.True(t, Fits(doc, 9))
	require.False(t, Fits(doc, 8))
}

func TestFitsRejectsHardLines(t *testing.T) {
	b := NewBuilder()
	b.Text("a")
	b.HardLine()
	b.Text("b")

	require.False(t, Fits(b.Doc(), 100))
}

func TestUnbalancedGroupPanics(t *testing.T) {
	b := NewBuilder()
	b.OpenGroup()
	b.Text("a")
	require.Panics(t, func() { b.Doc() })
}

func TestCloseWithoutOpenPanics(t *testing.T) {
	b := NewBuilder()
	require.Panics(t, func() { b.CloseGroup() })
	require.Panics(t, func() { b.CloseIndent() })
}

func TestMismatchedCloseKindPanics(t *testing.T) {
	b := NewBuilder()
	b.OpenGroup()
	require.Panics(t, func() { b.CloseIndent() })
}

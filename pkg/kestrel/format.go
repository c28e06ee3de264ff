package kestrel

import (
	"fmt"
	"strings"

	"github.com/kestrelfmt/kestrel/pkg/layout"
)

// DefaultLineLength is the target line width when none is configured.
const DefaultLineLength = 88

// FormatFile formats source at the default line length.
func FormatFile(source []byte) (string, error) {
	return FormatSource(source, DefaultLineLength)
}

// FormatSource formats a file of expression statements at the given line
// width. Formatting is deterministic: the same source always produces the
// same output.
func FormatSource(source []byte, width int) (string, error) {
	mod, comments, err := ParseModule("format", source)
	if err != nil {
		return "", err
	}
	cm := AssociateComments(mod, comments)

	var out strings.Builder
	lastLine := 0

	writeGap := func(line int) {
		if lastLine > 0 && line > lastLine+1 {
			out.WriteString("\n")
		}
	}

	for _, stmt := range mod.Stmts {
		for _, c := range cm.Leading(stmt) {
			writeGap(c.Loc.Start.Line)
			out.WriteString(c.Text)
			out.WriteString("\n")
			lastLine = c.Loc.Start.Line
		}

		writeGap(stmt.Loc.Start.Line)
		out.WriteString(formatStatement(stmt, cm, width))
		for _, c := range cm.Trailing(stmt) {
			out.WriteString("  " + c.Text)
		}
		out.WriteString("\n")
		lastLine = stmt.Loc.End.Line
	}

	// Comments after the last statement.
	for _, c := range cm.Trailing(mod) {
		writeGap(c.Loc.Start.Line)
		out.WriteString(c.Text)
		out.WriteString("\n")
		lastLine = c.Loc.Start.Line
	}

	return out.String(), nil
}

// formatStatement renders one expression statement. A statement that doesn't
// fit on a single line (or that contains comment-forced breaks) is wrapped
// in parentheses with an indented body, unless the author already
// parenthesized it.
func formatStatement(stmt *ExprStmt, cm *Comments, width int) string {
	p := newPrinter(cm)
	p.formatExpr(stmt.Expr)
	rendered := layout.Render(p.doc.Doc(), width)

	if !strings.Contains(rendered, "\n") {
		return rendered
	}
	if !needsParens(stmt.Expr) {
		return rendered
	}

	p = newPrinter(cm)
	p.doc.Text("(")
	p.doc.OpenIndent()
	p.doc.HardLine()
	p.formatExpr(stmt.Expr)
	p.doc.CloseIndent()
	p.doc.HardLine()
	p.doc.Text(")")
	return layout.Render(p.doc.Doc(), width)
}

// needsParens reports whether a multi-line expression must be wrapped in
// parentheses to stay syntactically valid. Calls and subscripts already
// break inside their own brackets; chains and implicit concatenations have
// nowhere else to put the line break.
func needsParens(expr Node) bool {
	switch e := expr.(type) {
	case *BinaryOp, *Compare, *BoolOp, *UnaryOp:
		return true
	case *String:
		return e.ImplicitConcat()
	default:
		return false
	}
}

// printer emits layout directives for expressions. One printer is created
// per statement; it has no state beyond the directive stream and the
// record of comments already emitted.
type printer struct {
	doc      *layout.Builder
	comments *Comments

	// emitted tracks comments that have been written. The chain formatter
	// flushes boundary comments at every split candidate; each comment must
	// still appear exactly once.
	emitted map[*Comment]bool
}

func newPrinter(comments *Comments) *printer {
	return &printer{
		doc:      layout.NewBuilder(),
		comments: comments,
		emitted:  map[*Comment]bool{},
	}
}

func (p *printer) emitLeadingComments(comments []*Comment) {
	for _, c := range comments {
		if p.emitted[c] {
			continue
		}
		p.emitted[c] = true
		p.doc.Text(c.Text)
		p.doc.HardLine()
	}
}

func (p *printer) emitTrailingComments(comments []*Comment) {
	for _, c := range comments {
		if p.emitted[c] {
			continue
		}
		p.emitted[c] = true
		p.doc.LineSuffix("  " + c.Text)
	}
}

func (p *printer) emitOperator(op *operator) {
	p.doc.Text(op.symbol.String())
	p.emitTrailingComments(op.trailing)
}

// formatExpr emits a single expression with its leading and trailing
// comments.
func (p *printer) formatExpr(node Node) {
	p.emitLeadingComments(p.comments.Leading(node))
	p.formatExprInner(node)
	p.emitTrailingComments(p.comments.Trailing(node))
}

func (p *printer) formatExprInner(node Node) {
	switch e := node.(type) {
	case *Name:
		p.doc.Text(e.Ident)

	case *Number:
		p.doc.Text(e.Raw)

	case *String:
		p.formatString(e)

	case *Grouped:
		p.doc.Text("(")
		p.doc.OpenGroup()
		p.doc.OpenIndent()
		p.doc.SoftLine()
		p.formatExpr(e.Expr)
		p.doc.CloseIndent()
		p.doc.SoftLine()
		p.doc.CloseGroup()
		p.doc.Text(")")

	case *Attribute:
		p.formatExpr(e.Value)
		p.doc.Text("." + e.Attr)

	case *Call:
		p.formatExpr(e.Fun)
		p.doc.Text("(")
		if len(e.Args) > 0 {
			p.doc.OpenGroup()
			p.doc.OpenIndent()
			p.doc.SoftLine()
			for i, arg := range e.Args {
				if i > 0 {
					p.doc.Text(",")
					p.doc.SoftLineOrSpace()
				}
				p.formatExpr(arg)
			}
			p.doc.CloseIndent()
			p.doc.SoftLine()
			p.doc.CloseGroup()
		}
		p.doc.Text(")")

	case *Subscript:
		p.formatExpr(e.Value)
		p.doc.Text("[")
		p.formatExpr(e.Index)
		p.doc.Text("]")

	case *UnaryOp:
		p.doc.Text(e.Op.String())
		if e.Op == UnaryNot {
			p.doc.Space()
		}
		p.formatExpr(e.Operand)

	case *BinaryOp, *Compare:
		p.formatBinaryLike(node)

	case *BoolOp:
		p.doc.OpenGroup()
		for i, v := range e.Values {
			if i > 0 {
				p.doc.SoftLineOrSpace()
				p.doc.Text(e.Op.String())
				p.doc.Space()
			}
			p.formatExpr(v)
		}
		p.doc.CloseGroup()

	case *ExprStmt:
		p.formatExpr(e.Expr)

	default:
		panic(fmt.Sprintf("cannot format %T", node))
	}
}

// formatString emits a standalone string literal. An implicit concatenation
// gets its own group so the parts break together when it doesn't fit.
func (p *printer) formatString(s *String) {
	if !s.ImplicitConcat() {
		p.doc.Text(s.Parts[0].Raw)
		return
	}
	p.doc.OpenGroup()
	p.formatImplicitConcatString(s)
	p.doc.CloseGroup()
}

// formatImplicitConcatString emits the parts of an implicit concatenation
// with break candidates between them but no enclosing group: inside a chain
// the literals must break with the chain's outer string group, not on their
// own.
func (p *printer) formatImplicitConcatString(s *String) {
	for i, part := range s.Parts {
		if i > 0 {
			p.doc.SoftLineOrSpace()
		}
		p.doc.Text(part.Raw)
	}
}

package kestrel

// Pos is a position in the source, 1-indexed line and column with a byte
// offset into the original input.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// Span covers a half-open [Start, End) region of the source.
type Span struct {
	Start Pos
	End   Pos
}

// Contains reports whether the span fully covers the other span.
func (s Span) Contains(other Span) bool {
	return s.Start.Offset <= other.Start.Offset && other.End.Offset <= s.End.Offset
}

func (s Span) width() int {
	return s.End.Offset - s.Start.Offset
}

// Node is an expression tree node. The formatter only reads the tree; nothing
// here is mutated after parsing.
type Node interface {
	Span() Span

	// Walk recursively visits this node and all its children, calling fn for
	// each node. The callback returns true to continue walking into children,
	// false to skip children.
	Walk(fn func(Node) bool)
}

// Module is a sequence of expression statements.
type Module struct {
	Stmts []*ExprStmt
	Loc   Span
}

var _ Node = (*Module)(nil)

func (m *Module) Span() Span { return m.Loc }

func (m *Module) Walk(fn func(Node) bool) {
	if fn(m) {
		for _, stmt := range m.Stmts {
			stmt.Walk(fn)
		}
	}
}

// ExprStmt is a single expression statement.
type ExprStmt struct {
	Expr Node
	Loc  Span
}

var _ Node = (*ExprStmt)(nil)

func (s *ExprStmt) Span() Span { return s.Loc }

func (s *ExprStmt) Walk(fn func(Node) bool) {
	if fn(s) {
		s.Expr.Walk(fn)
	}
}

// Name represents an identifier reference
type Name struct {
	Ident string
	Loc   Span
}

var _ Node = (*Name)(nil)

func (n *Name) Span() Span { return n.Loc }

func (n *Name) Walk(fn func(Node) bool) {
	fn(n)
}

// Grouped represents a parenthesized expression - used to preserve explicit
// grouping. A chain wrapped in a Grouped node is never re-flattened; its
// grouping was fixed by the author.
type Grouped struct {
	Expr Node
	Loc  Span
}

var _ Node = (*Grouped)(nil)

func (g *Grouped) Span() Span { return g.Loc }

func (g *Grouped) Walk(fn func(Node) bool) {
	if fn(g) {
		g.Expr.Walk(fn)
	}
}

// Attribute represents attribute access, e.g. `obj.attr`.
type Attribute struct {
	Value Node
	Attr  string
	Loc   Span
}

var _ Node = (*Attribute)(nil)

func (a *Attribute) Span() Span { return a.Loc }

func (a *Attribute) Walk(fn func(Node) bool) {
	if fn(a) {
		a.Value.Walk(fn)
	}
}

// Call represents a function call expression
type Call struct {
	Fun  Node
	Args []Node
	Loc  Span
}

var _ Node = (*Call)(nil)

func (c *Call) Span() Span { return c.Loc }

func (c *Call) Walk(fn func(Node) bool) {
	if fn(c) {
		c.Fun.Walk(fn)
		for _, arg := range c.Args {
			arg.Walk(fn)
		}
	}
}

// Subscript represents an indexing expression, e.g. `value[index]`.
type Subscript struct {
	Value Node
	Index Node
	Loc   Span
}

var _ Node = (*Subscript)(nil)

func (s *Subscript) Span() Span { return s.Loc }

func (s *Subscript) Walk(fn func(Node) bool) {
	if fn(s) {
		s.Value.Walk(fn)
		s.Index.Walk(fn)
	}
}

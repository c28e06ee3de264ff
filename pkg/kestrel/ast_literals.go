package kestrel

import "fmt"

// NumberKind distinguishes the numeric literal flavors.
type NumberKind int

const (
	IntNumber NumberKind = iota
	FloatNumber
	ImaginaryNumber
)

func (k NumberKind) String() string {
	switch k {
	case IntNumber:
		return "int"
	case FloatNumber:
		return "float"
	case ImaginaryNumber:
		return "imaginary"
	default:
		return fmt.Sprintf("<unknown NumberKind %d>", int(k))
	}
}

// Number represents a numeric literal. The raw source text is preserved so
// formatting never rewrites digits, underscores, or exponents.
type Number struct {
	Raw  string
	Kind NumberKind
	Loc  Span
}

var _ Node = (*Number)(nil)

func (n *Number) Span() Span { return n.Loc }

func (n *Number) Walk(fn func(Node) bool) {
	fn(n)
}

// StringPart is one literal in a (possibly implicitly concatenated) string.
type StringPart struct {
	Raw string
	Loc Span
}

// String represents a string literal. Adjacent literals with no operator
// between them parse into a single String with multiple parts.
type String struct {
	Parts []StringPart
	Loc   Span
}

var _ Node = (*String)(nil)

func (s *String) Span() Span { return s.Loc }

func (s *String) Walk(fn func(Node) bool) {
	fn(s)
}

// ImplicitConcat reports whether the literal is an implicit concatenation of
// two or more adjacent string literals.
func (s *String) ImplicitConcat() bool {
	return len(s.Parts) > 1
}

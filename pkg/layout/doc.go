package layout

import "fmt"

// Doc is a node in the layout document tree. Formatters build a Doc through a
// Builder and hand it to Render, which decides where line break candidates
// actually break based on the target line width.
type Doc interface {
	isDoc()
}

// Text is a literal run of characters with no break opportunities.
type Text string

// Space is a single space that never breaks.
type Space struct{}

// LineKind distinguishes the three line break directives.
type LineKind int

const (
	// SoftLine renders as nothing when the enclosing group fits, or a line
	// break when it doesn't.
	SoftLine LineKind = iota
	// SoftLineOrSpace renders as a space when the enclosing group fits, or a
	// line break when it doesn't.
	SoftLineOrSpace
	// HardLine always renders as a line break and forces every enclosing
	// group to break.
	HardLine
)

func (k LineKind) String() string {
	switch k {
	case SoftLine:
		return "SoftLine"
	case SoftLineOrSpace:
		return "SoftLineOrSpace"
	case HardLine:
		return "HardLine"
	default:
		return fmt.Sprintf("<unknown LineKind %d>", int(k))
	}
}

// Line is a line break candidate.
type Line struct {
	Kind LineKind
}

// Concat is a sequence of documents rendered in order.
type Concat []Doc

// Group is a unit whose break decision is made atomically: either all line
// break candidates directly inside it break, or none do.
type Group struct {
	Docs Concat
}

// Indent renders its contents one indentation level deeper. The extra
// indentation only shows up after line breaks inside it.
type Indent struct {
	Docs Concat
}

// LineSuffix queues text that is emitted just before the next line break,
// after everything else on the line. Used for trailing comments so they never
// swallow the tokens that follow them.
type LineSuffix string

// LineSuffixBoundary forces a line break if any line suffixes are pending,
// preventing queued suffix text from drifting past unrelated tokens.
type LineSuffixBoundary struct{}

func (Text) isDoc()               {}
func (Space) isDoc()              {}
func (Line) isDoc()               {}
func (Concat) isDoc()             {}
func (Group) isDoc()              {}
func (Indent) isDoc()             {}
func (LineSuffix) isDoc()         {}
func (LineSuffixBoundary) isDoc() {}

type frameKind int

const (
	rootFrame frameKind = iota
	groupFrame
	indentFrame
)

type frame struct {
	kind frameKind
	docs Concat
}

// Builder accumulates a directive stream and assembles it into a Doc tree.
// OpenGroup/CloseGroup and OpenIndent/CloseIndent must be balanced; Doc
// panics if they are not, since an unbalanced stream is a bug in the caller,
// not a condition to recover from.
type Builder struct {
	stack []*frame
}

func NewBuilder() *Builder {
	return &Builder{stack: []*frame{{kind: rootFrame}}}
}

func (b *Builder) top() *frame {
	return b.stack[len(b.stack)-1]
}

func (b *Builder) push(d Doc) {
	top := b.top()
	top.docs = append(top.docs, d)
}

// Text appends literal text.
func (b *Builder) Text(s string) {
	b.push(Text(s))
}

// Space appends a non-breaking space.
func (b *Builder) Space() {
	b.push(Space{})
}

// SoftLine appends a break candidate that collapses to nothing.
func (b *Builder) SoftLine() {
	b.push(Line{Kind: SoftLine})
}

// SoftLineOrSpace appends a break candidate that collapses to a space.
func (b *Builder) SoftLineOrSpace() {
	b.push(Line{Kind: SoftLineOrSpace})
}

// HardLine appends an unconditional line break.
func (b *Builder) HardLine() {
	b.push(Line{Kind: HardLine})
}

// LineSuffix queues text to be flushed at the next line break.
func (b *Builder) LineSuffix(s string) {
	b.push(LineSuffix(s))
}

// LineSuffixBoundary appends a boundary that breaks iff suffixes are pending.
func (b *Builder) LineSuffixBoundary() {
	b.push(LineSuffixBoundary{})
}

// OpenGroup starts a new group; it must be matched by CloseGroup.
func (b *Builder) OpenGroup() {
	b.stack = append(b.stack, &frame{kind: groupFrame})
}

// CloseGroup finishes the innermost open group.
func (b *Builder) CloseGroup() {
	top := b.top()
	if top.kind != groupFrame {
		panic("layout: CloseGroup without matching OpenGroup")
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.push(Group{Docs: top.docs})
}

// OpenIndent starts an indented region; it must be matched by CloseIndent.
func (b *Builder) OpenIndent() {
	b.stack = append(b.stack, &frame{kind: indentFrame})
}

// CloseIndent finishes the innermost open indent.
func (b *Builder) CloseIndent() {
	top := b.top()
	if top.kind != indentFrame {
		panic("layout: CloseIndent without matching OpenIndent")
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.push(Indent{Docs: top.docs})
}

// Doc returns the assembled document. It panics if any group or indent is
// still open.
func (b *Builder) Doc() Doc {
	if len(b.stack) != 1 {
		panic(fmt.Sprintf("layout: %d unclosed groups or indents", len(b.stack)-1))
	}
	return b.stack[0].docs
}

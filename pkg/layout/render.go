package layout

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

const indentString = "    "

type mode int

const (
	modeFlat mode = iota
	modeBreak
)

// Render lays out a document within the given line width. Groups that fit on
// the remainder of the current line are rendered flat; groups that don't (or
// that contain a hard line break) are rendered with every break candidate
// taken. The result is deterministic for a given document and width.
func Render(doc Doc, width int) string {
	r := &renderer{width: width}
	r.render(doc, 0, modeBreak)
	r.flushSuffixes()
	return trimTrailingWhitespace(r.buf.String())
}

// Fits reports whether the document renders on a single line within width.
func Fits(doc Doc, width int) bool {
	return fits(doc, width)
}

type renderer struct {
	buf      bytes.Buffer
	width    int
	col      int
	suffixes []string
}

func (r *renderer) render(doc Doc, indent int, m mode) {
	switch d := doc.(type) {
	case Text:
		r.write(string(d))
	case Space:
		r.write(" ")
	case Line:
		switch d.Kind {
		case HardLine:
			r.newline(indent)
		case SoftLine:
			if m == modeBreak {
				r.newline(indent)
			}
		case SoftLineOrSpace:
			if m == modeBreak {
				r.newline(indent)
			} else {
				r.write(" ")
			}
		}
	case Concat:
		for _, child := range d {
			r.render(child, indent, m)
		}
	case Group:
		groupMode := modeBreak
		if fits(d.Docs, r.width-r.col) {
			groupMode = modeFlat
		}
		for _, child := range d.Docs {
			r.render(child, indent, groupMode)
		}
	case Indent:
		for _, child := range d.Docs {
			r.render(child, indent+1, m)
		}
	case LineSuffix:
		r.suffixes = append(r.suffixes, string(d))
	case LineSuffixBoundary:
		if len(r.suffixes) > 0 {
			r.newline(indent)
		}
	}
}

func (r *renderer) write(s string) {
	r.buf.WriteString(s)
	r.col += utf8.RuneCountInString(s)
}

func (r *renderer) newline(indent int) {
	r.flushSuffixes()
	r.buf.WriteString("\n")
	r.col = 0
	for range indent {
		r.write(indentString)
	}
}

func (r *renderer) flushSuffixes() {
	for _, s := range r.suffixes {
		r.write(s)
	}
	r.suffixes = r.suffixes[:0]
}

// fits measures the flat width of a document. Hard line breaks never fit.
// Line suffixes are measured as zero width since they move past the line end.
func fits(doc Doc, remaining int) bool {
	w, ok := flatWidth(doc, remaining)
	return ok && w <= remaining
}

func flatWidth(doc Doc, budget int) (int, bool) {
	switch d := doc.(type) {
	case Text:
		return utf8.RuneCountInString(string(d)), true
	case Space:
		return 1, true
	case Line:
		switch d.Kind {
		case HardLine:
			return 0, false
		case SoftLineOrSpace:
			return 1, true
		default:
			return 0, true
		}
	case Concat:
		return flatWidthAll(d, budget)
	case Group:
		return flatWidthAll(d.Docs, budget)
	case Indent:
		return flatWidthAll(d.Docs, budget)
	case LineSuffix:
		return 0, true
	case LineSuffixBoundary:
		return 0, true
	default:
		return 0, true
	}
}

func flatWidthAll(docs Concat, budget int) (int, bool) {
	total := 0
	for _, d := range docs {
		w, ok := flatWidth(d, budget-total)
		if !ok {
			return 0, false
		}
		total += w
		// Bail out early on pathological inputs; the caller only compares
		// against the remaining line width.
		if total > budget {
			return total, true
		}
	}
	return total, true
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

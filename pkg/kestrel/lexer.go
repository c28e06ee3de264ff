package kestrel

import (
	"fmt"

	"github.com/pkg/errors"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokName
	tokNumber
	tokString
	tokOp
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "EOF"
	case tokNewline:
		return "newline"
	case tokName:
		return "name"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokOp:
		return "operator"
	default:
		return fmt.Sprintf("<unknown tokenKind %d>", int(k))
	}
}

type token struct {
	kind    tokenKind
	text    string
	loc     Span
	numKind NumberKind // only meaningful for tokNumber
}

// Comment is one source comment, including the leading #.
type Comment struct {
	Text string
	Loc  Span

	// OwnLine is true when no code precedes the comment on its line.
	OwnLine bool
}

type lexer struct {
	name   string
	src    []byte
	offset int
	line   int
	col    int

	// depth tracks open brackets; newlines inside brackets are implicit
	// line joins and produce no token.
	depth int

	// sawCode is true once a non-comment token has been produced on the
	// current line.
	sawCode bool

	tokens   []token
	comments []*Comment
}

// lex tokenizes the source, returning tokens and comments separately.
// Comments never appear in the token stream; they are associated with AST
// nodes after parsing.
func lex(name string, source []byte) ([]token, []*Comment, error) {
	l := &lexer{name: name, src: source, line: 1, col: 1}
	if err := l.run(); err != nil {
		return nil, nil, err
	}
	return l.tokens, l.comments, nil
}

func (l *lexer) pos() Pos {
	return Pos{Offset: l.offset, Line: l.line, Column: l.col}
}

func (l *lexer) peek() byte {
	if l.offset >= len(l.src) {
		return 0
	}
	return l.src[l.offset]
}

func (l *lexer) peekAt(n int) byte {
	if l.offset+n >= len(l.src) {
		return 0
	}
	return l.src[l.offset+n]
}

func (l *lexer) advance() byte {
	ch := l.src[l.offset]
	l.offset++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *lexer) emit(kind tokenKind, start Pos) {
	l.tokens = append(l.tokens, token{
		kind: kind,
		text: string(l.src[start.Offset:l.offset]),
		loc:  Span{Start: start, End: l.pos()},
	})
	l.sawCode = true
}

func (l *lexer) errorf(format string, args ...any) error {
	return errors.Errorf("%s:%d:%d: %s", l.name, l.line, l.col, fmt.Sprintf(format, args...))
}

func (l *lexer) run() error {
	for l.offset < len(l.src) {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			l.advance()
		case ch == '\\' && l.peekAt(1) == '\n':
			// Explicit line join.
			l.advance()
			l.advance()
		case ch == '\n':
			start := l.pos()
			l.advance()
			if l.depth == 0 && l.sawCode {
				l.tokens = append(l.tokens, token{
					kind: tokNewline,
					text: "\n",
					loc:  Span{Start: start, End: l.pos()},
				})
			}
			l.sawCode = false
		case ch == '#':
			l.scanComment()
		case isNameStart(ch):
			l.scanName()
		case isDigit(ch) || (ch == '.' && isDigit(l.peekAt(1))):
			l.scanNumber()
		case ch == '"' || ch == '\'':
			if err := l.scanString(); err != nil {
				return err
			}
		default:
			if err := l.scanOperator(); err != nil {
				return err
			}
		}
	}
	l.tokens = append(l.tokens, token{kind: tokEOF, loc: Span{Start: l.pos(), End: l.pos()}})
	return nil
}

func (l *lexer) scanComment() {
	start := l.pos()
	for l.offset < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
	l.comments = append(l.comments, &Comment{
		Text:    string(l.src[start.Offset:l.offset]),
		Loc:     Span{Start: start, End: l.pos()},
		OwnLine: !l.sawCode,
	})
}

func (l *lexer) scanName() {
	start := l.pos()
	for l.offset < len(l.src) && isNameContinue(l.peek()) {
		l.advance()
	}
	l.emit(tokName, start)
}

func (l *lexer) scanNumber() {
	start := l.pos()
	kind := IntNumber

	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X' ||
		l.peekAt(1) == 'o' || l.peekAt(1) == 'O' ||
		l.peekAt(1) == 'b' || l.peekAt(1) == 'B') {
		l.advance()
		l.advance()
		for l.offset < len(l.src) && (isHexDigit(l.peek()) || l.peek() == '_') {
			l.advance()
		}
	} else {
		for l.offset < len(l.src) && (isDigit(l.peek()) || l.peek() == '_') {
			l.advance()
		}
		if l.peek() == '.' {
			kind = FloatNumber
			l.advance()
			for l.offset < len(l.src) && (isDigit(l.peek()) || l.peek() == '_') {
				l.advance()
			}
		}
		if l.peek() == 'e' || l.peek() == 'E' {
			next := l.peekAt(1)
			if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
				kind = FloatNumber
				l.advance()
				if l.peek() == '+' || l.peek() == '-' {
					l.advance()
				}
				for l.offset < len(l.src) && isDigit(l.peek()) {
					l.advance()
				}
			}
		}
	}

	if l.peek() == 'j' || l.peek() == 'J' {
		kind = ImaginaryNumber
		l.advance()
	}

	l.tokens = append(l.tokens, token{
		kind:    tokNumber,
		text:    string(l.src[start.Offset:l.offset]),
		loc:     Span{Start: start, End: l.pos()},
		numKind: kind,
	})
	l.sawCode = true
}

func (l *lexer) scanString() error {
	start := l.pos()
	quote := l.advance()
	for {
		if l.offset >= len(l.src) || l.peek() == '\n' {
			return errors.Errorf("%s:%d:%d: unterminated string literal", l.name, start.Line, start.Column)
		}
		ch := l.advance()
		if ch == '\\' && l.offset < len(l.src) {
			l.advance()
			continue
		}
		if ch == quote && l.offset > start.Offset+1 {
			break
		}
	}
	l.emit(tokString, start)
	return nil
}

var twoCharOps = map[string]bool{
	"**": true, "//": true, "<<": true, ">>": true,
	"<=": true, ">=": true, "==": true, "!=": true,
}

func (l *lexer) scanOperator() error {
	start := l.pos()
	ch := l.peek()

	if l.offset+1 < len(l.src) {
		two := string(l.src[l.offset : l.offset+2])
		if twoCharOps[two] {
			l.advance()
			l.advance()
			l.emit(tokOp, start)
			return nil
		}
	}

	switch ch {
	case '(', '[':
		l.depth++
	case ')', ']':
		if l.depth == 0 {
			return l.errorf("unmatched %q", string(ch))
		}
		l.depth--
	case '+', '-', '*', '/', '%', '@', '&', '^', '|', '~', '<', '>', ',', '.':
	default:
		return l.errorf("unexpected character %q", string(ch))
	}

	l.advance()
	l.emit(tokOp, start)
	return nil
}

func isNameStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isNameContinue(ch byte) bool {
	return isNameStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

package pysyntax

import (
	"fmt"
	"strings"
	"unicode"
)

// SyntaxError reports source text that could not be tokenized or whose
// brackets do not balance. It is the "unparsable input" failure kind and is
// never conflated with a style violation.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

type lexer struct {
	src   []rune
	pos   int
	line  int
	col   int
	depth int
	toks  []token
}

// tokenize splits source into tokens with 1-based lines and 0-based columns.
// Newlines inside brackets are implicit line joins; a trailing backslash
// joins lines explicitly; a newline at depth zero becomes a statement break.
func tokenize(src string) ([]token, error) {
	l := &lexer{src: []rune(src), line: 1}
	if err := l.run(); err != nil {
		return nil, err
	}

	return l.toks, nil
}

func (l *lexer) run() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\f':
			l.advance()
		case c == '\n':
			if l.depth == 0 {
				l.emit(kindNewline, "\n")
			}
			l.newline()
		case c == '\\' && l.peek(1) == '\n':
			l.advance()
			l.newline()
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance()
			}
		case c == '\'' || c == '"':
			if err := l.lexString(l.line, l.col, ""); err != nil {
				return err
			}
		case unicode.IsLetter(c) || c == '_':
			if err := l.lexName(); err != nil {
				return err
			}
		case unicode.IsDigit(c) || (c == '.' && unicode.IsDigit(l.peek(1))):
			l.lexNumber()
		default:
			if err := l.lexOp(); err != nil {
				return err
			}
		}
	}

	if l.depth > 0 {
		return &SyntaxError{Line: l.line, Col: l.col, Msg: "unexpected end of input inside brackets"}
	}

	l.emit(kindNewline, "\n")
	l.emit(kindEOF, "")

	return nil
}

func (l *lexer) peek(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}

	return l.src[l.pos+off]
}

func (l *lexer) advance() {
	l.pos++
	l.col++
}

func (l *lexer) newline() {
	l.pos++
	l.line++
	l.col = 0
}

// emit is for synthetic tokens (statement breaks, EOF) whose exact column
// nobody consumes.
func (l *lexer) emit(kind TokenKind, text string) {
	l.toks = append(l.toks, token{kind: kind, text: text, line: l.line, col: l.col})
}

// emitAt is for tokens whose start position was captured before scanning.
func (l *lexer) emitAt(kind TokenKind, text string, line, col int) {
	l.toks = append(l.toks, token{kind: kind, text: text, line: line, col: col})
}

// lexName scans an identifier or keyword. A run of string-prefix letters
// directly followed by a quote starts a prefixed string literal instead.
func (l *lexer) lexName() error {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			break
		}
		l.advance()
	}

	name := string(l.src[start:l.pos])
	if isStringPrefix(name) && l.pos < len(l.src) && (l.src[l.pos] == '\'' || l.src[l.pos] == '"') {
		return l.lexString(line, col, name)
	}

	l.emitAt(KindName, name, line, col)

	return nil
}

func isStringPrefix(name string) bool {
	if len(name) == 0 || len(name) > 3 {
		return false
	}
	for _, c := range strings.ToLower(name) {
		switch c {
		case 'r', 'b', 'f', 'u':
		default:
			return false
		}
	}

	return true
}

// lexString scans a quoted literal, single or triple, starting at the
// opening quote. The prefix, if any, has already been consumed.
func (l *lexer) lexString(line, col int, prefix string) error {
	quote := l.src[l.pos]
	var text strings.Builder
	text.WriteString(prefix)

	triple := l.peek(1) == quote && l.peek(2) == quote
	text.WriteRune(quote)
	l.advance()
	if triple {
		text.WriteRune(quote)
		text.WriteRune(quote)
		l.advance()
		l.advance()
	}

	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\\' && l.pos+1 < len(l.src):
			text.WriteRune(c)
			l.advance()
			next := l.src[l.pos]
			text.WriteRune(next)
			if next == '\n' {
				l.newline()
			} else {
				l.advance()
			}
		case c == '\n':
			if !triple {
				return &SyntaxError{Line: line, Col: col, Msg: "unterminated string literal"}
			}
			text.WriteRune(c)
			l.newline()
		case c == quote:
			if !triple {
				text.WriteRune(c)
				l.advance()
				l.emitAt(KindString, text.String(), line, col)
				return nil
			}
			if l.peek(1) == quote && l.peek(2) == quote {
				text.WriteString(string([]rune{quote, quote, quote}))
				l.advance()
				l.advance()
				l.advance()
				l.emitAt(KindString, text.String(), line, col)
				return nil
			}
			text.WriteRune(c)
			l.advance()
		default:
			text.WriteRune(c)
			l.advance()
		}
	}

	return &SyntaxError{Line: line, Col: col, Msg: "unterminated string literal"}
}

func (l *lexer) lexNumber() {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case unicode.IsDigit(c) || unicode.IsLetter(c) || c == '_' || c == '.':
			l.advance()
		case (c == '+' || c == '-') && l.pos > start && (l.src[l.pos-1] == 'e' || l.src[l.pos-1] == 'E'):
			// exponent sign
			l.advance()
		default:
			l.emitAt(KindNumber, string(l.src[start:l.pos]), line, col)
			return
		}
	}
	l.emitAt(KindNumber, string(l.src[start:l.pos]), line, col)
}

func (l *lexer) lexOp() error {
	line, col := l.line, l.col
	c := l.src[l.pos]

	switch c {
	case '(':
		l.depth++
		l.advance()
		l.emitAt(KindLParen, "(", line, col)
	case '[':
		l.depth++
		l.advance()
		l.emitAt(KindLBracket, "[", line, col)
	case '{':
		l.depth++
		l.advance()
		l.emitAt(KindLBrace, "{", line, col)
	case ')', ']', '}':
		if l.depth == 0 {
			return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf("unmatched %q", string(c))}
		}
		l.depth--
		l.advance()
		switch c {
		case ')':
			l.emitAt(KindRParen, ")", line, col)
		case ']':
			l.emitAt(KindRBracket, "]", line, col)
		case '}':
			l.emitAt(KindRBrace, "}", line, col)
		}
	case ',':
		l.advance()
		l.emitAt(KindComma, ",", line, col)
	case '.':
		l.advance()
		l.emitAt(KindDot, ".", line, col)
	case ':':
		l.advance()
		l.emitAt(KindColon, ":", line, col)
	case '*':
		if l.peek(1) == '*' {
			l.advance()
			l.advance()
			l.emitAt(KindDoubleStar, "**", line, col)
			return nil
		}
		l.advance()
		l.emitAt(KindStar, "*", line, col)
	default:
		l.advance()
		l.emitAt(KindOp, string(c), line, col)
	}

	return nil
}

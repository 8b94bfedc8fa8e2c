package sheetbuilder

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenVariable // $name.seg.seg, stored without the sigil
	tokenFormat   // :name, stored without the sigil
	tokenAnchor   // @name, stored without the sigil
	tokenNumber
	tokenString // stored decoded
	tokenLParen
	tokenRParen
	tokenLBrace
	tokenRBrace
	tokenLBracket
	tokenRBracket
	tokenComma
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return "identifier"
	case tokenVariable:
		return "variable"
	case tokenFormat:
		return "format reference"
	case tokenAnchor:
		return "anchor reference"
	case tokenNumber:
		return "number"
	case tokenString:
		return "string"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	case tokenComma:
		return "','"
	case tokenPlus:
		return "'+'"
	case tokenMinus:
		return "'-'"
	case tokenStar:
		return "'*'"
	case tokenSlash:
		return "'/'"
	}
	return "token"
}

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) errorf(line, col int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}

func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

// skipSpace consumes whitespace and block comments, which are insignificant
// anywhere between tokens.
func (l *lexer) skipSpace() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.advance()
			continue
		}
		if c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*' {
			line, col := l.line, l.col
			l.advance()
			l.advance()
			closed := false
			for l.pos < len(l.src) {
				if l.src[l.pos] == '*' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return l.errorf(line, col, "unterminated block comment")
			}
			continue
		}
		return nil
	}
	return nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (l *lexer) next() (token, error) {
	if err := l.skipSpace(); err != nil {
		return token{}, err
	}
	line, col := l.line, l.col
	if l.pos >= len(l.src) {
		return token{kind: tokenEOF, line: line, col: col}, nil
	}

	c := l.src[l.pos]
	switch {
	case isIdentStart(c):
		start := l.pos
		for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
			l.advance()
		}
		return token{kind: tokenIdent, text: l.src[start:l.pos], line: line, col: col}, nil

	case c == '$':
		l.advance()
		return l.lexPath(tokenVariable, line, col)

	case c == ':':
		l.advance()
		return l.lexName(tokenFormat, line, col)

	case c == '@':
		l.advance()
		return l.lexName(tokenAnchor, line, col)

	case isDigit(c):
		return l.lexNumber(line, col)

	case c == '"':
		return l.lexString(line, col)
	}

	l.advance()
	var kind tokenKind
	switch c {
	case '(':
		kind = tokenLParen
	case ')':
		kind = tokenRParen
	case '{':
		kind = tokenLBrace
	case '}':
		kind = tokenRBrace
	case '[':
		kind = tokenLBracket
	case ']':
		kind = tokenRBracket
	case ',':
		kind = tokenComma
	case '+':
		kind = tokenPlus
	case '-':
		kind = tokenMinus
	case '*':
		kind = tokenStar
	case '/':
		kind = tokenSlash
	default:
		return token{}, l.errorf(line, col, "unexpected character %q", string(c))
	}
	return token{kind: kind, text: string(c), line: line, col: col}, nil
}

// lexName reads the identifier following a : or @ sigil.
func (l *lexer) lexName(kind tokenKind, line, col int) (token, error) {
	if l.pos >= len(l.src) || !isIdentStart(l.src[l.pos]) {
		return token{}, l.errorf(line, col, "expected identifier after %q", sigil(kind))
	}
	start := l.pos
	for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
		l.advance()
	}
	return token{kind: kind, text: l.src[start:l.pos], line: line, col: col}, nil
}

// lexPath reads a variable reference. The dotted path segments stay part of
// a single token; segments may be plain identifiers or bare indices ($arr.0).
func (l *lexer) lexPath(kind tokenKind, line, col int) (token, error) {
	if l.pos >= len(l.src) || !isIdentStart(l.src[l.pos]) {
		return token{}, l.errorf(line, col, "expected identifier after %q", sigil(kind))
	}
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isIdentChar(c) {
			l.advance()
			continue
		}
		if c == '.' && l.pos+1 < len(l.src) && isIdentChar(l.src[l.pos+1]) {
			l.advance()
			continue
		}
		break
	}
	return token{kind: kind, text: l.src[start:l.pos], line: line, col: col}, nil
}

func sigil(kind tokenKind) string {
	switch kind {
	case tokenVariable:
		return "$"
	case tokenFormat:
		return ":"
	case tokenAnchor:
		return "@"
	}
	return ""
}

func (l *lexer) lexNumber(line, col int) (token, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.advance()
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		l.advance()
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.advance()
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		mark := l.pos
		l.advance()
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.advance()
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.advance()
			}
		} else {
			// A bare 'e' belongs to the next token, not the number.
			l.rewind(mark, line, col, start)
		}
	}
	return token{kind: tokenNumber, text: l.src[start:l.pos], line: line, col: col}, nil
}

// rewind backtracks to mark. Numbers never span newlines so the column can
// be recomputed from the token start.
func (l *lexer) rewind(mark, line, col, start int) {
	l.pos = mark
	l.line = line
	l.col = col + (mark - start)
}

func (l *lexer) lexString(line, col int) (token, error) {
	l.advance() // opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.advance()
		switch c {
		case '"':
			return token{kind: tokenString, text: b.String(), line: line, col: col}, nil
		case '\\':
			if l.pos >= len(l.src) {
				return token{}, l.errorf(line, col, "unterminated string literal")
			}
			e := l.advance()
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(e)
			}
		case '\n':
			return token{}, l.errorf(line, col, "unterminated string literal")
		default:
			b.WriteByte(c)
		}
	}
	return token{}, l.errorf(line, col, "unterminated string literal")
}

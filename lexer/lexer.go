// Package lexer implements the front end's lexical analyzer: one token
// per call from a byte stream, tracking source line position and nesting
// block comments to arbitrary depth. It never returns the synthetic
// INVALID token to callers — invalid bytes are reported and retried
// internally.
package lexer

import (
	"strings"

	"github.com/dkerns/plc/diag"
	"github.com/dkerns/plc/symtab"
	"github.com/dkerns/plc/token"
)

// Lexer scans tokens from an in-memory byte slice. Line is one-based and
// is published to Diagnostics every time a newline is crossed.
type Lexer struct {
	src  []byte
	pos  int
	line int

	env   *symtab.Environment
	diags *diag.Diagnostics
}

// New builds a lexer over src. env supplies reserved-word recognition;
// diags receives line updates and lexical diagnostics.
func New(src []byte, env *symtab.Environment, diags *diag.Diagnostics) *Lexer {
	return &Lexer{src: src, line: 1, env: env, diags: diags}
}

// Line reports the lexer's current one-based line number.
func (l *Lexer) Line() int {
	return l.line
}

func (l *Lexer) peekByte(offset int) int {
	i := l.pos + offset
	if i >= len(l.src) {
		return token.EOFByte
	}
	return int(l.src[i])
}

func (l *Lexer) advanceLine() {
	l.pos++
	l.line++
	l.diags.SetLine(l.line)
}

var singleCharKind = map[int]token.Kind{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'&': token.AND,
	'|': token.OR,
	'.': token.PERIOD,
	',': token.COMMA,
	';': token.SEMICOLON,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACKET,
	']': token.RBRACKET,
}

// Next scans and returns the next token, skipping whitespace and
// comments. It never returns INVALID: lexical errors are reported through
// diags and scanning is retried at the next byte.
func (l *Lexer) Next() token.Token {
	for {
		l.skipTrivia()
		line := l.line
		c := l.peekByte(0)
		class := token.ClassOf(c)

		switch class {
		case token.CharEOF:
			return token.New(token.EOF, "", line)

		case token.CharUpper, token.CharLower, token.CharUnderscore:
			return l.scanIdent(line)

		case token.CharDigit:
			return l.scanNumber(line)

		case token.CharQuote:
			return l.scanString(line)

		case token.CharColon:
			l.pos++
			if l.peekByte(0) == '=' {
				l.pos++
				return token.New(token.ASSIGN, ":=", line)
			}
			return token.New(token.COLON, ":", line)

		case token.CharRelOp:
			return l.scanRelational(line)

		case token.CharPeriod, token.CharComma, token.CharSemicolon,
			token.CharParenLeft, token.CharParenRight,
			token.CharBracketLeft, token.CharBracketRight,
			token.CharArithOp, token.CharTermOp, token.CharExprOp:
			kind := singleCharKind[c]
			lexeme := string(rune(c))
			l.pos++
			return token.New(kind, lexeme, line)

		default:
			l.diags.SetLine(line)
			l.diags.Errorf("invalid byte %#x", c)
			l.pos++
			// retry: an invalid token is never surfaced to the parser
		}
	}
}

func (l *Lexer) skipTrivia() {
	for {
		c := l.peekByte(0)
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '\n':
			l.advanceLine()
		case c == '/' && l.peekByte(1) == '/':
			l.pos += 2
			for l.peekByte(0) != '\n' && l.peekByte(0) != token.EOFByte {
				l.pos++
			}
		case c == '/' && l.peekByte(1) == '*':
			l.pos += 2
			l.skipBlockComment()
		default:
			return
		}
	}
}

// skipBlockComment consumes a /* ... */ comment, tracking nesting depth.
// Reaching end-of-input with depth > 0 emits a warning and returns as if
// the comment had closed.
func (l *Lexer) skipBlockComment() {
	depth := 1
	for depth > 0 {
		c := l.peekByte(0)
		switch {
		case c == token.EOFByte:
			l.diags.SetLine(l.line)
			l.diags.Warnf("unterminated block comment")
			return
		case c == '/' && l.peekByte(1) == '*':
			depth++
			l.pos += 2
		case c == '*' && l.peekByte(1) == '/':
			depth--
			l.pos += 2
		case c == '\n':
			l.advanceLine()
		default:
			l.pos++
		}
	}
}

func (l *Lexer) scanIdent(line int) token.Token {
	start := l.pos
	for {
		c := l.peekByte(0)
		class := token.ClassOf(c)
		if class != token.CharUpper && class != token.CharLower &&
			class != token.CharDigit && class != token.CharUnderscore {
			break
		}
		l.pos++
	}

	lexeme := strings.ToLower(string(l.src[start:l.pos]))

	if tok, ok := l.env.Lookup(lexeme); ok && tok.Kind.IsReservedWord() {
		return token.New(tok.Kind, lexeme, line)
	}
	return token.New(token.IDENT, lexeme, line)
}

// scanNumber accumulates digits, underscores, and at most one period.
// Underscores are dropped from the lexeme; a period marks the literal
// FLT, otherwise INT.
func (l *Lexer) scanNumber(line int) token.Token {
	var b strings.Builder
	sawPeriod := false

	for {
		c := l.peekByte(0)
		class := token.ClassOf(c)
		if class == token.CharDigit {
			b.WriteByte(byte(c))
			l.pos++
		} else if class == token.CharUnderscore {
			l.pos++ // dropped from lexeme
		} else if class == token.CharPeriod && !sawPeriod {
			sawPeriod = true
			b.WriteByte('.')
			l.pos++
		} else {
			break
		}
	}

	typ := token.INT
	if sawPeriod {
		typ = token.FLT
	}

	t := token.New(token.NUMBER, b.String(), line)
	t.Type = typ
	return t
}

// scanString accumulates bytes until a closing quote or end-of-input. No
// escape sequences are recognized. End-of-input before a close reports an
// error and treats the string as closed.
func (l *Lexer) scanString(line int) token.Token {
	l.pos++ // opening quote
	start := l.pos

	for {
		c := l.peekByte(0)
		if c == '"' {
			break
		}
		if c == token.EOFByte {
			l.diags.SetLine(l.line)
			l.diags.Errorf("unterminated string literal")
			break
		}
		if c == '\n' {
			l.advanceLine()
			continue
		}
		l.pos++
	}

	value := string(l.src[start:l.pos])
	if l.peekByte(0) == '"' {
		l.pos++
	}

	t := token.New(token.STRLIT, value, line)
	t.Type = token.STR
	return t
}

// scanRelational handles the four relation-forming characters: < > = !,
// each optionally followed by '='.
func (l *Lexer) scanRelational(line int) token.Token {
	c := l.peekByte(0)
	l.pos++

	if l.peekByte(0) == '=' {
		l.pos++
		switch c {
		case '<':
			return token.New(token.LESSEQ, "<=", line)
		case '>':
			return token.New(token.GREATEREQ, ">=", line)
		case '=':
			return token.New(token.EQEQ, "==", line)
		case '!':
			return token.New(token.NOTEQ, "!=", line)
		}
	}

	switch c {
	case '<':
		return token.New(token.LESS, "<", line)
	case '>':
		return token.New(token.GREATER, ">", line)
	default:
		l.diags.SetLine(line)
		l.diags.Errorf("unexpected character %q", rune(c))
		return l.Next()
	}
}

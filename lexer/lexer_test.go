package lexer

import (
	"bytes"
	"testing"

	"github.com/dkerns/plc/diag"
	"github.com/dkerns/plc/symtab"
	"github.com/dkerns/plc/token"
)

func newLexer(src string) (*Lexer, *diag.Diagnostics) {
	var buf bytes.Buffer
	diags := diag.New(&buf, diag.Error)
	env := symtab.New()
	return New([]byte(src), env, diags), diags
}

func allTokens(l *Lexer) []token.Token {
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestReservedWordsCaseInsensitive(t *testing.T) {
	l, _ := newLexer("PROGRAM Program program")
	for i := 0; i < 3; i++ {
		tok := l.Next()
		if tok.Kind != token.PROGRAM {
			t.Errorf("token %d: kind = %s; want PROGRAM", i, tok.Kind)
		}
	}
}

func TestIdentifierVsReserved(t *testing.T) {
	l, _ := newLexer("programmer")
	tok := l.Next()
	if tok.Kind != token.IDENT {
		t.Errorf("kind = %s; want IDENT (must not prefix-match 'program')", tok.Kind)
	}
	if tok.Lexeme != "programmer" {
		t.Errorf("lexeme = %q; want %q", tok.Lexeme, "programmer")
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		src      string
		wantType token.TypeMark
		wantText string
	}{
		{"123", token.INT, "123"},
		{"1_000", token.INT, "1000"},
		{"3.14", token.FLT, "3.14"},
		{"1_0.5_0", token.FLT, "10.50"},
	}
	for _, tc := range tests {
		l, _ := newLexer(tc.src)
		tok := l.Next()
		if tok.Kind != token.NUMBER {
			t.Fatalf("%q: kind = %s; want NUMBER", tc.src, tok.Kind)
		}
		if tok.Type != tc.wantType {
			t.Errorf("%q: type = %s; want %s", tc.src, tok.Type, tc.wantType)
		}
		if tok.Lexeme != tc.wantText {
			t.Errorf("%q: lexeme = %q; want %q", tc.src, tok.Lexeme, tc.wantText)
		}
	}
}

func TestStringLiteral(t *testing.T) {
	l, _ := newLexer(`"hello world"`)
	tok := l.Next()
	if tok.Kind != token.STRLIT || tok.Lexeme != "hello world" {
		t.Errorf("got %s %q; want STRLIT %q", tok.Kind, tok.Lexeme, "hello world")
	}
}

func TestUnterminatedStringReportsError(t *testing.T) {
	l, diags := newLexer(`"unterminated`)
	tok := l.Next()
	if tok.Kind != token.STRLIT {
		t.Errorf("kind = %s; want STRLIT even when unterminated", tok.Kind)
	}
	if !diags.HadError() {
		t.Error("HadError() = false; want true for unterminated string")
	}
}

func TestRelationalOperators(t *testing.T) {
	tests := []struct {
		src  string
		want token.Kind
	}{
		{"<", token.LESS}, {">", token.GREATER},
		{"<=", token.LESSEQ}, {">=", token.GREATEREQ},
		{"==", token.EQEQ}, {"!=", token.NOTEQ},
	}
	for _, tc := range tests {
		l, _ := newLexer(tc.src)
		tok := l.Next()
		if tok.Kind != tc.want {
			t.Errorf("%q: kind = %s; want %s", tc.src, tok.Kind, tc.want)
		}
	}
}

func TestBlockCommentNesting(t *testing.T) {
	l, diags := newLexer("/* outer /* inner */ still outer */ 42")
	tok := l.Next()
	if tok.Kind != token.NUMBER || tok.Lexeme != "42" {
		t.Fatalf("got %s %q; want NUMBER 42 (nested comment should be fully skipped)", tok.Kind, tok.Lexeme)
	}
	if diags.HadError() {
		t.Error("HadError() = true; want false for a well-formed nested comment")
	}
}

func TestUnterminatedBlockCommentWarnsNotErrors(t *testing.T) {
	l, diags := newLexer("/* never closed")
	tok := l.Next()
	if tok.Kind != token.EOF {
		t.Errorf("kind = %s; want EOF", tok.Kind)
	}
	if diags.HadError() {
		t.Error("HadError() = true; want false (unterminated comment is a warning, not an error)")
	}
}

func TestLineCommentDoesNotConsumeNewline(t *testing.T) {
	l, _ := newLexer("// comment\n42")
	tok := l.Next()
	if tok.Kind != token.NUMBER || tok.Line != 2 {
		t.Errorf("got %s on line %d; want NUMBER on line 2", tok.Kind, tok.Line)
	}
}

func TestNeverReturnsInvalid(t *testing.T) {
	l, diags := newLexer("$ 5")
	toks := allTokens(l)
	for _, tok := range toks {
		if tok.Kind == token.INVALID {
			t.Errorf("Next() returned INVALID token %+v", tok)
		}
	}
	if !diags.HadError() {
		t.Error("HadError() = false; want true after an invalid byte")
	}
	if toks[0].Kind != token.NUMBER {
		t.Errorf("first surfaced token = %s; want NUMBER (invalid byte should be skipped)", toks[0].Kind)
	}
}

func TestSingleCharTokens(t *testing.T) {
	l, _ := newLexer("+-*/&|.,;()[]:")
	want := []token.Kind{
		token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.AND, token.OR, token.PERIOD, token.COMMA,
		token.SEMICOLON, token.LPAREN, token.RPAREN,
		token.LBRACKET, token.RBRACKET, token.COLON,
	}
	for i, k := range want {
		tok := l.Next()
		if tok.Kind != k {
			t.Errorf("token %d: kind = %s; want %s", i, tok.Kind, k)
		}
	}
}

func TestAssignToken(t *testing.T) {
	l, _ := newLexer(":=")
	tok := l.Next()
	if tok.Kind != token.ASSIGN {
		t.Errorf("kind = %s; want ASSIGN", tok.Kind)
	}
}

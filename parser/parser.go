// Package parser implements the single-pass recursive-descent parser: one
// token of lookahead, a stack of in-progress procedures, panic-mode error
// recovery, and inline calls into typecheck and emit as each production
// is recognized. There is no intermediate AST — a production's semantic
// action runs the moment its tokens are consumed.
package parser

import (
	"fmt"

	"github.com/dkerns/plc/diag"
	"github.com/dkerns/plc/emit"
	"github.com/dkerns/plc/lexer"
	"github.com/dkerns/plc/symtab"
	"github.com/dkerns/plc/token"
)

// Parser drives lexer, environment, and emitter together to recognize one
// program.
type Parser struct {
	lex   *lexer.Lexer
	env   *symtab.Environment
	em    *emit.Emitter
	diags *diag.Diagnostics

	cur       token.Token
	panicking bool

	procStack []*token.IdentToken
	tempCount int
}

// New builds a parser over lex, sharing env (already seeded with reserved
// words and builtins) and writing IR into em.
func New(lex *lexer.Lexer, env *symtab.Environment, em *emit.Emitter, diags *diag.Diagnostics) *Parser {
	return &Parser{lex: lex, env: env, em: em, diags: diags}
}

func (p *Parser) advance() {
	p.cur = p.lex.Next()
	p.diags.SetLine(p.cur.Line)
}

// fail reports a diagnostic and enters panic mode, unless already
// panicking (in which case it is a silent no-op — this is what keeps a
// single bad token from cascading into a diagnostic per subsequent
// token).
func (p *Parser) fail(format string, args ...interface{}) {
	if p.panicking {
		return
	}
	p.diags.Errorf(format, args...)
	p.panicking = true
}

func (p *Parser) failAt(line int, format string, args ...interface{}) {
	if p.panicking {
		return
	}
	p.diags.ErrorfAt(line, format, args...)
}

// expect consumes cur if it matches kind, else enters panic mode (via
// fail) and returns the zero token. A call made while already panicking
// short-circuits without emitting another diagnostic.
func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if p.cur.Kind == kind {
		t := p.cur
		p.advance()
		return t, true
	}
	p.fail("expected %s, got %s %q", kind, p.cur.Kind, p.cur.Lexeme)
	return token.Token{}, false
}

// resync discards tokens through the next semicolon (or end-of-input) and
// clears panic mode, per the spec's resync points.
func (p *Parser) resync() {
	for p.cur.Kind != token.SEMICOLON && p.cur.Kind != token.EOF {
		p.advance()
	}
	if p.cur.Kind == token.SEMICOLON {
		p.advance()
	}
	p.panicking = false
}

// Parse recognizes one whole program and returns whether the compilation
// had zero errors. It stops once program() returns, after the closing
// period or wherever panic mode left it; tokens past that point are not
// read, so they produce no diagnostics.
func (p *Parser) Parse() bool {
	p.advance()
	p.program()
	return !p.diags.HadError()
}

func (p *Parser) newTempArray(tm token.TypeMark, n int, line int) *token.IdentToken {
	p.tempCount++
	name := fmt.Sprintf(".tmp%d", p.tempCount)
	id := token.NewIdent(name, line)
	id.Type = tm
	if err := id.SetNumElements(n); err != nil {
		id.NumElements = n
	}
	global := p.env.Depth() == 0
	p.env.Insert(name, id, global)
	p.em.DeclareVariable(id, global)
	return id
}

// elementAt returns the i'th element of v: for a scalar it is v itself
// (a scalar broadcasts unchanged into every iteration of an elementwise
// operation), for an array it is a fresh load of Array[i].
func (p *Parser) elementAt(v value, i int) (string, token.TypeMark) {
	if !v.isArray() {
		return v.Operand, v.Type
	}
	return p.em.Load(v.Array, emit.IntOperand(int32(i)))
}

package parser

import (
	"strconv"

	"github.com/dkerns/plc/token"
)

// program ::= program_header program_body '.'
func (p *Parser) program() {
	p.expect(token.PROGRAM)
	nameTok, _ := p.expect(token.IDENT)
	p.expect(token.IS)

	p.declarations()
	p.expect(token.BEGIN)

	main := token.NewIdent("main", nameTok.Line)
	main.Type = token.INT
	p.em.AddFunction(main)
	p.procStack = append(p.procStack, main)

	p.statements()

	p.procStack = p.procStack[:len(p.procStack)-1]
	p.em.CloseFunction()

	p.expect(token.END)
	p.expect(token.PROGRAM)
	p.expect(token.PERIOD)
}

func (p *Parser) startsDeclaration() bool {
	switch p.cur.Kind {
	case token.GLOBAL, token.VARIABLE, token.PROCEDURE:
		return true
	}
	return false
}

// declarations ::= (declaration ';')*
func (p *Parser) declarations() {
	for p.startsDeclaration() {
		p.declaration()
		if p.panicking {
			p.resync()
			continue
		}
		if _, ok := p.expect(token.SEMICOLON); !ok {
			p.resync()
		}
	}
}

// declaration ::= ['global'] (procedure_decl | variable_decl)
func (p *Parser) declaration() {
	global := false
	if p.cur.Kind == token.GLOBAL {
		global = true
		p.advance()
	}

	switch p.cur.Kind {
	case token.PROCEDURE:
		p.procedureDecl(global)
	case token.VARIABLE:
		p.variableDecl(global, true)
	default:
		p.fail("expected a declaration, got %s %q", p.cur.Kind, p.cur.Lexeme)
	}
}

// variableDecl parses variable_decl (also used for parameters, where
// insert is false: a parameter is neither inserted nor declared here —
// the caller inserts it into the procedure's scope and appends it with
// AddParam once the identifier comes back).
func (p *Parser) variableDecl(global bool, insert bool) *token.IdentToken {
	if _, ok := p.expect(token.VARIABLE); !ok {
		return nil
	}
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}
	id := token.NewIdent(nameTok.Lexeme, nameTok.Line)

	p.expect(token.COLON)
	id.Type = p.typeMark()

	if p.cur.Kind == token.LBRACKET {
		p.advance()
		boundTok, ok := p.expect(token.NUMBER)
		if ok {
			n := p.parseBound(boundTok)
			id.SetNumElements(n)
		}
		p.expect(token.RBRACKET)
	}

	if insert {
		effectiveGlobal := global || p.env.Depth() == 0
		if !p.env.Insert(id.Lexeme, id, effectiveGlobal) {
			p.failAt(nameTok.Line, "cannot declare %q: reserved word or already declared in this scope", id.Lexeme)
		}
		p.em.DeclareVariable(id, effectiveGlobal)
	}

	return id
}

func (p *Parser) parseBound(tok token.Token) int {
	if tok.Type != token.INT {
		p.failAt(tok.Line, "array bound must be an integer literal, got %q", tok.Lexeme)
		return 1
	}
	n, err := strconv.Atoi(tok.Lexeme)
	if err != nil || n < 1 {
		p.failAt(tok.Line, "array bound must be at least 1, got %q", tok.Lexeme)
		return 1
	}
	return n
}

func (p *Parser) typeMark() token.TypeMark {
	switch p.cur.Kind {
	case token.INTEGER:
		p.advance()
		return token.INT
	case token.FLOAT:
		p.advance()
		return token.FLT
	case token.STRING:
		p.advance()
		return token.STR
	case token.BOOL:
		p.advance()
		return token.BOOL_T
	default:
		p.fail("expected a type mark, got %s %q", p.cur.Kind, p.cur.Lexeme)
		return token.NONE
	}
}

// procedureDecl ::= procedure_header procedure_body
func (p *Parser) procedureDecl(global bool) {
	proc := p.procedureHeader(global)
	if proc == nil {
		return
	}

	p.em.AddFunction(proc)
	p.procStack = append(p.procStack, proc)

	p.declarations()
	p.expect(token.BEGIN)
	p.statements()

	p.em.CloseFunction()
	p.procStack = p.procStack[:len(p.procStack)-1]
	p.env.Pop()

	p.expect(token.END)
	p.expect(token.PROCEDURE)
}

// procedureHeader ::= 'procedure' identifier ':' type_mark '(' [parameter_list] ')'
func (p *Parser) procedureHeader(global bool) *token.IdentToken {
	if _, ok := p.expect(token.PROCEDURE); !ok {
		return nil
	}
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}

	proc := token.NewIdent(nameTok.Lexeme, nameTok.Line)
	proc.Procedure = true

	p.expect(token.COLON)
	proc.Type = p.typeMark()

	effectiveGlobal := global || p.env.Depth() == 0
	if !p.env.Insert(proc.Lexeme, proc, effectiveGlobal) {
		p.failAt(nameTok.Line, "cannot declare procedure %q: reserved word or already declared in this scope", proc.Lexeme)
	}

	p.env.Push()
	p.env.Insert(proc.Lexeme, proc, false)

	p.expect(token.LPAREN)
	if p.cur.Kind != token.RPAREN {
		p.parameterList(proc)
	}
	p.expect(token.RPAREN)

	return proc
}

// parameterList ::= parameter (',' parameter)*
// parameter     ::= variable_decl
func (p *Parser) parameterList(proc *token.IdentToken) {
	for {
		param := p.variableDecl(false, false)
		if param != nil {
			if !p.env.Insert(param.Lexeme, param, false) {
				p.failAt(param.Line, "duplicate parameter name %q", param.Lexeme)
			}
			proc.AddParam(param)
		}
		if p.cur.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
}

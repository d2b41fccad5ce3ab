package parser

import (
	"github.com/dkerns/plc/emit"
	"github.com/dkerns/plc/token"
	"github.com/dkerns/plc/typecheck"
)

func (p *Parser) startsStatement() bool {
	switch p.cur.Kind {
	case token.IDENT, token.IF, token.FOR, token.RETURN:
		return true
	}
	return false
}

// statements ::= (statement ';')*
func (p *Parser) statements() {
	for p.startsStatement() {
		p.statement()
		if p.panicking {
			p.resync()
			continue
		}
		if _, ok := p.expect(token.SEMICOLON); !ok {
			p.resync()
		}
	}
}

// statement ::= assignment_stmt | if_stmt | loop_stmt | return_stmt
func (p *Parser) statement() {
	switch p.cur.Kind {
	case token.IF:
		p.ifStmt()
	case token.FOR:
		p.loopStmt()
	case token.RETURN:
		p.returnStmt()
	case token.IDENT:
		p.assignmentStmt()
	default:
		p.fail("expected a statement, got %s %q", p.cur.Kind, p.cur.Lexeme)
	}
}

// destination ::= identifier ['[' expression ']']
func (p *Parser) destination() (id *token.IdentToken, indexOperand string, indexType token.TypeMark) {
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return nil, "", token.NONE
	}

	resolved, exists := p.env.Lookup(nameTok.Lexeme)
	if !exists {
		p.failAt(nameTok.Line, "undeclared identifier %q", nameTok.Lexeme)
	} else if resolved.Procedure {
		p.failAt(nameTok.Line, "cannot assign to procedure %q", nameTok.Lexeme)
		resolved = nil
	}

	if p.cur.Kind == token.LBRACKET {
		p.advance()
		idx := p.expression()
		p.expect(token.RBRACKET)
		if !typecheck.IndexOK(idx.Type) {
			p.failAt(nameTok.Line, "array index must be INT")
		}
		return resolved, idx.Operand, idx.Type
	}

	return resolved, "", token.NONE
}

// assignment_stmt ::= destination ':=' expression
func (p *Parser) assignmentStmt() {
	id, indexOperand, _ := p.destination()
	p.expect(token.ASSIGN)
	val := p.expression()

	if id == nil {
		return
	}

	if indexOperand != "" {
		if id.NumElements <= 0 {
			p.failAt(id.Line, "%q is not an array", id.Lexeme)
			return
		}
		if val.isArray() {
			p.failAt(id.Line, "cannot assign an array to an indexed element")
			return
		}
		if !typecheck.AssignableOK(val.Type, id.Type) {
			p.failAt(id.Line, "cannot assign %s to element of %s array %q", val.Type, id.Type, id.Lexeme)
			return
		}
		p.em.Store(id, indexOperand, val.Operand, val.Type)
		return
	}

	if !typecheck.ShapeCompatible(id.NumElements, val.Shape) {
		p.failAt(id.Line, "array-size mismatch assigning to %q", id.Lexeme)
		return
	}
	if !typecheck.AssignableOK(val.Type, id.Type) {
		p.failAt(id.Line, "cannot assign %s to %s %q", val.Type, id.Type, id.Lexeme)
		return
	}

	if id.NumElements > 0 {
		for i := 0; i < id.NumElements; i++ {
			operand, typ := p.elementAt(val, i)
			p.em.Store(id, emit.IntOperand(int32(i)), operand, typ)
		}
		return
	}
	p.em.Store(id, "", val.Operand, val.Type)
}

// if_stmt ::= 'if' '(' expression ')' 'then' statements ['else' statements] 'end' 'if'
func (p *Parser) ifStmt() {
	p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.expression()
	p.expect(token.RPAREN)
	condOperand := p.asCondition(cond)
	p.expect(token.THEN)

	n := p.em.IfStmt(condOperand)
	p.statements()
	p.em.ElseStmt(n)
	if p.cur.Kind == token.ELSE {
		p.advance()
		p.statements()
	}
	p.em.EndIf(n)

	p.expect(token.END)
	p.expect(token.IF)
}

// loop_stmt ::= 'for' '(' assignment_stmt ';' expression ')' statements 'end' 'for'
func (p *Parser) loopStmt() {
	p.expect(token.FOR)
	p.expect(token.LPAREN)
	p.assignmentStmt()
	p.expect(token.SEMICOLON)

	n := p.em.ForLabel()
	cond := p.expression()
	condOperand := p.asCondition(cond)
	p.expect(token.RPAREN)

	p.em.ForStmt(n, condOperand)
	p.statements()
	p.em.EndFor(n)

	p.expect(token.END)
	p.expect(token.FOR)
}

// asCondition validates and, if needed, converts an if/for guard to
// BOOL_T, reporting once if the guard isn't a scalar boolean-compatible
// value.
func (p *Parser) asCondition(v value) string {
	if v.Type == token.NONE {
		return "false"
	}
	if v.isArray() || !typecheck.ConditionOK(v.Type) {
		p.fail("condition must be a scalar BOOL-compatible expression, got %s", v.Type)
		return "false"
	}
	if v.Type == token.BOOL_T {
		return v.Operand
	}
	return p.em.Convert(v.Operand, v.Type, token.BOOL_T)
}

// return_stmt ::= 'return' expression
func (p *Parser) returnStmt() {
	p.expect(token.RETURN)
	val := p.expression()

	if len(p.procStack) == 0 {
		p.fail("return outside any procedure")
		return
	}
	proc := p.procStack[len(p.procStack)-1]

	if val.isArray() {
		p.fail("cannot return an array")
		return
	}
	if !typecheck.AssignableOK(val.Type, proc.Type) {
		p.fail("cannot return %s from a procedure declared to return %s", val.Type, proc.Type)
		return
	}
	p.em.ReturnStmt(val.Operand, val.Type)
}

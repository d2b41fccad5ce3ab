package parser

import (
	"strconv"

	"github.com/dkerns/plc/emit"
	"github.com/dkerns/plc/token"
	"github.com/dkerns/plc/typecheck"
)

// expression ::= ['not'] arith_op expression_prime
//
// 'not' binds only to the leading arith_op, not the whole chain: "not a &
// b" is "(not a) & b", not "not (a & b)".
func (p *Parser) expression() value {
	negate := false
	if p.cur.Kind == token.NOT {
		negate = true
		p.advance()
	}

	left := p.arithOp()

	if negate {
		left = p.negateLogical(left)
	}

	return p.expressionPrime(left)
}

func (p *Parser) negateLogical(v value) value {
	if v.isArray() {
		p.fail("cannot apply 'not' to an array")
		return v
	}
	if v.Type != token.INT && v.Type != token.BOOL_T {
		p.fail("'not' requires INT or BOOL, got %s", v.Type)
		return v
	}
	operand, typ := p.em.UnaryOp(token.NOT, v.Operand, v.Type)
	return scalar(operand, typ)
}

// expression_prime ::= ('&' | '|') arith_op expression_prime | ε
func (p *Parser) expressionPrime(left value) value {
	for p.cur.Kind == token.AND || p.cur.Kind == token.OR {
		op := p.cur.Kind
		p.advance()
		right := p.arithOp()

		if left.isArray() || right.isArray() {
			p.fail("logical operators require scalar operands")
			left = invalid()
			continue
		}
		if !typecheck.LogicalOK(left.Type, right.Type) {
			p.fail("operands of %s must both be INT or both be BOOL", op)
			left = invalid()
			continue
		}
		operand, typ := p.em.BinaryOp(op, left.Operand, left.Type, right.Operand, right.Type, left.Type)
		left = scalar(operand, typ)
	}
	return left
}

// arith_op ::= relation arith_op_prime
func (p *Parser) arithOp() value {
	left := p.relation()
	for p.cur.Kind == token.PLUS || p.cur.Kind == token.MINUS {
		op := p.cur.Kind
		p.advance()
		right := p.relation()
		left = p.arithBinary(op, left, right)
	}
	return left
}

// relation ::= term relation_prime
func (p *Parser) relation() value {
	left := p.term()
	for p.cur.Kind.IsRelational() {
		op := p.cur.Kind
		p.advance()
		right := p.term()

		if left.isArray() || right.isArray() {
			p.fail("relational operators require scalar operands")
			left = invalid()
			continue
		}
		if !typecheck.RelationOK(op, left.Type, right.Type) {
			p.fail("invalid operands to %s: %s and %s", op, left.Type, right.Type)
			left = invalid()
			continue
		}
		operand, typ := p.em.BinaryOp(op, left.Operand, left.Type, right.Operand, right.Type, left.Type)
		left = scalar(operand, typ)
	}
	return left
}

// term ::= factor term_prime
func (p *Parser) term() value {
	left := p.factor()
	for p.cur.Kind == token.STAR || p.cur.Kind == token.SLASH {
		op := p.cur.Kind
		p.advance()
		right := p.factor()
		left = p.arithBinary(op, left, right)
	}
	return left
}

// arithBinary implements the arithmetic case of the type-propagation rule:
// scalar operands produce a scalar arithmetic result directly; if either
// operand is an array (and shapes are compatible, one may be a scalar
// broadcasting into the other), the operator is applied elementwise into
// a fresh compiler-introduced temporary array of the result's shape.
func (p *Parser) arithBinary(op token.Kind, left, right value) value {
	resultType, ok := typecheck.ArithResult(left.Type, right.Type)
	if !ok {
		p.fail("invalid operands to %s: %s and %s", op, left.Type, right.Type)
		return invalid()
	}
	if !typecheck.ShapeCompatible(left.Shape, right.Shape) {
		p.fail("array-size mismatch in arithmetic expression")
		return invalid()
	}

	resultShape := left.Shape
	if resultShape == 0 {
		resultShape = right.Shape
	}
	if resultShape == 0 {
		operand, typ := p.em.BinaryOp(op, left.Operand, left.Type, right.Operand, right.Type, resultType)
		return scalar(operand, typ)
	}

	tmp := p.newTempArray(resultType, resultShape, p.cur.Line)
	for i := 0; i < resultShape; i++ {
		lo, lt := p.elementAt(left, i)
		ro, rt := p.elementAt(right, i)
		res, _ := p.em.BinaryOp(op, lo, lt, ro, rt, resultType)
		p.em.Store(tmp, emit.IntOperand(int32(i)), res, resultType)
	}
	return value{Type: resultType, Shape: resultShape, Array: tmp}
}

// factor ::= '(' expression ')' | procedure_call
//          | ['-'] name | ['-'] number
//          | string | 'true' | 'false'
func (p *Parser) factor() value {
	switch p.cur.Kind {
	case token.LPAREN:
		p.advance()
		v := p.expression()
		p.expect(token.RPAREN)
		return v

	case token.MINUS:
		p.advance()
		return p.negatedOperand()

	case token.IDENT:
		nameTok := p.cur
		p.advance()
		id, exists := p.env.Lookup(nameTok.Lexeme)
		if !exists {
			p.failAt(nameTok.Line, "undeclared identifier %q", nameTok.Lexeme)
			return p.recoverAfterBadName()
		}
		if id.Procedure {
			return p.procedureCallTail(id, nameTok)
		}
		return p.nameTail(id, nameTok)

	case token.NUMBER:
		lit := p.cur
		p.advance()
		return p.numberValue(lit)

	case token.STRLIT:
		lit := p.cur
		p.advance()
		return scalar(p.em.StringOperand(lit.Lexeme), token.STR)

	case token.TRUE:
		p.advance()
		return scalar(emit.BoolOperand(true), token.BOOL_T)

	case token.FALSE:
		p.advance()
		return scalar(emit.BoolOperand(false), token.BOOL_T)

	default:
		p.fail("expected an expression, got %s %q", p.cur.Kind, p.cur.Lexeme)
		return invalid()
	}
}

// recoverAfterBadName consumes an optional trailing index or call-argument
// syntax after an identifier that failed to resolve, so the surrounding
// expression's parentheses/commas stay balanced for panic-mode resync.
func (p *Parser) recoverAfterBadName() value {
	switch p.cur.Kind {
	case token.LBRACKET:
		p.advance()
		p.expression()
		p.expect(token.RBRACKET)
	case token.LPAREN:
		p.advance()
		if p.cur.Kind != token.RPAREN {
			for {
				p.expression()
				if p.cur.Kind == token.COMMA {
					p.advance()
					continue
				}
				break
			}
		}
		p.expect(token.RPAREN)
	}
	return invalid()
}

func (p *Parser) negatedOperand() value {
	switch p.cur.Kind {
	case token.IDENT:
		nameTok := p.cur
		p.advance()
		id, exists := p.env.Lookup(nameTok.Lexeme)
		if !exists {
			p.failAt(nameTok.Line, "undeclared identifier %q", nameTok.Lexeme)
			return p.recoverAfterBadName()
		}
		if id.Procedure {
			p.failAt(nameTok.Line, "cannot negate a procedure call")
			return invalid()
		}
		return p.negate(p.nameTail(id, nameTok))
	case token.NUMBER:
		lit := p.cur
		p.advance()
		return p.negate(p.numberValue(lit))
	default:
		p.fail("expected a name or number after '-', got %s %q", p.cur.Kind, p.cur.Lexeme)
		return invalid()
	}
}

func (p *Parser) negate(v value) value {
	if v.Type == token.NONE {
		return v
	}
	if v.isArray() {
		p.fail("cannot negate an array")
		return v
	}
	if v.Type != token.INT && v.Type != token.FLT {
		p.fail("unary '-' requires INT or FLT, got %s", v.Type)
		return v
	}
	operand, typ := p.em.UnaryOp(token.MINUS, v.Operand, v.Type)
	return scalar(operand, typ)
}

// name ::= identifier ['[' expression ']']
func (p *Parser) nameTail(id *token.IdentToken, nameTok token.Token) value {
	if p.cur.Kind == token.LBRACKET {
		p.advance()
		idx := p.expression()
		p.expect(token.RBRACKET)

		if !typecheck.IndexOK(idx.Type) {
			p.failAt(nameTok.Line, "array index must be INT")
		}
		if id.NumElements <= 0 {
			p.failAt(nameTok.Line, "%q is not an array", id.Lexeme)
			return invalid()
		}
		operand, typ := p.em.Load(id, idx.Operand)
		return scalar(operand, typ)
	}

	if id.NumElements > 0 {
		return value{Type: id.Type, Shape: id.NumElements, Array: id}
	}
	operand, typ := p.em.Load(id, "")
	return scalar(operand, typ)
}

// procedure_call ::= identifier '(' [argument_list] ')'
// argument_list  ::= expression (',' expression)*
func (p *Parser) procedureCallTail(id *token.IdentToken, nameTok token.Token) value {
	p.expect(token.LPAREN)
	cb := p.em.ProcCallBegin(id)

	argc := 0
	if p.cur.Kind != token.RPAREN {
		for {
			arg := p.expression()
			if arg.isArray() {
				p.failAt(nameTok.Line, "cannot pass an array as an argument")
			} else if param, ok := id.GetParam(argc); ok {
				if !typecheck.AssignableOK(arg.Type, param.Type) {
					p.failAt(nameTok.Line, "argument %d to %q: cannot use %s as %s", argc+1, id.Lexeme, arg.Type, param.Type)
				}
				cb.Arg(p.em, arg.Operand, arg.Type)
			} else {
				p.failAt(nameTok.Line, "too many arguments to %q", id.Lexeme)
			}
			argc++
			if p.cur.Kind == token.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(token.RPAREN)

	if argc < len(id.Params) {
		p.failAt(nameTok.Line, "too few arguments to %q: expected %d, got %d", id.Lexeme, len(id.Params), argc)
	}

	operand, typ := p.em.ProcCallEnd(cb)
	return scalar(operand, typ)
}

func (p *Parser) numberValue(lit token.Token) value {
	switch lit.Type {
	case token.INT:
		n, err := strconv.ParseInt(lit.Lexeme, 10, 32)
		if err != nil {
			p.failAt(lit.Line, "malformed integer literal %q", lit.Lexeme)
			return scalar(emit.IntOperand(0), token.INT)
		}
		return scalar(emit.IntOperand(int32(n)), token.INT)
	case token.FLT:
		f, err := strconv.ParseFloat(lit.Lexeme, 32)
		if err != nil {
			p.failAt(lit.Line, "malformed float literal %q", lit.Lexeme)
			return scalar(emit.FloatOperand(0), token.FLT)
		}
		return scalar(emit.FloatOperand(float32(f)), token.FLT)
	default:
		p.failAt(lit.Line, "malformed number literal %q", lit.Lexeme)
		return invalid()
	}
}

package symtab

import (
	"fmt"

	"github.com/dkerns/plc/token"
)

// Environment is the single authority for name resolution: one global
// table plus a stack of local scope frames. Lookups consult the top local
// frame first, then fall back to global.
type Environment struct {
	global *Table
	locals []*Table
}

// builtins lists the globally-visible procedures seeded into every fresh
// environment, per the external interface's built-in procedure table.
var builtins = []struct {
	name       string
	ret        token.TypeMark
	paramTypes []token.TypeMark
}{
	{"getbool", token.BOOL_T, nil},
	{"getinteger", token.INT, nil},
	{"getfloat", token.FLT, nil},
	{"getstring", token.STR, nil},
	{"putbool", token.BOOL_T, []token.TypeMark{token.BOOL_T}},
	{"putinteger", token.BOOL_T, []token.TypeMark{token.INT}},
	{"putfloat", token.BOOL_T, []token.TypeMark{token.FLT}},
	{"putstring", token.BOOL_T, []token.TypeMark{token.STR}},
	{"sqrt", token.FLT, []token.TypeMark{token.INT}},
}

// New builds an environment seeded with the reserved words (so IsReserved
// and lookup-as-keyword both work immediately) and the built-in
// procedures.
func New() *Environment {
	e := &Environment{global: NewTable()}

	for _, rw := range token.ReservedWords {
		e.global.entries[rw.Lexeme] = &token.IdentToken{
			Token: token.New(rw.Kind, rw.Lexeme, 0),
		}
	}

	for _, b := range builtins {
		id := token.NewIdent(b.name, 0)
		id.Procedure = true
		id.Type = b.ret
		for i, pt := range b.paramTypes {
			p := token.NewIdent(fmt.Sprintf("%s.arg%d", b.name, i), 0)
			p.Type = pt
			id.Params = append(id.Params, p)
		}
		id.NumElements = len(id.Params)
		e.global.entries[b.name] = id
	}

	return e
}

// Lookup searches the top local frame, then the global table. It only
// reports whether the name resolved and logs nothing itself; callers
// report an unresolved name.
func (e *Environment) Lookup(name string) (*token.IdentToken, bool) {
	if len(e.locals) > 0 {
		if tok, ok := e.locals[len(e.locals)-1].Lookup(name); ok {
			return tok, true
		}
	}
	return e.global.Lookup(name)
}

// IsReserved reports whether name is a reserved word, per invariant I1:
// reserved-word keys are never present in any local table, only global.
func (e *Environment) IsReserved(name string) bool {
	tok, ok := e.global.Lookup(name)
	return ok && tok.Kind.IsReservedWord()
}

// Insert adds tok under name into the global table (global=true) or the
// top local frame. It fails if name is reserved, if global is false and
// there is no local frame, or if the target table already holds name.
func (e *Environment) Insert(name string, tok *token.IdentToken, global bool) bool {
	if e.IsReserved(name) {
		return false
	}
	if global {
		return e.global.Insert(name, tok)
	}
	if len(e.locals) == 0 {
		return false
	}
	return e.locals[len(e.locals)-1].Insert(name, tok)
}

// Push opens a new local scope frame.
func (e *Environment) Push() {
	e.locals = append(e.locals, NewTable())
}

// Pop closes the top local scope frame. Popping an empty stack is a
// diagnostic-worthy no-op, never a crash: it reports whether it actually
// popped anything so the caller can log it.
func (e *Environment) Pop() bool {
	if len(e.locals) == 0 {
		return false
	}
	e.locals = e.locals[:len(e.locals)-1]
	return true
}

// Depth reports how many local frames are open.
func (e *Environment) Depth() int {
	return len(e.locals)
}

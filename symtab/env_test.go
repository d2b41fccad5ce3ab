package symtab

import (
	"testing"

	"github.com/dkerns/plc/token"
)

func TestReservedWordsSeeded(t *testing.T) {
	e := New()
	for _, rw := range token.ReservedWords {
		if !e.IsReserved(rw.Lexeme) {
			t.Errorf("IsReserved(%q) = false; want true", rw.Lexeme)
		}
	}
}

func TestBuiltinsSeeded(t *testing.T) {
	e := New()
	tok, ok := e.Lookup("putinteger")
	if !ok {
		t.Fatal("Lookup(\"putinteger\") not found")
	}
	if !tok.Procedure {
		t.Error("putinteger.Procedure = false; want true")
	}
	if len(tok.Params) != 1 || tok.Params[0].Type != token.INT {
		t.Errorf("putinteger params = %v; want one INT param", tok.Params)
	}
	if tok.Type != token.BOOL_T {
		t.Errorf("putinteger.Type = %s; want BOOL", tok.Type)
	}
}

func TestScopeShadowing(t *testing.T) {
	e := New()
	global := token.NewIdent("x", 1)
	if !e.Insert("x", global, true) {
		t.Fatal("global insert of x failed")
	}

	e.Push()
	local := token.NewIdent("x", 2)
	if !e.Insert("x", local, false) {
		t.Fatal("local insert of x failed")
	}

	got, ok := e.Lookup("x")
	if !ok || got != local {
		t.Errorf("Lookup(\"x\") in local scope = %v; want the local shadow", got)
	}

	if !e.Pop() {
		t.Fatal("Pop() = false; want true")
	}
	got, ok = e.Lookup("x")
	if !ok || got != global {
		t.Errorf("Lookup(\"x\") after pop = %v; want the global one", got)
	}

	if e.Pop() {
		t.Error("Pop() on empty stack = true; want false")
	}
}

func TestInsertRejectsReservedAndDuplicate(t *testing.T) {
	e := New()
	if e.Insert("program", token.NewIdent("program", 1), true) {
		t.Error("Insert of a reserved word succeeded; want failure")
	}

	id := token.NewIdent("y", 1)
	if !e.Insert("y", id, true) {
		t.Fatal("first insert of y failed")
	}
	if e.Insert("y", token.NewIdent("y", 2), true) {
		t.Error("duplicate insert of y succeeded; want failure")
	}
}

func TestInsertLocalWithoutScope(t *testing.T) {
	e := New()
	if e.Insert("z", token.NewIdent("z", 1), false) {
		t.Error("local insert with no open scope succeeded; want failure")
	}
}

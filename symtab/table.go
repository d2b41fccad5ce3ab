// Package symtab implements the lexically-scoped symbol environment
// shared between the lexer and the parser: a single global table plus a
// stack of local ones, seeded at construction with the reserved words and
// built-in procedures.
package symtab

import "github.com/dkerns/plc/token"

// Table is a per-scope mapping from name to identifier token. Insertion
// never overwrites: a duplicate key is reported as failure.
type Table struct {
	entries map[string]*token.IdentToken
}

// NewTable builds an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[string]*token.IdentToken)}
}

// Lookup returns the token stored under name, if any.
func (t *Table) Lookup(name string) (*token.IdentToken, bool) {
	tok, ok := t.entries[name]
	return tok, ok
}

// Insert adds tok under name. It fails without overwriting if name is
// already present.
func (t *Table) Insert(name string, tok *token.IdentToken) bool {
	if _, exists := t.entries[name]; exists {
		return false
	}
	t.entries[name] = tok
	return true
}

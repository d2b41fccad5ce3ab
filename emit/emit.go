// Package emit generates LLVM textual IR by hand: five append-only string
// buffers (header, globals, string-literal constants, runtime
// declarations, and the current function's body) plus a stack of function
// frames tracking registers, labels, and open blocks. It never builds an
// in-memory IR object graph; the output is text from the first byte.
package emit

import (
	"fmt"
	"strings"

	"github.com/dkerns/plc/diag"
)

// runtimeBuiltins lists the external procedures every program may call,
// declared once up front regardless of use.
var runtimeBuiltins = []struct {
	name       string
	ret        string
	paramTypes []string
	symbol     string
}{
	{"getbool", "i1", nil, "getbool"},
	{"getinteger", "i32", nil, "getinteger"},
	{"getfloat", "float", nil, "getfloat"},
	{"getstring", "i8*", nil, "getstring"},
	{"putbool", "i1", []string{"i1"}, "putbool"},
	{"putinteger", "i1", []string{"i32"}, "putinteger"},
	{"putfloat", "i1", []string{"float"}, "putfloat"},
	{"putstring", "i1", []string{"i8*"}, "putstring"},
	{"sqrt", "float", []string{"i32"}, "altsqrt"},
}

// Emitter accumulates a whole translation unit's IR text.
type Emitter struct {
	header       strings.Builder
	globals      strings.Builder
	stringLits   strings.Builder
	runtimeDecls strings.Builder

	frames       []*function
	closedBodies []string

	funcSuffix map[string]int
	strIntern  map[string]string
	strCount   int

	diags *diag.Diagnostics
}

// New builds an emitter with the fixed runtime declarations already
// written, ready to accept top-level declarations and functions.
func New(diags *diag.Diagnostics) *Emitter {
	e := &Emitter{
		funcSuffix: make(map[string]int),
		strIntern:  make(map[string]string),
		diags:      diags,
	}
	e.header.WriteString("; generated by plc, single-pass front end\n")
	e.header.WriteString("target triple = \"x86_64-unknown-linux-gnu\"\n\n")

	for _, b := range runtimeBuiltins {
		fmt.Fprintf(&e.runtimeDecls, "declare %s @%s(%s)\n",
			b.ret, b.symbol, strings.Join(b.paramTypes, ", "))
	}
	return e
}

// RuntimeSymbol returns the emitted symbol name for a builtin procedure
// name, or "" if name is not a builtin. sqrt is the only builtin whose
// call-site symbol differs from its source-level name.
func RuntimeSymbol(name string) string {
	for _, b := range runtimeBuiltins {
		if b.name == name {
			return b.symbol
		}
	}
	return ""
}

// Output concatenates the buffers in emission order: header, globals,
// string-literal constants, runtime declarations, then every closed
// function body in the order they were closed.
func (e *Emitter) Output() string {
	var out strings.Builder
	out.WriteString(e.header.String())
	if e.globals.Len() > 0 {
		out.WriteString(e.globals.String())
		out.WriteString("\n")
	}
	if e.stringLits.Len() > 0 {
		out.WriteString(e.stringLits.String())
		out.WriteString("\n")
	}
	out.WriteString(e.runtimeDecls.String())
	out.WriteString("\n")
	for _, body := range e.closedBodies {
		out.WriteString(body)
		out.WriteString("\n")
	}
	return out.String()
}

func (e *Emitter) fail(format string, args ...interface{}) {
	e.diags.Errorf("emit: "+format, args...)
}

// current returns the innermost open function frame, or nil if none is
// open (a defect: every emission call between AddFunction/CloseFunction
// should have one).
func (e *Emitter) current() *function {
	if len(e.frames) == 0 {
		e.fail("no open function")
		return nil
	}
	return e.frames[len(e.frames)-1]
}

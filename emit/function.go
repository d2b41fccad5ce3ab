package emit

import (
	"fmt"
	"strings"

	"github.com/dkerns/plc/token"
)

// function is one open function's emission state: its own body buffer, a
// monotonic register counter, if/loop nesting counters and label stacks,
// and whether the emission point currently sits inside an open block
// (a block is closed by a terminator: br, ret).
type function struct {
	name string
	id   *token.IdentToken

	buf strings.Builder

	regCount int

	ifCount   int
	ifStack   []int
	loopCount int
	loopStack []int

	blockOpen bool
}

func (f *function) newReg() string {
	r := fmt.Sprintf("%%r%d", f.regCount)
	f.regCount++
	return r
}

func (f *function) emit(format string, args ...interface{}) {
	fmt.Fprintf(&f.buf, "  "+format+"\n", args...)
}

func (f *function) label(name string) {
	fmt.Fprintf(&f.buf, "%s:\n", name)
	f.blockOpen = true
}

// disambiguate returns a globally unique IR symbol for a source-level
// function name: the first occurrence gets the bare name, later ones with
// the same name (nested procedures may shadow an outer name across
// unrelated scopes) get a bare numeric suffix.
func (e *Emitter) disambiguate(name string) string {
	n := e.funcSuffix[name]
	e.funcSuffix[name]++
	if n == 0 {
		return name
	}
	return fmt.Sprintf("%s%d", name, n)
}

// AddFunction opens a new function frame for id, emits its define line and
// entry label, and pushes it as the current emission target. Parameters
// occupy registers %r0..%r(len(params)-1) in declaration order;
// the frame's counter continues from there for locals and temporaries.
func (e *Emitter) AddFunction(id *token.IdentToken) {
	if id == nil {
		e.fail("AddFunction: nil identifier")
		return
	}

	symbol := e.disambiguate(id.Lexeme)
	id.Symbol = symbol
	f := &function{name: symbol, id: id}

	incoming := make([]string, len(id.Params))
	paramDecls := make([]string, len(id.Params))
	for i, p := range id.Params {
		incoming[i] = fmt.Sprintf("%%r%d", i)
		paramDecls[i] = fmt.Sprintf("%s %s", llvmArrayType(p.Type, p.NumElements), incoming[i])
	}
	f.regCount = len(id.Params)

	retType := llvmType(id.Type)
	if id.Type == token.NONE {
		retType = "void"
	}

	fmt.Fprintf(&f.buf, "define %s @%s(%s) {\n", retType, symbol, strings.Join(paramDecls, ", "))
	f.label("entry")

	e.frames = append(e.frames, f)

	// Parameters are mutable in this language, so each gets its own stack
	// slot immediately, just like a locally declared variable; the
	// incoming SSA value is spilled into it once up front.
	for i, p := range id.Params {
		e.DeclareVariable(p, false)
		f.emit("store %s %s, %s* %s", llvmArrayType(p.Type, p.NumElements), incoming[i], llvmArrayType(p.Type, p.NumElements), p.Handle)
	}
}

// CloseFunction closes the current frame, inserting a blank terminator if
// the caller never reached an explicit return, and appends its text to
// the emitter's finished-body list.
func (e *Emitter) CloseFunction() {
	f := e.current()
	if f == nil {
		return
	}

	if f.blockOpen {
		if f.id.Type == token.NONE {
			f.emit("ret void")
		} else {
			f.emit("ret %s %s", llvmType(f.id.Type), zeroValue(f.id.Type))
		}
	}
	f.buf.WriteString("}\n")

	e.frames = e.frames[:len(e.frames)-1]
	e.closedBodies = append(e.closedBodies, f.buf.String())
}

// DeclareVariable allocates storage for id. At global scope (global=true)
// it appends a zero-initialized global to the globals buffer; otherwise it
// emits an alloca in the current function's entry block and records the
// resulting handle for Store/Load.
func (e *Emitter) DeclareVariable(id *token.IdentToken, global bool) {
	if id == nil {
		e.fail("DeclareVariable: nil identifier")
		return
	}

	irType := llvmArrayType(id.Type, id.NumElements)

	if global {
		handle := "@" + id.Lexeme
		id.Handle = handle
		fmt.Fprintf(&e.globals, "%s = global %s zeroinitializer\n", handle, irType)
		return
	}

	f := e.current()
	if f == nil {
		return
	}
	reg := f.newReg()
	f.emit("%s = alloca %s", reg, irType)
	id.Handle = reg
}

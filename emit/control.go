package emit

import (
	"fmt"

	"github.com/dkerns/plc/token"
)

// IfStmt opens a new if with condOperand (already BOOL_T) as its guard,
// branches into a fresh then.N block (labels carry no leading dot:
// then.N, else.N, endif.N), and pushes n onto the if-nesting
// stack so a matching ElseStmt/EndIf can find it. Returns n.
func (e *Emitter) IfStmt(condOperand string) int {
	f := e.current()
	if f == nil {
		return -1
	}
	n := f.ifCount
	f.ifCount++
	f.ifStack = append(f.ifStack, n)

	f.emit("br i1 %s, label %%then.%d, label %%else.%d", condOperand, n, n)
	f.label(labelName("then", n))
	return n
}

// ElseStmt closes the open then-block (branching forward to the shared
// end label unless it already terminated) and opens the else block.
func (e *Emitter) ElseStmt(n int) {
	f := e.current()
	if f == nil {
		return
	}
	if f.blockOpen {
		f.emit("br label %%endif.%d", n)
		f.blockOpen = false
	}
	f.label(labelName("else", n))
}

// EndIf closes whichever of then/else is still open and emits the shared
// end label, popping n off the if-nesting stack.
func (e *Emitter) EndIf(n int) {
	f := e.current()
	if f == nil {
		return
	}
	if f.blockOpen {
		f.emit("br label %%endif.%d", n)
		f.blockOpen = false
	}
	f.label(labelName("endif", n))
	f.popIf(n)
}

func (f *function) popIf(n int) {
	for i := len(f.ifStack) - 1; i >= 0; i-- {
		if f.ifStack[i] == n {
			f.ifStack = append(f.ifStack[:i], f.ifStack[i+1:]...)
			return
		}
	}
}

// ForLabel opens a fresh loop header block (for.N, with body.N and
// endfor.N following; no leading dot), to be branched back
// to at the bottom of every iteration, and returns its id n.
func (e *Emitter) ForLabel() int {
	f := e.current()
	if f == nil {
		return -1
	}
	n := f.loopCount
	f.loopCount++
	f.loopStack = append(f.loopStack, n)

	f.emit("br label %%for.%d", n)
	f.label(labelName("for", n))
	return n
}

// ForStmt emits the loop's condition test, branching into the body block
// on true or out to the end block on false.
func (e *Emitter) ForStmt(n int, condOperand string) {
	f := e.current()
	if f == nil {
		return
	}
	f.emit("br i1 %s, label %%body.%d, label %%endfor.%d", condOperand, n, n)
	f.label(labelName("body", n))
}

// EndFor closes the loop body by branching back to the header, emits the
// end label, and pops n off the loop-nesting stack.
func (e *Emitter) EndFor(n int) {
	f := e.current()
	if f == nil {
		return
	}
	if f.blockOpen {
		f.emit("br label %%for.%d", n)
		f.blockOpen = false
	}
	f.label(labelName("endfor", n))
	f.popLoop(n)
}

func (f *function) popLoop(n int) {
	for i := len(f.loopStack) - 1; i >= 0; i-- {
		if f.loopStack[i] == n {
			f.loopStack = append(f.loopStack[:i], f.loopStack[i+1:]...)
			return
		}
	}
}

func labelName(prefix string, n int) string {
	return fmt.Sprintf("%s.%d", prefix, n)
}

// ReturnStmt converts operand to the enclosing function's declared return
// type (if it carries one) and emits a terminating ret, closing the
// current block.
func (e *Emitter) ReturnStmt(operand string, operandType token.TypeMark) {
	f := e.current()
	if f == nil {
		return
	}
	if f.id.Type == token.NONE {
		f.emit("ret void")
		f.blockOpen = false
		return
	}
	converted := e.Convert(operand, operandType, f.id.Type)
	f.emit("ret %s %s", llvmType(f.id.Type), converted)
	f.blockOpen = false
}

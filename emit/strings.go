package emit

import (
	"fmt"
	"strings"
)

// InternString records value's byte payload as a global constant, if it
// has not already been interned, and returns the constant's handle
// (@.str.N). Repeated occurrences of the same payload share one handle.
func (e *Emitter) InternString(value string) string {
	if handle, ok := e.strIntern[value]; ok {
		return handle
	}

	handle := fmt.Sprintf("@.str.%d", e.strCount)
	e.strCount++
	e.strIntern[value] = handle

	escaped, length := escapeCString(value)
	fmt.Fprintf(&e.stringLits, "%s = private unnamed_addr constant [%d x i8] c\"%s\"\n", handle, length, escaped)
	return handle
}

// StringOperand interns value and returns a constant getelementptr
// expression that materializes an i8* pointer to its first byte, usable
// directly as an operand without a separate instruction.
func (e *Emitter) StringOperand(value string) string {
	handle := e.InternString(value)
	length := len(value) + 1
	return fmt.Sprintf("getelementptr inbounds ([%d x i8], [%d x i8]* %s, i32 0, i32 0)", length, length, handle)
}

// escapeCString renders value as an LLVM string-constant body: every byte
// outside printable, non-quote, non-backslash ASCII becomes \xx hex, and a
// trailing NUL terminator is appended. Returns the escaped text and the
// resulting byte array's length (including the NUL).
func escapeCString(value string) (string, int) {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '"' || c == '\\':
			fmt.Fprintf(&b, "\\%02X", c)
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "\\%02X", c)
		}
	}
	b.WriteString("\\00")
	return b.String(), len(value) + 1
}

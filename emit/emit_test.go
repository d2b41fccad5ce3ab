package emit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dkerns/plc/diag"
	"github.com/dkerns/plc/token"
)

func newEmitter() (*Emitter, *diag.Diagnostics) {
	var buf bytes.Buffer
	diags := diag.New(&buf, diag.Error)
	return New(diags), diags
}

func TestRuntimeDeclarationsAlwaysPresent(t *testing.T) {
	e, _ := newEmitter()
	out := e.Output()
	for _, name := range []string{"getbool", "getinteger", "getfloat", "getstring", "putbool", "putinteger", "putfloat", "putstring", "altsqrt"} {
		if !strings.Contains(out, "@"+name) {
			t.Errorf("Output() missing runtime declaration for %s", name)
		}
	}
}

func TestDeclareVariableGlobal(t *testing.T) {
	e, _ := newEmitter()
	id := token.NewIdent("counter", 1)
	id.Type = token.INT
	e.DeclareVariable(id, true)

	if id.Handle != "@counter" {
		t.Errorf("Handle = %q; want @counter", id.Handle)
	}
	out := e.Output()
	if !strings.Contains(out, "@counter = global i32 zeroinitializer") {
		t.Errorf("Output() = %q; missing global declaration", out)
	}
}

func TestFunctionRoundTrip(t *testing.T) {
	e, _ := newEmitter()
	fn := token.NewIdent("add", 1)
	fn.Procedure = true
	fn.Type = token.INT
	a := token.NewIdent("a", 1)
	a.Type = token.INT
	b := token.NewIdent("b", 1)
	b.Type = token.INT
	fn.AddParam(a)
	fn.AddParam(b)

	e.AddFunction(fn)
	la, _ := e.Load(a, "")
	lb, _ := e.Load(b, "")
	sum, sumType := e.BinaryOp(token.PLUS, la, token.INT, lb, token.INT, token.INT)
	if sumType != token.INT {
		t.Errorf("BinaryOp result type = %s; want INT", sumType)
	}
	e.ReturnStmt(sum, token.INT)
	e.CloseFunction()

	out := e.Output()
	if !strings.Contains(out, "define i32 @add(") {
		t.Errorf("Output() missing function signature: %q", out)
	}
	if !strings.Contains(out, "add i32") {
		t.Errorf("Output() missing add instruction: %q", out)
	}
	if strings.Count(out, "ret i32") != 1 {
		t.Errorf("Output() ret count = %d; want exactly 1 (no defensive double return)", strings.Count(out, "ret i32"))
	}
}

func TestCloseFunctionInsertsBlankReturnWhenMissing(t *testing.T) {
	e, _ := newEmitter()
	fn := token.NewIdent("noop", 1)
	fn.Procedure = true
	fn.Type = token.BOOL_T
	e.AddFunction(fn)
	e.CloseFunction()

	out := e.Output()
	if !strings.Contains(out, "ret i1 false") {
		t.Errorf("Output() = %q; want an inserted blank ret", out)
	}
}

func TestFunctionNameDisambiguation(t *testing.T) {
	e, _ := newEmitter()
	first := token.NewIdent("f", 1)
	first.Procedure = true
	e.AddFunction(first)
	e.CloseFunction()

	second := token.NewIdent("f", 2)
	second.Procedure = true
	e.AddFunction(second)
	e.CloseFunction()

	out := e.Output()
	if !strings.Contains(out, "@f(") {
		t.Errorf("Output() missing first @f: %q", out)
	}
	if !strings.Contains(out, "@f1(") {
		t.Errorf("Output() missing disambiguated @f1: %q", out)
	}
}

func TestStringInterningDeduplicates(t *testing.T) {
	e, _ := newEmitter()
	h1 := e.InternString("hi")
	h2 := e.InternString("hi")
	h3 := e.InternString("bye")

	if h1 != h2 {
		t.Errorf("InternString(\"hi\") twice = %q, %q; want identical handles", h1, h2)
	}
	if h1 == h3 {
		t.Error("InternString of distinct payloads returned the same handle")
	}
	out := e.Output()
	if strings.Count(out, "c\"hi\\00\"") != 1 {
		t.Errorf("Output() contains %d copies of \"hi\"'s constant; want 1", strings.Count(out, "c\"hi\\00\""))
	}
}

func TestConvertIdentityNoOp(t *testing.T) {
	e, _ := newEmitter()
	fn := token.NewIdent("f", 1)
	fn.Procedure = true
	e.AddFunction(fn)
	if got := e.Convert("%r0", token.INT, token.INT); got != "%r0" {
		t.Errorf("Convert same-type = %q; want unchanged operand", got)
	}
}

func TestConvertBadPairReturnsSentinel(t *testing.T) {
	e, _ := newEmitter()
	fn := token.NewIdent("f", 1)
	fn.Procedure = true
	e.AddFunction(fn)
	if got := e.Convert("%r0", token.STR, token.INT); got != BadReg {
		t.Errorf("Convert(STR, INT) = %q; want %q", got, BadReg)
	}
}

func TestBinaryOpRelationalIntBoolUnifiesToInt(t *testing.T) {
	e, _ := newEmitter()
	fn := token.NewIdent("f", 1)
	fn.Procedure = true
	e.AddFunction(fn)

	reg, typ := e.BinaryOp(token.EQEQ, IntOperand(1), token.INT, BoolOperand(true), token.BOOL_T, token.INT)
	if typ != token.BOOL_T {
		t.Errorf("BinaryOp result type = %s; want BOOL_T", typ)
	}
	if reg == BadReg {
		t.Fatal("BinaryOp(INT, BOOL_T) returned BAD_REG; want a real comparison")
	}

	e.CloseFunction()
	out := e.Output()
	if !strings.Contains(out, "icmp eq i32") {
		t.Errorf("Output() = %q; want an i32 comparison, not a spurious float promotion", out)
	}
	if strings.Contains(out, "fcmp") {
		t.Errorf("Output() = %q; INT/BOOL comparison must not promote to float", out)
	}
}

func TestArrayIndexAddressing(t *testing.T) {
	e, _ := newEmitter()
	fn := token.NewIdent("f", 1)
	fn.Procedure = true
	e.AddFunction(fn)

	arr := token.NewIdent("xs", 1)
	arr.Type = token.INT
	arr.SetNumElements(4)
	e.DeclareVariable(arr, false)

	e.Store(arr, "2", IntOperand(7), token.INT)
	got, typ := e.Load(arr, "2")
	if typ != token.INT {
		t.Errorf("Load element type = %s; want INT", typ)
	}
	if got == BadReg {
		t.Error("Load returned BadReg for a valid indexed array access")
	}

	e.CloseFunction()
	out := e.Output()
	if !strings.Contains(out, "getelementptr inbounds [4 x i32]") {
		t.Errorf("Output() missing array GEP: %q", out)
	}
}

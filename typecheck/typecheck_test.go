package typecheck

import (
	"testing"

	"github.com/dkerns/plc/token"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		a, b token.TypeMark
		want bool
	}{
		{token.INT, token.FLT, true},
		{token.INT, token.BOOL_T, true},
		{token.FLT, token.BOOL_T, false},
		{token.STR, token.STR, true},
		{token.STR, token.INT, false},
		{token.NONE, token.INT, false},
	}
	for _, tc := range tests {
		if got := Compatible(tc.a, tc.b); got != tc.want {
			t.Errorf("Compatible(%s, %s) = %v; want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestArithResult(t *testing.T) {
	tests := []struct {
		a, b     token.TypeMark
		wantType token.TypeMark
		wantOK   bool
	}{
		{token.INT, token.INT, token.INT, true},
		{token.INT, token.FLT, token.FLT, true},
		{token.FLT, token.FLT, token.FLT, true},
		{token.BOOL_T, token.INT, token.NONE, false},
		{token.STR, token.INT, token.NONE, false},
	}
	for _, tc := range tests {
		got, ok := ArithResult(tc.a, tc.b)
		if got != tc.wantType || ok != tc.wantOK {
			t.Errorf("ArithResult(%s, %s) = %s, %v; want %s, %v", tc.a, tc.b, got, ok, tc.wantType, tc.wantOK)
		}
	}
}

func TestRelationOK(t *testing.T) {
	tests := []struct {
		op         token.Kind
		a, b       token.TypeMark
		want       bool
		annotation string
	}{
		{token.EQEQ, token.STR, token.STR, true, "string equality"},
		{token.LESS, token.STR, token.STR, false, "string ordering not allowed"},
		{token.LESS, token.INT, token.FLT, true, "numeric ordering allowed"},
		{token.NOTEQ, token.INT, token.INT, true, "int inequality"},
	}
	for _, tc := range tests {
		if got := RelationOK(tc.op, tc.a, tc.b); got != tc.want {
			t.Errorf("%s: RelationOK(%s, %s, %s) = %v; want %v", tc.annotation, tc.op, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLogicalOK(t *testing.T) {
	if !LogicalOK(token.BOOL_T, token.BOOL_T) {
		t.Error("LogicalOK(BOOL, BOOL) = false; want true")
	}
	if !LogicalOK(token.INT, token.INT) {
		t.Error("LogicalOK(INT, INT) = false; want true")
	}
	if LogicalOK(token.INT, token.BOOL_T) {
		t.Error("LogicalOK(INT, BOOL) = true; want false")
	}
	if LogicalOK(token.FLT, token.FLT) {
		t.Error("LogicalOK(FLT, FLT) = true; want false")
	}
}

func TestShapeCompatible(t *testing.T) {
	tests := []struct {
		a, b int
		want bool
	}{
		{0, 0, true},
		{3, 3, true},
		{3, 4, false},
		{0, 5, true},
		{5, 0, true},
	}
	for _, tc := range tests {
		if got := ShapeCompatible(tc.a, tc.b); got != tc.want {
			t.Errorf("ShapeCompatible(%d, %d) = %v; want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestIndexOK(t *testing.T) {
	if !IndexOK(token.INT) {
		t.Error("IndexOK(INT) = false; want true")
	}
	if IndexOK(token.FLT) {
		t.Error("IndexOK(FLT) = true; want false")
	}
}

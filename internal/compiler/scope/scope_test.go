package scope

import "testing"

func TestDeclareAllocatesIncreasingAddresses(t *testing.T) {
	tbl := NewTable()
	a, err := tbl.Declare("a", Integer, Variable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := tbl.Declare("b", Real, Variable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != 0 || b != 1 {
		t.Fatalf("expected addresses 0, 1, got %d, %d", a, b)
	}
}

func TestRedeclarationInSameScopeFails(t *testing.T) {
	tbl := NewTable()
	if _, err := tbl.Declare("a", Integer, Variable); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := tbl.Declare("a", Integer, Variable)
	if err == nil {
		t.Fatalf("expected a RedeclaredError")
	}
	if _, ok := err.(*RedeclaredError); !ok {
		t.Fatalf("expected *RedeclaredError, got %T", err)
	}
}

func TestResolveFailsForUndeclaredName(t *testing.T) {
	tbl := NewTable()
	if _, err := tbl.Resolve("missing"); err == nil {
		t.Fatalf("expected an UndeclaredError")
	}
}

func TestInnerScopeShadowsOuterButPreservesAddressOnPop(t *testing.T) {
	tbl := NewTable()
	outer, err := tbl.Declare("x", Integer, Variable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tbl.EnterScope("p")
	inner, err := tbl.Declare("x", Integer, Parameter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner == outer {
		t.Fatalf("expected the inner 'x' to get a fresh address, not reuse %d", outer)
	}
	resolved, err := tbl.Resolve("x")
	if err != nil || resolved != inner {
		t.Fatalf("expected shadowed resolve to hit the inner scope, got %d, err=%v", resolved, err)
	}

	if err := tbl.LeaveScope(); err != nil {
		t.Fatalf("unexpected error leaving scope: %v", err)
	}
	resolved, err = tbl.Resolve("x")
	if err != nil || resolved != outer {
		t.Fatalf("expected outer 'x' at %d after pop, got %d, err=%v", outer, resolved, err)
	}
}

func TestLeavingGlobalScopeFails(t *testing.T) {
	tbl := NewTable()
	if err := tbl.LeaveScope(); err == nil {
		t.Fatalf("expected an error leaving the global scope")
	}
}

func TestTopScopeCountTracksDeclarationsInThatFrameOnly(t *testing.T) {
	tbl := NewTable()
	tbl.Declare("g", Integer, Variable)

	tbl.EnterScope("p")
	tbl.Declare("x", Integer, Parameter)
	tbl.Declare("y", Integer, Variable)

	if got := tbl.TopScope().Count; got != 2 {
		t.Fatalf("expected inner scope count 2, got %d", got)
	}
}

func TestTypeOfReturnsDeclaredType(t *testing.T) {
	tbl := NewTable()
	tbl.Declare("r", Real, Variable)
	typ, err := tbl.TypeOf("r")
	if err != nil || typ != Real {
		t.Fatalf("expected Real, got %v, err=%v", typ, err)
	}
}

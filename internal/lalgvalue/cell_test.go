package lalgvalue

import "testing"

func TestIntArithmeticStaysInt(t *testing.T) {
	sum := Add(Int(2), Int(3))
	if sum.IsReal() || sum.Int64() != 5 {
		t.Fatalf("expected Int(5), got %v (real=%v)", sum, sum.IsReal())
	}
}

func TestMixedArithmeticWidensToReal(t *testing.T) {
	sum := Add(Int(2), Real(0.5))
	if !sum.IsReal() {
		t.Fatalf("expected widening to Real, got %v", sum)
	}
	if sum.Float() != 2.5 {
		t.Fatalf("expected 2.5, got %v", sum.Float())
	}
}

func TestDivAlwaysProducesReal(t *testing.T) {
	q := Div(Int(4), Int(2))
	if !q.IsReal() {
		t.Fatalf("expected DIVI to always widen to Real, got %v", q)
	}
	if q.Float() != 2 {
		t.Fatalf("expected 2, got %v", q.Float())
	}
}

func TestCompareAcrossTags(t *testing.T) {
	if Compare(Int(1), Real(1.0)) != 0 {
		t.Fatalf("expected Int(1) == Real(1.0)")
	}
	if Compare(Int(1), Real(2.0)) >= 0 {
		t.Fatalf("expected Int(1) < Real(2.0)")
	}
	if Compare(Real(3.0), Int(2)) <= 0 {
		t.Fatalf("expected Real(3.0) > Int(2)")
	}
}

func TestIsZero(t *testing.T) {
	if !Int(0).IsZero() || !Real(0).IsZero() {
		t.Fatalf("expected both zero-valued cells to report IsZero")
	}
	if Int(1).IsZero() || Real(0.1).IsZero() {
		t.Fatalf("expected non-zero cells to report false")
	}
}

func TestStringFormatting(t *testing.T) {
	if got := Int(42).String(); got != "42" {
		t.Fatalf("expected %q, got %q", "42", got)
	}
	if got := Real(3.5).String(); got != "3.5" {
		t.Fatalf("expected %q, got %q", "3.5", got)
	}
}

func TestParseCellDistinguishesIntFromReal(t *testing.T) {
	c, err := ParseCell("10")
	if err != nil || c.IsReal() || c.Int64() != 10 {
		t.Fatalf("expected Int(10), got %v, err=%v", c, err)
	}
	c, err = ParseCell("3.25")
	if err != nil || !c.IsReal() || c.Float() != 3.25 {
		t.Fatalf("expected Real(3.25), got %v, err=%v", c, err)
	}
}

func TestParseCellRejectsNonNumeric(t *testing.T) {
	if _, err := ParseCell("abc"); err == nil {
		t.Fatalf("expected an error for non-numeric input")
	}
}

package codegen

import (
	"strings"
	"testing"

	"github.com/lalg-lang/lalg/internal/lalgvalue"
)

func TestWriteTextProducesOneInstructionPerLine(t *testing.T) {
	b := &Buffer{}
	b.Emit(INPP)
	b.EmitNum(CRCT, lalgvalue.Int(10))
	b.EmitAddr(ARMZ, 0)
	b.Emit(PARA)

	var sb strings.Builder
	if err := b.WriteText(&sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INPP\nCRCT 10\nARMZ 0\nPARA\n"
	if sb.String() != want {
		t.Fatalf("expected %q, got %q", want, sb.String())
	}
}

func TestReadTextRoundTripsWriteText(t *testing.T) {
	b := &Buffer{}
	b.Emit(INPP)
	b.EmitNum(CRCT, lalgvalue.Real(3.5))
	b.EmitAddr(DSVF, 7)
	b.Emit(PARA)

	var sb strings.Builder
	if err := b.WriteText(&sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := ReadText(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := decoded.Instructions()
	want := b.Instructions()
	if len(got) != len(want) {
		t.Fatalf("expected %d instructions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Op != want[i].Op || got[i].Addr != want[i].Addr {
			t.Fatalf("instruction %d mismatch: want %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestReadTextStripsCommentsAndBlankLines(t *testing.T) {
	src := "INPP # start\n\nCRCT 1 # push one\n\nPARA\n"
	buf, err := ReadText(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	instrs := buf.Instructions()
	if len(instrs) != 3 {
		t.Fatalf("expected 3 instructions, got %d: %v", len(instrs), instrs)
	}
	if instrs[1].Op != CRCT || instrs[1].Num.Int64() != 1 {
		t.Fatalf("expected CRCT carrying 1, got %v", instrs[1])
	}
}

func TestReadTextRejectsMissingOperand(t *testing.T) {
	if _, err := ReadText(strings.NewReader("ARMZ\n")); err == nil {
		t.Fatalf("expected an error for ARMZ with no operand")
	}
}

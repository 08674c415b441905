package codegen

import "github.com/lalg-lang/lalg/internal/lalgvalue"

// Instruction is one (opcode, optional operand) pair. Buffer indices
// double as program addresses, so an Instruction never carries its own
// address.
type Instruction struct {
	Op Op

	// Addr holds the operand for every opcode except CRCT, where it is
	// unused; it is an address, a branch target, or a count depending on
	// Op.
	Addr int64

	// Num holds the literal value for CRCT. Unused otherwise.
	Num lalgvalue.Cell
}

// Buffer is the append-only instruction stream the parser emits into.
// The only mutation permitted after an instruction is appended is
// Patch, which rewrites an existing instruction's operand in place —
// this is the entire backpatching mechanism.
type Buffer struct {
	instrs []Instruction
}

// Emit appends a bare instruction (no operand) and returns its index.
func (b *Buffer) Emit(op Op) int {
	b.instrs = append(b.instrs, Instruction{Op: op})
	return len(b.instrs) - 1
}

// EmitAddr appends an instruction carrying an integer operand (address,
// branch target, or count) and returns its index, so the caller can
// later Patch it for backpatching.
func (b *Buffer) EmitAddr(op Op, operand int) int {
	b.instrs = append(b.instrs, Instruction{Op: op, Addr: int64(operand)})
	return len(b.instrs) - 1
}

// EmitNum appends a CRCT instruction carrying a literal numeric operand.
func (b *Buffer) EmitNum(op Op, v lalgvalue.Cell) int {
	b.instrs = append(b.instrs, Instruction{Op: op, Num: v})
	return len(b.instrs) - 1
}

// Patch rewrites the operand of the instruction at index to target. It
// is the only way an already-emitted instruction is ever modified.
func (b *Buffer) Patch(index, target int) {
	b.instrs[index].Addr = int64(target)
}

// Len returns the current instruction count, i.e. the address that the
// next Emit* call will assign.
func (b *Buffer) Len() int {
	return len(b.instrs)
}

func (b *Buffer) At(index int) Instruction {
	return b.instrs[index]
}

// Instructions returns the full emitted stream, in address order.
func (b *Buffer) Instructions() []Instruction {
	return b.instrs
}

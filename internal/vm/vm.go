// Package vm implements the LALG stack virtual machine: a linear
// fetch-decode-execute loop over a codegen.Buffer, with a growable data
// area, a separate operand stack, and a separate return-address stack.
package vm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/lalg-lang/lalg/internal/compiler/codegen"
	"github.com/lalg-lang/lalg/internal/lalgvalue"
)

// RuntimeFault is a fatal execution-time error: an empty operand stack on a
// consuming instruction, division by zero, or non-numeric LEIT input. It
// always carries the PC and opcode that faulted, per spec.
type RuntimeFault struct {
	PC  int
	Op  codegen.Op
	Msg string
}

func (e *RuntimeFault) Error() string {
	return fmt.Sprintf("runtime fault at pc=%d (%s): %s", e.PC, e.Op, e.Msg)
}

// VM holds all mutable execution state. Its instruction buffer is
// read-only — the parser phase is the only mutator of program text; the VM
// mutates only its own data area and stacks.
type VM struct {
	instrs []codegen.Instruction

	data    []lalgvalue.Cell
	operand []lalgvalue.Cell
	retAddr []int
	pc      int

	in  *bufio.Scanner
	out io.Writer
}

// New constructs a VM over buf's instructions. in supplies LEIT input line
// by line; out receives IMPR output.
func New(buf *codegen.Buffer, in io.Reader, out io.Writer) *VM {
	return &VM{
		instrs: buf.Instructions(),
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// OperandStackLen and ReturnStackLen expose stack depth for tests asserting
// the net-neutral-stack invariant after a run.
func (v *VM) OperandStackLen() int { return len(v.operand) }
func (v *VM) ReturnStackLen() int  { return len(v.retAddr) }

func (v *VM) push(c lalgvalue.Cell) { v.operand = append(v.operand, c) }

func (v *VM) pop(op codegen.Op) (lalgvalue.Cell, error) {
	if len(v.operand) == 0 {
		return lalgvalue.Cell{}, &RuntimeFault{PC: v.pc, Op: op, Msg: "operand stack is empty"}
	}
	c := v.operand[len(v.operand)-1]
	v.operand = v.operand[:len(v.operand)-1]
	return c, nil
}

// ensure extends the data area with zero cells so addr is valid, per the
// CRVL/ARMZ/PARAM permissive out-of-range rule.
func (v *VM) ensure(addr int) {
	for addr >= len(v.data) {
		v.data = append(v.data, lalgvalue.Int(0))
	}
}

// Run executes from the current PC until PARA, a fault, or the instruction
// stream is exhausted.
func (v *VM) Run() error {
	for v.pc < len(v.instrs) {
		instr := v.instrs[v.pc]
		halt, err := v.step(instr)
		if err != nil {
			return err
		}
		if halt {
			return nil
		}
	}
	return nil
}

// step executes one instruction and reports whether PARA requested a clean
// halt. It is responsible for its own PC advancement.
func (v *VM) step(instr codegen.Instruction) (bool, error) {
	switch instr.Op {
	case codegen.INPP:
		v.pc++

	case codegen.PARA:
		return true, nil

	case codegen.ALME:
		n := int(instr.Addr)
		for i := 0; i < n; i++ {
			v.data = append(v.data, lalgvalue.Int(0))
		}
		v.pc++

	case codegen.DESM:
		n := int(instr.Addr)
		if n > len(v.data) {
			n = len(v.data)
		}
		v.data = v.data[:len(v.data)-n]
		v.pc++

	case codegen.CRCT:
		v.push(instr.Num)
		v.pc++

	case codegen.CRVL:
		addr := int(instr.Addr)
		v.ensure(addr)
		v.push(v.data[addr])
		v.pc++

	case codegen.ARMZ:
		c, err := v.pop(instr.Op)
		if err != nil {
			return false, err
		}
		addr := int(instr.Addr)
		v.ensure(addr)
		v.data[addr] = c
		v.pc++

	case codegen.SOMA, codegen.SUBT, codegen.MULT, codegen.DIVI:
		if err := v.arith(instr.Op); err != nil {
			return false, err
		}
		v.pc++

	case codegen.CPIG, codegen.CDIF, codegen.CMAI, codegen.CMEN, codegen.CPMA, codegen.CPMI:
		if err := v.compare(instr.Op); err != nil {
			return false, err
		}
		v.pc++

	case codegen.DSVF:
		c, err := v.pop(instr.Op)
		if err != nil {
			return false, err
		}
		if c.IsZero() {
			v.pc = int(instr.Addr)
		} else {
			v.pc++
		}

	case codegen.DSVI:
		v.pc = int(instr.Addr)

	case codegen.IMPR:
		c, err := v.pop(instr.Op)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(v.out, c.String())
		v.pc++

	case codegen.LEIT:
		c, err := v.readCell()
		if err != nil {
			return false, err
		}
		v.push(c)
		v.pc++

	case codegen.PUSHER:
		v.retAddr = append(v.retAddr, int(instr.Addr))
		v.pc++

	case codegen.PARAM:
		addr := int(instr.Addr)
		v.ensure(addr)
		v.push(v.data[addr])
		v.pc++

	case codegen.CHPR:
		v.pc = int(instr.Addr)

	case codegen.RTPR:
		if len(v.retAddr) == 0 {
			v.pc++
			break
		}
		v.pc = v.retAddr[len(v.retAddr)-1]
		v.retAddr = v.retAddr[:len(v.retAddr)-1]

	default:
		return false, &RuntimeFault{PC: v.pc, Op: instr.Op, Msg: "unknown opcode"}
	}
	return false, nil
}

func (v *VM) arith(op codegen.Op) error {
	b, err := v.pop(op)
	if err != nil {
		return err
	}
	a, err := v.pop(op)
	if err != nil {
		return err
	}
	switch op {
	case codegen.SOMA:
		v.push(lalgvalue.Add(a, b))
	case codegen.SUBT:
		v.push(lalgvalue.Sub(a, b))
	case codegen.MULT:
		v.push(lalgvalue.Mul(a, b))
	case codegen.DIVI:
		if b.IsZero() {
			return &RuntimeFault{PC: v.pc, Op: op, Msg: "division by zero"}
		}
		v.push(lalgvalue.Div(a, b))
	}
	return nil
}

func (v *VM) compare(op codegen.Op) error {
	b, err := v.pop(op)
	if err != nil {
		return err
	}
	a, err := v.pop(op)
	if err != nil {
		return err
	}
	cmp := lalgvalue.Compare(a, b)
	var holds bool
	switch op {
	case codegen.CPIG:
		holds = cmp == 0
	case codegen.CDIF:
		holds = cmp != 0
	case codegen.CMAI:
		holds = cmp > 0
	case codegen.CMEN:
		holds = cmp < 0
	case codegen.CPMA:
		holds = cmp >= 0
	case codegen.CPMI:
		holds = cmp <= 0
	}
	if holds {
		v.push(lalgvalue.Int(1))
	} else {
		v.push(lalgvalue.Int(0))
	}
	return nil
}

func (v *VM) readCell() (lalgvalue.Cell, error) {
	if !v.in.Scan() {
		return lalgvalue.Cell{}, &RuntimeFault{PC: v.pc, Op: codegen.LEIT, Msg: "no more input"}
	}
	c, err := lalgvalue.ParseCell(v.in.Text())
	if err != nil {
		return lalgvalue.Cell{}, &RuntimeFault{PC: v.pc, Op: codegen.LEIT, Msg: "non-numeric input: " + v.in.Text()}
	}
	return c, nil
}

package codegen

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lalg-lang/lalg/internal/lalgvalue"
)

// WriteText renders the buffer as the canonical object-code text format:
// one instruction per line, opcode uppercase, optional decimal operand
// separated by a single space.
func (b *Buffer) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, instr := range b.instrs {
		line := string(instr.Op)
		if instr.Op == CRCT {
			line += " " + instr.Num.String()
		} else if instr.Op.HasOperand() {
			line += " " + strconv.FormatInt(instr.Addr, 10)
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadText decodes the canonical object-code text format, stripping
// `#`-prefixed trailing comments and ignoring blank lines, as the VM
// loader must.
func ReadText(r io.Reader) (*Buffer, error) {
	b := &Buffer{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		op := Op(fields[0])
		if !op.HasOperand() {
			b.Emit(op)
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("object code line %d: %s requires an operand", lineNo, op)
		}
		if op == CRCT {
			v, err := lalgvalue.ParseCell(fields[1])
			if err != nil {
				return nil, fmt.Errorf("object code line %d: invalid CRCT operand %q: %w", lineNo, fields[1], err)
			}
			b.EmitNum(op, v)
			continue
		}
		operand, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("object code line %d: invalid operand for %s: %q", lineNo, op, fields[1])
		}
		b.EmitAddr(op, operand)
	}
	return b, sc.Err()
}

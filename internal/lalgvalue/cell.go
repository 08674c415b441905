// Package lalgvalue implements the tagged numeric cell shared by the code
// generator (literal operands) and the VM (stack and data-area cells).
package lalgvalue

import "strconv"

// Cell is a numeric value tagged as either an integer or a real. Which
// variant a cell holds is decided at the point it's produced: arithmetic
// widens to Real whenever either operand is Real, and DIVI always
// produces Real regardless of its operands.
type Cell struct {
	isReal bool
	i      int64
	r      float64
}

func Int(v int64) Cell   { return Cell{i: v} }
func Real(v float64) Cell { return Cell{isReal: true, r: v} }

func (c Cell) IsReal() bool { return c.isReal }

// Float returns the cell's value widened to float64, regardless of tag.
func (c Cell) Float() float64 {
	if c.isReal {
		return c.r
	}
	return float64(c.i)
}

// Int64 returns the cell's value narrowed to int64. Only meaningful for
// integer cells; callers that care should check IsReal first.
func (c Cell) Int64() int64 {
	if c.isReal {
		return int64(c.r)
	}
	return c.i
}

func (c Cell) IsZero() bool {
	if c.isReal {
		return c.r == 0
	}
	return c.i == 0
}

func (c Cell) String() string {
	if c.isReal {
		return strconv.FormatFloat(c.r, 'f', -1, 64)
	}
	return strconv.FormatInt(c.i, 10)
}

func widen(a, b Cell) bool { return a.isReal || b.isReal }

func Add(a, b Cell) Cell {
	if widen(a, b) {
		return Real(a.Float() + b.Float())
	}
	return Int(a.i + b.i)
}

func Sub(a, b Cell) Cell {
	if widen(a, b) {
		return Real(a.Float() - b.Float())
	}
	return Int(a.i - b.i)
}

func Mul(a, b Cell) Cell {
	if widen(a, b) {
		return Real(a.Float() * b.Float())
	}
	return Int(a.i * b.i)
}

// Div always yields a Real cell, per the LALG division instruction.
func Div(a, b Cell) Cell {
	return Real(a.Float() / b.Float())
}

// Compare returns -1, 0 or 1 for a<b, a==b, a>b, comparing numerically
// regardless of tag (an Int and a Real compare by value).
func Compare(a, b Cell) int {
	af, bf := a.Float(), b.Float()
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

// ParseCell parses a LEIT input line: an integer if no fractional part is
// present, otherwise a real. Returns an error for non-numeric input.
func ParseCell(s string) (Cell, error) {
	if iv, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(iv), nil
	}
	fv, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Cell{}, err
	}
	return Real(fv), nil
}

// Package ir defines the tree-shaped intermediate representation consumed
// by the match and rewrite packages: typed arithmetic, comparison and
// control expressions, plus the small set of helpers (structural equality,
// constant builders, overflow arithmetic) that the matcher treats as an
// external collaborator.
package ir

import (
	"fmt"

	"tlog.app/go/tlog/tlwire"
)

// Code names the arithmetic class of a scalar or vector type.
type Code uint8

const (
	Int Code = iota
	UInt
	Float
)

func (c Code) String() string {
	switch c {
	case Int:
		return "int"
	case UInt:
		return "uint"
	case Float:
		return "float"
	default:
		return "code?"
	}
}

// Lanes flag bits. The two high bits of a Type's Lanes field double as a
// sticky flag channel during constant folding (see match.MatcherState);
// on a live, already-built Expr they are always clear.
const (
	SignedIntegerOverflow uint16 = 0x8000
	IndeterminateExpr     uint16 = 0x4000
	specialFlagsMask      uint16 = SignedIntegerOverflow | IndeterminateExpr
)

// Type is the (code, bits, lanes) triple every Expr carries.
type Type struct {
	Code  Code
	Bits  uint8
	Lanes uint16
}

func (t Type) LaneCount() uint16 { return t.Lanes &^ specialFlagsMask }
func (t Type) Flags() uint16     { return t.Lanes & specialFlagsMask }
func (t Type) HasFlags() bool    { return t.Flags() != 0 }
func (t Type) IsVector() bool    { return t.LaneCount() > 1 }

// WithLanes returns t with its lane count replaced, flags preserved.
func (t Type) WithLanes(n uint16) Type {
	t.Lanes = (t.Lanes & specialFlagsMask) | (n &^ specialFlagsMask)
	return t
}

// WithFlags ORs the given sticky flags into t.
func (t Type) WithFlags(f uint16) Type {
	t.Lanes |= f & specialFlagsMask
	return t
}

// Scalar strips flags and forces a lane count of 1.
func (t Type) Scalar() Type {
	t.Lanes = 1
	return t
}

// Bool1 is the result type of a folded comparison: uint, 1 bit, with the
// given lanes field.
func Bool1(lanes uint16) Type {
	return Type{Code: UInt, Bits: 1, Lanes: lanes}
}

func (t Type) String() string {
	lanes := t.LaneCount()
	if lanes <= 1 {
		return fmt.Sprintf("%s%d", t.Code, t.Bits)
	}
	return fmt.Sprintf("%s%dx%d", t.Code, t.Bits, lanes)
}

// TlogAppend implements tlog's encodable-value convention, the same one
// the teacher's ir.Link uses, so a bound type triple prints compactly
// inside a trace line instead of falling back to reflection.
func (t Type) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder
	return e.AppendFormat(b, "%s", t.String())
}

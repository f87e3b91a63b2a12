package ir

import "sync/atomic"

// MakeConstInt builds an IntImm of type t (broadcasting it if t is a
// vector type).
func MakeConstInt(t Type, v int64) Expr {
	lanes := t.LaneCount()
	lit := &IntImm{T: t.Scalar(), Value: v}
	if lanes > 1 {
		return &Broadcast{T: t, Value: lit}
	}
	return lit
}

// MakeConstUInt builds a UIntImm of type t (broadcasting it if t is a
// vector type).
func MakeConstUInt(t Type, v uint64) Expr {
	lanes := t.LaneCount()
	lit := &UIntImm{T: t.Scalar(), Value: v}
	if lanes > 1 {
		return &Broadcast{T: t, Value: lit}
	}
	return lit
}

// MakeConstFloat builds a FloatImm of type t (broadcasting it if t is a
// vector type).
func MakeConstFloat(t Type, v float64) Expr {
	lanes := t.LaneCount()
	lit := &FloatImm{T: t.Scalar(), Value: v}
	if lanes > 1 {
		return &Broadcast{T: t, Value: lit}
	}
	return lit
}

// MakeConst builds a literal of type t from a small integer, dispatching
// on t.Code the way the original Const(int) pattern term's ::make does.
func MakeConst(t Type, v int) Expr {
	switch t.Code {
	case Int:
		return MakeConstInt(t, int64(v))
	case UInt:
		return MakeConstUInt(t, uint64(v))
	case Float:
		return MakeConstFloat(t, float64(v))
	default:
		panic("ir: MakeConst: unknown code")
	}
}

// MakeZero builds the zero value of type t.
func MakeZero(t Type) Expr { return MakeConst(t, 0) }

// peelBroadcast returns the scalar literal under a Broadcast, or e itself
// if it isn't one.
func peelBroadcast(e Expr) Expr {
	if b, ok := e.(*Broadcast); ok {
		return b.Value
	}
	return e
}

// IsConst reports whether e is a numeric literal, optionally under a
// Broadcast.
func IsConst(e Expr) bool {
	switch peelBroadcast(e).(type) {
	case *IntImm, *UIntImm, *FloatImm:
		return true
	default:
		return false
	}
}

// IsZero reports whether e is a numeric literal (optionally broadcast)
// equal to zero.
func IsZero(e Expr) bool {
	switch x := peelBroadcast(e).(type) {
	case *IntImm:
		return x.Value == 0
	case *UIntImm:
		return x.Value == 0
	case *FloatImm:
		return x.Value == 0
	default:
		return false
	}
}

// IsOne reports whether e is a numeric literal (optionally broadcast)
// equal to one.
func IsOne(e Expr) bool {
	switch x := peelBroadcast(e).(type) {
	case *IntImm:
		return x.Value == 1
	case *UIntImm:
		return x.Value == 1
	case *FloatImm:
		return x.Value == 1
	default:
		return false
	}
}

// sentinelCounter disambiguates distinct indeterminate_expression /
// signed_integer_overflow nodes so downstream structural equality does
// not conflate two independently-folded anomalies. Atomic increment is
// the only ordering guarantee required (§5).
var sentinelCounter int64

// NewIndeterminateExpr mints a fresh indeterminate_expression sentinel of
// type t, stripped of its sticky flag bits.
func NewIndeterminateExpr(t Type) Expr {
	return &Call{
		T:             t.Scalar().WithLanes(t.LaneCount()),
		Name:          IntrinIndeterminateExpr,
		Disambiguator: atomic.AddInt64(&sentinelCounter, 1),
	}
}

// NewSignedOverflowExpr mints a fresh signed_integer_overflow sentinel of
// type t, stripped of its sticky flag bits.
func NewSignedOverflowExpr(t Type) Expr {
	return &Call{
		T:             t.Scalar().WithLanes(t.LaneCount()),
		Name:          IntrinSignedIntegerOverflow,
		Disambiguator: atomic.AddInt64(&sentinelCounter, 1),
	}
}

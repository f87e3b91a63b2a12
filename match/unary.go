package match

import "github.com/slowlang/rewrite/ir"

// NotOp matches a logical negation whose operand matches A.
type NotOp struct{ A Term }

func (p NotOp) Binds() uint32 { return p.A.Binds() }

func (p NotOp) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	n, ok := e.(*ir.Not)
	if !ok {
		return false
	}
	return p.A.Match(n.Arg, st, already)
}

func (p NotOp) Make(st *MatcherState) ir.Expr {
	arg := p.A.Make(st)
	return &ir.Not{T: arg.Type(), Arg: arg}
}

func (p NotOp) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	v, t := p.A.(ConstFolder).MakeFoldedConst(st)
	var out Num
	switch t.Code {
	case ir.Int:
		out = boolNum(v.I == 0)
	case ir.UInt:
		out = boolNum(v.U == 0)
	case ir.Float:
		out = boolNum(v.F == 0)
	}
	return out, t
}

func boolNum(b bool) Num {
	if b {
		return NumFromUint(1)
	}
	return NumFromUint(0)
}

// Not builds a NotOp pattern.
func Not(a Term) NotOp { return NotOp{A: a} }

// NegateOp matches Sub(0, a) where a matches A — the IR's canonical
// unary-negate encoding.
type NegateOp struct{ A Term }

func (p NegateOp) Binds() uint32 { return p.A.Binds() }

func (p NegateOp) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	sub, ok := e.(*ir.Sub)
	if !ok || !ir.IsZero(sub.L) {
		return false
	}
	return p.A.Match(sub.R, st, already)
}

func (p NegateOp) Make(st *MatcherState) ir.Expr {
	a := p.A.Make(st)
	return &ir.Sub{T: a.Type(), L: ir.MakeZero(a.Type()), R: a}
}

func (p NegateOp) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	v, t := p.A.(ConstFolder).MakeFoldedConst(st)
	switch t.Code {
	case ir.Int:
		bits := int(t.Bits)
		if v.I == ir.MinSignedFor(bits) {
			// Negating the most negative signed value of this width
			// overflows rather than wrapping silently.
			return v, t.WithFlags(ir.SignedIntegerOverflow)
		}
		return NumFromInt(-v.I), t
	case ir.UInt:
		return NumFromUint(-v.U), t
	case ir.Float:
		return NumFromFloat(-v.F), t
	default:
		panic("match: NegateOp.MakeFoldedConst: unknown code")
	}
}

// Neg builds a NegateOp pattern.
func Neg(a Term) NegateOp { return NegateOp{A: a} }

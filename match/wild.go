package match

import "github.com/slowlang/rewrite/ir"

// Wild matches any expression, capturing it into expression slot I. A
// repeated Wild with the same I on a later hole enforces structural
// equality with the first capture — the bitmask-threading discipline
// (see Rewriter/BinOp) is what makes this work without a post-hoc scan.
type Wild struct{ I int }

func (w Wild) Binds() uint32 { return ExprBit(w.I) }

func (w Wild) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	if already&w.Binds() != 0 {
		return ir.Equal(st.GetBinding(w.I), e)
	}
	st.SetBinding(w.I, e)
	return true
}

func (w Wild) Make(st *MatcherState) ir.Expr { return st.GetBinding(w.I) }

// matchLiteral peels one Broadcast layer off e and reports the literal
// underneath along with its full (possibly-vector) type, or ok=false if
// e is not, after peeling, a literal of kind want.
func matchLiteral(e ir.Expr, want ir.NodeKind) (Num, ir.Type, bool) {
	x := e
	if b, ok := x.(*ir.Broadcast); ok {
		x = b.Value
	}
	if x.Kind() != want {
		return Num{}, ir.Type{}, false
	}
	switch v := x.(type) {
	case *ir.IntImm:
		return NumFromInt(v.Value), e.Type(), true
	case *ir.UIntImm:
		return NumFromUint(v.Value), e.Type(), true
	case *ir.FloatImm:
		return NumFromFloat(v.Value), e.Type(), true
	default:
		return Num{}, ir.Type{}, false
	}
}

func matchConstSlot(i int, want ir.NodeKind, code ir.Code, e ir.Expr, st *MatcherState, already uint32, self uint32) bool {
	v, t, ok := matchLiteral(e, want)
	if !ok {
		return false
	}
	if already&self != 0 {
		bv, bt := st.GetBoundConst(i)
		return bt == t && bv.Equal(code, v)
	}
	st.SetBoundConst(i, v, t)
	return true
}

// WildConstInt matches an IntImm, optionally wrapped in a Broadcast.
type WildConstInt struct{ I int }

func (w WildConstInt) Binds() uint32 { return ConstBit(w.I) }

func (w WildConstInt) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	return matchConstSlot(w.I, ir.KindIntImm, ir.Int, e, st, already, w.Binds())
}

func (w WildConstInt) Make(st *MatcherState) ir.Expr {
	v, t := st.GetBoundConst(w.I)
	return materialize(v, t)
}

func (w WildConstInt) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	return st.GetBoundConst(w.I)
}

// WildConstUInt matches a UIntImm, optionally wrapped in a Broadcast.
type WildConstUInt struct{ I int }

func (w WildConstUInt) Binds() uint32 { return ConstBit(w.I) }

func (w WildConstUInt) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	return matchConstSlot(w.I, ir.KindUIntImm, ir.UInt, e, st, already, w.Binds())
}

func (w WildConstUInt) Make(st *MatcherState) ir.Expr {
	v, t := st.GetBoundConst(w.I)
	return materialize(v, t)
}

func (w WildConstUInt) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	return st.GetBoundConst(w.I)
}

// WildConstFloat matches a FloatImm, optionally wrapped in a Broadcast.
type WildConstFloat struct{ I int }

func (w WildConstFloat) Binds() uint32 { return ConstBit(w.I) }

func (w WildConstFloat) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	return matchConstSlot(w.I, ir.KindFloatImm, ir.Float, e, st, already, w.Binds())
}

func (w WildConstFloat) Make(st *MatcherState) ir.Expr {
	v, t := st.GetBoundConst(w.I)
	return materialize(v, t)
}

func (w WildConstFloat) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	return st.GetBoundConst(w.I)
}

// WildConst matches any of the three numeric literal classes,
// optionally wrapped in a Broadcast. Go has no template specialization
// to dispatch on the literal's concrete kind at compile time, so — like
// the original's own WildConst::match — this dispatches at runtime by
// trying each concrete literal kind in turn.
type WildConst struct{ I int }

func (w WildConst) Binds() uint32 { return ConstBit(w.I) }

func (w WildConst) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	x := e
	if b, ok := x.(*ir.Broadcast); ok {
		x = b.Value
	}
	switch x.Kind() {
	case ir.KindIntImm:
		return WildConstInt(w).Match(e, st, already)
	case ir.KindUIntImm:
		return WildConstUInt(w).Match(e, st, already)
	case ir.KindFloatImm:
		return WildConstFloat(w).Match(e, st, already)
	default:
		return false
	}
}

func (w WildConst) Make(st *MatcherState) ir.Expr {
	v, t := st.GetBoundConst(w.I)
	return materialize(v, t)
}

func (w WildConst) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	return st.GetBoundConst(w.I)
}

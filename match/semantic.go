package match

import "github.com/slowlang/rewrite/ir"

// Prover is the simplifier hook CanProveOp calls into: a single-method
// interface any downstream simplifier can implement (see
// github.com/slowlang/rewrite/simplify.Simplifier).
type Prover interface {
	Mutate(ir.Expr) ir.Expr
}

// FoldOp evaluates A as a folded constant and materializes it: a
// literal when flag-free, or a distinguished sentinel intrinsic call
// when a sticky flag survived. It is used exclusively on rule
// right-hand sides to evaluate a constant subtree at rewrite time.
type FoldOp struct{ A Term }

func (p FoldOp) Binds() uint32 { return p.A.Binds() }

func (p FoldOp) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	return p.A.Match(e, st, already)
}

func (p FoldOp) Make(st *MatcherState) ir.Expr {
	v, t := p.A.(ConstFolder).MakeFoldedConst(st)
	return materialize(v, t)
}

func (p FoldOp) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	return p.A.(ConstFolder).MakeFoldedConst(st)
}

// Fold builds a FoldOp pattern.
func Fold(a Term) FoldOp { return FoldOp{A: a} }

// IsConstOp only ever participates in predicates: it folds to uint1 1
// iff A.Make(state) is a literal.
type IsConstOp struct{ A Term }

func (p IsConstOp) Binds() uint32 { return p.A.Binds() }

func (p IsConstOp) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	return p.A.Match(e, st, already)
}

func (p IsConstOp) Make(st *MatcherState) ir.Expr {
	v, t := p.MakeFoldedConst(st)
	return materialize(v, t)
}

func (p IsConstOp) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	return boolNum(ir.IsConst(p.A.Make(st))), ir.Bool1(1)
}

// IsConst builds an IsConstOp predicate term.
func IsConst(a Term) IsConstOp { return IsConstOp{A: a} }

// CanProveOp materializes A, passes it through a Prover, and reports
// whether the result is the literal 1 — the typed equivalent of the
// simplifier's own can_prove helper.
type CanProveOp struct {
	A Term
	P Prover
}

func (p CanProveOp) Binds() uint32 { return p.A.Binds() }

func (p CanProveOp) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	return p.A.Match(e, st, already)
}

func (p CanProveOp) Make(st *MatcherState) ir.Expr {
	v, t := p.MakeFoldedConst(st)
	return materialize(v, t)
}

func (p CanProveOp) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	proved := p.P.Mutate(p.A.Make(st))
	return boolNum(ir.IsOne(proved)), ir.Bool1(1)
}

// CanProve builds a CanProveOp predicate term bound to prover p.
func CanProve(a Term, p Prover) CanProveOp { return CanProveOp{A: a, P: p} }

// GCDOp folds to the greatest common divisor of A and B, both of which
// must be signed integers of at least 32 bits.
type GCDOp struct{ A, B Term }

func (p GCDOp) Binds() uint32 { return p.A.Binds() | p.B.Binds() }

func (p GCDOp) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	return p.A.Match(e, st, already) && p.B.Match(e, st, already)
}

func (p GCDOp) Make(st *MatcherState) ir.Expr {
	v, t := p.MakeFoldedConst(st)
	return materialize(v, t)
}

func (p GCDOp) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	va, ta := p.A.(ConstFolder).MakeFoldedConst(st)
	vb, tb := p.B.(ConstFolder).MakeFoldedConst(st)
	if ta.Code != ir.Int || tb.Code != ir.Int || ta.Bits < 32 || tb.Bits < 32 {
		panic("match: GCDOp: operands must be signed integers of at least 32 bits")
	}
	rt := ta
	rt.Lanes = ta.Lanes | tb.Lanes
	return NumFromInt(ir.GCD(va.I, vb.I)), rt
}

// GCD builds a GCDOp pattern.
func GCD(a, b Term) GCDOp { return GCDOp{A: a, B: b} }

// BindOp evaluates A as a folded constant, writes it into constant slot
// I, and itself folds to uint1 1 — used inside predicates so the
// right-hand side of a rule can refer to a value computed once by the
// predicate.
type BindOp struct {
	I int
	A Term
}

func (p BindOp) Binds() uint32 { return ConstBit(p.I) | p.A.Binds() }

func (p BindOp) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	return p.A.Match(e, st, already)
}

func (p BindOp) Make(st *MatcherState) ir.Expr {
	v, t := p.MakeFoldedConst(st)
	return materialize(v, t)
}

func (p BindOp) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	v, t := p.A.(ConstFolder).MakeFoldedConst(st)
	st.SetBoundConst(p.I, v, t)
	return NumFromUint(1), ir.Bool1(1)
}

// Bind builds a BindOp pattern writing A's folded value into slot i.
func Bind(i int, a Term) BindOp { return BindOp{I: i, A: a} }

package match

import "github.com/slowlang/rewrite/ir"

// Term is the interface every pattern value implements. A Term exists
// only on the stack during a single rewrite attempt; it is cheap to copy
// and carries no heap resources beyond the small trees of Terms rule
// authors build up out of the constructors in this package.
type Term interface {
	// Binds is the compile-time-shaped bitmask naming the holes this
	// term binds: bits 0..15 for constant-wildcard slots, bits 16..20
	// for expression-wildcard slots.
	Binds() uint32

	// Match reports whether e has the shape this term describes,
	// writing any newly-bound holes into st. already names the holes
	// bound by terms matched earlier in the same pattern tree; a hole
	// this term binds that is already set in already must instead be
	// checked for equality against its existing binding.
	Match(e ir.Expr, st *MatcherState, already uint32) bool

	// Make reconstructs an IR expression from st. Every hole this term
	// references must already be bound.
	Make(st *MatcherState) ir.Expr
}

// ConstFolder is implemented by Terms that can additionally evaluate
// themselves to a bound constant without materializing an IR node.
type ConstFolder interface {
	Term
	MakeFoldedConst(st *MatcherState) (Num, ir.Type)
}

// Fixed wraps an already-built IR expression as a Term with no holes,
// the equivalent of passing a bare Expr where the original C++ template
// machinery accepted "const BaseExprNode &".
type Fixed struct{ E ir.Expr }

func (f Fixed) Binds() uint32 { return 0 }

func (f Fixed) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	return ir.Equal(f.E, e)
}

func (f Fixed) Make(st *MatcherState) ir.Expr { return f.E }

func (f Fixed) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	return numOfLiteral(f.E)
}

func (f Fixed) String() string { return ir.String(f.E) }

// numOfLiteral extracts the Num/Type pair of a literal expression,
// peeling one Broadcast layer, for use by Terms (Fixed) that fold
// a value they did not themselves bind into a slot.
func numOfLiteral(e ir.Expr) (Num, ir.Type) {
	x := e
	if b, ok := x.(*ir.Broadcast); ok {
		x = b.Value
	}
	switch v := x.(type) {
	case *ir.IntImm:
		return NumFromInt(v.Value), e.Type()
	case *ir.UIntImm:
		return NumFromUint(v.Value), e.Type()
	case *ir.FloatImm:
		return NumFromFloat(v.Value), e.Type()
	default:
		panic("match: numOfLiteral: not a literal")
	}
}

// toExpr materializes a Term (or, for a raw ir.Expr, itself) into an IR
// node, the Go analogue of the original's to_expr overload set.
func toExpr(p Term, st *MatcherState) ir.Expr { return p.Make(st) }

// alignLanes inserts a Broadcast on whichever of a, b is scalar if the
// other is a vector, since rules are authored scalar-agnostically and
// may mix vector and scalar sub-patterns.
func alignLanes(a, b ir.Expr) (ir.Expr, ir.Expr) {
	al, bl := a.Type().IsVector(), b.Type().IsVector()
	switch {
	case al && !bl:
		b = &ir.Broadcast{T: a.Type().WithLanes(a.Type().LaneCount()), Value: b}
	case bl && !al:
		a = &ir.Broadcast{T: b.Type().WithLanes(b.Type().LaneCount()), Value: a}
	}
	return a, b
}

// toSpecialExpr materializes a folded value carrying a sticky flag as a
// distinguished intrinsic call, so the surrounding simplifier can
// observe and propagate the anomaly.
func toSpecialExpr(t ir.Type) ir.Expr {
	flags := t.Flags()
	clean := t
	clean.Lanes = t.LaneCount()
	switch {
	case flags&ir.IndeterminateExpr != 0:
		return ir.NewIndeterminateExpr(clean)
	case flags&ir.SignedIntegerOverflow != 0:
		return ir.NewSignedOverflowExpr(clean)
	default:
		panic("match: toSpecialExpr: no flag set")
	}
}

// materialize turns a folded (Num, Type) pair into an IR expression,
// producing a sentinel intrinsic call instead of a literal when the type
// carries a sticky flag.
func materialize(v Num, t ir.Type) ir.Expr {
	if t.HasFlags() {
		return toSpecialExpr(t)
	}
	switch t.Code {
	case ir.Int:
		return ir.MakeConstInt(t, v.I)
	case ir.UInt:
		return ir.MakeConstUInt(t, v.U)
	case ir.Float:
		return ir.MakeConstFloat(t, v.F)
	default:
		panic("match: materialize: unknown code")
	}
}

// Package match implements the hot-path pattern matcher and constant
// folder for github.com/slowlang/rewrite/ir expressions: a closed family
// of composable pattern terms that decide whether a concrete IR node
// matches a structural template with named holes, capture the bindings
// into a small fixed-size state, and reconstruct a replacement
// expression from a template and those bindings.
package match

import "github.com/slowlang/rewrite/ir"

// K is the number of expression-wildcard slots and the number of
// constant-wildcard slots a MatcherState can hold.
const K = 5

// ExprBit and ConstBit name the disjoint halves of a Term's Binds mask:
// bits 0..15 for constant-wildcard holes, bits 16..20 for
// expression-wildcard holes (only the low K of each half are ever used).
func ConstBit(i int) uint32 { return 1 << uint(i) }
func ExprBit(i int) uint32  { return 1 << uint(16+i) }

// Num is the tagged-union-by-convention numeric value bound to a
// constant-wildcard slot: exactly one of I, U, F is meaningful, selected
// by the paired Type's Code.
type Num struct {
	I int64
	U uint64
	F float64
}

func NumFromInt(v int64) Num     { return Num{I: v} }
func NumFromUint(v uint64) Num   { return Num{U: v} }
func NumFromFloat(v float64) Num { return Num{F: v} }

// Equal compares two Nums under the given type code, i.e. it only
// inspects the field the code says is meaningful.
func (n Num) Equal(code ir.Code, o Num) bool {
	switch code {
	case ir.Int:
		return n.I == o.I
	case ir.UInt:
		return n.U == o.U
	case ir.Float:
		return n.F == o.F
	default:
		return false
	}
}

// MatcherState is the small stack-resident scratch buffer a single
// match/rewrite attempt threads through every pattern term it visits.
// No slot needs clearing between attempts: every read of slot i is
// preceded, on any successful match, by a write to slot i, and a term
// that reuses a hole always writes before a sibling that reads it.
type MatcherState struct {
	Bindings       [K]ir.Expr
	BoundConst     [K]Num
	BoundConstType [K]ir.Type
}

// Reset is a named no-op. The upstream MatcherState::reset this is
// ported from carries a "TODO: delete me" and no explanation of intent;
// per that ambiguity this port preserves the current contract (slots are
// overwritten on rebind, never proactively cleared) rather than guessing
// at a tightened one.
func (s *MatcherState) Reset() {}

func (s *MatcherState) SetBinding(i int, e ir.Expr) { s.Bindings[i] = e }
func (s *MatcherState) GetBinding(i int) ir.Expr    { return s.Bindings[i] }

func (s *MatcherState) SetBoundConst(i int, v Num, t ir.Type) {
	s.BoundConst[i] = v
	s.BoundConstType[i] = t
}

func (s *MatcherState) GetBoundConst(i int) (Num, ir.Type) {
	return s.BoundConst[i], s.BoundConstType[i]
}

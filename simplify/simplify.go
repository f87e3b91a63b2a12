// Package simplify is a small worked consumer of match and rewrite: a
// table-driven algebraic simplifier over github.com/slowlang/rewrite/ir
// expressions, built the same way the original library's own Simplify.cpp
// case statements are, translated to a flat rule table instead of one
// switch arm per node kind.
package simplify

import (
	"context"

	"github.com/slowlang/rewrite/ir"
	"github.com/slowlang/rewrite/match"
	"github.com/slowlang/rewrite/rewrite"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"
)

// Simplifier owns a rule table and implements match.Prover, so a rule's
// own predicate can recursively invoke the simplifier via CanProve — the
// same self-reference the original's Simplify class has to its own
// mutate().
type Simplifier struct {
	Rules []rewrite.Rule
}

var _ match.Prover = (*Simplifier)(nil)

// New builds a Simplifier with the default rule table. The Simplifier
// is constructed before its rule table so a rule can close over it as
// a match.Prover for its own CanProve predicates.
func New() *Simplifier {
	s := &Simplifier{}
	s.Rules = defaultRules(s)
	return s
}

// Mutate runs every rule in s.Rules against e, bottom-up, to a fixed
// point.
func (s *Simplifier) Mutate(e ir.Expr) ir.Expr {
	return rewrite.Mutate(context.Background(), e, s.Rules)
}

// wild/const-wild slot constants, named to keep the rule table below
// legible; K (match.K) is 5, so slot indices 0..4 are the only valid
// ones for either half.
const (
	x  = 0
	y  = 1
	z  = 2
	c0 = 0
	c1 = 1
)

func rule(name string, before, after match.Term, pred ...match.Term) rewrite.Rule {
	return rewrite.Rule{Name: name, Before: before, After: after, Pred: pred}
}

// zeroOf materializes the zero value of whatever type A's match binds,
// for the common "annihilator" shape of a rule (x-x, x*0) whose result
// type isn't known until a rule fires — a bare Const term has no type of
// its own to fall back on outside a BinOp/CmpOp.
type zeroOf struct{ A match.Term }

func (z zeroOf) Binds() uint32 { return z.A.Binds() }

func (z zeroOf) Match(e ir.Expr, st *match.MatcherState, already uint32) bool {
	return z.A.Match(e, st, already)
}

func (z zeroOf) Make(st *match.MatcherState) ir.Expr {
	return ir.MakeZero(z.A.Make(st).Type())
}

func (z zeroOf) String() string { return "0" }

// defaultRules is grounded on the identity/associativity rewrites
// Simplify_Add.cpp and Simplify_Div.cpp open with, condensed to the
// handful the module's tests exercise end to end. It takes the owning
// Simplifier so rules can use it as the match.Prover behind CanProve,
// the same self-reference Simplify_Min.cpp's "min(x, y) -> x if
// can_prove(x <= y)" rule makes back into the simplifier's own mutate.
func defaultRules(s match.Prover) []rewrite.Rule {
	W := match.Wild{I: x}
	Wy := match.Wild{I: y}
	Ci0 := match.WildConstInt{I: c0}
	Ci1 := match.WildConstInt{I: c1}

	trueBit := match.Fixed{E: ir.MakeConstUInt(ir.Bool1(1), 1)}

	return []rewrite.Rule{
		// x + 0 -> x
		rule("add_zero_r", match.Add(W, match.C(0)), W),
		rule("add_zero_l", match.Add(match.C(0), W), W),

		// x - 0 -> x
		rule("sub_zero_r", match.Sub(W, match.C(0)), W),

		// x - x -> 0
		rule("sub_self", match.Sub(W, W), zeroOf{A: W}),

		// min(x, x) -> x, max(x, x) -> x
		rule("min_self", match.Min(W, W), W),
		rule("max_self", match.Max(W, W), W),

		// two constants compare directly, giving CanProve below
		// something to reduce to a literal.
		rule("le_fold_const", match.LE(Ci0, Ci1), match.Fold(match.LE(Ci0, Ci1))),

		// min(x, y) -> x if x <= y is provable by recursively
		// simplifying x <= y through this same rule table.
		rule("min_le_proved", match.Min(W, Wy), W, match.CanProve(match.LE(W, Wy), s)),

		// x * 1 -> x, x * 0 -> 0
		rule("mul_one_r", match.Mul(W, match.C(1)), W),
		rule("mul_zero_r", match.Mul(W, match.C(0)), zeroOf{A: W}),

		// (x + c0) + c1 -> x + fold(c0 + c1)
		rule("add_add_const",
			match.Add(match.Add(W, Ci0), Ci1),
			match.Add(W, match.Fold(match.Add(Ci0, Ci1)))),

		// (x * k) / k -> x, k != 0
		rule("mul_div_cancel",
			match.Div(match.Mul(W, Ci0), Ci0),
			W,
			match.NE(Ci0, match.C(0))),

		// c / 0 -> indeterminate_expression, c constant
		rule("div_zero", match.Div(Ci0, match.C(0)), match.Fold(match.Div(Ci0, match.C(0)))),

		// select(true, x, y) -> x, select(false, x, y) -> y
		rule("select_true", match.Select(match.C(1), W, Wy), W),
		rule("select_false", match.Select(match.C(0), W, Wy), Wy),

		// x == x -> true
		rule("eq_self", match.EQ(W, W), trueBit),
	}
}

// Trace wraps a Simplifier so every Mutate call logs its input and its
// result, tagged with the location NewTraced was called from.
// Individual rule firings are not logged here.
type Trace struct {
	*Simplifier
	loc loc.PC
}

// NewTraced builds a traced Simplifier that records the caller's
// location for its log lines.
func NewTraced() *Trace {
	return &Trace{Simplifier: New(), loc: loc.Caller(1)}
}

func (t *Trace) Mutate(e ir.Expr) ir.Expr {
	tr := tlog.Root()
	tr.Printw("simplify start", "from", t.loc, "expr", ir.String(e))
	out := t.Simplifier.Mutate(e)
	tr.Printw("simplify done", "expr", ir.String(out))
	return out
}

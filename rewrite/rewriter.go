// Package rewrite drives match.Term patterns against a single target
// expression: try a (before, after[, predicate]) rule, and on success
// replace the stored expression with after's materialization.
package rewrite

import (
	"context"

	"github.com/slowlang/rewrite/ir"
	"github.com/slowlang/rewrite/match"
	"tlog.app/go/tlog"
)

// Rewriter holds the expression a sequence of Apply calls is tried
// against, and the result of the last successful one. It is the typed
// equivalent of the original
// Rewriter::result / instance() pair: one struct, reused across many
// rule attempts against the same original expression.
type Rewriter struct {
	Instance ir.Expr
	Result   ir.Expr

	st match.MatcherState
}

// New builds a Rewriter over expr. Until the first successful Apply,
// Result equals Instance.
func New(expr ir.Expr) *Rewriter {
	return &Rewriter{Instance: expr, Result: expr}
}

// Apply attempts one rule: does before match Instance? If a predicate
// term is supplied, does it fold to a non-zero value with no sticky
// flag set? If both hold, Result is replaced by after's materialization
// and Apply returns true. On any failure Result is left untouched.
func (r *Rewriter) Apply(ctx context.Context, before, after match.Term, pred ...match.Term) bool {
	tr := tlog.SpanFromContext(ctx)

	r.st = match.MatcherState{}

	if !before.Match(r.Instance, &r.st, 0) {
		return false
	}

	// Predicates never match against the target expression: their
	// wildcards are already bound by matching before, so a predicate
	// is evaluated purely by folding it over the state before builds up.
	for _, p := range pred {
		folder, ok := p.(match.ConstFolder)
		if !ok {
			panic("rewrite: predicate term does not implement match.ConstFolder")
		}

		v, t := folder.MakeFoldedConst(&r.st)
		if t.HasFlags() {
			return false
		}
		if !predIsTrue(v, t) {
			return false
		}
	}

	next := after.Make(&r.st)

	if tr.If("dump_rewrite") {
		tr.Printw("rule applied", "before", before, "after", after, "from", ir.String(r.Instance), "to", ir.String(next))
	}

	r.Result = next

	return true
}

// predIsTrue reports whether a folded predicate value is non-zero, the
// same code-agnostic test evaluate_predicate uses (c.u.u64 != 0):
// any nonzero bit pattern under the value's own code counts as true.
func predIsTrue(v match.Num, t ir.Type) bool {
	switch t.Code {
	case ir.UInt:
		return v.U != 0
	case ir.Int:
		return v.I != 0
	case ir.Float:
		return v.F != 0
	default:
		return false
	}
}

// Mutate runs a full pass over e, attempting every rule in rules
// bottom-up, and returns the fixed point (no rule matches any more, or
// changed once and no further rule fires). It gives simplify.Simplifier
// something the match.Prover interface can call.
func Mutate(ctx context.Context, e ir.Expr, rules []Rule) ir.Expr {
	e = mutateChildren(ctx, e, rules)

	for {
		rw := New(e)

		applied := false

		for _, ru := range rules {
			if rw.Apply(ctx, ru.Before, ru.After, ru.Pred...) {
				applied = true
				break
			}
		}

		if !applied {
			return rw.Result
		}

		e = rw.Result
	}
}

// Rule packages a single (before, after[, predicate]) triple for a
// table-driven caller such as simplify.Simplifier.
type Rule struct {
	Name   string
	Before match.Term
	After  match.Term
	Pred   []match.Term
}

func mutateChildren(ctx context.Context, e ir.Expr, rules []Rule) ir.Expr {
	switch x := e.(type) {
	case *ir.Broadcast:
		return &ir.Broadcast{T: x.T, Value: Mutate(ctx, x.Value, rules)}
	case *ir.Ramp:
		return &ir.Ramp{T: x.T, Base: Mutate(ctx, x.Base, rules), Stride: Mutate(ctx, x.Stride, rules)}
	case *ir.Cast:
		return &ir.Cast{T: x.T, Value: Mutate(ctx, x.Value, rules)}
	case *ir.Add:
		return &ir.Add{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.Sub:
		return &ir.Sub{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.Mul:
		return &ir.Mul{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.Div:
		return &ir.Div{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.Mod:
		return &ir.Mod{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.Min:
		return &ir.Min{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.Max:
		return &ir.Max{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.And:
		return &ir.And{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.Or:
		return &ir.Or{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.EQ:
		return &ir.EQ{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.NE:
		return &ir.NE{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.LT:
		return &ir.LT{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.LE:
		return &ir.LE{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.GT:
		return &ir.GT{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.GE:
		return &ir.GE{T: x.T, L: Mutate(ctx, x.L, rules), R: Mutate(ctx, x.R, rules)}
	case *ir.Not:
		return &ir.Not{T: x.T, Arg: Mutate(ctx, x.Arg, rules)}
	case *ir.Select:
		return &ir.Select{T: x.T, Cond: Mutate(ctx, x.Cond, rules), True: Mutate(ctx, x.True, rules), False: Mutate(ctx, x.False, rules)}
	case *ir.Call:
		args := make([]ir.Expr, len(x.Args))
		for i, a := range x.Args {
			args[i] = Mutate(ctx, a, rules)
		}
		return &ir.Call{T: x.T, Name: x.Name, Args: args, Disambiguator: x.Disambiguator}
	default:
		return e
	}
}

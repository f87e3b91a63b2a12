// Package varmatch implements the free-form list/map style pattern
// matcher that predates the typed match.Term family: patterns are
// ordinary ir.Expr trees, "*"-named Vars are wildcards, and a "*" typed
// Var (Bits==0, Lanes==0) matches any scalar or vector type. It exists
// alongside package match as a legacy collaborator, kept for callers
// that build patterns dynamically rather than compile them as Go values.
package varmatch

import "github.com/slowlang/rewrite/ir"

func isAnyType(t ir.Type) bool { return t.Bits == 0 && t.LaneCount() == 0 }

func typeCompatible(pat, e ir.Type) bool {
	if isAnyType(pat) {
		return true
	}
	return pat == e
}

func isWild(e ir.Expr) (*ir.Var, bool) {
	v, ok := e.(*ir.Var)
	if !ok || v.Name != "*" {
		return nil, false
	}
	return v, true
}

// ExprMatchList matches pattern against expr, collecting every wildcard
// capture positionally, left to right, into a slice — repeated
// wildcards are not unified with each other, unlike ExprMatchMap.
func ExprMatchList(pattern, expr ir.Expr) ([]ir.Expr, bool) {
	var out []ir.Expr
	if !matchList(pattern, expr, &out) {
		return nil, false
	}
	return out, true
}

func matchList(pattern, expr ir.Expr, out *[]ir.Expr) bool {
	if v, ok := isWild(pattern); ok {
		if !typeCompatible(v.T, expr.Type()) {
			return false
		}
		*out = append(*out, expr)
		return true
	}

	if pattern.Kind() != expr.Kind() {
		return false
	}
	if !typeCompatible(pattern.Type(), expr.Type()) {
		return false
	}

	if !structuralHeadMatch(pattern, expr) {
		return false
	}

	pc, ec := pattern.Children(), expr.Children()
	if len(pc) != len(ec) {
		return false
	}
	for i := range pc {
		if !matchList(pc[i], ec[i], out) {
			return false
		}
	}
	return true
}

// ExprMatchMap matches pattern against expr, binding each distinctly
// named wildcard Var to the subexpression it matched. A wildcard name
// repeated in the pattern must match structurally-equal subexpressions
// every time it recurs.
func ExprMatchMap(pattern, expr ir.Expr) (map[string]ir.Expr, bool) {
	out := map[string]ir.Expr{}
	if !matchMap(pattern, expr, out) {
		return nil, false
	}
	return out, true
}

func matchMap(pattern, expr ir.Expr, out map[string]ir.Expr) bool {
	if v, ok := pattern.(*ir.Var); ok && v.Name != "" {
		if !typeCompatible(v.T, expr.Type()) {
			return false
		}
		if bound, seen := out[v.Name]; seen {
			return ir.Equal(bound, expr)
		}
		out[v.Name] = expr
		return true
	}

	if pattern.Kind() != expr.Kind() {
		return false
	}
	if !typeCompatible(pattern.Type(), expr.Type()) {
		return false
	}

	if !structuralHeadMatch(pattern, expr) {
		return false
	}

	pc, ec := pattern.Children(), expr.Children()
	if len(pc) != len(ec) {
		return false
	}
	for i := range pc {
		if !matchMap(pc[i], ec[i], out) {
			return false
		}
	}
	return true
}

// structuralHeadMatch compares the non-child, non-type fields of two
// nodes of the same kind (literal values, call names, disambiguators).
// Children and (possibly wildcarded) type have already been checked by
// the caller.
func structuralHeadMatch(pattern, expr ir.Expr) bool {
	switch p := pattern.(type) {
	case *ir.IntImm:
		return p.Value == expr.(*ir.IntImm).Value
	case *ir.UIntImm:
		return p.Value == expr.(*ir.UIntImm).Value
	case *ir.FloatImm:
		return p.Value == expr.(*ir.FloatImm).Value
	case *ir.Var:
		return p.Name == expr.(*ir.Var).Name
	case *ir.Call:
		e := expr.(*ir.Call)
		return p.Name == e.Name && p.Disambiguator == e.Disambiguator
	default:
		return true
	}
}

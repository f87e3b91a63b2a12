package varmatch_test

import (
	"testing"

	"github.com/slowlang/rewrite/ir"
	"github.com/slowlang/rewrite/varmatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t32 = ir.Type{Code: ir.Int, Bits: 32, Lanes: 1}

func i32(v int64) *ir.IntImm { return &ir.IntImm{T: t32, Value: v} }

func star(t ir.Type) *ir.Var { return &ir.Var{T: t, Name: "*"} }

func namedVar(name string, t ir.Type) *ir.Var { return &ir.Var{T: t, Name: name} }

func TestExprMatchListRepeatedWildcardsNotUnified(t *testing.T) {
	pattern := &ir.Add{T: t32, L: star(t32), R: star(t32)}
	expr := &ir.Add{T: t32, L: i32(3), R: i32(5)}

	caps, ok := varmatch.ExprMatchList(pattern, expr)
	require.True(t, ok)
	require.Len(t, caps, 2)
	assert.Equal(t, int64(3), caps[0].(*ir.IntImm).Value)
	assert.Equal(t, int64(5), caps[1].(*ir.IntImm).Value)
}

func TestExprMatchListPositionalOrder(t *testing.T) {
	pattern := &ir.Sub{T: t32, L: star(t32), R: i32(1)}
	expr := &ir.Sub{T: t32, L: i32(9), R: i32(1)}

	caps, ok := varmatch.ExprMatchList(pattern, expr)
	require.True(t, ok)
	require.Len(t, caps, 1)
	assert.Equal(t, int64(9), caps[0].(*ir.IntImm).Value)
}

// TestExprMatchMapUnifiesRepeatedNames checks that the map form
// requires every recurrence of a name to bind structurally equal
// subexpressions: equal operands match, unequal ones fail. The contrast
// with ExprMatchList is covered by
// TestExprMatchListVsMapAsymmetryOnUnequalOperands.
func TestExprMatchMapUnifiesRepeatedNames(t *testing.T) {
	pattern := &ir.Add{T: t32, L: namedVar("x", t32), R: namedVar("x", t32)}

	matching := &ir.Add{T: t32, L: i32(3), R: i32(3)}
	out, ok := varmatch.ExprMatchMap(pattern, matching)
	require.True(t, ok)
	assert.Equal(t, int64(3), out["x"].(*ir.IntImm).Value)

	mismatching := &ir.Add{T: t32, L: i32(3), R: i32(5)}
	_, ok = varmatch.ExprMatchMap(pattern, mismatching)
	assert.False(t, ok)
}

func TestExprMatchListVsMapAsymmetryOnUnequalOperands(t *testing.T) {
	listPattern := &ir.Add{T: t32, L: star(t32), R: star(t32)}
	mapPattern := &ir.Add{T: t32, L: namedVar("*", t32), R: namedVar("*", t32)}
	expr := &ir.Add{T: t32, L: i32(3), R: i32(5)}

	_, ok := varmatch.ExprMatchList(listPattern, expr)
	assert.True(t, ok, "list form must not unify repeated wildcards")

	_, ok = varmatch.ExprMatchMap(mapPattern, expr)
	assert.False(t, ok, "map form must unify a repeated name, even \"*\"")
}

func TestExprMatchMapNamedVarSuccessAndFailure(t *testing.T) {
	pattern := &ir.Min{T: t32, L: namedVar("a", t32), R: namedVar("b", t32)}

	out, ok := varmatch.ExprMatchMap(pattern, &ir.Min{T: t32, L: i32(1), R: i32(2)})
	require.True(t, ok)
	assert.Equal(t, int64(1), out["a"].(*ir.IntImm).Value)
	assert.Equal(t, int64(2), out["b"].(*ir.IntImm).Value)

	// A Mul where Min was expected fails on Kind before any binding happens.
	_, ok = varmatch.ExprMatchMap(pattern, &ir.Mul{T: t32, L: i32(1), R: i32(2)})
	assert.False(t, ok)
}

func TestAnyTypeWildcardMatchesAnyConcreteType(t *testing.T) {
	anyT := ir.Type{}
	require.Equal(t, uint8(0), anyT.Bits)
	require.Equal(t, uint16(0), anyT.LaneCount())

	pattern := star(anyT)

	t64 := ir.Type{Code: ir.Int, Bits: 64, Lanes: 1}
	tf32 := ir.Type{Code: ir.Float, Bits: 32, Lanes: 1}

	_, ok := varmatch.ExprMatchList(pattern, i32(1))
	assert.True(t, ok)

	_, ok = varmatch.ExprMatchList(pattern, &ir.IntImm{T: t64, Value: 1})
	assert.True(t, ok)

	_, ok = varmatch.ExprMatchList(pattern, &ir.FloatImm{T: tf32, Value: 1})
	assert.True(t, ok)
}

func TestTypedWildcardRejectsMismatchedType(t *testing.T) {
	pattern := star(t32)
	t64 := ir.Type{Code: ir.Int, Bits: 64, Lanes: 1}

	_, ok := varmatch.ExprMatchList(pattern, &ir.IntImm{T: t64, Value: 1})
	assert.False(t, ok)

	_, ok = varmatch.ExprMatchList(pattern, i32(1))
	assert.True(t, ok)
}

func TestExprMatchListStructuralMismatchFails(t *testing.T) {
	pattern := &ir.Add{T: t32, L: i32(2), R: star(t32)}

	_, ok := varmatch.ExprMatchList(pattern, &ir.Add{T: t32, L: i32(3), R: i32(9)})
	assert.False(t, ok, "constant head must match exactly, not just structurally")

	_, ok = varmatch.ExprMatchList(pattern, &ir.Sub{T: t32, L: i32(2), R: i32(9)})
	assert.False(t, ok, "kind mismatch must fail before children are visited")
}

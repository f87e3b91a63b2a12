package simplify_test

import (
	"testing"

	"github.com/slowlang/rewrite/ir"
	"github.com/slowlang/rewrite/simplify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t32 = ir.Type{Code: ir.Int, Bits: 32, Lanes: 1}

func i32(v int64) *ir.IntImm { return &ir.IntImm{T: t32, Value: v} }

func TestSimplifyAddZero(t *testing.T) {
	x := &ir.Var{T: t32, Name: "x"}
	e := &ir.Add{T: t32, L: x, R: i32(0)}

	out := simplify.New().Mutate(e)
	assert.Same(t, x, out)
}

func TestSimplifyMinSelf(t *testing.T) {
	x := &ir.Var{T: t32, Name: "x"}
	e := &ir.Min{T: t32, L: x, R: x}

	out := simplify.New().Mutate(e)
	assert.Same(t, x, out)
}

func TestSimplifyMulDivCancel(t *testing.T) {
	x := &ir.Var{T: t32, Name: "x"}
	e := &ir.Div{T: t32, L: &ir.Mul{T: t32, L: x, R: i32(7)}, R: i32(7)}

	out := simplify.New().Mutate(e)
	assert.Same(t, x, out)
}

func TestSimplifyAddAddConstFold(t *testing.T) {
	x := &ir.Var{T: t32, Name: "x"}
	// (x + 2) + 3 -> x + 5
	e := &ir.Add{T: t32, L: &ir.Add{T: t32, L: x, R: i32(2)}, R: i32(3)}

	out := simplify.New().Mutate(e)
	add, ok := out.(*ir.Add)
	require.True(t, ok)
	assert.Same(t, x, add.L)

	lit, ok := add.R.(*ir.IntImm)
	require.True(t, ok)
	assert.Equal(t, int64(5), lit.Value)
}

func TestSimplifyDivZeroYieldsIndeterminate(t *testing.T) {
	e := &ir.Div{T: t32, L: i32(5), R: i32(0)}

	out := simplify.New().Mutate(e)
	call, ok := out.(*ir.Call)
	require.True(t, ok)
	assert.Equal(t, ir.IntrinIndeterminateExpr, call.Name)
}

func TestSimplifyEqSelf(t *testing.T) {
	x := &ir.Var{T: t32, Name: "x"}
	e := &ir.EQ{T: ir.Bool1(1), L: x, R: x}

	out := simplify.New().Mutate(e)
	lit, ok := out.(*ir.UIntImm)
	require.True(t, ok)
	assert.Equal(t, uint64(1), lit.Value)
}

func TestSimplifyMinConstProvedLE(t *testing.T) {
	e := &ir.Min{T: t32, L: i32(3), R: i32(5)}

	out := simplify.New().Mutate(e)
	lit, ok := out.(*ir.IntImm)
	require.True(t, ok)
	assert.Equal(t, int64(3), lit.Value)
}

func TestSimplifyMinUnrelatedVarsUnproved(t *testing.T) {
	x := &ir.Var{T: t32, Name: "x"}
	y := &ir.Var{T: t32, Name: "y"}
	e := &ir.Min{T: t32, L: x, R: y}

	out := simplify.New().Mutate(e)
	m, ok := out.(*ir.Min)
	require.True(t, ok)
	assert.Same(t, x, m.L)
	assert.Same(t, y, m.R)
}

func TestSimplifyIsIdempotentAtFixedPoint(t *testing.T) {
	x := &ir.Var{T: t32, Name: "x"}
	e := &ir.Add{T: t32, L: x, R: i32(0)}

	s := simplify.New()
	once := s.Mutate(e)
	twice := s.Mutate(once)

	assert.Same(t, once, twice)
}

package ir_test

import (
	"testing"

	"github.com/slowlang/rewrite/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i32(v int64) *ir.IntImm {
	return &ir.IntImm{T: ir.Type{Code: ir.Int, Bits: 32, Lanes: 1}, Value: v}
}

func TestEqualStructural(t *testing.T) {
	x := &ir.Var{T: ir.Type{Code: ir.Int, Bits: 32, Lanes: 1}, Name: "x"}
	a := &ir.Add{T: x.T, L: x, R: i32(1)}
	b := &ir.Add{T: x.T, L: &ir.Var{T: x.T, Name: "x"}, R: i32(1)}
	c := &ir.Add{T: x.T, L: x, R: i32(2)}

	assert.True(t, ir.Equal(a, b))
	assert.False(t, ir.Equal(a, c))
}

func TestBroadcastRoundTrip(t *testing.T) {
	t32x4 := ir.Type{Code: ir.Int, Bits: 32, Lanes: 4}
	e := ir.MakeConstInt(t32x4, 7)

	b, ok := e.(*ir.Broadcast)
	require.True(t, ok)
	assert.Equal(t, uint16(4), b.T.LaneCount())
	assert.True(t, ir.IsConst(e))
	assert.False(t, ir.IsZero(e))
}

func TestIsZeroIsOne(t *testing.T) {
	assert.True(t, ir.IsZero(i32(0)))
	assert.True(t, ir.IsOne(i32(1)))
	assert.False(t, ir.IsZero(i32(1)))
}

func TestOverflowHelpers(t *testing.T) {
	assert.True(t, ir.AddWouldOverflow(32, 1<<30, 1<<30))
	assert.False(t, ir.AddWouldOverflow(32, 1, 2))
	assert.True(t, ir.MulWouldOverflow(32, 1<<20, 1<<20))
}

func TestDivModImp(t *testing.T) {
	assert.Equal(t, int64(-3), ir.DivImp(-7, 3))
	assert.Equal(t, int64(2), ir.ModImp(-7, 3))
	assert.Equal(t, int64(2), ir.ModImp(7, -5))
}

func TestGCD(t *testing.T) {
	assert.Equal(t, int64(6), ir.GCD(24, 18))
	assert.Equal(t, int64(5), ir.GCD(-15, 20))
}

func TestSentinelsAreDistinct(t *testing.T) {
	t32 := ir.Type{Code: ir.Int, Bits: 32, Lanes: 1}
	a := ir.NewIndeterminateExpr(t32)
	b := ir.NewIndeterminateExpr(t32)

	assert.False(t, ir.Equal(a, b))
}

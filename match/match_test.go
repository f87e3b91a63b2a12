package match_test

import (
	"testing"

	"github.com/slowlang/rewrite/ir"
	"github.com/slowlang/rewrite/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i32(v int64) *ir.IntImm {
	return &ir.IntImm{T: t32, Value: v}
}

var t32 = ir.Type{Code: ir.Int, Bits: 32, Lanes: 1}

func TestWildMatchAndRepeat(t *testing.T) {
	x := &ir.Var{T: t32, Name: "x"}
	add := &ir.Add{T: t32, L: x, R: x}

	pat := match.Add(match.Wild{I: 0}, match.Wild{I: 0})

	var st match.MatcherState
	require.True(t, pat.Match(add, &st, 0))
	assert.Same(t, x, st.GetBinding(0))

	addMismatch := &ir.Add{T: t32, L: x, R: &ir.Var{T: t32, Name: "y"}}
	st = match.MatcherState{}
	assert.False(t, pat.Match(addMismatch, &st, 0))
}

func TestWildConstIntMatchAndRepeat(t *testing.T) {
	pat := match.Add(match.WildConstInt{I: 0}, match.WildConstInt{I: 0})

	var st match.MatcherState
	assert.True(t, pat.Match(&ir.Add{T: t32, L: i32(3), R: i32(3)}, &st, 0))

	st = match.MatcherState{}
	assert.False(t, pat.Match(&ir.Add{T: t32, L: i32(3), R: i32(4)}, &st, 0))
}

func TestWildConstDynamicDispatch(t *testing.T) {
	tf := ir.Type{Code: ir.Float, Bits: 32, Lanes: 1}
	lit := &ir.FloatImm{T: tf, Value: 2.5}

	var st match.MatcherState
	w := match.WildConst{I: 0}
	require.True(t, w.Match(lit, &st, 0))

	v, rt := w.MakeFoldedConst(&st)
	assert.Equal(t, ir.Float, rt.Code)
	assert.Equal(t, 2.5, v.F)
}

func TestConstMatchesLiteralValue(t *testing.T) {
	c := match.C(5)
	assert.True(t, c.Match(i32(5), &match.MatcherState{}, 0))
	assert.False(t, c.Match(i32(6), &match.MatcherState{}, 0))
}

func TestBinOpMakeWithConstSide(t *testing.T) {
	x := &ir.Var{T: t32, Name: "x"}
	pat := match.Add(match.Wild{I: 0}, match.C(3))

	var st match.MatcherState
	require.True(t, pat.Match(&ir.Add{T: t32, L: x, R: i32(3)}, &st, 0))

	out := pat.Make(&st)
	add, ok := out.(*ir.Add)
	require.True(t, ok)
	assert.Same(t, x, add.L)
	lit, ok := add.R.(*ir.IntImm)
	require.True(t, ok)
	assert.Equal(t, int64(3), lit.Value)
}

func TestBinOpFoldOverflowSetsFlag(t *testing.T) {
	pat := match.Add(match.WildConstInt{I: 0}, match.WildConstInt{I: 1})

	a := &ir.IntImm{T: t32, Value: 1 << 30}
	b := &ir.IntImm{T: t32, Value: 1 << 30}

	var st match.MatcherState
	require.True(t, pat.Match(&ir.Add{T: t32, L: a, R: b}, &st, 0))

	_, rt := pat.MakeFoldedConst(&st)
	assert.True(t, rt.HasFlags())
	assert.True(t, rt.Flags()&ir.SignedIntegerOverflow != 0)
}

func TestBinOpFoldDivByZeroSetsIndeterminate(t *testing.T) {
	pat := match.Div(match.WildConstInt{I: 0}, match.WildConstInt{I: 1})

	var st match.MatcherState
	require.True(t, pat.Match(&ir.Div{T: t32, L: i32(10), R: i32(0)}, &st, 0))

	_, rt := pat.MakeFoldedConst(&st)
	assert.True(t, rt.Flags()&ir.IndeterminateExpr != 0)
}

func TestBinOpAndShortCircuitsOnFalse(t *testing.T) {
	tu := ir.Type{Code: ir.UInt, Bits: 1, Lanes: 1}
	zero := &ir.UIntImm{T: tu, Value: 0}
	// The right side is a Var wrapped in Fixed, whose MakeFoldedConst
	// panics on a non-literal: the fold only returns if B is never
	// inspected, and its value must be exactly the left operand's fold.
	y := &ir.Var{T: tu, Name: "y"}

	pat := match.And(match.WildConst{I: 0}, match.Fixed{E: y})

	var st match.MatcherState
	require.True(t, pat.Match(&ir.And{T: tu, L: zero, R: y}, &st, 0))

	v, rt := pat.MakeFoldedConst(&st)
	assert.Equal(t, ir.UInt, rt.Code)
	assert.Equal(t, uint64(0), v.U)
}

func TestCmpOpFold(t *testing.T) {
	pat := match.LT(match.WildConstInt{I: 0}, match.WildConstInt{I: 1})

	var st match.MatcherState
	require.True(t, pat.Match(&ir.LT{T: ir.Bool1(1), L: i32(3), R: i32(5)}, &st, 0))

	v, rt := pat.MakeFoldedConst(&st)
	assert.Equal(t, ir.UInt, rt.Code)
	assert.Equal(t, uint64(1), v.U)
}

func TestNegateOpOverflowOnMinInt(t *testing.T) {
	neg := match.Neg(match.WildConstInt{I: 0})

	minVal := ir.MinSignedFor(32)
	sub := &ir.Sub{T: t32, L: &ir.IntImm{T: t32, Value: 0}, R: &ir.IntImm{T: t32, Value: minVal}}

	var st match.MatcherState
	require.True(t, neg.Match(sub, &st, 0))

	_, rt := neg.MakeFoldedConst(&st)
	assert.True(t, rt.Flags()&ir.SignedIntegerOverflow != 0)
}

func TestSelectOpThreadsBindings(t *testing.T) {
	x := &ir.Var{T: t32, Name: "x"}
	cond := &ir.LT{T: ir.Bool1(1), L: x, R: i32(0)}

	pat := match.Select(match.Wild{I: 0}, match.Wild{I: 1}, match.Wild{I: 1})
	sel := &ir.Select{T: t32, Cond: cond, True: x, False: x}

	var st match.MatcherState
	assert.True(t, pat.Match(sel, &st, 0))
}

func TestIntrinCallMatchesArity(t *testing.T) {
	x := &ir.Var{T: t32, Name: "x"}
	call := &ir.Call{T: t32, Name: "widen", Args: []ir.Expr{x}}

	pat := match.IntrinCall("widen", match.Wild{I: 0})

	var st match.MatcherState
	require.True(t, pat.Match(call, &st, 0))
	assert.Same(t, x, st.GetBinding(0))

	badArity := match.IntrinCall("widen", match.Wild{I: 0}, match.Wild{I: 1})
	assert.False(t, badArity.Match(call, &match.MatcherState{}, 0))
}

func TestGCDOpPanicsOnNarrowType(t *testing.T) {
	t16 := ir.Type{Code: ir.Int, Bits: 16, Lanes: 1}
	pat := match.GCD(match.Fixed{E: &ir.IntImm{T: t16, Value: 4}}, match.Fixed{E: &ir.IntImm{T: t16, Value: 6}})

	assert.Panics(t, func() {
		pat.MakeFoldedConst(&match.MatcherState{})
	})
}

func TestBindOpWritesConstSlot(t *testing.T) {
	b := match.Bind(2, match.Fixed{E: i32(7)})

	var st match.MatcherState
	v, rt := b.MakeFoldedConst(&st)
	assert.Equal(t, uint64(1), v.U)
	assert.Equal(t, ir.UInt, rt.Code)

	bv, bt := st.GetBoundConst(2)
	assert.Equal(t, int64(7), bv.I)
	assert.Equal(t, ir.Int, bt.Code)
}

func TestIsConstOp(t *testing.T) {
	x := &ir.Var{T: t32, Name: "x"}

	litTerm := match.Fixed{E: i32(3)}
	varTerm := match.Fixed{E: x}

	v1, _ := match.IsConst(litTerm).MakeFoldedConst(&match.MatcherState{})
	v2, _ := match.IsConst(varTerm).MakeFoldedConst(&match.MatcherState{})

	assert.Equal(t, uint64(1), v1.U)
	assert.Equal(t, uint64(0), v2.U)
}

func TestConstMatchConst(t *testing.T) {
	assert.True(t, match.C(3).MatchConst(match.C(3)))
	assert.False(t, match.C(3).MatchConst(match.C(4)))
}

func TestPrintersProduceReadableStrings(t *testing.T) {
	assert.Equal(t, "_0", match.Wild{I: 0}.String())
	assert.Equal(t, "ci1", match.WildConstInt{I: 1}.String())
	assert.Equal(t, "5", match.C(5).String())

	bin := match.Add(match.Wild{I: 0}, match.C(1))
	assert.Equal(t, "(_0 + 1)", bin.String())
}

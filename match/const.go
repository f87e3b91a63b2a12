package match

import "github.com/slowlang/rewrite/ir"

// Const matches any numeric literal (peeling a Broadcast) whose value
// equals Val under the literal's own arithmetic type. It binds nothing.
type Const struct{ Val int }

func (c Const) Binds() uint32 { return 0 }

func (c Const) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	x := e
	if b, ok := x.(*ir.Broadcast); ok {
		x = b.Value
	}
	switch v := x.(type) {
	case *ir.IntImm:
		return v.Value == int64(c.Val)
	case *ir.UIntImm:
		return v.Value == uint64(c.Val)
	case *ir.FloatImm:
		return v.Value == float64(c.Val)
	default:
		return false
	}
}

// MatchConst is the Const-vs-Const overload: it reports whether two
// Const patterns carry the same value. No other term calls it; Intrin
// matches its argument patterns against expressions with Match.
func (c Const) MatchConst(o Const) bool { return c.Val == o.Val }

// Make cannot know the target type in isolation; Const only ever appears
// as one side of a BinOp/CmpOp, which materializes it via ir.MakeConst
// against the other side's type. Calling Make directly is a programming
// error.
func (c Const) Make(st *MatcherState) ir.Expr {
	panic("match: Const.Make: Const has no type of its own; use it inside a BinOp/CmpOp")
}

func (c Const) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	panic("match: Const.MakeFoldedConst: Const has no type of its own")
}

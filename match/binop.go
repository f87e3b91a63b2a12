package match

import "github.com/slowlang/rewrite/ir"

// BinOpKind names one of the binary operators a BinOp pattern can match.
type BinOpKind uint8

const (
	OpAdd BinOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpMin
	OpMax
	OpAnd
	OpOr
)

func (op BinOpKind) nodeKind() ir.NodeKind {
	switch op {
	case OpAdd:
		return ir.KindAdd
	case OpSub:
		return ir.KindSub
	case OpMul:
		return ir.KindMul
	case OpDiv:
		return ir.KindDiv
	case OpMod:
		return ir.KindMod
	case OpMin:
		return ir.KindMin
	case OpMax:
		return ir.KindMax
	case OpAnd:
		return ir.KindAnd
	case OpOr:
		return ir.KindOr
	default:
		panic("match: unknown BinOpKind")
	}
}

func (op BinOpKind) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpMin:
		return "min"
	case OpMax:
		return "max"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	default:
		return "op?"
	}
}

// operands extracts the (left, right) children of a binary IR node.
func operands(e ir.Expr) (ir.Expr, ir.Expr) {
	switch x := e.(type) {
	case *ir.Add:
		return x.L, x.R
	case *ir.Sub:
		return x.L, x.R
	case *ir.Mul:
		return x.L, x.R
	case *ir.Div:
		return x.L, x.R
	case *ir.Mod:
		return x.L, x.R
	case *ir.Min:
		return x.L, x.R
	case *ir.Max:
		return x.L, x.R
	case *ir.And:
		return x.L, x.R
	case *ir.Or:
		return x.L, x.R
	case *ir.EQ:
		return x.L, x.R
	case *ir.NE:
		return x.L, x.R
	case *ir.LT:
		return x.L, x.R
	case *ir.LE:
		return x.L, x.R
	case *ir.GT:
		return x.L, x.R
	case *ir.GE:
		return x.L, x.R
	default:
		panic("match: operands: not a binary node")
	}
}

func buildBinOp(op BinOpKind, l, r ir.Expr) ir.Expr {
	t := l.Type()
	switch op {
	case OpAdd:
		return &ir.Add{T: t, L: l, R: r}
	case OpSub:
		return &ir.Sub{T: t, L: l, R: r}
	case OpMul:
		return &ir.Mul{T: t, L: l, R: r}
	case OpDiv:
		return &ir.Div{T: t, L: l, R: r}
	case OpMod:
		return &ir.Mod{T: t, L: l, R: r}
	case OpMin:
		return &ir.Min{T: t, L: l, R: r}
	case OpMax:
		return &ir.Max{T: t, L: l, R: r}
	case OpAnd:
		return &ir.And{T: t, L: l, R: r}
	case OpOr:
		return &ir.Or{T: t, L: l, R: r}
	default:
		panic("match: unknown BinOpKind")
	}
}

// BinOp matches one of the binary operators. A and B are matched
// strictly left-to-right: B's inspection sees the bindings A produced,
// so a hole repeated on the right forces structural/value equality with
// the left occurrence.
type BinOp struct {
	Op   BinOpKind
	A, B Term
}

func (p BinOp) Binds() uint32 { return p.A.Binds() | p.B.Binds() }

func (p BinOp) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	if e.Kind() != p.Op.nodeKind() {
		return false
	}
	l, r := operands(e)
	return p.A.Match(l, st, already) && p.B.Match(r, st, already|p.A.Binds())
}

func (p BinOp) Make(st *MatcherState) ir.Expr {
	if ac, ok := p.A.(Const); ok {
		if _, bok := p.B.(Const); !bok {
			eb := p.B.Make(st)
			ea := ir.MakeConst(eb.Type(), ac.Val)
			return buildBinOp(p.Op, ea, eb)
		}
	}
	if bc, ok := p.B.(Const); ok {
		ea := p.A.Make(st)
		eb := ir.MakeConst(ea.Type(), bc.Val)
		return buildBinOp(p.Op, ea, eb)
	}
	ea, eb := p.A.Make(st), p.B.Make(st)
	ea, eb = alignLanes(ea, eb)
	return buildBinOp(p.Op, ea, eb)
}

func (p BinOp) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	ac, aIsConst := p.A.(Const)
	bc, bIsConst := p.B.(Const)

	switch {
	case aIsConst && !bIsConst:
		vb, tb := p.B.(ConstFolder).MakeFoldedConst(st)
		return foldBin(p.Op, &tb, constNumFor(tb.Code, ac.Val), vb), tb
	case bIsConst && !aIsConst:
		va, ta := p.A.(ConstFolder).MakeFoldedConst(st)
		return foldBin(p.Op, &ta, va, constNumFor(ta.Code, bc.Val)), ta
	default:
		va, ta := p.A.(ConstFolder).MakeFoldedConst(st)
		if (p.Op == OpAnd && ta.Code == ir.UInt && va.U == 0) ||
			(p.Op == OpOr && ta.Code == ir.UInt && va.U == 1) {
			return va, ta // short-circuit: B is not inspected
		}
		vb, tb := p.B.(ConstFolder).MakeFoldedConst(st)
		rt := ta
		rt.Lanes = ta.Lanes | tb.Lanes
		return foldBin(p.Op, &rt, va, vb), rt
	}
}

func constNumFor(code ir.Code, v int) Num {
	switch code {
	case ir.Int:
		return NumFromInt(int64(v))
	case ir.UInt:
		return NumFromUint(uint64(v))
	case ir.Float:
		return NumFromFloat(float64(v))
	default:
		panic("match: constNumFor: unknown code")
	}
}

// foldBin evaluates op over a, b at 64 bits per t's code, mutating t's
// sticky flag bits in place exactly as the original's
// constant_fold_bin_op<Op> specializations do via the lanes field.
func foldBin(op BinOpKind, t *ir.Type, a, b Num) Num {
	switch t.Code {
	case ir.Int:
		return NumFromInt(foldBinInt(op, t, a.I, b.I))
	case ir.UInt:
		return NumFromUint(foldBinUInt(op, t, a.U, b.U))
	case ir.Float:
		return NumFromFloat(foldBinFloat(op, a.F, b.F))
	default:
		panic("match: foldBin: unknown code")
	}
}

func foldBinInt(op BinOpKind, t *ir.Type, a, b int64) int64 {
	bits := int(t.Bits)
	switch op {
	case OpAdd:
		if bits >= 32 && ir.AddWouldOverflow(bits, a, b) {
			*t = t.WithFlags(ir.SignedIntegerOverflow)
		}
		return wrapSigned(a+b, bits)
	case OpSub:
		if bits >= 32 && ir.SubWouldOverflow(bits, a, b) {
			*t = t.WithFlags(ir.SignedIntegerOverflow)
		}
		return wrapSigned(a-b, bits)
	case OpMul:
		if bits >= 32 && ir.MulWouldOverflow(bits, a, b) {
			*t = t.WithFlags(ir.SignedIntegerOverflow)
		}
		return wrapSigned(a*b, bits)
	case OpDiv:
		if b == 0 {
			*t = t.WithFlags(ir.IndeterminateExpr)
			return 0
		}
		return ir.DivImp(a, b)
	case OpMod:
		if b == 0 {
			*t = t.WithFlags(ir.IndeterminateExpr)
			return 0
		}
		return ir.ModImp(a, b)
	case OpMin:
		if a < b {
			return a
		}
		return b
	case OpMax:
		if a > b {
			return a
		}
		return b
	case OpAnd, OpOr:
		// Well-typed rules never fold And/Or over signed operands; see
		// DESIGN.md's resolution of the corresponding open question.
		return 0
	default:
		panic("match: foldBinInt: unknown op")
	}
}

func wrapSigned(v int64, bits int) int64 {
	if bits >= 64 {
		return v
	}
	dead := uint(64 - bits)
	return (v << dead) >> dead
}

func foldBinUInt(op BinOpKind, t *ir.Type, a, b uint64) uint64 {
	bits := uint(t.Bits)
	mask := ^uint64(0)
	if bits < 64 {
		mask = mask >> (64 - bits)
	}
	switch op {
	case OpAdd:
		return (a + b) & mask
	case OpSub:
		return (a - b) & mask
	case OpMul:
		return (a * b) & mask
	case OpDiv:
		if b == 0 {
			*t = t.WithFlags(ir.IndeterminateExpr)
			return 0
		}
		return a / b
	case OpMod:
		if b == 0 {
			*t = t.WithFlags(ir.IndeterminateExpr)
			return 0
		}
		return a % b
	case OpMin:
		if a < b {
			return a
		}
		return b
	case OpMax:
		if a > b {
			return a
		}
		return b
	case OpAnd:
		return a & b
	case OpOr:
		return a | b
	default:
		panic("match: foldBinUInt: unknown op")
	}
}

func foldBinFloat(op BinOpKind, a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	case OpMod:
		return ir.ModImpFloat(a, b)
	case OpMin:
		if a < b {
			return a
		}
		return b
	case OpMax:
		if a > b {
			return a
		}
		return b
	case OpAnd, OpOr:
		return 0
	default:
		panic("match: foldBinFloat: unknown op")
	}
}

// Add, Sub, Mul, Div, Mod, Min, Max, And and Or build a BinOp pattern
// for the corresponding operator.
func Add(a, b Term) BinOp { return BinOp{Op: OpAdd, A: a, B: b} }
func Sub(a, b Term) BinOp { return BinOp{Op: OpSub, A: a, B: b} }
func Mul(a, b Term) BinOp { return BinOp{Op: OpMul, A: a, B: b} }
func Div(a, b Term) BinOp { return BinOp{Op: OpDiv, A: a, B: b} }
func Mod(a, b Term) BinOp { return BinOp{Op: OpMod, A: a, B: b} }
func Min(a, b Term) BinOp { return BinOp{Op: OpMin, A: a, B: b} }
func Max(a, b Term) BinOp { return BinOp{Op: OpMax, A: a, B: b} }
func And(a, b Term) BinOp { return BinOp{Op: OpAnd, A: a, B: b} }
func Or(a, b Term) BinOp  { return BinOp{Op: OpOr, A: a, B: b} }

// C is shorthand for a literal-constant sub-pattern, Const{Val: v}.
func C(v int) Const { return Const{Val: v} }

package match

import "github.com/slowlang/rewrite/ir"

// CmpOpKind names one of the comparison operators a CmpOp pattern can
// match.
type CmpOpKind uint8

const (
	OpEQ CmpOpKind = iota
	OpNE
	OpLT
	OpLE
	OpGT
	OpGE
)

func (op CmpOpKind) nodeKind() ir.NodeKind {
	switch op {
	case OpEQ:
		return ir.KindEQ
	case OpNE:
		return ir.KindNE
	case OpLT:
		return ir.KindLT
	case OpLE:
		return ir.KindLE
	case OpGT:
		return ir.KindGT
	case OpGE:
		return ir.KindGE
	default:
		panic("match: unknown CmpOpKind")
	}
}

func (op CmpOpKind) String() string {
	switch op {
	case OpEQ:
		return "=="
	case OpNE:
		return "!="
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	case OpGT:
		return ">"
	case OpGE:
		return ">="
	default:
		return "cmp?"
	}
}

func buildCmpOp(op CmpOpKind, l, r ir.Expr) ir.Expr {
	t := ir.Bool1(l.Type().LaneCount())
	switch op {
	case OpEQ:
		return &ir.EQ{T: t, L: l, R: r}
	case OpNE:
		return &ir.NE{T: t, L: l, R: r}
	case OpLT:
		return &ir.LT{T: t, L: l, R: r}
	case OpLE:
		return &ir.LE{T: t, L: l, R: r}
	case OpGT:
		return &ir.GT{T: t, L: l, R: r}
	case OpGE:
		return &ir.GE{T: t, L: l, R: r}
	default:
		panic("match: unknown CmpOpKind")
	}
}

// CmpOp matches one of the comparison operators, with the same
// left-to-right binding discipline as BinOp. A folded comparison's
// result type is always uint, 1 bit, lanes = lhs.lanes | rhs.lanes.
type CmpOp struct {
	Op   CmpOpKind
	A, B Term
}

func (p CmpOp) Binds() uint32 { return p.A.Binds() | p.B.Binds() }

func (p CmpOp) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	if e.Kind() != p.Op.nodeKind() {
		return false
	}
	l, r := operands(e)
	return p.A.Match(l, st, already) && p.B.Match(r, st, already|p.A.Binds())
}

func (p CmpOp) Make(st *MatcherState) ir.Expr {
	if ac, ok := p.A.(Const); ok {
		if _, bok := p.B.(Const); !bok {
			eb := p.B.Make(st)
			ea := ir.MakeConst(eb.Type(), ac.Val)
			return buildCmpOp(p.Op, ea, eb)
		}
	}
	if bc, ok := p.B.(Const); ok {
		ea := p.A.Make(st)
		eb := ir.MakeConst(ea.Type(), bc.Val)
		return buildCmpOp(p.Op, ea, eb)
	}
	ea, eb := p.A.Make(st), p.B.Make(st)
	ea, eb = alignLanes(ea, eb)
	return buildCmpOp(p.Op, ea, eb)
}

func (p CmpOp) MakeFoldedConst(st *MatcherState) (Num, ir.Type) {
	ac, aIsConst := p.A.(Const)
	bc, bIsConst := p.B.(Const)

	switch {
	case aIsConst && !bIsConst:
		vb, tb := p.B.(ConstFolder).MakeFoldedConst(st)
		res := foldCmp(p.Op, tb.Code, constNumFor(tb.Code, ac.Val), vb)
		return res, ir.Bool1(tb.Lanes)
	case bIsConst && !aIsConst:
		va, ta := p.A.(ConstFolder).MakeFoldedConst(st)
		res := foldCmp(p.Op, ta.Code, va, constNumFor(ta.Code, bc.Val))
		return res, ir.Bool1(ta.Lanes)
	default:
		va, ta := p.A.(ConstFolder).MakeFoldedConst(st)
		vb, tb := p.B.(ConstFolder).MakeFoldedConst(st)
		res := foldCmp(p.Op, ta.Code, va, vb)
		return res, ir.Bool1(ta.Lanes | tb.Lanes)
	}
}

func foldCmp(op CmpOpKind, code ir.Code, a, b Num) Num {
	var r bool
	switch code {
	case ir.Int:
		r = cmpOrdered(op, a.I, b.I)
	case ir.UInt:
		r = cmpOrdered(op, a.U, b.U)
	case ir.Float:
		r = cmpOrdered(op, a.F, b.F)
	default:
		panic("match: foldCmp: unknown code")
	}
	if r {
		return NumFromUint(1)
	}
	return NumFromUint(0)
}

type ordered interface{ ~int64 | ~uint64 | ~float64 }

func cmpOrdered[T ordered](op CmpOpKind, a, b T) bool {
	switch op {
	case OpEQ:
		return a == b
	case OpNE:
		return a != b
	case OpLT:
		return a < b
	case OpLE:
		return a <= b
	case OpGT:
		return a > b
	case OpGE:
		return a >= b
	default:
		panic("match: cmpOrdered: unknown op")
	}
}

// EQ, NE, LT, LE, GT and GE build a CmpOp pattern for the corresponding
// comparison operator.
func EQ(a, b Term) CmpOp { return CmpOp{Op: OpEQ, A: a, B: b} }
func NE(a, b Term) CmpOp { return CmpOp{Op: OpNE, A: a, B: b} }
func LT(a, b Term) CmpOp { return CmpOp{Op: OpLT, A: a, B: b} }
func LE(a, b Term) CmpOp { return CmpOp{Op: OpLE, A: a, B: b} }
func GT(a, b Term) CmpOp { return CmpOp{Op: OpGT, A: a, B: b} }
func GE(a, b Term) CmpOp { return CmpOp{Op: OpGE, A: a, B: b} }

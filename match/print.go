package match

import "fmt"

// String implementations for every pattern term. Used in debug traces
// (the tlog.Printw call site in rewrite) and by cmd/rewrite's show
// subcommand — never on the match path.

func (w Wild) String() string           { return fmt.Sprintf("_%d", w.I) }
func (w WildConst) String() string      { return fmt.Sprintf("c%d", w.I) }
func (w WildConstInt) String() string   { return fmt.Sprintf("ci%d", w.I) }
func (w WildConstUInt) String() string  { return fmt.Sprintf("cu%d", w.I) }
func (w WildConstFloat) String() string { return fmt.Sprintf("cf%d", w.I) }
func (c Const) String() string          { return fmt.Sprintf("%d", c.Val) }

func (p BinOp) String() string {
	switch p.Op {
	case OpMin, OpMax:
		return fmt.Sprintf("%s(%v, %v)", p.Op, p.A, p.B)
	default:
		return fmt.Sprintf("(%v %s %v)", p.A, p.Op, p.B)
	}
}

func (p CmpOp) String() string {
	return fmt.Sprintf("(%v %s %v)", p.A, p.Op, p.B)
}

func (p NotOp) String() string    { return fmt.Sprintf("!%v", p.A) }
func (p NegateOp) String() string { return fmt.Sprintf("-%v", p.A) }

func (p SelectOp) String() string {
	return fmt.Sprintf("select(%v, %v, %v)", p.C, p.T, p.F)
}

func (p BroadcastOp) String() string {
	if p.Lanes == AnyLanes {
		return fmt.Sprintf("bcast(%v, *)", p.A)
	}
	return fmt.Sprintf("bcast(%v, %d)", p.A, p.Lanes)
}

func (p RampOp) String() string {
	return fmt.Sprintf("ramp(%v, %v)", p.Base, p.Stride)
}

func (p CastOp) String() string { return fmt.Sprintf("cast(%s, %v)", p.To, p.A) }

func (p Intrin) String() string {
	s := p.Name + "("
	for i, a := range p.Args {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%v", a)
	}
	return s + ")"
}

func (p FoldOp) String() string      { return fmt.Sprintf("fold(%v)", p.A) }
func (p IsConstOp) String() string   { return fmt.Sprintf("is_const(%v)", p.A) }
func (p CanProveOp) String() string  { return fmt.Sprintf("can_prove(%v)", p.A) }
func (p GCDOp) String() string       { return fmt.Sprintf("gcd(%v, %v)", p.A, p.B) }
func (p BindOp) String() string      { return fmt.Sprintf("bind(%d, %v)", p.I, p.A) }

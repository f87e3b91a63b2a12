package match

import "github.com/slowlang/rewrite/ir"

// SelectOp matches a Select node; C, T and F are matched in that order,
// each seeing the bindings its predecessors produced.
type SelectOp struct{ C, T, F Term }

func (p SelectOp) Binds() uint32 { return p.C.Binds() | p.T.Binds() | p.F.Binds() }

func (p SelectOp) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	s, ok := e.(*ir.Select)
	if !ok {
		return false
	}
	if !p.C.Match(s.Cond, st, already) {
		return false
	}
	already |= p.C.Binds()
	if !p.T.Match(s.True, st, already) {
		return false
	}
	already |= p.T.Binds()
	return p.F.Match(s.False, st, already)
}

func (p SelectOp) Make(st *MatcherState) ir.Expr {
	c, t, f := p.C.Make(st), p.T.Make(st), p.F.Make(st)
	t, f = alignLanes(t, f)
	return &ir.Select{T: t.Type(), Cond: c, True: t, False: f}
}

// Select builds a SelectOp pattern.
func Select(c, t, f Term) SelectOp { return SelectOp{C: c, T: t, F: f} }

// AnyLanes is BroadcastOp/RampOp's "match any lane count" sentinel.
const AnyLanes = -1

// BroadcastOp matches a Broadcast whose value matches A, optionally
// requiring an exact lane count (AnyLanes to accept any).
type BroadcastOp struct {
	A     Term
	Lanes int
}

func (p BroadcastOp) Binds() uint32 { return p.A.Binds() }

func (p BroadcastOp) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	b, ok := e.(*ir.Broadcast)
	if !ok {
		return false
	}
	if p.Lanes != AnyLanes && int(b.T.LaneCount()) != p.Lanes {
		return false
	}
	return p.A.Match(b.Value, st, already)
}

func (p BroadcastOp) Make(st *MatcherState) ir.Expr {
	v := p.A.Make(st)
	lanes := p.Lanes
	if lanes == AnyLanes {
		lanes = 1
	}
	return &ir.Broadcast{T: v.Type().WithLanes(uint16(lanes)), Value: v}
}

// Broadcast builds a BroadcastOp pattern; pass AnyLanes to accept any
// lane count.
func Broadcast(a Term, lanes int) BroadcastOp { return BroadcastOp{A: a, Lanes: lanes} }

// RampOp matches a Ramp(base, stride), threading bindings left-to-right.
type RampOp struct {
	Base, Stride Term
	Lanes        int
}

func (p RampOp) Binds() uint32 { return p.Base.Binds() | p.Stride.Binds() }

func (p RampOp) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	r, ok := e.(*ir.Ramp)
	if !ok {
		return false
	}
	if p.Lanes != AnyLanes && int(r.T.LaneCount()) != p.Lanes {
		return false
	}
	if !p.Base.Match(r.Base, st, already) {
		return false
	}
	return p.Stride.Match(r.Stride, st, already|p.Base.Binds())
}

func (p RampOp) Make(st *MatcherState) ir.Expr {
	base, stride := p.Base.Make(st), p.Stride.Make(st)
	lanes := p.Lanes
	if lanes == AnyLanes {
		lanes = 1
	}
	return &ir.Ramp{T: base.Type().WithLanes(uint16(lanes)), Base: base, Stride: stride}
}

// Ramp builds a RampOp pattern; pass AnyLanes to accept any lane count.
func Ramp(base, stride Term, lanes int) RampOp { return RampOp{Base: base, Stride: stride, Lanes: lanes} }

// CastOp matches a Cast to exactly type To whose operand matches A. The
// source (pre-cast) type is not constrained.
type CastOp struct {
	To ir.Type
	A  Term
}

func (p CastOp) Binds() uint32 { return p.A.Binds() }

func (p CastOp) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	c, ok := e.(*ir.Cast)
	if !ok || c.T != p.To {
		return false
	}
	return p.A.Match(c.Value, st, already)
}

func (p CastOp) Make(st *MatcherState) ir.Expr {
	return &ir.Cast{T: p.To, Value: p.A.Make(st)}
}

// Cast builds a CastOp pattern.
func Cast(to ir.Type, a Term) CastOp { return CastOp{To: to, A: a} }

// Intrin matches a Call to the named intrinsic with exactly len(Args)
// arguments, each matched left-to-right against the corresponding
// pattern in Args.
type Intrin struct {
	Name string
	Args []Term
}

func (p Intrin) Binds() uint32 {
	var m uint32
	for _, a := range p.Args {
		m |= a.Binds()
	}
	return m
}

func (p Intrin) Match(e ir.Expr, st *MatcherState, already uint32) bool {
	c, ok := e.(*ir.Call)
	if !ok || !c.IsIntrinsic(p.Name) || len(c.Args) != len(p.Args) {
		return false
	}
	for i, a := range p.Args {
		if !a.Match(c.Args[i], st, already) {
			return false
		}
		already |= a.Binds()
	}
	return true
}

func (p Intrin) Make(st *MatcherState) ir.Expr {
	args := make([]ir.Expr, len(p.Args))
	var t ir.Type
	for i, a := range p.Args {
		args[i] = a.Make(st)
		if i == 0 {
			t = args[i].Type()
		}
	}
	return &ir.Call{T: t, Name: p.Name, Args: args}
}

// IntrinCall builds an Intrin pattern for a call to name with the given
// argument patterns.
func IntrinCall(name string, args ...Term) Intrin { return Intrin{Name: name, Args: args} }

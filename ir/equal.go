package ir

// Equal is a fast version of expression equality that assumes a
// well-typed, non-nil expression tree. It early-outs on pointer identity
// (safe because nodes are immutable and commonly shared), then compares
// type and node kind before falling into a per-kind structural
// comparison.
func Equal(a, b Expr) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type() != b.Type() || a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case *IntImm:
		return x.Value == b.(*IntImm).Value
	case *UIntImm:
		return x.Value == b.(*UIntImm).Value
	case *FloatImm:
		return x.Value == b.(*FloatImm).Value
	case *Var:
		return x.Name == b.(*Var).Name
	case *Broadcast:
		y := b.(*Broadcast)
		return Equal(x.Value, y.Value)
	case *Ramp:
		y := b.(*Ramp)
		return Equal(x.Base, y.Base) && Equal(x.Stride, y.Stride)
	case *Cast:
		y := b.(*Cast)
		return Equal(x.Value, y.Value)
	case *Add:
		y := b.(*Add)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *Sub:
		y := b.(*Sub)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *Mul:
		y := b.(*Mul)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *Div:
		y := b.(*Div)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *Mod:
		y := b.(*Mod)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *Min:
		y := b.(*Min)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *Max:
		y := b.(*Max)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *And:
		y := b.(*And)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *Or:
		y := b.(*Or)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *EQ:
		y := b.(*EQ)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *NE:
		y := b.(*NE)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *LT:
		y := b.(*LT)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *LE:
		y := b.(*LE)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *GT:
		y := b.(*GT)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *GE:
		y := b.(*GE)
		return Equal(x.L, y.L) && Equal(x.R, y.R)
	case *Not:
		y := b.(*Not)
		return Equal(x.Arg, y.Arg)
	case *Select:
		y := b.(*Select)
		return Equal(x.Cond, y.Cond) && Equal(x.True, y.True) && Equal(x.False, y.False)
	case *Call:
		y := b.(*Call)
		if x.Name != y.Name || x.Disambiguator != y.Disambiguator || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

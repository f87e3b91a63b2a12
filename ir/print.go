package ir

import "fmt"

// String renders an Expr tree in a small infix syntax, used for debug
// logging (tlog trace lines) and the CLI's apply output; it is never
// consulted on the match path.
func String(e Expr) string {
	switch x := e.(type) {
	case *IntImm:
		return fmt.Sprintf("%d", x.Value)
	case *UIntImm:
		return fmt.Sprintf("%du", x.Value)
	case *FloatImm:
		return fmt.Sprintf("%gf", x.Value)
	case *Var:
		return x.Name
	case *Broadcast:
		return fmt.Sprintf("bcast(%s, %d)", String(x.Value), x.T.LaneCount())
	case *Ramp:
		return fmt.Sprintf("ramp(%s, %s, %d)", String(x.Base), String(x.Stride), x.T.LaneCount())
	case *Cast:
		return fmt.Sprintf("cast(%s, %s)", x.T, String(x.Value))
	case *Add:
		return fmt.Sprintf("(%s + %s)", String(x.L), String(x.R))
	case *Sub:
		return fmt.Sprintf("(%s - %s)", String(x.L), String(x.R))
	case *Mul:
		return fmt.Sprintf("(%s * %s)", String(x.L), String(x.R))
	case *Div:
		return fmt.Sprintf("(%s / %s)", String(x.L), String(x.R))
	case *Mod:
		return fmt.Sprintf("(%s %% %s)", String(x.L), String(x.R))
	case *Min:
		return fmt.Sprintf("min(%s, %s)", String(x.L), String(x.R))
	case *Max:
		return fmt.Sprintf("max(%s, %s)", String(x.L), String(x.R))
	case *And:
		return fmt.Sprintf("(%s && %s)", String(x.L), String(x.R))
	case *Or:
		return fmt.Sprintf("(%s || %s)", String(x.L), String(x.R))
	case *EQ:
		return fmt.Sprintf("(%s == %s)", String(x.L), String(x.R))
	case *NE:
		return fmt.Sprintf("(%s != %s)", String(x.L), String(x.R))
	case *LT:
		return fmt.Sprintf("(%s < %s)", String(x.L), String(x.R))
	case *LE:
		return fmt.Sprintf("(%s <= %s)", String(x.L), String(x.R))
	case *GT:
		return fmt.Sprintf("(%s > %s)", String(x.L), String(x.R))
	case *GE:
		return fmt.Sprintf("(%s >= %s)", String(x.L), String(x.R))
	case *Not:
		return fmt.Sprintf("!%s", String(x.Arg))
	case *Select:
		return fmt.Sprintf("select(%s, %s, %s)", String(x.Cond), String(x.True), String(x.False))
	case *Call:
		s := x.Name + "("
		for i, a := range x.Args {
			if i > 0 {
				s += ", "
			}
			s += String(a)
		}
		return s + ")"
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

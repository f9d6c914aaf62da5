package ast

import "github.com/azw413/cparser/token"

// evalConstInt performs best-effort integer constant folding for the
// contexts spec.md actually needs one: array sizes (§4.6), bitfield
// widths (§3), case labels (§4.9), and null-pointer-constant
// recognition (§4.8). It handles the literal and operator shapes those
// contexts produce; anything else reports not-constant instead of
// guessing, since this is a fold, not a full evaluator for side-
// effecting expressions.
func evalConstInt(e Expression) (int64, bool) {
	switch v := e.(type) {
	case *IntLiteral:
		return int64(v.Value), true
	case *ParenExpr:
		return evalConstInt(v.Inner)
	case *CastExpr:
		return evalConstInt(v.Operand)
	case *UnaryExpr:
		x, ok := evalConstInt(v.Operand)
		if !ok {
			return 0, false
		}
		switch v.Op {
		case token.MINUS:
			return -x, true
		case token.PLUS:
			return x, true
		case token.TILDE:
			return ^x, true
		case token.NOT:
			if x == 0 {
				return 1, true
			}
			return 0, true
		default:
			return 0, false
		}
	case *BinaryExpr:
		l, lok := evalConstInt(v.Left)
		r, rok := evalConstInt(v.Right)
		if !lok || !rok {
			return 0, false
		}
		switch v.Op {
		case token.PLUS:
			return l + r, true
		case token.MINUS:
			return l - r, true
		case token.STAR:
			return l * r, true
		case token.SLASH:
			if r == 0 {
				return 0, false
			}
			return l / r, true
		case token.PERCENT:
			if r == 0 {
				return 0, false
			}
			return l % r, true
		case token.SHL:
			return l << uint(r), true
		case token.SHR:
			return l >> uint(r), true
		case token.AMP:
			return l & r, true
		case token.PIPE:
			return l | r, true
		case token.CARET:
			return l ^ r, true
		default:
			return 0, false
		}
	case *ConditionalExpr:
		c, ok := evalConstInt(v.Cond)
		if !ok {
			return 0, false
		}
		if c != 0 {
			if v.Then != nil {
				return evalConstInt(v.Then)
			}
			return c, true
		}
		return evalConstInt(v.Else)
	default:
		return 0, false
	}
}

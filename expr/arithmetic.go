package expr

import (
	"time"

	"github.com/woodsbury/decimal128"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
)

func durationFromMillis(millis int64) time.Duration {
	return time.Duration(millis) * time.Millisecond
}

// buildArithmetic implements arithmetic operators: per-pair promotion
// over the numeric lattice, integer/decimal division by zero is an
// error, double division by zero yields the IEEE result, and either
// operand being the empty sequence yields the empty sequence (JSONiq
// arithmetic never errors on missing operands the way comparisons can
// be forced to).
func buildArithmetic(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	op, err := requiredStringAttr(node, "op")
	if err != nil {
		return nil, err
	}
	children := node.Children()
	if len(children) != 2 {
		return nil, jerrors.NewDynamicError(node.Pos(), "arithmetic node requires exactly 2 children, got %d", len(children))
	}
	left, err := Build(children[0], env)
	if err != nil {
		return nil, err
	}
	right, err := Build(children[1], env)
	if err != nil {
		return nil, err
	}
	if node.Mode() == ast.ModeRDD {
		return buildArithmeticHybrid(node, op, left, right), nil
	}
	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		lv, lOK, err := singletonOf(left, ctx, node.Pos())
		if err != nil {
			return nil, err
		}
		rv, rOK, err := singletonOf(right, ctx, node.Pos())
		if err != nil {
			return nil, err
		}
		if !lOK || !rOK {
			return nil, nil
		}
		result, err := applyArithmetic(node.Pos(), op, lv, rv)
		if err != nil {
			return nil, err
		}
		return []item.Item{result}, nil
	}), nil
}

func applyArithmetic(pos ast.Position, op string, lv, rv item.Item) (item.Item, error) {
	switch {
	case item.IsNumeric(lv) && item.IsNumeric(rv):
		return applyNumericOp(pos, op, lv, rv)
	case lv.Kind() == item.KindDuration && rv.Kind() == item.KindDuration:
		return applyDurationOp(pos, op, lv.(item.Duration), rv.(item.Duration))
	case item.IsTemporal(lv) && rv.Kind() == item.KindDuration:
		return applyTemporalDurationOp(pos, op, lv.(item.Temporal), rv.(item.Duration), false)
	case lv.Kind() == item.KindDuration && item.IsTemporal(rv) && op == "+":
		return applyTemporalDurationOp(pos, op, rv.(item.Temporal), lv.(item.Duration), false)
	case item.IsTemporal(lv) && item.IsTemporal(rv) && op == "-":
		return subtractTemporals(pos, lv.(item.Temporal), rv.(item.Temporal))
	default:
		return nil, jerrors.NewTypeError(pos, "arithmetic %q not defined for %s and %s", op, lv.Kind(), rv.Kind())
	}
}

func applyNumericOp(pos ast.Position, op string, lv, rv item.Item) (item.Item, error) {
	// Promote to the least upper bound of the numeric lattice for the
	// pair, per the integer <= decimal <= double ordering.
	rank := func(it item.Item) int {
		switch it.Kind() {
		case item.KindInteger:
			return 0
		case item.KindDecimal:
			return 1
		default:
			return 2
		}
	}
	lr, rr := rank(lv), rank(rv)
	target := lr
	if rr > target {
		target = rr
	}

	switch target {
	case 0:
		li := lv.(item.Integer).Value
		ri := rv.(item.Integer).Value
		switch op {
		case "+":
			return item.NewInteger(li + ri), nil
		case "-":
			return item.NewInteger(li - ri), nil
		case "*":
			return item.NewInteger(li * ri), nil
		case "idiv":
			if ri == 0 {
				return nil, jerrors.NewDynamicError(pos, "integer division by zero")
			}
			return item.NewInteger(li / ri), nil
		case "mod":
			if ri == 0 {
				return nil, jerrors.NewDynamicError(pos, "integer modulo by zero")
			}
			return item.NewInteger(li % ri), nil
		case "div":
			if ri == 0 {
				return nil, jerrors.NewDynamicError(pos, "decimal division by zero")
			}
			ld := decimal128.FromInt64(li)
			rd := decimal128.FromInt64(ri)
			return item.NewDecimal(ld.Quo(rd)), nil
		default:
			return nil, jerrors.NewInvalidArgument(pos, "unknown arithmetic operator %q", op)
		}
	case 1:
		ld := toDecimal(lv)
		rd := toDecimal(rv)
		switch op {
		case "+":
			return item.NewDecimal(ld.Add(rd)), nil
		case "-":
			return item.NewDecimal(ld.Sub(rd)), nil
		case "*":
			return item.NewDecimal(ld.Mul(rd)), nil
		case "div":
			if rd.Sign() == 0 {
				return nil, jerrors.NewDynamicError(pos, "decimal division by zero")
			}
			return item.NewDecimal(ld.Quo(rd)), nil
		case "idiv", "mod":
			return nil, jerrors.NewInvalidArgument(pos, "operator %q requires integer operands", op)
		default:
			return nil, jerrors.NewInvalidArgument(pos, "unknown arithmetic operator %q", op)
		}
	default:
		lf, _ := item.PromoteToDouble(lv)
		rf, _ := item.PromoteToDouble(rv)
		switch op {
		case "+":
			return item.NewDouble(lf + rf), nil
		case "-":
			return item.NewDouble(lf - rf), nil
		case "*":
			return item.NewDouble(lf * rf), nil
		case "div":
			return item.NewDouble(lf / rf), nil // IEEE result, including +-Inf/NaN
		case "idiv", "mod":
			return nil, jerrors.NewInvalidArgument(pos, "operator %q requires integer operands", op)
		default:
			return nil, jerrors.NewInvalidArgument(pos, "unknown arithmetic operator %q", op)
		}
	}
}

func toDecimal(it item.Item) decimal128.Decimal {
	switch v := it.(type) {
	case item.Integer:
		return decimal128.FromInt64(v.Value)
	case item.Decimal:
		return v.Value
	default:
		return decimal128.Decimal{}
	}
}

func applyDurationOp(pos ast.Position, op string, a, b item.Duration) (item.Item, error) {
	if a.Category != b.Category {
		return nil, jerrors.NewTypeError(pos, "cannot combine incompatible duration families")
	}
	switch op {
	case "+":
		return item.Duration{Category: a.Category, Months: a.Months + b.Months, Millis: a.Millis + b.Millis}, nil
	case "-":
		return item.Duration{Category: a.Category, Months: a.Months - b.Months, Millis: a.Millis - b.Millis}, nil
	default:
		return nil, jerrors.NewInvalidArgument(pos, "operator %q not defined between durations", op)
	}
}

func applyTemporalDurationOp(pos ast.Position, op string, t item.Temporal, d item.Duration, negate bool) (item.Item, error) {
	millis := d.Millis
	if d.Category == item.DurationYearMonth {
		return nil, jerrors.NewInvalidArgument(pos, "adding a year-month duration to a temporal value is not supported")
	}
	if op == "-" {
		millis = -millis
	}
	shifted := t.Value.Add(durationFromMillis(millis))
	return item.Temporal{Precision: t.Precision, Value: shifted, HasZone: t.HasZone}, nil
}

func subtractTemporals(pos ast.Position, a, b item.Temporal) (item.Item, error) {
	if a.Precision != b.Precision {
		return nil, jerrors.NewTypeError(pos, "cannot subtract %s from %s", b.Kind(), a.Kind())
	}
	millis := a.Value.Sub(b.Value).Milliseconds()
	return item.NewDayTimeDuration(millis), nil
}

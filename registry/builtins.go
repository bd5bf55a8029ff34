package registry

import (
	"strings"

	"github.com/dataflowql/jsoniq-core/expr"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// registerBuiltins installs every built-in function this module
// ships. Each is registered under every arity it's meaningfully called
// with — variadic built-ins are modeled as several fixed-arity
// entries rather than one variadic entry.
func registerBuiltins(r *FunctionRegistry) {
	r.Register("lower-case", 1, unaryStringFn("lower-case", strings.ToLower))
	r.Register("upper-case", 1, unaryStringFn("upper-case", strings.ToUpper))
	r.Register("string-length", 1, stringLengthFn)
	r.Register("concat", 2, concatFn)
	r.Register("substring", 2, substringFn(false))
	r.Register("substring", 3, substringFn(true))
	r.Register("not", 1, notFn)
	r.Register("empty", 1, emptyFn)
	r.Register("exists", 1, existsFn)
	r.Register("count", 1, countFn)
	r.Register("sum", 1, aggregateFn("sum"))
	r.Register("avg", 1, aggregateFn("avg"))
	r.Register("min", 1, aggregateFn("min"))
	r.Register("max", 1, aggregateFn("max"))
	r.Register("abs", 1, absFn)
	r.Register("round", 1, roundFn)
	r.Register("keys", 1, keysFn)
	r.Register("distinct-values", 1, distinctValuesFn)
	r.Register("string", 1, stringCastFn)
	r.Register("boolean", 1, booleanCastFn)
}

func unaryStringFn(name string, transform func(string) string) expr.Factory {
	return func(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
		if len(args) != 1 {
			return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "%s expects 1 argument, got %d", name, len(args))
		}
		return newComputed(func(c interface{}) ([]item.Item, error) {
			v, ok, err := singleton(args[0], c)
			if err != nil {
				return nil, err
			}
			if !ok {
				// lower-case(()) -> "", and symmetrically for upper-case.
				return []item.Item{item.NewString("")}, nil
			}
			s, ok := v.(item.String)
			if !ok {
				return nil, jerrors.NewTypeError(jerrors.Position{}, "%s requires a string argument, got %s", name, v.Kind())
			}
			return []item.Item{item.NewString(transform(s.Value))}, nil
		}), nil
	}
}

func stringLengthFn(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
	if len(args) != 1 {
		return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "string-length expects 1 argument, got %d", len(args))
	}
	return newComputed(func(c interface{}) ([]item.Item, error) {
		v, ok, err := singleton(args[0], c)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []item.Item{item.NewInteger(0)}, nil
		}
		s, ok := v.(item.String)
		if !ok {
			return nil, jerrors.NewTypeError(jerrors.Position{}, "string-length requires a string argument, got %s", v.Kind())
		}
		return []item.Item{item.NewInteger(int64(len([]rune(s.Value))))}, nil
	}), nil
}

func concatFn(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
	if len(args) != 2 {
		return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "concat expects 2 arguments, got %d", len(args))
	}
	return newComputed(func(c interface{}) ([]item.Item, error) {
		lv, _, err := singleton(args[0], c)
		if err != nil {
			return nil, err
		}
		rv, _, err := singleton(args[1], c)
		if err != nil {
			return nil, err
		}
		ls, ok := lv.(item.String)
		if !ok {
			return nil, jerrors.NewTypeError(jerrors.Position{}, "concat requires string arguments, got %s", lv.Kind())
		}
		rs, ok := rv.(item.String)
		if !ok {
			return nil, jerrors.NewTypeError(jerrors.Position{}, "concat requires string arguments, got %s", rv.Kind())
		}
		return []item.Item{item.NewString(ls.Value + rs.Value)}, nil
	}), nil
}

func substringFn(hasLength bool) expr.Factory {
	return func(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
		wantArity := 2
		if hasLength {
			wantArity = 3
		}
		if len(args) != wantArity {
			return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "substring expects %d arguments, got %d", wantArity, len(args))
		}
		return newComputed(func(c interface{}) ([]item.Item, error) {
			sv, _, err := singleton(args[0], c)
			if err != nil {
				return nil, err
			}
			s, ok := sv.(item.String)
			if !ok {
				return nil, jerrors.NewTypeError(jerrors.Position{}, "substring requires a string as its first argument, got %s", sv.Kind())
			}
			startV, _, err := singleton(args[1], c)
			if err != nil {
				return nil, err
			}
			start, ok := startV.(item.Integer)
			if !ok {
				return nil, jerrors.NewTypeError(jerrors.Position{}, "substring requires an integer start position, got %s", startV.Kind())
			}
			runes := []rune(s.Value)
			from := int(start.Value) - 1
			to := len(runes)
			if hasLength {
				lenV, _, err := singleton(args[2], c)
				if err != nil {
					return nil, err
				}
				length, ok := lenV.(item.Integer)
				if !ok {
					return nil, jerrors.NewTypeError(jerrors.Position{}, "substring requires an integer length, got %s", lenV.Kind())
				}
				to = from + int(length.Value)
			}
			if from < 0 {
				from = 0
			}
			if to > len(runes) {
				to = len(runes)
			}
			if from >= to {
				return []item.Item{item.NewString("")}, nil
			}
			return []item.Item{item.NewString(string(runes[from:to]))}, nil
		}), nil
	}
}

func notFn(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
	if len(args) != 1 {
		return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "not expects 1 argument, got %d", len(args))
	}
	return newComputed(func(c interface{}) ([]item.Item, error) {
		seq, err := fullSequence(args[0], c)
		if err != nil {
			return nil, err
		}
		ebv, err := seq.EffectiveBooleanValue()
		if err != nil {
			return nil, err
		}
		return []item.Item{item.NewBoolean(!ebv)}, nil
	}), nil
}

func emptyFn(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
	if len(args) != 1 {
		return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "empty expects 1 argument, got %d", len(args))
	}
	return newComputed(func(c interface{}) ([]item.Item, error) {
		seq, err := fullSequence(args[0], c)
		if err != nil {
			return nil, err
		}
		return []item.Item{item.NewBoolean(len(seq) == 0)}, nil
	}), nil
}

func existsFn(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
	if len(args) != 1 {
		return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "exists expects 1 argument, got %d", len(args))
	}
	return newComputed(func(c interface{}) ([]item.Item, error) {
		seq, err := fullSequence(args[0], c)
		if err != nil {
			return nil, err
		}
		return []item.Item{item.NewBoolean(len(seq) > 0)}, nil
	}), nil
}

func countFn(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
	if len(args) != 1 {
		return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "count expects 1 argument, got %d", len(args))
	}
	return newComputed(func(c interface{}) ([]item.Item, error) {
		seq, err := fullSequence(args[0], c)
		if err != nil {
			return nil, err
		}
		return []item.Item{item.NewInteger(int64(len(seq)))}, nil
	}), nil
}

// aggregateFn implements sum/avg/min/max over a sequence of numeric
// items. min/max compare through item.Compare, promoting along the
// numeric lattice; sum/avg widen every item to float64 and return a
// double, matching janus-datalog's own preference for double-precision
// aggregation over exact decimal accumulation in reporting paths.
func aggregateFn(kind string) expr.Factory {
	return func(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
		if len(args) != 1 {
			return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "%s expects 1 argument, got %d", kind, len(args))
		}
		return newComputed(func(c interface{}) ([]item.Item, error) {
			seq, err := fullSequence(args[0], c)
			if err != nil {
				return nil, err
			}
			if len(seq) == 0 {
				if kind == "sum" {
					return []item.Item{item.NewInteger(0)}, nil
				}
				return nil, nil
			}
			if kind == "min" || kind == "max" {
				best := seq[0]
				for _, v := range seq[1:] {
					cmp, err := item.Compare(best, v)
					if err != nil {
						return nil, jerrors.Wrap(jerrors.UnexpectedType, jerrors.Position{}, err, "%s requires comparable items", kind)
					}
					if (kind == "min" && cmp > 0) || (kind == "max" && cmp < 0) {
						best = v
					}
				}
				return []item.Item{best}, nil
			}
			var total float64
			for _, v := range seq {
				f, err := numericFloat(v)
				if err != nil {
					return nil, jerrors.Wrap(jerrors.UnexpectedType, jerrors.Position{}, err, "%s requires numeric items", kind)
				}
				total += f
			}
			if kind == "avg" {
				total /= float64(len(seq))
			}
			return []item.Item{item.NewDouble(total)}, nil
		}), nil
	}
}

func numericFloat(v item.Item) (float64, error) {
	switch n := v.(type) {
	case item.Integer:
		return float64(n.Value), nil
	case item.Double:
		return n.Value, nil
	case item.Decimal:
		return n.Value.Float64(), nil
	default:
		return 0, jerrors.NewTypeError(jerrors.Position{}, "expected a numeric item, got %s", v.Kind())
	}
}

func absFn(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
	if len(args) != 1 {
		return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "abs expects 1 argument, got %d", len(args))
	}
	return newComputed(func(c interface{}) ([]item.Item, error) {
		v, ok, err := singleton(args[0], c)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		switch n := v.(type) {
		case item.Integer:
			if n.Value < 0 {
				return []item.Item{item.NewInteger(-n.Value)}, nil
			}
			return []item.Item{n}, nil
		case item.Double:
			if n.Value < 0 {
				return []item.Item{item.NewDouble(-n.Value)}, nil
			}
			return []item.Item{n}, nil
		default:
			return nil, jerrors.NewTypeError(jerrors.Position{}, "abs requires a numeric argument, got %s", v.Kind())
		}
	}), nil
}

func roundFn(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
	if len(args) != 1 {
		return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "round expects 1 argument, got %d", len(args))
	}
	return newComputed(func(c interface{}) ([]item.Item, error) {
		v, ok, err := singleton(args[0], c)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		switch n := v.(type) {
		case item.Integer:
			return []item.Item{n}, nil
		case item.Double:
			return []item.Item{item.NewInteger(int64(n.Value + 0.5))}, nil
		default:
			return nil, jerrors.NewTypeError(jerrors.Position{}, "round requires a numeric argument, got %s", v.Kind())
		}
	}), nil
}

func keysFn(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
	if len(args) != 1 {
		return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "keys expects 1 argument, got %d", len(args))
	}
	return newComputed(func(c interface{}) ([]item.Item, error) {
		v, ok, err := singleton(args[0], c)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		obj, ok := v.(item.Object)
		if !ok {
			return nil, jerrors.NewTypeError(jerrors.Position{}, "keys requires an object argument, got %s", v.Kind())
		}
		out := make([]item.Item, len(obj.Keys()))
		for i, k := range obj.Keys() {
			out[i] = item.NewString(k)
		}
		return out, nil
	}), nil
}

func distinctValuesFn(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
	if len(args) != 1 {
		return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "distinct-values expects 1 argument, got %d", len(args))
	}
	return newComputed(func(c interface{}) ([]item.Item, error) {
		seq, err := fullSequence(args[0], c)
		if err != nil {
			return nil, err
		}
		var out []item.Item
		for _, v := range seq {
			dup := false
			for _, kept := range out {
				eq, err := item.Equal(kept, v)
				if err == nil && eq {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, v)
			}
		}
		return out, nil
	}), nil
}

func stringCastFn(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
	if len(args) != 1 {
		return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "string expects 1 argument, got %d", len(args))
	}
	return newComputed(func(c interface{}) ([]item.Item, error) {
		v, ok, err := singleton(args[0], c)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []item.Item{item.NewString("")}, nil
		}
		return []item.Item{item.NewString(v.String())}, nil
	}), nil
}

func booleanCastFn(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
	if len(args) != 1 {
		return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "boolean expects 1 argument, got %d", len(args))
	}
	return newComputed(func(c interface{}) ([]item.Item, error) {
		seq, err := fullSequence(args[0], c)
		if err != nil {
			return nil, err
		}
		ebv, err := seq.EffectiveBooleanValue()
		if err != nil {
			return nil, err
		}
		return []item.Item{item.NewBoolean(ebv)}, nil
	}), nil
}

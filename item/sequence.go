package item

import "github.com/dataflowql/jsoniq-core/jerrors"

// Sequence is a flat ordered list of items. It is never itself an
// Item — JSONiq sequences do not nest. Consumers that need laziness
// use the iterator package's RuntimeIterator instead of Sequence;
// Sequence is the materialized form used for bindings, array/object
// construction, and small intermediate results.
type Sequence []Item

// EffectiveBooleanValue computes the JSONiq effective boolean value of
// a sequence:
//   - empty sequence -> false
//   - a single boolean -> the boolean itself
//   - a single numeric -> true iff nonzero and not NaN
//   - a single string -> true iff nonempty
//   - any other single item (array/object/null/temporal/binary/
//     function) -> true
//   - any sequence with more than one item -> error, unless every
//     item is... (JSONiq only special-cases node sequences, which this
//     core has no concept of, so any multi-item sequence is an error)
func (s Sequence) EffectiveBooleanValue() (bool, error) {
	if len(s) == 0 {
		return false, nil
	}
	if len(s) > 1 {
		return false, jerrors.NewDynamicError(jerrors.Position{}, "effective boolean value requires a singleton sequence, got %d items", len(s))
	}
	return singleItemEBV(s[0])
}

func singleItemEBV(it Item) (bool, error) {
	switch v := it.(type) {
	case Boolean:
		return v.Value, nil
	case Integer:
		return v.Value != 0, nil
	case Double:
		return v.Value != 0 && v.Value == v.Value, nil // v==v excludes NaN
	case Decimal:
		return v.Value.Sign() != 0, nil
	case String:
		return len(v.Value) > 0, nil
	default:
		return true, nil
	}
}

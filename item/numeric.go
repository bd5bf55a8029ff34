package item

import (
	"strconv"

	"github.com/woodsbury/decimal128"
)

// compareNumeric compares two numeric items after promoting both to
// the least upper bound of the promotion lattice integer <= decimal
// <= double, returning -1, 0 or 1. This mirrors
// datalog/compare.go's compareNumeric/compareFloat dispatch, extended
// with the decimal rung the Datalog value algebra never needed.
func compareNumeric(a, b Item) int {
	switch av := a.(type) {
	case Integer:
		switch bv := b.(type) {
		case Integer:
			return cmpInt64(av.Value, bv.Value)
		case Decimal:
			return decimal128.FromInt64(av.Value).Cmp(bv.Value)
		case Double:
			return cmpFloat64(int64ToFloat64(av.Value), bv.Value)
		}
	case Decimal:
		switch bv := b.(type) {
		case Integer:
			return av.Value.Cmp(decimal128.FromInt64(bv.Value))
		case Decimal:
			return av.Value.Cmp(bv.Value)
		case Double:
			return cmpFloat64(av.Value.Float64(), bv.Value)
		}
	case Double:
		switch bv := b.(type) {
		case Integer:
			return cmpFloat64(av.Value, int64ToFloat64(bv.Value))
		case Decimal:
			return cmpFloat64(av.Value, bv.Value.Float64())
		case Double:
			return cmpFloat64(av.Value, bv.Value)
		}
	}
	return 0
}

func int64ToFloat64(v int64) float64 { return float64(v) }

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ParseIntegerOrDecimal attempts to parse as a machine integer first,
// falling back to Decimal only on overflow (never on lexical length).
func ParseIntegerOrDecimal(lexical string) (Item, error) {
	if v, err := strconv.ParseInt(lexical, 10, 64); err == nil {
		return NewInteger(v), nil
	}
	d, err := decimal128.Parse(lexical)
	if err != nil {
		return nil, err
	}
	return NewDecimal(d), nil
}

// PromoteToDouble converts any numeric item to its double value.
func PromoteToDouble(it Item) (float64, bool) {
	switch v := it.(type) {
	case Integer:
		return int64ToFloat64(v.Value), true
	case Decimal:
		return v.Value.Float64(), true
	case Double:
		return v.Value, true
	default:
		return 0, false
	}
}

package flwor

import (
	"sort"

	"github.com/woodsbury/decimal128"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/expr"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// orderKeySpec is one "by" key's static configuration: its value
// expression plus its ascending/descending and empty-placement
// modifiers, each carried on the key node's own attributes.
type orderKeySpec struct {
	expr       ast.Node
	descending bool
	emptyOrder item.EmptyOrder
}

// orderByClause implements ordering over a FLWOR tuple stream. Two
// algorithms back it, chosen once at Open like any other hybrid
// iterator: when upstream is DataFrame-backed and every key is a
// plain variable reference (a column the backend already knows
// about), ordering is pushed down through runDataFrame's type-
// inference + key-materialization passes and distributed.DataFrame's
// own OrderBy; otherwise fill drains every upstream tuple, computes
// each one's composite SortKey locally, and stable-sorts.
type orderByClause struct {
	Base
	keys     []orderKeySpec
	env      expr.Env
	upstream TupleIterator

	sorted []Tuple
	idx    int
	closed bool

	// set once Open has run in DataFrame mode, so Next/HasNext/Close
	// know the result came from runDataFrame instead of fill.
	dfMode   bool
	resultDF distributed.DataFrame
}

// BuildOrderBy constructs an order-by clause. node's children are key
// nodes, each with a single value-expression child and "descending"/
// "emptyLast" bool attributes (both optional, default false meaning
// ascending / empty-sorts-least).
func BuildOrderBy(node ast.Node, env expr.Env, upstream TupleIterator) (TupleIterator, error) {
	children := node.Children()
	if len(children) == 0 {
		return nil, jerrors.NewDynamicError(node.Pos(), "order by clause requires at least 1 key")
	}
	keys := make([]orderKeySpec, len(children))
	for i, c := range children {
		keyChildren := c.Children()
		if len(keyChildren) != 1 {
			return nil, jerrors.NewDynamicError(c.Pos(), "order by key requires exactly 1 value child")
		}
		descending, _ := attrBool(c, "descending")
		emptyLast, _ := attrBool(c, "emptyLast")
		order := item.EmptyLeast
		if emptyLast {
			order = item.EmptyGreatest
		}
		keys[i] = orderKeySpec{expr: keyChildren[0], descending: descending, emptyOrder: order}
	}
	return &orderByClause{
		Base: Base{
			BoundVars:    upstream.GetVariablesBoundInCurrentFLWORExpression(),
			Dependencies: upstream.GetVariableDependencies(),
			Projection:   upstream.GetProjection(),
		},
		keys:     keys,
		env:      env,
		upstream: upstream,
	}, nil
}

// columnKeys returns, for every key, the variable name it orders by —
// and false if any key is a richer expression than a plain variable
// reference, the signal that this clause must fall back to local
// evaluation instead of pushing the sort onto a DataFrame.
func (o *orderByClause) columnKeys() ([]string, bool) {
	cols := make([]string, len(o.keys))
	for i, k := range o.keys {
		if k.expr.Kind() != ast.KindVarRef {
			return nil, false
		}
		name, ok := attrString(k.expr, "name")
		if !ok {
			return nil, false
		}
		cols[i] = name
	}
	return cols, true
}

func (o *orderByClause) Open(ctx *runtimectx.Context) error {
	if err := o.upstream.Open(ctx); err != nil {
		return err
	}
	if o.upstream.IsDataFrame() {
		if cols, ok := o.columnKeys(); ok {
			df, err := o.upstream.GetDataFrame()
			if err == nil {
				return o.runDataFrame(df, cols)
			}
		}
	}
	return o.fill(ctx)
}

func (o *orderByClause) fill(ctx *runtimectx.Context) error {
	type entry struct {
		tup  Tuple
		keys []item.SortKey
	}
	var entries []entry
	for {
		has, err := o.upstream.HasNext()
		if err != nil {
			o.upstream.Close()
			return err
		}
		if !has {
			break
		}
		tup, err := o.upstream.Next()
		if err != nil {
			o.upstream.Close()
			return err
		}
		keys := make([]item.SortKey, len(o.keys))
		for i, k := range o.keys {
			it, err := expr.Build(k.expr, o.env)
			if err != nil {
				o.upstream.Close()
				return err
			}
			evalCtx := tup.ToContext(ctx)
			if err := it.Open(evalCtx); err != nil {
				o.upstream.Close()
				return err
			}
			seq, err := iterator.Drain(it)
			if err != nil {
				o.upstream.Close()
				return err
			}
			var v item.Item
			if len(seq) == 1 {
				v = seq[0]
			} else if len(seq) > 1 {
				o.upstream.Close()
				return jerrors.NewDynamicError(jerrors.Position{}, "order by key must evaluate to at most one item, got %d", len(seq))
			}
			keys[i] = item.SortKey{Value: v, EmptyOrder: k.emptyOrder, Descending: k.descending}
		}
		entries = append(entries, entry{tup: tup, keys: keys})
	}
	// Every upstream tuple has now been drained; the child is closed
	// immediately rather than deferred to this clause's own Close.
	if err := o.upstream.Close(); err != nil {
		return err
	}
	o.closed = true
	var sortErr error
	sort.SliceStable(entries, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		for k := range entries[i].keys {
			c, err := item.CompareKeys(entries[i].keys[k], entries[j].keys[k])
			if err != nil {
				sortErr = err
				return false
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	if sortErr != nil {
		return sortErr
	}
	o.sorted = make([]Tuple, len(entries))
	for i, e := range entries {
		o.sorted[i] = e.tup
	}
	o.idx = 0
	return nil
}

// runDataFrame implements the distributed ordering algorithm: a
// type-inference pass determines each key column's dominant kind
// across every row (inferColumnType), a key-materialization pass
// appends one hidden, uniformly-typed column per key
// (materializeOrderingColumn via distributed.OrderingColumnFunc),
// distributed.DataFrame.OrderBy performs the sort over those hidden
// columns, and they are projected away again before the result is
// drained into this clause's output tuples — the same observable
// ordering fill would produce, with the sort itself pushed onto df's
// own backend instead of pulled through this process item by item.
func (o *orderByClause) runDataFrame(df distributed.DataFrame, cols []string) (err error) {
	defer func() {
		o.closed = true
		if cerr := o.upstream.Close(); err == nil {
			err = cerr
		}
	}()
	rows, err := df.Rows()
	if err != nil {
		return err
	}
	hiddenCols := make([]string, len(cols))
	for i, col := range cols {
		profile, ierr := inferColumnType(rows, col)
		if ierr != nil {
			return ierr
		}
		hidden := "__orderby_key_" + col + "__"
		hiddenCols[i] = hidden
		mk, rerr := df.RegisterUDF(hidden, materializeOrderingColumn(col, profile))
		if rerr != nil {
			return rerr
		}
		df = mk
	}
	sorted, err := OrderByDataFrame(df, hiddenCols, descendingFlags(o.keys), emptyLastFlags(o.keys))
	if err != nil {
		return err
	}
	allCols := sorted.Columns()
	projected, err := sorted.Select(allCols[:len(allCols)-len(hiddenCols)]...)
	if err != nil {
		return err
	}
	sortedRows, err := projected.Rows()
	if err != nil {
		return err
	}
	o.dfMode = true
	o.resultDF = projected
	o.sorted = make([]Tuple, len(sortedRows))
	for i, r := range sortedRows {
		tup := make(Tuple, len(r))
		for name, v := range r {
			tup[name] = item.Sequence{v}
		}
		o.sorted[i] = tup
	}
	o.idx = 0
	return nil
}

func descendingFlags(keys []orderKeySpec) []bool {
	out := make([]bool, len(keys))
	for i, k := range keys {
		out[i] = k.descending
	}
	return out
}

func emptyLastFlags(keys []orderKeySpec) []bool {
	out := make([]bool, len(keys))
	for i, k := range keys {
		out[i] = k.emptyOrder == item.EmptyGreatest
	}
	return out
}

// inferColumnType lattice-reduces every present, non-null value in
// column col across rows down to a single TypeProfile: the numeric
// rungs (integer/decimal/double) promote to their least upper bound,
// and any other kind must agree across every row or the column is not
// orderable as a single typed key.
func inferColumnType(rows []distributed.Row, col string) (distributed.TypeProfile, error) {
	profile := distributed.TypeProfile{Column: col}
	seen := false
	for _, r := range rows {
		v, ok := r[col]
		if !ok || v.Kind() == item.KindNull {
			continue
		}
		if !seen {
			profile.Type = v.Kind()
			seen = true
			continue
		}
		if item.IsNumeric(v) && isNumericKind(profile.Type) {
			if rankOfKind(v.Kind()) > rankOfKind(profile.Type) {
				profile.Type = v.Kind()
			}
			continue
		}
		if v.Kind() != profile.Type {
			return profile, jerrors.NewUnexpectedType(jerrors.Position{}, "order by column %q mixes incomparable types %s and %s", col, profile.Type, v.Kind())
		}
	}
	if !seen {
		profile.Type = item.KindNull
	}
	return profile, nil
}

func isNumericKind(k item.Kind) bool {
	return k == item.KindInteger || k == item.KindDecimal || k == item.KindDouble
}

func rankOfKind(k item.Kind) int {
	switch k {
	case item.KindInteger:
		return 0
	case item.KindDecimal:
		return 1
	default:
		return 2
	}
}

// materializeOrderingColumn is the key-materialization pass's
// per-column OrderingColumnFunc: it reads the source column and
// promotes it to profile's resolved kind, so every row's hidden
// ordering column is uniformly typed no matter what the source column
// mixed numerically.
func materializeOrderingColumn(col string, profile distributed.TypeProfile) func(distributed.Row) (item.Item, error) {
	return func(r distributed.Row) (item.Item, error) {
		v, ok := r[col]
		if !ok || v.Kind() == item.KindNull {
			return item.NullValue, nil
		}
		if !isNumericKind(profile.Type) || profile.Type == v.Kind() {
			return v, nil
		}
		switch profile.Type {
		case item.KindDecimal:
			if iv, ok := v.(item.Integer); ok {
				return item.NewDecimal(decimal128.FromInt64(iv.Value)), nil
			}
		case item.KindDouble:
			if f, ok := item.PromoteToDouble(v); ok {
				return item.NewDouble(f), nil
			}
		}
		return v, nil
	}
}

func (o *orderByClause) HasNext() (bool, error) { return o.idx < len(o.sorted), nil }

func (o *orderByClause) Next() (Tuple, error) {
	if o.idx >= len(o.sorted) {
		return nil, jerrors.NewIteratorFlow("Next called with no tuple available")
	}
	t := o.sorted[o.idx]
	o.idx++
	return t, nil
}

func (o *orderByClause) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	return o.upstream.Close()
}

func (o *orderByClause) Reset() error {
	o.idx = 0
	return nil
}

func (o *orderByClause) IsDataFrame() bool { return o.dfMode }

func (o *orderByClause) GetDataFrame() (distributed.DataFrame, error) {
	if !o.dfMode {
		return nil, jerrors.NewIteratorFlow("GetDataFrame called but this order by clause did not run in DataFrame mode")
	}
	return o.resultDF, nil
}

// OrderByDataFrame sorts df by the given hidden key columns, the step
// distributed ordering delegates to once type-inference and
// key-materialization have produced uniformly-typed, hidden ordering
// columns to sort by.
func OrderByDataFrame(df distributed.DataFrame, keyColumns []string, descending []bool, emptyLast []bool) (distributed.DataFrame, error) {
	if len(keyColumns) != len(descending) || len(keyColumns) != len(emptyLast) {
		return nil, jerrors.NewInvalidArgument(jerrors.Position{}, "OrderByDataFrame: keyColumns/descending/emptyLast length mismatch")
	}
	specs := make([]distributed.OrderSpec, len(keyColumns))
	for i, col := range keyColumns {
		specs[i] = distributed.OrderSpec{Column: col, Descending: descending[i], EmptyLast: emptyLast[i]}
	}
	return df.OrderBy(specs...)
}

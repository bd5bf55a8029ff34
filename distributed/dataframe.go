package distributed

import (
	"fmt"
	"sort"

	"github.com/dataflowql/jsoniq-core/item"
)

// LocalDataFrame is the single-process DataFrame stand-in, backing
// the distributed OrderBy algorithm when no cluster SQL engine
// is wired. Columns are kept as parallel row maps rather than true
// column-oriented storage, since a local stand-in has no columnar
// engine to exploit — a real backend's DataFrame implementation would
// push Select/OrderBy down to its own columnar execution instead.
type LocalDataFrame struct {
	columns []string
	rows    []Row
	views   map[string]DataFrame
}

// NewLocalDataFrame builds a DataFrame from rows sharing the given
// column set.
func NewLocalDataFrame(columns []string, rows []Row) *LocalDataFrame {
	return &LocalDataFrame{columns: append([]string(nil), columns...), rows: rows, views: make(map[string]DataFrame)}
}

func (f *LocalDataFrame) Columns() []string { return append([]string(nil), f.columns...) }

func (f *LocalDataFrame) Rows() ([]Row, error) { return f.rows, nil }

func (f *LocalDataFrame) Select(columns ...string) (DataFrame, error) {
	out := make([]Row, len(f.rows))
	for i, r := range f.rows {
		nr := make(Row, len(columns))
		for _, c := range columns {
			v, ok := r[c]
			if !ok {
				return nil, fmt.Errorf("distributed: column %q not present in frame", c)
			}
			nr[c] = v
		}
		out[i] = nr
	}
	return NewLocalDataFrame(columns, out), nil
}

// orderByIndexColumn is the hidden input-index column OrderBy appends
// to every row before sorting, so ties resolve to input order even
// under a backend (a real distributed shuffle) that doesn't guarantee
// sort.SliceStable's local stability. It is stripped again before the
// result is returned.
const orderByIndexColumn = "__orderby_input_index__"

// OrderBy sorts rows by specs in order. An input-index column is
// appended as an implicit final tiebreak key so ordering stays stable
// even once rows no longer arrive pre-sorted by input position (the
// guarantee sort.SliceStable alone only provides for a single
// in-process slice).
func (f *LocalDataFrame) OrderBy(specs ...OrderSpec) (DataFrame, error) {
	rows := make([]Row, len(f.rows))
	for i, r := range f.rows {
		nr := make(Row, len(r)+1)
		for k, v := range r {
			nr[k] = v
		}
		nr[orderByIndexColumn] = item.NewInteger(int64(i))
		rows[i] = nr
	}
	indexedSpecs := append(append([]OrderSpec(nil), specs...), OrderSpec{Column: orderByIndexColumn})
	var sortErr error
	sort.SliceStable(rows, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		less, err := rowLess(rows[i], rows[j], indexedSpecs)
		if err != nil {
			sortErr = err
			return false
		}
		return less
	})
	if sortErr != nil {
		return nil, sortErr
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		nr := make(Row, len(r)-1)
		for k, v := range r {
			if k == orderByIndexColumn {
				continue
			}
			nr[k] = v
		}
		out[i] = nr
	}
	return NewLocalDataFrame(f.columns, out), nil
}

func rowLess(a, b Row, specs []OrderSpec) (bool, error) {
	for _, spec := range specs {
		av, aOK := a[spec.Column]
		bv, bOK := b[spec.Column]
		key := func(v item.Item, present bool) item.SortKey {
			if !present {
				return item.SortKey{Value: nil, EmptyOrder: emptyOrderOf(spec), Descending: spec.Descending}
			}
			return item.SortKey{Value: v, EmptyOrder: emptyOrderOf(spec), Descending: spec.Descending}
		}
		c, err := item.CompareKeys(key(av, aOK), key(bv, bOK))
		if err != nil {
			return false, err
		}
		if c != 0 {
			return c < 0, nil
		}
	}
	return false, nil
}

func emptyOrderOf(spec OrderSpec) item.EmptyOrder {
	if spec.EmptyLast {
		return item.EmptyGreatest
	}
	return item.EmptyLeast
}

func (f *LocalDataFrame) RegisterUDF(name string, fn func(Row) (item.Item, error)) (DataFrame, error) {
	out := make([]Row, len(f.rows))
	for i, r := range f.rows {
		v, err := fn(r)
		if err != nil {
			return nil, err
		}
		nr := make(Row, len(r)+1)
		for k, val := range r {
			nr[k] = val
		}
		nr[name] = v
		out[i] = nr
	}
	return NewLocalDataFrame(append(append([]string(nil), f.columns...), name), out), nil
}

func (f *LocalDataFrame) CreateTempView(name string) error {
	f.views[name] = f
	return nil
}

// LocalSession is the Session stand-in resolving temp-view names
// registered via CreateTempView; it has no real SQL parser, and only
// supports the trivial "SELECT * FROM <view>" form, enough to exercise
// the Session contract in tests without pulling in a SQL engine this
// core has no other use for.
type LocalSession struct {
	views map[string]DataFrame
}

func NewLocalSession() *LocalSession {
	return &LocalSession{views: make(map[string]DataFrame)}
}

func (s *LocalSession) Register(name string, df DataFrame) {
	s.views[name] = df
}

func (s *LocalSession) SQL(query string) (DataFrame, error) {
	name, ok := parseSelectStarFrom(query)
	if !ok {
		return nil, fmt.Errorf("distributed: LocalSession only supports \"SELECT * FROM <view>\", got %q", query)
	}
	df, ok := s.views[name]
	if !ok {
		return nil, fmt.Errorf("distributed: no such view %q", name)
	}
	return df, nil
}

func parseSelectStarFrom(query string) (string, bool) {
	const prefix = "SELECT * FROM "
	if len(query) <= len(prefix) || query[:len(prefix)] != prefix {
		return "", false
	}
	return query[len(prefix):], true
}

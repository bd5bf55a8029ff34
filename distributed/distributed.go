// Package distributed abstracts the "partitioned item collection" and
// "DataFrame" backends a hybrid iterator may dispatch work to.
// This core ships one concrete backend, LocalCollection,
// a single-process stand-in used by tests and whenever no real
// distributed engine is wired; production deployments implement
// PartitionedCollection/DataFrame against their own cluster compute
// layer and bind collections to variables with
// runtimectx.CollectionBinding.
package distributed

import "github.com/dataflowql/jsoniq-core/item"

// PartitionedCollection is an opaque, possibly-partitioned collection
// of items a hybrid iterator can operate on without pulling every item
// through a local loop.
type PartitionedCollection interface {
	Map(fn func(item.Item) (item.Item, error)) (PartitionedCollection, error)
	Filter(fn func(item.Item) (bool, error)) (PartitionedCollection, error)
	Collect() ([]item.Item, error)
	Count() (int64, error)
	// Cache persists this collection's materialization so repeated
	// downstream reads don't recompute it.
	Cache() PartitionedCollection
	Take(n int) ([]item.Item, error)
}

// Row is one record of a DataFrame: named columns of items. A real
// backend stores rows column-oriented and typed; this core's local
// stand-in keeps rows as plain maps since it has no columnar storage
// to exploit.
type Row map[string]item.Item

// OrderSpec is one ordering column passed to DataFrame.OrderBy,
// mirroring an (expression, direction, emptyOrder) triple.
type OrderSpec struct {
	Column     string
	Descending bool
	EmptyLast  bool
}

// TypeProfile is the per-column result of the type-inference pass:
// the concrete JSONiq type name an ordering column resolved to
// after lattice-reduction across all rows.
type TypeProfile struct {
	Column string
	Type   item.Kind
}

// OrderingColumnFunc is the "createOrderingColumns" callback: given
// a row, it returns the key material for one ordering
// column — a present/null/empty marker and, when present, the typed
// value.
type OrderingColumnFunc func(Row) (present bool, value item.Item, err error)

// DataFrame is a named, typed-column collection supporting
// projection, SQL-like ordering, and UDF registration, standing in for
// a Spark-DataFrame-shaped distributed backend.
type DataFrame interface {
	Columns() []string
	Rows() ([]Row, error)

	// Select projects to the named columns, dropping the rest (used
	// to drop the materialized ordering-key column afterward).
	Select(columns ...string) (DataFrame, error)

	// OrderBy sorts by the given specs. Implementations should
	// document whether ties are stable; LocalDataFrame's is (it appends
	// an input-index tiebreak column and uses sort.SliceStable).
	OrderBy(specs ...OrderSpec) (DataFrame, error)

	// RegisterUDF adds a named column computed by fn over each row,
	// mirroring the type-inference and key-materialization callbacks
	// the distributed OrderBy algorithm uses.
	RegisterUDF(name string, fn func(Row) (item.Item, error)) (DataFrame, error)

	// CreateTempView gives this frame a name a SQL string passed to
	// Session.SQL can reference.
	CreateTempView(name string) error
}

// Session is the SQL-string entry point a distributed backend exposes
// alongside its programmatic DataFrame API.
type Session interface {
	SQL(query string) (DataFrame, error)
}

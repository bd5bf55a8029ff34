package flwor

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// dataFrameSource adapts an already-materialized distributed.DataFrame
// into a TupleIterator: the bridge that lets a FLWOR pipeline stay on
// a distributed backend instead of draining into per-tuple pulls the
// moment the backend hands control back to this core. Every row
// becomes one tuple, each column value wrapped as a singleton
// sequence (a DataFrame row has no concept of a multi-item binding).
type dataFrameSource struct {
	Base
	df   distributed.DataFrame
	rows []distributed.Row
	idx  int
}

// NewDataFrameSource wraps df as a TupleIterator whose bound variables
// are df's columns, reporting IsDataFrame()/GetDataFrame() so a
// downstream clause that knows how to push work onto df (OrderBy,
// GroupBy) can keep doing so instead of pulling tuples one at a time.
func NewDataFrameSource(df distributed.DataFrame) TupleIterator {
	cols := df.Columns()
	return &dataFrameSource{
		Base: Base{
			BoundVars:    cols,
			Dependencies: map[string]ast.DependencyKind{},
			Projection:   cols,
		},
		df: df,
	}
}

func (d *dataFrameSource) Open(ctx *runtimectx.Context) error {
	rows, err := d.df.Rows()
	if err != nil {
		return err
	}
	d.rows = rows
	d.idx = 0
	return nil
}

func (d *dataFrameSource) HasNext() (bool, error) { return d.idx < len(d.rows), nil }

func (d *dataFrameSource) Next() (Tuple, error) {
	if d.idx >= len(d.rows) {
		return nil, jerrors.NewIteratorFlow("Next called with no tuple available")
	}
	row := d.rows[d.idx]
	d.idx++
	tup := make(Tuple, len(row))
	for name, v := range row {
		tup[name] = item.Sequence{v}
	}
	return tup, nil
}

func (d *dataFrameSource) Close() error { return nil }

func (d *dataFrameSource) Reset() error {
	d.idx = 0
	return nil
}

func (d *dataFrameSource) IsDataFrame() bool                           { return true }
func (d *dataFrameSource) GetDataFrame() (distributed.DataFrame, error) { return d.df, nil }

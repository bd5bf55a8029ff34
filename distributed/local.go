package distributed

import (
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"

	"github.com/dataflowql/jsoniq-core/item"
)

// SpillStore is an optional badger-backed disk cache for
// LocalCollection.Cache(), repurposing janus-datalog's BadgerStore
// (datalog/storage/badger_store.go) from a durable datom index into a
// scratch cache for bindings too large to keep resident in memory.
// A nil *SpillStore means LocalCollection.Cache() stays in-memory.
type SpillStore struct {
	db  *badger.DB
	seq uint64
}

// OpenSpillStore opens (or creates) a badger database at path, tuned
// the same way janus-datalog tunes its read-heavy datom store since
// this cache is also read-mostly once populated.
func OpenSpillStore(path string) (*SpillStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.MemTableSize = 64 << 20
	opts.ValueThreshold = 1 << 10

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("distributed: failed to open spill store: %w", err)
	}
	return &SpillStore{db: db}, nil
}

func (s *SpillStore) Close() error { return s.db.Close() }

func (s *SpillStore) put(items []item.Item) ([][]byte, error) {
	keys := make([][]byte, len(items))
	err := s.db.Update(func(txn *badger.Txn) error {
		for i, it := range items {
			encoded, err := encodeItem(it)
			if err != nil {
				return err
			}
			seq := atomic.AddUint64(&s.seq, 1)
			key := []byte(fmt.Sprintf("spill/%020d", seq))
			if err := txn.Set(key, encoded); err != nil {
				return err
			}
			keys[i] = key
		}
		return nil
	})
	return keys, err
}

func (s *SpillStore) get(keys [][]byte) ([]item.Item, error) {
	out := make([]item.Item, len(keys))
	err := s.db.View(func(txn *badger.Txn) error {
		for i, k := range keys {
			entry, err := txn.Get(k)
			if err != nil {
				return err
			}
			val, err := entry.ValueCopy(nil)
			if err != nil {
				return err
			}
			it, err := decodeItem(val)
			if err != nil {
				return err
			}
			out[i] = it
		}
		return nil
	})
	return out, err
}

// LocalCollection is the single-process PartitionedCollection stand-in
// used by tests and by the hybrid iterator whenever no cluster
// backend is configured. Map/Filter run with bounded parallelism over
// a worker pool (mirroring janus-datalog's WorkerPool); Cache spills to
// a SpillStore when one is configured, otherwise it is a no-op since
// the items are already memory-resident.
type LocalCollection struct {
	items []item.Item
	pool  *workerPool
	spill *SpillStore
	keys  [][]byte // set once Cache() has spilled to disk
}

// NewLocalCollection wraps items as a PartitionedCollection, using
// workerCount goroutines for Map/Filter (0 = runtime.NumCPU(), per
// runtimectx.Options.WorkerPoolSize's convention).
func NewLocalCollection(items []item.Item, workerCount int) *LocalCollection {
	return &LocalCollection{items: items, pool: newWorkerPool(workerCount)}
}

// WithSpillStore attaches a disk-backed cache used by Cache().
func (c *LocalCollection) WithSpillStore(s *SpillStore) *LocalCollection {
	c.spill = s
	return c
}

func (c *LocalCollection) materialize() ([]item.Item, error) {
	if c.keys == nil {
		return c.items, nil
	}
	return c.spill.get(c.keys)
}

func (c *LocalCollection) Map(fn func(item.Item) (item.Item, error)) (PartitionedCollection, error) {
	items, err := c.materialize()
	if err != nil {
		return nil, err
	}
	inputs := make([]interface{}, len(items))
	for i, it := range items {
		inputs[i] = it
	}
	results, err := c.pool.run(inputs, func(v interface{}) (interface{}, error) {
		return fn(v.(item.Item))
	})
	if err != nil {
		return nil, err
	}
	out := make([]item.Item, len(results))
	for i, r := range results {
		out[i] = r.(item.Item)
	}
	return NewLocalCollection(out, 0), nil
}

func (c *LocalCollection) Filter(fn func(item.Item) (bool, error)) (PartitionedCollection, error) {
	items, err := c.materialize()
	if err != nil {
		return nil, err
	}
	inputs := make([]interface{}, len(items))
	for i, it := range items {
		inputs[i] = it
	}
	type decision struct {
		it   item.Item
		keep bool
	}
	results, err := c.pool.run(inputs, func(v interface{}) (interface{}, error) {
		it := v.(item.Item)
		keep, err := fn(it)
		if err != nil {
			return nil, err
		}
		return decision{it: it, keep: keep}, nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]item.Item, 0, len(results))
	for _, r := range results {
		d := r.(decision)
		if d.keep {
			out = append(out, d.it)
		}
	}
	return NewLocalCollection(out, 0), nil
}

func (c *LocalCollection) Collect() ([]item.Item, error) {
	return c.materialize()
}

func (c *LocalCollection) Count() (int64, error) {
	if c.keys != nil {
		return int64(len(c.keys)), nil
	}
	return int64(len(c.items)), nil
}

// Cache spills this collection to its SpillStore, if one is attached;
// with no spill store it returns c unchanged since the items are
// already memory-resident (materialized collections are their own
// cache).
func (c *LocalCollection) Cache() PartitionedCollection {
	if c.spill == nil || c.keys != nil {
		return c
	}
	keys, err := c.spill.put(c.items)
	if err != nil {
		// Spilling is a best-effort optimization; fall back to the
		// in-memory copy rather than failing the query.
		return c
	}
	return &LocalCollection{pool: c.pool, spill: c.spill, keys: keys}
}

func (c *LocalCollection) Take(n int) ([]item.Item, error) {
	items, err := c.materialize()
	if err != nil {
		return nil, err
	}
	if n > len(items) {
		n = len(items)
	}
	return items[:n], nil
}

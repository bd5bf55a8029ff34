package item

import "github.com/dataflowql/jsoniq-core/jerrors"

// Object is the JSONiq object item: an ordered mapping from string
// keys to items. Keys are unique within an object; construction fails
// (see ObjectBuilder) if a duplicate key is produced. Once returned to
// a consumer it is treated as immutable.
type Object struct {
	base
	keys   []string
	values map[string]Item
}

func (Object) Kind() Kind     { return KindObject }
func (Object) IsObject() bool { return true }

func (o Object) String() string {
	s := "{"
	for i, k := range o.keys {
		if i > 0 {
			s += ", "
		}
		s += "\"" + k + "\": " + o.values[k].String()
	}
	return s + "}"
}

// Keys returns the object's keys in insertion order.
func (o Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of entries.
func (o Object) Len() int { return len(o.keys) }

// Get returns the value bound to key, if present.
func (o Object) Get(key string) (Item, bool) {
	v, ok := o.values[key]
	return v, ok
}

// ObjectBuilder accumulates key/value pairs for object construction,
// rejecting duplicate keys the way a JSONiq object constructor must.
type ObjectBuilder struct {
	keys   []string
	values map[string]Item
}

func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{values: make(map[string]Item)}
}

// Put adds a key/value pair. It returns an error (UnexpectedType
// category is not right here — duplicate keys are their own case) if
// the key already exists.
func (b *ObjectBuilder) Put(key string, v Item) error {
	if _, exists := b.values[key]; exists {
		return jerrors.NewDynamicError(jerrors.Position{}, "duplicate object key %q", key)
	}
	b.keys = append(b.keys, key)
	b.values[key] = v
	return nil
}

func (b *ObjectBuilder) Build() Object {
	vals := make(map[string]Item, len(b.values))
	for k, v := range b.values {
		vals[k] = v
	}
	return Object{keys: append([]string(nil), b.keys...), values: vals}
}

// NewObject builds an Object from ordered keys and a parallel slice of
// values, failing on duplicate keys. It is a convenience wrapper over
// ObjectBuilder for callers that already have both slices.
func NewObject(keys []string, values []Item) (Object, error) {
	b := NewObjectBuilder()
	for i, k := range keys {
		if err := b.Put(k, values[i]); err != nil {
			return Object{}, err
		}
	}
	return b.Build(), nil
}

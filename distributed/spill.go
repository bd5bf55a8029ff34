package distributed

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/woodsbury/decimal128"

	"github.com/dataflowql/jsoniq-core/item"
)

func float64bits(f float64) uint64    { return math.Float64bits(f) }
func float64frombits(b uint64) float64 { return math.Float64frombits(b) }

// encodeItem serializes an item to a self-describing byte form: a
// one-byte kind tag followed by the kind's payload, the same
// type-prefix-then-payload shape as janus-datalog's
// BinaryKeyEncoder.EncodeKey uses for datom values. Function items
// cannot be spilled (they carry a live AST/closure reference) and are
// rejected; durations and dateTime/date/time items have no encoding
// here and are rejected too.
func encodeItem(it item.Item) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeItemInto(&buf, it); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeItemInto(buf *bytes.Buffer, it item.Item) error {
	buf.WriteByte(byte(it.Kind()))
	switch v := it.(type) {
	case item.Null:
	case item.Boolean:
		if v.Value {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case item.String:
		writeLenPrefixed(buf, []byte(v.Value))
	case item.Integer:
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], uint64(v.Value))
		buf.Write(tmp[:])
	case item.Decimal:
		writeLenPrefixed(buf, []byte(v.Value.String()))
	case item.Double:
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], float64bits(v.Value))
		buf.Write(tmp[:])
	case item.Binary:
		buf.WriteByte(byte(v.Encoding))
		writeLenPrefixed(buf, v.Value)
	case item.Array:
		writeLenPrefixedInt(buf, len(v.Items))
		for _, child := range v.Items {
			if err := encodeItemInto(buf, child); err != nil {
				return err
			}
		}
	case item.Object:
		keys := v.Keys()
		writeLenPrefixedInt(buf, len(keys))
		for _, k := range keys {
			writeLenPrefixed(buf, []byte(k))
			val, _ := v.Get(k)
			if err := encodeItemInto(buf, val); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("distributed: item kind %s is not spillable", it.Kind())
	}
	return nil
}

func decodeItem(data []byte) (item.Item, error) {
	r := bytes.NewReader(data)
	return decodeItemFrom(r)
}

func decodeItemFrom(r *bytes.Reader) (item.Item, error) {
	kindByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch item.Kind(kindByte) {
	case item.KindNull:
		return item.NullValue, nil
	case item.KindBoolean:
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return item.NewBoolean(b != 0), nil
	case item.KindString:
		s, err := readLenPrefixed(r)
		if err != nil {
			return nil, err
		}
		return item.NewString(string(s)), nil
	case item.KindInteger:
		var tmp [8]byte
		if _, err := r.Read(tmp[:]); err != nil {
			return nil, err
		}
		return item.NewInteger(int64(binary.BigEndian.Uint64(tmp[:]))), nil
	case item.KindDecimal:
		s, err := readLenPrefixed(r)
		if err != nil {
			return nil, err
		}
		d, err := decimal128.Parse(string(s))
		if err != nil {
			return nil, err
		}
		return item.NewDecimal(d), nil
	case item.KindDouble:
		var tmp [8]byte
		if _, err := r.Read(tmp[:]); err != nil {
			return nil, err
		}
		return item.NewDouble(float64frombits(binary.BigEndian.Uint64(tmp[:]))), nil
	case item.KindBinary:
		encByte, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		v, err := readLenPrefixed(r)
		if err != nil {
			return nil, err
		}
		return item.NewBinary(item.BinaryEncoding(encByte), v), nil
	case item.KindArray:
		n, err := readLenPrefixedInt(r)
		if err != nil {
			return nil, err
		}
		items := make([]item.Item, n)
		for i := 0; i < n; i++ {
			child, err := decodeItemFrom(r)
			if err != nil {
				return nil, err
			}
			items[i] = child
		}
		return item.NewArray(items), nil
	case item.KindObject:
		n, err := readLenPrefixedInt(r)
		if err != nil {
			return nil, err
		}
		keys := make([]string, n)
		values := make([]item.Item, n)
		for i := 0; i < n; i++ {
			k, err := readLenPrefixed(r)
			if err != nil {
				return nil, err
			}
			v, err := decodeItemFrom(r)
			if err != nil {
				return nil, err
			}
			keys[i] = string(k)
			values[i] = v
		}
		obj, err := item.NewObject(keys, values)
		if err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("distributed: unknown spilled item kind %d", kindByte)
	}
}

func writeLenPrefixed(buf *bytes.Buffer, data []byte) {
	writeLenPrefixedInt(buf, len(data))
	buf.Write(data)
}

func writeLenPrefixedInt(buf *bytes.Buffer, n int) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(n))
	buf.Write(tmp[:])
}

func readLenPrefixed(r *bytes.Reader) ([]byte, error) {
	n, err := readLenPrefixedInt(r)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	if _, err := r.Read(out); err != nil {
		return nil, err
	}
	return out, nil
}

func readLenPrefixedInt(r *bytes.Reader) (int, error) {
	var tmp [4]byte
	if _, err := r.Read(tmp[:]); err != nil {
		return 0, err
	}
	return int(binary.BigEndian.Uint32(tmp[:])), nil
}

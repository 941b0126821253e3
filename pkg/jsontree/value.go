package jsontree

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
)

// Kind classifies a tree node.
type Kind int

const (
	KindLeaf Kind = iota
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "leaf"
	}
}

// IsContainer reports whether the kind holds children.
func (k Kind) IsContainer() bool {
	return k == KindObject || k == KindArray
}

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object that keeps its keys in document order.
type Object []Member

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// MarshalJSON encodes the object keeping key order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Classify reports whether v is a leaf or a container.
// Typed slices and arrays are arrays, maps keyed by strings are objects.
// []byte, nil and every other value is a leaf.
func Classify(v any) Kind {
	switch v.(type) {
	case Object, map[string]any:
		return KindObject
	case []any:
		return KindArray
	case nil, []byte:
		return KindLeaf
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return KindObject
		}
	}
	return KindLeaf
}

// children lists the entries of a container in display order.
// Arrays are keyed by their decimal index; plain maps are sorted by key.
func children(v any) []Member {
	switch c := v.(type) {
	case Object:
		return c
	case map[string]any:
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]Member, len(keys))
		for i, k := range keys {
			out[i] = Member{Key: k, Value: c[k]}
		}
		return out
	case []any:
		out := make([]Member, len(c))
		for i, item := range c {
			out[i] = Member{Key: strconv.Itoa(i), Value: item}
		}
		return out
	}

	switch Classify(v) {
	case KindArray:
		rv := reflect.ValueOf(v)
		out := make([]Member, rv.Len())
		for i := range rv.Len() {
			out[i] = Member{Key: strconv.Itoa(i), Value: rv.Index(i).Interface()}
		}
		return out
	case KindObject:
		rv := reflect.ValueOf(v)
		out := make([]Member, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out = append(out, Member{Key: iter.Key().String(), Value: iter.Value().Interface()})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
		return out
	default:
		return nil
	}
}

// Normalize converts arbitrary Go values into the tree representation:
// Object, []any, float64, string, bool and nil. Plain maps get sorted keys;
// structs and other types go through encoding/json, keeping field order.
func Normalize(v any) (any, error) {
	return normalize(v, 0)
}

func normalize(v any, depth int) (any, error) {
	if depth > DefaultMaxDepth {
		return nil, ErrMaxDepth
	}
	switch t := v.(type) {
	case nil, bool, string, float64:
		return t, nil
	case Object:
		out := make(Object, len(t))
		for i, m := range t {
			val, err := normalize(m.Value, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = Member{Key: m.Key, Value: val}
		}
		return out, nil
	case map[string]any:
		members := children(t)
		out := make(Object, len(members))
		for i, m := range members {
			val, err := normalize(m.Value, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = Member{Key: m.Key, Value: val}
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			val, err := normalize(item, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case float32:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return Decode(raw)
	}
}

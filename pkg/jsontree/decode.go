package jsontree

import "github.com/tidwall/gjson"

// Decode parses a JSON document into the tree representation, keeping object
// keys in document order. A repeated key keeps its first position and its last value.
func Decode(raw []byte) (any, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(raw)), nil
}

// DecodeString is Decode for string input.
func DecodeString(raw string) (any, error) {
	return Decode([]byte(raw))
}

func fromResult(r gjson.Result) any {
	switch {
	case r.IsObject():
		obj := Object{}
		index := map[string]int{}
		r.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if i, ok := index[k]; ok {
				obj[i].Value = fromResult(value)
				return true
			}
			index[k] = len(obj)
			obj = append(obj, Member{Key: k, Value: fromResult(value)})
			return true
		})
		return obj
	case r.IsArray():
		arr := []any{}
		r.ForEach(func(_, value gjson.Result) bool {
			arr = append(arr, fromResult(value))
			return true
		})
		return arr
	}

	switch r.Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		return r.Num
	case gjson.String:
		return r.Str
	default:
		return nil
	}
}

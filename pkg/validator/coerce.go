package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// toNumber converts form values to float64. Strings are trimmed and parsed;
// empty strings, NaN and infinities are rejected.
func toNumber(value any) (float64, bool) {
	var f float64
	switch v := single(value).(type) {
	case nil:
		return 0, false
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toString returns the textual form of string-like values.
func toString(value any) (string, bool) {
	switch v := single(value).(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case json.Number:
		return v.String(), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

// isEmpty reports whether value counts as missing for Required.
func isEmpty(value any) bool {
	value = single(value)
	if value == nil {
		return true
	}
	if s, ok := toString(value); ok {
		return strings.TrimSpace(s) == ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// single reduces a multi-valued form field to its first value, matching
// Record.String. An empty list becomes nil.
func single(value any) any {
	list, ok := value.([]string)
	if !ok {
		return value
	}
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

func formatBound(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

package validator

import (
	"math"
	"strings"
)

// String returns the trimmed text of field, or "" when it is missing or not
// string-like. Multi-valued fields yield their first value.
func (r Record) String(field string) string {
	v := r[field]
	if list, ok := v.([]string); ok {
		if len(list) == 0 {
			return ""
		}
		v = list[0]
	}
	s, ok := toString(v)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Float parses field with the same rules as the Numeric validator.
func (r Record) Float(field string) (float64, bool) {
	return toNumber(r[field])
}

// Int parses field as a whole number.
func (r Record) Int(field string) (int, bool) {
	f, ok := toNumber(r[field])
	if !ok || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

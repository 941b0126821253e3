package jsontree

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// DefaultTitle labels the root node when no title is given.
	DefaultTitle = "Details"

	// NotSpecified is shown for null leaves.
	NotSpecified = "Not specified"
)

// Formatter renders keys and leaf values for display.
//
// The rules are: null is "Not specified"; booleans are "Yes"/"No"; numbers in
// the closed interval [0,1] are percentages with two decimals; other numbers
// use locale digit grouping with at most three fraction digits; strings are
// shown as-is. A Formatter is safe for concurrent use.
type Formatter struct {
	tag language.Tag
}

// NewFormatter returns a formatter for the given locale.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{tag: tag}
}

var defaultFormatter = NewFormatter(language.English)

// DefaultFormatter returns the English formatter.
func DefaultFormatter() *Formatter {
	return defaultFormatter
}

// Leaf formats a leaf value.
func (f *Formatter) Leaf(v any) string {
	switch t := v.(type) {
	case nil:
		return NotSpecified
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case string:
		return t
	case json.Number:
		if n, err := t.Float64(); err == nil {
			return f.Number(n)
		}
		return t.String()
	case float64:
		return f.Number(t)
	case float32:
		return f.Number(float64(t))
	case int:
		return f.Number(float64(t))
	case int64:
		return f.Number(float64(t))
	case int32:
		return f.Number(float64(t))
	case Object, map[string]any, []any:
		return f.Summary(v)
	default:
		if Classify(v).IsContainer() {
			return f.Summary(v)
		}
		return fmt.Sprint(v)
	}
}

// Number formats a number: [0,1] as a percentage, everything else grouped.
func (f *Formatter) Number(n float64) string {
	p := message.NewPrinter(f.tag)
	if n >= 0 && n <= 1 {
		return p.Sprintf("%.2f%%", n*100)
	}
	return p.Sprint(number.Decimal(n, number.MaxFractionDigits(3)))
}

// Summary describes a container without its contents.
func (f *Formatter) Summary(v any) string {
	n := len(children(v))
	switch Classify(v) {
	case KindArray:
		if n == 1 {
			return "1 item"
		}
		return strconv.Itoa(n) + " items"
	case KindObject:
		if n == 1 {
			return "1 field"
		}
		return strconv.Itoa(n) + " fields"
	default:
		return f.Leaf(v)
	}
}

// Key turns a raw object key into a label: underscores become spaces and
// each word is title-cased.
func (f *Formatter) Key(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	return cases.Title(f.tag, cases.NoLower).String(strings.Join(words, " "))
}

// Index labels an array element, counting from one.
func (f *Formatter) Index(i int) string {
	return "Item " + strconv.Itoa(i+1)
}

// Label formats the key of a child of a container of the given kind.
func (f *Formatter) Label(parent Kind, key string) string {
	if parent == KindArray {
		if idx, err := strconv.Atoi(key); err == nil {
			return f.Index(idx)
		}
	}
	return f.Key(key)
}

// FormatLeaf formats v with the default formatter.
func FormatLeaf(v any) string {
	return defaultFormatter.Leaf(v)
}

// FormatKey formats key with the default formatter.
func FormatKey(key string) string {
	return defaultFormatter.Key(key)
}

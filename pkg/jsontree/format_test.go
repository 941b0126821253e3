package jsontree_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/microfin-hq/microfin/pkg/jsontree"
)

func TestFormatLeaf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"null", nil, "Not specified"},
		{"true", true, "Yes"},
		{"false", false, "No"},
		{"string as-is", "Net 30", "Net 30"},
		{"empty string", "", ""},
		{"ratio", 0.45, "45.00%"},
		{"zero", 0.0, "0.00%"},
		{"one", 1.0, "100.00%"},
		{"int one", 1, "100.00%"},
		{"small ratio", 0.005, "0.50%"},
		{"large number", 1234567.0, "1,234,567"},
		{"fraction", 1234.5678, "1,234.568"},
		{"just above one", 2.0, "2"},
		{"negative", -0.5, "-0.5"},
		{"negative large", -25000, "-25,000"},
		{"json number", json.Number("15000"), "15,000"},
		{"array", []any{1.0, 2.0}, "2 items"},
		{"single item", []any{1.0}, "1 item"},
		{"object", jsontree.Object{{Key: "a", Value: 1.0}}, "1 field"},
		{"empty object", jsontree.Object{}, "0 fields"},
		{"typed slice", []string{"a", "b", "c"}, "3 items"},
		{"typed map", map[string]int{"a": 1}, "1 field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, jsontree.FormatLeaf(tt.value))
		})
	}
}

func TestFormatKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"loan_amount":        "Loan Amount",
		"risk":               "Risk",
		"interest_rate_apr":  "Interest Rate Apr",
		"_private_":          "Private",
		"already Title Case": "Already Title Case",
		"riskScore":          "RiskScore",
		"2024":               "2024",
		"":                   "",
	}

	for key, want := range tests {
		assert.Equal(t, want, jsontree.FormatKey(key), key)
	}
}

func TestFormatter_Label(t *testing.T) {
	t.Parallel()

	f := jsontree.DefaultFormatter()
	assert.Equal(t, "Item 1", f.Label(jsontree.KindArray, "0"))
	assert.Equal(t, "Item 12", f.Label(jsontree.KindArray, "11"))
	assert.Equal(t, "0", f.Label(jsontree.KindObject, "0"))
	assert.Equal(t, "Due Date", f.Label(jsontree.KindObject, "due_date"))
}

func TestFormatter_Locale(t *testing.T) {
	t.Parallel()

	de := jsontree.NewFormatter(language.German)
	assert.Equal(t, "1.234.567", de.Number(1234567))
	assert.Equal(t, "Not specified", de.Leaf(nil))
}

package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/microfin-hq/microfin/pkg/sanitizer"
	"github.com/microfin-hq/microfin/pkg/validator"
)

func TestStringTransforms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{name: "trim", fn: sanitizer.Trim, in: "  ada \n", want: "ada"},
		{name: "whitespace", fn: sanitizer.NormalizeWhitespace, in: " Ada's \t  Bakery\n", want: "Ada's Bakery"},
		{name: "control", fn: sanitizer.StripControl, in: "a\x00b\r\nc\td\x1b", want: "ab\nc\td"},
		{name: "bare cr", fn: sanitizer.StripControl, in: "a\rb", want: "a\nb"},
		{name: "bom", fn: sanitizer.StripControl, in: "\uFEFFclause", want: "clause"},
		{name: "email", fn: sanitizer.NormalizeEmail, in: " Ada..Lovelace.@Example.COM ", want: "ada.lovelace@example.com"},
		{name: "email no at", fn: sanitizer.NormalizeEmail, in: " ADA ", want: "ada"},
		{name: "email two ats", fn: sanitizer.NormalizeEmail, in: "a@b@c", want: "a@b@c"},
		{name: "phone", fn: sanitizer.NormalizePhone, in: " +1 (555) 010-2000 ", want: "+15550102000"},
		{name: "phone inner plus", fn: sanitizer.NormalizePhone, in: "555+1", want: "5551"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestCompose(t *testing.T) {
	t.Parallel()

	clean := sanitizer.Compose(sanitizer.StripControl, sanitizer.Trim)
	assert.Equal(t, "clause 1", clean("\x07 clause 1 \n"))
	assert.Equal(t, 3, sanitizer.Apply(1, func(i int) int { return i + 2 }))
}

func TestFields(t *testing.T) {
	t.Parallel()

	rec := validator.Record{"email": " ADA@X.IO ", "amount": 5000, "notes": "  keep  "}
	out := sanitizer.Fields(rec, map[string]func(string) string{
		"email":  sanitizer.NormalizeEmail,
		"amount": sanitizer.Trim,
	})

	assert.Equal(t, validator.Record{"email": "ada@x.io", "amount": 5000, "notes": "  keep  "}, out)
	assert.Equal(t, " ADA@X.IO ", rec["email"], "input is not modified")
}

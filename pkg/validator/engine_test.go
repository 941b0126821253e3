package validator_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin-hq/microfin/pkg/validator"
)

func TestEngine_Validate(t *testing.T) {
	t.Parallel()

	t.Run("reports first failing rule only", func(t *testing.T) {
		t.Parallel()
		form := validator.New(validator.RuleSet{
			"amount": {validator.Required("Loan amount"), validator.PositiveNumber()},
		})

		ok := form.Validate(validator.Record{"amount": "0"})
		assert.False(t, ok)
		assert.Equal(t, validator.ErrorMap{"amount": "Must be a positive number"}, form.Errors())
	})

	t.Run("earlier rule wins over later failures", func(t *testing.T) {
		t.Parallel()
		form := validator.New(validator.RuleSet{
			"amount": {validator.Required("Loan amount"), validator.PositiveNumber(), validator.Numeric()},
		})

		assert.False(t, form.Validate(validator.Record{"amount": ""}))
		assert.Equal(t, "Loan amount is required", form.Errors().Get("amount"))
	})

	t.Run("absent fields are validated as nil", func(t *testing.T) {
		t.Parallel()
		form := validator.New(validator.RuleSet{
			"email": {validator.Required("Email")},
		})

		assert.False(t, form.Validate(validator.Record{}))
		assert.Equal(t, validator.ErrorMap{"email": "Email is required"}, form.Errors())

		assert.False(t, form.Validate(nil))
		assert.True(t, form.Errors().Has("email"))
	})

	t.Run("passing fields are absent from the map", func(t *testing.T) {
		t.Parallel()
		form := validator.New(validator.RuleSet{
			"email": {validator.Required("Email"), validator.Email()},
			"name":  {validator.Required("Name")},
		})

		assert.False(t, form.Validate(validator.Record{"email": "user@example.com"}))
		errs := form.Errors()
		assert.False(t, errs.Has("email"))
		assert.Equal(t, "Name is required", errs["name"])
		assert.Len(t, errs, 1)
	})

	t.Run("fields outside the rule set are ignored", func(t *testing.T) {
		t.Parallel()
		form := validator.New(validator.RuleSet{"name": {validator.Required("Name")}})
		assert.True(t, form.Validate(validator.Record{"name": "Ada", "extra": ""}))
		assert.Empty(t, form.Errors())
	})

	t.Run("validate replaces previous errors", func(t *testing.T) {
		t.Parallel()
		form := validator.New(validator.RuleSet{
			"email": {validator.Required("Email")},
			"name":  {validator.Required("Name")},
		})

		require.False(t, form.Validate(validator.Record{}))
		require.Len(t, form.Errors(), 2)

		require.False(t, form.Validate(validator.Record{"email": "a@b.co"}))
		assert.Equal(t, validator.ErrorMap{"name": "Name is required"}, form.Errors())

		require.True(t, form.Validate(validator.Record{"email": "a@b.co", "name": "Ada"}))
		assert.Empty(t, form.Errors())
		assert.True(t, form.Valid())
	})

	t.Run("panicking predicate counts as failure", func(t *testing.T) {
		t.Parallel()
		boom := validator.Custom("boom", func(any) bool { panic("boom") }, "Something went wrong")
		form := validator.New(validator.RuleSet{"field": {boom, validator.Required("Field")}})

		assert.False(t, form.Validate(validator.Record{"field": "x"}))
		assert.Equal(t, "Something went wrong", form.Errors().Get("field"))
	})

	t.Run("empty rule set is always valid", func(t *testing.T) {
		t.Parallel()
		form := validator.New(nil)
		assert.True(t, form.Validate(validator.Record{"anything": nil}))
	})
}

func TestEngine_ClearErrors(t *testing.T) {
	t.Parallel()

	form := validator.New(validator.RuleSet{"name": {validator.Required("Name")}})
	form.ClearErrors()
	assert.Empty(t, form.Errors())

	require.False(t, form.Validate(validator.Record{}))
	require.NotEmpty(t, form.Errors())
	require.Error(t, form.Err())

	form.ClearErrors()
	assert.Empty(t, form.Errors())
	assert.NoError(t, form.Err())
	assert.True(t, form.Valid())
}

func TestEngine_Configure(t *testing.T) {
	t.Parallel()

	form := validator.New(validator.RuleSet{"name": {validator.Required("Name")}})
	require.False(t, form.Validate(validator.Record{}))

	form.Configure(validator.RuleSet{"email": {validator.Required("Email")}})
	assert.Equal(t, validator.ErrorMap{"name": "Name is required"}, form.Errors(), "configure keeps the last result")

	require.False(t, form.Validate(validator.Record{}))
	assert.Equal(t, validator.ErrorMap{"email": "Email is required"}, form.Errors())
}

func TestEngine_ErrorsIsACopy(t *testing.T) {
	t.Parallel()

	form := validator.New(validator.RuleSet{"name": {validator.Required("Name")}})
	form.Validate(validator.Record{})

	errs := form.Errors()
	errs["name"] = "tampered"
	delete(errs, "name")

	assert.Equal(t, "Name is required", form.Errors().Get("name"))
}

func TestEngine_Err(t *testing.T) {
	t.Parallel()

	form := validator.New(validator.RuleSet{
		"name":   {validator.Required("Name")},
		"amount": {validator.PositiveNumber()},
	})
	form.Validate(validator.Record{"amount": "-1"})

	err := form.Err()
	require.Error(t, err)
	verrs := validator.ExtractValidationErrors(err)
	require.Len(t, verrs, 2)
	assert.Equal(t, "amount", verrs[0].Field)
	assert.Equal(t, "validation.positive_number", verrs[0].TranslationKey)
	assert.Equal(t, "name", verrs[1].Field)
	assert.Equal(t, "Name", verrs[1].TranslationValues["label"])
	assert.Equal(t, "name", verrs[1].TranslationValues["field"])
	assert.Equal(t, "validation failed: amount: Must be a positive number; name: Name is required", err.Error())
}

func TestCheck(t *testing.T) {
	t.Parallel()

	rules := validator.RuleSet{"email": {validator.Required("Email"), validator.Email()}}
	assert.Equal(t, validator.ErrorMap{"email": "Please enter a valid email address"},
		validator.Check(rules, validator.Record{"email": "nope"}))
	assert.Empty(t, validator.Check(rules, validator.Record{"email": "user@example.com"}))

	assert.NoError(t, validator.CheckErr(rules, validator.Record{"email": "user@example.com"}))
	assert.True(t, validator.IsValidationError(validator.CheckErr(rules, validator.Record{})))
}

// TestEngine_FirstFailureProperty checks, over random rule sets and records,
// that validity equals "every rule passes" and that each reported message
// belongs to the lowest-index failing rule.
func TestEngine_FirstFailureProperty(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	pool := []validator.FieldRule{
		validator.Required("Value"),
		validator.Numeric(),
		validator.PositiveNumber(),
		validator.MinValue(10),
		validator.MaxValue(100),
		validator.MinLength(2),
		validator.MaxLength(3),
		validator.Email(),
	}
	values := []any{nil, "", "0", "5", "50", "500", "abc", "a@b.co", 42.0, -3, []any{}}

	for iter := 0; iter < 500; iter++ {
		rules := validator.RuleSet{}
		record := validator.Record{}
		for f := 0; f < 1+rng.Intn(4); f++ {
			field := "f" + strconv.Itoa(f)
			n := rng.Intn(4)
			for i := 0; i < n; i++ {
				rules[field] = append(rules[field], pool[rng.Intn(len(pool))])
			}
			if rng.Intn(5) > 0 {
				record[field] = values[rng.Intn(len(values))]
			}
		}

		form := validator.New(rules)
		ok := form.Validate(record)
		errs := form.Errors()

		allPass := true
		for field, fieldRules := range rules {
			var want string
			for _, rule := range fieldRules {
				if !rule.Test(record[field]) {
					want = rule.Message
					allPass = false
					break
				}
			}
			if want == "" {
				assert.False(t, errs.Has(field), "field %s should pass", field)
			} else {
				assert.Equal(t, want, errs[field])
			}
		}
		assert.Equal(t, allPass, ok)
		assert.Equal(t, ok, len(errs) == 0)
	}
}

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string `json:"name" validate:"required,notblank"`
	Slug     string `json:"slug" validate:"required,slug"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Priority string `json:"priority" validate:"required,oneof=routine soon urgent"`
	Answer   string `json:"verification" validate:"verification"`
}

func TestValidator_AcceptsValidStruct(t *testing.T) {
	v := NewValidator()
	err := v.Validate(sample{Name: "Dr A", Slug: "dr-a-2", Priority: "soon", Answer: "7"})
	assert.NoError(t, err)
}

func TestValidator_ReportsWireNames(t *testing.T) {
	v := NewValidator()
	err := v.Validate(sample{Name: "   ", Slug: "Bad Slug", Email: "nope", Priority: "later", Answer: "8"})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "name is required", errs["name"])
	assert.Contains(t, errs["slug"], "lowercase")
	assert.Equal(t, "email must be a valid email address", errs["email"])
	assert.Equal(t, "priority must be one of: routine, soon, urgent", errs["priority"])
	assert.Equal(t, "Incorrect answer to verification question", errs["verification"])
}

func TestValidator_SlugPattern(t *testing.T) {
	v := NewValidator()
	for _, slug := range []string{"a", "sarah-mitchell", "dr-2"} {
		assert.NoError(t, v.Validate(sample{Name: "x", Slug: slug, Priority: "urgent", Answer: "7"}), slug)
	}
	for _, slug := range []string{"-a", "a-", "a--b", "A", "a_b", "a b"} {
		assert.Error(t, v.Validate(sample{Name: "x", Slug: slug, Priority: "urgent", Answer: "7"}), slug)
	}
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.FormatValidationErrors(assert.AnError))
}

func TestValidator_ReservedSlug(t *testing.T) {
	v := NewValidator()
	err := v.Validate(sample{Name: "x", Slug: "search", Priority: "urgent", Answer: "7"})
	require.Error(t, err)
	assert.Equal(t, `slug "search" is reserved`, v.FormatValidationErrors(err)["slug"])

	assert.NoError(t, v.Validate(sample{Name: "x", Slug: "search-team", Priority: "urgent", Answer: "7"}))
}

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=2"`
	Role  string `json:"role" binding:"required,oneof=applicant recruiter"`
}

func TestValidatePassesValidStruct(t *testing.T) {
	t.Parallel()
	v := New()
	err := v.Validate(&sampleRequest{
		Email: "a@example.com",
		Name:  "Aruzhan",
		Role:  "applicant",
	})
	assert.NoError(t, err)
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	t.Parallel()
	v := New()
	err := v.Validate(&sampleRequest{
		Email: "not-an-email",
		Name:  "A",
		Role:  "admin",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Contains(t, vErr.Errors["name"], "at least 2")
	assert.Contains(t, vErr.Errors["role"], "applicant, recruiter")
}

func TestValidationErrorMessageListsFields(t *testing.T) {
	t.Parallel()
	err := &ValidationError{Errors: map[string]string{"email": "This field is required"}}
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "This field is required")
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/workshop-hub-api/internal/models"
)

func TestValidateFieldRules(t *testing.T) {
	v := NewValidator()
	email, _ := models.LookupField("email")
	code, _ := models.LookupField("verificationCode")
	phone, _ := models.LookupField("phone")
	first, _ := models.LookupField("firstName")

	cases := []struct {
		name  string
		def   models.FieldDef
		value string
		code  models.FieldErrorCode
	}{
		{"blank required", first, "   ", models.FieldMissingValue},
		{"filled required", first, "Ada", ""},
		{"email without tld", email, "foo@bar", models.FieldInvalidFormat},
		{"valid email", email, "foo@bar.com", ""},
		{"blank email", email, "", models.FieldMissingValue},
		{"short code", code, "12345", models.FieldInvalidLength},
		{"long code", code, "1234567", models.FieldInvalidLength},
		{"valid code", code, "123456", ""},
		{"optional empty", phone, "", ""},
		{"email with leading space", email, " foo@bar.com", models.FieldInvalidFormat},
		{"email with trailing space", email, "foo@bar.com ", models.FieldInvalidFormat},
		{"padded code", code, " 123456 ", models.FieldInvalidLength},
		{"whitespace only email", email, "   ", models.FieldMissingValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ferr := validateField(v, tc.def, tc.value)
			if tc.code == "" {
				assert.Nil(t, ferr)
				return
			}
			require.NotNil(t, ferr)
			assert.Equal(t, tc.code, ferr.Code)
			assert.Equal(t, tc.def.Name, ferr.Field)
		})
	}
}

func TestValidateStepReportsEveryFailingField(t *testing.T) {
	failures := validateStep(NewValidator(), 1, map[string]string{"email": "nope"})
	assert.Len(t, failures, 3)
	assert.Equal(t, models.FieldMissingValue, failures["firstName"].Code)
	assert.Equal(t, models.FieldInvalidFormat, failures["email"].Code)
	_, phoneFailed := failures["phone"]
	assert.False(t, phoneFailed)

	assert.Empty(t, validateStep(NewValidator(), 2, map[string]string{
		"organization": "Acme", "role": "Engineer", "experience": "3-5 years",
	}))
}

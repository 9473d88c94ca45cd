package service

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/workshop-hub-api/internal/models"
)

var workshopEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// verificationCodeLength is the exact length of the emailed code.
const verificationCodeLength = 6

// NewValidator returns a validator with the workshop specific tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("workshop_email", func(fl validator.FieldLevel) bool {
		return workshopEmailPattern.MatchString(fl.Field().String())
	})
	return v
}

func fieldTags(def models.FieldDef) string {
	tags := make([]string, 0, 2)
	if def.Required {
		tags = append(tags, "notblank")
	} else {
		tags = append(tags, "omitempty")
	}
	switch def.Rule {
	case models.RuleEmail:
		tags = append(tags, "workshop_email")
	case models.RuleCode:
		tags = append(tags, "len="+strconv.Itoa(verificationCodeLength))
	}
	return strings.Join(tags, ",")
}

// validateField checks one value against its field definition. It returns nil when the value passes.
// Only the required check ignores surrounding whitespace; format and length apply to the raw value.
func validateField(v *validator.Validate, def models.FieldDef, value string) *models.FieldError {
	err := v.Var(value, fieldTags(def))
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &models.FieldError{Field: def.Name, Code: models.FieldInvalidFormat, Message: "This field is invalid"}
	}
	switch verrs[0].Tag() {
	case "notblank":
		return &models.FieldError{Field: def.Name, Code: models.FieldMissingValue, Message: "This field is required"}
	case "workshop_email":
		return &models.FieldError{Field: def.Name, Code: models.FieldInvalidFormat, Message: "Please enter a valid email address"}
	case "len":
		return &models.FieldError{Field: def.Name, Code: models.FieldInvalidLength, Message: "Please enter a 6-digit verification code"}
	default:
		return &models.FieldError{Field: def.Name, Code: models.FieldInvalidFormat, Message: "This field is invalid"}
	}
}

// validateStep checks every field of step against draft and returns one error per failing field.
func validateStep(v *validator.Validate, step int, draft map[string]string) map[string]models.FieldError {
	failures := make(map[string]models.FieldError)
	for _, def := range models.FieldsForStep(step) {
		if ferr := validateField(v, def, draft[def.Name]); ferr != nil {
			failures[def.Name] = *ferr
		}
	}
	return failures
}

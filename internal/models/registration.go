package models

import "time"

// FieldErrorCode classifies a field validation failure.
type FieldErrorCode string

const (
	FieldMissingValue  FieldErrorCode = "MissingValue"
	FieldInvalidFormat FieldErrorCode = "InvalidFormat"
	FieldInvalidLength FieldErrorCode = "InvalidLength"
)

// FieldError is the single inline error attached to a form field.
type FieldError struct {
	Field   string         `json:"field"`
	Code    FieldErrorCode `json:"code"`
	Message string         `json:"message"`
}

// RegistrationState is the externally visible state of the registration wizard.
type RegistrationState struct {
	Step      int                   `json:"step"`
	Draft     map[string]string     `json:"draft"`
	Errors    map[string]FieldError `json:"errors"`
	CanBack   bool                  `json:"can_back"`
	CanNext   bool                  `json:"can_next"`
	CanSubmit bool                  `json:"can_submit"`
}

// Registration is the persisted outcome of a submitted wizard.
type Registration struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone,omitempty"`
	Organization string    `db:"organization" json:"organization"`
	Role         string    `db:"role" json:"role"`
	Experience   string    `db:"experience" json:"experience"`
	CodeHash     string    `db:"code_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// FullName joins first and last name.
func (r Registration) FullName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// Wizard bounds.
const (
	FirstStep = 1
	LastStep  = 3
)

// FieldRule is an extra check applied to a non-empty field value.
type FieldRule string

const (
	RuleNone  FieldRule = ""
	RuleEmail FieldRule = "email"
	RuleCode  FieldRule = "code"
)

// FieldDef declares one registration form field.
type FieldDef struct {
	Name     string    `json:"name"`
	Step     int       `json:"step"`
	Required bool      `json:"required"`
	Rule     FieldRule `json:"rule,omitempty"`
}

// RegistrationSchema lists the wizard fields in display order.
var RegistrationSchema = []FieldDef{
	{Name: "firstName", Step: 1, Required: true},
	{Name: "lastName", Step: 1, Required: true},
	{Name: "email", Step: 1, Required: true, Rule: RuleEmail},
	{Name: "phone", Step: 1},
	{Name: "organization", Step: 2, Required: true},
	{Name: "role", Step: 2, Required: true},
	{Name: "experience", Step: 2, Required: true},
	{Name: "verificationCode", Step: 3, Required: true, Rule: RuleCode},
}

// StepTitles names the wizard steps.
var StepTitles = map[int]string{
	1: "Personal Information",
	2: "Professional Background",
	3: "Verification",
}

// FieldsForStep returns the specs shown on step.
func FieldsForStep(step int) []FieldDef {
	out := make([]FieldDef, 0, 4)
	for _, f := range RegistrationSchema {
		if f.Step == step {
			out = append(out, f)
		}
	}
	return out
}

// LookupField finds a field definition by name.
func LookupField(name string) (FieldDef, bool) {
	for _, f := range RegistrationSchema {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

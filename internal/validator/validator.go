package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes a single failed rule on a request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(msgs, "; ")
}

func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// FieldMap flattens the errors into field -> message pairs for error
// response details.
func (ve ValidationErrors) FieldMap() map[string]string {
	out := make(map[string]string, len(ve))
	for _, e := range ve {
		if _, taken := out[e.Field]; !taken {
			out[e.Field] = e.Message
		}
	}
	return out
}

// Validator wraps go-playground struct validation with the service's
// custom rules.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerCustomRules()

	return v
}

// Validate validates any tagged struct and returns field-level errors.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-().]{6,19}$`)

func (v *Validator) registerCustomRules() {
	// Passwords need at least one upper, one lower and one digit.
	// Length is enforced separately via min=8 so the messages stay distinct.
	_ = v.validate.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		var hasUpper, hasLower, hasDigit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasUpper && hasLower && hasDigit
	})

	_ = v.validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// ToValidationErrors converts go-playground errors into our error type.
func ToValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "request", Message: err.Error(), Rule: "invalid"}}
	}

	for _, fe := range validationErrs {
		errors = append(errors, ValidationError{
			Field:   fieldName(fe),
			Message: messageForTag(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}

	return errors
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "request"
	}
	// lowerCamel to match the JSON wire format
	return strings.ToLower(name[:1]) + name[1:]
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "password_strength":
		return "must contain an uppercase letter, a lowercase letter and a digit"
	case "phone":
		return "must be a valid phone number"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed validation rule %q", fe.Tag())
	}
}

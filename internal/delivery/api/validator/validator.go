// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"reflect"
	"strings"

	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/errors"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected request field by its JSON name.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationError is returned by Validate. It renders as VALIDATION_ERROR
// with the offending fields as details.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}

	return "invalid fields: " + strings.Join(names, ", ")
}

func (e *ValidationError) HTTPCode() int {
	return domainerrors.ErrValidation.HTTPCode()
}

func (e *ValidationError) ErrorCode() string {
	return domainerrors.ErrValidation.ErrorCode()
}

func (e *ValidationError) Message() string {
	return domainerrors.ErrValidation.Message()
}

func (e *ValidationError) Details() string {
	return e.Error()
}

// DetailValue exposes the fields as structured response details.
func (e *ValidationError) DetailValue() any {
	return e.Fields
}

// Is lets errors.Is match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return errors.Is(domainerrors.ErrValidation, target)
}

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator that reports fields by their json tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			name, _, _ = strings.Cut(field.Tag.Get("query"), ",")
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	return &Validator{validate: v}
}

// Validate checks the struct tags of i.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate request")
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}

	return out
}

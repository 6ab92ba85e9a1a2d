package shared

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single failed form constraint.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

// ValidationError collects every [FieldError] found on a form.
//
// It unwraps to [ErrInvalidInput].
type ValidationError struct {
	Fields []FieldError
}

func (v *ValidationError) Error() string {
	msgs := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

func (v *ValidationError) Unwrap() error { return ErrInvalidInput }

// For returns the message for the named field, or "".
func (v *ValidationError) For(field string) string {
	for _, f := range v.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateForm checks the `validate` struct tags on form and returns a [*ValidationError] listing each failed field.
//
// Messages read "<Label> is required" where Label is the field's `label` tag, falling back to the field name.
func ValidateForm(form any) error {
	err := validatorInstance().Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	t := reflect.Indirect(reflect.ValueOf(form)).Type()
	for _, fe := range verrs {
		label := fe.StructField()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if l := sf.Tag.Get("label"); l != "" {
				label = l
			}
		}

		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", label)
		case "max":
			msg = fmt.Sprintf("%s must not exceed %s characters", label, fe.Param())
		default:
			msg = fmt.Sprintf("%s is invalid", label)
		}

		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Code:    strings.ToUpper(fe.Tag()),
			Message: msg,
		})
	}
	return out
}

package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	// Report fields by their JSON name so error keys match the request payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors turns validator errors into FieldErrors, keeping the
// order in which the validator reported them.
func (cv *CustomValidator) FormatValidationErrors(err error) FieldErrors {
	var fields FieldErrors

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fields
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			fields = fields.Add(field, "This field is required.")
		case "email":
			fields = fields.Add(field, "Enter a valid email address.")
		case "min":
			fields = fields.Add(field, "Ensure this field has at least "+e.Param()+" characters.")
		case "max":
			fields = fields.Add(field, "Ensure this field has no more than "+e.Param()+" characters.")
		case "oneof":
			fields = fields.Add(field, "\""+stringValue(e.Value())+"\" is not a valid choice.")
		case "datetime":
			fields = fields.Add(field, "Date has wrong format. Use YYYY-MM-DD.")
		case "uuid4", "uuid":
			fields = fields.Add(field, "Must be a valid UUID.")
		default:
			fields = fields.Add(field, field+" is invalid")
		}
	}

	return fields
}

// Struct validates i and returns a *ValidationError when any constraint fails.
func (cv *CustomValidator) Struct(i interface{}) error {
	if err := cv.Validate(i); err != nil {
		fields := cv.FormatValidationErrors(err)
		if len(fields) == 0 {
			return err
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}

func stringValue(v interface{}) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return ""
}

package create_booking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// В ошибках используем имена полей API (userId, startTime, ...)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return &ValidationError{Fields: []FieldError{{Field: "request", Message: "request is required"}}}
	}

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return translateValidationErrors(validationErrs)
}

// translateValidationErrors переводит ошибки валидатора в ValidationError
func translateValidationErrors(errs validator.ValidationErrors) *ValidationError {
	fields := make([]FieldError, 0, len(errs))

	for _, e := range errs {
		var message string

		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", e.Field())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
		case "gte":
			message = fmt.Sprintf("%s must not be negative", e.Field())
		case "lte":
			message = fmt.Sprintf("%s must not exceed %s", e.Field(), e.Param())
		case "gtfield":
			message = "endTime must be after startTime"
		default:
			message = e.Error()
		}

		fields = append(fields, FieldError{Field: e.Field(), Message: message})
	}

	return &ValidationError{Fields: fields}
}

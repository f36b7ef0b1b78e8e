package webapi

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator is the echo.Validator for request bodies. Field errors are
// reported under their json names.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}

// bindAndValidate decodes the body into req and runs the validator, if one is
// registered on the echo instance.
func bindAndValidate(ctx echo.Context, req interface{}) error {
	if err := ctx.Bind(req); err != nil {
		return validationError(*rules.NewViolation("", "Request body is not valid JSON"))
	}

	if ctx.Echo().Validator == nil {
		return nil
	}

	return ctx.Validate(req)
}

func toViolations(errs validator.ValidationErrors) []rules.Violation {
	violations := make([]rules.Violation, 0, len(errs))
	for _, fe := range errs {
		violations = append(violations, rules.Violation{Path: fe.Field(), Message: fieldMessage(fe)})
	}

	return violations
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

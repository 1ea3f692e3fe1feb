// Package validation turns gin binding failures into classified 400 errors.
package validation

import (
	"cat_api/internal/apperror" // Classified errors
	"errors"                    // Error inspection
	"fmt"                       // Message formatting
	"reflect"                   // Struct tag access
	"strings"                   // Tag and input trimming

	"github.com/gin-gonic/gin/binding"       // Gin's validator engine
	"github.com/go-playground/validator/v10" // Validation rules
)

// InvalidBodyMessage is used when the request cannot be decoded at all.
const InvalidBodyMessage = "Invalid request body"

// TrimmedEmailTag validates an email after surrounding whitespace is removed.
const TrimmedEmailTag = "trimmed_email"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)                                  // Report wire names
		_ = v.RegisterValidation(TrimmedEmailTag, trimmedEmail(v), false) // Handlers normalise before storing
	}
}

// trimmedEmail checks the email rule against the trimmed value; empty input is left to required
func trimmedEmail(v *validator.Validate) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		return v.Var(value, "email") == nil
	}
}

// fieldName reports fields by their wire name so messages match what the client sent.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0] // Drop options like omitempty
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

// Translate converts a binding error into an *apperror.Error. Failing rules keep
// the order the validator reports them, which is struct declaration order.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.BadRequest(InvalidBodyMessage) // Decode failure, nothing to name
	}
	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return apperror.Validation(fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Missing value"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Should be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("Should be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Should be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("Should be at most %s", fe.Param())
	case "email", TrimmedEmailTag:
		return "Invalid email address"
	case "gt":
		return fmt.Sprintf("Should be greater than %s", fe.Param())
	case "gte", "lte":
		return "Value out of range"
	case "datetime":
		return "Invalid date, expected YYYY-MM-DD"
	case "oneof":
		return fmt.Sprintf("Should be one of [%s]", fe.Param())
	default:
		return "Invalid value"
	}
}

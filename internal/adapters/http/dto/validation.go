package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// queryValidator checks bound query structs. Fields are reported by their
// form tag so messages name the query parameter the caller sent.
var queryValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
})

// QueryError is a query string that could not be bound or failed a rule.
// Field is empty when no single parameter is to blame.
type QueryError struct {
	Field   string
	Message string
	Err     error
}

func (e *QueryError) Error() string { return e.Message }

func (e *QueryError) Unwrap() error { return e.Err }

// BindQuery binds the query string into v and validates it. The first
// failing parameter is reported; the API names one problem at a time.
func BindQuery(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return &QueryError{Message: "invalid query parameters", Err: err}
	}

	err := queryValidator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &QueryError{Message: "invalid query parameters", Err: err}
	}

	fe := fieldErrs[0]

	return &QueryError{Field: fe.Field(), Message: fe.Field() + " " + describe(fe), Err: err}
}

func describe(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s%s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("must be at most %s%s", fe.Param(), unit)
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed validation: " + fe.Tag()
	}
}

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their koanf keys so messages name the
// setting an operator actually writes.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")

		return name
	})
	v.RegisterStructValidation(validateStore, StoreConfig{})

	return v
}

// ValidationError lists every problem found in a configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "config validation failed:\n  " + strings.Join(e.Problems, "\n  ")
}

// Validate checks the whole configuration and reports all problems at once.
// The service refuses to start on error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		problems[i] = describe(fe)
	}

	return &ValidationError{Problems: problems}
}

// validateStore checks that the DSN matches the driver's form. A DSN read
// from a credentials file is only known at open time.
func validateStore(sl validator.StructLevel) {
	s, _ := sl.Current().Interface().(StoreConfig)
	if s.DSN == "" || s.CredentialsFile != "" {
		return
	}

	mongoURI := strings.HasPrefix(s.DSN, "mongodb://") || strings.HasPrefix(s.DSN, "mongodb+srv://")

	switch {
	case s.Driver == "mongo" && !mongoURI:
		sl.ReportError(s.DSN, "dsn", "DSN", "mongo_uri", "")
	case s.Driver != "mongo" && mongoURI:
		sl.ReportError(s.DSN, "dsn", "DSN", "sql_dsn", s.Driver)
	}
}

func describe(fe validator.FieldError) string {
	key := keyPath(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "required_if":
		field, value, _ := strings.Cut(fe.Param(), " ")

		return fmt.Sprintf("%s is required when %s is %s", key, sibling(key, field), value)
	case "required_without":
		return fmt.Sprintf("%s is required unless %s is set", key, sibling(key, fe.Param()))
	case "gtefield":
		return fmt.Sprintf("%s must not be less than %s", key, sibling(key, fe.Param()))
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, fe.Param())
	case "url":
		return key + " must be a valid URL"
	case "hostname_port":
		return key + " must be host:port"
	case "mongo_uri":
		return key + " must be a mongodb:// or mongodb+srv:// URI for the mongo driver"
	case "sql_dsn":
		return fmt.Sprintf("%s is a mongo URI but the driver is %s", key, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", key, fe.Tag())
	}
}

// keyPath drops the root type from "Config.server.port".
func keyPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return rest
}

// sibling turns a Go field name used as a tag parameter into the koanf key
// next to key: sibling("store.dsn", "CredentialsFile") is
// "store.credentials_file".
func sibling(key, field string) string {
	parent := ""
	if i := strings.LastIndex(key, "."); i >= 0 {
		parent = key[:i+1]
	}

	return parent + snake(field)
}

func snake(s string) string {
	var b strings.Builder

	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}

			r = unicode.ToLower(r)
		}

		b.WriteRune(r)
	}

	return b.String()
}

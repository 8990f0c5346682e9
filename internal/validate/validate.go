// Package validate wraps go-playground/validator with the custom rules and
// error formatting shared by configuration and tool inputs.
package validate

import (
	"errors"
	"fmt"
	"net"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the custom tags registered and field names
// reported by their json or mapstructure tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("ident", validateIdent)
	_ = v.RegisterValidation("listen_addr", validateListenAddr)
	_ = v.RegisterValidation("payload", validatePayload)
	return v
}

// Struct validates s and formats failures into one readable error.
func Struct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		return Format(err)
	}
	return nil
}

// validateIdent accepts identifiers that are safe as a single URL path
// segment: non-blank, no slash, query or fragment marker, no whitespace.
func validateIdent(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.TrimSpace(s) == "" {
		return false
	}
	return !strings.ContainsAny(s, "/?#") && !strings.ContainsFunc(s, isSpace)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

// validateListenAddr accepts host:port or :port.
func validateListenAddr(fl validator.FieldLevel) bool {
	_, port, err := net.SplitHostPort(fl.Field().String())
	if err != nil {
		return false
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 0 && n <= 65535
}

// validatePayload accepts a non-empty map.
func validatePayload(fl validator.FieldLevel) bool {
	f := fl.Field()
	return f.Kind() == reflect.Map && f.Len() > 0
}

func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "mapstructure"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Format turns validator.ValidationErrors into a single error with one
// message per field, joined by "; ".
func Format(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatFieldError(e))
	}
	return errors.New(strings.Join(messages, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "ident":
		return fmt.Sprintf("%s must be a non-empty identifier without '/', '?', '#' or whitespace", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "payload":
		return fmt.Sprintf("%s must be a non-empty object", field)
	case "listen_addr":
		return fmt.Sprintf("%s must be a valid host:port", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "dive":
		return fmt.Sprintf("%s contains an invalid entry", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

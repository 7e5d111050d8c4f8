// Package validation wraps a shared go-playground validator and turns its
// field errors into readable messages keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error is returned by Struct when one or more rules fail.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Get returns the shared validator.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates s and returns nil or an *Error.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &Error{Fields: make([]FieldError, len(fieldErrs))}
	for i, fe := range fieldErrs {
		out.Fields[i] = FieldError{Field: fe.Field(), Tag: fe.Tag(), Message: message(fe)}
	}
	return out
}

var withParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	if tmpl, ok := withParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field, fe.Param())
	}

	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "url":
		return field + " must be a valid URL"
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

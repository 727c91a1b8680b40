package binder

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

const (
	email    = "email"
	equity   = "equity"
	gte      = "gte"
	handle   = "handle"
	mx       = "max"
	mn       = "min"
	oneof    = "oneof"
	required = "required"
	rawURL   = "url"
)

func formatUnmarshalTypeError(err *json.UnmarshalTypeError) string {
	// FIXME: this doesn't work well for incorrect map values, e.g. it will say
	// `"metadata" should be a string instead of a object` if you pass in
	// `{"metadata":{"foo":{"bar":"baz"}}}`.
	return fmt.Sprintf("%q should be of type %s", strings.Trim(err.Field, "."), err.Type)
}

func formatSchemaConversionError(err schema.ConversionError) string {
	return fmt.Sprintf("%q should be of type %s", err.Key, err.Type)
}

func isNumeric(k reflect.Kind) bool {
	//exhaustive:ignore
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func plural(resource, param string) string {
	if param != "1" {
		return resource + "s"
	}
	return resource
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case email:
		return fmt.Sprintf("%q is not a valid email", field)
	case equity:
		return fmt.Sprintf("%q must be a decimal between 0 and 1", field)
	case gte:
		return fmt.Sprintf("%q must be greater than or equal to %s", field, err.Param())
	case handle:
		return fmt.Sprintf("%q may only contain lowercase letters, digits, and hyphens", field)
	case mx:
		switch {
		case isNumeric(err.Kind()):
			return fmt.Sprintf("%q must be less than or equal to %s", field, err.Param())
		case err.Kind() == reflect.Slice:
			return fmt.Sprintf("%q length must be less than or equal to %s %s", field, err.Param(), plural("element", err.Param()))
		default:
			return fmt.Sprintf("%q length must be less than or equal to %s %s", field, err.Param(), plural("character", err.Param()))
		}
	case mn:
		switch {
		case isNumeric(err.Kind()):
			return fmt.Sprintf("%q must be greater than or equal to %s", field, err.Param())
		case err.Kind() == reflect.Slice:
			return fmt.Sprintf("%q length must be greater than or equal to %s %s", field, err.Param(), plural("element", err.Param()))
		default:
			return fmt.Sprintf("%q length must be greater than or equal to %s %s", field, err.Param(), plural("character", err.Param()))
		}
	case oneof:
		valids := []string{}
		for _, p := range strings.Fields(err.Param()) {
			valids = append(valids, fmt.Sprintf("%q", p))
		}
		return fmt.Sprintf("%q must be one of the following: %s", field, strings.Join(valids, ", "))
	case required:
		return fmt.Sprintf("%q is required", field)
	case rawURL:
		return fmt.Sprintf("%q is not a valid URL", field)
	default:
		return fmt.Sprintf("%q failed the %q check", field, err.Tag())
	}
}

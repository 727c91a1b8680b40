package binder

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	handleRE = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// equityValidator accepts decimal strings in the closed range [0, 1]. It is
// meant for models.Equity fields, whose underlying kind is string.
func equityValidator(fl validator.FieldLevel) bool {
	value, err := strconv.ParseFloat(fl.Field().String(), 64)
	if err != nil {
		return false
	}
	return value >= 0 && value <= 1
}

// handleValidator ensures company handles are URL-safe slugs.
func handleValidator(fl validator.FieldLevel) bool {
	return handleRE.MatchString(fl.Field().String())
}

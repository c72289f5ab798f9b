package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

// builtin messages for go-playground tags. Custom tags carry their own.
var builtin = map[string]string{
	"required":    "{field} is required",
	"required_if": "{field} is required",
	"len":         "{field} must be exactly {param} characters long",
	"gte":         "{field} must be greater than or equal to {param}",
	"min":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"max":         "{field} must be less than or equal to {param}",
	"oneof":       "{field} must be one of {param}",
	"email":       "{field} must be a valid email address",
	"url":         "{field} must be a valid URL",
	"uuid":        "{field} must be a valid UUID",
	"numeric":     "{field} must contain only digits",
}

func template(tag string) string {
	if r, ok := rules[tag]; ok {
		return r.message
	}

	return builtin[tag]
}

// describe renders the first field error that has a template, or the raw
// error text when none does.
func describe(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fe := range fieldErrors {
		tmpl := template(fe.Tag())
		if tmpl == "" {
			continue
		}

		return strings.NewReplacer(
			"{field}", fe.Field(),
			"{param}", strings.ReplaceAll(fe.Param(), anyOfSeparator, ", "),
		).Replace(tmpl)
	}

	return fieldErrors.Error()
}

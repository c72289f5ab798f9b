// Package validator decodes request bodies and checks them with
// go-playground/validator. Failures come back as 400 failures whose message
// names the JSON field.
package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"spacebook/shared/constant"
	"spacebook/shared/failure"
	"spacebook/shared/timezone"

	val "github.com/go-playground/validator/v10"
)

const (
	anyOfSeparator = ";"
	bytesPerMB     = 1 << 20
)

type rule struct {
	check   val.Func
	message string
}

var rules = map[string]rule{
	// like oneof, but split on ';' so values may contain spaces
	"anyof": {
		check: func(fl val.FieldLevel) bool {
			return slices.Contains(strings.Split(fl.Param(), anyOfSeparator), fl.Field().String())
		},
		message: "{field} must be one of {param}",
	},
	"day": {
		check: func(fl val.FieldLevel) bool {
			_, err := timezone.ParseDay(fl.Field().String())

			return err == nil
		},
		message: "{field} must be a date in YYYY-MM-DD format",
	},
	"mimetypes": {
		check: withFile(func(file multipart.FileHeader, param string) bool {
			return slices.Contains(strings.Fields(param), contentType(file))
		}),
		message: "{field} must be one of {param}",
	},
	"maxfilesize": {
		check: withFile(func(file multipart.FileHeader, param string) bool {
			limit, err := strconv.ParseFloat(param, 64)

			return err == nil && float64(file.Size) <= limit*bytesPerMB
		}),
		message: "{field} must be at most {param} MB",
	},
}

func withFile(fn func(file multipart.FileHeader, param string) bool) val.Func {
	return func(fl val.FieldLevel) bool {
		file, ok := fl.Field().Interface().(multipart.FileHeader)

		return ok && fn(file, fl.Param())
	}
}

// contentType is the part's declared media type, or the one implied by its
// extension when the client sent none.
func contentType(file multipart.FileHeader) string {
	declared := file.Header.Get(constant.RequestHeaderContentType)
	if declared == constant.Empty {
		declared = mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename)))
	}

	media, _, _ := strings.Cut(declared, ";")

	return strings.TrimSpace(media)
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return constant.Empty
	}

	return name
}

var validate = func() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	for tag, r := range rules {
		if err := v.RegisterValidation(tag, r.check); err != nil {
			panic(err)
		}
	}

	return v
}()

// Validate decodes JSON from r into data and validates the result.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	return reject(validate.Struct(data))
}

func ValidateVar(field any, tag string) error {
	return reject(validate.Var(field, tag))
}

func reject(err error) error {
	if err == nil {
		return nil
	}

	return failure.BadRequestFromString(describe(err)) //nolint:wrapcheck
}

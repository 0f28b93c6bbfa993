/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package validate holds the field rules shared by every notification model.

RULES:
======
  - Required string: non-empty, else ErrIllegalArgument naming the field
  - Required object: non-nil, else ErrIllegalArgument naming the field
  - Enumerated value: one of a fixed set, else xcontent.ErrParse
  - Struct tags: `validate:"..."` rules checked with go-playground/validator,
    reported under the document field name taken from the json tag

The same rules run after a binary read, after a document parse and on direct
construction. A failure is always fatal; no model is returned half valid.
*/
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"notifcommons/pkg/xcontent"
)

// ErrIllegalArgument is returned when a required field is missing, empty, or
// violates a value constraint.
var ErrIllegalArgument = errors.New("illegal argument")

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	// Strings must survive the binary form, whose reader rejects invalid UTF-8.
	if err := v.RegisterValidation("utf8", func(fl validator.FieldLevel) bool {
		return utf8.ValidString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// RequireString fails unless value is non-empty valid UTF-8.
func RequireString(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is null or empty", ErrIllegalArgument, field)
	}
	if !utf8.ValidString(value) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrIllegalArgument, field)
	}
	return nil
}

// RequireNonNil fails when v is nil.
func RequireNonNil[T any](field string, v *T) error {
	if v == nil {
		return fmt.Errorf("%w: %s is null", ErrIllegalArgument, field)
	}
	return nil
}

// RequirePresent fails when a field was never seen. Used for collections where
// an empty value is legal but an absent one is not.
func RequirePresent(field string, present bool) error {
	if !present {
		return fmt.Errorf("%w: %s field absent", ErrIllegalArgument, field)
	}
	return nil
}

// OneOf fails with xcontent.ErrParse unless value is in allowed.
func OneOf(field, value string, allowed ...string) error {
	if lo.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("%w: %s %q is not one of [%s]", xcontent.ErrParse, field, value, strings.Join(allowed, ", "))
}

// Struct checks the `validate` tags of v and reports the first violation.
func Struct(v interface{}) error {
	err := structValidator.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s %s", ErrIllegalArgument, fe.Field(), describe(fe))
	}
	return fmt.Errorf("%w: %v", ErrIllegalArgument, err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is null or empty"
	case "http_url", "url":
		return fmt.Sprintf("%q is not a valid http(s) URL", fe.Value())
	case "oneof":
		return fmt.Sprintf("%v must be one of [%s]", fe.Value(), fe.Param())
	case "gte":
		return fmt.Sprintf("%v must be >= %s", fe.Value(), fe.Param())
	case "gt":
		return fmt.Sprintf("%v must be > %s", fe.Value(), fe.Param())
	case "utf8":
		return "is not valid UTF-8"
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}

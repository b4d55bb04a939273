package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidation makes validation errors report the json field names
// instead of the Go struct field names, and adds the maxdecimals rule used
// by the decimal(10,2) columns.
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := v.RegisterValidation("maxdecimals", maxDecimals); err != nil {
			panic(err)
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	})
}

// maxDecimals accepts numbers with at most param digits after the point,
// e.g. maxdecimals=2 accepts 12.5 and rejects 12.345.
func maxDecimals(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	field := fl.Field()
	var text string
	switch field.Kind() {
	case reflect.Float32:
		text = strconv.FormatFloat(field.Float(), 'f', -1, 32)
	case reflect.Float64:
		text = strconv.FormatFloat(field.Float(), 'f', -1, 64)
	default:
		return true
	}
	if _, frac, ok := strings.Cut(text, "."); ok {
		return len(frac) <= limit
	}
	return true
}

// FieldErrors turns a binding error into field -> message pairs.
// Errors that are not about a specific field are reported under "_".
func FieldErrors(err error) map[string]string {
	fields := make(map[string]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fields[typeErr.Field] = fmt.Sprintf("Expected a %s value.", typeErr.Type.Kind())
		return fields
	}

	fields["_"] = err.Error()
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "oneof":
		return "Select a valid choice."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lt", "lte":
		return fmt.Sprintf("Ensure this value is less than %s.", fe.Param())
	case "maxdecimals":
		return fmt.Sprintf("Ensure that there are no more than %s decimal places.", fe.Param())
	case "eqfield":
		return "The two password fields didn't match."
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}

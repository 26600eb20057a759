package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/career-guide-api/pkg/errors"
)

// NewValidator returns a validator that reports JSON field names, so
// validation details line up with request payloads.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError converts validator output into a 400 carrying one message
// per offending field. The first field's message becomes the summary.
func validationError(err error, fallback string) *appErrors.Error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fallback)
	}
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := fieldPath(fe)
		if _, seen := details[key]; !seen {
			details[key] = describeField(fe)
		}
	}
	first := fieldErrs[0]
	summary := fieldPath(first) + " " + describeField(first)
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, summary).WithDetails(details)
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte", "lte":
		if strings.EqualFold(fe.Field(), "percentage") {
			return "must be between 0 and 100"
		}
		if fe.Tag() == "gte" {
			return "must be at least " + fe.Param()
		}
		return "must be at most " + fe.Param()
	case "max":
		return "must not exceed " + fe.Param() + " characters or items"
	case "url":
		return "must be a valid URL"
	}
	return fmt.Sprintf("is invalid (%s)", fe.Tag())
}

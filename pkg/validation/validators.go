package validation

import (
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// YYYY-MM or YYYY-MM-DD
	ymDateRegex = regexp.MustCompile(`^\d{4}-\d{2}(-\d{2})?$`)

	// "Present" marks an ongoing period
	presentRegex = regexp.MustCompile(`(?i)^present$`)
)

// New returns a validator that reports JSON field names and knows the
// portfolio-specific tags.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("ym_date", YMDate)
	_ = v.RegisterValidation("end_date", EndDate)
	_ = v.RegisterValidation("optional_url", OptionalURL)
	_ = v.RegisterValidation("notblank", NotBlank)
}

// YMDate validates "YYYY-MM" and "YYYY-MM-DD" strings
func YMDate(fl validator.FieldLevel) bool {
	return ymDateRegex.MatchString(fl.Field().String())
}

// EndDate accepts a YMDate or the literal "Present" (any case)
func EndDate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	return ymDateRegex.MatchString(val) || presentRegex.MatchString(val)
}

// OptionalURL accepts an empty string or an absolute http(s) URL
func OptionalURL(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	u, err := url.Parse(val)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// NotBlank rejects whitespace-only strings and empty list items
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// IsPresent reports whether an end date marks an ongoing period
func IsPresent(val string) bool {
	return presentRegex.MatchString(val)
}

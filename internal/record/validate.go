package record

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Positions lists the roles candidates can apply for.
var Positions = []string{"python developer", "machine learning", "data analyst"}

const minAnswerLength = 10

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s-]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,15}$`)

	lowEffortAnswers = map[string]bool{
		"idk":          true,
		"i don't know": true,
		"na":           true,
		"n/a":          true,
	}

	validateOnce sync.Once
	validate     *validator.Validate
)

// ValidationError lists every rule a record broke.
type ValidationError struct {
	Messages []string
	err      error
}

func (e *ValidationError) Error() string {
	return "invalid candidate record: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error { return e.err }

// Validate applies the strict persistence rules to rec.
func Validate(rec *Record) error {
	if rec == nil {
		return errors.New("record is required")
	}

	if err := validatorInstance().Struct(rec); err != nil {
		return &ValidationError{Messages: FormatValidationErrors(err), err: err}
	}
	return nil
}

// FormatValidationErrors converts validator errors into readable messages.
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "personname":
		return fmt.Sprintf("%s must only contain letters, spaces, or hyphens", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "phone":
		return fmt.Sprintf("%s must be a valid phone number (e.g., +1-234-567-8900)", field)
	case "position":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(Positions, ", "))
	case "gte", "lte":
		return fmt.Sprintf("%s must be between 0 and 50 years", field)
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "url", "httpscheme":
		return fmt.Sprintf("%s must be a valid HTTP/HTTPS URL", field)
	case "qaanswers":
		return fmt.Sprintf("%s must be meaningful and at least %d characters each", field, minAnswerLength)
	default:
		return fmt.Sprintf("%s failed %s validation", field, e.Tag())
	}
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		rules := map[string]validator.Func{
			"personname": func(fl validator.FieldLevel) bool { return namePattern.MatchString(fl.Field().String()) },
			"phone":      func(fl validator.FieldLevel) bool { return phonePattern.MatchString(fl.Field().String()) },
			"position":   func(fl validator.FieldLevel) bool { return IsPosition(fl.Field().String()) },
			"qaanswers":  func(fl validator.FieldLevel) bool { return meaningfulAnswers(fl.Field().String()) },
			"httpscheme": func(fl validator.FieldLevel) bool { return hasHTTPScheme(fl.Field().String()) },
		}
		for tag, fn := range rules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("register %s validation: %v", tag, err))
			}
		}

		validate = v
	})
	return validate
}

// IsPosition reports whether s names an open position, ignoring case and surrounding space.
func IsPosition(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Positions {
		if s == p {
			return true
		}
	}
	return false
}

func hasHTTPScheme(s string) bool {
	s = strings.ToLower(s)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func meaningfulAnswers(block string) bool {
	for _, line := range strings.Split(block, "\n") {
		if !strings.HasPrefix(line, "A:") {
			continue
		}
		answer := strings.TrimSpace(strings.TrimPrefix(line, "A:"))
		if utf8.RuneCountInString(answer) < minAnswerLength || lowEffortAnswers[strings.ToLower(answer)] {
			return false
		}
	}
	return true
}

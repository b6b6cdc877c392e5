package validator

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	EmailRX    = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+\\/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
	UsernameRX = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) IsValid() bool {
	return len(v.Errors) == 0
}

// AddError records message for key unless key already has one.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

func (v *Validator) CheckNotBlank(value, key, message string) {
	v.Check(strings.TrimSpace(value) != "", key, message)
}

func (v *Validator) CheckEmail(email, message string) {
	v.Check(IsMatch(email, EmailRX), "email", message)
}

func (v *Validator) CheckMaxLength(value string, max int, key, message string) {
	v.Check(utf8.RuneCountInString(value) <= max, key, message)
}

func (v *Validator) CheckRange(value, min, max float64, key, message string) {
	v.Check(!math.IsNaN(value) && value >= min && value <= max, key, message)
}

func IsMatch(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

func IsUnique(values []string) bool {
	uniqueValues := make(map[string]bool)

	for _, val := range values {
		if uniqueValues[val] {
			return false
		}
		uniqueValues[val] = true
	}
	return true
}

// PermittedValue reports whether value is one of permitted.
func PermittedValue[T comparable](value T, permitted ...T) bool {
	for _, p := range permitted {
		if value == p {
			return true
		}
	}
	return false
}

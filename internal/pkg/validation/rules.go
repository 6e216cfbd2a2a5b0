package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// StudentNumberPattern accepts student numbers made only of digits.
var StudentNumberPattern = regexp.MustCompile(`^\d{4,20}$`)

var registerOnce sync.Once

// RegisterBindingValidators installs the custom tags used by request DTOs on
// gin's validator engine. Safe to call more than once.
func RegisterBindingValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("studentnumber", func(fl validator.FieldLevel) bool {
			return IsStudentNumber(fl.Field().String())
		})
	})
}

// IsStudentNumber reports whether s looks like a student number.
func IsStudentNumber(s string) bool {
	return StudentNumberPattern.MatchString(strings.TrimSpace(s))
}

// ParseScore parses an admin score and checks it lies within [1, max].
func ParseScore(raw string, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("score must be an integer")
	}
	if n < 1 || n > max {
		return 0, fmt.Errorf("score must be between 1 and %d", max)
	}
	return n, nil
}

// RequireText trims s and checks it is non-empty and at most maxLen runes.
// maxLen <= 0 disables the length check.
func RequireText(field, s string, maxLen int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	if maxLen > 0 && len([]rune(s)) > maxLen {
		return "", fmt.Errorf("%s must be at most %d characters", field, maxLen)
	}
	return s, nil
}

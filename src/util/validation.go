package util

import (
	"regexp"
	"strings"

	"github.com/badoux/checkmail"
)

var (
	hasLower = regexp.MustCompile("[a-z]")
	hasUpper = regexp.MustCompile("[A-Z]")
	hasDigit = regexp.MustCompile("[0-9]")
)

func ValidateEmail(email string) bool {
	return checkmail.ValidateFormat(email) == nil
}

// NormalizeEmail is the canonical form stored and looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidatePassword(password string) bool {
	if len(password) < 8 || len(password) > 72 {
		return false
	}
	return hasLower.MatchString(password) &&
		hasUpper.MatchString(password) &&
		hasDigit.MatchString(password)
}

func ValidateName(name string) bool {
	return len(strings.TrimSpace(name)) <= 100
}

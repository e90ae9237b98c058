package common

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// Categories lists the event categories offered when creating an event.
var Categories = []string{
	"Conference", "Workshop", "Seminar", "Concert", "Exhibition", "Sports", "Networking", "Other",
}

var (
	imageURLPattern = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|webp)$`)
	lower           = regexp.MustCompile(`[a-z]`)
	upper           = regexp.MustCompile(`[A-Z]`)
	digit           = regexp.MustCompile(`\d`)
	symbol          = regexp.MustCompile(`[!@#$%^&*]`)
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// IsValidImageURL reports whether url is an http(s) link to a jpg, jpeg,
// png or webp file.
func IsValidImageURL(url string) bool {
	return imageURLPattern.MatchString(url)
}

// ValidateEmail returns an ErrorValidation-wrapped error for malformed addresses.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrorValidation)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email %q", ErrorValidation, email)
	}
	return nil
}

// ValidatePassword enforces the password policy: at least
// MinPasswordLength characters with lower and upper case letters, a digit
// and one of !@#$%^&*.
func ValidatePassword(password string) error {
	var missing []string
	if len(password) < MinPasswordLength {
		missing = append(missing, fmt.Sprintf("at least %d characters", MinPasswordLength))
	}
	if !lower.MatchString(password) || !upper.MatchString(password) {
		missing = append(missing, "upper and lower case letters")
	}
	if !digit.MatchString(password) || !symbol.MatchString(password) {
		missing = append(missing, "a number and a symbol (!@#$%^&*)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: password needs %s", ErrorValidation, strings.Join(missing, ", "))
	}
	return nil
}

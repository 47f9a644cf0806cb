package util

import (
	"regexp"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
)

// IsValidEmail verifies the email format.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidUsername verifies the username format: letters, digits and
// underscores, length 3-20.
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

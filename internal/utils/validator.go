package utils

import (
	"regexp"
)

// check if the login is valid
// 3-30 characters, only letters, numbers and underscores
func IsValidLogin(login string) bool {
	if len(login) < 3 || len(login) > 30 {
		return false
	}

	loginRegex := regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	return loginRegex.MatchString(login)
}

// check if the email is valid
func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// check if the password is valid
// 8-64 characters, at least one letter and one number
func IsValidPassword(password string) bool {
	if len(password) < 8 || len(password) > 64 {
		return false
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`\d`).MatchString(password)

	return hasLetter && hasNumber
}

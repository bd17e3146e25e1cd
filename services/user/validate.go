package user

import (
	"net/mail"
	"unicode"
)

const minPasswordLength = 8

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	// reject the "Display Name <box@host>" form: only the bare address counts
	return err == nil && addr.Address == email
}

// isStrongPassword requires a minimum length plus at least one letter and
// one digit.
func isStrongPassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}

	hasLetter := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasLetter && hasDigit
}

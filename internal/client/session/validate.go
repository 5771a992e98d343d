package session

import (
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password the mock accepts, in runes.
const MinPasswordLength = 6

func validateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return ErrInvalidEmailFormat
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// validateLogin checks email before password; the first failure wins.
func validateLogin(email, password string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	return validatePassword(password)
}

func validateRegister(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return validateLogin(email, password)
}

// localPart returns the part of email before the first '@'.
func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

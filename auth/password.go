// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var ErrWrongPassword = errors.New("wrong password")

const passwordMinLen = 8

const specialChars = `!@#$%^&*(),.?":{}|<>`

// ValidatePassword enforces the registration password policy: at least
// eight characters with a digit, an upper-case letter, and a special
// character. Returns a user-facing message as the error text.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLen {
		return errors.New("password must be at least 8 characters")
	}
	var hasDigit, hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}
	if !hasDigit {
		return errors.New("password must contain a digit")
	}
	if !hasUpper {
		return errors.New("password must contain an upper-case letter")
	}
	if !hasSpecial {
		return errors.New("password must contain a special character (!@#$...)")
	}
	return nil
}

// HashPassword returns the bcrypt hash to store for a password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a stored hash against a login attempt.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

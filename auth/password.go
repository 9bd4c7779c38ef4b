package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const hashCost = 12

// HashPassword returns the bcrypt hash to be stored for password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsValidPassword enforces the registration rules: at least 8
// characters, one uppercase letter and one digit.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var upper, digit bool
	for _, r := range password {
		if unicode.IsUpper(r) {
			upper = true
		}
		if unicode.IsDigit(r) {
			digit = true
		}
	}

	return upper && digit
}

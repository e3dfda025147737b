package auth

import (
	"errors"
	"unicode"
)

type RegisterDTO struct {
	Name     string `json:"name"     binding:"required,min=2,max=50"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginDTO struct {
	Email        string `json:"email"        binding:"required,email"`
	Password     string `json:"password"     binding:"required"`
	RequiredRole string `json:"requiredRole"`
}

type ForgotPasswordDTO struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordDTO struct {
	Password string `json:"password" binding:"required,min=6"`
}

var (
	errDuplicateEmail   = errors.New("email already registered")
	errUserNotFound     = errors.New("user not found")
	errWrongPassword    = errors.New("wrong password")
	errAccountBlocked   = errors.New("account blocked")
	errRoleMismatch     = errors.New("role mismatch")
	errInvalidResetLink = errors.New("reset token invalid or expired")
)

// passwordStrong requires at least one uppercase letter, one lowercase
// letter and one digit.
func passwordStrong(password string) bool {
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

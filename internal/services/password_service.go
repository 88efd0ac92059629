package services

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooWeak  = errors.New("password must contain a letter and a number")
)

const minPasswordLength = 8

type passwordService struct {
	bcryptCost int
}

// NewPasswordService creates a new PasswordServiceInterface instance
func NewPasswordService(bcryptCost int) PasswordServiceInterface {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &passwordService{bcryptCost: bcryptCost}
}

// ValidatePassword enforces the minimum password policy
func (s *passwordService) ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	hasLetter, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrPasswordTooWeak
	}

	return nil
}

// HashPassword validates and hashes a password with bcrypt
func (s *passwordService) HashPassword(password string) (string, error) {
	if err := s.ValidatePassword(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// ComparePassword checks a plaintext password against a stored hash
func (s *passwordService) ComparePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

package services

import (
	"errors"
	"strings"

	"github.com/PavanShelat/ExpenseFlow/internal/dto"
	"github.com/PavanShelat/ExpenseFlow/internal/models"
	"github.com/PavanShelat/ExpenseFlow/internal/repositories"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email is already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
)

type authService struct {
	users     repositories.UserRepositoryInterface
	passwords PasswordServiceInterface
	tokens    TokenServiceInterface
	metrics   MetricsRecorderInterface
}

// NewAuthService creates a new AuthServiceInterface instance
func NewAuthService(
	users repositories.UserRepositoryInterface,
	passwords PasswordServiceInterface,
	tokens TokenServiceInterface,
	metrics MetricsRecorderInterface,
) AuthServiceInterface {
	return &authService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		metrics:   metrics,
	}
}

// Register creates a new user account
func (s *authService) Register(req *dto.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.users.GetByEmail(email); err == nil && existing != nil {
		s.recordAuthEvent("register", "duplicate")
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		s.recordAuthEvent("register", "weak_password")
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}

	if err := s.users.Create(user); err != nil {
		s.recordAuthEvent("register", "error")
		return nil, err
	}

	s.recordAuthEvent("register", "ok")
	return user, nil
}

// Login verifies credentials and issues an access token
func (s *authService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(email)
	if err != nil || user == nil {
		s.recordAuthEvent("login", "unknown_user")
		return nil, ErrInvalidCredentials
	}

	if !s.passwords.ComparePassword(req.Password, user.PasswordHash) {
		s.recordAuthEvent("login", "bad_password")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		s.recordAuthEvent("login", "error")
		return nil, err
	}

	s.recordAuthEvent("login", "ok")
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *authService) recordAuthEvent(event, status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("auth_events", map[string]string{
		"event":  event,
		"status": status,
	})
}

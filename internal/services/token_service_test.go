package services

import (
	"testing"
	"time"

	"github.com/PavanShelat/ExpenseFlow/internal/config"
	"github.com/PavanShelat/ExpenseFlow/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	suite.Suite
	config  *config.JWTConfig
	service TokenServiceInterface
	user    *models.User
}

func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) SetupTest() {
	s.config = &config.JWTConfig{
		Secret:              "test-secret-key",
		AccessTokenDuration: 15 * time.Minute,
		Issuer:              "expenseflow-test",
	}
	s.service = NewTokenService(s.config)
	s.user = &models.User{
		ID:    uuid.New(),
		Email: gofakeit.Email(),
	}
}

func (s *TokenServiceTestSuite) TestGenerateAndValidateAccessToken() {
	token, expiresAt, err := s.service.GenerateAccessToken(s.user)

	s.Require().NoError(err)
	s.NotEmpty(token)
	s.WithinDuration(time.Now().Add(s.config.AccessTokenDuration), expiresAt, 5*time.Second)

	claims, err := s.service.ValidateAccessToken(token)
	s.Require().NoError(err)
	s.Equal(s.user.ID, claims.UserID)
	s.Equal(s.user.Email, claims.Email)
	s.Equal(s.config.Issuer, claims.Issuer)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Garbage() {
	claims, err := s.service.ValidateAccessToken("not.a.token")

	s.Nil(claims)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_WrongSecret() {
	token, _, err := s.service.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	other := NewTokenService(&config.JWTConfig{
		Secret:              "a-different-secret",
		AccessTokenDuration: 15 * time.Minute,
		Issuer:              s.config.Issuer,
	})

	claims, err := other.ValidateAccessToken(token)
	s.Nil(claims)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Expired() {
	expired := NewTokenService(&config.JWTConfig{
		Secret:              s.config.Secret,
		AccessTokenDuration: -time.Minute,
		Issuer:              s.config.Issuer,
	})

	token, _, err := expired.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)
	s.Nil(claims)
	s.ErrorIs(err, ErrExpiredToken)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader() {
	testCases := []struct {
		header      string
		expected    string
		expectedErr error
		description string
	}{
		{"Bearer abc123", "abc123", nil, "standard bearer header"},
		{"bearer abc123", "abc123", nil, "lowercase scheme accepted"},
		{"", "", ErrMissingAuthHeader, "missing header"},
		{"abc123", "", ErrInvalidAuthHeader, "no scheme"},
		{"Basic abc123", "", ErrInvalidAuthHeader, "wrong scheme"},
		{"Bearer ", "", ErrInvalidAuthHeader, "empty token"},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			token, err := s.service.ExtractTokenFromHeader(tc.header)
			if tc.expectedErr != nil {
				s.ErrorIs(err, tc.expectedErr)
			} else {
				s.NoError(err)
				s.Equal(tc.expected, token)
			}
		})
	}
}

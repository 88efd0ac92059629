package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PavanShelat/ExpenseFlow/internal/config"
	"github.com/PavanShelat/ExpenseFlow/internal/models"
	"github.com/PavanShelat/ExpenseFlow/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

type AuthMiddlewareSuite struct {
	suite.Suite
	tokenService services.TokenServiceInterface
	e            *echo.Echo
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.tokenService = s.createTokenService("test-signing-secret", 24*time.Hour)
	s.e = echo.New()
}

func (s *AuthMiddlewareSuite) createTokenService(secret string, duration time.Duration) services.TokenServiceInterface {
	return services.NewTokenService(&config.JWTConfig{
		Secret:              secret,
		AccessTokenDuration: duration,
		Issuer:              "test-issuer",
	})
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ValidToken() {
	middleware := RequireAuth(s.tokenService)

	user := &models.User{
		ID:    uuid.New(),
		Email: "test@example.com",
	}

	token, _, err := s.tokenService.GenerateAccessToken(user)
	s.NoError(err)

	handler := middleware(func(c echo.Context) error {
		s.Equal(user.ID, c.Get("user_id"))
		s.Equal(user.Email, c.Get("user_email"))
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	err = handler(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MissingAuthorizationHeader() {
	middleware := RequireAuth(s.tokenService)

	handler := middleware(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	err := handler(c)
	// SendError writes the response and returns nil
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireAuth_InvalidTokenFormat() {
	middleware := RequireAuth(s.tokenService)

	handler := middleware(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "InvalidToken")
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	err := handler(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MalformedJWT() {
	middleware := RequireAuth(s.tokenService)

	handler := middleware(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid.jwt.token")
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	err := handler(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ExpiredToken() {
	shortTokenService := s.createTokenService("test-signing-secret", -1*time.Minute)
	middleware := RequireAuth(shortTokenService)

	user := &models.User{
		ID:    uuid.New(),
		Email: "test@example.com",
	}

	token, _, err := shortTokenService.GenerateAccessToken(user)
	s.NoError(err)

	handler := middleware(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	err = handler(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireAuth_TokenSignedWithDifferentSecret() {
	otherTokenService := s.createTokenService("a-different-secret", 24*time.Hour)

	user := &models.User{
		ID:    uuid.New(),
		Email: "test@example.com",
	}

	token, _, err := otherTokenService.GenerateAccessToken(user)
	s.NoError(err)

	middleware := RequireAuth(s.tokenService)
	handler := middleware(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	err = handler(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

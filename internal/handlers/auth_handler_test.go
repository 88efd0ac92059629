package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PavanShelat/ExpenseFlow/internal/dto"
	"github.com/PavanShelat/ExpenseFlow/internal/models"
	"github.com/PavanShelat/ExpenseFlow/internal/services"
	"github.com/PavanShelat/ExpenseFlow/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

type AuthHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	authService *service_mocks.MockAuthServiceInterface
	handler     *AuthHandler
	e           *echo.Echo
}

func (s *AuthHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.authService = service_mocks.NewMockAuthServiceInterface(s.ctrl)
	s.handler = NewAuthHandler(s.authService)
	s.e = echo.New()
	s.e.Validator = NewValidator()
}

func (s *AuthHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthHandlerSuite) postJSON(path string, payload interface{}) (echo.Context, *httptest.ResponseRecorder) {
	body, err := json.Marshal(payload)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return s.e.NewContext(req, rec), rec
}

func (s *AuthHandlerSuite) TestRegister_Success() {
	user := &models.User{
		ID:        uuid.New(),
		Email:     "new@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		CreatedAt: time.Now(),
	}

	s.authService.EXPECT().Register(gomock.Any()).Return(user, nil).Times(1)

	c, rec := s.postJSON("/auth/register", dto.RegisterRequest{
		Email:     user.Email,
		Password:  "password1",
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})

	s.Require().NoError(s.handler.Register(c))
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.UserResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(user.ID.String(), response.ID)
	s.Equal(user.Email, response.Email)
}

func (s *AuthHandlerSuite) TestRegister_DuplicateEmail() {
	s.authService.EXPECT().Register(gomock.Any()).Return(nil, services.ErrEmailAlreadyRegistered).Times(1)

	c, rec := s.postJSON("/auth/register", dto.RegisterRequest{
		Email:    "taken@example.com",
		Password: "password1",
	})

	s.Require().NoError(s.handler.Register(c))
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *AuthHandlerSuite) TestRegister_WeakPassword() {
	s.authService.EXPECT().Register(gomock.Any()).Return(nil, services.ErrPasswordTooWeak).Times(1)

	c, rec := s.postJSON("/auth/register", dto.RegisterRequest{
		Email:    "weak@example.com",
		Password: "abcdefgh",
	})

	s.Require().NoError(s.handler.Register(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AuthHandlerSuite) TestRegister_InvalidPayloadSkipsService() {
	c, _ := s.postJSON("/auth/register", map[string]string{
		"email":    "not-an-email",
		"password": "password1",
	})

	s.Error(s.handler.Register(c))
}

func (s *AuthHandlerSuite) TestLogin_Success() {
	tokens := &dto.TokenResponse{
		AccessToken: "signed-token",
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(15 * time.Minute),
	}

	s.authService.EXPECT().Login(gomock.Any()).Return(tokens, nil).Times(1)

	c, rec := s.postJSON("/auth/login", dto.LoginRequest{
		Email:    "user@example.com",
		Password: "password1",
	})

	s.Require().NoError(s.handler.Login(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.TokenResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("signed-token", response.AccessToken)
	s.Equal("Bearer", response.TokenType)
}

func (s *AuthHandlerSuite) TestLogin_InvalidCredentials() {
	s.authService.EXPECT().Login(gomock.Any()).Return(nil, services.ErrInvalidCredentials).Times(1)

	c, rec := s.postJSON("/auth/login", dto.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong",
	})

	s.Require().NoError(s.handler.Login(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

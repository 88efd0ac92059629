package services

import (
	"testing"
	"time"

	"github.com/PavanShelat/ExpenseFlow/internal/dto"
	"github.com/PavanShelat/ExpenseFlow/internal/models"
	"github.com/PavanShelat/ExpenseFlow/internal/repositories"
	"github.com/PavanShelat/ExpenseFlow/internal/repositories/repository_mocks"
	"github.com/PavanShelat/ExpenseFlow/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	userRepo        *repository_mocks.MockUserRepositoryInterface
	passwordService *service_mocks.MockPasswordServiceInterface
	tokenService    *service_mocks.MockTokenServiceInterface
	authService     AuthServiceInterface
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.userRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.passwordService = service_mocks.NewMockPasswordServiceInterface(s.ctrl)
	s.tokenService = service_mocks.NewMockTokenServiceInterface(s.ctrl)
	s.authService = NewAuthService(s.userRepo, s.passwordService, s.tokenService, nil)
}

func (s *AuthServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestRegister_Success() {
	req := &dto.RegisterRequest{
		Email:     "new@example.com",
		Password:  "password1",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, repositories.ErrUserNotFound).Times(1)
	s.passwordService.EXPECT().HashPassword(req.Password).Return("hashed", nil).Times(1)
	s.userRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	user, err := s.authService.Register(req)

	s.Require().NoError(err)
	s.Equal(req.Email, user.Email)
	s.Equal(req.FirstName, user.FirstName)
	s.Equal(req.LastName, user.LastName)
	s.Equal("hashed", user.PasswordHash)
}

func (s *AuthServiceTestSuite) TestRegister_NormalizesEmail() {
	req := &dto.RegisterRequest{
		Email:    "  Mixed@Example.COM ",
		Password: "password1",
	}

	s.userRepo.EXPECT().GetByEmail("mixed@example.com").Return(nil, repositories.ErrUserNotFound).Times(1)
	s.passwordService.EXPECT().HashPassword(req.Password).Return("hashed", nil).Times(1)
	s.userRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	user, err := s.authService.Register(req)

	s.Require().NoError(err)
	s.Equal("mixed@example.com", user.Email)
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	req := &dto.RegisterRequest{
		Email:    "taken@example.com",
		Password: "password1",
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(&models.User{Email: req.Email}, nil).Times(1)

	user, err := s.authService.Register(req)

	s.Nil(user)
	s.ErrorIs(err, ErrEmailAlreadyRegistered)
}

func (s *AuthServiceTestSuite) TestRegister_WeakPassword() {
	req := &dto.RegisterRequest{
		Email:    "weak@example.com",
		Password: "short",
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, repositories.ErrUserNotFound).Times(1)
	s.passwordService.EXPECT().HashPassword(req.Password).Return("", ErrPasswordTooShort).Times(1)

	user, err := s.authService.Register(req)

	s.Nil(user)
	s.ErrorIs(err, ErrPasswordTooShort)
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: "hashed",
	}
	expiresAt := time.Now().Add(15 * time.Minute)

	s.userRepo.EXPECT().GetByEmail(user.Email).Return(user, nil).Times(1)
	s.passwordService.EXPECT().ComparePassword("password1", user.PasswordHash).Return(true).Times(1)
	s.tokenService.EXPECT().GenerateAccessToken(user).Return("signed-token", expiresAt, nil).Times(1)

	resp, err := s.authService.Login(&dto.LoginRequest{Email: user.Email, Password: "password1"})

	s.Require().NoError(err)
	s.Equal("signed-token", resp.AccessToken)
	s.Equal("Bearer", resp.TokenType)
	s.Equal(expiresAt, resp.ExpiresAt)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownUser() {
	s.userRepo.EXPECT().GetByEmail("ghost@example.com").Return(nil, repositories.ErrUserNotFound).Times(1)

	resp, err := s.authService.Login(&dto.LoginRequest{Email: "ghost@example.com", Password: "password1"})

	s.Nil(resp)
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: "hashed",
	}

	s.userRepo.EXPECT().GetByEmail(user.Email).Return(user, nil).Times(1)
	s.passwordService.EXPECT().ComparePassword("wrong", user.PasswordHash).Return(false).Times(1)

	resp, err := s.authService.Login(&dto.LoginRequest{Email: user.Email, Password: "wrong"})

	s.Nil(resp)
	s.ErrorIs(err, ErrInvalidCredentials)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/PavanShelat/ExpenseFlow/internal/dto"
	apierrors "github.com/PavanShelat/ExpenseFlow/internal/errors"
	"github.com/PavanShelat/ExpenseFlow/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 or AUTH_006"
// @Failure 409 {object} errors.ErrorResponse "AUTH_005 - Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailAlreadyRegistered):
			return SendError(c, apierrors.AuthEmailTaken)
		case errors.Is(err, services.ErrPasswordTooShort), errors.Is(err, services.ErrPasswordTooWeak):
			return SendError(c, apierrors.AuthWeakPassword, apierrors.WithDetails(err.Error()))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, &dto.UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	})
}

// Login verifies credentials and issues an access token
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} errors.ErrorResponse "AUTH_001 - Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return SendError(c, apierrors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

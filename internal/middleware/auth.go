package middleware

import (
	"errors"

	apierrors "github.com/PavanShelat/ExpenseFlow/internal/errors"
	"github.com/PavanShelat/ExpenseFlow/internal/handlers"
	"github.com/PavanShelat/ExpenseFlow/internal/services"

	"github.com/labstack/echo/v4"
)

// RequireAuth creates a middleware that requires a valid JWT access token
func RequireAuth(tokenService services.TokenServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, apierrors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, apierrors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				if errors.Is(err, services.ErrExpiredToken) {
					return handlers.SendError(c, apierrors.AuthExpiredToken)
				}
				return handlers.SendError(c, apierrors.AuthInvalidTokenFormat)
			}

			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)

			return next(c)
		}
	}
}

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/PavanShelat/ExpenseFlow/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var apiErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "api_errors_total",
		Help: "Total number of API errors by code, endpoint, and status",
	},
	[]string{"code", "endpoint", "status"},
)

// CustomHTTPErrorHandler formats every error that escapes a handler as a
// standardized coded response and logs it with its trace ID.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	var errorResponse *errors.ErrorResponse
	var httpStatus int

	switch e := err.(type) {
	case *echo.HTTPError:
		errorResponse = errors.NewErrorResponse(
			mapHTTPStatusToErrorCode(e.Code),
			traceID,
			errors.WithMessage(fmt.Sprintf("%v", e.Message)),
		)
		httpStatus = e.Code
	case validator.ValidationErrors:
		fieldErrors := make(map[string]string)
		for _, fieldErr := range e {
			fieldErrors[fieldErr.Field()] = formatValidationError(fieldErr)
		}
		errorResponse = errors.NewValidationError(fieldErrors, traceID)
		httpStatus = http.StatusBadRequest
	default:
		errorResponse, _ = errors.WrapSystemError(err, traceID)
		httpStatus = errorResponse.GetHTTPStatus()
	}

	logLevel := slog.LevelWarn
	if httpStatus >= 500 {
		logLevel = slog.LevelError
	}
	slog.Log(c.Request().Context(), logLevel, "HTTP error occurred",
		"trace_id", traceID,
		"error_code", errorResponse.Error.Code,
		"status", httpStatus,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err.Error(),
	)

	apiErrorsTotal.With(prometheus.Labels{
		"code":     errorResponse.Error.Code,
		"endpoint": c.Path(),
		"status":   strconv.Itoa(httpStatus),
	}).Inc()

	if jsonErr := c.JSON(httpStatus, errorResponse); jsonErr != nil {
		slog.Error("failed to send error response", "trace_id", traceID, "error", jsonErr.Error())
	}
}

func mapHTTPStatusToErrorCode(status int) errors.ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return errors.ValidationGeneral
	case http.StatusUnauthorized:
		return errors.AuthMissingToken
	case http.StatusNotFound:
		return errors.ExpenseNotFound
	case http.StatusTooManyRequests:
		return errors.SystemRateLimitExceeded
	default:
		return errors.SystemInternalError
	}
}

func formatValidationError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}
}

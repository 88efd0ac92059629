package errors

import "net/http"

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat ErrorCode = "AUTH_004"
	AuthEmailTaken         ErrorCode = "AUTH_005"
	AuthWeakPassword       ErrorCode = "AUTH_006"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
)

// Parse error codes (PARSE_*)
const (
	ParseEmptyInput ErrorCode = "PARSE_001"
	ParseNoAmount   ErrorCode = "PARSE_002"
)

// OCR acquisition error codes (OCR_*). These belong to the external
// image-to-text collaborator and are kept distinct so the client can show a
// user-actionable message for each.
const (
	OCRUnsupportedFormat ErrorCode = "OCR_001"
	OCREmptyFile         ErrorCode = "OCR_002"
	OCREngineFailure     ErrorCode = "OCR_003"
	OCREngineUnavailable ErrorCode = "OCR_004"
	OCRImageTooLarge     ErrorCode = "OCR_005"
)

// Expense error codes (EXPENSE_*)
const (
	ExpenseNotFound        ErrorCode = "EXPENSE_001"
	ExpenseInvalidID       ErrorCode = "EXPENSE_002"
	ExpenseInvalidCategory ErrorCode = "EXPENSE_003"
	ExpenseInvalidAmount   ErrorCode = "EXPENSE_004"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError     ErrorCode = "SYSTEM_001"
	SystemDatabaseError     ErrorCode = "SYSTEM_002"
	SystemRateLimitExceeded ErrorCode = "SYSTEM_003"
)

var errorMessages = map[ErrorCode]string{
	AuthInvalidCredentials: "Invalid email or password",
	AuthMissingToken:       "Authentication token is missing",
	AuthExpiredToken:       "Authentication token has expired",
	AuthInvalidTokenFormat: "Authentication token is malformed",
	AuthEmailTaken:         "An account with this email already exists",
	AuthWeakPassword:       "Password does not meet the minimum requirements",

	ValidationGeneral:       "Request validation failed",
	ValidationRequiredField: "A required field is missing",
	ValidationInvalidFormat: "A field has an invalid format",
	ValidationOutOfRange:    "A field value is out of range",

	ParseEmptyInput: "Input text is empty",
	ParseNoAmount:   "No monetary amount was found in the input",

	OCRUnsupportedFormat: "The uploaded image format is not supported",
	OCREmptyFile:         "The uploaded file is empty",
	OCREngineFailure:     "Text could not be extracted from the image",
	OCREngineUnavailable: "The text extraction service is temporarily unavailable",
	OCRImageTooLarge:     "The uploaded image exceeds the size limit",

	ExpenseNotFound:        "Expense not found",
	ExpenseInvalidID:       "Expense id is not a valid UUID",
	ExpenseInvalidCategory: "Category is not one of the known categories",
	ExpenseInvalidAmount:   "Expense amount must be positive",

	SystemInternalError:     "An internal error occurred",
	SystemDatabaseError:     "A storage error occurred",
	SystemRateLimitExceeded: "Too many requests, slow down",
}

var errorStatusCodes = map[ErrorCode]int{
	AuthInvalidCredentials: http.StatusUnauthorized,
	AuthMissingToken:       http.StatusUnauthorized,
	AuthExpiredToken:       http.StatusUnauthorized,
	AuthInvalidTokenFormat: http.StatusUnauthorized,
	AuthEmailTaken:         http.StatusConflict,
	AuthWeakPassword:       http.StatusBadRequest,

	ValidationGeneral:       http.StatusBadRequest,
	ValidationRequiredField: http.StatusBadRequest,
	ValidationInvalidFormat: http.StatusBadRequest,
	ValidationOutOfRange:    http.StatusBadRequest,

	ParseEmptyInput: http.StatusUnprocessableEntity,
	ParseNoAmount:   http.StatusUnprocessableEntity,

	OCRUnsupportedFormat: http.StatusUnsupportedMediaType,
	OCREmptyFile:         http.StatusBadRequest,
	OCREngineFailure:     http.StatusBadGateway,
	OCREngineUnavailable: http.StatusServiceUnavailable,
	OCRImageTooLarge:     http.StatusRequestEntityTooLarge,

	ExpenseNotFound:        http.StatusNotFound,
	ExpenseInvalidID:       http.StatusBadRequest,
	ExpenseInvalidCategory: http.StatusBadRequest,
	ExpenseInvalidAmount:   http.StatusBadRequest,

	SystemInternalError:     http.StatusInternalServerError,
	SystemDatabaseError:     http.StatusInternalServerError,
	SystemRateLimitExceeded: http.StatusTooManyRequests,
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code ErrorCode) string {
	if message, exists := errorMessages[code]; exists {
		return message
	}
	return "An unexpected error occurred"
}

// GetHTTPStatus returns the HTTP status associated with an error code
func GetHTTPStatus(code ErrorCode) int {
	if status, exists := errorStatusCodes[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

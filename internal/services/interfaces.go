package services

import (
	"time"

	"github.com/PavanShelat/ExpenseFlow/internal/dto"
	"github.com/PavanShelat/ExpenseFlow/internal/models"
)

// ExpenseParserServiceInterface turns free-form natural language into
// structured expense records.
type ExpenseParserServiceInterface interface {
	// ParseExpenses extracts zero or more expenses from one input string.
	// One sentence may legitimately yield multiple expenses, one per
	// detected amount.
	ParseExpenses(text string) *models.ParseResult

	// ExtractAmounts returns every amount-shaped token in the text, ordered
	// by source offset, de-duplicated by exact offset.
	ExtractAmounts(text string) []models.AmountCandidate
}

// CategoryServiceInterface assigns spending categories to text fragments.
type CategoryServiceInterface interface {
	// DetectCategory scores the text against category keyword sets and
	// returns the best category plus a confidence in [0,1].
	DetectCategory(text string) (category string, confidence float64)

	// CategorizeMerchant matches a merchant name against known retailer and
	// venue names. Returns CategoryOther with zero confidence on no match.
	CategorizeMerchant(merchantName string) (category string, confidence float64)
}

// ReceiptServiceInterface interprets noisy multi-line OCR text from a
// scanned receipt.
type ReceiptServiceInterface interface {
	// ParseReceiptText produces exactly one expense from OCR output. The
	// result is always flagged for review and degrades to lower-confidence
	// estimates rather than failing.
	ParseReceiptText(ocrText string) *models.ReceiptResult
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() models.CircuitBreakerState
	Reset()
	GetFailureCount() int
}

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.AccessClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

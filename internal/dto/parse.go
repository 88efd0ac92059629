package dto

import (
	"github.com/PavanShelat/ExpenseFlow/internal/models"
)

// ParseTextRequest carries one free-form sentence describing purchases
type ParseTextRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// ParseTextResponse is the structured outcome of a free-text parse
type ParseTextResponse struct {
	Succeeded bool                    `json:"succeeded"`
	Expenses  []*models.ParsedExpense `json:"expenses"`
	RawInput  string                  `json:"raw_input"`
	ElapsedMs float64                 `json:"elapsed_ms"`
}

// ParseReceiptTextRequest carries pre-extracted OCR text from a receipt
type ParseReceiptTextRequest struct {
	OCRText string `json:"ocr_text" validate:"required,max=20000"`
}

// ParseReceiptResponse is the single expense interpreted from a receipt
type ParseReceiptResponse struct {
	Expense *models.ParsedExpense `json:"expense"`
	RawText string                `json:"raw_text"`
}

// DetectCategoryRequest classifies a standalone text fragment
type DetectCategoryRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// DetectCategoryResponse is the category detection outcome
type DetectCategoryResponse struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// NewParseTextResponse converts a parse result into its API shape
func NewParseTextResponse(result *models.ParseResult) *ParseTextResponse {
	return &ParseTextResponse{
		Succeeded: result.Succeeded,
		Expenses:  result.Expenses,
		RawInput:  result.RawInput,
		ElapsedMs: float64(result.Elapsed.Microseconds()) / 1000.0,
	}
}

package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/PavanShelat/ExpenseFlow/internal/dto"
	apierrors "github.com/PavanShelat/ExpenseFlow/internal/errors"
	"github.com/PavanShelat/ExpenseFlow/internal/ocr"
	"github.com/PavanShelat/ExpenseFlow/internal/services"

	"github.com/labstack/echo/v4"
)

// ParseHandler exposes the extraction pipeline over HTTP: free-text parsing,
// receipt interpretation, and standalone category detection.
type ParseHandler struct {
	parser     services.ExpenseParserServiceInterface
	receipts   services.ReceiptServiceInterface
	categories services.CategoryServiceInterface
	engine     ocr.EngineInterface
	breaker    services.CircuitBreakerInterface
	metrics    services.MetricsRecorderInterface
}

// NewParseHandler creates a new parse handler
func NewParseHandler(
	parser services.ExpenseParserServiceInterface,
	receipts services.ReceiptServiceInterface,
	categories services.CategoryServiceInterface,
	engine ocr.EngineInterface,
	breaker services.CircuitBreakerInterface,
	metrics services.MetricsRecorderInterface,
) *ParseHandler {
	return &ParseHandler{
		parser:     parser,
		receipts:   receipts,
		categories: categories,
		engine:     engine,
		breaker:    breaker,
		metrics:    metrics,
	}
}

// ParseText extracts structured expenses from one free-form sentence
// @Summary Parse free-form expense text
// @Tags Parse
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ParseTextRequest true "Free-form text"
// @Success 200 {object} dto.ParseTextResponse "Parsed expenses; succeeded=false when no amount found"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request"
// @Router /parse/text [post]
func (h *ParseHandler) ParseText(c echo.Context) error {
	var req dto.ParseTextRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result := h.parser.ParseExpenses(req.Text)
	return c.JSON(http.StatusOK, dto.NewParseTextResponse(result))
}

// ParseReceiptText interprets pre-extracted OCR text from a receipt
// @Summary Parse receipt OCR text
// @Tags Parse
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ParseReceiptTextRequest true "Raw OCR text"
// @Success 200 {object} dto.ParseReceiptResponse "One expense, always flagged for review"
// @Router /parse/receipt-text [post]
func (h *ParseHandler) ParseReceiptText(c echo.Context) error {
	var req dto.ParseReceiptTextRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result := h.receipts.ParseReceiptText(req.OCRText)
	return c.JSON(http.StatusOK, &dto.ParseReceiptResponse{
		Expense: result.Expense,
		RawText: result.RawText,
	})
}

// ParseReceipt accepts a receipt image, runs it through the external OCR
// engine, and interprets the extracted text
// @Summary Parse receipt image
// @Tags Parse
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Receipt image (jpeg, png, webp, heic)"
// @Success 200 {object} dto.ParseReceiptResponse "One expense, always flagged for review"
// @Failure 400 {object} errors.ErrorResponse "OCR_002 - Empty file"
// @Failure 413 {object} errors.ErrorResponse "OCR_005 - Image too large"
// @Failure 415 {object} errors.ErrorResponse "OCR_001 - Unsupported format"
// @Failure 502 {object} errors.ErrorResponse "OCR_003 - Engine failure"
// @Failure 503 {object} errors.ErrorResponse "OCR_004 - Engine unavailable"
// @Router /parse/receipt [post]
func (h *ParseHandler) ParseReceipt(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return SendError(c, apierrors.ValidationRequiredField, apierrors.WithDetails("image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return SendSystemError(c, err)
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return SendSystemError(c, err)
	}

	if h.breaker != nil && h.breaker.IsOpen() {
		h.recordOCR("circuit_open", 0)
		return SendError(c, apierrors.OCREngineUnavailable)
	}

	start := time.Now()
	text, err := h.engine.ExtractText(c.Request().Context(), image, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return h.handleOCRError(c, err, time.Since(start))
	}

	if h.breaker != nil {
		h.breaker.RecordSuccess()
	}
	h.recordOCR("ok", time.Since(start))

	result := h.receipts.ParseReceiptText(text)
	return c.JSON(http.StatusOK, &dto.ParseReceiptResponse{
		Expense: result.Expense,
		RawText: result.RawText,
	})
}

// DetectCategory classifies a standalone text fragment
// @Summary Detect a category for a text fragment
// @Tags Parse
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.DetectCategoryRequest true "Text fragment"
// @Success 200 {object} dto.DetectCategoryResponse
// @Router /categories/detect [post]
func (h *ParseHandler) DetectCategory(c echo.Context) error {
	var req dto.DetectCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, confidence := h.categories.DetectCategory(req.Text)
	return c.JSON(http.StatusOK, &dto.DetectCategoryResponse{
		Category:   category,
		Confidence: confidence,
	})
}

// handleOCRError maps collaborator failures onto distinct, user-actionable
// error codes. Input problems do not count against the circuit breaker;
// engine problems do.
func (h *ParseHandler) handleOCRError(c echo.Context, err error, elapsed time.Duration) error {
	switch {
	case errors.Is(err, ocr.ErrEmptyFile):
		h.recordOCR("empty_file", elapsed)
		return SendError(c, apierrors.OCREmptyFile)
	case errors.Is(err, ocr.ErrUnsupportedFormat):
		h.recordOCR("unsupported_format", elapsed)
		return SendError(c, apierrors.OCRUnsupportedFormat)
	case errors.Is(err, ocr.ErrImageTooLarge):
		h.recordOCR("too_large", elapsed)
		return SendError(c, apierrors.OCRImageTooLarge)
	case errors.Is(err, ocr.ErrEngineUnavailable):
		if h.breaker != nil {
			h.breaker.RecordFailure()
		}
		h.recordOCR("unavailable", elapsed)
		return SendError(c, apierrors.OCREngineUnavailable)
	default:
		if h.breaker != nil {
			h.breaker.RecordFailure()
		}
		h.recordOCR("failure", elapsed)
		return SendError(c, apierrors.OCREngineFailure)
	}
}

func (h *ParseHandler) recordOCR(outcome string, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}
	h.metrics.IncrementCounter("ocr_requests", map[string]string{"outcome": outcome})
	if elapsed > 0 {
		h.metrics.RecordProcessingTime("ocr_duration", elapsed)
	}
	if h.breaker != nil {
		h.metrics.RecordGauge("circuit_breaker_state", float64(h.breaker.GetState()), map[string]string{"service": "ocr"})
	}
}

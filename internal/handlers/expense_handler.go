package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/PavanShelat/ExpenseFlow/internal/dto"
	apierrors "github.com/PavanShelat/ExpenseFlow/internal/errors"
	"github.com/PavanShelat/ExpenseFlow/internal/models"
	"github.com/PavanShelat/ExpenseFlow/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ExpenseHandler handles stored-expense HTTP requests
type ExpenseHandler struct {
	expenseRepo repositories.ExpenseRepositoryInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseRepo repositories.ExpenseRepositoryInterface) *ExpenseHandler {
	return &ExpenseHandler{expenseRepo: expenseRepo}
}

// CreateExpense persists an expense, typically one accepted from a parse
// @Summary Create expense
// @Tags Expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenseRequest true "Expense payload"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001, EXPENSE_003 or EXPENSE_004"
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if !req.Amount.GreaterThan(decimal.Zero) {
		return SendError(c, apierrors.ExpenseInvalidAmount)
	}
	if !models.IsValidCategory(req.Category) {
		return SendError(c, apierrors.ExpenseInvalidCategory)
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	expense := &models.Expense{
		UserID:      userID,
		ParseID:     req.ParseID,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Confidence:  req.Confidence,
		NeedsReview: req.NeedsReview,
		Source:      req.Source,
		RawText:     req.RawText,
		OccurredAt:  occurredAt,
	}

	if err := h.expenseRepo.Create(expense); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewExpenseResponse(expense))
}

// ListExpenses retrieves a filtered, paginated expense listing
// @Summary List expenses
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Page size (max 100)" default(20)
// @Param category query string false "Filter by category"
// @Param source query string false "Filter by source" Enums(text, receipt, manual)
// @Param needs_review query bool false "Filter by review flag"
// @Param start_date query string false "Filter by start date (RFC 3339)"
// @Param end_date query string false "Filter by end date (RFC 3339)"
// @Success 200 {object} dto.ListExpensesResponse
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	offset, limit := parsePagination(c)
	filters, err := parseExpenseFilters(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails(err.Error()))
	}

	expenses, total, err := h.expenseRepo.List(userID, filters, offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]*dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, dto.NewExpenseResponse(&expenses[i]))
	}

	return c.JSON(http.StatusOK, &dto.ListExpensesResponse{
		Expenses: responses,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	})
}

// GetExpense retrieves one expense by id
// @Summary Get expense
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Expense ID (UUID)"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001 - Not found"
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ExpenseInvalidID)
	}

	expense, err := h.expenseRepo.GetByID(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return SendError(c, apierrors.ExpenseNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseResponse(expense))
}

// OverrideCategory manually corrects an expense's category and clears its
// review flag
// @Summary Override expense category
// @Tags Expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Expense ID (UUID)"
// @Param request body dto.OverrideCategoryRequest true "New category"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} errors.ErrorResponse "EXPENSE_003 - Invalid category"
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001 - Not found"
// @Router /expenses/{id}/category [put]
func (h *ExpenseHandler) OverrideCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ExpenseInvalidID)
	}

	var req dto.OverrideCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	expense, err := h.expenseRepo.UpdateCategory(id, userID, req.Category)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidCategory):
			return SendError(c, apierrors.ExpenseInvalidCategory)
		case errors.Is(err, repositories.ErrExpenseNotFound):
			return SendError(c, apierrors.ExpenseNotFound)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, dto.NewExpenseResponse(expense))
}

// MarkReviewed clears an expense's review flag
// @Summary Mark expense reviewed
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Expense ID (UUID)"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001 - Not found"
// @Router /expenses/{id}/review [put]
func (h *ExpenseHandler) MarkReviewed(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ExpenseInvalidID)
	}

	expense, err := h.expenseRepo.MarkReviewed(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return SendError(c, apierrors.ExpenseNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseResponse(expense))
}

// DeleteExpense removes an expense
// @Summary Delete expense
// @Tags Expenses
// @Security BearerAuth
// @Param id path string true "Expense ID (UUID)"
// @Success 204 "Deleted"
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001 - Not found"
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ExpenseInvalidID)
	}

	if err := h.expenseRepo.Delete(id, userID); err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return SendError(c, apierrors.ExpenseNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CategorySummary aggregates spending per category over a period
// @Summary Spending summary by category
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param start_date query string false "Period start (RFC 3339)"
// @Param end_date query string false "Period end (RFC 3339)"
// @Success 200 {object} dto.CategorySummaryResponse
// @Router /expenses/summary [get]
func (h *ExpenseHandler) CategorySummary(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	filters, err := parseExpenseFilters(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails(err.Error()))
	}

	summaries, err := h.expenseRepo.SummaryByCategory(userID, filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, &dto.CategorySummaryResponse{
		Summaries: summaries,
		StartDate: filters.StartDate,
		EndDate:   filters.EndDate,
	})
}

func parsePagination(c echo.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return offset, limit
}

func parseExpenseFilters(c echo.Context) (models.ExpenseFilters, error) {
	filters := models.ExpenseFilters{
		Category: c.QueryParam("category"),
		Source:   c.QueryParam("source"),
	}

	if raw := c.QueryParam("needs_review"); raw != "" {
		needsReview, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, err
		}
		filters.NeedsReview = &needsReview
	}

	if raw := c.QueryParam("start_date"); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, err
		}
		filters.StartDate = &start
	}

	if raw := c.QueryParam("end_date"); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, err
		}
		filters.EndDate = &end
	}

	return filters, nil
}

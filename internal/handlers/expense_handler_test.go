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
	"github.com/PavanShelat/ExpenseFlow/internal/repositories"
	"github.com/PavanShelat/ExpenseFlow/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestExpenseHandler(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerSuite))
}

type ExpenseHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	repo    *repository_mocks.MockExpenseRepositoryInterface
	handler *ExpenseHandler
	e       *echo.Echo
	userID  uuid.UUID
}

func (s *ExpenseHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.handler = NewExpenseHandler(s.repo)
	s.e = echo.New()
	s.e.Validator = NewValidator()
	s.userID = uuid.New()
}

func (s *ExpenseHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

// newContext builds an authenticated Echo context the way the auth middleware
// would leave it.
func (s *ExpenseHandlerSuite) newContext(method, target string, payload interface{}) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		s.Require().NoError(err)
		req = httptest.NewRequest(method, target, bytes.NewBuffer(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("user_id", s.userID)
	return c, rec
}

func (s *ExpenseHandlerSuite) storedExpense() *models.Expense {
	return &models.Expense{
		ID:          uuid.New(),
		UserID:      s.userID,
		Amount:      decimal.NewFromFloat(15.50),
		Description: "Lunch",
		Category:    models.CategoryFood,
		Confidence:  0.85,
		Source:      models.ExpenseSourceText,
		OccurredAt:  time.Now(),
	}
}

func (s *ExpenseHandlerSuite) TestCreateExpense_Success() {
	s.repo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	c, rec := s.newContext(http.MethodPost, "/expenses", dto.CreateExpenseRequest{
		Amount:      decimal.NewFromFloat(15.50),
		Description: "Lunch",
		Category:    models.CategoryFood,
		Confidence:  0.85,
		Source:      models.ExpenseSourceText,
	})

	s.Require().NoError(s.handler.CreateExpense(c))
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.ExpenseResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("Lunch", response.Description)
	s.Equal(models.CategoryFood, response.Category)
}

func (s *ExpenseHandlerSuite) TestCreateExpense_RejectsNonPositiveAmount() {
	c, rec := s.newContext(http.MethodPost, "/expenses", dto.CreateExpenseRequest{
		Amount:      decimal.NewFromInt(-1),
		Description: "Refund",
		Category:    models.CategoryFood,
	})

	s.Require().NoError(s.handler.CreateExpense(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ExpenseHandlerSuite) TestCreateExpense_RejectsUnknownCategory() {
	c, rec := s.newContext(http.MethodPost, "/expenses", dto.CreateExpenseRequest{
		Amount:      decimal.NewFromInt(10),
		Description: "Snacks",
		Category:    "snacks",
	})

	s.Require().NoError(s.handler.CreateExpense(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ExpenseHandlerSuite) TestCreateExpense_Unauthenticated() {
	req := httptest.NewRequest(http.MethodPost, "/expenses", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.Require().NoError(s.handler.CreateExpense(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ExpenseHandlerSuite) TestListExpenses() {
	expense := s.storedExpense()
	s.repo.EXPECT().
		List(s.userID, gomock.Any(), 0, defaultPageLimit).
		Return([]models.Expense{*expense}, int64(1), nil).
		Times(1)

	c, rec := s.newContext(http.MethodGet, "/expenses", nil)

	s.Require().NoError(s.handler.ListExpenses(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.ListExpensesResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(int64(1), response.Total)
	s.Require().Len(response.Expenses, 1)
	s.Equal(expense.ID.String(), response.Expenses[0].ID)
}

func (s *ExpenseHandlerSuite) TestListExpenses_ClampsPageLimit() {
	s.repo.EXPECT().
		List(s.userID, gomock.Any(), 0, maxPageLimit).
		Return([]models.Expense{}, int64(0), nil).
		Times(1)

	c, rec := s.newContext(http.MethodGet, "/expenses?limit=5000", nil)

	s.Require().NoError(s.handler.ListExpenses(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ExpenseHandlerSuite) TestListExpenses_InvalidDateFilter() {
	c, rec := s.newContext(http.MethodGet, "/expenses?start_date=not-a-date", nil)

	s.Require().NoError(s.handler.ListExpenses(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ExpenseHandlerSuite) TestGetExpense_Success() {
	expense := s.storedExpense()
	s.repo.EXPECT().GetByID(expense.ID, s.userID).Return(expense, nil).Times(1)

	c, rec := s.newContext(http.MethodGet, "/expenses/"+expense.ID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(expense.ID.String())

	s.Require().NoError(s.handler.GetExpense(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ExpenseHandlerSuite) TestGetExpense_NotFound() {
	id := uuid.New()
	s.repo.EXPECT().GetByID(id, s.userID).Return(nil, repositories.ErrExpenseNotFound).Times(1)

	c, rec := s.newContext(http.MethodGet, "/expenses/"+id.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	s.Require().NoError(s.handler.GetExpense(c))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ExpenseHandlerSuite) TestGetExpense_MalformedID() {
	c, rec := s.newContext(http.MethodGet, "/expenses/not-a-uuid", nil)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	s.Require().NoError(s.handler.GetExpense(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ExpenseHandlerSuite) TestOverrideCategory_Success() {
	expense := s.storedExpense()
	expense.Category = models.CategoryTransport
	expense.NeedsReview = false
	expense.Confidence = 1.0

	s.repo.EXPECT().
		UpdateCategory(expense.ID, s.userID, models.CategoryTransport).
		Return(expense, nil).
		Times(1)

	c, rec := s.newContext(http.MethodPut, "/expenses/"+expense.ID.String()+"/category", dto.OverrideCategoryRequest{
		Category: models.CategoryTransport,
	})
	c.SetParamNames("id")
	c.SetParamValues(expense.ID.String())

	s.Require().NoError(s.handler.OverrideCategory(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.ExpenseResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(models.CategoryTransport, response.Category)
	s.False(response.NeedsReview)
}

func (s *ExpenseHandlerSuite) TestOverrideCategory_UnknownCategory() {
	id := uuid.New()
	s.repo.EXPECT().
		UpdateCategory(id, s.userID, "snacks").
		Return(nil, models.ErrInvalidCategory).
		Times(1)

	c, rec := s.newContext(http.MethodPut, "/expenses/"+id.String()+"/category", dto.OverrideCategoryRequest{
		Category: "snacks",
	})
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	s.Require().NoError(s.handler.OverrideCategory(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ExpenseHandlerSuite) TestMarkReviewed() {
	expense := s.storedExpense()
	expense.NeedsReview = false

	s.repo.EXPECT().MarkReviewed(expense.ID, s.userID).Return(expense, nil).Times(1)

	c, rec := s.newContext(http.MethodPut, "/expenses/"+expense.ID.String()+"/review", nil)
	c.SetParamNames("id")
	c.SetParamValues(expense.ID.String())

	s.Require().NoError(s.handler.MarkReviewed(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ExpenseHandlerSuite) TestDeleteExpense() {
	id := uuid.New()
	s.repo.EXPECT().Delete(id, s.userID).Return(nil).Times(1)

	c, rec := s.newContext(http.MethodDelete, "/expenses/"+id.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	s.Require().NoError(s.handler.DeleteExpense(c))
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *ExpenseHandlerSuite) TestDeleteExpense_NotFound() {
	id := uuid.New()
	s.repo.EXPECT().Delete(id, s.userID).Return(repositories.ErrExpenseNotFound).Times(1)

	c, rec := s.newContext(http.MethodDelete, "/expenses/"+id.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	s.Require().NoError(s.handler.DeleteExpense(c))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ExpenseHandlerSuite) TestCategorySummary() {
	summaries := []models.CategorySummary{
		{Category: models.CategoryFood, Total: decimal.NewFromFloat(15.50), Count: 2},
		{Category: models.CategoryTransport, Total: decimal.NewFromInt(40), Count: 1},
	}
	s.repo.EXPECT().SummaryByCategory(s.userID, gomock.Any()).Return(summaries, nil).Times(1)

	c, rec := s.newContext(http.MethodGet, "/expenses/summary", nil)

	s.Require().NoError(s.handler.CategorySummary(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.CategorySummaryResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response.Summaries, 2)
}

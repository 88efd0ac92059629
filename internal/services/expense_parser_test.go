package services

import (
	"strings"
	"testing"

	"github.com/PavanShelat/ExpenseFlow/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"
)

type ExpenseParserTestSuite struct {
	suite.Suite
	parser ExpenseParserServiceInterface
}

func TestExpenseParserSuite(t *testing.T) {
	suite.Run(t, new(ExpenseParserTestSuite))
}

func (s *ExpenseParserTestSuite) SetupTest() {
	s.parser = NewExpenseParserService(NewCategoryService(), nil)
}

func (s *ExpenseParserTestSuite) TestParseExpenses_TwoExpensesInOneSentence() {
	result := s.parser.ParseExpenses("$15 lunch and $40 fuel")

	s.True(result.Succeeded)
	s.Require().Len(result.Expenses, 2)

	first := result.Expenses[0]
	s.Equal("15", first.Amount.String())
	s.Equal("Lunch", first.Description)
	s.Equal(models.CategoryFood, first.Category)
	s.InDelta(0.85, first.Confidence, 1e-9)
	s.False(first.NeedsReview)

	second := result.Expenses[1]
	s.Equal("40", second.Amount.String())
	s.Equal("Fuel", second.Description)
	s.Equal(models.CategoryTransport, second.Category)
	s.InDelta(0.80, second.Confidence, 1e-9)
	s.False(second.NeedsReview)
}

func (s *ExpenseParserTestSuite) TestParseExpenses_FillerVerbsAndPrepositions() {
	result := s.parser.ParseExpenses("spent $25 on groceries and $12 for uber")

	s.True(result.Succeeded)
	s.Require().Len(result.Expenses, 2)

	s.Equal("25", result.Expenses[0].Amount.String())
	s.Equal("Groceries", result.Expenses[0].Description)
	s.Equal(models.CategoryFood, result.Expenses[0].Category)

	s.Equal("12", result.Expenses[1].Amount.String())
	s.Equal("Uber", result.Expenses[1].Description)
	s.Equal(models.CategoryTransport, result.Expenses[1].Category)
}

func (s *ExpenseParserTestSuite) TestParseExpenses_WordFormAmount() {
	result := s.parser.ParseExpenses("lunch was 15 dollars")

	s.True(result.Succeeded)
	s.Require().Len(result.Expenses, 1)
	s.Equal("15", result.Expenses[0].Amount.String())
	s.Equal(models.CategoryFood, result.Expenses[0].Category)
}

func (s *ExpenseParserTestSuite) TestParseExpenses_EmptyInput() {
	testCases := []struct {
		text        string
		description string
	}{
		{"", "empty string"},
		{"   ", "whitespace only"},
		{"\n\t ", "mixed whitespace"},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			result := s.parser.ParseExpenses(tc.text)
			s.False(result.Succeeded)
			s.Empty(result.Expenses)
			s.Equal(tc.text, result.RawInput)
		})
	}
}

func (s *ExpenseParserTestSuite) TestParseExpenses_NoAmountFound() {
	result := s.parser.ParseExpenses("had a great lunch with the team")

	s.False(result.Succeeded)
	s.Empty(result.Expenses)
}

func (s *ExpenseParserTestSuite) TestParseExpenses_UnknownCategoryNeedsReview() {
	result := s.parser.ParseExpenses("$10 miscellaneous doodad")

	s.True(result.Succeeded)
	s.Require().Len(result.Expenses, 1)

	expense := result.Expenses[0]
	s.Equal(models.CategoryOther, expense.Category)
	s.InDelta(0.4, expense.Confidence, 1e-9)
	s.True(expense.NeedsReview)
}

func (s *ExpenseParserTestSuite) TestParseExpenses_ReviewFlagTracksConfidenceThreshold() {
	testCases := []struct {
		text        string
		needsReview bool
		description string
	}{
		{"$15 lunch", false, "confident keyword match"},
		{"$10 gadget thing", true, "no keyword match"},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			result := s.parser.ParseExpenses(tc.text)
			s.Require().Len(result.Expenses, 1)
			expense := result.Expenses[0]
			s.Equal(tc.needsReview, expense.NeedsReview)
			s.Equal(expense.Confidence < models.ReviewConfidenceThreshold, expense.NeedsReview)
		})
	}
}

func (s *ExpenseParserTestSuite) TestParseExpenses_InvariantsOnArbitraryInput() {
	inputs := []string{
		"$1 a, $2 b, $3 c",
		"$15 lunch and $40 fuel and $99.99 concert tickets",
		"paid 20 USD and 30 dollars",
	}
	for i := 0; i < 25; i++ {
		inputs = append(inputs, gofakeit.HipsterSentence())
	}

	for _, text := range inputs {
		result := s.parser.ParseExpenses(text)

		for _, expense := range result.Expenses {
			s.True(expense.Amount.IsPositive(), "amount must be positive in %q", text)
			s.NotEmpty(expense.Description)
			s.True(models.IsValidCategory(expense.Category))
			s.GreaterOrEqual(expense.Confidence, 0.0)
			s.LessOrEqual(expense.Confidence, 1.0)
			s.Equal(expense.Confidence < models.ReviewConfidenceThreshold, expense.NeedsReview)
			s.True(strings.HasPrefix(expense.ID, "exp_"))
		}

		if !result.Succeeded {
			s.Empty(result.Expenses)
		}
	}
}

func (s *ExpenseParserTestSuite) TestParseExpenses_ExpenseIDsAreUnique() {
	seen := make(map[string]bool)

	for i := 0; i < 10; i++ {
		result := s.parser.ParseExpenses("$15 lunch and $40 fuel")
		for _, expense := range result.Expenses {
			s.False(seen[expense.ID], "duplicate expense ID %s", expense.ID)
			seen[expense.ID] = true
		}
	}
}

func (s *ExpenseParserTestSuite) TestExtractAmounts_DelegatesToExtractor() {
	candidates := s.parser.ExtractAmounts("$15 lunch and $40 fuel")

	s.Require().Len(candidates, 2)
	s.Equal("15", candidates[0].Value.String())
	s.Equal("40", candidates[1].Value.String())
}

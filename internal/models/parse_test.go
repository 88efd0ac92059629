package models

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ParseModelTestSuite struct {
	suite.Suite
}

func TestParseModelSuite(t *testing.T) {
	suite.Run(t, new(ParseModelTestSuite))
}

func (s *ParseModelTestSuite) TestWithinSanityBounds() {
	testCases := []struct {
		value       string
		expected    bool
		description string
	}{
		{"0.01", true, "just above zero"},
		{"15", true, "typical amount"},
		{"99999.99", true, "just under the upper bound"},
		{"0", false, "zero excluded"},
		{"-5", false, "negative excluded"},
		{"100000", false, "upper bound excluded"},
		{"1000000", false, "far over the bound"},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			v, err := decimal.NewFromString(tc.value)
			s.Require().NoError(err)
			s.Equal(tc.expected, WithinSanityBounds(v))
		})
	}
}

func (s *ParseModelTestSuite) TestGenerateExpenseID_Format() {
	idPattern := regexp.MustCompile(`^exp_\d+_[0-9a-f]{8}$`)

	for i := 0; i < 50; i++ {
		id := GenerateExpenseID()
		s.Regexp(idPattern, id)
	}
}

func (s *ParseModelTestSuite) TestGenerateExpenseID_Unique() {
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		id := GenerateExpenseID()
		s.False(seen[id], "duplicate ID %s", id)
		seen[id] = true
	}
}

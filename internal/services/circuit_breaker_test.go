package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type CircuitBreakerTestSuite struct {
	suite.Suite
	breaker CircuitBreakerInterface
}

func TestCircuitBreakerSuite(t *testing.T) {
	suite.Run(t, new(CircuitBreakerTestSuite))
}

func (s *CircuitBreakerTestSuite) SetupTest() {
	s.breaker = NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:     3,
		ResetTimeout:    50 * time.Millisecond,
		HalfOpenMaxSucc: 2,
	})
}

func (s *CircuitBreakerTestSuite) tripBreaker() {
	for i := 0; i < 3; i++ {
		s.breaker.RecordFailure()
	}
}

func (s *CircuitBreakerTestSuite) TestStartsClosed() {
	s.Equal(StateClosed, s.breaker.GetState())
	s.False(s.breaker.IsOpen())
	s.Equal(0, s.breaker.GetFailureCount())
}

func (s *CircuitBreakerTestSuite) TestOpensAfterMaxFailures() {
	s.breaker.RecordFailure()
	s.breaker.RecordFailure()
	s.False(s.breaker.IsOpen())

	s.breaker.RecordFailure()
	s.True(s.breaker.IsOpen())
	s.Equal(StateOpen, s.breaker.GetState())
	s.Equal(3, s.breaker.GetFailureCount())
}

func (s *CircuitBreakerTestSuite) TestSuccessResetsFailureCountWhileClosed() {
	s.breaker.RecordFailure()
	s.breaker.RecordFailure()
	s.breaker.RecordSuccess()

	s.Equal(0, s.breaker.GetFailureCount())
	s.False(s.breaker.IsOpen())
}

func (s *CircuitBreakerTestSuite) TestHalfOpenAfterResetTimeout() {
	s.tripBreaker()
	s.True(s.breaker.IsOpen())

	time.Sleep(60 * time.Millisecond)

	s.False(s.breaker.IsOpen())
	s.Equal(StateHalfOpen, s.breaker.GetState())
}

func (s *CircuitBreakerTestSuite) TestHalfOpenClosesAfterEnoughSuccesses() {
	s.tripBreaker()
	time.Sleep(60 * time.Millisecond)
	s.False(s.breaker.IsOpen())

	s.breaker.RecordSuccess()
	s.Equal(StateHalfOpen, s.breaker.GetState())

	s.breaker.RecordSuccess()
	s.Equal(StateClosed, s.breaker.GetState())
	s.Equal(0, s.breaker.GetFailureCount())
}

func (s *CircuitBreakerTestSuite) TestHalfOpenReopensOnFailure() {
	s.tripBreaker()
	time.Sleep(60 * time.Millisecond)
	s.False(s.breaker.IsOpen())

	s.breaker.RecordFailure()

	s.Equal(StateOpen, s.breaker.GetState())
	s.True(s.breaker.IsOpen())
}

func (s *CircuitBreakerTestSuite) TestReset() {
	s.tripBreaker()
	s.True(s.breaker.IsOpen())

	s.breaker.Reset()

	s.Equal(StateClosed, s.breaker.GetState())
	s.Equal(0, s.breaker.GetFailureCount())
	s.False(s.breaker.IsOpen())
}

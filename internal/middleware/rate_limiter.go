package middleware

import (
	"sync"
	"time"

	"github.com/PavanShelat/ExpenseFlow/internal/errors"
	"github.com/PavanShelat/ExpenseFlow/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client IP using a token bucket per
// visitor. Stale visitors are evicted in the background.
func RateLimiter(requestsPerSecond, burst int) echo.MiddlewareFunc {
	var (
		visitors = make(map[string]*visitor)
		mu       sync.Mutex
	)

	go func() {
		for range time.Tick(time.Minute) {
			mu.Lock()
			for ip, v := range visitors {
				if time.Since(v.lastSeen) > 3*time.Minute {
					delete(visitors, ip)
				}
			}
			mu.Unlock()
		}
	}()

	getVisitor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		v, exists := visitors[ip]
		if !exists {
			limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
			visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
			return limiter
		}

		v.lastSeen = time.Now()
		return v.limiter
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !getVisitor(c.RealIP()).Allow() {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

package handlers

import (
	"net/http"

	"github.com/PavanShelat/ExpenseFlow/internal/database"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports service and database health
type HealthHandler struct {
	db *database.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health returns 200 when the service and its database are reachable
func (h *HealthHandler) Health(c echo.Context) error {
	status := map[string]string{
		"status":   "ok",
		"database": "ok",
	}

	if h.db != nil {
		if err := h.db.HealthCheck(); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
			return c.JSON(http.StatusServiceUnavailable, status)
		}
	}

	return c.JSON(http.StatusOK, status)
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PavanShelat/ExpenseFlow/internal/config"
	"github.com/PavanShelat/ExpenseFlow/internal/database"
	"github.com/PavanShelat/ExpenseFlow/internal/handlers"
	appmiddleware "github.com/PavanShelat/ExpenseFlow/internal/middleware"
	"github.com/PavanShelat/ExpenseFlow/internal/ocr"
	"github.com/PavanShelat/ExpenseFlow/internal/repositories"
	"github.com/PavanShelat/ExpenseFlow/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()

	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	migrator := database.NewMigrationRunner(sqlDB)
	if err := migrator.WaitForDatabase(); err != nil {
		log.Fatalf("database never became ready: %v", err)
	}
	if err := migrator.RunMigrations(); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	// Repositories
	expenseRepo := repositories.NewExpenseRepository(db.DB)
	userRepo := repositories.NewUserRepository(db.DB)

	// Services
	metrics := services.NewPrometheusMetrics()
	categoryService := services.NewCategoryService()
	parserService := services.NewExpenseParserService(categoryService, metrics)
	receiptService := services.NewReceiptService(parserService, categoryService, metrics)
	passwordService := services.NewPasswordService(cfg.Security.BCryptCost)
	tokenService := services.NewTokenService(&cfg.JWT)
	authService := services.NewAuthService(userRepo, passwordService, tokenService, metrics)
	ocrBreaker := services.NewCircuitBreaker(services.DefaultCircuitBreakerConfig())
	ocrEngine := ocr.NewHTTPEngine(&cfg.OCR)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	parseHandler := handlers.NewParseHandler(parserService, receiptService, categoryService, ocrEngine, ocrBreaker, metrics)
	expenseHandler := handlers.NewExpenseHandler(expenseRepo)
	healthHandler := handlers.NewHealthHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = appmiddleware.CustomHTTPErrorHandler

	e.Use(appmiddleware.RequestID())
	e.Use(appmiddleware.PanicRecovery())
	e.Use(echomiddleware.Logger())
	e.Use(appmiddleware.RateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))

	e.GET("/health", healthHandler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("", appmiddleware.RequireAuth(tokenService))
	protected.POST("/parse/text", parseHandler.ParseText)
	protected.POST("/parse/receipt", parseHandler.ParseReceipt)
	protected.POST("/parse/receipt-text", parseHandler.ParseReceiptText)
	protected.POST("/categories/detect", parseHandler.DetectCategory)

	protected.POST("/expenses", expenseHandler.CreateExpense)
	protected.GET("/expenses", expenseHandler.ListExpenses)
	protected.GET("/expenses/summary", expenseHandler.CategorySummary)
	protected.GET("/expenses/:id", expenseHandler.GetExpense)
	protected.PUT("/expenses/:id/category", expenseHandler.OverrideCategory)
	protected.PUT("/expenses/:id/review", expenseHandler.MarkReviewed)
	protected.DELETE("/expenses/:id", expenseHandler.DeleteExpense)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server stopped: %v", err)
		}
	}()
	log.Printf("listening on %s", server.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
}

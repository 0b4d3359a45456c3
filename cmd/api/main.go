package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/barberia-app/barberia-api/docs" // Swagger docs
	"github.com/barberia-app/barberia-api/internal/config"
	"github.com/barberia-app/barberia-api/internal/database"
	"github.com/barberia-app/barberia-api/internal/handlers"
	"github.com/barberia-app/barberia-api/internal/jobs"
	"github.com/barberia-app/barberia-api/internal/middleware"
	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/internal/repository"
	"github.com/barberia-app/barberia-api/internal/services"
	"github.com/barberia-app/barberia-api/pkg/logger"
)

// @title Barbería API
// @version 1.0
// @description REST API for barbershop back-office: appointments, sales, fiado credit and expenses

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.Environment)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	repos := repository.NewRepositories(db)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs := services.NewServices(repos, cfg, db)

	scheduleJobs(worker, svcs)

	h := handlers.NewHandlers(svcs, worker)

	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			protected.GET("/auth/me", h.Auth.Me)

			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/auth/register", h.Auth.Register)

				admin.DELETE("/clients/:id", h.Client.Delete)
				admin.DELETE("/appointments/:id", h.Appointment.Delete)
				admin.DELETE("/credit-sales/:id", h.CreditSale.Delete)
				admin.DELETE("/transactions/:id", h.Transaction.Delete)
				admin.DELETE("/expenses/:id", h.Expense.Delete)

				admin.GET("/jobs/stats", h.Job.Stats)
			}

			// Clients
			protected.GET("/clients", h.Client.Index)
			protected.POST("/clients", h.Client.Create)
			protected.GET("/clients/:id", h.Client.Show)
			protected.PUT("/clients/:id", h.Client.Update)
			protected.GET("/clients/:id/credit-sales", h.Client.CreditSales)

			// Appointments (static agenda route before :id routes)
			protected.GET("/appointments/agenda", h.Appointment.Agenda)
			protected.GET("/appointments", h.Appointment.Index)
			protected.POST("/appointments", h.Appointment.Create)
			protected.POST("/appointments/:id/complete", h.Appointment.Complete)
			protected.POST("/appointments/:id/cancel", h.Appointment.Cancel)

			// Credit sales and installments
			protected.GET("/credit-sales", h.CreditSale.Index)
			protected.POST("/credit-sales", h.CreditSale.Create)
			protected.POST("/credit-sales/refresh", h.CreditSale.Refresh)
			protected.GET("/credit-sales/:id", h.CreditSale.Show)
			protected.POST("/installments/:installment_id/pay", h.CreditSale.PayInstallment)

			// Transactions
			protected.GET("/transactions", h.Transaction.Index)
			protected.POST("/transactions", h.Transaction.Create)

			// Expenses
			protected.GET("/expenses", h.Expense.Index)
			protected.POST("/expenses", h.Expense.Create)
			protected.PUT("/expenses/:id", h.Expense.Update)

			// Balance
			protected.GET("/balance", h.Balance.Index)
			protected.GET("/balance/export/:format", h.Balance.Export)
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Mark overdue installments shortly after start, then every hour
	worker.ScheduleEveryImmediate(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Refreshing credit sale statuses...")
		report, err := svcs.CreditSale.RefreshAll(ctx, models.Today())
		if err != nil {
			return err
		}
		logger.Info("[Job] Status refresh done",
			"installments_marked_overdue", report.InstallmentsMarkedOverdue,
			"sales_marked_overdue", report.SalesMarkedOverdue,
			"sales_checked", report.SalesChecked,
		)
		return nil
	})

	logger.Info("Scheduled recurring jobs")
}

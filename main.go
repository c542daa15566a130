package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/internal/ai"
	"github.com/fiqretemirxd/mycardiacrehab/internal/config"
	"github.com/fiqretemirxd/mycardiacrehab/internal/database"
	"github.com/fiqretemirxd/mycardiacrehab/internal/handler"
	"github.com/fiqretemirxd/mycardiacrehab/internal/middleware"
	"github.com/fiqretemirxd/mycardiacrehab/internal/pdf"
	"github.com/fiqretemirxd/mycardiacrehab/internal/repository"
	"github.com/fiqretemirxd/mycardiacrehab/internal/service"
	"github.com/fiqretemirxd/mycardiacrehab/internal/worker"
	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	var logger *zap.Logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	loc := cfg.Location()

	// Connect to MongoDB
	db, err := database.Connect(context.Background(), cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect from database", zap.Error(err))
		}
	}()
	logger.Info("Successfully connected to database")

	// Initialize AI client
	aiClient, err := ai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, logger)
	if err != nil {
		logger.Fatal("Failed to initialize AI client", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.Database, logger)
	exerciseRepo := repository.NewExerciseRepository(db.Database, logger)
	medicationRepo := repository.NewMedicationRepository(db.Database, logger)
	journalRepo := repository.NewJournalRepository(db.Database, logger)
	appointmentRepo := repository.NewAppointmentRepository(db.Database, logger)
	chatRepo := repository.NewChatRepository(db.Database, logger)
	reportRepo := repository.NewReportRepository(db.Database, logger)

	// Initialize PDF generator
	pdfGenerator := pdf.NewPDFGenerator(logger)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
		cfg.Auth.ProviderRegisterCode,
		logger,
	)
	exerciseService := service.NewExerciseService(exerciseRepo, logger)
	medicationService := service.NewMedicationService(medicationRepo, logger)
	journalService := service.NewJournalService(journalRepo, logger)
	appointmentService := service.NewAppointmentService(appointmentRepo, userRepo, logger)
	chatService := service.NewChatService(chatRepo, aiClient, logger)
	progressService := service.NewProgressService(exerciseRepo, medicationRepo, journalRepo, loc, logger)
	reportService := service.NewReportService(
		userRepo,
		exerciseRepo,
		medicationRepo,
		journalRepo,
		chatRepo,
		reportRepo,
		pdfGenerator,
		loc,
		logger,
	)
	userService := service.NewUserService(userRepo, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	exerciseHandler := handler.NewExerciseHandler(exerciseService, logger)
	medicationHandler := handler.NewMedicationHandler(medicationService, logger)
	journalHandler := handler.NewJournalHandler(journalService, logger)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)
	progressHandler := handler.NewProgressHandler(progressService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)
	userHandler := handler.NewUserHandler(userService, logger)

	// Start background dose sweeper
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	worker.StartDoseSweeper(workerCtx, cfg.Sweeper.Interval, cfg.Sweeper.Cutoff, medicationRepo, logger)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add request ID middleware
	r.Use(middleware.RequestIDMiddleware())

	// Add request logging middleware
	r.Use(middleware.RequestLoggingMiddleware(logger))

	// Add error logging middleware
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			logger.Error("health check failed: database unreachable", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "connected",
			"service":  "mycardiacrehab-backend",
		})
	})

	// Public routes
	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	// Authenticated routes
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
	{
		api.GET("/profile", userHandler.Profile)
		api.PUT("/profile", userHandler.UpdateProfile)

		patient := api.Group("")
		patient.Use(middleware.RequireRole(model.RolePatient))
		{
			patient.POST("/exercise", exerciseHandler.Log)
			patient.GET("/exercise", exerciseHandler.History)
			patient.PUT("/exercise/:id", exerciseHandler.Update)
			patient.DELETE("/exercise/:id", exerciseHandler.Delete)

			patient.GET("/medications", medicationHandler.History)
			patient.PATCH("/medications/:id/status", medicationHandler.SetStatus)

			patient.POST("/journal", journalHandler.Record)
			patient.GET("/journal", journalHandler.History)
			patient.PUT("/journal/:id", journalHandler.Update)
			patient.DELETE("/journal/:id", journalHandler.Delete)

			patient.POST("/appointments", appointmentHandler.Book)
			patient.GET("/appointments", appointmentHandler.List)
			patient.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			patient.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)

			patient.POST("/chat/messages", chatHandler.Ask)
			patient.GET("/chat/messages", chatHandler.History)

			patient.GET("/progress/weekly", progressHandler.Weekly)
		}

		provider := api.Group("")
		provider.Use(middleware.RequireRole(model.RoleProvider))
		{
			provider.POST("/medications", medicationHandler.Prescribe)

			provider.POST("/reports/generate", reportHandler.Generate)
			provider.GET("/reports", reportHandler.History)
			provider.GET("/reports/:id", reportHandler.Get)
			provider.GET("/reports/:id/pdf", reportHandler.GetPDF)

			provider.GET("/provider/patients", userHandler.Patients)
			provider.GET("/provider/patients/:id", userHandler.Patient)
			provider.POST("/provider/patients/:id/archive", userHandler.ArchivePatient)

			provider.GET("/provider/appointments", appointmentHandler.ProviderSchedule)
			provider.PATCH("/provider/appointments/:id/complete", appointmentHandler.Complete)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/users", userHandler.Users)
			admin.POST("/users/:id/toggle-active", userHandler.ToggleActive)
			admin.DELETE("/users/:id", userHandler.DeleteUser)
		}
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

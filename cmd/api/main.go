package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placement-portal/config"
	"placement-portal/controllers"
	"placement-portal/middleware"
	"placement-portal/routes"
	"placement-portal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logFile, logWriter := config.InitLogging(cfg)
	if logFile != nil {
		defer logFile.Close()
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	mailer := config.NewSMTPMailer(cfg)
	if !mailer.Configured() {
		log.Println("Warning: SMTP is not configured, status emails will be reported as failed")
	}

	studentService := services.NewStudentService(db)
	adminService := services.NewAdminService(db)
	profileService := services.NewProfileService(db)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db)
	statusService := services.NewStatusService(db, mailer, services.StatusServiceOptions{
		BulkConcurrency: cfg.BulkStatusConcurrency,
		PortalURL:       cfg.PortalBaseURL,
	})

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logWriter))
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})
	router.Use(middleware.RequestID())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	routes.SetupRoutes(router, routes.Handlers{
		Auth:         controllers.NewAuthController(studentService, adminService, cfg.JWTSecret, time.Duration(cfg.JWTExpireHours)*time.Hour),
		Profiles:     controllers.NewProfileController(profileService),
		Applications: controllers.NewApplicationController(applicationService, statusService),
		Jobs:         controllers.NewJobController(jobService),
	}, cfg.JWTSecret)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.ServerPort)
		if cfg.IsProduction() {
			log.Printf("🏭 Running in production mode")
		} else {
			log.Printf("🔧 Running in development mode")
		}
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

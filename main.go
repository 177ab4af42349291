package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"student_attendance/attendancedb"
	"student_attendance/collaborator"
	"student_attendance/config"
	"student_attendance/db"
	"student_attendance/logger"
	"student_attendance/middleware"
	"student_attendance/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	host, _ := os.Hostname()
	appLog := logger.New(log.Default(), logger.Options{
		RollbarToken: cfg.RollbarToken,
		Environment:  cfg.Environment,
		Host:         host,
	})
	defer logger.Close()

	// Persistence collaborator: a child process per call, or the same dispatcher in-process
	var executor collaborator.Executor
	switch cfg.CollaboratorMode {
	case config.ModeInProc:
		store, err := db.Open(cfg.Store)
		if err != nil {
			appLog.Fatal("Error opening store", err)
		}
		defer store.Close()

		if err := db.SeedAdmin(context.Background(), store, cfg.SeedAdminUser, cfg.SeedAdminPassword, attendancedb.HashPassword); err != nil {
			appLog.Warn("Error seeding admin user", err)
		}
		executor = attendancedb.New(store, appLog)
	default:
		executor = collaborator.NewProcessExecutor(cfg.CollaboratorBin, cfg.CollaboratorArgs, appLog)
	}
	client := collaborator.NewClient(executor, cfg.CollaboratorTimeout, appLog)

	// Session revocation: Redis when configured, otherwise this process only
	var revoker middleware.Revoker
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := middleware.InitializeRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			appLog.Fatal("Error connecting to Redis", err)
		}
		defer rdb.Close()
		revoker = middleware.NewRedisRevoker(rdb)
	} else {
		revoker = middleware.NewCacheRevoker()
	}

	tokenService := middleware.NewTokenService([]byte(cfg.JWTSecret), cfg.SessionTTL, revoker)
	tokenService.SecureCookie = !cfg.IsDevelopment()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	corsConfig.AllowMethods = []string{
		"GET",
		"POST",
	}
	r.Use(cors.New(corsConfig))

	// Setup routes
	if err := routes.SetupRoutes(r, client, tokenService, revoker); err != nil {
		appLog.Fatal("Error setting up routes", err)
	}

	// Run server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		appLog.Info("Server listening", map[string]interface{}{"addr": srv.Addr, "collaborator": cfg.CollaboratorMode})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Server forced to shutdown:", err)
	}
}

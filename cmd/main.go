package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/7-central/admin-auth-service/config"
	"github.com/7-central/admin-auth-service/db"
	"github.com/7-central/admin-auth-service/internal/auth/audit"
	"github.com/7-central/admin-auth-service/internal/auth/handler"
	"github.com/7-central/admin-auth-service/internal/auth/limiter"
	repo "github.com/7-central/admin-auth-service/internal/auth/repository/postgres"
	"github.com/7-central/admin-auth-service/internal/auth/service"
)

func main() {
	cfg := config.Load()

	dbPool, err := db.NewPostgresPool(context.Background(), cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to create database pool: %v", err)
	}
	defer dbPool.Close()

	adminRepo := repo.NewPostgresRepository(dbPool)

	loginLimiter := limiter.New(limiter.Config{
		Threshold:        cfg.LoginMaxAttempts,
		BaseDelay:        time.Duration(cfg.LockoutBaseDelaySeconds) * time.Second,
		MaxDelay:         time.Duration(cfg.LockoutMaxDelaySeconds) * time.Second,
		InactivityWindow: time.Duration(cfg.LoginAttemptWindowMinutes) * time.Minute,
	})
	defer loginLimiter.Close()

	auditRecorder := audit.NewStoreRecorder(adminRepo, audit.Config{
		BufferSize:   cfg.AuditBufferSize,
		WriteTimeout: time.Duration(cfg.AuditWriteTimeoutSeconds) * time.Second,
	})
	defer auditRecorder.Close()

	sessionService := service.NewSessionService(cfg.SessionSecret, cfg.SessionExpiryHours)
	loginService := service.NewLoginService(adminRepo, sessionService, loginLimiter, auditRecorder,
		time.Duration(cfg.DBQueryTimeoutSeconds)*time.Second)
	authHandler := handler.NewAuthHandler(loginService, cfg.IsProduction())

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		if err := app.Shutdown(); err != nil {
			log.Printf("warn: server shutdown: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

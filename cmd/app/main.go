package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tracking/cmd"
	httpin "tracking/internal/adapters/in/http"
	"tracking/internal/adapters/out/postgres"
	"tracking/internal/pkg/logger"
)

func main() {
	log := logger.NewLogger()

	config := getConfigs(log)

	gormDB, err := openDatabase(config)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatal("failed to migrate database schema", "error", err)
	}

	ctx := context.Background()
	root, err := cmd.NewCompositionRoot(ctx, config, gormDB, log)
	if err != nil {
		log.Fatal("failed to build composition root", "error", err)
	}

	jobManager := root.CreateJobManager(config)
	if err := jobManager.StartAll(); err != nil {
		log.Fatal("failed to start scheduled jobs", "error", err)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true

	server := httpin.NewServer(root.CreateHandlers(), log, root.Metrics())
	server.RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", "error", err)
	}
}

func getConfigs(log logger.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Info("no .env file found, using process environment")
	}

	return cmd.Config{
		HTTPPort:   getEnvOr("HTTP_PORT", "8080"),
		DBHost:     mustEnv(log, "DB_HOST"),
		DBPort:     getEnvOr("DB_PORT", "5432"),
		DBUser:     mustEnv(log, "DB_USER"),
		DBPassword: mustEnv(log, "DB_PASSWORD"),
		DBName:     mustEnv(log, "DB_NAME"),
		DBSslMode:  getEnvOr("DB_SSLMODE", "disable"),

		GmailClientID:     os.Getenv("GMAIL_CLIENT_ID"),
		GmailClientSecret: os.Getenv("GMAIL_CLIENT_SECRET"),
		GmailRefreshToken: os.Getenv("GMAIL_REFRESH_TOKEN"),
		GmailSender:       os.Getenv("GMAIL_SENDER"),

		DiscountCronSpec: os.Getenv("DISCOUNT_CRON_SPEC"),
		MetricsNamespace: getEnvOr("METRICS_NAMESPACE", "tracking"),
	}
}

func getEnvOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustEnv(log logger.Logger, key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatal("missing required environment variable", "key", key)
	}
	return value
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
}

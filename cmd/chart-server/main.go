package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/acuchart/acuchart/internal/config"
	"github.com/acuchart/acuchart/internal/domain/account"
	"github.com/acuchart/acuchart/internal/domain/chart"
	"github.com/acuchart/acuchart/internal/domain/clinic"
	"github.com/acuchart/acuchart/internal/narrative"
	"github.com/acuchart/acuchart/internal/platform/auth"
	"github.com/acuchart/acuchart/internal/platform/db"
	"github.com/acuchart/acuchart/internal/platform/middleware"
	"github.com/acuchart/acuchart/internal/printout"
	"github.com/acuchart/acuchart/internal/snapshot"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chart-server",
		Short: "Acupuncture charting API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the charting API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.Options{MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Migrate(ctx, pool); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println("Migrations applied.")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.Options{MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
			if err != nil {
				return err
			}
			defer pool.Close()

			tokens := auth.NewTokenIssuer([]byte(cfg.SessionSecret), time.Duration(cfg.SessionTTLHours)*time.Hour)
			svc := account.NewService(account.NewAccountRepoPG(pool), tokens, cfg.ApprovalMode == config.ApprovalModeAuto)

			acct, err := svc.CreateAdmin(ctx, username, password)
			if err != nil {
				return err
			}
			fmt.Printf("Admin account %s created (%s).\n", acct.Username, acct.ID)
			return nil
		},
	}
	cmd.Flags().String("username", "", "Admin username")
	cmd.Flags().String("password", "", "Admin password")
	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.Options{MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	tokens := auth.NewTokenIssuer([]byte(cfg.SessionSecret), time.Duration(cfg.SessionTTLHours)*time.Hour)

	// Services
	accountSvc := account.NewService(account.NewAccountRepoPG(pool), tokens, cfg.ApprovalMode == config.ApprovalModeAuto)
	clinicSvc := clinic.NewService(clinic.NewProfileRepoPG(pool))
	chartSvc := chart.NewService(chart.NewChartRepoPG(pool))
	snapshotSvc := snapshot.NewService(chartSvc, clinicSvc)

	narrativeClient := narrative.NewHTTPClient(narrative.ClientConfig{
		BaseURL: cfg.NarrativeBaseURL,
		APIKey:  cfg.NarrativeAPIKey,
		Model:   cfg.NarrativeModel,
		Timeout: time.Duration(cfg.NarrativeTimeoutSeconds) * time.Second,
	}, logger)
	narrativeSvc := narrative.NewService(narrativeClient, chartSvc, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Register and login stay open; everything else under /api needs a
	// valid session token.
	e.Use(auth.Middleware(tokens, func(c echo.Context) bool {
		p := c.Request().URL.Path
		return p == "/health" ||
			strings.HasPrefix(p, "/api/auth/register") ||
			strings.HasPrefix(p, "/api/auth/login")
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	api := e.Group("/api")
	authGroup := api.Group("/auth")
	adminGroup := api.Group("/admin", auth.RequireAdmin())

	account.NewHandler(accountSvc).RegisterRoutes(authGroup, adminGroup)
	clinic.NewHandler(clinicSvc).RegisterRoutes(api)
	chart.NewHandler(chartSvc).RegisterRoutes(api)
	narrative.NewHandler(narrativeSvc).RegisterRoutes(api)
	printout.NewHandler(chartSvc, clinicSvc).RegisterRoutes(api)
	snapshot.NewHandler(snapshotSvc).RegisterRoutes(api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wpnicholson/disease-outbreak/internal/config"
	"github.com/wpnicholson/disease-outbreak/internal/domain/audit"
	"github.com/wpnicholson/disease-outbreak/internal/domain/disease"
	"github.com/wpnicholson/disease-outbreak/internal/domain/patient"
	"github.com/wpnicholson/disease-outbreak/internal/domain/report"
	"github.com/wpnicholson/disease-outbreak/internal/domain/reporter"
	"github.com/wpnicholson/disease-outbreak/internal/domain/user"
	"github.com/wpnicholson/disease-outbreak/internal/platform/auth"
	"github.com/wpnicholson/disease-outbreak/internal/platform/db"
	"github.com/wpnicholson/disease-outbreak/internal/platform/export"
	"github.com/wpnicholson/disease-outbreak/internal/platform/middleware"
	"github.com/wpnicholson/disease-outbreak/internal/platform/reporting"
)

func main() {
	root := &cobra.Command{
		Use:   "outbreak-server",
		Short: "Disease outbreak record-keeping API",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	var migrationsDir string
	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(migrationsDir, false)
		},
	}
	migrateStatusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(migrationsDir, true)
		},
	}
	migrateCmd.PersistentFlags().StringVar(&migrationsDir, "dir", "migrations", "migrations directory")
	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)

	root.AddCommand(serveCmd, migrateCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Repositories and services.
	auditRepo := audit.NewRepo(pool)
	recorder := audit.NewRecorder(auditRepo, logger)

	userRepo := user.NewRepo(pool)
	reporterRepo := reporter.NewRepo(pool)
	patientRepo := patient.NewRepo(pool)
	diseaseRepo := disease.NewRepo(pool)
	reportRepo := report.NewRepo(pool)

	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	userSvc := user.NewService(userRepo, tokens)
	patientSvc := patient.NewService(patientRepo, recorder)
	reportSvc := report.NewService(pool, reportRepo, reporterRepo, patientRepo, diseaseRepo, recorder)

	// Route groups: signup and login stay open, everything else requires an
	// authenticated identity.
	publicAuth := e.Group("/api/v1/auth")

	api := e.Group("/api/v1")
	if cfg.IsDev() {
		api.Use(auth.DevAuthMiddleware())
	} else {
		api.Use(auth.JWTMiddleware(auth.JWTConfig{SigningKey: []byte(cfg.JWTSecret)}))
	}

	user.NewHandler(userSvc).RegisterRoutes(publicAuth, api)
	patient.NewHandler(patientSvc).RegisterRoutes(api)
	report.NewHandler(reportSvc).RegisterRoutes(api)
	reporter.NewHandler(reporterRepo, recorder).RegisterRoutes(api)
	audit.NewHandler(auditRepo).RegisterRoutes(api)
	reporting.NewHandler(pool).RegisterRoutes(api)
	export.NewHandler(reportSvc, recorder).RegisterRoutes(api)

	// Start and wait for shutdown.
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runMigrate(dir string, statusOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	m := db.NewMigrator(pool, dir)

	if statusOnly {
		statuses, err := m.Status(ctx)
		if err != nil {
			return err
		}
		for _, st := range statuses {
			state := "pending"
			if st.Applied {
				state = fmt.Sprintf("applied at %s", st.AppliedAt.Format(time.RFC3339))
			}
			fmt.Printf("%03d %-40s %s\n", st.Version, st.Name, state)
		}
		return nil
	}

	count, err := m.Up(ctx)
	if err != nil {
		return err
	}
	logger.Info().Int("applied", count).Msg("migrations complete")
	return nil
}

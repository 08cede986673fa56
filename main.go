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

	"github.com/CAFxX/httpcompression"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"doctor-portal-server/internal/config"
	"doctor-portal-server/internal/models"
	"doctor-portal-server/internal/routes"
	"doctor-portal-server/internal/store"
	"doctor-portal-server/internal/utils"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "doctor-portal",
		Short:        "Doctor portal web server",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the doctors and patients tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			if err := models.Migrate(db); err != nil {
				return err
			}
			logger.Info().Str("driver", cfg.Database.Driver).Msg("migrations applied")
			return nil
		},
	}
}

// bootstrap loads the optional .env file, the configuration and the logger.
func bootstrap() (*config.Config, zerolog.Logger, error) {
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg)
	if envErr != nil {
		logger.Debug().Err(envErr).Msg("no .env file loaded")
	}
	return cfg, logger, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if !cfg.IsProduction() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger.Level(level)
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	return models.InitDB(models.DatabaseConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Debug:  cfg.LogLevel == "debug",
	})
}

func runServer() error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("connected to database")

	if cfg.AutoMigrate {
		if err := models.Migrate(db); err != nil {
			return err
		}
	}

	router, err := routes.NewRouter(routes.Dependencies{
		Config:        cfg,
		Practitioners: store.NewPractitionerStore(db),
		Patients:      store.NewPatientStore(db),
		Sessions:      utils.NewSessionCodec(cfg),
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		return fmt.Errorf("compression adapter: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           compress(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info().Msg("server stopped")
	return nil
}

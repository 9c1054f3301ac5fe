package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/IsaacSuo/Web-health/internal/api"
	"github.com/IsaacSuo/Web-health/internal/catalog"
	"github.com/IsaacSuo/Web-health/internal/db"
	"github.com/IsaacSuo/Web-health/internal/i18n"
	"github.com/IsaacSuo/Web-health/internal/services"
)

const shutdownTimeout = 10 * time.Second

type ServeCmd struct {
	SkipSeed bool `help:"Do not reconcile the built-in catalog before serving."`
}

func (cmd *ServeCmd) Run(ctx *Context) error {
	cfg, logger, err := ctx.load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}
	time.Local = cfg.Location

	database, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close(database)
	}()

	if !cmd.SkipSeed {
		content, err := catalog.Default()
		if err != nil {
			return err
		}
		report, err := applyCatalog(database, content)
		if err != nil {
			return err
		}
		logger.Info().Int("changed", report.Changed()).Msg("catalog reconciled")
	}

	needsSetup, err := services.NewSetupService(db.NewRepositories(database).Users).RequiresInitialSetup()
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if needsSetup {
		logger.Info().Msg("no accounts yet; register through the API or run `webhealth seed --admin-email`")
	}

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(database, api.Options{
		SecretKey:    cfg.SecretKey,
		Location:     cfg.Location,
		CookieSecure: cfg.CookieSecure,
		I18n:         i18nManager,
		Logger:       logger,
		Now:          ctx.Now,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := api.NewApp(handler, cfg.CORSOrigins)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	logger.Info().
		Str("port", cfg.Port).
		Str("db_driver", cfg.DBDriver).
		Str("tz", cfg.Location.String()).
		Msg("webhealth listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

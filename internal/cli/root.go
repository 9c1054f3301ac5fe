package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/IsaacSuo/Web-health/internal/config"
	"github.com/IsaacSuo/Web-health/internal/db"
	"github.com/IsaacSuo/Web-health/internal/logging"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Context is handed to every command's Run method.
type Context struct {
	ConfigFile string
	EnvFile    string

	Stdout io.Writer
	Stdin  *os.File
	Now    func() time.Time

	// ReadPassword prompts for a secret; nil reads from Stdin without echo.
	ReadPassword func(prompt string) (string, error)

	stdinReader *bufio.Reader
}

func (ctx *Context) now() time.Time {
	if ctx.Now != nil {
		return ctx.Now()
	}
	return time.Now()
}

func (ctx *Context) stdout() io.Writer {
	if ctx.Stdout != nil {
		return ctx.Stdout
	}
	return os.Stdout
}

func (ctx *Context) printf(format string, args ...any) {
	fmt.Fprintf(ctx.stdout(), format, args...)
}

func (ctx *Context) load() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(config.Options{ConfigFile: ctx.ConfigFile, EnvFile: ctx.EnvFile})
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	if cfg.TimezoneFallback {
		logger.Warn().Str("tz", cfg.TimezoneName).Msg("invalid TZ, falling back to UTC")
	}
	return cfg, logger, nil
}

func openDatabase(cfg config.Config, logger zerolog.Logger) (*gorm.DB, error) {
	options := cfg.DatabaseOptions()
	options.Logger = logger
	database, err := db.Open(options)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, nil
}

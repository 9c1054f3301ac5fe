package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IsaacSuo/Web-health/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type Options struct {
	Driver string
	Path   string
	DSN    string
	Logger zerolog.Logger
}

// Open connects to the configured store and brings its schema up to date.
// SQLite uses the embedded forward-only migrations; the server databases use AutoMigrate.
func Open(options Options) (*gorm.DB, error) {
	switch strings.ToLower(strings.TrimSpace(options.Driver)) {
	case "", DriverSQLite:
		return OpenSQLite(options.Path, options.Logger)
	case DriverPostgres:
		return openServerDatabase(postgres.Open(options.DSN), options)
	case DriverMySQL:
		return openServerDatabase(mysql.Open(options.DSN), options)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", options.Driver)
	}
}

func OpenSQLite(dbPath string, logger zerolog.Logger) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), gormConfig(logger))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyEmbeddedMigrations(database); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return database, nil
}

func openServerDatabase(dialector gorm.Dialector, options Options) (*gorm.DB, error) {
	if strings.TrimSpace(options.DSN) == "" {
		return nil, fmt.Errorf("%s driver requires a DSN", options.Driver)
	}

	database, err := gorm.Open(dialector, gormConfig(options.Logger))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", options.Driver, err)
	}
	if err := database.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("auto migrate %s: %w", options.Driver, err)
	}
	return database, nil
}

func gormConfig(logger zerolog.Logger) *gorm.Config {
	gormLog := logger.With().Str("component", "gorm").Logger()
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			&gormLog,
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}
}

// Close releases the underlying connection pool.
func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/IsaacSuo/Web-health/internal/db"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultPort     = "8080"
	DefaultTimezone = "Asia/Shanghai"
	DefaultLanguage = "zh"

	minSecretKeyLength = 32
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Options struct {
	// ConfigFile is an optional YAML file whose keys mirror the env names in lower case.
	ConfigFile string
	// EnvFile is loaded when set; otherwise ./.env is loaded if present.
	EnvFile string
}

type Config struct {
	Port            string
	DBDriver        string
	DBPath          string
	DBDSN           string
	SecretKey       string
	CookieSecure    bool
	TimezoneName    string
	Location        *time.Location
	DefaultLanguage string
	LogLevel        string
	LogFormat       string
	CORSOrigins     []string

	// TimezoneFallback is set when TZ could not be loaded and UTC was used instead.
	TimezoneFallback bool
}

func Load(options Options) (Config, error) {
	if err := loadEnvFile(options.EnvFile); err != nil {
		return Config{}, err
	}

	settings := viper.New()
	settings.SetDefault("port", DefaultPort)
	settings.SetDefault("db_driver", db.DriverSQLite)
	settings.SetDefault("db_path", filepath.Join("data", "webhealth.db"))
	settings.SetDefault("db_dsn", "")
	settings.SetDefault("secret_key", "")
	settings.SetDefault("cookie_secure", false)
	settings.SetDefault("tz", DefaultTimezone)
	settings.SetDefault("default_language", DefaultLanguage)
	settings.SetDefault("log_level", "info")
	settings.SetDefault("log_format", "json")
	settings.SetDefault("cors_origins", "")
	settings.AutomaticEnv()

	if options.ConfigFile != "" {
		settings.SetConfigFile(options.ConfigFile)
		settings.SetConfigType("yaml")
		if err := settings.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", options.ConfigFile, err)
		}
	}

	port, err := resolvePort(settings.GetString("port"))
	if err != nil {
		return Config{}, err
	}
	driver, err := resolveDriver(settings.GetString("db_driver"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:            port,
		DBDriver:        driver,
		DBPath:          strings.TrimSpace(settings.GetString("db_path")),
		DBDSN:           strings.TrimSpace(settings.GetString("db_dsn")),
		SecretKey:       strings.TrimSpace(settings.GetString("secret_key")),
		CookieSecure:    settings.GetBool("cookie_secure"),
		DefaultLanguage: strings.TrimSpace(settings.GetString("default_language")),
		LogLevel:        strings.TrimSpace(settings.GetString("log_level")),
		LogFormat:       strings.TrimSpace(settings.GetString("log_format")),
		CORSOrigins:     splitList(settings.GetString("cors_origins")),
	}
	if driver != db.DriverSQLite && cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("DB_DSN is required for driver %s", driver)
	}

	cfg.TimezoneName = strings.TrimSpace(settings.GetString("tz"))
	cfg.Location, cfg.TimezoneFallback = resolveLocation(cfg.TimezoneName)
	return cfg, nil
}

// ValidateForServe checks the settings only the HTTP server needs.
func (cfg Config) ValidateForServe() error {
	_, err := resolveSecretKey(cfg.SecretKey)
	return err
}

func (cfg Config) DatabaseOptions() db.Options {
	return db.Options{Driver: cfg.DBDriver, Path: cfg.DBPath, DSN: cfg.DBDSN}
}

func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env (%s): %w", path, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("load env (.env): %w", err)
		}
	}
	return nil
}

func resolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return DefaultPort, nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(value), nil
}

func resolveDriver(raw string) (string, error) {
	driver := strings.ToLower(strings.TrimSpace(raw))
	switch driver {
	case "":
		return db.DriverSQLite, nil
	case db.DriverSQLite, db.DriverPostgres, db.DriverMySQL:
		return driver, nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", raw)
	}
}

func resolveLocation(name string) (*time.Location, bool) {
	if name == "" {
		return time.UTC, true
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, true
	}
	return location, false
}

func splitList(raw string) []string {
	values := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Storage string

const (
	StorageMemory   Storage = "memory"
	StorageSQLite   Storage = "sqlite"
	StoragePostgres Storage = "postgres"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config se arma desde variables de entorno (y .env si existe).
type Config struct {
	Addr string // ":8080"

	Storage    Storage
	DBDSN      string
	SQLitePath string

	Locale          string
	DefaultFoodKcal float64

	// AuthVerifyURL vacío => modo dev (X-Debug-User-ID).
	AuthVerifyURL string
	AuthAPIKey    string

	LogLevel  string
	LogFormat string
	AppName   string

	ShutdownTimeout time.Duration
}

// Load lee .env (opcional) y luego el entorno.
// Un .env ausente no es error; uno ilegible sí.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv es Load sin tocar archivos; getenv se inyecta para tests.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Addr:            ":8080",
		DBDSN:           strings.TrimSpace(getenv("DB_DSN")),
		SQLitePath:      strings.TrimSpace(getenv("SQLITE_PATH")),
		AuthVerifyURL:   strings.TrimSpace(getenv("AUTH_VERIFY_URL")),
		AuthAPIKey:      strings.TrimSpace(getenv("AUTH_API_KEY")),
		Locale:          "es",
		DefaultFoodKcal: 350,
		LogLevel:        getenv("LOG_LEVEL"),
		LogFormat:       getenv("LOG_FORMAT"),
		AppName:         getenv("APP_NAME"),
		ShutdownTimeout: 10 * time.Second,
	}
	if cfg.AppName == "" {
		cfg.AppName = "pet-care"
	}

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		cfg.Addr = ":" + v
	}
	if v := strings.TrimSpace(getenv("LOCALE")); v != "" {
		cfg.Locale = v
	}
	if v := strings.TrimSpace(getenv("DEFAULT_FOOD_KCAL")); v != "" {
		n, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%w: DEFAULT_FOOD_KCAL must be a positive number", ErrInvalidConfig)
		}
		cfg.DefaultFoodKcal = n
	}
	if v := strings.TrimSpace(getenv("SHUTDOWN_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: SHUTDOWN_TIMEOUT: %v", ErrInvalidConfig, err)
		}
		cfg.ShutdownTimeout = d
	}

	// Si no piden backend explícito, se infiere: DSN => postgres, path => sqlite.
	switch Storage(strings.ToLower(strings.TrimSpace(getenv("STORAGE")))) {
	case "":
		switch {
		case cfg.DBDSN != "":
			cfg.Storage = StoragePostgres
		case cfg.SQLitePath != "":
			cfg.Storage = StorageSQLite
		default:
			cfg.Storage = StorageMemory
		}
	case StorageMemory:
		cfg.Storage = StorageMemory
	case StorageSQLite:
		cfg.Storage = StorageSQLite
		if cfg.SQLitePath == "" {
			cfg.SQLitePath = "pet-care.db"
		}
	case StoragePostgres:
		if cfg.DBDSN == "" {
			return Config{}, fmt.Errorf("%w: STORAGE=postgres requires DB_DSN", ErrInvalidConfig)
		}
		cfg.Storage = StoragePostgres
	default:
		return Config{}, fmt.Errorf("%w: unknown STORAGE %q", ErrInvalidConfig, getenv("STORAGE"))
	}

	return cfg, nil
}

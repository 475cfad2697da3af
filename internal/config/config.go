package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreJSON     = "json"
	StorePostgres = "postgres"
)

var defaultChannelLinks = []string{
	"https://t.me/washington_school1",
	"https://t.me/washington_school_ws",
}

// Config holds all application configuration
type Config struct {
	BotToken     string
	AdminIDs     map[int64]bool
	ChannelLinks []string

	StoreDriver    string
	DataFile       string
	ExportDir      string
	MigrationsPath string

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	Database DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:       strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		AdminIDs:       parseAdminIDs(os.Getenv("ADMIN_TELEGRAM_ID")),
		ChannelLinks:   parseList(getEnv("CHANNEL_LINKS", strings.Join(defaultChannelLinks, ","))),
		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", StoreJSON)),
		DataFile:       getEnv("DATA_FILE", "data.json"),
		ExportDir:      getEnv("EXPORT_DIR", os.TempDir()),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "olympiad"),
			User:     getEnv("DB_USER", "olympiad"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 72*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval, err = getDuration("SESSION_SWEEP_INTERVAL", time.Hour); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	switch cfg.StoreDriver {
	case StoreJSON:
	case StorePostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required when STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q; allowed: json, postgres", cfg.StoreDriver)
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// AdminList returns the allow-listed chat ids
func (c *Config) AdminList() []int64 {
	ids := make([]int64, 0, len(c.AdminIDs))
	for id := range c.AdminIDs {
		ids = append(ids, id)
	}
	return ids
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func parseAdminIDs(raw string) map[int64]bool {
	ids := map[int64]bool{}
	for _, p := range parseList(raw) {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		ids[v] = true
	}
	return ids
}

func parseList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

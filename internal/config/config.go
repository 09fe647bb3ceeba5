package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime settings for the MCP server
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080
	Ipify    struct {
		APIKey  string
		BaseURL string
		Timeout time.Duration
	} // geo.ipify.org credentials
	Jobs struct {
		DataPath string // empty means the bundled dataset
	}
	Map struct {
		TileTemplate string
		InitialZoom  int
	}
	NotificationTTL    time.Duration
	SessionIdleTimeout time.Duration
}

// Load populates config from environment variables, reading a .env file
// first when one is present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := Config{
		LogLevel:           getEnvString("LOG_LEVEL", "info"),
		Host:               getEnvString("MCP_HOST", "0.0.0.0"),
		Port:               getEnvString("PORT", "8080"),
		NotificationTTL:    getEnvDuration("NOTIFICATION_TTL", 5*time.Second),
		SessionIdleTimeout: getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
	}

	cfg.Ipify.APIKey = os.Getenv("IPIFY_API_KEY")
	cfg.Ipify.BaseURL = os.Getenv("IPIFY_BASE_URL")
	cfg.Ipify.Timeout = getEnvDuration("IPIFY_TIMEOUT", 10*time.Second)

	cfg.Jobs.DataPath = os.Getenv("JOBS_DATA_PATH")

	cfg.Map.TileTemplate = getEnvString("MAP_TILE_TEMPLATE", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png")
	cfg.Map.InitialZoom = getEnvInt("MAP_INITIAL_ZOOM", 13)

	var missingVars []string

	if cfg.Ipify.APIKey == "" {
		missingVars = append(missingVars, "IPIFY_API_KEY")
	}

	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

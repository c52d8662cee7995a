package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process configuration loaded from the environment.
type Config struct {
	ServerPort int
	LogLevel   string

	Database DatabaseConfig

	// JWTSecret signs identity tokens. The server refuses to start
	// without it.
	JWTSecret string
	TokenTTL  time.Duration

	RateBurst  int
	RatePerSec int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

const defaultTokenTTL = 8 * time.Hour

// Load reads configuration from the environment. In dev mode a .env file
// is loaded first so local runs do not need exported variables.
func Load() Config {
	if os.Getenv("ENV") == "dev" {
		_ = godotenv.Load()
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 4000),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "atp"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "atp_hospital"),
			UseSSL:   getEnvBool("DB_USE_SSL", false),
		},
		JWTSecret:  os.Getenv("JWT_SECRET"),
		TokenTTL:   getEnvDuration("TOKEN_TTL", defaultTokenTTL),
		RateBurst:  getEnvInt("RATE_BURST", 20),
		RatePerSec: getEnvInt("RATE_PER_SEC", 10),
	}
}

// PostgresURL renders the database settings as a postgres:// DSN usable by
// both the connection pool and the migration runner.
func (c DatabaseConfig) PostgresURL() string {
	sslmode := "disable"
	if c.UseSSL {
		sslmode = "require"
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		User:   url.UserPassword(c.User, c.Password),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", sslmode)
	u.RawQuery = q.Encode()
	return u.String()
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort    string
	CORSOrigins string

	DBDriver       string
	DatabaseDSN    string // overrides the DB* parts when set
	DBUser         string
	DBPassword     string
	DBName         string
	DBHost         string // host name or /cloudsql/<instance> socket directory
	DBPort         string
	SQLitePath     string
	DBMaxOpenConns int
	DBMaxIdleConns int

	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),

		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DatabaseDSN:    getEnv("DATABASE_DSN", ""),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "production"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		SQLitePath:     getEnv("SQLITE_PATH", "production.db"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// PostgresDSN returns DatabaseDSN when set, otherwise a key/value DSN built
// from the DB* parts. Cloud SQL socket directories are passed as host without
// a port.
func (c *Config) PostgresDSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}
	parts := []string{
		"host=" + c.DBHost,
		"user=" + c.DBUser,
		"password=" + c.DBPassword,
		"dbname=" + c.DBName,
	}
	if !strings.HasPrefix(c.DBHost, "/") {
		parts = append(parts, "port="+c.DBPort, "sslmode=disable")
	}
	return strings.Join(parts, " ")
}

// AllowedOrigins returns the trimmed, comma separated CORS origins.
func (c *Config) AllowedOrigins() string {
	origins := strings.Split(c.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return strings.Join(origins, ",")
}

// Warnings lists settings that still carry development defaults.
func (c *Config) Warnings() []string {
	var w []string
	if c.DBDriver == DriverPostgres && c.DatabaseDSN == "" && c.DBPassword == "postgres" {
		w = append(w, "DB_PASSWORD uses the default value, set real credentials for production")
	}
	if c.DBDriver != DriverPostgres && c.DBDriver != DriverSQLite {
		w = append(w, fmt.Sprintf("unknown DB_DRIVER %q, falling back to %s", c.DBDriver, DriverPostgres))
	}
	return w
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

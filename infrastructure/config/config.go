package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is shared by the warehouse UI and the products API binaries.
type Config struct {
	AppAddr           string
	ProductsAPIURL    string
	ProductsAPIAddr   string
	SQLitePath        string
	LogLevel          string
	LogDevelopment    bool
	ViewSessionTTL    time.Duration
	HTTPClientTimeout time.Duration
}

// Load reads the process environment, after merging any variables found in
// the given .env files. Missing files are ignored; variables already set in
// the environment win over file values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	return Config{
		AppAddr:           getenv("APP_ADDR", ":8080"),
		ProductsAPIURL:    strings.TrimRight(getenv("PRODUCTS_API_URL", "http://localhost:8081"), "/"),
		ProductsAPIAddr:   getenv("PRODUCTS_API_ADDR", ":8081"),
		SQLitePath:        getenv("SQLITE_PATH", "products.db"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogDevelopment:    getbool("LOG_DEV", false),
		ViewSessionTTL:    getduration("VIEW_SESSION_TTL", 12*time.Hour),
		HTTPClientTimeout: getduration("HTTP_CLIENT_TIMEOUT", 10*time.Second),
	}, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getenv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getduration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getenv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

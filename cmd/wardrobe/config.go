package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fwojciec/wardrobe"
	"github.com/fwojciec/wardrobe/gemini"
	"github.com/joho/godotenv"
)

// Environment variables read by the CLI.
const (
	envAPIKey  = "GEMINI_API_KEY"
	envModel   = "WARDROBE_MODEL"
	envDB      = "WARDROBE_DB"
	envRPS     = "WARDROBE_RPS"
	envRetries = "WARDROBE_RETRIES"
	envTimeout = "WARDROBE_TIMEOUT"
)

// Configuration defaults.
const (
	DefaultRPS     = 1.0
	DefaultRetries = 3
	DefaultTimeout = 60 * time.Second
)

// Config holds settings resolved from the environment and an optional .env file.
type Config struct {
	APIKey string
	Model  string

	// DBPath is empty unless set; see defaultDBPath.
	DBPath  string
	RPS     float64
	Retries int
	Timeout time.Duration
}

// LoadConfig resolves configuration. Variables set in the environment take
// precedence over those in envFile; a missing envFile is not an error.
func LoadConfig(getenv func(string) string, envFile string) (*Config, error) {
	file, err := readEnvFile(envFile)
	if err != nil {
		return nil, err
	}
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return file[key]
	}

	cfg := &Config{
		APIKey:  lookup(envAPIKey),
		Model:   lookup(envModel),
		DBPath:  lookup(envDB),
		RPS:     DefaultRPS,
		Retries: DefaultRetries,
		Timeout: DefaultTimeout,
	}
	if cfg.Model == "" {
		cfg.Model = gemini.DefaultModel
	}

	if v := lookup(envRPS); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return nil, wardrobe.Errorf(wardrobe.EINVALID, "%s must be a non-negative number, got %q", envRPS, v)
		}
		cfg.RPS = rps
	}
	if v := lookup(envRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, wardrobe.Errorf(wardrobe.EINVALID, "%s must be a non-negative integer, got %q", envRetries, v)
		}
		cfg.Retries = n
	}
	if v := lookup(envTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, wardrobe.Errorf(wardrobe.EINVALID, "%s must be a duration such as 90s, got %q", envTimeout, v)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// RequireAPIKey returns EINVALID when no API key is configured.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return wardrobe.Errorf(wardrobe.EINVALID, "%s not set. Get a key at https://aistudio.google.com/apikey", envAPIKey)
	}
	return nil
}

// RetryDelays returns exponential backoff delays starting at one second,
// one per allowed retry.
func (c *Config) RetryDelays() []time.Duration {
	delays := make([]time.Duration, c.Retries)
	for i := range delays {
		delays[i] = time.Second << i
	}
	return delays
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, wardrobe.WrapError(wardrobe.EINVALID, err, "read %s", path)
	}
	return env, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wardrobe.db"
	}
	dir := filepath.Join(home, ".wardrobe")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "wardrobe.db")
}

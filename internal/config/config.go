package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverRedis  = "redis"
	DriverBadger = "badger"
)

// Config holds the pagehighlight service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	Highlight HighlightConfig `yaml:"highlight"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// StorageConfig holds upload store settings.
type StorageConfig struct {
	Driver           string       `yaml:"driver"` // redis, badger (default: badger)
	Addrs            []string     `yaml:"addrs"`
	Password         string       `yaml:"password"`
	Badger           BadgerConfig `yaml:"badger"`
	KeyPrefix        string       `yaml:"key_prefix"`
	UploadTTLSec     int          `yaml:"upload_ttl_sec"` // 0 = no expiry
	ReadinessTimeout int          `yaml:"readiness_timeout_sec"`
}

// BadgerConfig holds embedded store settings.
type BadgerConfig struct {
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

// HighlightConfig holds matching settings.
type HighlightConfig struct {
	DefaultScope   string `yaml:"default_scope"` // compat, all, first
	MaxBatchSize   int    `yaml:"max_batch_size"`
	PoolSize       int    `yaml:"pool_size"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML config bytes, expanding ${VAR} references, then applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverBadger
	}
	if c.Storage.ReadinessTimeout <= 0 {
		c.Storage.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "pagehighlight:"
	}
	if c.Highlight.DefaultScope == "" {
		c.Highlight.DefaultScope = "compat"
	}
	if c.Highlight.MaxBatchSize <= 0 {
		c.Highlight.MaxBatchSize = 100
	}
	if c.Highlight.PoolSize <= 0 {
		c.Highlight.PoolSize = runtime.GOMAXPROCS(0)
	}
	if c.Highlight.MaxUploadBytes <= 0 {
		c.Highlight.MaxUploadBytes = 50 << 20
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Storage.Driver {
	case DriverRedis:
		if len(c.Storage.Addrs) == 0 {
			return fmt.Errorf("storage.addrs is required for driver %q", DriverRedis)
		}
	case DriverBadger:
		if !c.Storage.Badger.InMemory && c.Storage.Badger.Path == "" {
			return fmt.Errorf("storage.badger.path is required unless storage.badger.in_memory is set")
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q", DriverRedis, DriverBadger, c.Storage.Driver)
	}
	if c.Storage.UploadTTLSec < 0 {
		return fmt.Errorf("storage.upload_ttl_sec must not be negative, got %d", c.Storage.UploadTTLSec)
	}
	switch c.Highlight.DefaultScope {
	case "compat", "all", "first":
		// ok
	default:
		return fmt.Errorf(
			"highlight.default_scope must be \"compat\", \"all\" or \"first\", got %q",
			c.Highlight.DefaultScope,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

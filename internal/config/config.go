// ABOUTME: Fittrack configuration management with backend selection.
// ABOUTME: JSON settings file, environment overrides, and store/cache factories.

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/united-manufacturing-hub/umh-utils/env"

	"github.com/harperreed/fittrack/internal/cache"
	"github.com/harperreed/fittrack/internal/store"
)

// Config stores fittrack configuration.
type Config struct {
	Store     StoreConfig     `json:"store"`
	Cache     CacheConfig     `json:"cache"`
	Server    ServerConfig    `json:"server"`
	Nutrition NutritionConfig `json:"nutrition"`
	Photos    PhotosConfig    `json:"photos"`
}

// StoreConfig selects the document store.
type StoreConfig struct {
	// Backend is "sqlite" (default), "badger" or "surreal".
	Backend string `json:"backend,omitempty"`

	// DataDir holds fittrack.db for sqlite and the badger directory.
	// Supports ~ expansion. Defaults to ~/.local/share/fittrack.
	DataDir string `json:"data_dir,omitempty"`

	SurrealURL       string `json:"surreal_url,omitempty"`
	SurrealNamespace string `json:"surreal_namespace,omitempty"`
	SurrealDatabase  string `json:"surreal_database,omitempty"`
	SurrealUser      string `json:"surreal_user,omitempty"`
	SurrealPassword  string `json:"surreal_password,omitempty"`
}

// CacheConfig selects the read-through cache.
type CacheConfig struct {
	// Backend is "memory" (default), "redis", "charm" or "none".
	Backend string `json:"backend,omitempty"`

	// TTL is a Go duration string. Zero keeps entries until invalidated.
	TTL string `json:"ttl,omitempty"`

	RedisAddr     string `json:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty"`

	CharmHost     string `json:"charm_host,omitempty"`
	CharmAutoSync *bool  `json:"charm_auto_sync,omitempty"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Listen      string   `json:"listen,omitempty"`
	CORSOrigins []string `json:"cors_origins,omitempty"`
	Debug       bool     `json:"debug,omitempty"`
}

// NutritionConfig configures the CalorieNinjas proxy.
type NutritionConfig struct {
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
}

// PhotosConfig configures profile photo processing.
type PhotosConfig struct {
	UploadDir string `json:"upload_dir,omitempty"`
	Binary    string `json:"binary,omitempty"`
}

// GetStoreBackend returns the configured store backend, defaulting to "sqlite".
func (c *Config) GetStoreBackend() string {
	if c.Store.Backend == "" {
		return "sqlite"
	}
	return c.Store.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.Store.DataDir == "" {
		return store.DataDir()
	}
	return ExpandPath(c.Store.DataDir)
}

// GetCacheBackend returns the configured cache backend, defaulting to "memory".
func (c *Config) GetCacheBackend() string {
	if c.Cache.Backend == "" {
		return "memory"
	}
	return c.Cache.Backend
}

// GetCacheTTL parses the cache TTL. An empty value means no expiry.
func (c *Config) GetCacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, fmt.Errorf("parse cache ttl %q: %w", c.Cache.TTL, err)
	}
	if ttl < 0 {
		return 0, fmt.Errorf("cache ttl must not be negative: %s", c.Cache.TTL)
	}
	return ttl, nil
}

// GetListen returns the HTTP listen address, defaulting to ":4000".
func (c *Config) GetListen() string {
	if c.Server.Listen == "" {
		return ":4000"
	}
	return c.Server.Listen
}

// GetUploadDir returns the photo upload directory, defaulting to <data dir>/uploads.
func (c *Config) GetUploadDir() string {
	if c.Photos.UploadDir == "" {
		return filepath.Join(c.GetDataDir(), "uploads")
	}
	return ExpandPath(c.Photos.UploadDir)
}

// GetSurrealNamespace returns the SurrealDB namespace, defaulting to "fittrack".
func (c *Config) GetSurrealNamespace() string {
	if c.Store.SurrealNamespace == "" {
		return "fittrack"
	}
	return c.Store.SurrealNamespace
}

// GetSurrealDatabase returns the SurrealDB database, defaulting to "fittrack".
func (c *Config) GetSurrealDatabase() string {
	if c.Store.SurrealDatabase == "" {
		return "fittrack"
	}
	return c.Store.SurrealDatabase
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// ApplyEnv overrides settings from environment variables that are set.
func (c *Config) ApplyEnv() error {
	strs := []struct {
		key string
		dst *string
	}{
		{"FITTRACK_STORE_BACKEND", &c.Store.Backend},
		{"FITTRACK_DATA_DIR", &c.Store.DataDir},
		{"FITTRACK_SURREAL_URL", &c.Store.SurrealURL},
		{"FITTRACK_SURREAL_NAMESPACE", &c.Store.SurrealNamespace},
		{"FITTRACK_SURREAL_DATABASE", &c.Store.SurrealDatabase},
		{"FITTRACK_SURREAL_USER", &c.Store.SurrealUser},
		{"FITTRACK_SURREAL_PASSWORD", &c.Store.SurrealPassword},
		{"FITTRACK_CACHE_BACKEND", &c.Cache.Backend},
		{"FITTRACK_CACHE_TTL", &c.Cache.TTL},
		{"FITTRACK_REDIS_ADDR", &c.Cache.RedisAddr},
		{"FITTRACK_REDIS_PASSWORD", &c.Cache.RedisPassword},
		{"FITTRACK_CHARM_HOST", &c.Cache.CharmHost},
		{"FITTRACK_LISTEN", &c.Server.Listen},
		{"NUTRITION_API_KEY", &c.Nutrition.APIKey},
		{"NUTRITION_BASE_URL", &c.Nutrition.BaseURL},
		{"FITTRACK_UPLOAD_DIR", &c.Photos.UploadDir},
		{"FITTRACK_MAGICK_BINARY", &c.Photos.Binary},
	}
	for _, s := range strs {
		if _, ok := os.LookupEnv(s.key); !ok {
			continue
		}
		v, err := env.GetAsString(s.key, false, *s.dst)
		if err != nil {
			return fmt.Errorf("read %s: %w", s.key, err)
		}
		*s.dst = v
	}

	if _, ok := os.LookupEnv("FITTRACK_REDIS_DB"); ok {
		db, err := env.GetAsInt("FITTRACK_REDIS_DB", false, c.Cache.RedisDB)
		if err != nil {
			return fmt.Errorf("read FITTRACK_REDIS_DB: %w", err)
		}
		c.Cache.RedisDB = db
	}
	if _, ok := os.LookupEnv("FITTRACK_DEBUG"); ok {
		debug, err := env.GetAsBool("FITTRACK_DEBUG", false, c.Server.Debug)
		if err != nil {
			return fmt.Errorf("read FITTRACK_DEBUG: %w", err)
		}
		c.Server.Debug = debug
	}
	if v, ok := os.LookupEnv("FITTRACK_CORS_ORIGINS"); ok {
		c.Server.CORSOrigins = splitList(v)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// OpenStore creates the document store for the configured backend.
func (c *Config) OpenStore(ctx context.Context) (store.Backend, error) {
	dataDir := c.GetDataDir()

	switch backend := c.GetStoreBackend(); backend {
	case "sqlite":
		return store.OpenSQLite(filepath.Join(dataDir, "fittrack.db"))
	case "badger":
		return store.OpenBadger(filepath.Join(dataDir, "badger"))
	case "surreal":
		if c.Store.SurrealURL == "" {
			return nil, fmt.Errorf("surreal backend requires surreal_url")
		}
		return store.OpenSurreal(ctx, store.SurrealConfig{
			URL:       c.Store.SurrealURL,
			Namespace: c.GetSurrealNamespace(),
			Database:  c.GetSurrealDatabase(),
			Username:  c.Store.SurrealUser,
			Password:  c.Store.SurrealPassword,
		})
	default:
		return nil, fmt.Errorf("unknown store backend: %q", backend)
	}
}

// OpenCache creates the cache for the configured backend. Non-nil counters
// wrap it with hit, miss and error accounting.
func (c *Config) OpenCache(ctx context.Context, counters *cache.Counters) (cache.Cache, error) {
	ttl, err := c.GetCacheTTL()
	if err != nil {
		return nil, err
	}

	var (
		backend = c.GetCacheBackend()
		cc      cache.Cache
	)
	switch backend {
	case "memory":
		cc = cache.NewMemory(ttl)
	case "redis":
		if c.Cache.RedisAddr == "" {
			return nil, fmt.Errorf("redis cache requires redis_addr")
		}
		cc, err = cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
			TTL:      ttl,
		})
	case "charm":
		autoSync := true
		if c.Cache.CharmAutoSync != nil {
			autoSync = *c.Cache.CharmAutoSync
		}
		cc, err = cache.OpenCharm(cache.CharmConfig{
			Name:     "fittrack",
			Host:     c.Cache.CharmHost,
			AutoSync: autoSync,
		})
	case "none":
		cc = cache.Nop{}
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", backend)
	}
	if err != nil {
		return nil, err
	}

	if counters != nil {
		cc = cache.NewInstrumented(cc, backend, *counters)
	}
	return cc, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fittrack", "config.json")
}

// Load reads config from the default path.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads config from path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to the default path.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes config to path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

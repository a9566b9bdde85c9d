// Package config loads the immutable runtime configuration.
//
// Values are layered, later sources winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file (--config, or $XDG_CONFIG_HOME/mindmap/config.toml)
//  3. a .env file in the working directory (never overrides the process
//     environment)
//  4. the process environment
//
// The resulting [Config] is passed by value into constructors; nothing in
// the module reads the environment after startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
)

// MinKeyLength is the shortest credential considered usable.
const MinKeyLength = 10

// Config is the full runtime configuration.
type Config struct {
	// Backend credentials
	GeminiAPIKey  string `toml:"gemini_api_key" env:"GEMINI_API_KEY"`
	MistralAPIKey string `toml:"mistral_api_key" env:"MISTRAL_API_KEY"`
	SerperAPIKey  string `toml:"serper_api_key" env:"SERPER_API_KEY"`

	// Backend endpoints
	GeminiModel    string `toml:"gemini_model" env:"GEMINI_MODEL"`
	GeminiBaseURL  string `toml:"gemini_base_url" env:"GEMINI_BASE_URL"`
	MistralModel   string `toml:"mistral_model" env:"MISTRAL_MODEL"`
	MistralBaseURL string `toml:"mistral_base_url" env:"MISTRAL_BASE_URL"`
	SerperBaseURL  string `toml:"serper_base_url" env:"SERPER_BASE_URL"`

	BackendTimeout time.Duration `toml:"backend_timeout" env:"MINDMAP_BACKEND_TIMEOUT"`
	SearchTimeout  time.Duration `toml:"search_timeout" env:"MINDMAP_SEARCH_TIMEOUT"`
	SearchResults  int           `toml:"search_results" env:"MINDMAP_SEARCH_RESULTS"`

	// HTTP server
	Addr           string   `toml:"addr" env:"MINDMAP_ADDR"`
	AllowedOrigins []string `toml:"allowed_origins" env:"MINDMAP_ALLOWED_ORIGINS" envSeparator:","`

	// Caching
	CacheDir    string        `toml:"cache_dir" env:"MINDMAP_CACHE_DIR"`
	CacheTTL    time.Duration `toml:"cache_ttl" env:"MINDMAP_CACHE_TTL"`
	RedisURL    string        `toml:"redis_url" env:"MINDMAP_REDIS_URL"`
	CachePrefix string        `toml:"cache_prefix" env:"MINDMAP_CACHE_PREFIX"`

	// Map history and graph export
	MongoURI      string `toml:"mongo_uri" env:"MINDMAP_MONGO_URI"`
	MongoDatabase string `toml:"mongo_database" env:"MINDMAP_MONGO_DATABASE"`
	Neo4jURI      string `toml:"neo4j_uri" env:"MINDMAP_NEO4J_URI"`
	Neo4jUser     string `toml:"neo4j_user" env:"MINDMAP_NEO4J_USER"`
	Neo4jPassword string `toml:"neo4j_password" env:"MINDMAP_NEO4J_PASSWORD"`
	Neo4jDatabase string `toml:"neo4j_database" env:"MINDMAP_NEO4J_DATABASE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GeminiModel:    "gemini-1.5-flash",
		GeminiBaseURL:  "https://generativelanguage.googleapis.com/v1beta",
		MistralModel:   "mistral-tiny",
		MistralBaseURL: "https://api.mistral.ai/v1",
		SerperBaseURL:  "https://google.serper.dev",
		BackendTimeout: 45 * time.Second,
		SearchTimeout:  30 * time.Second,
		SearchResults:  5,
		Addr:           ":8000",
		AllowedOrigins: []string{"http://localhost:3000"},
		CacheTTL:       24 * time.Hour,
		MongoDatabase:  "mindmap",
		Neo4jUser:      "neo4j",
		Neo4jDatabase:  "neo4j",
	}
}

// LoadOptions selects the files [Load] reads.
type LoadOptions struct {
	// ConfigFile is an explicit TOML file. It must exist when set.
	// When empty, the default path is used if present.
	ConfigFile string

	// EnvFile is the dotenv file. Defaults to ".env"; a missing default
	// file is ignored.
	EnvFile string
}

// Load builds a Config from defaults, files and the environment.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path, explicit := opts.ConfigFile, opts.ConfigFile != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if opts.EnvFile != "" || !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg.trim()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("read config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/mindmap/config.toml (or the
// platform equivalent), or "" when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mindmap", "config.toml")
}

func (c *Config) trim() {
	c.GeminiAPIKey = strings.TrimSpace(c.GeminiAPIKey)
	c.MistralAPIKey = strings.TrimSpace(c.MistralAPIKey)
	c.SerperAPIKey = strings.TrimSpace(c.SerperAPIKey)

	origins := c.AllowedOrigins[:0:0]
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.AllowedOrigins = origins
}

// Validate checks value ranges and endpoint URLs.
func (c Config) Validate() error {
	for name, u := range map[string]string{
		"gemini_base_url":  c.GeminiBaseURL,
		"mistral_base_url": c.MistralBaseURL,
		"serper_base_url":  c.SerperBaseURL,
	} {
		if err := mmerrors.ValidateURL(u); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if c.BackendTimeout <= 0 {
		return mmerrors.New(mmerrors.ErrCodeInvalidInput, "backend_timeout must be positive")
	}
	if c.SearchTimeout <= 0 {
		return mmerrors.New(mmerrors.ErrCodeInvalidInput, "search_timeout must be positive")
	}
	if c.SearchResults < 1 || c.SearchResults > 100 {
		return mmerrors.New(mmerrors.ErrCodeInvalidInput, "search_results must be between 1 and 100")
	}
	if c.CacheTTL < 0 {
		return mmerrors.New(mmerrors.ErrCodeInvalidInput, "cache_ttl cannot be negative")
	}
	return nil
}

var placeholderRE = regexp.MustCompile(`^your_.*_here$`)

// ValidKey reports whether key looks like a real credential: at least
// [MinKeyLength] characters after trimming and not a template placeholder.
func ValidKey(key string) bool {
	key = strings.TrimSpace(key)
	return len(key) >= MinKeyLength && !IsPlaceholder(key)
}

// IsPlaceholder reports whether key is a "your_..._here" template value.
func IsPlaceholder(key string) bool {
	return placeholderRE.MatchString(strings.TrimSpace(key))
}

// GeminiEnabled reports whether the Gemini backend has a usable key.
func (c Config) GeminiEnabled() bool { return ValidKey(c.GeminiAPIKey) }

// MistralEnabled reports whether the Mistral backend has a usable key.
func (c Config) MistralEnabled() bool { return ValidKey(c.MistralAPIKey) }

// SearchEnabled reports whether web search has a usable key.
func (c Config) SearchEnabled() bool { return ValidKey(c.SerperAPIKey) }

// OfflineMode reports whether no extraction backend is usable, in which
// case extraction serves fixed illustrative graphs.
func (c Config) OfflineMode() bool {
	return !c.GeminiEnabled() && !c.MistralEnabled()
}

// KeyStatus describes a credential without revealing it.
type KeyStatus struct {
	Set         bool `json:"set"`
	Length      int  `json:"length"`
	Placeholder bool `json:"placeholder"`
	Valid       bool `json:"valid"`
}

// String renders the status as "Not set" or "Set (length: N)".
func (s KeyStatus) String() string {
	if !s.Set {
		return "Not set"
	}
	return fmt.Sprintf("Set (length: %d)", s.Length)
}

func statusOf(key string) KeyStatus {
	key = strings.TrimSpace(key)
	return KeyStatus{
		Set:         key != "",
		Length:      len(key),
		Placeholder: IsPlaceholder(key),
		Valid:       ValidKey(key),
	}
}

// KeyStatus returns the masked status of every credential, keyed by
// backend name.
func (c Config) KeyStatus() map[string]KeyStatus {
	return map[string]KeyStatus{
		"gemini":  statusOf(c.GeminiAPIKey),
		"mistral": statusOf(c.MistralAPIKey),
		"serper":  statusOf(c.SerperAPIKey),
	}
}

// Redacted returns a copy with secrets masked, safe to print.
func (c Config) Redacted() Config {
	c.GeminiAPIKey = mask(c.GeminiAPIKey)
	c.MistralAPIKey = mask(c.MistralAPIKey)
	c.SerperAPIKey = mask(c.SerperAPIKey)
	c.Neo4jPassword = mask(c.Neo4jPassword)
	c.MongoURI = maskURL(c.MongoURI)
	c.RedisURL = maskURL(c.RedisURL)
	return c
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

var userinfoRE = regexp.MustCompile(`://[^/@]*@`)

func maskURL(u string) string {
	return userinfoRE.ReplaceAllString(u, "://****@")
}

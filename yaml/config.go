// Package yaml loads newsdesk configuration from YAML files using
// gopkg.in/yaml.v3, with environment variable overrides.
package yaml

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/fwojciec/newsdesk"
	yamlv3 "gopkg.in/yaml.v3"
)

// Environment variables consulted by Load.
const (
	ConfigPathEnv = "NEWSDESK_CONFIG"
	ModelEnv      = "NEWSDESK_MODEL"
	AddrEnv       = "NEWSDESK_ADDR"
	APIKeyEnv     = "GEMINI_API_KEY"
)

// Extractor names accepted by the extractor key.
const (
	ExtractorGoquery     = "goquery"
	ExtractorTrafilatura = "trafilatura"
	ExtractorReadability = "readability"
)

// Config holds every setting the newsdesk binary reads.
type Config struct {
	Model             string               `yaml:"model"`
	Extractor         string               `yaml:"extractor"`
	FetchTimeout      time.Duration        `yaml:"fetch_timeout"`
	Browser           bool                 `yaml:"browser"`
	RequestsPerSecond float64              `yaml:"requests_per_second"`
	HostRate          float64              `yaml:"host_requests_per_second"`
	MaxPromptTokens   int                  `yaml:"max_prompt_tokens"`
	Server            ServerConfig         `yaml:"server"`
	Scrub             newsdesk.ScrubConfig `yaml:"scrub"`

	// APIKey is only read from the environment.
	APIKey string `yaml:"-"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Model:             "gemini-2.5-flash",
		Extractor:         ExtractorGoquery,
		FetchTimeout:      15 * time.Second,
		RequestsPerSecond: 1,
		HostRate:          2,
		MaxPromptTokens:   100000,
		Server:            ServerConfig{Addr: ":3000"},
		Scrub:             newsdesk.DefaultScrubConfig(),
	}
}

// Load reads the file at path over DefaultConfig and applies environment
// overrides. An empty path falls back to $NEWSDESK_CONFIG; when that is
// unset too, only defaults and environment are used. Keys missing from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, newsdesk.Errorf(newsdesk.ENOTFOUND, "config file %s not found", path)
		} else if err != nil {
			return Config{}, newsdesk.Errorf(newsdesk.EINTERNAL, "reading config %s: %v", path, err)
		}
		if err := yamlv3.Unmarshal(raw, &cfg); err != nil {
			return Config{}, newsdesk.Errorf(newsdesk.EINVALID, "parsing config %s: %v", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(ModelEnv); v != "" {
		c.Model = v
	}
	if v := os.Getenv(AddrEnv); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(APIKeyEnv); v != "" {
		c.APIKey = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Extractor {
	case ExtractorGoquery, ExtractorTrafilatura, ExtractorReadability:
	default:
		return newsdesk.Errorf(newsdesk.EINVALID, "unknown extractor %q", c.Extractor).
			WithHint("Use one of: goquery, trafilatura, readability.")
	}
	if c.FetchTimeout <= 0 {
		return newsdesk.Errorf(newsdesk.EINVALID, "fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.RequestsPerSecond < 0 {
		return newsdesk.Errorf(newsdesk.EINVALID, "requests_per_second must not be negative")
	}
	if c.HostRate < 0 {
		return newsdesk.Errorf(newsdesk.EINVALID, "host_requests_per_second must not be negative")
	}
	if c.MaxPromptTokens < 0 {
		return newsdesk.Errorf(newsdesk.EINVALID, "max_prompt_tokens must not be negative")
	}
	return nil
}

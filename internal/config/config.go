package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	OpenRouter OpenRouterConfig `yaml:"openrouter" mapstructure:"openrouter"`
	Fetch      FetchConfig      `yaml:"fetch" mapstructure:"fetch"`
	Extract    ExtractConfig    `yaml:"extract" mapstructure:"extract"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// OpenRouterConfig holds OpenRouter API settings for the AI lookup.
type OpenRouterConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	Model       string `yaml:"model" mapstructure:"model"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Referer     string `yaml:"referer" mapstructure:"referer"`
	AppTitle    string `yaml:"app_title" mapstructure:"app_title"`
}

// Timeout returns the per-request API timeout.
func (c OpenRouterConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// FetchConfig configures page fetching for the scraper.
type FetchConfig struct {
	RateLimitDelay     float64 `yaml:"rate_limit_delay" mapstructure:"rate_limit_delay"`
	// MaxRetries (MAX_RETRIES) is the total number of attempts per page,
	// first try included; 3 means one request plus up to two retries.
	MaxRetries         int     `yaml:"max_retries" mapstructure:"max_retries"`
	UserAgent          string  `yaml:"user_agent" mapstructure:"user_agent"`
	MaxURLLength       int     `yaml:"max_url_length" mapstructure:"max_url_length"`
	RestrictPrivateIPs bool    `yaml:"restrict_private_ips" mapstructure:"restrict_private_ips"`
}

// Delay returns the courtesy delay applied before each request.
func (c FetchConfig) Delay() time.Duration {
	return time.Duration(c.RateLimitDelay * float64(time.Second))
}

// ExtractConfig configures email extraction post-processing.
type ExtractConfig struct {
	MaxEmails          int      `yaml:"max_emails" mapstructure:"max_emails"`
	Categorize         bool     `yaml:"categorize" mapstructure:"categorize"`
	FilterPlaceholders bool     `yaml:"filter_placeholders" mapstructure:"filter_placeholders"`
	ExcludedDomains    []string `yaml:"excluded_domains" mapstructure:"excluded_domains"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultUserAgent is sent on page fetches unless USER_AGENT overrides it.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36"

// DefaultExcludedDomains are dropped when placeholder filtering is enabled.
var DefaultExcludedDomains = []string{
	"example.com", "test.com", "domain.com", "yoursite.com",
	"sentry.io", "google.com", "facebook.com", "twitter.com",
	"linkedin.com", "instagram.com", "youtube.com", "wordpress.com",
	"github.com", "stackoverflow.com", "reddit.com",
}

// envAliases maps config keys to the bare environment variables the
// application has always honored. CONTACTS_* variables work for every key.
var envAliases = map[string]string{
	"openrouter.key":              "OPENROUTER_API_KEY",
	"openrouter.base_url":         "OPENROUTER_BASE_URL",
	"openrouter.model":            "OPENROUTER_MODEL",
	"openrouter.timeout_secs":     "REQUEST_TIMEOUT",
	"openrouter.referer":          "OPENROUTER_REFERER",
	"openrouter.app_title":        "OPENROUTER_APP_TITLE",
	"fetch.rate_limit_delay":      "RATE_LIMIT_DELAY",
	"fetch.max_retries":           "MAX_RETRIES",
	"fetch.user_agent":            "USER_AGENT",
	"fetch.max_url_length":        "MAX_URL_LENGTH",
	"fetch.restrict_private_ips":  "RESTRICT_PRIVATE_IPS",
	"extract.max_emails":          "MAX_EMAILS_PER_SITE",
	"extract.categorize":          "ENABLE_EMAIL_CATEGORIZATION",
	"extract.filter_placeholders": "FILTER_PLACEHOLDER_EMAILS",
	"server.port":                 "PORT",
	"log.level":                   "LOG_LEVEL",
	"log.format":                  "LOG_FORMAT",
}

// Load reads configuration from file, .env and environment.
func Load() (*Config, error) {
	// .env never overrides variables already present in the environment.
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: read .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CONTACTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		prefixed := "CONTACTS_" + strings.ToUpper(strings.NewReplacer(".", "_").Replace(key))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", env)
		}
	}

	// Defaults
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.model", "perplexity/sonar-pro")
	v.SetDefault("openrouter.timeout_secs", 30)
	v.SetDefault("openrouter.app_title", "contact-finder")
	v.SetDefault("fetch.rate_limit_delay", 2.0)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.user_agent", DefaultUserAgent)
	v.SetDefault("fetch.max_url_length", 2048)
	v.SetDefault("fetch.restrict_private_ips", true)
	v.SetDefault("extract.max_emails", 100)
	v.SetDefault("extract.categorize", true)
	v.SetDefault("extract.filter_placeholders", false)
	v.SetDefault("extract.excluded_domains", DefaultExcludedDomains)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks value ranges. The OpenRouter key is not required here
// because only the AI lookup needs it; that pipeline checks it itself.
func (c *Config) Validate() error {
	var problems []string
	if c.Fetch.RateLimitDelay < 0 {
		problems = append(problems, "RATE_LIMIT_DELAY must be >= 0")
	}
	if c.Fetch.MaxRetries < 1 {
		problems = append(problems, "MAX_RETRIES (total attempts) must be >= 1")
	}
	if c.OpenRouter.TimeoutSecs < 1 {
		problems = append(problems, "REQUEST_TIMEOUT must be >= 1")
	}
	if c.Extract.MaxEmails < 1 {
		problems = append(problems, "MAX_EMAILS_PER_SITE must be >= 1")
	}
	if len(problems) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger. Logs go to stderr so that
// command output on stdout stays clean.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.OutputPaths = []string{"stderr"}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahrdadan/formcheck/internal/browser"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Version is the current version of formcheck
	Version = "1"
	// AppName is the application name
	AppName = "formcheck"
	// EnvPrefix prefixes every environment override, e.g. FORMCHECK_BROWSER
	EnvPrefix = "FORMCHECK"
)

// Config holds all configuration options for formcheck
type Config struct {
	// Scenario
	Browser      string `mapstructure:"browser"`
	URL          string `mapstructure:"url"`
	UserName     string `mapstructure:"user_name"`
	UserEmail    string `mapstructure:"user_email"`
	UserPassword string `mapstructure:"user_password"`

	// Browser
	Headless       bool          `mapstructure:"headless"`
	Locale         string        `mapstructure:"locale"`
	ImplicitWait   time.Duration `mapstructure:"implicit_wait"`
	ExplicitWait   time.Duration `mapstructure:"explicit_wait"`
	ChromeBin      string        `mapstructure:"chrome_bin"`
	ChromeRevision int           `mapstructure:"chrome_revision"`
	InstallDeps    bool          `mapstructure:"install_deps"`
	InstallFirefox bool          `mapstructure:"install_firefox"`

	// Reporting
	LogLevel    string `mapstructure:"log_level"`
	NatsURL     string `mapstructure:"nats_url"` // Empty disables NATS publishing
	NatsSubject string `mapstructure:"nats_subject"`

	// Server
	Listen string `mapstructure:"listen"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Browser:      "chrome",
		URL:          "https://otus.home.kartushin.su/form.html",
		UserName:     "Тестовый Пользователь1",
		UserEmail:    "user@example.com",
		UserPassword: "StrongPassword123!",
		Headless:     true,
		ImplicitWait: browser.DefaultImplicitWait,
		ExplicitWait: 10 * time.Second,
		LogLevel:     "info",
		NatsSubject:  "formcheck.reports",
		Listen:       "0.0.0.0:8000",
	}
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"browser":         "browser",
	"url":             "url",
	"user-name":       "user_name",
	"user-email":      "user_email",
	"user-password":   "user_password",
	"headless":        "headless",
	"locale":          "locale",
	"implicit-wait":   "implicit_wait",
	"explicit-wait":   "explicit_wait",
	"chrome-bin":      "chrome_bin",
	"chrome-revision": "chrome_revision",
	"install-deps":    "install_deps",
	"install-firefox": "install_firefox",
	"log-level":       "log_level",
	"nats-url":        "nats_url",
	"nats-subject":    "nats_subject",
	"listen":          "listen",
}

// RegisterFlags defines every configuration flag on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()

	// Scenario flags
	fs.String("browser", d.Browser, "Browser to drive (chrome or firefox)")
	fs.String("url", d.URL, "URL of the form page")
	fs.String("user-name", d.UserName, "User name to submit")
	fs.String("user-email", d.UserEmail, "Email to submit")
	fs.String("user-password", d.UserPassword, "Password to submit")

	// Browser flags
	fs.Bool("headless", d.Headless, "Run the browser without a window")
	fs.String("locale", d.Locale, "Browser UI locale, e.g. ru-RU")
	fs.Duration("implicit-wait", d.ImplicitWait, "Upper bound for every element lookup")
	fs.Duration("explicit-wait", d.ExplicitWait, "Upper bound for page and result visibility waits")
	fs.String("chrome-bin", d.ChromeBin, "Path to a Chrome binary (empty lets rod find or download one)")
	fs.Int("chrome-revision", d.ChromeRevision, "Chromium revision to download (0 uses default)")
	fs.Bool("install-deps", d.InstallDeps, "Install OS packages Chromium needs")
	fs.Bool("install-firefox", d.InstallFirefox, "Install the playwright Firefox build before launching")

	// Reporting flags
	fs.String("log-level", d.LogLevel, "Log level (debug, info, warn, error)")
	fs.String("nats-url", d.NatsURL, "NATS server URL for publishing reports (empty disables)")
	fs.String("nats-subject", d.NatsSubject, "NATS subject for reports")

	// Server flags
	fs.String("listen", d.Listen, "Address for the HTTP server")
}

// Load builds the configuration from defaults, an optional YAML file,
// FORMCHECK_* environment variables and flags set on fs, in increasing
// order of precedence.
func Load(fs *pflag.FlagSet, configFile string) (*Config, error) {
	v := viper.New()

	d := DefaultConfig()
	v.SetDefault("browser", d.Browser)
	v.SetDefault("url", d.URL)
	v.SetDefault("user_name", d.UserName)
	v.SetDefault("user_email", d.UserEmail)
	v.SetDefault("user_password", d.UserPassword)
	v.SetDefault("headless", d.Headless)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("implicit_wait", d.ImplicitWait)
	v.SetDefault("explicit_wait", d.ExplicitWait)
	v.SetDefault("chrome_bin", d.ChromeBin)
	v.SetDefault("chrome_revision", d.ChromeRevision)
	v.SetDefault("install_deps", d.InstallDeps)
	v.SetDefault("install_firefox", d.InstallFirefox)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("nats_url", d.NatsURL)
	v.SetDefault("nats_subject", d.NatsSubject)
	v.SetDefault("listen", d.Listen)

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate clamps waits and rejects values no run could use. The browser
// name is checked later, when the session is created.
func (c *Config) validate() error {
	if c.ImplicitWait <= 0 {
		c.ImplicitWait = browser.DefaultImplicitWait
	}
	if c.ExplicitWait <= 0 {
		c.ExplicitWait = DefaultConfig().ExplicitWait
	}
	if c.URL == "" {
		return errors.New("url must not be empty")
	}
	if c.ChromeRevision < 0 {
		return fmt.Errorf("chrome revision must not be negative, got %d", c.ChromeRevision)
	}
	return nil
}

// BrowserOptions returns the option bundle for the configured browser, or
// nil when the name is not a supported browser.
func (c *Config) BrowserOptions() browser.Options {
	family, err := browser.ParseFamily(c.Browser)
	if err != nil {
		return nil
	}

	switch family {
	case browser.FamilyFirefox:
		opts := browser.DefaultFirefoxOptions()
		opts.Headless = c.Headless
		opts.Install = c.InstallFirefox
		opts.Locale = c.Locale
		opts.ImplicitWait = c.ImplicitWait
		return opts
	default:
		opts := browser.DefaultChromeOptions()
		opts.Headless = c.Headless
		opts.Bin = c.ChromeBin
		opts.Revision = c.ChromeRevision
		opts.InstallDeps = c.InstallDeps
		opts.ImplicitWait = c.ImplicitWait
		if c.Locale != "" {
			opts.Flags = map[string]string{"lang": c.Locale}
		}
		return opts
	}
}

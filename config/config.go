// Package config loads build configuration from defaults, an optional YAML
// file and EUCATALOG_* environment variables, in increasing precedence.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/timarques/eucatalog"
)

// EnvPrefix prefixes every environment variable, e.g. EUCATALOG_SERIAL.
const EnvPrefix = "EUCATALOG"

// Config holds every setting of a build.
type Config struct {
	BaseURL          string            `mapstructure:"base_url"`
	FlagBaseURL      string            `mapstructure:"flag_base_url"`
	OutputDir        string            `mapstructure:"output_dir"`
	Serial           bool              `mapstructure:"serial"`
	Timeout          time.Duration     `mapstructure:"timeout"`
	RateLimit        float64           `mapstructure:"rate_limit"`
	UserAgent        string            `mapstructure:"user_agent"`
	TemplatesSource  string            `mapstructure:"templates_source"`
	SnapshotDB       string            `mapstructure:"snapshot_db"`
	SchemasInstalled bool              `mapstructure:"schemas_installed"`
	LogLevel         string            `mapstructure:"log_level"`
	App              eucatalog.AppInfo `mapstructure:"app"`
}

// Load builds a Config from path (optional) and the environment, applies
// derived defaults and validates it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, eucatalog.Errorf(eucatalog.EINVALID, "read config %s: %v", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eucatalog.Errorf(eucatalog.EINVALID, "unmarshal config: %v", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Every key needs a default so AutomaticEnv can override it on Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", eucatalog.DefaultBaseURL)
	v.SetDefault("flag_base_url", eucatalog.DefaultFlagBaseURL)
	v.SetDefault("output_dir", "generated")
	v.SetDefault("serial", false)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("user_agent", "eu-catalog-builder/1.0")
	v.SetDefault("templates_source", "")
	v.SetDefault("snapshot_db", "")
	v.SetDefault("schemas_installed", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("app.id", "eu.european_alternatives.Choice")
	v.SetDefault("app.name", "choice")
	v.SetDefault("app.title", "Choice")
	v.SetDefault("app.description", "Browse European alternatives to digital products")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.prefix", "")
	v.SetDefault("app.authors", []string{})
}

// Mode returns the execution mode selected by Serial.
func (c *Config) Mode() eucatalog.ExecutionMode {
	if c.Serial {
		return eucatalog.Serial
	}
	return eucatalog.Parallel
}

// ApplyDefaults fills values derived from other fields. The resource prefix
// defaults to the app id with dots turned into slashes, e.g.
// "eu.example.App" becomes "/eu/example/App".
func (c *Config) ApplyDefaults() {
	if c.App.Prefix == "" && c.App.ID != "" {
		c.App.Prefix = "/" + strings.ReplaceAll(c.App.ID, ".", "/")
	}
}

// Validate enforces required values and reasonable limits.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return eucatalog.Errorf(eucatalog.EINVALID, "base_url is required")
	}
	if c.FlagBaseURL == "" {
		return eucatalog.Errorf(eucatalog.EINVALID, "flag_base_url is required")
	}
	if c.OutputDir == "" {
		return eucatalog.Errorf(eucatalog.EINVALID, "output_dir is required")
	}
	if c.Timeout <= 0 {
		return eucatalog.Errorf(eucatalog.EINVALID, "timeout must be > 0")
	}
	if c.RateLimit < 0 {
		return eucatalog.Errorf(eucatalog.EINVALID, "rate_limit must be >= 0")
	}
	if c.App.ID == "" {
		return eucatalog.Errorf(eucatalog.EINVALID, "app.id is required")
	}
	if !strings.HasPrefix(c.App.Prefix, "/") {
		return eucatalog.Errorf(eucatalog.EINVALID, "app.prefix must start with /")
	}
	return nil
}

// Package config holds the process-wide settings read by the translation
// rules: the server used in $ref links, the URL scheme, and the legacy file
// store locations.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the set of values rules may read while translating.
type Config struct {
	// ServerName is the authority used in absolute $ref URLs.
	ServerName string `mapstructure:"server_name" validate:"required,hostname_port|hostname"`
	// PreferredURLScheme is either http or https.
	PreferredURLScheme string `mapstructure:"preferred_url_scheme" validate:"oneof=http https"`
	// LegacyBaseURL identifies self-referential URLs in 8564 fields.
	LegacyBaseURL string `mapstructure:"legacy_base_url"`
	// LegacyAFSPath is the filesystem prefix that legacy file paths are rewritten to.
	LegacyAFSPath string `mapstructure:"legacy_afs_path" validate:"required,startswith=/"`
	// LabsAFSHTTPService, when set, replaces file:// URLs for AFS paths.
	LabsAFSHTTPService string `mapstructure:"labs_afs_http_service" validate:"omitempty,url"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		ServerName:         "inspirehep.net",
		PreferredURLScheme: "http",
		LegacyBaseURL:      "inspirehep.net",
		LegacyAFSPath:      "/afs/cern.ch/project/inspire/PROD",
	}
}

var keys = []string{
	"server_name",
	"preferred_url_scheme",
	"legacy_base_url",
	"legacy_afs_path",
	"labs_afs_http_service",
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server_name", d.ServerName)
	v.SetDefault("preferred_url_scheme", d.PreferredURLScheme)
	v.SetDefault("legacy_base_url", d.LegacyBaseURL)
	v.SetDefault("legacy_afs_path", d.LegacyAFSPath)
	v.SetDefault("labs_afs_http_service", d.LabsAFSHTTPService)
}

// Load reads configuration from the environment and an optional
// inspire-dojson.yaml in the working directory or the user config dir.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	v.SetConfigName("inspire-dojson")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "inspire-dojson"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFile reads configuration from an explicit YAML file. Environment
// variables still override values from the file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return decode(v)
}

// bindEnv maps every key to its upper-case variable with no prefix
// (SERVER_NAME, PREFERRED_URL_SCHEME, ...).
func bindEnv(v *viper.Viper) {
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	v.AutomaticEnv()
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// BaseURL is scheme://server_name.
func (c *Config) BaseURL() string {
	return c.PreferredURLScheme + "://" + c.ServerName
}

var (
	current  atomic.Pointer[Config]
	loadOnce sync.Once
)

// Current returns the process-wide configuration, loading it from the
// environment on first use. A load failure falls back to Default.
func Current() *Config {
	loadOnce.Do(func() {
		if current.Load() != nil {
			return
		}
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		current.CompareAndSwap(nil, cfg)
	})
	return current.Load()
}

// Set replaces the process-wide configuration and returns the previous one.
func Set(c *Config) *Config {
	prev := Current()
	current.Store(c)
	return prev
}

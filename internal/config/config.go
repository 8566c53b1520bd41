package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Tiliavir/trivial-time-tracker/internal/codec"
)

// Config is the root configuration for ttt, stored in ~/.ttt/config.yaml.
// Every key can be overridden by an environment variable with the TTT_
// prefix, e.g. TTT_FILE or TTT_OUTLOOK_TIMEZONE.
type Config struct {
	// File is the activity log.
	File string `mapstructure:"file"`
	// Precision is "minute" or "second" and applies to every timestamp written.
	Precision string `mapstructure:"precision"`
	// Editor is the command used by `ttt edit`. Empty means $EDITOR.
	Editor  string        `mapstructure:"editor"`
	Outlook OutlookConfig `mapstructure:"outlook"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar sync settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `mapstructure:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `mapstructure:"client_id"`
	// DefaultProject is the project name assigned to imported Outlook events.
	DefaultProject string `mapstructure:"default_project"`
	// Timezone is the IANA timezone for event times (e.g. "Europe/Berlin"). Empty = UTC.
	Timezone string `mapstructure:"timezone"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID.
	// It supports device code flow without a client secret and requires no
	// app registration.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// DefaultProject is the project name used for imported events.
	DefaultProject = "Meetings"
	// DefaultPrecision is the timestamp precision of new logs.
	DefaultPrecision = "minute"

	envPrefix = "TTT"
)

// configTemplate is the annotated config written on first run.
const configTemplate = `# ttt configuration – ~/.ttt/config.yaml
#
# All settings are optional. Every key can be overridden with an environment
# variable: TTT_FILE, TTT_PRECISION, TTT_EDITOR, TTT_OUTLOOK_TIMEZONE, ...

# Activity log. Defaults to ~/.ttt/activities.log.
# file: /home/me/activities.log

# Timestamp precision of the activity log: "minute" or "second".
# Keep this stable for one log; mismatching timestamps are rounded on read.
precision: minute

# Command used by "ttt edit". Defaults to $EDITOR.
# editor: vim

# ── Microsoft Graph / Outlook calendar sync ──────────────────────────────
outlook:
  # Azure AD tenant ID: "common" or your organisation's tenant GUID.
  tenant_id: common
  # Azure application (client) ID used for the OAuth2 device code flow.
  # The built-in value is the public Azure CLI app – no app registration needed.
  client_id: 04b07795-8542-4c4a-95af-30b2c573d5ab
  # Project assigned to imported events. Override with --project.
  default_project: Meetings
  # IANA timezone of calendar event times. Empty means UTC.
  timezone: ""
`

// DefaultPath returns the path to ~/.ttt/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ttt", "config.yaml"), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("file", "")
	v.SetDefault("precision", DefaultPrecision)
	v.SetDefault("editor", "")
	v.SetDefault("outlook.tenant_id", DefaultTenantID)
	v.SetDefault("outlook.client_id", DefaultClientID)
	v.SetDefault("outlook.default_project", DefaultProject)
	v.SetDefault("outlook.timezone", "")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config at path, creating it with annotated defaults on first
// run. Environment variables override file values and empty values fall back
// to the built-in defaults.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config file %s: %w", path, err)
	}
	cfg.fillDefaults()
	if _, err := codec.ParsePrecision(cfg.Precision); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// fillDefaults replaces empty values so callers always get a usable Config
// even if the user only partially fills in the file.
func (c *Config) fillDefaults() {
	if c.Precision == "" {
		c.Precision = DefaultPrecision
	}
	if c.Editor == "" {
		c.Editor = os.Getenv("EDITOR")
	}
	if c.Outlook.TenantID == "" {
		c.Outlook.TenantID = DefaultTenantID
	}
	if c.Outlook.ClientID == "" {
		c.Outlook.ClientID = DefaultClientID
	}
	if c.Outlook.DefaultProject == "" {
		c.Outlook.DefaultProject = DefaultProject
	}
}

// Format returns the codec settings for the configured precision.
func (c Config) Format() (codec.Format, error) {
	p, err := codec.ParsePrecision(c.Precision)
	if err != nil {
		return codec.Format{}, err
	}
	return codec.NewFormat(p), nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// Package config loads user settings from a YAML file and the environment.
// Command-line flags are applied on top by the cli package, so the
// effective precedence is flag, then environment, then file, then default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/apresai/speak/internal/format"
)

// DefaultEndpoint is the public Azure Speech endpoint used when nothing
// else is configured.
const DefaultEndpoint = "eastus.api.speech.microsoft.com"

type OutputConfig struct {
	Container string `yaml:"container"`
	Quality   *int   `yaml:"quality,omitempty"`
	Format    string `yaml:"format,omitempty"`
	NoClobber bool   `yaml:"no_clobber"`
}

type TextConfig struct {
	Locale string `yaml:"locale"`
	Voice  string `yaml:"voice,omitempty"`
}

type PublishConfig struct {
	Bucket  string `yaml:"bucket,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Endpoint string        `yaml:"endpoint"`
	Region   string        `yaml:"region,omitempty"`
	Key      string        `yaml:"key,omitempty"`
	Provider string        `yaml:"provider"`
	Output   OutputConfig  `yaml:"output"`
	Text     TextConfig    `yaml:"text"`
	Publish  PublishConfig `yaml:"publish"`
	Log      LogConfig     `yaml:"log"`
}

func Default() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Provider: "azure",
		Output: OutputConfig{
			Container: string(format.DefaultContainer),
		},
		Text: TextConfig{
			Locale: "en-US",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/speak/config.yaml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, "speak", "config.yaml"), nil
}

// Load reads the file at path over the defaults and applies environment
// overrides. An empty path means DefaultPath, which may be absent; a path
// given explicitly must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		case errors.Is(err, os.ErrNotExist):
			return cfg, fmt.Errorf("config file not found: %w", err)
		default:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Endpoint, "SPEAK_ENDPOINT")
	overrideString(&cfg.Region, "SPEAK_REGION")
	overrideString(&cfg.Key, "SPEAK_KEY")
	overrideString(&cfg.Provider, "SPEAK_PROVIDER")
	overrideString(&cfg.Output.Container, "SPEAK_CONTAINER_FORMAT")
	overrideIntPtr(&cfg.Output.Quality, "SPEAK_QUALITY")
	overrideString(&cfg.Output.Format, "SPEAK_FORMAT")
	overrideBool(&cfg.Output.NoClobber, "SPEAK_NO_CLOBBER")
	overrideString(&cfg.Text.Locale, "SPEAK_LOCALE")
	overrideString(&cfg.Text.Voice, "SPEAK_VOICE")
	overrideString(&cfg.Publish.Bucket, "SPEAK_BUCKET")
	overrideString(&cfg.Publish.BaseURL, "SPEAK_PUBLISH_BASE_URL")
	overrideString(&cfg.Log.Level, "SPEAK_LOG_LEVEL")
	overrideString(&cfg.Log.Format, "SPEAK_LOG_FORMAT")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func overrideIntPtr(target **int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			*target = &parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

// Validate checks the values that can be checked without contacting a
// service. Quality levels are checked later against the container.
func (c Config) Validate() error {
	switch c.Provider {
	case "azure", "google", "polly":
	default:
		return fmt.Errorf("provider must be one of azure|google|polly, got %q", c.Provider)
	}
	if c.Provider == "azure" && strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("endpoint must not be empty for the azure provider")
	}
	if c.Output.Container != "" {
		if _, err := format.ParseContainer(c.Output.Container); err != nil {
			return fmt.Errorf("output.container: %w", err)
		}
	}
	if c.Output.Format != "" {
		if _, err := format.ParseAudioFormat(c.Output.Format); err != nil {
			return fmt.Errorf("output.format: %w", err)
		}
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug|info|warn|error, got %q", c.Log.Level)
	}
	return nil
}

const templateHeader = `# speak configuration
#
# Values here are overridden by SPEAK_* environment variables and by
# command-line flags. A key of the form "secretsmanager:<secret-id>" is
# fetched from AWS Secrets Manager at startup.
`

// ErrConfigExists is returned by WriteTemplate when the file is present and
// force is false.
var ErrConfigExists = errors.New("config file already exists")

// WriteTemplate writes the default configuration to path, creating parent
// directories as needed.
func WriteTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w (use --force to overwrite)", path, ErrConfigExists)
		}
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(templateHeader), data...), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.Key != "" && !IsSecretRef(c.Key) {
		c.Key = "********"
	}
	return c
}

// YAML renders c as it would appear in the config file.
func (c Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}

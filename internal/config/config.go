package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before they are mapped
// onto config keys: NOTIFIER_SMTP_USERNAME sets smtp.username.
const EnvPrefix = "NOTIFIER_"

type Config struct {
	Store StoreConfig `koanf:"store"`
	SMTP  SMTPConfig  `koanf:"smtp"`
	Log   LogConfig   `koanf:"log"`
	UI    UIConfig    `koanf:"ui"`
}

type StoreConfig struct {
	Path  string `koanf:"path" validate:"required"`
	Watch bool   `koanf:"watch"`
}

// SMTPConfig holds the mail submission endpoint, the sender credentials and
// the single recipient of every notification.
type SMTPConfig struct {
	Host      string `koanf:"host" validate:"required,hostname_rfc1123|ip"`
	Port      int    `koanf:"port" validate:"min=1,max=65535"`
	Username  string `koanf:"username"`
	Password  string `koanf:"password"`
	Recipient string `koanf:"recipient"`
	Timeout   int    `koanf:"timeout" validate:"gt=0"` // seconds
}

// credentials is validated only when notifications are enabled.
type credentials struct {
	Username  string `validate:"required,email"`
	Password  string `validate:"required"`
	Recipient string `validate:"required,email"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=console json"`
}

type UIConfig struct {
	ColoredOutput bool `koanf:"colored_output"`
}

// Enabled reports whether notifications should be sent at all. An empty
// username switches them off.
func (c SMTPConfig) Enabled() bool {
	return c.Username != ""
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Store.Path = expandPath(cfg.Store.Path)

	return &cfg, nil
}

// envKey maps NOTIFIER_SMTP_USERNAME to smtp.username. Only the first
// underscore separates section from field.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !c.SMTP.Enabled() {
		return nil
	}

	creds := credentials{
		Username:  c.SMTP.Username,
		Password:  c.SMTP.Password,
		Recipient: c.SMTP.Recipient,
	}
	if err := validate.Struct(creds); err != nil {
		return fmt.Errorf("invalid smtp credentials (set %sSMTP_USERNAME, %sSMTP_PASSWORD and %sSMTP_RECIPIENT): %w",
			EnvPrefix, EnvPrefix, EnvPrefix, err)
	}

	return nil
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}

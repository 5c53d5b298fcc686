package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/takak2166/worklist/internal/render"
	"github.com/takak2166/worklist/internal/worklist"
)

const (
	// EnvPrefix prefixes every environment variable read by the tool
	EnvPrefix = "WORKLIST"

	defaultConfigName = "worklist"
)

// Config holds the settings resolved from flags, environment, config file
// and defaults, in that order of precedence.
type Config struct {
	LogLevel    string        `mapstructure:"log_level"`
	ContainerID string        `mapstructure:"container_id"`
	Heading     string        `mapstructure:"heading"`
	Normalize   string        `mapstructure:"normalize"`
	Watch       bool          `mapstructure:"watch"`
	Debounce    time.Duration `mapstructure:"debounce"`
}

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"log-level":    "log_level",
	"container-id": "container_id",
	"heading":      "heading",
	"normalize":    "normalize",
	"watch":        "watch",
	"debounce":     "debounce",
}

// LoadDotEnv loads environment variables from path. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// Load resolves the configuration. cfgFile may be empty, in which case
// ./worklist.yaml is used when present. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("container_id", render.DefaultContainerID)
	v.SetDefault("heading", render.DefaultHeading)
	v.SetDefault("normalize", "")
	v.SetDefault("watch", false)
	v.SetDefault("debounce", worklist.DefaultDebounce)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for flag, key := range flagKeys {
			f := flags.Lookup(flag)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ContainerID) == "" {
		return errors.New("container_id must not be empty")
	}
	if strings.ContainsAny(c.ContainerID, " \t\n\f\r") {
		return fmt.Errorf("container_id %q must not contain whitespace", c.ContainerID)
	}
	if c.Heading == "" {
		return errors.New("heading must not be empty")
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", c.Debounce)
	}
	return nil
}

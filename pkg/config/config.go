// Package config provides YAML-based configuration for fiximports: include
// directories, import ordering lists, and resolution priorities.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrNoIncludes        = errors.New("at least one include directory is required")
	ErrEmptyImplicit     = errors.New("implicit qualification must not be empty")
	ErrEmptyRegistryBin  = errors.New("registry binary must not be empty")
	ErrInvalidLogLevel   = errors.New("invalid logging level")
	ErrInvalidLogFormat  = errors.New("invalid logging format")
	ErrEmptyOrderEntry   = errors.New("import order entry must not be empty")
	ErrEmptyPriorityItem = errors.New("priority entry must not be empty")
)

// configName is the config file name without extension.
const configName = ".fiximports"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for fiximports settings.
const envPrefix = "FIXIMPORTS"

// Config holds all configuration for fiximports.
type Config struct {
	Includes              []string       `mapstructure:"includes"               yaml:"includes"`
	ImportOrderFirst      []string       `mapstructure:"import_order_first"     yaml:"import_order_first"`
	ImportOrderLast       []string       `mapstructure:"import_order_last"      yaml:"import_order_last"`
	PrioModuleHigh        []string       `mapstructure:"prio_module_high"       yaml:"prio_module_high"`
	PrioPackageHigh       []string       `mapstructure:"prio_package_high"      yaml:"prio_package_high"`
	ImplicitQualification string         `mapstructure:"implicit_qualification" yaml:"implicit_qualification"`
	Registry              RegistryConfig `mapstructure:"registry"               yaml:"registry"`
	Logging               LoggingConfig  `mapstructure:"logging"                yaml:"logging"`
}

// RegistryConfig holds package-registry query settings.
type RegistryConfig struct {
	Binary string `mapstructure:"binary" yaml:"binary"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// A missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// Validate checks the configuration for internally inconsistent values.
func (c *Config) Validate() error {
	if len(c.Includes) == 0 {
		return ErrNoIncludes
	}

	if c.ImplicitQualification == "" {
		return ErrEmptyImplicit
	}

	if c.Registry.Binary == "" {
		return ErrEmptyRegistryBin
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	orderErr := validateEntries(ErrEmptyOrderEntry, c.ImportOrderFirst, c.ImportOrderLast)
	if orderErr != nil {
		return orderErr
	}

	return validateEntries(ErrEmptyPriorityItem, c.PrioModuleHigh, c.PrioPackageHigh)
}

func validateEntries(sentinel error, lists ...[]string) error {
	for _, list := range lists {
		for _, entry := range list {
			if entry == "" {
				return sentinel
			}
		}
	}

	return nil
}

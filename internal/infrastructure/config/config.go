package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Legacy   SourceConfig   `mapstructure:"legacy"`
	Modern   SourceConfig   `mapstructure:"modern"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// SourceConfig points at the configuration file of one system-of-record
type SourceConfig struct {
	// Path to the system's own YAML configuration file
	ConfigPath string `mapstructure:"config_path"`
}

// envBindings are keys that may be set from the environment without being
// present in the config file
var envBindings = []string{
	"legacy.config_path",
	"modern.config_path",
	"logging.level",
	"logging.format",
	"logging.output",
	"logging.file_path",
	"metrics.enabled",
	"metrics.textfile_path",
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (dbmigrate.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigFs(afero.NewOsFs(), configPath)
}

// LoadConfigFs is LoadConfig reading the config file from fs
func LoadConfigFs(fs afero.Fs, configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()
	v.SetFs(fs)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("dbmigrate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "dbmigrate"))
		}
	}

	v.SetEnvPrefix("DBMIGRATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envBindings {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	// Read config file (optional - don't error if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadConfigOrDefault loads configuration or returns a default config on error
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		defaultCfg := &Config{}
		SetDefaults(defaultCfg)
		return defaultCfg
	}
	return cfg
}

package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Metadata source kinds.
const (
	SourceManifest = "manifest"
	SourceFile     = "file"
	SourceDotenv   = "dotenv"
	SourceEnv      = "env"
	SourceKeychain = "keychain"
)

var Sources = []string{SourceManifest, SourceFile, SourceDotenv, SourceEnv, SourceKeychain}

type Config struct {
	LogLevel          string `mapstructure:"log_level"`
	Source            string `mapstructure:"source"`
	ApplicationID     string `mapstructure:"application_id"`
	ManifestPath      string `mapstructure:"manifest_path"`
	MetadataFile      string `mapstructure:"metadata_file"`
	DotenvFile        string `mapstructure:"dotenv_file"`
	EnvPrefix         string `mapstructure:"env_prefix"`
	DebugSecretPrefix bool   `mapstructure:"debug_secret_prefix"`
}

var log = logrus.New()

func SetLogger(l *logrus.Logger) {
	log = l
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("source", SourceManifest)
	v.SetDefault("application_id", "")
	v.SetDefault("manifest_path", "android/app/src/main/AndroidManifest.xml")
	v.SetDefault("metadata_file", "")
	v.SetDefault("dotenv_file", ".env")
	v.SetDefault("env_prefix", "")
	v.SetDefault("debug_secret_prefix", false)

	// Environment variables: MAPSKEY_SOURCE, MAPSKEY_MANIFEST_PATH, ...
	v.SetEnvPrefix("MAPSKEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/maps-key-bridge")
		v.AddConfigPath("/etc/maps-key-bridge")
	}

	// Try to read config file, ignore errors if not found
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warnf("Error reading config file: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))

	log.Debugf("Loaded config: source=%s, application_id=%s", cfg.Source, cfg.ApplicationID)
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Source {
	case SourceManifest:
		if c.ManifestPath == "" {
			return fmt.Errorf("manifest path is required. Set MAPSKEY_MANIFEST_PATH or 'manifest_path' in config")
		}
	case SourceFile:
		if c.MetadataFile == "" {
			return fmt.Errorf("metadata file is required. Set MAPSKEY_METADATA_FILE or 'metadata_file' in config")
		}
	case SourceDotenv:
		if c.DotenvFile == "" {
			return fmt.Errorf("dotenv file is required. Set MAPSKEY_DOTENV_FILE or 'dotenv_file' in config")
		}
	case SourceEnv:
	case SourceKeychain:
		if c.ApplicationID == "" {
			return fmt.Errorf("application ID is required for the keychain source. Set MAPSKEY_APPLICATION_ID or 'application_id' in config")
		}
	default:
		return fmt.Errorf("unknown source %q (expected one of: %s)", c.Source, strings.Join(Sources, ", "))
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

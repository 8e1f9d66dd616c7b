package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the phonebook.
type Config struct {
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"` // "json" or "text"

	// StoragePath is the single backing file of the contact store.
	StoragePath string `mapstructure:"PHONEBOOK_STORAGE_PATH"`
	// FileMode is the permission set on the backing file, as an octal string.
	FileMode       string `mapstructure:"PHONEBOOK_FILE_MODE"`
	VerifyChecksum bool   `mapstructure:"PHONEBOOK_VERIFY_CHECKSUM"`
}

// Load reads config.defaults.yaml (if any), then APP_* environment variables.
// serviceName is reserved for layering a per-binary file on top of the defaults.
func Load(serviceName string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	return load(v, serviceName)
}

// LoadFile reads the given config file instead of searching for the defaults.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v, "")
}

func load(v *viper.Viper, serviceName string) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP") // APP_LOG_LEVEL, APP_PHONEBOOK_STORAGE_PATH etc.

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("PHONEBOOK_STORAGE_PATH", "phonebook.yaml")
	v.SetDefault("PHONEBOOK_FILE_MODE", "0600")
	v.SetDefault("PHONEBOOK_VERIFY_CHECKSUM", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Printf("Base configuration file ('config.defaults.yaml') not found for %s; using defaults and environment variables.", serviceName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.StoragePath) == "" {
		return errors.New("config: PHONEBOOK_STORAGE_PATH is required")
	}
	if _, err := c.ParsedFileMode(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "json", "text":
	default:
		return errors.New("config: LOG_FORMAT must be json or text")
	}
	return nil
}

// ParsedFileMode returns FileMode as an os.FileMode.
func (c *Config) ParsedFileMode() (os.FileMode, error) {
	if c.FileMode == "" {
		return 0o600, nil
	}
	mode, err := strconv.ParseUint(c.FileMode, 8, 32)
	if err != nil || mode > 0o777 {
		return 0, fmt.Errorf("config: PHONEBOOK_FILE_MODE must be an octal permission such as 0600, got %q", c.FileMode)
	}
	return os.FileMode(mode), nil
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"hnterm/domain"
)

// Config holds every tunable of the application. Values come from the config
// file, HNTERM_* environment variables, and command-line flags, in rising
// precedence.
type Config struct {
	Length    int    `mapstructure:"length"`
	StoryType string `mapstructure:"story_type"`
	APIURL    string `mapstructure:"api_url"`

	Cache CacheConfig `mapstructure:"cache"`
	Log   LogConfig   `mapstructure:"log"`
}

type CacheConfig struct {
	PageTTL          time.Duration `mapstructure:"page_ttl"`
	ItemTTL          time.Duration `mapstructure:"item_ttl"`
	PageCap          int           `mapstructure:"page_cap"`
	ItemCap          int           `mapstructure:"item_cap"`
	FetchConcurrency int           `mapstructure:"fetch_concurrency"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

const (
	// MaxLength caps the page size accepted from flags and config.
	MaxLength = 50
)

// Load reads the config file (if present) and environment, returning the
// merged configuration. A missing file is not an error; defaults apply.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.config/hnterm")
	v.AddConfigPath(".")

	v.SetEnvPrefix("hnterm")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("length", 10)
	v.SetDefault("story_type", "best")
	v.SetDefault("api_url", "")
	v.SetDefault("cache.page_ttl", 10*time.Second)
	v.SetDefault("cache.item_ttl", 5*time.Minute)
	v.SetDefault("cache.page_cap", 64)
	v.SetDefault("cache.item_cap", 256)
	v.SetDefault("cache.fetch_concurrency", 8)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Validate checks the merged configuration after flag overrides.
func (c Config) Validate() error {
	if c.Length < 1 || c.Length > MaxLength {
		return fmt.Errorf("length must be between 1 and %d, got %d", MaxLength, c.Length)
	}
	if _, err := domain.ParseStoryType(c.StoryType); err != nil {
		return err
	}
	if c.Cache.PageTTL <= 0 || c.Cache.ItemTTL <= 0 {
		return errors.New("cache TTLs must be positive")
	}
	if c.Cache.PageCap < 1 || c.Cache.ItemCap < 1 {
		return errors.New("cache capacities must be at least 1")
	}
	if c.Cache.FetchConcurrency < 1 {
		return errors.New("fetch_concurrency must be at least 1")
	}
	return nil
}

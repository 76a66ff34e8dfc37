// Package config loads settings for the formskema command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/reoring/formskema/collection"
	"github.com/reoring/formskema/session"
)

// Config holds command configuration.
type Config struct {
	Language   string           `mapstructure:"language"`
	Collection CollectionConfig `mapstructure:"collection"`
}

// CollectionConfig mirrors collection.Options plus session settings.
type CollectionConfig struct {
	FillMissing   bool `mapstructure:"fill_missing"`
	IgnoreUnknown bool `mapstructure:"ignore_unknown"`
	Validate      bool `mapstructure:"validate"`
	Normalize     bool `mapstructure:"normalize"`
	Wrap          bool `mapstructure:"wrap"`
}

// Options converts the collection settings for collection.New.
func (c Config) Options() collection.Options {
	return collection.Options{
		FillMissingKeysWithDefault: c.Collection.FillMissing,
		IgnoreUnknownKeys:          c.Collection.IgnoreUnknown,
		ValidateAddedObject:        c.Collection.Validate,
		NormalizeValues:            c.Collection.Normalize,
	}
}

// SessionOptions returns the collection session settings.
func (c Config) SessionOptions() session.CollectionOpt {
	return session.CollectionOpt{Wrap: c.Collection.Wrap}
}

// Load reads configuration from path, or when path is empty from
// $FORMSKEMA_CONFIG, ./formskema.yaml or ~/.config/formskema/formskema.yaml.
// Env var overrides use prefix FORMSKEMA_ (FORMSKEMA_COLLECTION_WRAP=true).
// A missing default file is not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("language", "en")
	v.SetDefault("collection.fill_missing", true)
	v.SetDefault("collection.ignore_unknown", false)
	v.SetDefault("collection.validate", true)
	v.SetDefault("collection.normalize", true)
	v.SetDefault("collection.wrap", false)

	v.SetConfigType("yaml")

	if path == "" {
		path = os.Getenv("FORMSKEMA_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "formskema"))
		}
		v.SetConfigName("formskema")
	}

	v.SetEnvPrefix("FORMSKEMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

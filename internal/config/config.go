package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/hollyoak/arcanum/internal/storage"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
}

type StorageConfig struct {
	// Backend selects where the journal, settings, spreads and image cache
	// live: "file" keeps one JSON document per key under Directory, "sql"
	// uses the configured database.
	Backend   string            `mapstructure:"backend" validate:"oneof=file sql"`
	Directory string            `mapstructure:"directory" validate:"data_dir"`
	SQL       storage.SQLConfig `mapstructure:"sql"`
}

type OpenAIConfig struct {
	APIKey           string `mapstructure:"api_key"`
	Model            string `mapstructure:"model"`
	ImageModel       string `mapstructure:"image_model"`
	MaxRetryAttempts int    `mapstructure:"max_retry_attempts" validate:"min=0"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/arcanum")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func defaultDataDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "arcanum-data"
	}
	return filepath.Join(home, ".local", "share", "arcanum")
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.directory", defaultDataDirectory())
	v.SetDefault("storage.sql.driver", "sqlite")
	v.SetDefault("storage.sql.host", "localhost")
	v.SetDefault("storage.sql.port", 3306)
	v.SetDefault("storage.sql.database", "arcanum")
	v.SetDefault("storage.sql.username", "arcanum")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.image_model", "dall-e-3")
	v.SetDefault("openai.max_retry_attempts", 0)

	// Bind OpenAI config to environment variables only (not from config file)
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}
	if err := v.BindEnv("openai.image_model", "OPENAI_IMAGE_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_IMAGE_MODEL environment variable: %w", err)
	}

	// Bind database password to environment variable
	if err := v.BindEnv("storage.sql.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	if cfg.Storage.SQL.Path == "" {
		cfg.Storage.SQL.Path = filepath.Join(cfg.Storage.Directory, "arcanum.db")
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// OpenBackend builds the storage backend the configuration selects.
func (cfg *Config) OpenBackend() (storage.Backend, error) {
	switch cfg.Storage.Backend {
	case "sql":
		backend, err := storage.OpenSQL(cfg.Storage.SQL)
		if err != nil {
			return nil, fmt.Errorf("storage.OpenSQL() > %w", err)
		}
		return backend, nil
	default:
		backend, err := storage.NewFileBackend(cfg.Storage.Directory)
		if err != nil {
			return nil, fmt.Errorf("storage.NewFileBackend(%s) > %w", cfg.Storage.Directory, err)
		}
		return backend, nil
	}
}

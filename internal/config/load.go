package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration environment variable.
const EnvPrefix = "FLASHDECK"

// Defaults applied before any file or environment value.
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultBackend         = BackendFile
	DefaultPath            = "./data/reviewer.json"
	DefaultCorrectPoints   = 1
	DefaultIncorrectPoints = -1
)

var bindings = []struct {
	key    string
	envVar string
}{
	{"server.port", "FLASHDECK_SERVER_PORT"},
	{"server.log_level", "FLASHDECK_SERVER_LOG_LEVEL"},
	{"storage.backend", "FLASHDECK_STORAGE_BACKEND"},
	{"storage.path", "FLASHDECK_STORAGE_PATH"},
	{"storage.database_url", "FLASHDECK_STORAGE_DATABASE_URL"},
	{"review.correct_points", "FLASHDECK_REVIEW_CORRECT_POINTS"},
	{"review.incorrect_points", "FLASHDECK_REVIEW_INCORRECT_POINTS"},
}

// Load reads configuration from environment variables and, when present,
// a config.yaml in the working directory.
func Load() (*Config, error) {
	return load("")
}

// LoadFile is Load with an explicit YAML config file. The file must exist.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config file path is empty")
	}
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("storage.backend", DefaultBackend)
	v.SetDefault("storage.path", DefaultPath)
	v.SetDefault("review.correct_points", DefaultCorrectPoints)
	v.SetDefault("review.incorrect_points", DefaultIncorrectPoints)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, b := range bindings {
		if err := v.BindEnv(b.key, b.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", b.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

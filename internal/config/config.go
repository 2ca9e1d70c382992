package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Review  ReviewConfig  `mapstructure:"review" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Storage backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// StorageConfig selects where the deck library is persisted.
type StorageConfig struct {
	Backend     string `mapstructure:"backend" validate:"required,oneof=file postgres"`
	Path        string `mapstructure:"path" validate:"required_if=Backend file"`
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Backend postgres"`
}

// ReviewConfig holds the score changes applied by a review answer.
// Neither may exceed the full span between the score thresholds.
type ReviewConfig struct {
	CorrectPoints   int `mapstructure:"correct_points" validate:"gt=0,max=8"`
	IncorrectPoints int `mapstructure:"incorrect_points" validate:"lt=0,min=-8"`
}

// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	DBDriver           string        `mapstructure:"DB_DRIVER"`
	DBSource           string        `mapstructure:"DB_SOURCE"`
	ServerAddress      string        `mapstructure:"SERVER_ADDRESS"`
	Environement       string        `mapstructure:"GO_ENV"`
	ServiceName        string        `mapstructure:"SERVICE_NAME"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]any{
	"DB_DRIVER":            "sqlite",
	"DB_SOURCE":            "accounts.db",
	"SERVER_ADDRESS":       "0.0.0.0:5000",
	"GO_ENV":               "production",
	"SERVICE_NAME":         "account-management-api",
	"CORS_ALLOWED_ORIGINS": "*",
	"SHUTDOWN_TIMEOUT":     "5s",
}

// Load read configuration from file or environment variables.
//
// The app.env file in path is optional, environment variables take precedence over it.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

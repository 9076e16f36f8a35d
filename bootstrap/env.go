package bootstrap

import (
	"fmt"

	"github.com/spf13/viper"
)

// Env holds everything the library needs from the environment. Values come
// from an optional .env file, overridden by process environment variables.
type Env struct {
	AppEnv         string `mapstructure:"APP_ENV"`
	MongoURI       string `mapstructure:"MONGO_URI"`
	DBName         string `mapstructure:"DB_NAME"`
	ContextTimeout int    `mapstructure:"CONTEXT_TIMEOUT"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
}

// NewEnv loads configuration from the given .env path (pass "" to rely on
// process environment and defaults only).
func NewEnv(path string) (*Env, error) {
	v := viper.New()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("DB_NAME", "app")
	v.SetDefault("CONTEXT_TIMEOUT", 10)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
	}

	env := &Env{}
	if err := v.Unmarshal(env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment: %w", err)
	}
	if env.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI cannot be empty")
	}
	return env, nil
}

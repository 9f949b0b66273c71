package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from file based on the environment,
// with LS_-prefixed environment variables taking precedence
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional when every value has a default or env override
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("LS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	normalizeDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			return godotenv.Load(path)
		}
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 2) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")

	v.SetDefault("auth.tokenTTL", 60) // minutes
}

// getEnvironment determines the environment from LS_ENV
func getEnvironment() string {
	env := os.Getenv("LS_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures sensitive values can come from the environment
func processEnvOverrides(v *viper.Viper) {
	overrides := map[string]string{
		"database.host":     "LS_DB_HOST",
		"database.port":     "LS_DB_PORT",
		"database.username": "LS_DB_USERNAME",
		"database.password": "LS_DB_PASSWORD",
		"database.database": "LS_DB_NAME",
		"database.sslMode":  "LS_DB_SSL_MODE",
		"auth.jwtSecret":    "LS_JWT_SECRET",
	}

	for key, envVar := range overrides {
		if value := os.Getenv(envVar); value != "" {
			v.Set(key, value)
		}
	}
}

// normalizeDurations converts raw numeric config values into durations in
// their documented units
func normalizeDurations(c *Config) {
	c.Server.ReadTimeout *= time.Second
	c.Server.WriteTimeout *= time.Second
	c.Server.IdleTimeout *= time.Second
	c.Server.ReadHeaderTimeout *= time.Second
	c.Server.ShutdownTimeout *= time.Second

	c.Database.ConnMaxLifetime *= time.Minute
	c.Database.ConnMaxIdleTime *= time.Minute
	c.Database.QueryTimeout *= time.Second
	c.Database.RetryDelay *= time.Second

	c.Auth.TokenTTL *= time.Minute
}

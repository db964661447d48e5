// Package config loads the backend configuration from the environment.
package config

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	CORS   CORSConfig
	Report ReportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port      string
	GinMode   string
	LogFormat string
}

// DBConfig holds database settings.
type DBConfig struct {
	// Path of the sqlite database file.
	Path string
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret   string
	Lifetime time.Duration
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowOrigins []string
}

// ReportConfig holds settings for the monthly report engine.
type ReportConfig struct {
	// AllocationTolerance is the maximum difference between the sum of all
	// spending allocations and the total budget that is still accepted.
	AllocationTolerance decimal.Decimal
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_format", "")
	v.SetDefault("db_path", "data/gorm.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_lifetime", "24h")
	v.SetDefault("cors_allow_origins", "")
	v.SetDefault("allocation_tolerance", "0.01")

	v.AutomaticEnv()

	lifetime, err := time.ParseDuration(v.GetString("jwt_lifetime"))
	if err != nil {
		return Config{}, err
	}

	tolerance, err := decimal.NewFromString(v.GetString("allocation_tolerance"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		Server: ServerConfig{
			Port:      v.GetString("port"),
			GinMode:   v.GetString("gin_mode"),
			LogFormat: v.GetString("log_format"),
		},
		DB: DBConfig{
			Path: v.GetString("db_path"),
		},
		JWT: JWTConfig{
			Secret:   v.GetString("jwt_secret"),
			Lifetime: lifetime,
		},
		CORS: CORSConfig{
			AllowOrigins: strings.Fields(v.GetString("cors_allow_origins")),
		},
		Report: ReportConfig{
			AllocationTolerance: tolerance,
		},
	}, nil
}

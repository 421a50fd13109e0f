// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	configDir = pflag.String("config-dir", ".", "Directory searched for config.toml")

	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"sqlite", "postgres"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configDir)

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.frontend_origin", "host_frontend_origin")

	v.BindEnv("storage.driver", "storage_driver")
	v.BindEnv("storage.dsn", "storage_dsn")

	v.BindEnv("auth.jwt_secret", "auth_jwt_secret")
	v.BindEnv("auth.provider_url", "auth_provider_url")
	v.BindEnv("auth.secret_key", "auth_secret_key")

	v.BindEnv("aws.access_key_id", "aws_access_key_id")
	v.BindEnv("aws.secret_access_key", "aws_secret_access_key")
	v.BindEnv("aws.region", "aws_region")
	v.BindEnv("aws.bucket", "aws_bucket")
	v.BindEnv("aws.endpoint", "aws_endpoint")

	v.BindEnv("trash.retention_days", "trash_retention_days")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.frontend_origin", "http://localhost:3000")

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.dsn", "drive.db")

	v.SetDefault("aws.region", "ap-south-1")

	v.SetDefault("trash.retention_days", 0)

	// Every key is also env-bound so a missing config file is fine
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("storage.driver")) {
		return errors.New("invalid storage driver provided")
	}

	if v.GetString("storage.dsn") == "" {
		return errors.New("storage dsn can't be empty")
	}

	if v.GetString("auth.jwt_secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so one has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetString("auth.provider_url") == "" {
		return errors.New("identity provider url can't be empty")
	}

	if v.GetString("auth.secret_key") == "" {
		return errors.New("identity provider secret key can't be empty")
	}

	if v.GetString("aws.access_key_id") == "" {
		return errors.New("access key id can't be empty")
	}

	if v.GetString("aws.secret_access_key") == "" {
		return errors.New("secret access key can't be empty")
	}

	if v.GetString("aws.bucket") == "" {
		return errors.New("bucket can't be empty")
	}

	if v.GetString("aws.endpoint") == "" && v.GetString("aws.region") == "" {
		return errors.New("either a region or a custom endpoint must be provided")
	}

	if v.GetInt("trash.retention_days") < 0 {
		return errors.New("trash retention can't be negative")
	}

	return nil
}

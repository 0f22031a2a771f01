package config

import (
	"os"
	"strconv"
)

type Config struct {
	App    AppConfig
	Logger LoggerConfig
}

type AppConfig struct {
	AppEnv       string
	DatabasePath string
	ExportDir    string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

func LoadEnv() *Config {
	return &Config{
		App: AppConfig{
			AppEnv:       getEnv("APP_ENV", "dev"),
			DatabasePath: getEnv("BEERCOUNTER_DB_PATH", "beer_data.db"),
			ExportDir:    getEnv("BEERCOUNTER_EXPORT_DIR", "."),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

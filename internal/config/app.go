package config

import (
	"log"
	"sync"
)

type AppConfig struct {
	Name      string
	Env       string
	Port      string
	BaseURL   string
	LogLevel  string
	LogFormat string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		v := env()
		appEnv := v.GetString("APP_ENV")
		if appEnv == "" {
			appEnv = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", appEnv)
		}
		format := v.GetString("LOG_FORMAT")
		if format == "" && appEnv == "production" {
			format = "json"
		}
		appConfig = &AppConfig{
			Name:      v.GetString("APP_NAME"),
			Env:       appEnv,
			Port:      v.GetString("APP_PORT"),
			BaseURL:   v.GetString("APP_URL"),
			LogLevel:  v.GetString("LOG_LEVEL"),
			LogFormat: format,
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

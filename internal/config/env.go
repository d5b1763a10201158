package config

import (
	"strings"
	"sync"

	"github.com/spf13/viper"
)

var envOnce sync.Once

// env returns the process-wide viper instance bound to the environment.
// Every LoadXConfig reads through it so defaults live in one place.
func env() *viper.Viper {
	envOnce.Do(func() {
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		viper.AutomaticEnv()

		viper.SetDefault("APP_NAME", "FairFound Coach")
		viper.SetDefault("APP_PORT", ":8080")
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("AI_PROVIDER", "gemini")
		viper.SetDefault("AI_MODEL", "gemini-2.5-flash")
		viper.SetDefault("OPENROUTER_MODEL", "openai/gpt-4o-mini")
		viper.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
		viper.SetDefault("OPENROUTER_TIMEOUT", "90s")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("REDIS_ADDR", "localhost:6379")
		viper.SetDefault("REDIS_DB", 0)
	})
	return viper.GetViper()
}

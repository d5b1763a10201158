package config

import (
	"fmt"
	"sync"
	"time"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

var (
	dbConfig *DBConfig
	dbOnce   sync.Once
)

// LoadDBConfig reads DB_*. Pool sizes default to small values outside
// production and larger ones in production; DB_MAX_* overrides either.
func LoadDBConfig() *DBConfig {
	dbOnce.Do(func() {
		v := env()
		openConns, idleConns, lifetime := 10, 5, 30*time.Minute
		if LoadAppConfig().IsProduction() {
			openConns, idleConns, lifetime = 200, 20, time.Hour
		}
		if v.IsSet("DB_MAX_OPEN_CONNS") {
			openConns = v.GetInt("DB_MAX_OPEN_CONNS")
		}
		if v.IsSet("DB_MAX_IDLE_CONNS") {
			idleConns = v.GetInt("DB_MAX_IDLE_CONNS")
		}
		if v.IsSet("DB_CONN_MAX_LIFETIME") {
			lifetime = v.GetDuration("DB_CONN_MAX_LIFETIME")
		}

		dbConfig = &DBConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    openConns,
			MaxIdleConns:    idleConns,
			ConnMaxLifetime: lifetime,
		}
	})
	return dbConfig
}

// Enabled reports whether a Postgres host was configured. Without one the
// server keeps sessions and mentees in memory.
func (c *DBConfig) Enabled() bool {
	return c.Host != ""
}

func (c *DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

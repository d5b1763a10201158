package config

import (
	"sync"
)

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

var (
	redisConfig *RedisConfig
	redisOnce   sync.Once
)

func LoadRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		v := env()
		redisConfig = &RedisConfig{
			Address:  v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		}
	})
	return redisConfig
}

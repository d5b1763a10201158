package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDBConfig_DSNAndEnabled(t *testing.T) {
	c := &DBConfig{Host: "db", Port: "5432", User: "ff", Password: "pw", Name: "fairfound", SSLMode: "disable"}
	assert.True(t, c.Enabled())
	assert.Equal(t, "host=db user=ff password=pw dbname=fairfound port=5432 sslmode=disable TimeZone=UTC", c.DSN())

	assert.False(t, (&DBConfig{}).Enabled())
}

func TestOpenRouterConfig_Enabled(t *testing.T) {
	assert.True(t, (&OpenRouterConfig{APIKey: "k"}).Enabled())
	assert.False(t, (&OpenRouterConfig{}).Enabled())
}

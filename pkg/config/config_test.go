package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "USD", cfg.App.Currency)
	assert.Equal(t, 30, cfg.Documents.WarningWindowDays)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Sobrescrituras(t *testing.T) {
	v := viper.New()
	v.Set("DOCUMENTS_WARNING_DAYS", "45")
	v.Set("HTTP_PORT", 9090)
	v.Set("DB_MIGRATE", "false")
	v.Set("APP_CURRENCY", "EUR")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.Documents.WarningWindowDays)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, "EUR", cfg.App.Currency)
}

func TestFromViper_VentanaNegativaEsError(t *testing.T) {
	v := viper.New()
	v.Set("DOCUMENTS_WARNING_DAYS", -1)
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "crm", Password: "p@ss:w/rd", DBName: "bufete", SSLMode: "disable"}
	assert.Equal(t, "postgres://crm:p%40ss%3Aw%2Frd@db:5432/bufete?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://x@y/z"
	assert.Equal(t, "postgresql://x@y/z", c.ConnectionString())
}

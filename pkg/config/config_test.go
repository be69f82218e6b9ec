package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnvViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 80, cfg.Barcode.MaxLength)
	assert.Equal(t, StorageDriverNone, cfg.Storage.Driver)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE_DRIVER", "FS")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("HTTP_CORS_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := fromViper(newEnvViper())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, StorageDriverFS, cfg.Storage.Driver)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.CORSOriginList())
}

func TestFromViper_S3SinBucket(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "s3")

	_, err := fromViper(newEnvViper())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_S3_BUCKET")
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "ftp")

	_, err := fromViper(newEnvViper())
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "lab", Password: "p@ss:w/rd", DBName: "labops", SSLMode: "disable"}
	assert.Equal(t, "postgres://lab:p%40ss%3Aw%2Frd@db:5432/labops?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

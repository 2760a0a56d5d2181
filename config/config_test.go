package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetConfig_Defaults(t *testing.T) {
	cfg := GetConfig()

	assert.Equal(t, "sales_staging", cfg.StagingConfig.DBName)
	assert.Equal(t, "sales_dwh", cfg.WarehouseConfig.DBName)
	assert.Equal(t, "mysql", cfg.StagingConfig.Driver)
	assert.Equal(t, 24*time.Hour, cfg.RunInterval)
	assert.Equal(t, ":8090", cfg.APIAddr)
}

func TestGetConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DWH_STAGING_HOST", "staging-db")
	t.Setenv("DWH_STAGING_PORT", "3307")
	t.Setenv("DWH_WAREHOUSE_DBNAME", "dwh_test")
	t.Setenv("DWH_RUN_INTERVAL", "1h")
	t.Setenv("DWH_API_ADDR", ":9000")

	cfg := GetConfig()

	assert.Equal(t, "staging-db", cfg.StagingConfig.Host)
	assert.Equal(t, 3307, cfg.StagingConfig.Port)
	assert.Equal(t, "dwh_test", cfg.WarehouseConfig.DBName)
	assert.Equal(t, time.Hour, cfg.RunInterval)
	assert.Equal(t, ":9000", cfg.APIAddr)
}

func TestGetConfig_InvalidEnvIgnored(t *testing.T) {
	t.Setenv("DWH_STAGING_PORT", "не число")
	t.Setenv("DWH_RUN_INTERVAL", "скоро")

	cfg := GetConfig()

	assert.Equal(t, DefaultStagingConfig.Port, cfg.StagingConfig.Port)
	assert.Equal(t, DefaultETLConfig.RunInterval, cfg.RunInterval)
}

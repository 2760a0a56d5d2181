package config

import (
	"os"
	"strconv"
	"time"
)

// ETLConfig содержит конфигурацию для ETL-процесса
type ETLConfig struct {
	// Конфигурация для подключения к staging БД (исходной)
	StagingConfig DatabaseConfig `json:"staging_config"`

	// Конфигурация для подключения к БД хранилища (целевой)
	WarehouseConfig DatabaseConfig `json:"warehouse_config"`

	// Интервал запуска ETL
	RunInterval time.Duration `json:"run_interval"`

	// Адрес HTTP API отчётов о запусках
	APIAddr string `json:"api_addr"`

	// Включение/отключение подробного логирования
	EnableDetailedLogging bool `json:"enable_detailed_logging"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

// Значения конфигурации по умолчанию
var (
	DefaultStagingConfig = DatabaseConfig{
		Driver: "mysql",
		Host:   "localhost",
		Port:   3306,
		User:   "root",
		DBName: "sales_staging",
	}

	DefaultWarehouseConfig = DatabaseConfig{
		Driver: "mysql",
		Host:   "localhost",
		Port:   3306,
		User:   "root",
		DBName: "sales_dwh",
	}

	DefaultETLConfig = ETLConfig{
		StagingConfig:         DefaultStagingConfig,
		WarehouseConfig:       DefaultWarehouseConfig,
		RunInterval:           24 * time.Hour,
		APIAddr:               ":8090",
		EnableDetailedLogging: true,
	}
)

// GetConfig возвращает конфигурацию ETL.
// Значения по умолчанию можно переопределить переменными окружения
func GetConfig() ETLConfig {
	config := DefaultETLConfig

	applyEnv(&config.StagingConfig, "DWH_STAGING")
	applyEnv(&config.WarehouseConfig, "DWH_WAREHOUSE")

	if v := os.Getenv("DWH_RUN_INTERVAL"); v != "" {
		if interval, err := time.ParseDuration(v); err == nil {
			config.RunInterval = interval
		}
	}

	if v := os.Getenv("DWH_API_ADDR"); v != "" {
		config.APIAddr = v
	}

	return config
}

// applyEnv переопределяет настройки подключения переменными окружения
// с заданным префиксом (например, DWH_STAGING_HOST)
func applyEnv(dbConfig *DatabaseConfig, prefix string) {
	if v := os.Getenv(prefix + "_HOST"); v != "" {
		dbConfig.Host = v
	}
	if v := os.Getenv(prefix + "_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			dbConfig.Port = port
		}
	}
	if v := os.Getenv(prefix + "_USER"); v != "" {
		dbConfig.User = v
	}
	if v := os.Getenv(prefix + "_PASSWORD"); v != "" {
		dbConfig.Password = v
	}
	if v := os.Getenv(prefix + "_DBNAME"); v != "" {
		dbConfig.DBName = v
	}
}

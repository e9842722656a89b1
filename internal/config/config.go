package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	GinMode         string
	TransactionBase string
	HistoryBase     string
	ClientTimeout   time.Duration
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSSLMode       string
	AutoMigrate     bool
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		TransactionBase: getEnv("TRANSACTION_API_URL", "http://localhost:8081/api/v1/transacciones"),
		HistoryBase:     getEnv("HISTORY_API_URL", "http://localhost:8082/api/v1/historial"),
		ClientTimeout:   time.Duration(getEnvInt("CLIENT_TIMEOUT_SECONDS", 10)) * time.Second,
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "dashboard"),
		DBPassword:      getEnv("DB_PASSWORD", "dashboard_secret"),
		DBName:          getEnv("DB_NAME", "dashboard"),
		DBSSLMode:       getEnv("DB_SSLMODE", "disable"),
		AutoMigrate:     getEnv("AUTO_MIGRATE", "false") == "true",
	}
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

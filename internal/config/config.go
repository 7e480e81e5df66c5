package config

import (
	"os"
	"strconv"
	"strings"

	"coverage-planner-go/pkg/models"
)

// Config структура конфигурации приложения
type Config struct {
	Environment string
	Server      struct {
		Port     int
		Host     string
		GRPCPort int
	}
	IntakeAPI struct {
		BaseURL string
		Timeout int // в секундах
	}
	Database DatabaseConfig
	Storage  StorageConfig
	Planner  PlannerConfig
	Logging  struct {
		Level string
	}
}

// DatabaseConfig конфигурация базы данных
type DatabaseConfig struct {
	Enabled  bool // false: миссии хранятся в памяти процесса
	Host     string
	Port     string
	Database string
	Username string
	Password string
	SSLMode  string
}

// StorageConfig конфигурация хранилища артефактов миссий
type StorageConfig struct {
	Backend string // fs или minio
	Dir     string
	MinIO   struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
	}
}

// PlannerConfig значения по умолчанию для планировщика
type PlannerConfig struct {
	CruiseSpeedMps    float64
	MaxSegmentTimeMin float64
	OriginLat         float64
	OriginLon         float64
	Projection        string
}

// FlightParameters параметры полёта по умолчанию
func (p PlannerConfig) FlightParameters() models.FlightParameters {
	return models.FlightParameters{
		CruiseSpeedMps:    p.CruiseSpeedMps,
		MaxSegmentTimeMin: p.MaxSegmentTimeMin,
	}
}

// Origin опорная точка по умолчанию
func (p PlannerConfig) Origin() models.Origin {
	return models.Origin{Latitude: p.OriginLat, Longitude: p.OriginLon}
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() *Config {
	cfg := &Config{}

	cfg.Environment = getEnv("ENVIRONMENT", "development")

	// Конфигурация сервера
	cfg.Server.Port = getEnvInt("SERVER_PORT", 8080)
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.GRPCPort = getEnvInt("GRPC_PORT", 9090)

	// Конфигурация сервиса приёма миссий
	cfg.IntakeAPI.BaseURL = getEnv("INTAKE_API_BASE_URL", "http://localhost:8000")
	cfg.IntakeAPI.Timeout = getEnvInt("INTAKE_API_TIMEOUT_SECONDS", 120)

	// Конфигурация базы данных
	cfg.Database = DatabaseConfig{
		Enabled:  getEnvBool("DB_ENABLED", true),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		Database: getEnv("DB_NAME", "coverage_planner"),
		Username: getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Конфигурация хранилища
	cfg.Storage.Backend = strings.ToLower(getEnv("STORAGE_BACKEND", "fs"))
	cfg.Storage.Dir = getEnv("STORAGE_DIR", "./data")
	cfg.Storage.MinIO.Endpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	cfg.Storage.MinIO.AccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	cfg.Storage.MinIO.SecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	cfg.Storage.MinIO.Bucket = getEnv("MINIO_BUCKET", "missions")
	cfg.Storage.MinIO.UseSSL = getEnvBool("MINIO_USE_SSL", false)

	// Значения по умолчанию для планировщика
	cfg.Planner = PlannerConfig{
		CruiseSpeedMps:    getEnvFloat("DEFAULT_CRUISE_SPEED_MPS", models.DefaultCruiseSpeedMps),
		MaxSegmentTimeMin: getEnvFloat("DEFAULT_MAX_SEGMENT_TIME_MIN", models.DefaultMaxSegmentTimeMin),
		OriginLat:         getEnvFloat("DEFAULT_ORIGIN_LAT", models.DefaultOriginLat),
		OriginLon:         getEnvFloat("DEFAULT_ORIGIN_LON", models.DefaultOriginLon),
		Projection:        getEnv("PROJECTION_MODE", "linear"),
	}

	// Конфигурация логирования
	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")

	return cfg
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает int значение переменной окружения или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает float64 значение переменной окружения или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvBool получает bool значение переменной окружения или возвращает значение по умолчанию
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

package app

import (
	"os"
	"strconv"
	"time"

	"go-payslip/internal/asset"
	"go-payslip/internal/shared/connection"
)

const connectRetries = 5

type Config struct {
	Port               string
	DB                 connection.DBConfig
	RedisAddr          string
	KafkaBroker        string
	AttendanceBaseURL  string
	AttendanceTimeout  time.Duration
	AssetTimeout       time.Duration
	CompanyProfilePath string
	StorageDir         string
	PublicBaseURL      string
	RateLimitPerSecond float64
	RateLimitBurst     int
	OutboxPollInterval time.Duration
	OutboxRetention    time.Duration
	ConsumerGroupID    string
	GenerationLockTTL  time.Duration
}

// LoadConfig reads the process environment. .env is loaded by main.
func LoadConfig() Config {
	port := getenv("PORT", "3000")
	return Config{
		Port: port,
		DB: connection.DBConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getenv("DB_PORT", "5432"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		AttendanceBaseURL:  os.Getenv("ATTENDANCE_API_BASE_URL"),
		AttendanceTimeout:  getDuration("ATTENDANCE_API_TIMEOUT", 10*time.Second),
		AssetTimeout:       getDuration("ASSET_TIMEOUT", asset.DefaultTimeout),
		CompanyProfilePath: getenv("COMPANY_PROFILE_PATH", "configs/company_profiles.yaml"),
		StorageDir:         getenv("PAYSLIP_STORAGE_DIR", "storage/payslips"),
		PublicBaseURL:      getenv("PAYSLIP_PUBLIC_BASE_URL", "http://localhost:"+port+"/files/payslips"),
		RateLimitPerSecond: getFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getInt("RATE_LIMIT_BURST", 20),
		OutboxPollInterval: getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		OutboxRetention:    getDuration("OUTBOX_RETENTION", 7*24*time.Hour),
		ConsumerGroupID:    getenv("KAFKA_CONSUMER_GROUP", "go-payslip-salary-slip"),
		GenerationLockTTL:  getDuration("GENERATION_LOCK_TTL", 2*time.Minute),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration accepts Go durations ("3s") or bare milliseconds ("3000").
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

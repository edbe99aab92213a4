package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port    string
	BaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// PipelineConfig carries the timeline pipeline knobs. Zero values fall
// back to the pipeline defaults.
type PipelineConfig struct {
	BucketMinutes         int
	SampleIntervalSeconds int
	TimelineStartHour     int
	TimelineEndHour       int
	TimelineSlotMinutes   int
}

type Config struct {
	Server   ServerConfig
	DB       DatabaseConfig
	Redis    RedisConfig
	Pipeline PipelineConfig
	Env      string
}

func LoadConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			BaseURL: getEnv("BASE_URL", "http://localhost:8080"),
		},
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "timeline"),
			Password: getEnv("DB_PASS", "timeline"),
			DBName:   getEnv("DB_NAME", "activity_timeline"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Pipeline: PipelineConfig{
			BucketMinutes:         getEnvInt("BUCKET_MINUTES", 5),
			SampleIntervalSeconds: getEnvInt("SAMPLE_INTERVAL_SECONDS", 5),
			TimelineStartHour:     getEnvInt("TIMELINE_START_HOUR", 6),
			TimelineEndHour:       getEnvInt("TIMELINE_END_HOUR", 22),
			TimelineSlotMinutes:   getEnvInt("TIMELINE_SLOT_MINUTES", 15),
		},
		Env: getEnv("ENV", "prod"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return parsed
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN           string
	JWTSecret       string
	Port            string
	Environment     string
	ImagesDir       string
	MigrationsDir   string
	TokenTTLMinutes int
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Port:          os.Getenv("PORT"),
		Environment:   os.Getenv("ENV"),
		ImagesDir:     os.Getenv("IMAGES_DIR"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.ImagesDir == "" {
		cfg.ImagesDir = "./images"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "./migrations"
	}

	cfg.TokenTTLMinutes = 60
	if ttl := os.Getenv("TOKEN_TTL_MINUTES"); ttl != "" {
		parsed, err := strconv.Atoi(ttl)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES %q", ttl)
		}
		cfg.TokenTTLMinutes = parsed
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}

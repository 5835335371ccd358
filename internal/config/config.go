package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	defaultMongoURI    = "mongodb://localhost:27017/assignment13"
	defaultDatabaseDSN = "host=localhost user=postgres password=postgres dbname=inventory port=5432 sslmode=disable"
)

type Config struct {
	HTTPPort     string
	StoreDriver  string
	MongoURI     string
	DatabaseDSN  string
	CORSOrigins  string
	StoreTimeout time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] .env okunamadı: %v", err)
	}

	cfg := &Config{
		HTTPPort:     getEnv("PORT", "5001"),
		StoreDriver:  getEnv("STORE_DRIVER", DriverMongo),
		MongoURI:     getEnv("MONGO_URI", defaultMongoURI),
		DatabaseDSN:  getEnv("DATABASE_DSN", defaultDatabaseDSN),
		CORSOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "*"),
		StoreTimeout: 5 * time.Second,
	}

	if v := os.Getenv("STORE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("STORE_TIMEOUT: %w", err)
		}
		cfg.StoreTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch {
	case cfg.StoreDriver == DriverMongo && cfg.MongoURI == defaultMongoURI:
		log.Println("[WARN] MONGO_URI varsayılan değer kullanılıyor, yerel geliştirme dışında kendi bağlantını tanımla.")
	case cfg.StoreDriver == DriverPostgres && cfg.DatabaseDSN == defaultDatabaseDSN:
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, yerel geliştirme dışında kendi Postgres bağlantını tanımla.")
	}
	if cfg.CORSOrigins == "*" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS tüm origin'lere açık.")
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.HTTPPort)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT geçersiz: %q", c.HTTPPort)
	}
	switch c.StoreDriver {
	case DriverMongo, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER geçersiz: %q (mongo, postgres, memory)", c.StoreDriver)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT pozitif olmalı: %s", c.StoreTimeout)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

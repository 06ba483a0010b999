package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Режимы хранения
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"postgres"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://migrations"`
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	DBMaxConns     int    `env:"DB_MAX_CONNS" envDefault:"10"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// RedisPoolSize - размер пула соединений; Redis нужен только при заданном REDIS_ADDR
	RedisPoolSize int `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Hotspot analysis
	HotspotPermutations int     `env:"HOTSPOT_PERMUTATIONS" envDefault:"999"`
	HotspotThreshold    float64 `env:"HOTSPOT_THRESHOLD" envDefault:"0.05"`
	HotspotWorkers      int     `env:"HOTSPOT_WORKERS" envDefault:"0"`

	// HotspotSeed - nil означает случайный seed на каждый расчет
	HotspotSeed *uint64 `env:"HOTSPOT_SEED"`

	// Region graph
	Contiguity        string        `env:"CONTIGUITY" envDefault:"queen"`
	GeometryTolerance float64       `env:"GEOMETRY_TOLERANCE" envDefault:"1e-9"`
	GraphCacheSize    int           `env:"GRAPH_CACHE_SIZE" envDefault:"64"`
	GraphCacheTTL     time.Duration `env:"GRAPH_CACHE_TTL" envDefault:"1h"`

	// Disease catalog: FMD=14,PPR=21,Anthrax=7
	DiseaseIncubation     map[string]int `env:"DISEASE_INCUBATION"`
	DefaultIncubationDays int            `env:"DEFAULT_INCUBATION_DAYS" envDefault:"21"`

	// Файл GeoJSON с границами воред для режима memory
	RegionsFile string `env:"REGIONS_FILE"`
}

// DefaultDiseaseIncubation - максимальные инкубационные периоды в днях
const DefaultDiseaseIncubation = "FMD=14,PPR=21,Anthrax=7"

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		StorageBackend:        strings.ToLower(getEnv("STORAGE_BACKEND", StoragePostgres)),
		MigrationsPath:        getEnv("MIGRATIONS_PATH", "file://migrations"),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		DBMaxConns:            getEnvAsInt("DB_MAX_CONNS", 10),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		RedisPoolSize:         getEnvAsInt("REDIS_POOL_SIZE", 10),
		WebhookURL:            os.Getenv("WEBHOOK_URL"),
		WebhookSecret:         os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:        getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:     getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:      getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		HotspotPermutations:   getEnvAsInt("HOTSPOT_PERMUTATIONS", 999),
		HotspotThreshold:      getEnvAsFloat("HOTSPOT_THRESHOLD", 0.05),
		HotspotWorkers:        getEnvAsInt("HOTSPOT_WORKERS", 0),
		HotspotSeed:           getEnvAsOptionalUint64("HOTSPOT_SEED"),
		Contiguity:            getEnv("CONTIGUITY", "queen"),
		GeometryTolerance:     getEnvAsFloat("GEOMETRY_TOLERANCE", 1e-9),
		GraphCacheSize:        getEnvAsInt("GRAPH_CACHE_SIZE", 64),
		GraphCacheTTL:         getEnvAsDuration("GRAPH_CACHE_TTL", time.Hour),
		DefaultIncubationDays: getEnvAsInt("DEFAULT_INCUBATION_DAYS", 21),
		RegionsFile:           os.Getenv("REGIONS_FILE"),
	}

	incubation, err := ParseIncubation(getEnv("DISEASE_INCUBATION", DefaultDiseaseIncubation))
	if err != nil {
		return nil, err
	}
	cfg.DiseaseIncubation = incubation

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.HotspotPermutations < 1 {
		return fmt.Errorf("HOTSPOT_PERMUTATIONS must be at least 1")
	}
	if c.HotspotThreshold <= 0 || c.HotspotThreshold > 1 {
		return fmt.Errorf("HOTSPOT_THRESHOLD must be within (0, 1]")
	}
	if c.DefaultIncubationDays < 0 {
		return fmt.Errorf("DEFAULT_INCUBATION_DAYS must not be negative")
	}
	return nil
}

// ParseIncubation разбирает строку вида "FMD=14,PPR=21"
func ParseIncubation(s string) (map[string]int, error) {
	out := make(map[string]int)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, days, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid DISEASE_INCUBATION entry %q", pair)
		}
		n, err := strconv.Atoi(strings.TrimSpace(days))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid incubation days for %s: %q", code, days)
		}
		out[strings.TrimSpace(code)] = n
	}
	return out, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsOptionalUint64 возвращает nil, если переменная не задана или некорректна
func getEnvAsOptionalUint64(key string) *uint64 {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if v, err := strconv.ParseUint(value, 10, 64); err == nil {
			return &v
		}
	}
	return nil
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

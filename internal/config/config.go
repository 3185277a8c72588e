package config

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config хранит конфигурацию сервера
type Config struct {
	ServerAddress string        `json:"server_address"`
	BaseURL       string        `json:"base_url"`
	DatabaseDSN   string        `json:"database_dsn"`
	RedisAddr     string        `json:"redis_addr"`
	RedisPassword string        `json:"-"`
	AuthSecret    string        `json:"-"`
	TokenIssuer   string        `json:"token_issuer"`
	TokenTTL      time.Duration `json:"token_ttl"`
	HashWorkers   int           `json:"hash_workers"`
	Mode          string        `json:"-"`
}

// NewConfig инициализирует конфигурацию: значения по умолчанию, затем
// .env и переменные окружения, затем флаги командной строки.
func NewConfig() *Config {

	viper.SetDefault("SERVER_ADDRESS", "localhost:8080") // Значения по умолчанию
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("AUTH_SECRET", "local-dev-secret")
	viper.SetDefault("TOKEN_ISSUER", "linkcut")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("HASH_WORKERS", 0) // 0 — по числу CPU

	viper.AutomaticEnv()

	// Читаем .env, если есть (не переопределяет переменные окружения!)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // Ошибку игнорируем, если файла нет

	// Определяем флаги, но НЕ задаем в них значения по умолчанию
	serverAddress := flag.String("a", "", "server address")
	baseURL := flag.String("b", "", "base URL")
	databaseDSN := flag.String("d", "", "PostgreSQL DSN")
	redisAddr := flag.String("r", "", "Redis address")

	flag.Parse()

	cfg := &Config{
		ServerAddress: viper.GetString("SERVER_ADDRESS"),
		BaseURL:       viper.GetString("BASE_URL"),
		DatabaseDSN:   viper.GetString("DATABASE_DSN"),
		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),
		AuthSecret:    viper.GetString("AUTH_SECRET"),
		TokenIssuer:   viper.GetString("TOKEN_ISSUER"),
		TokenTTL:      viper.GetDuration("TOKEN_TTL"),
		HashWorkers:   viper.GetInt("HASH_WORKERS"),
	}

	// Флаги имеют высший приоритет
	if *serverAddress != "" {
		cfg.ServerAddress = *serverAddress
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *databaseDSN != "" {
		cfg.DatabaseDSN = *databaseDSN
	}
	if *redisAddr != "" {
		cfg.RedisAddr = *redisAddr
	}

	// Определяем режим работы
	if cfg.DatabaseDSN != "" {
		cfg.Mode = "database"
	} else {
		cfg.Mode = "in-memory"
	}

	log.Printf("Инициализация конфигурации: ServerAddress=%s", cfg.ServerAddress)
	log.Printf("Инициализация конфигурации: BaseURL=%s", cfg.BaseURL)
	log.Printf("Инициализация конфигурации: Mode=%s", cfg.Mode)

	// Проверка корректности конфигурации
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Ошибка конфигурации: %v\n", err)
	}

	return cfg
}

// Validate проверяет корректность конфигурации
func (cfg *Config) Validate() error {
	if cfg.ServerAddress == "" {
		return fmt.Errorf("адрес сервера не может быть пустым")
	}
	if cfg.BaseURL == "" {
		return fmt.Errorf("базовый URL не может быть пустым")
	}
	if cfg.AuthSecret == "" {
		return fmt.Errorf("секрет для токенов не может быть пустым")
	}
	if cfg.TokenTTL <= 0 {
		return fmt.Errorf("TTL токена должен быть положительным")
	}
	return nil
}

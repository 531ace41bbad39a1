package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// APIConfig descreve o backend consumido pelo cliente.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	Token   string
}

type ServerConfig struct {
	Port     string
	BasePath string
}

type StoreConfig struct {
	Driver string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

type ListConfig struct {
	PageSize int
}

type ReferenceConfig struct {
	PageSize int
}

type LogConfig struct {
	Level   string
	Outputs []string
}

type Config struct {
	API       APIConfig
	Server    ServerConfig
	Store     StoreConfig
	Redis     RedisConfig
	JWT       JWTConfig
	List      ListConfig
	Reference ReferenceConfig
	Log       LogConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Aviso: arquivo .env não encontrado; usando variáveis de ambiente.")
	}
	return FromEnv()
}

// FromEnv monta a configuração sem tocar no .env.
func FromEnv() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3000/api"), "/"),
			Timeout: getDuration("API_TIMEOUT", 20*time.Second),
			Token:   getEnv("SOLICITACOES_TOKEN", ""),
		},
		Server: ServerConfig{
			Port:     getEnv("SERVER_PORT", "3000"),
			BasePath: getEnv("SERVER_BASE_PATH", "/api"),
		},
		Store: StoreConfig{
			Driver: storeDriver(getEnv("STORE_DRIVER", StoreMemory)),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0, 0),
			Prefix:   getEnv("REDIS_PREFIX", "solicitacoes"),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET_KEY", "dev-secret-troque-em-producao"),
			AccessTokenTTL: getDuration("JWT_ACCESS_TTL", 24*time.Hour),
		},
		List: ListConfig{
			PageSize: getInt("PAGE_SIZE", 9, 1),
		},
		Reference: ReferenceConfig{
			PageSize: getInt("REFERENCE_PAGE_SIZE", 10, 1),
		},
		Log: LogConfig{
			Level:   getEnv("LOG_LEVEL", "info"),
			Outputs: splitList(getEnv("LOG_OUTPUTS", "stderr")),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback, min int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n < min {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func storeDriver(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), StoreRedis) {
		return StoreRedis
	}
	return StoreMemory
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

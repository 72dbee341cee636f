package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log      LogConfig      `yaml:"log"`
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Filter   FilterConfig   `yaml:"filter"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Address string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type GRPCConfig struct {
	Address string `yaml:"address" env:"GRPC_ADDRESS" env-default:":9090"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type KafkaConfig struct {
	Brokers           []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	SearchEventsTopic string   `yaml:"search_events_topic" env:"KAFKA_SEARCH_EVENTS_TOPIC"`
	GroupID           string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"flightfilter-worker"`
	PublishRetries    int      `yaml:"publish_retries" env:"KAFKA_PUBLISH_RETRIES"`
}

// FilterConfig knobs treat 0 as a meaningful value (no cache, no parallel
// path), so their defaults come from Default rather than env-default.
type FilterConfig struct {
	FlightsCacheTTL   int `yaml:"flights_cache_ttl_seconds" env:"FLIGHTS_CACHE_TTL_SECONDS"`
	ParallelThreshold int `yaml:"parallel_threshold" env:"FILTER_PARALLEL_THRESHOLD"`
	ChunkSize         int `yaml:"chunk_size" env:"FILTER_CHUNK_SIZE"`
}

func (f FilterConfig) CacheTTL() time.Duration {
	return time.Duration(f.FlightsCacheTTL) * time.Second
}

type WorkerConfig struct {
	CacheRefreshMinutes int `yaml:"cache_refresh_minutes" env:"WORKER_CACHE_REFRESH_MINUTES"`
}

func (w WorkerConfig) RefreshInterval() time.Duration {
	return time.Duration(w.CacheRefreshMinutes) * time.Minute
}

// Default returns the values used for anything the file and the
// environment leave out.
func Default() Config {
	return Config{
		Kafka: KafkaConfig{PublishRetries: 3},
		Filter: FilterConfig{
			FlightsCacheTTL:   60,
			ParallelThreshold: 4096,
			ChunkSize:         1024,
		},
		Worker: WorkerConfig{CacheRefreshMinutes: 5},
	}
}

func (c Config) validate() error {
	if c.Worker.CacheRefreshMinutes <= 0 {
		return fmt.Errorf("worker.cache_refresh_minutes must be positive, got %d", c.Worker.CacheRefreshMinutes)
	}
	if c.Filter.FlightsCacheTTL < 0 {
		return fmt.Errorf("filter.flights_cache_ttl_seconds must not be negative, got %d", c.Filter.FlightsCacheTTL)
	}
	return nil
}

// LoadConfig starts from Default, reads the YAML file at path and then
// applies environment overrides. Explicit zeros in the file are kept.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

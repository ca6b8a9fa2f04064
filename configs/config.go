package configs

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"storefront/configs/loader"
)

type APIConfig struct {
	BaseURL string        `validate:"required"`
	CDNURL  string        `validate:"required"`
	Timeout time.Duration `validate:"required"`
}

type HttpConfig struct {
	Port         string        `validate:"required"`
	ReadTimeout  time.Duration `validate:"required"`
	WriteTimeout time.Duration `validate:"required"`
	IdleTimeout  time.Duration `validate:"required"`
}

// RedisConfig is optional: an empty Host disables the catalog cache.
type RedisConfig struct {
	Host         string
	DB           int
	User         string
	Password     string
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CatalogTTL   time.Duration
}

// KafkaConfig is optional: empty BootstrapServers disables the analytics
// exporter and the catalog-refresh consumer.
type KafkaConfig struct {
	BootstrapServers     string
	AnalyticsTopic       string
	CatalogTopic         string
	ConsumerGroup        string
	AutoCommitIntervalMs int
	AutoOffsetReset      string
	SessionTimeoutMs     int
	FlushTimeout         int
}

// DBConfig backs the shop API fixture's postgres catalog store; an empty
// Host makes the fixture fall back to its embedded catalog.
type DBConfig struct {
	User           string
	Password       string
	Name           string
	Host           string
	Port           string
	ConnectTimeout time.Duration
	Retries        int
}

type Config struct {
	API  APIConfig
	HTTP HttpConfig
	RD   RedisConfig
	KF   KafkaConfig
	DB   DBConfig
	Env  string
}

func MustLoad(loader loader.ConfigLoader) *Config {
	env := os.Getenv("APP_ENV")
	if env == "" {
		envFlag := flag.String("env", "dev", "Environment type")
		flag.Parse()
		env = *envFlag
	}

	const op = "configs.MustLoad"
	envs, err := loader.Load()
	if err != nil {
		log.Fatalf("%s: config load failed: %+v", op, err)
	}
	cfg := &Config{
		API: APIConfig{
			BaseURL: envs["SHOP_API_URL"],
			CDNURL:  envs["SHOP_CDN_URL"],
			Timeout: getEnvAsDuration(envs["SHOP_API_TIMEOUT"], 10*time.Second),
		},
		HTTP: HttpConfig{
			Port:         getEnvOr(envs["HTTP_PORT"], "8080"),
			ReadTimeout:  getEnvAsDuration(envs["HTTP_READ_TIMEOUT"], 10*time.Second),
			WriteTimeout: getEnvAsDuration(envs["HTTP_WRITE_TIMEOUT"], 10*time.Second),
			IdleTimeout:  getEnvAsDuration(envs["HTTP_IDLE_TIMEOUT"], 60*time.Second),
		},
		RD: RedisConfig{
			Host:         envs["REDIS_HOST"],
			DB:           getEnvAsInt(envs["REDIS_DB"], 0),
			User:         envs["REDIS_USER"],
			Password:     envs["REDIS_PASSWORD"],
			MaxRetries:   getEnvAsInt(envs["REDIS_MAX_RETRIES"], 3),
			DialTimeout:  getEnvAsDuration(envs["REDIS_DIAL_TIMEOUT"], 5*time.Second),
			ReadTimeout:  getEnvAsDuration(envs["REDIS_READ_TIMEOUT"], 5*time.Second),
			WriteTimeout: getEnvAsDuration(envs["REDIS_WRITE_TIMEOUT"], 5*time.Second),
			CatalogTTL:   getEnvAsDuration(envs["REDIS_CATALOG_TTL"], 5*time.Minute),
		},
		KF: KafkaConfig{
			BootstrapServers:     envs["KAFKA_BOOTSTRAP_SERVERS"],
			AnalyticsTopic:       getEnvOr(envs["KAFKA_ANALYTICS_TOPIC"], "storefront.events"),
			CatalogTopic:         getEnvOr(envs["KAFKA_CATALOG_TOPIC"], "storefront.catalog"),
			ConsumerGroup:        getEnvOr(envs["KAFKA_CONSUMER_GROUP"], "storefront"),
			AutoCommitIntervalMs: getEnvAsInt(envs["KAFKA_AUTO_COMMIT_INTERVAL_MS"], 1000),
			AutoOffsetReset:      getEnvOr(envs["KAFKA_AUTO_OFFSET_RESET"], "latest"),
			SessionTimeoutMs:     getEnvAsInt(envs["KAFKA_SESSION_TIMEOUT_MS"], 10000),
			FlushTimeout:         getEnvAsInt(envs["KAFKA_FLUSH_TIMEOUT"], 5000),
		},
		DB: DBConfig{
			User:           envs["POSTGRES_USER"],
			Password:       envs["POSTGRES_PASSWORD"],
			Name:           envs["POSTGRES_DB"],
			Host:           envs["POSTGRES_HOST"],
			Port:           envs["POSTGRES_PORT"],
			ConnectTimeout: getEnvAsDuration(envs["POSTGRES_CONNECT_TIMEOUT"], 5*time.Second),
			Retries:        getEnvAsInt(envs["POSTGRES_RETRIES"], 1),
		},
		Env: env,
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("%s: error validation config: %+v", op, err)
	}

	return cfg
}

func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c *KafkaConfig) Enabled() bool {
	return c.BootstrapServers != ""
}

func (c *DBConfig) Enabled() bool {
	return c.Host != ""
}

func validateConfig(cfg *Config) error {
	if cfg.API.BaseURL == "" || cfg.API.CDNURL == "" || cfg.API.Timeout <= 0 {
		return fmt.Errorf("incorrect shop api config fields")
	}

	if cfg.HTTP.Port == "" || cfg.HTTP.ReadTimeout <= 0 || cfg.HTTP.WriteTimeout <= 0 ||
		cfg.HTTP.IdleTimeout <= 0 {
		return fmt.Errorf("incorrect http config fields")
	}

	if cfg.RD.Enabled() {
		if cfg.RD.DialTimeout <= 0 || cfg.RD.ReadTimeout <= 0 || cfg.RD.WriteTimeout <= 0 ||
			cfg.RD.MaxRetries <= 0 || cfg.RD.CatalogTTL <= 0 {
			return fmt.Errorf("incorrect cache config fields")
		}
	}

	if cfg.KF.Enabled() {
		if cfg.KF.AnalyticsTopic == "" || cfg.KF.CatalogTopic == "" || cfg.KF.ConsumerGroup == "" ||
			cfg.KF.AutoCommitIntervalMs <= 0 || cfg.KF.SessionTimeoutMs <= 0 ||
			cfg.KF.AutoOffsetReset == "" || cfg.KF.FlushTimeout <= 0 {
			return fmt.Errorf("incorrect kafka config fields")
		}
	}

	if cfg.DB.Enabled() {
		if cfg.DB.User == "" || cfg.DB.Password == "" || cfg.DB.Name == "" ||
			cfg.DB.Port == "" || cfg.DB.Retries <= 0 || cfg.DB.ConnectTimeout <= 0 {
			return fmt.Errorf("incorrect database config fields")
		}
	}

	return nil
}

func getEnvOr(strValue, defaultValue string) string {
	if strValue == "" {
		return defaultValue
	}
	return strValue
}

func getEnvAsDuration(strValue string, defaultValue time.Duration) time.Duration {
	const op = "configs.getEnvAsDuration"
	if strValue == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("%s: forbidden value %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt(strValue string, defaultValue int) int {
	const op = "configs.getEnvAsInt"
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("%s: forbidden value %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}

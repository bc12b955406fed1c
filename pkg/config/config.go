package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageDriverRedis  = "redis"
	StorageDriverMemory = "memory"
)

type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Storage StorageConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BEANWAGON_APP_ENV" default:"dev"`
	Port         string `envconfig:"BEANWAGON_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BEANWAGON_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BEANWAGON_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"BEANWAGON_REDIS_URL"`
	Address      string        `envconfig:"BEANWAGON_REDIS_ADDR"`
	Password     string        `envconfig:"BEANWAGON_REDIS_PASSWORD"`
	DB           int           `envconfig:"BEANWAGON_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BEANWAGON_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BEANWAGON_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BEANWAGON_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BEANWAGON_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BEANWAGON_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// StorageConfig controls the record store: which key-value driver backs it
// and the namespace every key lives under.
type StorageConfig struct {
	Driver    string `envconfig:"BEANWAGON_STORAGE_DRIVER" default:"redis"`
	Namespace string `envconfig:"BEANWAGON_STORAGE_NAMESPACE" default:"bw"`
}

func (s StorageConfig) validate() error {
	switch s.Driver {
	case StorageDriverRedis, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", s.Driver)
	}
	if strings.TrimSpace(s.Namespace) == "" {
		return fmt.Errorf("storage namespace is required")
	}
	if strings.Contains(s.Namespace, ":") {
		return fmt.Errorf("storage namespace must not contain ':'")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	cfg  *Config
	once sync.Once
)

// Init loads config.yaml (optional), .env (optional) and then environment
// variables, later sources overriding earlier ones.
func Init() {
	once.Do(func() {
		c, err := Load("config.yaml")
		if err != nil {
			panic(err)
		}
		cfg = c
	})
}

// Get returns the loaded configuration, loading it on first use.
func Get() *Config {
	if cfg == nil {
		Init()
	}
	return cfg
}

// Set replaces the global configuration. Used by tests and tools.
func Set(c *Config) {
	once.Do(func() {})
	cfg = c
}

// Load reads the configuration file at path (missing file is fine) and
// applies environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")
	v.SetDefault("prefix", "api")
	v.SetDefault("app_url", "http://localhost:3000")
	v.SetDefault("mode", string(ModeDebug))
	v.SetDefault("mysql.host", "127.0.0.1")
	v.SetDefault("mysql.port", "3306")
	v.SetDefault("mysql.db_name", "recruiting")
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("jwt.access_expire", 7*24*3600)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.prefix", "resumes")
	v.SetDefault("email.base_url", "https://api.resend.com")
	v.SetDefault("email.from", "careers@company.com")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)
}

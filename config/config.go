package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	AllocatorSequence  = "sequence"
	AllocatorSnowflake = "snowflake"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Store     StoreConfig
	Snowflake SnowflakeConfig
	Cache     CacheConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host           string
	Port           int
	Name           string
	User           string
	Password       string
	MaxConnections int
	LogLevel       string
}

// StoreConfig selects the storage backend and the post id source. Fixture
// names a file of users, forums and threads loaded into the memory store.
type StoreConfig struct {
	Driver    string
	Allocator string
	Fixture   string
}

type SnowflakeConfig struct {
	Node int64
}

// CacheConfig sizes the thread resolution cache. A zero size disables it.
type CacheConfig struct {
	ThreadCacheMB  int
	ThreadCacheTTL time.Duration
}

type LoggingConfig struct {
	Level string
}

// Load reads config.yaml from configPath or the working directory when
// present and lets environment variables override every key.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "read config")
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := parse(v)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", 5000)

	v.SetDefault("pghost", "127.0.0.1")
	v.SetDefault("pgport", 5432)
	v.SetDefault("pgdatabase", "forum")
	v.SetDefault("pguser", "user")
	v.SetDefault("pgpassword", "password")
	v.SetDefault("pg_max_connections", 16)
	v.SetDefault("pg_log_level", "warn")

	v.SetDefault("store_driver", DriverPostgres)
	v.SetDefault("id_allocator", AllocatorSequence)
	v.SetDefault("store_fixture", "")
	v.SetDefault("snowflake_node", 1)

	v.SetDefault("thread_cache_mb", 32)
	v.SetDefault("thread_cache_ttl", 10*time.Minute)

	v.SetDefault("log_level", "info")
}

func parse(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Host: v.GetString("server_host"),
			Port: v.GetInt("server_port"),
		},
		Database: DatabaseConfig{
			Host:           v.GetString("pghost"),
			Port:           v.GetInt("pgport"),
			Name:           v.GetString("pgdatabase"),
			User:           v.GetString("pguser"),
			Password:       v.GetString("pgpassword"),
			MaxConnections: v.GetInt("pg_max_connections"),
			LogLevel:       v.GetString("pg_log_level"),
		},
		Store: StoreConfig{
			Driver:    strings.ToLower(v.GetString("store_driver")),
			Allocator: strings.ToLower(v.GetString("id_allocator")),
			Fixture:   v.GetString("store_fixture"),
		},
		Snowflake: SnowflakeConfig{
			Node: v.GetInt64("snowflake_node"),
		},
		Cache: CacheConfig{
			ThreadCacheMB:  v.GetInt("thread_cache_mb"),
			ThreadCacheTTL: v.GetDuration("thread_cache_ttl"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("log_level"),
		},
	}
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return errors.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch c.Store.Allocator {
	case AllocatorSequence:
		if c.Store.Driver == DriverMemory {
			return errors.New("sequence allocator needs the postgres store driver")
		}
	case AllocatorSnowflake:
	default:
		return errors.Errorf("unknown id allocator %q", c.Store.Allocator)
	}

	if c.Store.Fixture != "" && c.Store.Driver != DriverMemory {
		return errors.New("store_fixture needs the memory store driver")
	}

	if c.Database.MaxConnections < 2 && c.Store.Driver == DriverPostgres {
		return errors.New("pg_max_connections must be at least 2")
	}
	if c.Cache.ThreadCacheMB < 0 {
		return errors.New("thread_cache_mb must not be negative")
	}
	return nil
}

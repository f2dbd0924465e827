package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix maps env vars like DATATREE_STORE_DRIVER onto config keys.
const EnvPrefix = "DATATREE"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config is the runtime configuration of the CLI and server.
type Config struct {
	LogLevel          string       `mapstructure:"log_level"`
	Registry          string       `mapstructure:"registry"`
	Strict            bool         `mapstructure:"strict"`
	AllowUnknownTypes bool         `mapstructure:"allow_unknown_types"`
	RunDispatchers    bool         `mapstructure:"run_dispatchers"`
	Server            ServerConfig `mapstructure:"server"`
	Store             StoreConfig  `mapstructure:"store"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type StoreConfig struct {
	Driver string      `mapstructure:"driver"`
	Redis  RedisConfig `mapstructure:"redis"`

	// MaskKeys are regular expressions; matching keys are masked before a snapshot is saved.
	MaskKeys []string `mapstructure:"mask_keys"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// flagKeys binds CLI flag names to config keys.
var flagKeys = map[string]string{
	"log-level":           "log_level",
	"registry":            "registry",
	"strict":              "strict",
	"allow-unknown-types": "allow_unknown_types",
	"run-dispatchers":     "run_dispatchers",
	"addr":                "server.addr",
	"store":               "store.driver",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("registry", "")
	v.SetDefault("strict", false)
	v.SetDefault("allow_unknown_types", false)
	v.SetDefault("run_dispatchers", false)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.mask_keys", []string{})
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "datatree:")
	v.SetDefault("store.redis.ttl", time.Duration(0))
}

// Load resolves configuration from defaults, an optional file, DATATREE_*
// env vars and finally flags that were explicitly set.
// When path is empty, datatree.yaml is looked up in the working directory and
// a missing file is not an error.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("datatree")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type check.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverRedis:
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
	if c.Store.Redis.TTL < 0 {
		return fmt.Errorf("store.redis.ttl must not be negative")
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// cliConfig is the CLI's own configuration, loaded the way the rest of the
// pack loads service config: viper reads an optional file, environment
// variables override it, and the result is unmarshaled into a typed struct.
type cliConfig struct {
	BatchSize int           `mapstructure:"batch_size"`
	Debug     int           `mapstructure:"debug"`
	Verbose   int           `mapstructure:"verbose"`
	Redis     redisConfig   `mapstructure:"redis"`
	Metrics   metricsConfig `mapstructure:"metrics"`
}

type redisConfig struct {
	Addr    string `mapstructure:"addr"`
	Enabled bool   `mapstructure:"enabled"`
}

type metricsConfig struct {
	Addr    string `mapstructure:"addr"`
	Enabled bool   `mapstructure:"enabled"`
}

func loadConfig(configPath string) (*cliConfig, error) {
	v := viper.New()

	v.SetDefault("batch_size", 200)
	v.SetDefault("debug", 0)
	v.SetDefault("verbose", 0)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("metrics.addr", ":9090")
	v.SetDefault("metrics.enabled", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("piper")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/piper")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("PIPER")
	v.AutomaticEnv()

	var cfg cliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

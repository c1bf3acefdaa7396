// Package config loads the engine's iteration-cap policy knobs and the
// ambient logging/metrics settings from YAML and environment variables
// using viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/lattice-markets/matchcore/internal/matching"
)

// Config is the top-level application configuration for cmd/matchcore.
type Config struct {
	LogLevel     string
	MetricsAddr  string
	Engine       matching.EngineConfig
	WorkloadSyms int
	WorkloadQty  int
}

// Load reads configuration from configPath if set, otherwise searches
// "./config.yaml" and "./configs/config.yaml", falling back to defaults
// when no file is found. Environment variables prefixed MATCHCORE_
// override file values (e.g. MATCHCORE_LOGLEVEL).
func Load(configPath string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("matchcore")
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{
		LogLevel:    v.GetString("loglevel"),
		MetricsAddr: v.GetString("metricsaddr"),
		Engine: matching.EngineConfig{
			PrimaryRetries:  v.GetInt("engine.primaryretries"),
			ScanLimit:       v.GetInt("engine.scanlimit"),
			FallbackRetries: v.GetInt("engine.fallbackretries"),
			MatchIterations: v.GetInt("engine.matchiterations"),
		},
		WorkloadSyms: v.GetInt("workload.symbols"),
		WorkloadQty:  v.GetInt("workload.orders"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := matching.DefaultEngineConfig()

	v.SetDefault("loglevel", "info")
	v.SetDefault("metricsaddr", ":9090")
	v.SetDefault("engine.primaryretries", def.PrimaryRetries)
	v.SetDefault("engine.scanlimit", def.ScanLimit)
	v.SetDefault("engine.fallbackretries", def.FallbackRetries)
	v.SetDefault("engine.matchiterations", def.MatchIterations)
	v.SetDefault("workload.symbols", 100)
	v.SetDefault("workload.orders", 1_000_000)
}

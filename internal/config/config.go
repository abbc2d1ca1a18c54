package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config collects every runtime knob of the planner. Values come from the
// environment first; an optional TOML file (FINPLAN_CONFIG, or
// ./finplan.toml when present) overrides the defaults before the
// environment is applied.
type Config struct {
	// HTTP server
	Port            string        `toml:"port"`
	ShutdownTimeout time.Duration `toml:"-"`

	// Planning defaults
	DefaultHorizonMonths int     `toml:"default_horizon_months"`
	EmergencyFundMonths  int     `toml:"emergency_fund_months"`
	LowSavingsRate       float64 `toml:"low_savings_rate"`
	HealthySavingsRate   float64 `toml:"healthy_savings_rate"`

	// Demo data
	DemoSeed uint64 `toml:"demo_seed"`
}

const defaultConfigFile = "finplan.toml"

// Load builds the configuration: defaults, then TOML file (if any), then
// environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 "8081",
		ShutdownTimeout:      30 * time.Second,
		DefaultHorizonMonths: 6,
		EmergencyFundMonths:  3,
		LowSavingsRate:       0.10,
		HealthySavingsRate:   0.20,
		DemoSeed:             11,
	}

	path := os.Getenv("FINPLAN_CONFIG")
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DefaultHorizonMonths = getEnvInt("FINPLAN_DEFAULT_HORIZON", cfg.DefaultHorizonMonths)
	cfg.EmergencyFundMonths = getEnvInt("FINPLAN_EMERGENCY_FUND_MONTHS", cfg.EmergencyFundMonths)
	cfg.LowSavingsRate = getEnvFloat("FINPLAN_LOW_SAVINGS_RATE", cfg.LowSavingsRate)
	cfg.HealthySavingsRate = getEnvFloat("FINPLAN_HEALTHY_SAVINGS_RATE", cfg.HealthySavingsRate)
	cfg.DemoSeed = getEnvUint("FINPLAN_DEMO_SEED", cfg.DemoSeed)

	return cfg, nil
}

// Validate checks the configuration and returns all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DefaultHorizonMonths < 1 || c.DefaultHorizonMonths > 120 {
		errs = append(errs, fmt.Sprintf("invalid default horizon %d: must be between 1 and 120 months", c.DefaultHorizonMonths))
	}

	if c.EmergencyFundMonths < 0 || c.EmergencyFundMonths > 24 {
		errs = append(errs, fmt.Sprintf("invalid emergency fund months %d: must be between 0 and 24", c.EmergencyFundMonths))
	}

	if c.LowSavingsRate < 0 || c.LowSavingsRate > 1 {
		errs = append(errs, fmt.Sprintf("invalid low savings rate %g: must be between 0 and 1", c.LowSavingsRate))
	}
	if c.HealthySavingsRate < 0 || c.HealthySavingsRate > 1 {
		errs = append(errs, fmt.Sprintf("invalid healthy savings rate %g: must be between 0 and 1", c.HealthySavingsRate))
	}
	if c.LowSavingsRate > c.HealthySavingsRate {
		errs = append(errs, fmt.Sprintf("low savings rate %g must not exceed healthy savings rate %g", c.LowSavingsRate, c.HealthySavingsRate))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvUint(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if u, err := strconv.ParseUint(value, 10, 64); err == nil {
			return u
		}
	}
	return defaultValue
}

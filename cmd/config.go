package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/etnz/inventory"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration file, and passed to extensions.
const (
	EnvStore    = "INV_STORE"
	EnvCurrency = "INV_CURRENCY"
	EnvLowStock = "INV_LOW_STOCK"
	EnvVerbose  = "INV_VERBOSE"
	EnvConfig   = "INV_CONFIG"
	// EnvTestingNow fixes the clock to an RFC 3339 time, for documentation tests.
	EnvTestingNow = "INV_TESTING_NOW"
)

// DefaultConfigFile is read when present, in the current directory.
const DefaultConfigFile = ".inventory.yaml"

// Config is the configuration of the application.
type Config struct {
	Store    string `yaml:"store"`
	Currency string `yaml:"currency"`
	LowStock int    `yaml:"low-stock"`
	Verbose  bool   `yaml:"verbose"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Store:    ".inventory",
		Currency: inventory.DefaultCurrency,
		LowStock: inventory.DefaultLowStockThreshold,
	}
}

// LoadConfig resolves the configuration. Flags explicitly set in flags take
// precedence over the environment, which takes precedence over the YAML
// file, which takes precedence over the defaults.
func LoadConfig(flags *flag.FlagSet, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	path, explicit := DefaultConfigFile, false
	if v := getenv(EnvConfig); v != "" {
		path, explicit = v, true
	}
	if f := setFlag(flags, "config"); f != nil {
		path, explicit = f.Value.String(), true
	}
	if err := readConfigFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	if v := getenv(EnvStore); v != "" {
		cfg.Store = v
	}
	if v := getenv(EnvCurrency); v != "" {
		cfg.Currency = v
	}
	if v := getenv(EnvLowStock); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvLowStock, v, err)
		}
		cfg.LowStock = n
	}
	if v := getenv(EnvVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvVerbose, v, err)
		}
		cfg.Verbose = b
	}

	var err error
	flags.Visit(func(f *flag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "store":
			cfg.Store = v
		case "currency":
			cfg.Currency = v
		case "low-stock":
			cfg.LowStock, err = strconv.Atoi(v)
		case "v":
			cfg.Verbose = v == "true"
		}
	})
	if err != nil {
		return cfg, fmt.Errorf("invalid -low-stock: %w", err)
	}
	if cfg.LowStock < 0 {
		return cfg, fmt.Errorf("low stock threshold %d is negative", cfg.LowStock)
	}
	return cfg, nil
}

func readConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("could not parse config file %q: %w", path, err)
	}
	return nil
}

// setFlag returns the flag name if it was set on the command line.
func setFlag(flags *flag.FlagSet, name string) *flag.Flag {
	var found *flag.Flag
	flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = f
		}
	})
	return found
}

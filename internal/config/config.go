// Package config handles resolving configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/justrob12/seclab/internal/sec"
)

// EnvPrefix prefixes environment variable overrides, e.g. SECLAB_LOG_LEVEL or
// SECLAB_HASH_COST.
const EnvPrefix = "SECLAB"

// Config is the application configuration.
type Config struct {
	// LogLevel is one of DEBUG, INFO, WARN, ERROR (optionally with an offset,
	// e.g. INFO+2).
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// WebAddress is the listen address of the web app. Empty disables it.
	WebAddress string `mapstructure:"web_address" yaml:"web_address"`
	// DBFilepath is the location of the SQLite user database.
	DBFilepath string `mapstructure:"db_filepath" yaml:"db_filepath"`
	// DevMode enables request logging and source locations in logs.
	DevMode bool `mapstructure:"dev_mode" yaml:"dev_mode"`
	// Hash configures credential hashing.
	Hash Hash `mapstructure:"hash" yaml:"hash"`
}

// Hash configures credential hashing.
type Hash struct {
	// Algorithm is "bcrypt" or "argon2id".
	Algorithm string `mapstructure:"algorithm" yaml:"algorithm"`
	// Cost is the bcrypt work factor.
	Cost int `mapstructure:"cost" yaml:"cost"`
}

// DefaultPath is where the configuration file is looked up by default.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "seclab.yaml")
}

// Default returns a version of the config with all default values populated.
func Default() *Config {
	return &Config{
		LogLevel:   slog.LevelInfo.String(),
		WebAddress: "localhost:9999",
		DBFilepath: filepath.Join(xdg.DataHome, "seclab", "db.sqlite"),
		DevMode:    false,
		Hash: Hash{
			Algorithm: string(sec.Bcrypt),
			Cost:      sec.DefaultCost,
		},
	}
}

// Load loads a YAML configuration file from a path, merges it with defaults
// and environment overrides, and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // allow the config file to be loaded from anywhere
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err = v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file at %s: %w", path, err)
	}
	return decode(v)
}

// LoadOrDefault behaves like [Load], except that a missing file yields the
// defaults (with environment overrides applied).
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	return decode(newViper())
}

// Write serializes cfg as YAML to path, creating parent directories. An
// existing file is not overwritten.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	const userOnlyDirPerms = 0o700
	if err = os.MkdirAll(filepath.Dir(path), userOnlyDirPerms); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) //nolint:gosec // user-chosen path
	if err != nil {
		return fmt.Errorf("failed to create config file at %s: %w", path, err)
	}
	_, err = file.Write(data)
	return errors.Join(err, file.Close())
}

// Validate checks cfg for completeness and consistency.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.WebAddress != "" {
		if _, _, err := net.SplitHostPort(c.WebAddress); err != nil {
			errs = append(errs, fmt.Errorf("web_address: %w", err))
		}
	}
	if c.DBFilepath == "" {
		errs = append(errs, errors.New("db_filepath: must be set"))
	}
	if _, err := c.Hasher(); err != nil {
		errs = append(errs, fmt.Errorf("hash: %w", err))
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(c.LogLevel))
	return lvl, err
}

// Hasher builds the credential hasher described by the Hash section.
func (c *Config) Hasher() (sec.Hasher, error) {
	algo := sec.Algorithm(strings.ToLower(c.Hash.Algorithm))
	if algo == sec.Bcrypt && (c.Hash.Cost < bcrypt.MinCost || c.Hash.Cost > sec.MaxCost) {
		return sec.Hasher{}, fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, sec.MaxCost)
	}
	return sec.NewHasher(algo, c.Hash.Cost)
}

// LogValue satisfies [slog.LogValuer].
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("log_level", c.LogLevel),
		slog.String("web_address", c.WebAddress),
		slog.String("db_filepath", c.DBFilepath),
		slog.Bool("dev_mode", c.DevMode),
		slog.String("hash_algorithm", c.Hash.Algorithm),
		slog.Int("hash_cost", c.Hash.Cost),
	)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("web_address", def.WebAddress)
	v.SetDefault("db_filepath", def.DBFilepath)
	v.SetDefault("dev_mode", def.DevMode)
	v.SetDefault("hash.algorithm", def.Hash.Algorithm)
	v.SetDefault("hash.cost", def.Hash.Cost)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

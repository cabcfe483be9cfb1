package config

import (
	"bytes"
	_ "embed"
	"time"

	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaults []byte

// ---- Root ----

type Config struct {
	LogLevel   string           `mapstructure:"log_level"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	SQLite     DatabaseConfig   `mapstructure:"sqlite"`
	Validation ValidationConfig `mapstructure:"validation"`
	Mail       MailConfig       `mapstructure:"mail"`
}

// ---- Leaf structs ----

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idletime"`
	PingTimeout     time.Duration `mapstructure:"ping_timeout"`
}

type ValidationConfig struct {
	// DefaultRegion is the two-letter region used to parse phone numbers
	// when the caller does not supply one ("US", "AR", ...).
	DefaultRegion string `mapstructure:"default_region"`
	// CheckMX controls email deliverability checking against the domain's
	// MX records. Disable for offline environments.
	CheckMX bool `mapstructure:"check_mx"`
}

type MailConfig struct {
	SendTimeout time.Duration `mapstructure:"send_timeout"`
}

// Load reads embedded defaults, merges user YAML (if provided), and applies env overrides (GESTOR_*).
func Load(path string) (Config, error) {
	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		_ = v.MergeInConfig()
	}

	// env override (GESTOR_*)
	v.SetEnvPrefix("GESTOR")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

package mail

import (
	"context"
	"os"
	"strconv"

	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/Octaviomaldonado/GestorClientes/internal/repository"
)

const (
	DefaultPort = 587
	DefaultFrom = "no-reply@example.com"
)

// Config is the resolved SMTP delivery configuration.
type Config struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"-"`
	From     string `json:"from"`
}

// Complete reports whether the config is sufficient to attempt a send.
func (c Config) Complete() bool {
	return c.Host != "" && c.User != "" && c.Password != ""
}

// Resolver composes the delivery configuration layer by layer: stored
// settings first, then environment variables, then hardcoded defaults.
type Resolver struct {
	settings  repository.SettingsRepository
	lookupEnv func(string) string
}

// NewResolver builds a Resolver over the settings repository. lookupEnv may
// be nil, in which case os.Getenv is used.
func NewResolver(settings repository.SettingsRepository, lookupEnv func(string) string) *Resolver {
	if lookupEnv == nil {
		lookupEnv = os.Getenv
	}
	return &Resolver{settings: settings, lookupEnv: lookupEnv}
}

// Resolve reads the settings table once and fills each field from the first
// layer that has it.
func (r *Resolver) Resolve(ctx context.Context) (Config, error) {
	stored, err := r.settings.All(ctx)
	if err != nil {
		return Config{}, err
	}

	pick := func(key string) string {
		if v := stored[key]; v != "" {
			return v
		}
		return r.lookupEnv(key)
	}

	cfg := Config{
		Host:     pick(model.SettingSMTPHost),
		User:     pick(model.SettingSMTPUser),
		Password: pick(model.SettingSMTPPass),
		From:     pick(model.SettingSMTPFrom),
		Port:     DefaultPort,
	}
	if raw := pick(model.SettingSMTPPort); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil {
			cfg.Port = p
		}
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	if cfg.From == "" {
		cfg.From = DefaultFrom
	}
	return cfg, nil
}

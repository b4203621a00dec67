package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server struct {
		Host                 string
		JWTSecret            string `toml:"jwt_secret"`
		LogFile              string `toml:"log_file"`
		ReadTimeout          time.Duration
		WriteTimeout         time.Duration
		ReadHeaderTimeout    time.Duration
		StrReadTimeout       string `toml:"read_timeout"`
		StrWriteTimeout      string `toml:"write_timeout"`
		StrReadHeaderTimeout string `toml:"read_header_timeout"`
	}
	Upstream struct {
		BaseURL    string `toml:"base_url"`
		Timeout    time.Duration
		StrTimeout string `toml:"timeout"`
	}
	Sessions struct {
		Backend    string `toml:"backend"`
		SessionTTL time.Duration
		StrTTL     string `toml:"ttl"`
	}
	Redis struct {
		RedisAddr     string `toml:"redis_addr"`
		RedisPassword string `toml:"redis_password"`
		RedisDB       int    `toml:"redis_db"`
	}
}

func GetConfig(path string, logger *slog.Logger) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Error read config file", slog.String("path", path), slog.String("error", err.Error()))
		return nil, err
	}

	var cfg *Config

	if _, tomlErr := toml.Decode(string(data), &cfg); tomlErr != nil {
		logger.Error("Error decode config file", slog.String("error", tomlErr.Error()))
		return nil, tomlErr
	}

	if cfg.Server.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}

	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("upstream base_url is required")
	}

	durations := []struct {
		dst      *time.Duration
		src      string
		name     string
		fallback time.Duration
	}{
		{&cfg.Server.ReadTimeout, cfg.Server.StrReadTimeout, "read_timeout", 15 * time.Second},
		{&cfg.Server.WriteTimeout, cfg.Server.StrWriteTimeout, "write_timeout", 30 * time.Second},
		{&cfg.Server.ReadHeaderTimeout, cfg.Server.StrReadHeaderTimeout, "read_header_timeout", 5 * time.Second},
		{&cfg.Upstream.Timeout, cfg.Upstream.StrTimeout, "upstream timeout", 15 * time.Second},
		{&cfg.Sessions.SessionTTL, cfg.Sessions.StrTTL, "session ttl", 12 * time.Hour},
	}

	for _, d := range durations {
		if d.src == "" {
			*d.dst = d.fallback
			continue
		}

		parsed, parseErr := time.ParseDuration(d.src)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.name, parseErr)
		}
		*d.dst = parsed
	}

	if cfg.Sessions.Backend == "" {
		cfg.Sessions.Backend = "memory"
	}

	if cfg.Sessions.Backend != "memory" && cfg.Sessions.Backend != "redis" {
		return nil, fmt.Errorf("unknown sessions backend %q", cfg.Sessions.Backend)
	}

	logger.Info("Config is loaded")
	return cfg, nil
}

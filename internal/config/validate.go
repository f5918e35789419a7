package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))

	switch c.Storage.Backend {
	case BackendPostgres:
		if err := c.Database.validate(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	case BackendSupabase:
		if err := c.Supabase.validate(); err != nil {
			return fmt.Errorf("supabase: %w", err)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("storage.backend must be one of %s, %s, %s (got %q)",
			BackendPostgres, BackendSupabase, BackendMemory, c.Storage.Backend)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	if c.RateLimit.WritesPerMinute < 0 {
		return fmt.Errorf("rate_limit.writes_per_minute must be >= 0 (got %d)", c.RateLimit.WritesPerMinute)
	}

	return nil
}

func (d *DatabaseConfig) validate() error {
	if d.DSN == "" {
		return errors.New("dsn is required for the postgres backend")
	}
	if d.MaxConns <= 0 {
		return fmt.Errorf("max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns must be in 0..max_conns (got %d)", d.MinConns)
	}
	return nil
}

func (s *SupabaseConfig) validate() error {
	if s.URL == "" {
		return errors.New("url is required for the supabase backend")
	}
	u, err := url.Parse(s.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("url must be absolute (got %q)", s.URL)
	}
	if s.ServiceRoleKey == "" {
		return errors.New("service_role_key is required for the supabase backend")
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", s.Timeout)
	}
	return nil
}

package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"

	"github.com/mark-gargan/adguard-rewrite-sync/internal/validation"
)

// Config holds all configuration for the application. It is collected once
// at startup and passed explicitly to each component.
type Config struct {
	AdGuard  AdGuardConfig
	Rewrites RewriteConfig
	Verify   VerifyConfig
}

// AdGuardConfig holds connection settings for the AdGuard Home API.
type AdGuardConfig struct {
	Host     string        `env:"ADGUARD_HOST"`
	Port     int           `env:"ADGUARD_PORT" envDefault:"80"`
	UseHTTPS bool          `env:"ADGUARD_USE_HTTPS" envDefault:"false"`
	Username string        `env:"ADGUARD_USERNAME"`
	Password string        `env:"ADGUARD_PASSWORD"`
	Timeout  time.Duration `env:"ADGUARD_TIMEOUT" envDefault:"10s"`
	FileShim string        `env:"ADGUARD_FILE_SHIM"` // Path to file for testing shim (disables real API)
}

// RewriteConfig holds the hostnames whose rewrite rules are managed.
type RewriteConfig struct {
	// Hostname is the legacy single-hostname form.
	Hostname string `env:"HOSTNAME"`
	// Hostnames is the comma-separated form. It takes precedence over
	// Hostname when both are set.
	Hostnames string `env:"HOSTNAMES"`
}

// VerifyConfig holds settings for the optional post-apply DNS check.
type VerifyConfig struct {
	Enabled bool `env:"VERIFY_DNS" envDefault:"false"`
	Port    int  `env:"VERIFY_DNS_PORT" envDefault:"53"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(&cfg.AdGuard); err != nil {
		return nil, fmt.Errorf("parsing adguard config: %w", err)
	}
	if err := env.Parse(&cfg.Rewrites); err != nil {
		return nil, fmt.Errorf("parsing rewrite config: %w", err)
	}
	if err := env.Parse(&cfg.Verify); err != nil {
		return nil, fmt.Errorf("parsing verify config: %w", err)
	}

	return cfg, nil
}

// BaseURL returns the appliance API base URL built from host, port, and the
// transport security flag.
func (c *AdGuardConfig) BaseURL() string {
	scheme := "http"
	if c.UseHTTPS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

// DNSAddr returns the address of the appliance's DNS listener used by the
// post-apply verification check.
func (c *Config) DNSAddr() string {
	return net.JoinHostPort(c.AdGuard.Host, strconv.Itoa(c.Verify.Port))
}

// HostnameList returns the normalized desired hostname set: split on
// commas, trimmed, empties dropped, duplicates removed with first-seen
// order preserved.
func (c *RewriteConfig) HostnameList() []string {
	raw := c.Hostnames
	if strings.TrimSpace(raw) == "" {
		raw = c.Hostname
	}

	var out []string
	seen := make(map[string]struct{})
	for _, h := range strings.Split(raw, ",") {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	// The file shim needs no live appliance, so connection settings are
	// only required without it.
	if c.AdGuard.FileShim == "" {
		if c.AdGuard.Host == "" {
			return fmt.Errorf("ADGUARD_HOST is required (or set ADGUARD_FILE_SHIM for testing)")
		}
		if c.AdGuard.Username == "" {
			return fmt.Errorf("ADGUARD_USERNAME is required")
		}
		if c.AdGuard.Password == "" {
			return fmt.Errorf("ADGUARD_PASSWORD is required")
		}
	}

	hostnames := c.Rewrites.HostnameList()
	if len(hostnames) == 0 {
		return fmt.Errorf("no hostnames configured: set HOSTNAMES (or the legacy HOSTNAME)")
	}
	for _, h := range hostnames {
		if err := validation.ValidateHostname(h); err != nil {
			return fmt.Errorf("invalid hostname %q: %w", h, err)
		}
	}

	if c.Verify.Enabled && (c.Verify.Port < 1 || c.Verify.Port > 65535) {
		return fmt.Errorf("VERIFY_DNS_PORT must be between 1 and 65535")
	}

	return nil
}

// UseFileShim returns true if the file shim should be used instead of the
// real API.
func (c *Config) UseFileShim() bool {
	return c.AdGuard.FileShim != ""
}

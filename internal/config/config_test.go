package config_test

import (
	"testing"

	"github.com/mark-gargan/adguard-rewrite-sync/internal/config"
)

// setBaseEnv provides a minimal valid environment. Individual tests
// override the keys they exercise.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADGUARD_HOST", "adguard.lan")
	t.Setenv("ADGUARD_PORT", "")
	t.Setenv("ADGUARD_USE_HTTPS", "")
	t.Setenv("ADGUARD_USERNAME", "admin")
	t.Setenv("ADGUARD_PASSWORD", "secret")
	t.Setenv("ADGUARD_TIMEOUT", "")
	t.Setenv("ADGUARD_FILE_SHIM", "")
	t.Setenv("HOSTNAME", "")
	t.Setenv("HOSTNAMES", "")
	t.Setenv("VERIFY_DNS", "")
	t.Setenv("VERIFY_DNS_PORT", "")
}

func TestHostnameList_PluralWinsOverLegacy(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("HOSTNAME", "a.local")
	t.Setenv("HOSTNAMES", "b.local,c.local")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := cfg.Rewrites.HostnameList()
	want := []string{"b.local", "c.local"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected hostname %q at %d, got %q", want[i], i, got[i])
		}
	}
}

func TestHostnameList_LegacyFallback(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("HOSTNAME", "a.local")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := cfg.Rewrites.HostnameList()
	if len(got) != 1 || got[0] != "a.local" {
		t.Errorf("Expected [a.local], got %v", got)
	}
}

func TestHostnameList_TrimsAndDedupes(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("HOSTNAMES", " a.local , b.local,,a.local, ")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := cfg.Rewrites.HostnameList()
	want := []string{"a.local", "b.local"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected hostname %q at %d, got %q", want[i], i, got[i])
		}
	}
}

func TestBaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("HOSTNAMES", "a.local")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := cfg.AdGuard.BaseURL(); got != "http://adguard.lan:80" {
		t.Errorf("Expected default base URL http://adguard.lan:80, got %q", got)
	}

	t.Setenv("ADGUARD_PORT", "3000")
	t.Setenv("ADGUARD_USE_HTTPS", "true")
	cfg, err = config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := cfg.AdGuard.BaseURL(); got != "https://adguard.lan:3000" {
		t.Errorf("Expected https://adguard.lan:3000, got %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T)
		wantErr bool
	}{
		{"valid", func(t *testing.T) {
			t.Setenv("HOSTNAMES", "a.local")
		}, false},
		{"missing host", func(t *testing.T) {
			t.Setenv("ADGUARD_HOST", "")
			t.Setenv("HOSTNAMES", "a.local")
		}, true},
		{"missing credentials", func(t *testing.T) {
			t.Setenv("ADGUARD_PASSWORD", "")
			t.Setenv("HOSTNAMES", "a.local")
		}, true},
		{"no hostnames", func(t *testing.T) {}, true},
		{"invalid hostname", func(t *testing.T) {
			t.Setenv("HOSTNAMES", "bad_host.local")
		}, true},
		{"file shim without credentials", func(t *testing.T) {
			t.Setenv("ADGUARD_HOST", "")
			t.Setenv("ADGUARD_USERNAME", "")
			t.Setenv("ADGUARD_PASSWORD", "")
			t.Setenv("ADGUARD_FILE_SHIM", "rewrites.json")
			t.Setenv("HOSTNAMES", "a.local")
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			tt.mutate(t)

			cfg, err := config.Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			err = cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

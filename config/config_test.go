package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Fetch.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.Fetch.MaxRetries)
	}
	if cfg.Extract.AcceptanceThreshold != 0.5 {
		t.Errorf("AcceptanceThreshold = %v, want 0.5", cfg.Extract.AcceptanceThreshold)
	}
	if cfg.Batch.Concurrency != 10 {
		t.Errorf("Concurrency = %d, want 10", cfg.Batch.Concurrency)
	}
	if cfg.Auth.Enabled {
		t.Error("auth must default to disabled")
	}
	if len(cfg.Extract.LegalSuffixes) == 0 || len(cfg.Extract.Denylist) == 0 {
		t.Error("suffix and denylist defaults must not be empty")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ORGNAME_PORT", "9090")
	t.Setenv("ORGNAME_FETCH_TIMEOUT", "3s")
	t.Setenv("ORGNAME_THRESHOLD", "0.7")
	t.Setenv("ORGNAME_CONCURRENCY", "25")
	t.Setenv("ORGNAME_AUTH_ENABLED", "true")
	t.Setenv("ORGNAME_API_KEYS", "key-a, key-b ,,key-c")
	t.Setenv("ORGNAME_LOG_FORMAT", "text")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Fetch.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Fetch.Timeout)
	}
	if cfg.Extract.AcceptanceThreshold != 0.7 {
		t.Errorf("AcceptanceThreshold = %v, want 0.7", cfg.Extract.AcceptanceThreshold)
	}
	if cfg.Batch.Concurrency != 25 {
		t.Errorf("Concurrency = %d, want 25", cfg.Batch.Concurrency)
	}
	if !cfg.Auth.Enabled {
		t.Error("Auth.Enabled not overridden")
	}
	want := []string{"key-a", "key-b", "key-c"}
	if len(cfg.Auth.APIKeys) != len(want) {
		t.Fatalf("APIKeys = %v, want %v", cfg.Auth.APIKeys, want)
	}
	for i, k := range want {
		if cfg.Auth.APIKeys[i] != k {
			t.Errorf("APIKeys[%d] = %q, want %q", i, cfg.Auth.APIKeys[i], k)
		}
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
}

func TestLoad_MalformedEnvFallsBack(t *testing.T) {
	t.Setenv("ORGNAME_PORT", "not-a-number")
	t.Setenv("ORGNAME_FETCH_TIMEOUT", "soon")
	t.Setenv("ORGNAME_THRESHOLD", "high")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Fetch.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want default 15s", cfg.Fetch.Timeout)
	}
	if cfg.Extract.AcceptanceThreshold != 0.5 {
		t.Errorf("AcceptanceThreshold = %v, want default 0.5", cfg.Extract.AcceptanceThreshold)
	}
}

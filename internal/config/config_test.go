package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("default port: got %q", cfg.Server.Port)
	}
	if cfg.Server.AllowOrigins != "http://localhost:5173" {
		t.Errorf("default origins: got %q", cfg.Server.AllowOrigins)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("default redis addr: got %q", cfg.Redis.Addr)
	}
	if cfg.Engine.URL != "" || cfg.Engine.APIKey != "" {
		t.Errorf("engine should be unconfigured by default: %+v", cfg.Engine)
	}
	if cfg.Engine.PollInterval != 2*time.Second {
		t.Errorf("default poll interval: got %s", cfg.Engine.PollInterval)
	}
	if cfg.Stream.StopWait != 5*time.Second {
		t.Errorf("default stop wait: got %s", cfg.Stream.StopWait)
	}
	if cfg.RateLimit.StartPerMin != 10 {
		t.Errorf("default start rate limit: got %d", cfg.RateLimit.StartPerMin)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("ENGINE_URL", "http://engine.internal:8080")
	t.Setenv("ENGINE_API_KEY", "sekrit")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != "9100" {
		t.Errorf("env port override ignored: got %q", cfg.Server.Port)
	}
	if cfg.Engine.URL != "http://engine.internal:8080" || cfg.Engine.APIKey != "sekrit" {
		t.Errorf("engine env overrides ignored: %+v", cfg.Engine)
	}
}

func TestReadSecretFromFile(t *testing.T) {
	secretPath := filepath.Join(t.TempDir(), "engine_key")
	if err := os.WriteFile(secretPath, []byte("file-secret\n"), 0o600); err != nil {
		t.Fatalf("failed to write secret file: %v", err)
	}

	t.Setenv("ENGINE_API_KEY", "")
	os.Unsetenv("ENGINE_API_KEY")
	t.Setenv("ENGINE_API_KEY_FILE", secretPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Engine.APIKey != "file-secret" {
		t.Errorf("secret file not read: got %q", cfg.Engine.APIKey)
	}
}

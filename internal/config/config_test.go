package config

import "testing"

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/outbreak")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.TokenTTLMinutes != 60 {
		t.Errorf("expected default token ttl 60, got %d", cfg.TokenTTLMinutes)
	}
	if !cfg.IsDev() {
		t.Error("expected default ENV to be development")
	}
}

func TestValidateRequiresSecretOutsideDev(t *testing.T) {
	cfg := &Config{Env: "production", TokenTTLMinutes: 60}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing JWT_SECRET in production")
	}

	cfg.JWTSecret = "super-secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateDevAllowsMissingSecret(t *testing.T) {
	cfg := &Config{Env: "development", TokenTTLMinutes: 60}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

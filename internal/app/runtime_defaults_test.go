package app

import (
	"strings"
	"testing"
)

func TestApplyRuntimeDefaultsGeneratesMissingSecret(t *testing.T) {
	cfg := &Config{}

	generated, err := ApplyRuntimeDefaults(cfg)
	if err != nil {
		t.Fatalf("ApplyRuntimeDefaults returned error: %v", err)
	}

	if cfg.Auth.JWT.Secret == "" {
		t.Fatal("expected JWT secret to be generated")
	}
	if !generated["auth.jwt.secret"] {
		t.Fatalf("expected generated map to include jwt secret: %#v", generated)
	}
}

func TestApplyRuntimeDefaultsPreservesExistingSecret(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.JWT.Secret = strings.Repeat("a", 10)

	generated, err := ApplyRuntimeDefaults(cfg)
	if err != nil {
		t.Fatalf("ApplyRuntimeDefaults returned error: %v", err)
	}

	if len(generated) != 0 {
		t.Fatalf("expected no keys generated, got %#v", generated)
	}
	if cfg.Auth.JWT.Secret != strings.Repeat("a", 10) {
		t.Fatalf("secret was replaced: %q", cfg.Auth.JWT.Secret)
	}
}

func TestApplyRuntimeDefaultsBlankSecretIsReplaced(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.JWT.Secret = "   "

	generated, err := ApplyRuntimeDefaults(cfg)
	if err != nil {
		t.Fatalf("ApplyRuntimeDefaults returned error: %v", err)
	}
	if !generated["auth.jwt.secret"] || strings.TrimSpace(cfg.Auth.JWT.Secret) == "" {
		t.Fatalf("expected blank secret to be regenerated, got %q", cfg.Auth.JWT.Secret)
	}
}

func TestApplyRuntimeDefaultsNilConfig(t *testing.T) {
	_, err := ApplyRuntimeDefaults(nil)
	if err == nil || !strings.Contains(err.Error(), "config is nil") {
		t.Fatalf("expected nil config error, got %v", err)
	}
}

func TestApplyRuntimeDefaultsServerFallbacks(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.JWT.Secret = "configured"
	cfg.Server.RateLimit.Enabled = true

	generated, err := ApplyRuntimeDefaults(cfg)
	if err != nil {
		t.Fatalf("ApplyRuntimeDefaults returned error: %v", err)
	}
	if len(generated) != 0 {
		t.Fatalf("fallbacks are not secrets: %#v", generated)
	}
	if cfg.Server.Port != fallbackPort {
		t.Fatalf("expected port %d, got %d", fallbackPort, cfg.Server.Port)
	}
	if cfg.Server.RateLimit.Requests != fallbackLoginRequests || cfg.Server.RateLimit.Window != fallbackLoginWindow {
		t.Fatalf("unexpected rate limit %#v", cfg.Server.RateLimit)
	}

	cfg = &Config{Server: ServerConfig{Port: 9000}}
	cfg.Auth.JWT.Secret = "configured"
	if _, err := ApplyRuntimeDefaults(cfg); err != nil {
		t.Fatalf("ApplyRuntimeDefaults returned error: %v", err)
	}
	if cfg.Server.Port != 9000 || cfg.Server.RateLimit.Requests != 0 {
		t.Fatalf("configured values must be preserved: %#v", cfg.Server)
	}
}

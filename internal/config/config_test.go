package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/safelink")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "5000")
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("pool sizes = %d/%d, want 20/5", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.GeminiBaseURL != "https://generativelanguage.googleapis.com" {
		t.Errorf("GeminiBaseURL = %q", cfg.GeminiBaseURL)
	}
	if cfg.GeminiTimeout != 30 {
		t.Errorf("GeminiTimeout = %d, want 30", cfg.GeminiTimeout)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/safelink")
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("BCRYPT_COST", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want %q", cfg.Env, "production")
	}
	if cfg.GeminiModel != "gemini-1.5-pro" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.IsDev() {
		t.Error("IsDev() = true for production")
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want missing DATABASE_URL error")
	}
}

func TestLoad_CORSOriginsSplit(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/safelink")
	t.Setenv("CORS_ORIGINS", "https://app.example.com,https://staging.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("CORSOrigins = %v, want 2 origins", cfg.CORSOrigins)
	}
	if cfg.CORSOrigins[0] != "https://app.example.com" {
		t.Errorf("CORSOrigins[0] = %q", cfg.CORSOrigins[0])
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		GeminiAPIKey:  "key",
		GeminiTimeout: 30,
		BcryptCost:    10,
	}

	if err := base.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	noKey := base
	noKey.GeminiAPIKey = ""
	if err := noKey.Validate(); err == nil {
		t.Error("Validate() with no API key = nil, want error")
	}

	badCost := base
	badCost.BcryptCost = 3
	if err := badCost.Validate(); err == nil {
		t.Error("Validate() with cost 3 = nil, want error")
	}
	badCost.BcryptCost = 32
	if err := badCost.Validate(); err == nil {
		t.Error("Validate() with cost 32 = nil, want error")
	}

	badTimeout := base
	badTimeout.GeminiTimeout = 0
	if err := badTimeout.Validate(); err == nil {
		t.Error("Validate() with zero timeout = nil, want error")
	}
}

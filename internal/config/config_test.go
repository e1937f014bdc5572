package config

import (
	"bytes"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"TODO_CONFIG", "PORT", "ENV", "DATABASE_DRIVER", "DATABASE_URL", "DB_HOSTNAME", "DB_PORT",
	"DB_USERNAME", "DB_PASSWORD", "DB_DBNAME", "JWT_SECRET", "JWT_EXPIRY", "CORS_ALLOWED_ORIGINS",
	"AUTH_RATE_LIMIT_RPS", "AUTH_RATE_LIMIT_BURST", "LOG_LEVEL", "LOG_FORMAT", "TRUSTED_PROXIES",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/todo")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != "3011" || cfg.Env != "development" || cfg.Database.Driver != "postgres" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.JWT.Secret != devJWTSecret || cfg.JWT.Expiry != 24*time.Hour {
		t.Errorf("JWT = %+v", cfg.JWT)
	}
	if cfg.RateLimit.RPS != 5 || cfg.RateLimit.Burst != 10 {
		t.Errorf("RateLimit = %+v", cfg.RateLimit)
	}
	if cfg.Database.DSN != "postgres://localhost/todo" {
		t.Errorf("DSN = %q", cfg.Database.DSN)
	}
	if len(cfg.Proxies) != 0 {
		t.Errorf("Proxies = %v, want none", cfg.Proxies)
	}
}

func TestLoadRequiresSecretOutsideDevelopment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/todo")
	t.Setenv("ENV", "production")

	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("Load() error = %v, want JWT_SECRET error", err)
	}

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.JWT.Secret != "s3cret" {
		t.Errorf("JWT.Secret = %q", cfg.JWT.Secret)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"no database", map[string]string{}, "database not configured"},
		{"bad driver", map[string]string{"DATABASE_URL": "x", "DATABASE_DRIVER": "sqlite"}, "unsupported DATABASE_DRIVER"},
		{"bad expiry", map[string]string{"DATABASE_URL": "x", "JWT_EXPIRY": "soon"}, "invalid JWT_EXPIRY"},
		{"bad rps", map[string]string{"DATABASE_URL": "x", "AUTH_RATE_LIMIT_RPS": "fast"}, "invalid AUTH_RATE_LIMIT_RPS"},
		{"zero burst", map[string]string{"DATABASE_URL": "x", "AUTH_RATE_LIMIT_BURST": "0"}, "rate limit"},
		{"bad proxy", map[string]string{"DATABASE_URL": "x", "TRUSTED_PROXIES": "10.0.0.0/8, lb.internal"}, "invalid TRUSTED_PROXIES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadTrustedProxies(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/todo")
	t.Setenv("TRUSTED_PROXIES", "10.1.2.3/8, 192.168.0.7, ::1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	want := []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.0.7/32"),
		netip.MustParsePrefix("::1/128"),
	}
	if len(cfg.Proxies) != len(want) {
		t.Fatalf("Proxies = %v, want %v", cfg.Proxies, want)
	}
	for i := range want {
		if cfg.Proxies[i] != want[i] {
			t.Errorf("Proxies[%d] = %v, want %v", i, cfg.Proxies[i], want[i])
		}
	}
}

func TestLoadDiscreteDatabaseFields(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{"postgres", "postgres://todo:pw@db.internal:5432/todos?sslmode=disable"},
		{"mysql", "todo:pw@tcp(db.internal:3306)/todos"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DATABASE_DRIVER", tt.driver)
			t.Setenv("DB_HOSTNAME", "db.internal")
			t.Setenv("DB_USERNAME", "todo")
			t.Setenv("DB_PASSWORD", "pw")
			t.Setenv("DB_DBNAME", "todos")

			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if cfg.Database.DSN != tt.want {
				t.Errorf("DSN = %q, want %q", cfg.Database.DSN, tt.want)
			}
		})
	}
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "todo.yaml")
	data := `
port: "4000"
env: staging
database:
  driver: mysql
  url: "todo:pw@tcp(localhost:3306)/todo"
jwt:
  secret: from-file
  expiry: 2h
cors:
  allowed_origins: ["https://app.example.com"]
rate_limit:
  rps: 1
  burst: 3
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "5000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want env override", cfg.Port)
	}
	if cfg.Env != "staging" || cfg.Database.Driver != "mysql" || cfg.JWT.Secret != "from-file" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.JWT.Expiry != 2*time.Hour {
		t.Errorf("JWT.Expiry = %v, want 2h", cfg.JWT.Expiry)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.RateLimit.RPS != 1 || cfg.RateLimit.Burst != 3 {
		t.Errorf("RateLimit = %+v", cfg.RateLimit)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, LogConfig{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatalf("NewLogger() unexpected error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "op", "test")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record logged at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"op":"test"`) {
		t.Errorf("output = %s", out)
	}

	if _, err := NewLogger(&buf, LogConfig{Level: "loud"}); err == nil {
		t.Error("NewLogger() expected error for bad level")
	}
	if _, err := NewLogger(&buf, LogConfig{Format: "xml"}); err == nil {
		t.Error("NewLogger() expected error for bad format")
	}
}

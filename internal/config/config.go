package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

const devJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port      string          `yaml:"port"`
	Env       string          `yaml:"env"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`

	// TrustedProxies lists addresses or CIDRs allowed to set the client IP
	// through forwarding headers. Empty means none.
	TrustedProxies []string `yaml:"trusted_proxies"`

	// Proxies is TrustedProxies parsed by Load.
	Proxies []netip.Prefix `yaml:"-"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`

	// DSN is derived from the fields above by Load.
	DSN string `yaml:"-"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"expiry"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaults() Config {
	return Config{
		Port:      "3011",
		Env:       "development",
		Database:  DatabaseConfig{Driver: "postgres"},
		JWT:       JWTConfig{Expiry: 24 * time.Hour},
		CORS:      CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: RateLimitConfig{RPS: 5, Burst: 10},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence. When path is
// empty TODO_CONFIG is consulted.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path == "" {
		path = os.Getenv("TODO_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.finish(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.Env, "ENV")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Database.Host, "DB_HOSTNAME")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USERNAME")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_DBNAME")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		cfg.TrustedProxies = splitList(v)
	}

	if v := os.Getenv("JWT_EXPIRY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_EXPIRY: %w", err)
		}
		cfg.JWT.Expiry = d
	}
	if v := os.Getenv("AUTH_RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid AUTH_RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimit.RPS = rps
	}
	if v := os.Getenv("AUTH_RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid AUTH_RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateLimit.Burst = burst
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// IsDevelopment reports whether the server runs with development defaults.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) finish() error {
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want postgres or mysql)", c.Database.Driver)
	}

	dsn, err := c.Database.buildDSN()
	if err != nil {
		return err
	}
	c.Database.DSN = dsn

	if c.JWT.Secret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET must be set outside development")
		}
		slog.Warn("JWT_SECRET not set, using development secret")
		c.JWT.Secret = devJWTSecret
	}
	if c.JWT.Expiry <= 0 {
		return errors.New("JWT_EXPIRY must be positive")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("auth rate limit must be positive")
	}

	c.Proxies = nil
	for _, p := range c.TrustedProxies {
		prefix, err := parseProxy(p)
		if err != nil {
			return fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", p, err)
		}
		c.Proxies = append(c.Proxies, prefix)
	}
	return nil
}

// parseProxy accepts a CIDR or a single address.
func parseProxy(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, err
		}
		return p.Masked(), nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func (d DatabaseConfig) buildDSN() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	if d.Host == "" || d.Name == "" {
		return "", errors.New("database not configured: set DATABASE_URL or DB_HOSTNAME and DB_DBNAME")
	}

	port := d.Port
	if d.Driver == "mysql" {
		if port == "" {
			port = "3306"
		}
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(d.Host, port)
		mc.DBName = d.Name
		return mc.FormatDSN(), nil
	}

	if port == "" {
		port = "5432"
	}
	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(d.Host, port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	if d.User != "" {
		u.User = url.UserPassword(d.User, d.Password)
	}
	return u.String(), nil
}

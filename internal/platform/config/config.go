package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "config/config.yaml"
	EnvPrefix   = "EQUIPMENT_"

	ModeDev     = "dev"
	ModeRelease = "release"
)

type HTTPConfig struct {
	Addr            string        `yaml:"addr" env:"ADDR"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	AllowOrigins    []string      `yaml:"allow_origins" env:"ALLOW_ORIGINS"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	Username string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
}

type MongoConfig struct {
	URI      string        `yaml:"uri" env:"URI"`
	Database string        `yaml:"database" env:"DATABASE"`
	PoolSize uint64        `yaml:"pool_size" env:"POOL_SIZE"`
	Timeout  time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
	// 0 = 無期限
	TokenTTL time.Duration `yaml:"token_ttl" env:"TOKEN_TTL"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"` // text | json
	File   string `yaml:"file" env:"FILE"`
}

// AdminConfig is the account created when the users table is empty.
type AdminConfig struct {
	Name     string `yaml:"name" env:"NAME"`
	Email    string `yaml:"email" env:"EMAIL"`
	Password string `yaml:"password" env:"PASSWORD"`
	Phone    int64  `yaml:"phone" env:"PHONE"`
}

type Certs struct {
	Cert string `yaml:"cert" env:"CERT"`
	Key  string `yaml:"key" env:"KEY"`
}

type Config struct {
	Mode        string         `yaml:"mode" env:"MODE"`
	HTTP        HTTPConfig     `yaml:"http" envPrefix:"HTTP_"`
	DB          DatabaseConfig `yaml:"database" envPrefix:"DB_"`
	Mongo       MongoConfig    `yaml:"mongo" envPrefix:"MONGO_"`
	Auth        AuthConfig     `yaml:"auth" envPrefix:"AUTH_"`
	Log         LogConfig      `yaml:"log" envPrefix:"LOG_"`
	Admin       AdminConfig    `yaml:"admin" envPrefix:"ADMIN_"`
	Certificate Certs          `yaml:"certificate" envPrefix:"TLS_"`
}

// Load reads the yaml file at path, then overlays EQUIPMENT_* environment
// variables (a .env file in the working directory is loaded first if present).
// A missing yaml file is not an error; everything can come from the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	buf, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeDev
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8443"
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if len(c.HTTP.AllowOrigins) == 0 {
		c.HTTP.AllowOrigins = []string{"http://localhost:3000"}
	}
	if c.DB.Host == "" {
		c.DB.Host = "127.0.0.1"
	}
	if c.DB.Port == 0 {
		c.DB.Port = 3306
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = "mongodb://localhost:27017"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "equipment"
	}
	if c.Mongo.PoolSize == 0 {
		c.Mongo.PoolSize = 10
	}
	if c.Mongo.Timeout == 0 {
		c.Mongo.Timeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) Validate() error {
	if c.Mode != ModeDev && c.Mode != ModeRelease {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeDev, ModeRelease, c.Mode)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL < 0 {
		return errors.New("auth.token_ttl must not be negative")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Admin.Email != "" && c.Admin.Password == "" {
		return errors.New("admin.password is required when admin.email is set")
	}
	return nil
}

// TLSFiles returns the certificate pair under config/tls/<mode>/, or ok=false
// when no certificate is configured and the server should speak plain HTTP.
func (c *Config) TLSFiles() (certFile, keyFile string, ok bool) {
	if c.Certificate.Cert == "" || c.Certificate.Key == "" {
		return "", "", false
	}
	dir := filepath.Join("config", "tls", c.Mode)
	return filepath.Join(dir, c.Certificate.Cert), filepath.Join(dir, c.Certificate.Key), true
}

// Package config loads application configuration from file and
// environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	App struct {
		Env     string `mapstructure:"env"`
		Version string `mapstructure:"version"`
	} `mapstructure:"app"`

	HTTP struct {
		Addr            string        `mapstructure:"addr"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"http"`

	Postgres struct {
		DSN      string `mapstructure:"dsn"`
		MaxConns int32  `mapstructure:"max_conns"`
		MinConns int32  `mapstructure:"min_conns"`
	} `mapstructure:"postgres"`

	Auth struct {
		JWTSecret      string        `mapstructure:"jwt_secret"`
		AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
		CookieSecure   bool          `mapstructure:"cookie_secure"`
	} `mapstructure:"auth"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	Migrations struct {
		Dir  string `mapstructure:"dir"`
		Auto bool   `mapstructure:"auto"`
	} `mapstructure:"migrations"`
}

// Load reads configuration from the given file, with DUKAPOS_*
// environment variables taking precedence. A missing file is not an
// error when the path is empty; defaults and env then apply.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("app.env", "production")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 2)
	v.SetDefault("auth.access_token_ttl", 8*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("migrations.dir", "migrations")
	v.SetDefault("migrations.auto", true)

	v.SetEnvPrefix("DUKAPOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Postgres.DSN == "" {
		return fmt.Errorf("postgres.dsn is required (DUKAPOS_POSTGRES_DSN)")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (DUKAPOS_AUTH_JWT_SECRET)")
	}
	return nil
}

// IsDev reports whether the app runs in a development environment.
func (c Config) IsDev() bool {
	return c.App.Env == "development" || c.App.Env == "dev"
}

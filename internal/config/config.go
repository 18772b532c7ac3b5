package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Duration struct{ time.Duration }

// [Duration] implements [yaml.Marshaler]
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// Accepts Go duration strings ("30m") and plain integers as seconds.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var seconds int64
	if err := node.Decode(&seconds); err == nil {
		d.Duration = time.Duration(seconds) * time.Second
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration at line %d", node.Line)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

type Log struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type Config struct {
	Mode          string    `yaml:"mode"`
	Addr          string    `yaml:"addr"`
	Domain        string    `yaml:"domain"`
	SessionTTL    Duration  `yaml:"session_ttl"`
	SweepInterval Duration  `yaml:"sweep_interval"`
	Log           Log       `yaml:"log"`
	Postgres      Postgres  `yaml:"postgres"`
	JWT           JWTConfig `yaml:"jwt"`
}

func Default() Config {
	return Config{
		Mode:          "development",
		Addr:          "localhost:8000",
		Domain:        "localhost",
		SessionTTL:    Duration{time.Hour},
		SweepInterval: Duration{time.Minute},
		Log: Log{
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
		JWT: JWTConfig{
			TokenLifetime: Duration{24 * time.Hour},
		},
	}
}

// Read loads the YAML file at path on top of [Default] and applies env
// overrides.
func Read(path string) (Config, error) {
	config := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(b, &config); err != nil {
		return config, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	if err := config.applyEnv(); err != nil {
		return config, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if err := c.Postgres.applyEnv(); err != nil {
		return err
	}
	return c.JWT.applyEnv()
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":               c.Mode,
		"addr":               c.Addr,
		"domain":             c.Domain,
		"session_ttl":        c.SessionTTL.String(),
		"sweep_interval":     c.SweepInterval.String(),
		"log_file":           c.Log.File,
		"pg_host":            c.Postgres.Host,
		"pg_port":            c.Postgres.Port,
		"pg_user":            c.Postgres.User,
		"pg_db_name":         c.Postgres.DBName,
		"records_enabled":    c.Postgres.Enabled(),
		"jwt_token_lifetime": c.JWT.TokenLifetime.String(),
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) HttpCookieSameSite() http.SameSite {
	if c.Development() {
		return http.SameSiteNoneMode
	} else {
		return http.SameSiteStrictMode
	}
}

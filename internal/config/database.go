package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Postgres locates the records database. A zero value means records are
// disabled.
type Postgres struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     uint16 `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"db_name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func loadSecret(name string) (string, bool, error) {
	if value, ok := os.LookupEnv(name); ok {
		return value, true, nil
	}
	path, ok := os.LookupEnv(name + "_FILE")
	if !ok {
		return "", false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("unable to read %s_FILE: %w", name, err)
	}
	return strings.TrimSpace(string(data)), true, nil
}

func (p *Postgres) applyEnv() error {
	if dbURL, ok := os.LookupEnv("DATABASE_URL"); ok {
		p.URL = dbURL
	}
	if host, ok := os.LookupEnv("POSTGRES_HOST"); ok {
		p.Host = host
	}
	if portStr, ok := os.LookupEnv("POSTGRES_PORT"); ok {
		port, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return fmt.Errorf("unable to convert POSTGRES_PORT to int: %w", err)
		}
		p.Port = uint16(port)
	}
	if user, ok := os.LookupEnv("POSTGRES_USER"); ok {
		p.User = user
	}
	if dbName, ok := os.LookupEnv("POSTGRES_DB"); ok {
		p.DBName = dbName
	}
	if sslMode, ok := os.LookupEnv("POSTGRES_SSLMODE"); ok {
		p.SSLMode = sslMode
	}
	password, ok, err := loadSecret("POSTGRES_PASSWORD")
	if err != nil {
		return err
	}
	if ok {
		p.Password = password
	}
	return nil
}

func (p Postgres) Enabled() bool {
	return p.URL != "" || p.Host != ""
}

// DatabaseURL returns the explicit url or builds one from the parts.
func (p Postgres) DatabaseURL() string {
	if p.URL != "" {
		return p.URL
	}
	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	port := p.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, port),
		Path:     "/" + p.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	CORS       CORSConfig
	Logging    LoggingConfig
	Repository RepositoryConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type DatabaseConfig struct {
	URL             string
	MaxConnections  int32
	MinConnections  int32
	MaxConnIdleTime time.Duration
}

type AuthConfig struct {
	// Ровно один из двух: общий секрет (HS256) либо URL набора
	// публичных ключей (JWKS).
	Secret  string
	JWKSURL string
}

type CORSConfig struct {
	Origins []string
}

type LoggingConfig struct {
	Development bool
}

type RepositoryConfig struct {
	Type string // "postgres" или "inmemory"
}

// Load читает конфигурацию из окружения.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_DEV", false)
	v.SetDefault("REPOSITORY_TYPE", "postgres")
	v.SetDefault("DB_MAX_CONNECTIONS", 10)
	v.SetDefault("DB_MIN_CONNECTIONS", 2)
	v.SetDefault("DB_MAX_CONN_IDLE_TIME", 5*time.Minute)

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetString("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			MaxConnections:  v.GetInt32("DB_MAX_CONNECTIONS"),
			MinConnections:  v.GetInt32("DB_MIN_CONNECTIONS"),
			MaxConnIdleTime: v.GetDuration("DB_MAX_CONN_IDLE_TIME"),
		},
		Auth: AuthConfig{
			Secret:  v.GetString("AUTH_SECRET"),
			JWKSURL: v.GetString("AUTH_JWKS_URL"),
		},
		CORS: CORSConfig{
			Origins: strings.Split(v.GetString("CORS_ORIGINS"), ","),
		},
		Logging: LoggingConfig{
			Development: v.GetBool("LOG_DEV"),
		},
		Repository: RepositoryConfig{
			Type: v.GetString("REPOSITORY_TYPE"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Repository.Type != "postgres" && c.Repository.Type != "inmemory" {
		return fmt.Errorf("неизвестный тип репозитория: %q", c.Repository.Type)
	}

	if c.Repository.Type == "postgres" && c.Database.URL == "" {
		return fmt.Errorf("переменная окружения DATABASE_URL не задана")
	}

	if c.Auth.Secret == "" && c.Auth.JWKSURL == "" {
		return fmt.Errorf("нужно задать AUTH_SECRET или AUTH_JWKS_URL")
	}

	if c.Auth.Secret != "" && c.Auth.JWKSURL != "" {
		return fmt.Errorf("AUTH_SECRET и AUTH_JWKS_URL взаимоисключающие")
	}

	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Cors       CorsConfig       `yaml:"cors"`
	Auth       AuthConfig       `yaml:"auth"`
	Repository RepositoryConfig `yaml:"repository"`
	Logging    LoggingConfig    `yaml:"logging"`
	Client     ClientConfig     `yaml:"client"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Host string `yaml:"host"`
}

type CorsConfig struct {
	// единственный разрешённый origin фронтенда
	AllowedOrigin string `yaml:"allowed_origin"`
}

type AuthConfig struct {
	Mode            string `yaml:"mode"` // "firebase" или "static"
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
	// токены для static-режима: токен -> идентичность
	StaticTokens []StaticToken `yaml:"static_tokens"`
}

type StaticToken struct {
	Token string `yaml:"token"`
	UID   string `yaml:"uid"`
	Email string `yaml:"email"`
}

type RepositoryConfig struct {
	Type string `yaml:"type"` // "firestore", "postgres" или "inmemory"

	FirestoreProject string `yaml:"firestore_project"`
	PostgresURL      string `yaml:"postgres_url"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

type ClientConfig struct {
	BaseURL string `yaml:"base_url"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.yml"
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не могу открыть %s: %w", path, err)
	}
	defer file.Close()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_ConfigYAML(t *testing.T) {
	path := filepath.Join("..", "..", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Host == "" {
		t.Fatalf("expected database.host to be set")
	}
	if cfg.RabbitMQ.Port == 0 {
		t.Fatalf("expected rabbitmq.port to be set")
	}
	if cfg.Redis.Port == 0 {
		t.Fatalf("expected redis.port to be set")
	}
	if cfg.Admin.User == "" {
		t.Fatalf("expected admin.user to be set")
	}
}

func TestConfigURLs(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "orders"},
		RabbitMQ: RabbitMQConfig{Host: "mq", Port: 5672, User: "guest", Password: "guest"},
		Redis:    RedisConfig{Host: "cache", Port: 6379},
	}
	if got := cfg.DatabaseURL(); got != "postgres://u:p@db:5432/orders?sslmode=disable" {
		t.Errorf("unexpected database URL: %s", got)
	}
	if got := cfg.RabbitMQURL(); got != "amqp://guest:guest@mq:5672/" {
		t.Errorf("unexpected rabbitmq URL: %s", got)
	}
	if got := cfg.RedisAddr(); got != "cache:6379" {
		t.Errorf("unexpected redis addr: %s", got)
	}
}

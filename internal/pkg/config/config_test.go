package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.LogLevel != "info" || !cfg.Development() {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Auth.JWTTTL != 24*time.Hour || cfg.Auth.ResetTTL != 15*time.Minute {
		t.Fatalf("unexpected ttl defaults: %+v", cfg.Auth)
	}
	if cfg.Auth.PasswordHasher != "sha256" {
		t.Fatalf("expected sha256 hasher by default, got %q", cfg.Auth.PasswordHasher)
	}
	if cfg.Mongo.Database != "admin_users" || !cfg.Mongo.SeedRoles {
		t.Fatalf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
	if cfg.Notify.Workers != 4 || cfg.SMTP.Port != 587 {
		t.Fatalf("unexpected notify/smtp defaults: %+v %+v", cfg.Notify, cfg.SMTP)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "s3cret",
		"JWT_TTL":         "90m",
		"PASSWORD_HASHER": "bcrypt",
		"ENV":             "production",
		"REDIS_DB":        "3",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.JWTTTL != 90*time.Minute || cfg.Auth.PasswordHasher != "bcrypt" {
		t.Fatalf("overrides not applied: %+v", cfg.Auth)
	}
	if cfg.Development() || cfg.Redis.DB != 3 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}

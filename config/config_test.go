package config

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("BULK_STATUS_CONCURRENCY", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test;")

	cfg := Load()
	if cfg.DBPort != "3306" {
		t.Fatalf("expected mysql default port, got %q", cfg.DBPort)
	}
	if cfg.BulkStatusConcurrency != 1 {
		t.Fatalf("concurrency should be clamped to 1, got %d", cfg.BulkStatusConcurrency)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadPostgresOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_PORT", "")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("ENVIRONMENT", "Production")

	cfg := Load()
	if cfg.DBDriver != "postgres" || cfg.DBPort != "5432" {
		t.Fatalf("unexpected driver/port: %s %s", cfg.DBDriver, cfg.DBPort)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.RequestTimeout)
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production environment")
	}
}

func TestDialectorFor(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", DBUsername: "u", DBPassword: "p", DBHost: "db", DBPort: "3306", DBDatabase: "placement"}
	d, err := dialectorFor(cfg)
	if err != nil {
		t.Fatalf("dialectorFor returned error: %v", err)
	}
	my, ok := d.(*mysql.Dialector)
	if !ok {
		t.Fatalf("expected mysql dialector, got %T", d)
	}
	if !strings.Contains(my.Config.DSN, "clientFoundRows=true") {
		t.Fatalf("mysql DSN must count matched rows: %s", my.Config.DSN)
	}

	cfg.DBDriver = "postgres"
	if d, err = dialectorFor(cfg); err != nil {
		t.Fatalf("dialectorFor returned error: %v", err)
	}
	if _, ok := d.(*postgres.Dialector); !ok {
		t.Fatalf("expected postgres dialector, got %T", d)
	}

	cfg.DBDriver = "oracle"
	if _, err := dialectorFor(cfg); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestSMTPMailerRefusesToSendWhenUnconfigured(t *testing.T) {
	m := NewSMTPMailer(&Config{SMTPPort: 587})
	if m.Configured() {
		t.Fatal("mailer without host should not be configured")
	}
	if err := m.Send(context.Background(), "asha@college.edu", "s", "t", ""); !errors.Is(err, ErrMailerNotConfigured) {
		t.Fatalf("expected ErrMailerNotConfigured, got %v", err)
	}
}

func TestSMTPMailerHonoursCancelledContext(t *testing.T) {
	m := NewSMTPMailer(&Config{SMTPHost: "smtp.invalid", SMTPPort: 587, SMTPFrom: "noreply@college.edu"})
	if err := m.Send(context.Background(), " ", "s", "t", ""); err == nil {
		t.Fatal("expected error for blank recipient")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, "asha@college.edu", "s", "t", ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

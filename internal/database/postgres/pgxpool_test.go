package postgres

import (
	"testing"

	"careerlink/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		DBHost:    "db",
		DBPort:    "5432",
		DBName:    "careerlink",
		DBUser:    "app",
		DBSSLMode: "disable",
	}
	if got, want := DSN(cfg), "host=db port=5432 user=app dbname=careerlink sslmode=disable"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	cfg.DBPassword = `it's a secret`
	want := `host=db port=5432 user=app dbname=careerlink sslmode=disable password='it\'s a secret'`
	if got := DSN(cfg); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

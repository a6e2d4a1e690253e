package postgres

import (
	"strings"
	"testing"

	"riya-portal/internal/config"
)

func TestDSN_EscapesPassword(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost:     "db.internal",
		DBPort:     "6543",
		DBName:     "riya",
		DBUser:     "portal",
		DBPassword: "p@ss/w:rd",
		DBSSLMode:  "require",
	})

	if !strings.HasPrefix(dsn, "postgres://portal:") {
		t.Fatalf("unexpected dsn prefix: %s", dsn)
	}
	if strings.Contains(dsn, "p@ss/w:rd") {
		t.Fatalf("password must be escaped: %s", dsn)
	}
	if !strings.Contains(dsn, "@db.internal:6543/riya") {
		t.Fatalf("unexpected host part: %s", dsn)
	}
	if !strings.HasSuffix(dsn, "?sslmode=require") {
		t.Fatalf("unexpected query: %s", dsn)
	}
}

func TestDSN_Defaults(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{DBName: "riya", DBUser: "u"})
	if !strings.Contains(dsn, "@localhost:5432/riya") {
		t.Fatalf("expected default host and port: %s", dsn)
	}
}

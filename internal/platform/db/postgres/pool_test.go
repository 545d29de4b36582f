package postgres

import (
	"testing"
	"time"

	"github.com/ogurasousui/codex-minhex/internal/platform/config"
)

func TestBuildPoolConfig(t *testing.T) {
	t.Parallel()

	dbCfg := config.DatabaseConfig{
		Host:            "localhost",
		Port:            15432,
		User:            "user",
		Password:        "pass",
		Name:            "db",
		SSLMode:         "disable",
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
		ApplicationName: "codex-minhex",
	}

	poolCfg, err := BuildPoolConfig(dbCfg)
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	if poolCfg.MaxConns != 20 {
		t.Errorf("expected MaxConns 20, got %d", poolCfg.MaxConns)
	}

	if poolCfg.MinConns != 5 {
		t.Errorf("expected MinConns 5, got %d", poolCfg.MinConns)
	}

	if poolCfg.MaxConnLifetime != 30*time.Minute {
		t.Errorf("unexpected MaxConnLifetime: %v", poolCfg.MaxConnLifetime)
	}

	if poolCfg.MaxConnIdleTime != 10*time.Minute {
		t.Errorf("unexpected MaxConnIdleTime: %v", poolCfg.MaxConnIdleTime)
	}

	if poolCfg.ConnConfig.Database != "db" {
		t.Errorf("expected database db, got %s", poolCfg.ConnConfig.Database)
	}

	if got := poolCfg.ConnConfig.RuntimeParams["application_name"]; got != "codex-minhex" {
		t.Errorf("expected application_name codex-minhex, got %q", got)
	}
}

func TestBuildPoolConfig_EscapedCredentials(t *testing.T) {
	t.Parallel()

	poolCfg, err := BuildPoolConfig(config.DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "user@domain",
		Password: "p@ss:word",
		Name:     "app_db",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	if poolCfg.ConnConfig.User != "user@domain" || poolCfg.ConnConfig.Password != "p@ss:word" {
		t.Errorf("credentials not round-tripped: %s / %s", poolCfg.ConnConfig.User, poolCfg.ConnConfig.Password)
	}
}

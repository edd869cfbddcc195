package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Scoring.Precision != 4 {
		t.Fatalf("precision %d", cfg.Scoring.Precision)
	}
	if cfg.Export.DelimiterRune() != ',' {
		t.Fatalf("default delimiter %q", cfg.Export.DelimiterRune())
	}
	if cfg.Cache.StatsTTL != 24*time.Hour {
		t.Fatalf("stats ttl %v", cfg.Cache.StatsTTL)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "storage:\n  driver: memory\nexport:\n  delimiter: \";\"\nscoring:\n  precision: 2\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("REDIS_URI", "redis://cache:6379")
	t.Setenv("FORMSIGHT_SCORING_PRECISION", "3")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.Driver != "memory" || cfg.Export.DelimiterRune() != ';' {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Mongo.URI != "mongodb://db:27017" {
		t.Fatalf("MONGO_URI not bound: %s", cfg.Mongo.URI)
	}
	if cfg.Redis.URI != "cache:6379" {
		t.Fatalf("redis scheme not stripped: %s", cfg.Redis.URI)
	}
	if cfg.Scoring.Precision != 3 {
		t.Fatalf("env should override file, got %d", cfg.Scoring.Precision)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage:\n  driver: sqlite\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(dir); err == nil {
		t.Fatalf("unknown storage driver should be rejected")
	}
}

func TestDelimiterRune(t *testing.T) {
	cases := map[string]rune{"": ',', ";": ';', "tab": '\t', "|": '|'}
	for in, want := range cases {
		if got := (ExportConfig{Delimiter: in}).DelimiterRune(); got != want {
			t.Fatalf("%q: got %q, want %q", in, got, want)
		}
	}
}

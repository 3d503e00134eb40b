package config

import "testing"

func TestParseEnv(t *testing.T) {
	type testConfig struct {
		DBPath string `env:"TRENCHMATE_TEST_DB_PATH" envDefault:"trenchmate.db"`
	}

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv returned error: %v", err)
	}
	if cfg.DBPath != "trenchmate.db" {
		t.Fatalf("expected default applied, got %q", cfg.DBPath)
	}

	t.Setenv("TRENCHMATE_TEST_DB_PATH", "/tmp/override.db")
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv returned error: %v", err)
	}
	if cfg.DBPath != "/tmp/override.db" {
		t.Fatalf("expected env override, got %q", cfg.DBPath)
	}
}

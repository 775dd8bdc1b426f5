package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("auth_file: auth.secret\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":8000" {
		t.Fatalf("listen = %q, want :8000", cfg.Listen)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("log.level = %q, want info", cfg.Log.Level)
	}
	if cfg.AuthFile != "auth.secret" {
		t.Fatalf("auth_file = %q", cfg.AuthFile)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"bad listen", "listen: nope\n"},
		{"bad dataset suffix", "dataset: table.csv\n"},
		{"bad log level", "log:\n  level: chatty\n"},
	}
	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := NormalizeAndValidate(&cfg); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

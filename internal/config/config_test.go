package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func setupHome(t *testing.T, content string) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	home := t.TempDir()
	if err := EnsureConfigExists(home); err != nil {
		t.Fatalf("EnsureConfigExists returned error: %v", err)
	}
	if content != "" {
		if err := os.WriteFile(GetConfigPath(home), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
	}
	return home
}

func TestLoadEmptyConfigUsesDefaults(t *testing.T) {
	home := setupHome(t, "")

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level, got %q", cfg.LogLevel)
	}
	if cfg.Vault() != "" {
		t.Errorf("expected no vault, got %q", cfg.Vault())
	}
}

func TestLoadReadsFileValues(t *testing.T) {
	home := setupHome(t, "vaultdir: /notes\nlog_level: DEBUG\n")

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Vault() != "/notes" {
		t.Errorf("expected /notes, got %q", cfg.Vault())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug, got %q", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	home := setupHome(t, "log_level: loud\n")

	if _, err := Load(home); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestVaultOverrideTakesPrecedence(t *testing.T) {
	home := setupHome(t, "vaultdir: /notes\n")

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	viper.Set("vaultdir", "/elsewhere")
	if cfg.Vault() != "/elsewhere" {
		t.Fatalf("expected override, got %q", cfg.Vault())
	}
}

func TestChangeVaultPersists(t *testing.T) {
	home := setupHome(t, "")
	vault := t.TempDir()

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if err := cfg.ChangeVault(vault); err != nil {
		t.Fatalf("ChangeVault returned error: %v", err)
	}

	data, err := os.ReadFile(GetConfigPath(home))
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if !strings.Contains(string(data), vault) {
		t.Fatalf("expected vault in config, got:\n%s", data)
	}

	if err := cfg.ChangeVault("  "); err == nil {
		t.Fatal("expected error for empty vault")
	}
}

func TestRequireVault(t *testing.T) {
	home := setupHome(t, "")
	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	var initErr *ConfigInitError
	if err := cfg.RequireVault(); !errors.As(err, &initErr) {
		t.Fatalf("expected ConfigInitError, got %v", err)
	}

	file := filepath.Join(t.TempDir(), "note.md")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	viper.Set("vaultdir", file)
	if err := cfg.RequireVault(); !errors.As(err, &initErr) {
		t.Fatalf("expected ConfigInitError for a file, got %v", err)
	}

	viper.Set("vaultdir", filepath.Dir(file))
	if err := cfg.RequireVault(); err != nil {
		t.Fatalf("expected valid vault, got %v", err)
	}
}

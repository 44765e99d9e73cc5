package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigurationDefaults(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}
	if cfg.Conversion.Workers < 1 {
		t.Errorf("expected at least one worker, got %d", cfg.Conversion.Workers)
	}
	if cfg.Notion.APIVersion == "" {
		t.Error("expected default notion api version")
	}
	if cfg.Conversion.Images.MaxRasterDim < 16 {
		t.Errorf("unexpected max raster dimension %d", cfg.Conversion.Images.MaxRasterDim)
	}
}

func TestLoadConfigurationOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	data := `
conversion:
  add_meta: true
  workers: 2
notion:
  api_token: "secret-token"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration: %v", err)
	}
	if !cfg.Conversion.AddMeta {
		t.Error("expected add_meta override to apply")
	}
	if cfg.Conversion.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Conversion.Workers)
	}
	if string(cfg.Notion.APIToken) != "secret-token" {
		t.Errorf("unexpected token value %q", cfg.Notion.APIToken)
	}
}

func TestLoadConfigurationUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("nonsense: true\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfiguration(path); err == nil {
		t.Fatal("expected error for unknown configuration field")
	}
}

func TestDumpHidesSecrets(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration: %v", err)
	}
	cfg.Notion.APIToken = "very-secret-token"

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Contains(string(data), "very-secret-token") {
		t.Error("config dump leaks api token")
	}
	if !strings.Contains(string(data), SecretStringValue) {
		t.Error("config dump does not mask api token")
	}
}

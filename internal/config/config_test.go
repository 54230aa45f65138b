package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Log.Level != "off" {
		t.Errorf("Log.Level = %s, want 'off'", cfg.Log.Level)
	}
	if cfg.Validate.MaxURLLength != 2048 {
		t.Errorf("Validate.MaxURLLength = %d, want 2048", cfg.Validate.MaxURLLength)
	}
	if cfg.Validate.Workers != 4 {
		t.Errorf("Validate.Workers = %d, want 4", cfg.Validate.Workers)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %s, want 'text'", cfg.Output.Format)
	}
	if cfg.Store.Path == "" {
		t.Error("Store.Path should not be empty")
	}
}

func TestLoad_DefaultConfig(t *testing.T) {
	// Run from an empty directory so no ./config.toml is picked up
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.Output.Indent != "  " {
		t.Errorf("Output.Indent = %q, want two spaces", cfg.Output.Indent)
	}
	if cfg.Validate.Strict {
		t.Error("Validate.Strict should default to false")
	}
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "test-config.toml")
	configContent := `
[log]
level = "debug"

[validate]
strict = true
workers = 0

[output]
format = "json"

[store]
path = "/tmp/reports.db"
`

	if writeErr := os.WriteFile(configPath, []byte(configContent), 0o644); writeErr != nil {
		t.Fatal(writeErr)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want 'debug'", cfg.Log.Level)
	}
	if !cfg.Validate.Strict {
		t.Error("Validate.Strict = false, want true")
	}
	if cfg.Validate.Workers != 1 {
		t.Errorf("Validate.Workers = %d, want it clamped to 1", cfg.Validate.Workers)
	}
	if cfg.Validate.MaxURLLength != 2048 {
		t.Errorf("Validate.MaxURLLength = %d, want default 2048", cfg.Validate.MaxURLLength)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %s, want 'json'", cfg.Output.Format)
	}
	if cfg.Store.Path != "/tmp/reports.db" {
		t.Errorf("Store.Path = %s, want '/tmp/reports.db'", cfg.Store.Path)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(configPath, []byte("[log\nlevel ="), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load() expected error for malformed TOML")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("JFEED_OUTPUT_FORMAT", "yaml")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("Output.Format = %s, want 'yaml' from environment", cfg.Output.Format)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	if got := expandPath("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("expandPath(~/x/y.db) = %s", got)
	}
	if got := expandPath("-"); got != "-" {
		t.Errorf("expandPath(-) = %q, want -", got)
	}
	if got := expandPath(""); got != "" {
		t.Errorf("expandPath(\"\") = %q, want empty", got)
	}
	if got := expandPath("rel.db"); !filepath.IsAbs(got) {
		t.Errorf("expandPath(rel.db) = %s, want absolute path", got)
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := defaultConfig()
	cfg.Log.Level = "warn"
	cfg.Validate.AllowLocalhost = true
	cfg.Output.Format = "toml"
	cfg.Store.Path = "/test/reports.db"

	savePath := filepath.Join(tmpDir, "nested", "saved-config.toml")
	if saveErr := Save(cfg, savePath); saveErr != nil {
		t.Fatalf("Save() error = %v", saveErr)
	}

	loaded, err := Load(savePath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.Log.Level != "warn" {
		t.Errorf("Loaded Log.Level = %s, want 'warn'", loaded.Log.Level)
	}
	if !loaded.Validate.AllowLocalhost {
		t.Error("Loaded Validate.AllowLocalhost = false, want true")
	}
	if loaded.Output.Format != "toml" {
		t.Errorf("Loaded Output.Format = %s, want 'toml'", loaded.Output.Format)
	}
	if loaded.Store.Path != cfg.Store.Path {
		t.Errorf("Loaded Store.Path = %s, want %s", loaded.Store.Path, cfg.Store.Path)
	}
}

func TestGenerateDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "generated.toml")
	if genErr := GenerateDefaultConfig(configPath); genErr != nil {
		t.Fatalf("GenerateDefaultConfig() error = %v", genErr)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load generated config: %v", err)
	}

	if cfg.Validate.Workers != 4 {
		t.Errorf("Generated config has Validate.Workers = %d, want 4", cfg.Validate.Workers)
	}
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}

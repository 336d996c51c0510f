package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "disktriage.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsFillUnsetFields(t *testing.T) {
	path := writeConfig(t, "output_dir: /cases/out\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OutputDir != "/cases/out" {
		t.Errorf("expected file value to win, got %q", cfg.OutputDir)
	}
	if cfg.TimeoutSeconds != 300 {
		t.Errorf("expected default timeout 300, got %d", cfg.TimeoutSeconds)
	}
	if cfg.Tools.Mmls != "mmls" {
		t.Errorf("expected default mmls, got %q", cfg.Tools.Mmls)
	}
	if cfg.HTML.MaxFileRows != 100 || cfg.HTML.MaxFSInfoChars != 2000 {
		t.Errorf("expected default html caps, got %+v", cfg.HTML)
	}
	if cfg.Serve.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Serve.Port)
	}
}

func TestLoad_FileValuesWinOverDefaults(t *testing.T) {
	path := writeConfig(t, `
timeout_seconds: 60
tools:
  fls: /opt/tsk/bin/fls
html:
  max_file_rows: 25
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("expected timeout 60, got %d", cfg.TimeoutSeconds)
	}
	if cfg.Tools.Fls != "/opt/tsk/bin/fls" {
		t.Errorf("expected configured fls, got %q", cfg.Tools.Fls)
	}
	if cfg.Tools.Icat != "icat" {
		t.Errorf("expected default icat beside configured fls, got %q", cfg.Tools.Icat)
	}
	if cfg.HTML.MaxFileRows != 25 {
		t.Errorf("expected max_file_rows 25, got %d", cfg.HTML.MaxFileRows)
	}
	if cfg.HTML.MaxFSInfoChars != 2000 {
		t.Errorf("expected default max_fsinfo_chars, got %d", cfg.HTML.MaxFSInfoChars)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "tools: [not a map")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := Default()
	if errs := Validate(&cfg); len(errs) != 0 {
		t.Errorf("expected default config to validate, got %v", errs)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Config{TimeoutSeconds: -1, Serve: Serve{Port: 700000}}
	errs := Validate(&cfg)
	if len(errs) < 3 {
		t.Fatalf("expected multiple validation errors, got %d: %v", len(errs), errs)
	}

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, want := range []string{"timeout_seconds", "output_dir", "serve.port", "tools.fls"} {
		if !fields[want] {
			t.Errorf("expected a validation error for %s", want)
		}
	}
}

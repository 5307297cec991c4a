package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"config": {
			"name": "dinosaurs",
			"description": "Late Cretaceous fossils",
			"section": "paleontology"
		}
	}`)

	stand, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stand.Name != "dinosaurs" {
		t.Errorf("Name: got %q", stand.Name)
	}
	if stand.Description != "Late Cretaceous fossils" {
		t.Errorf("Description: got %q", stand.Description)
	}
	if stand.Section != "paleontology" {
		t.Errorf("Section: got %q", stand.Section)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestLoad_MissingName(t *testing.T) {
	path := writeConfig(t, `{"config": {"description": "x", "section": "y"}}`)
	if _, err := Load(path); err == nil {
		t.Error("Expected an error when the stand name is missing")
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	if _, err := Load(path); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("STAND_ENDPOINT", "")
	t.Setenv("STAND_CAMERA", "")
	t.Setenv("STAND_LOG_LEVEL", "")

	if got := Endpoint(); got != DefaultEndpoint {
		t.Errorf("Endpoint default: got %q", got)
	}
	if got := CameraDevice(); got != 0 {
		t.Errorf("CameraDevice default: got %d", got)
	}
	if got := LogLevel(); got != "info" {
		t.Errorf("LogLevel default: got %q", got)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STAND_ENDPOINT", "http://backend:9000")
	t.Setenv("STAND_CAMERA", "2")

	if got := Endpoint(); got != "http://backend:9000" {
		t.Errorf("Endpoint override: got %q", got)
	}
	if got := CameraDevice(); got != 2 {
		t.Errorf("CameraDevice override: got %d", got)
	}

	t.Setenv("STAND_CAMERA", "not-a-number")
	if got := CameraDevice(); got != 0 {
		t.Errorf("CameraDevice with bad value: got %d, want fallback 0", got)
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `{
	"name": "Test Config",
	"description": "Test configuration",
	"grid_size": 4,
	"messages": {
		"welcome": "Welcome!",
		"moved": "Moved. Score: %d",
		"no_move": "Nothing moved.",
		"game_over": "Game Over! Your score: %d",
		"play_again": "Play again?"
	}
}`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func hasError(result ValidationResult, substr string) bool {
	for _, e := range result.Errors {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "test.json", validConfig)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, but got errors: %v", result.Errors)
	}
	if result.File != "test.json" {
		t.Errorf("Expected file name test.json, got %s", result.File)
	}
	for _, want := range []string{"✓ Name: Test Config", "✓ Config ID: test", "✓ Grid: 4x4", "size_prompt, invalid_input, invalid_size"} {
		if !hasError(result, want) {
			t.Errorf("Expected info %q in %v", want, result.Errors)
		}
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.json", `{"name": "broken",`)

	result := validateConfig(path)
	if result.Valid || !hasError(result, "Invalid JSON") {
		t.Errorf("Expected invalid JSON error, got %v", result.Errors)
	}
}

func TestValidateConfig_UnknownField(t *testing.T) {
	content := strings.Replace(validConfig, `"grid_size": 4,`, `"grid_size": 4, "layout": ["RRRR"],`, 1)
	path := writeConfig(t, t.TempDir(), "legacy.json", content)

	result := validateConfig(path)
	if result.Valid || !hasError(result, "layout") {
		t.Errorf("Expected unknown field error, got %v", result.Errors)
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig(filepath.Join(t.TempDir(), "missing.json"))
	if result.Valid || !hasError(result, "Failed to read file") {
		t.Errorf("Expected read error, got %v", result.Errors)
	}
}

func TestValidateConfig_CollectsAllErrors(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.json", `{
		"grid_size": 9,
		"messages": {"game_over": "Game over", "moved": "%d and %d", "play_again": "Again at %d?"}
	}`)

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("Expected invalid config")
	}

	for _, want := range []string{
		"name is required",
		"description is required",
		"grid_size",
		"Missing required message: welcome",
		"game_over must contain exactly one %d",
		"moved may contain at most one %d",
		"play_again is shown as is",
	} {
		if !hasError(result, want) {
			t.Errorf("Expected error %q in %v", want, result.Errors)
		}
	}
}

func TestValidateConfig_GridSizeBounds(t *testing.T) {
	tests := []struct {
		size  string
		valid bool
	}{
		{"1", false},
		{"2", true},
		{"8", true},
		{"9", false},
	}

	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			content := strings.Replace(validConfig, `"grid_size": 4`, `"grid_size": `+tt.size, 1)
			result := validateConfig(writeConfig(t, t.TempDir(), "size.json", content))
			if result.Valid != tt.valid {
				t.Errorf("grid_size %s: expected valid=%v, got errors %v", tt.size, tt.valid, result.Errors)
			}
		})
	}
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "good.json", validConfig)

	var out bytes.Buffer
	ok, err := validateDir(&out, dir)
	if err != nil || !ok {
		t.Fatalf("Expected all valid, got ok=%v err=%v\n%s", ok, err, out.String())
	}
	if !strings.Contains(out.String(), "✅ All configurations are valid!") {
		t.Errorf("Unexpected report:\n%s", out.String())
	}

	writeConfig(t, dir, "worse.json", `{"name": "x"}`)
	out.Reset()
	ok, err = validateDir(&out, dir)
	if err != nil || ok {
		t.Fatalf("Expected invalid result, got ok=%v err=%v", ok, err)
	}
	if !strings.Contains(out.String(), "❌ INVALID") || !strings.Contains(out.String(), "❌ Some configurations have errors") {
		t.Errorf("Unexpected report:\n%s", out.String())
	}
}

func TestValidateDir_Empty(t *testing.T) {
	if _, err := validateDir(&bytes.Buffer{}, t.TempDir()); err == nil {
		t.Error("Expected error for directory without configs")
	}
}

func TestValidateShippedConfigs(t *testing.T) {
	if _, err := os.Stat("../configs"); os.IsNotExist(err) {
		t.Skip("configs directory not found")
	}

	var out bytes.Buffer
	ok, err := validateDir(&out, "../configs")
	if err != nil || !ok {
		t.Errorf("Shipped configs should be valid:\n%s", out.String())
	}
}

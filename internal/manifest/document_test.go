package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

const poetryManifest = `
[tool.poetry]
name = "Sample App"
version = "0.2.0"
description = "A sample"
authors = ["Jane Doe <jane@example.com>"]

[tool.poetry.dependencies]
python = "^3.12"
requests = "^2.31"

[tool.poetry.group.dev.dependencies]
pytest = "^7.0"
`

const migratedManifest = `
[build-system]
requires = ["hatchling"]
build-backend = "hatchling.build"

[project]
name = "sample-app"
version = "0.2.0"
requires-python = ">=3.12.0, <4.0"
dependencies = ["requests >=2.31.0, <3.0"]

[dependency-groups]
dev = ["pytest >=8.0.0, <9.0"]
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPoetryManifest(t *testing.T) {
	doc, err := Load(writeManifest(t, poetryManifest))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !doc.HasPoetryConfig() {
		t.Error("expected Poetry configuration to be detected")
	}
	if doc.IsMigrated() {
		t.Error("legacy manifest reported as migrated")
	}

	poetry, _ := doc.PoetryConfig()
	if poetry["name"] != "Sample App" {
		t.Errorf("unexpected name: %v", poetry["name"])
	}

	deps, ok := doc.Table("tool", "poetry", "dependencies")
	if !ok {
		t.Fatal("poetry dependencies table missing")
	}
	if deps["python"] != "^3.12" {
		t.Errorf("unexpected python constraint: %v", deps["python"])
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	if _, err := Load(writeManifest(t, "[unclosed\n")); err == nil {
		t.Error("expected parse error")
	}
}

func TestIsMigrated(t *testing.T) {
	doc, err := Load(writeManifest(t, migratedManifest))
	if err != nil {
		t.Fatal(err)
	}
	if !doc.IsMigrated() {
		t.Error("expected migrated manifest to be detected")
	}
	if got := doc.ProjectDependencies(); len(got) != 1 || got[0] != "requests >=2.31.0, <3.0" {
		t.Errorf("unexpected project dependencies: %v", got)
	}
	if got := doc.DevDependencies(); len(got) != 1 || got[0] != "pytest >=8.0.0, <9.0" {
		t.Errorf("unexpected dev dependencies: %v", got)
	}
	if got := doc.RequiresPython(); got != ">=3.12.0, <4.0" {
		t.Errorf("unexpected requires-python: %v", got)
	}
}

func TestRequiresPythonDefault(t *testing.T) {
	doc := Document{}
	if got := doc.RequiresPython(); got != ">=3.12,<4.0" {
		t.Errorf("unexpected default: %q", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	doc := Document{
		"build-system": map[string]any{
			"requires":      []string{"hatchling"},
			"build-backend": "hatchling.build",
		},
		"project": map[string]any{
			"name":         "sample-app",
			"dependencies": []string{"requests >=2.31.0, <3.0"},
		},
		"dependency-groups": map[string]any{
			"dev": []string{"pytest >=8.0.0, <9.0"},
		},
	}
	if err := Save(path, doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !loaded.IsMigrated() {
		t.Error("round-tripped manifest should report migrated")
	}
	if got := loaded.ProjectDependencies(); len(got) != 1 || got[0] != "requests >=2.31.0, <3.0" {
		t.Errorf("unexpected dependencies after round trip: %v", got)
	}
}

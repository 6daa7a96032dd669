package domains

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDomainsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "domains.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeDomainsFile(t, `---
domains:
  - pff27.ch
  - pff2027.ch
  - bula27.ch
`)

	loader := NewLoader(path)
	names, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"pff27.ch", "pff2027.ch", "bula27.ch"}
	if len(names) != len(want) {
		t.Fatalf("Load() returned %d domains, want %d", len(names), len(want))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q (file order must be preserved)", i, names[i], name)
		}
	}
}

func TestLoaderNormalizesEntries(t *testing.T) {
	path := writeDomainsFile(t, `---
domains:
  - "  PFF27.CH  "
  - ""
  - pff2027.ch
`)

	loader := NewLoader(path)
	names, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(names) != 2 {
		t.Fatalf("expected 2 domains after normalization, got %v", names)
	}
	if names[0] != "pff27.ch" {
		t.Errorf("names[0] = %q, want lower-cased trimmed entry", names[0])
	}
}

func TestLoaderFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/domains.yaml")
	_, err := loader.Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoaderEmptyList(t *testing.T) {
	path := writeDomainsFile(t, `---
domains: []
`)

	loader := NewLoader(path)
	_, err := loader.Load()
	if err == nil {
		t.Error("Load() with no domains should return error")
	}
}

func TestLoaderInvalidYAML(t *testing.T) {
	path := writeDomainsFile(t, "domains: [unclosed")

	loader := NewLoader(path)
	_, err := loader.Load()
	if err == nil {
		t.Error("Load() with invalid YAML should return error")
	}
}

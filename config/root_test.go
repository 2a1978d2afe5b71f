package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// createProjectStructure creates files with given content relative to base.
func createProjectStructure(t *testing.T, base string, files map[string]string) {
	t.Helper()
	for relPath, content := range files {
		fullPath := filepath.Join(base, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write file %s: %v", fullPath, err)
		}
	}
}

func TestFindRoot(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		pathToTest string
		wantRoot   string
	}{
		{
			name:       "Path is project root",
			files:      map[string]string{".modelcat/config.yaml": "cache:\n  chat-size: 4\n"},
			pathToTest: ".",
			wantRoot:   ".",
		},
		{
			name: "Path is two levels deeper than project root",
			files: map[string]string{
				".modelcat/config.yaml": "",
				"sub/inner/file.txt":    "dummy",
			},
			pathToTest: "sub/inner",
			wantRoot:   ".",
		},
		{
			name: "Nearest root wins",
			files: map[string]string{
				".modelcat/config.yaml":     "",
				"sub/.modelcat/config.yaml": "",
				"sub/inner/file.txt":        "dummy",
			},
			pathToTest: "sub/inner",
			wantRoot:   "sub",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			base := t.TempDir()
			createProjectStructure(t, base, tc.files)

			got, err := FindRoot(filepath.Join(base, tc.pathToTest))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want := filepath.Join(base, tc.wantRoot); got != want {
				t.Fatalf("FindRoot() = %q, want %q", got, want)
			}
		})
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	base := t.TempDir()
	createProjectStructure(t, base, map[string]string{"sub/file.txt": "dummy"})

	_, err := FindRoot(filepath.Join(base, "sub"))
	if !errors.Is(err, ErrNoRoot) {
		t.Fatalf("expected ErrNoRoot, got %v", err)
	}
}

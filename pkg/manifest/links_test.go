package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalLinks(t *testing.T) {
	base := t.TempDir()
	modules := filepath.Join(base, "node_modules")

	// Regular linked package
	target := filepath.Join(base, "pkgs", "left-pad")
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(modules, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, filepath.Join(modules, "left-pad")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	// Scoped linked package
	scoped := filepath.Join(base, "pkgs", "cli")
	if err := os.MkdirAll(scoped, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(modules, "@tools"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(scoped, filepath.Join(modules, "@tools", "cli")); err != nil {
		t.Fatal(err)
	}

	// A plain directory must not be reported
	if err := os.MkdirAll(filepath.Join(modules, "not-a-link"), 0755); err != nil {
		t.Fatal(err)
	}

	names, err := GlobalLinks(modules)
	if err != nil {
		t.Fatalf("GlobalLinks() error: %v", err)
	}

	want := []string{"@tools/cli", "left-pad"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestGlobalLinksMissingDir(t *testing.T) {
	_, err := GlobalLinks(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("GlobalLinks() should error for a missing directory")
	}
}

func TestGlobalLinksEmpty(t *testing.T) {
	names, err := GlobalLinks(t.TempDir())
	if err != nil {
		t.Fatalf("GlobalLinks() error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("names = %v, want empty", names)
	}
}

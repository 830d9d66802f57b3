package manifest

import (
	"os"
	"path/filepath"
	"testing"

	errs "buntab/pkg/errors"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `{
		"name": "demo",
		"version": "0.1.0",
		"dependencies": {"react": "^18.0.0"},
		"devDependencies": {"typescript": "^5.0.0"},
		"scripts": {"build": "bun build ./index.ts"}
	}`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.Name != "demo" {
		t.Errorf("Name = %q", m.Name)
	}
	if m.Dependencies["react"] != "^18.0.0" {
		t.Errorf("Dependencies = %v", m.Dependencies)
	}
	if m.Scripts["build"] == "" {
		t.Errorf("Scripts = %v", m.Scripts)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `{broken`)
	_, err := Load(path)
	if !errs.Is(err, errs.ErrCodeInvalidManifest) {
		t.Errorf("err = %v, want INVALID_MANIFEST", err)
	}
}

func TestDependencyList(t *testing.T) {
	m := &Manifest{
		Dependencies:         map[string]string{"a": "1.0"},
		DevDependencies:      map[string]string{"b": "2.0"},
		OptionalDependencies: map[string]string{"c": "3.0"},
	}

	list := m.DependencyList([]string{"a"})

	if len(list) != 2 {
		t.Fatalf("list = %+v", list)
	}
	// Sorted by name; "a" excluded because it was already typed.
	if list[0].Name != "b" || list[0].Category != CategoryDev || list[0].Spec != "2.0" {
		t.Errorf("list[0] = %+v, want dev dependency b", list[0])
	}
	if list[1].Name != "c" || list[1].Category != CategoryOptional {
		t.Errorf("list[1] = %+v, want optional dependency c", list[1])
	}
}

func TestDependencyListPrecedence(t *testing.T) {
	m := &Manifest{
		Dependencies:    map[string]string{"dup": "1.0"},
		DevDependencies: map[string]string{"dup": "2.0"},
	}

	list := m.DependencyList(nil)
	if len(list) != 1 {
		t.Fatalf("list = %+v", list)
	}
	if list[0].Category != CategoryProd || list[0].Spec != "1.0" {
		t.Errorf("list[0] = %+v, want required section to win", list[0])
	}
}

func TestDependencyListEmpty(t *testing.T) {
	m := &Manifest{}
	if list := m.DependencyList(nil); len(list) != 0 {
		t.Errorf("list = %+v, want empty", list)
	}
}

func TestScriptList(t *testing.T) {
	m := &Manifest{Scripts: map[string]string{
		"test":  "bun test",
		"build": "bun build ./index.ts",
	}}

	list := m.ScriptList()
	if len(list) != 2 {
		t.Fatalf("list = %+v", list)
	}
	if list[0].Name != "build" || list[1].Name != "test" {
		t.Errorf("scripts not sorted: %+v", list)
	}
	if list[0].Command != "bun build ./index.ts" {
		t.Errorf("list[0] = %+v", list[0])
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `{"name": "demo"}`)

	nested := filepath.Join(root, "src", "components")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot() error: %v", err)
	}
	if got != root {
		t.Errorf("FindProjectRoot() = %q, want %q", got, root)
	}
}

func TestFindProjectRootMissing(t *testing.T) {
	// A bare temp dir has no package.json anywhere up to /tmp; walking up
	// from it must stop at the filesystem root and report FILE_NOT_FOUND.
	_, err := FindProjectRoot(t.TempDir())
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		// Skip instead of fail if the environment has a package.json above
		// the temp dir.
		t.Skipf("unexpected result: %v", err)
	}
}

func TestLoadProject(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `{"name": "demo", "dependencies": {"zod": "^3.0.0"}}`)

	nested := filepath.Join(root, "src")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	m, err := LoadProject(nested)
	if err != nil {
		t.Fatalf("LoadProject() error: %v", err)
	}
	if m.Name != "demo" {
		t.Errorf("Name = %q", m.Name)
	}
}

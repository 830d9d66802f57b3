package suggest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"buntab/pkg/cache"
	"buntab/pkg/config"
)

const metadataBody = `{
	"name": "pkg",
	"dist-tags": {"latest": "2.0.0", "next": "3.0.0-beta"},
	"versions": {"1.0.0": {}, "1.5.0": {}, "2.0.0": {}, "3.0.0-beta": {}}
}`

func newTestEngine(t *testing.T, handler http.HandlerFunc) *Engine {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Registry = server.URL
	cfg.Search = server.URL
	cfg.InstallRoot = t.TempDir()

	e := New(cfg, cache.NewNullCache(), nil)
	e.SetWorkDir(t.TempDir())
	return e
}

func assertLabels(t *testing.T, got []Suggestion, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("suggestions = %+v, want labels %v", got, want)
	}
	for i := range want {
		if got[i].Label != want[i] {
			t.Errorf("suggestions[%d].Label = %q, want %q", i, got[i].Label, want[i])
		}
	}
}

func TestVersions(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(metadataBody))
	})

	got, err := e.Versions(context.Background(), "pkg")
	if err != nil {
		t.Fatalf("Versions() error: %v", err)
	}

	// Tags in response order, then versions newest-first.
	assertLabels(t, got, "latest", "next", "3.0.0-beta", "2.0.0", "1.5.0", "1.0.0")
	if got[0].Description != "2.0.0" || got[1].Description != "3.0.0-beta" {
		t.Errorf("tag descriptions = %q, %q", got[0].Description, got[1].Description)
	}
	if got[2].Description != "" {
		t.Errorf("version description = %q, want empty", got[2].Description)
	}
}

func TestSuggestVersionMode(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pkg" {
			t.Errorf("path = %q, want /pkg", r.URL.Path)
		}
		w.Write([]byte(metadataBody))
	})

	got := e.Suggest(context.Background(), "bun add pkg@")
	assertLabels(t, got, "latest", "next", "3.0.0-beta", "2.0.0", "1.5.0", "1.0.0")
}

func TestSuggestVersionModeFragment(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(metadataBody))
	})

	got := e.Suggest(context.Background(), "bun add pkg@1")
	assertLabels(t, got, "1.5.0", "1.0.0")
}

func TestSuggestSearchMode(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v2/search/suggestions") {
			t.Errorf("path = %q, want suggestions endpoint", r.URL.Path)
		}
		w.Write([]byte(`[
			{"package": {"name": "react", "description": "ui library"}},
			{"package": {"name": "react-dom"}}
		]`))
	})

	got := e.Suggest(context.Background(), "bun add re")
	assertLabels(t, got, "react", "react-dom")
	if got[0].Description != "ui library" {
		t.Errorf("description = %q", got[0].Description)
	}
}

func TestSuggestScopedSearch(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/search" {
			t.Errorf("path = %q, want qualified search endpoint", r.URL.Path)
		}
		w.Write([]byte(`{"total": 1, "results": [{"package": {"name": "@types/node"}}]}`))
	})

	got := e.Suggest(context.Background(), "bun add @types/no")
	assertLabels(t, got, "@types/node")
}

func TestSuggestNeverFails(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadRequest)
	})

	// Search and version lookups hit the failing server; scripts and
	// dependencies have no manifest near workDir; links has no global tree.
	lines := []string{
		"bun add re",
		"bun add pkg@",
		"bun run ",
		"bun rm ",
		"bun link ",
	}
	for _, line := range lines {
		if got := e.Suggest(context.Background(), line); len(got) != 0 {
			t.Errorf("Suggest(%q) = %+v, want empty", line, got)
		}
	}
}

func TestSuggestCommands(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {})

	got := e.Suggest(context.Background(), "bun i")
	assertLabels(t, got, "init", "install")

	got = e.Suggest(context.Background(), "bun pm ")
	assertLabels(t, got, "bin", "ls", "cache", "hash")
}

func TestSuggestOptions(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {})

	got := e.Suggest(context.Background(), "bun add --de")
	assertLabels(t, got, "--dev")
	if got[0].Description == "" {
		t.Error("option suggestion missing description")
	}
}

func TestSuggestScripts(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {})

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"),
		`{"scripts": {"dev": "bun run src/index.ts", "build": "bun build src/index.ts"}}`)
	e.SetWorkDir(dir)

	got := e.Suggest(context.Background(), "bun run ")
	assertLabels(t, got, "build", "dev")
	if got[1].Description != "bun run src/index.ts" {
		t.Errorf("description = %q", got[1].Description)
	}
}

func TestSuggestDependenciesExcludeTyped(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {})

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"),
		`{"dependencies": {"a": "1.0"}, "devDependencies": {"b": "2.0"}}`)
	e.SetWorkDir(dir)

	got := e.Suggest(context.Background(), "bun rm a ")
	assertLabels(t, got, "b")
	if got[0].Description != "dev dependency" {
		t.Errorf("description = %q, want dev dependency", got[0].Description)
	}
}

func TestSuggestGlobalDependencies(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {})

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"),
		`{"dependencies": {"local-pkg": "1.0"}}`)
	e.SetWorkDir(dir)

	globalDir := e.cfg.GlobalDir()
	if err := os.MkdirAll(globalDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(globalDir, "package.json"),
		`{"dependencies": {"global-pkg": "1.0"}}`)

	// Without the flag the project manifest is consulted.
	got := e.Suggest(context.Background(), "bun rm ")
	assertLabels(t, got, "local-pkg")

	// A typed -g or --global switches to the global install manifest.
	got = e.Suggest(context.Background(), "bun rm -g ")
	assertLabels(t, got, "global-pkg")

	got = e.Suggest(context.Background(), "bun rm --global ")
	assertLabels(t, got, "global-pkg")
}

func TestSuggestFlagValue(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {})

	got := e.Suggest(context.Background(), "bun build --target b")
	assertLabels(t, got, "browser", "bun")

	got = e.Suggest(context.Background(), "bun build --target ")
	assertLabels(t, got, "browser", "bun", "node")
}

func TestLinks(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {})

	modules := e.cfg.GlobalModulesDir()
	if err := os.MkdirAll(modules, 0755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(e.cfg.InstallRoot, "elsewhere")
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, filepath.Join(modules, "my-lib")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got, err := e.Links(context.Background())
	if err != nil {
		t.Fatalf("Links() error: %v", err)
	}
	assertLabels(t, got, "my-lib")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

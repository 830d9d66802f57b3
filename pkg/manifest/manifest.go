// Package manifest reads package.json files and enumerates locally-known
// packages: installed dependencies, run scripts, and globally linked
// packages. All functions are pure read/transform operations on injected
// paths; no state is mutated and nothing is cached.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	errs "buntab/pkg/errors"
)

// FileName is the manifest file name looked up in project and global roots.
const FileName = "package.json"

// Manifest is the subset of package.json that suggestion sources need.
type Manifest struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
	Scripts              map[string]string `json:"scripts"`
}

// Load reads and parses a package.json file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "no manifest at %s", path)
		}
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	return &m, nil
}

// Category labels the dependency section a package was declared in.
type Category string

// Dependency categories, in merge precedence order.
const (
	CategoryProd     Category = "dependency"
	CategoryDev      Category = "dev dependency"
	CategoryOptional Category = "optional dependency"
)

// Dependency is one installed dependency with its declared version range
// and originating category.
type Dependency struct {
	Name     string
	Spec     string
	Category Category
}

// DependencyList merges the three dependency categories into a single list
// keyed by package name, sorted for stable output. Names in exclude (the
// packages the user already typed) are dropped so an already-selected
// package is not suggested again. When a name appears in multiple
// categories, the required section wins over dev, and dev over optional.
func (m *Manifest) DependencyList(exclude []string) []Dependency {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	merged := make(map[string]Dependency)
	add := func(deps map[string]string, cat Category) {
		for name, spec := range deps {
			if skip[name] {
				continue
			}
			if _, exists := merged[name]; exists {
				continue
			}
			merged[name] = Dependency{Name: name, Spec: spec, Category: cat}
		}
	}
	add(m.Dependencies, CategoryProd)
	add(m.DevDependencies, CategoryDev)
	add(m.OptionalDependencies, CategoryOptional)

	list := make([]Dependency, 0, len(merged))
	for _, dep := range merged {
		list = append(list, dep)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Script is one package.json run script.
type Script struct {
	Name    string
	Command string
}

// ScriptList returns the manifest's run scripts sorted by name.
func (m *Manifest) ScriptList() []Script {
	list := make([]Script, 0, len(m.Scripts))
	for name, cmd := range m.Scripts {
		list = append(list, Script{Name: name, Command: cmd})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// FindProjectRoot walks up from dir to the nearest directory containing a
// package.json and returns it. This replaces shelling out to a
// "print project root" command, keeping root resolution injectable.
func FindProjectRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errs.New(errs.ErrCodeFileNotFound, "no %s found above %s", FileName, dir)
		}
		dir = parent
	}
}

// LoadProject loads the manifest of the project containing dir.
func LoadProject(dir string) (*Manifest, error) {
	root, err := FindProjectRoot(dir)
	if err != nil {
		return nil, err
	}
	return Load(filepath.Join(root, FileName))
}

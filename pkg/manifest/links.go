package manifest

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// marker separates the install tree prefix from the package name inside a
// node_modules path.
var marker = "node_modules" + string(filepath.Separator)

// GlobalLinks enumerates symbolic links under a global node_modules
// directory and returns the linked package names. Scoped packages live one
// level deeper ("@scope/name"), so the name is everything after the last
// node_modules marker in the link path.
func GlobalLinks(dir string) ([]string, error) {
	var names []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if i := strings.LastIndex(path, marker); i >= 0 {
			names = append(names, filepath.ToSlash(path[i+len(marker):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// skipDirs are directories that never contain annotated source
var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"testdata":     true,
	".git":         true,
	"build":        true,
	"dist":         true,
}

// IsGoSourceFile reports whether a file name is a candidate source file:
// a .go file that is neither a test nor a previously generated file.
func IsGoSourceFile(name string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		!strings.HasPrefix(name, "autogen_")
}

// HasGoSourceFiles reports whether the directory directly contains candidate
// source files.
func HasGoSourceFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && IsGoSourceFile(entry.Name()) {
			return true, nil
		}
	}
	return false, nil
}

// DirsWithGoFiles returns the directories under root that directly contain
// candidate source files. With recursive false only root itself is checked.
// Results are sorted so scans are deterministic.
func DirsWithGoFiles(root string, recursive bool) ([]string, error) {
	if !recursive {
		ok, err := HasGoSourceFiles(root)
		if err != nil {
			return nil, err
		}
		if ok {
			return []string{root}, nil
		}
		return nil, nil
	}

	var dirs []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		name := entry.Name()
		if path != root && (skipDirs[name] || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			return filepath.SkipDir
		}
		ok, err := HasGoSourceFiles(path)
		if err != nil {
			return err
		}
		if ok {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(dirs)
	return dirs, nil
}

// RemoveGeneratedFiles deletes files with the given name under the roots and
// returns the paths removed.
func RemoveGeneratedFiles(roots []string, fileName string) ([]string, error) {
	var removed []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				name := entry.Name()
				if path != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if entry.Name() == fileName {
				if err := os.Remove(path); err != nil {
					return fmt.Errorf("failed to remove %s: %w", path, err)
				}
				removed = append(removed, path)
			}
			return nil
		})
		if err != nil {
			return removed, err
		}
	}
	return removed, nil
}

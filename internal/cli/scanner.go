package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toyz/overwrites/internal/errors"
	"github.com/toyz/overwrites/internal/utils"
)

// DirectoryScanner handles recursive directory scanning for Go packages
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories resolves the given directory arguments to package
// directories containing Go source files. Go-style "./..." patterns scan
// recursively; plain paths are checked as-is.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	var packageDirs []string
	seen := make(map[string]bool)

	for _, rootDir := range rootDirs {
		recursive := false
		baseDir := rootDir
		if strings.HasSuffix(rootDir, "/...") {
			recursive = true
			baseDir = strings.TrimSuffix(rootDir, "/...")
			if baseDir == "" {
				baseDir = "."
			}
		}

		cleanPath, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, errors.WrapWithOperation("resolve", fmt.Sprintf("path %s", baseDir), err)
		}

		dirs, err := utils.DirsWithGoFiles(cleanPath, recursive)
		if err != nil {
			return nil, errors.WrapWithOperation("scan", fmt.Sprintf("directory %s", cleanPath), err)
		}
		for _, dir := range dirs {
			if !seen[dir] {
				seen[dir] = true
				packageDirs = append(packageDirs, dir)
			}
		}
	}

	return packageDirs, nil
}

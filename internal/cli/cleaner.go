package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toyz/overwrites/internal/generator"
	"github.com/toyz/overwrites/internal/utils"
)

// Cleaner removes previously generated files
type Cleaner struct{}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// CleanGeneratedFiles deletes every autogen_overwrites.go under the given
// directories and returns the removed paths.
func (c *Cleaner) CleanGeneratedFiles(rootDirs []string) ([]string, error) {
	var roots []string
	for _, rootDir := range rootDirs {
		baseDir := strings.TrimSuffix(rootDir, "/...")
		if baseDir == "" {
			baseDir = "."
		}
		cleanPath, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", baseDir, err)
		}
		roots = append(roots, cleanPath)
	}

	return utils.RemoveGeneratedFiles(roots, generator.GeneratedFileName)
}

package utils

import (
	"fmt"
	"go/format"
	"go/parser"
	"go/token"

	"golang.org/x/tools/imports"
)

// FormatGoCodeString formats generated Go source, fixing up the import block
// along the way. Falls back to plain gofmt when goimports fails.
func FormatGoCodeString(source string) (string, error) {
	processed, err := imports.Process("autogen_overwrites.go", []byte(source), nil)
	if err == nil {
		return string(processed), nil
	}

	formatted, formatErr := format.Source([]byte(source))
	if formatErr == nil {
		return string(formatted), nil
	}

	// Neither pass accepted the source; report whether it parses at all so
	// the caller sees the real problem.
	fset := token.NewFileSet()
	if _, parseErr := parser.ParseFile(fset, "", source, parser.ParseComments); parseErr != nil {
		return source, fmt.Errorf("invalid Go syntax: %w (goimports error: %v)", parseErr, err)
	}
	return source, fmt.Errorf("failed to format generated code: %w", err)
}

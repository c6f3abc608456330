package models

import (
	"fmt"
	"go/ast"
)

// MarkerKind is the closed set of method marker directives. Markers are
// classification signals only; they never change the method they sit on.
type MarkerKind int

const (
	MarkerSkip MarkerKind = iota
	MarkerOverwrite
)

// String returns the directive name of the marker
func (m MarkerKind) String() string {
	switch m {
	case MarkerSkip:
		return "skip"
	case MarkerOverwrite:
		return "overwrite"
	default:
		return "unknown"
	}
}

// MarkerSet holds the markers found on a single method declaration
type MarkerSet map[MarkerKind]bool

// Has reports whether the marker is present
func (s MarkerSet) Has(kind MarkerKind) bool {
	return s[kind]
}

// MethodDecl is one method of an annotated type's method set. It is read-only
// once built: classification and rendering only inspect it and selectively
// echo parts of it into generated declarations.
type MethodDecl struct {
	Name     string         // method name as declared
	Exported bool           // true when the name is exported (uppercase first letter)
	Markers  MarkerSet      // overwrites:: markers found in the doc comment
	Doc      []string       // doc comment lines with marker directives stripped
	Decl     *ast.FuncDecl  // the original declaration (signature and body)
	Location SourceLocation // position of the declaration
}

// SourceLocation identifies a position in user source code
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// String formats the location as file:line for diagnostics
func (l SourceLocation) String() string {
	if l.File == "" {
		return "unknown location"
	}
	if l.Line == 0 {
		return l.File
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

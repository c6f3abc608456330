// Package parser collects annotated implementation blocks from Go source.
// It works purely on declaration-level syntax: no type checking, no name
// resolution, and method bodies are carried as opaque AST subtrees.
package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"sort"
	"strings"

	"github.com/toyz/overwrites/internal/directives"
	"github.com/toyz/overwrites/internal/models"
)

// Parser extracts overwrites:: directives and the method sets they target
type Parser struct {
	fileSet    *token.FileSet
	directives *directives.Parser
}

// NewParser creates a new source parser
func NewParser() *Parser {
	return &Parser{
		fileSet:    token.NewFileSet(),
		directives: directives.NewParser(),
	}
}

// FileSet returns the file set the parser positions its blocks against.
// Rendering must use the same set to keep the original body layout.
func (p *Parser) FileSet() *token.FileSet {
	return p.fileSet
}

// ParseSource parses source code from a string for testing purposes
func (p *Parser) ParseSource(filename, source string) ([]*models.ImplBlock, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	return p.collectBlocks(map[string]*ast.File{filename: file})
}

// ParseDirectory scans the Go files of a single package directory and returns
// one ImplBlock per annotated type, methods in declaration order. Files are
// visited in name order so repeated runs yield identical blocks.
func (p *Parser) ParseDirectory(path string) ([]*models.ImplBlock, string, error) {
	pkgs, err := parser.ParseDir(p.fileSet, path, isSourceFile, parser.ParseComments)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse directory %s: %w", path, err)
	}

	if len(pkgs) == 0 {
		return nil, "", fmt.Errorf("no Go packages found in directory %s", path)
	}
	if len(pkgs) > 1 {
		return nil, "", fmt.Errorf("multiple packages found in directory %s", path)
	}

	var pkg *ast.Package
	var packageName string
	for name, parsed := range pkgs {
		pkg = parsed
		packageName = name
	}

	blocks, err := p.collectBlocks(pkg.Files)
	if err != nil {
		return nil, "", err
	}
	return blocks, packageName, nil
}

// collectBlocks runs the two passes over a package's files: find annotated
// type declarations first, then gather each type's methods and markers.
func (p *Parser) collectBlocks(files map[string]*ast.File) ([]*models.ImplBlock, error) {
	fileNames := make([]string, 0, len(files))
	for name := range files {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)

	var blocks []*models.ImplBlock
	byTarget := make(map[string]*models.ImplBlock)

	// First pass: annotated type declarations.
	for _, fileName := range fileNames {
		fileBlocks, err := p.extractBlocks(files[fileName], fileName)
		if err != nil {
			return nil, err
		}
		for _, block := range fileBlocks {
			if existing, ok := byTarget[block.TargetType]; ok {
				return nil, &models.GeneratorError{
					Type:    models.ErrorTypeDirectiveSyntax,
					File:    block.FileName,
					Line:    block.Location.Line,
					Message: fmt.Sprintf("type %s already has a generate directive at %s", block.TargetType, existing.Location),
				}
			}
			byTarget[block.TargetType] = block
			blocks = append(blocks, block)
		}
	}

	// Second pass: the method sets, in file name then declaration order.
	for _, fileName := range fileNames {
		if err := p.extractMethods(files[fileName], fileName, byTarget); err != nil {
			return nil, err
		}
	}

	return blocks, nil
}

// extractBlocks finds generate directives on type declarations in one file
func (p *Parser) extractBlocks(file *ast.File, fileName string) ([]*models.ImplBlock, error) {
	var blocks []*models.ImplBlock
	var firstErr error

	ast.Inspect(file, func(n ast.Node) bool {
		if firstErr != nil {
			return false
		}
		decl, ok := n.(*ast.GenDecl)
		if !ok || decl.Tok != token.TYPE {
			return true
		}

		directive, err := p.findGenerateDirective(decl.Doc, fileName)
		if err != nil {
			firstErr = err
			return false
		}
		if directive == nil {
			return true
		}

		block, err := p.buildBlock(decl, directive, fileName)
		if err != nil {
			firstErr = err
			return false
		}
		blocks = append(blocks, block)
		return true
	})

	if firstErr != nil {
		return nil, firstErr
	}
	return blocks, nil
}

// buildBlock validates the annotated declaration and creates its ImplBlock
func (p *Parser) buildBlock(decl *ast.GenDecl, directive *directives.Directive, fileName string) (*models.ImplBlock, error) {
	location := directive.Location

	// A grouped type declaration gives the directive no single target.
	if len(decl.Specs) != 1 {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeUnresolvableTarget,
			File:    fileName,
			Line:    location.Line,
			Message: "generate directive on a grouped type declaration has no single target type",
		}
	}

	typeSpec, ok := decl.Specs[0].(*ast.TypeSpec)
	if !ok {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeUnresolvableTarget,
			File:    fileName,
			Line:    location.Line,
			Message: "generate directive must be attached to a type declaration",
		}
	}

	if typeSpec.Assign != token.NoPos {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeUnresolvableTarget,
			File:    fileName,
			Line:    location.Line,
			Message: fmt.Sprintf("type alias %s cannot carry a method set", typeSpec.Name.Name),
		}
	}

	return &models.ImplBlock{
		TargetType: typeSpec.Name.Name,
		TypeParams: typeSpec.TypeParams,
		Options:    directive.Options,
		Location:   location,
		FileName:   fileName,
	}, nil
}

// extractMethods appends every method of an annotated type to its block
func (p *Parser) extractMethods(file *ast.File, fileName string, byTarget map[string]*models.ImplBlock) error {
	for _, decl := range file.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok || funcDecl.Recv == nil {
			continue
		}

		block, ok := byTarget[receiverBaseName(funcDecl.Recv)]
		if !ok {
			continue
		}

		markers, doc, err := p.parseMarkers(funcDecl.Doc, fileName)
		if err != nil {
			return err
		}

		block.Methods = append(block.Methods, models.MethodDecl{
			Name:     funcDecl.Name.Name,
			Exported: ast.IsExported(funcDecl.Name.Name),
			Markers:  markers,
			Doc:      doc,
			Decl:     funcDecl,
			Location: p.location(funcDecl.Pos(), fileName),
		})
	}
	return nil
}

// findGenerateDirective scans a doc comment for the generate directive.
// Marker directives on a type declaration are a syntax error.
func (p *Parser) findGenerateDirective(doc *ast.CommentGroup, fileName string) (*directives.Directive, error) {
	if doc == nil {
		return nil, nil
	}

	var found *directives.Directive
	for _, comment := range doc.List {
		if !directives.IsDirective(comment.Text) {
			continue
		}
		directive, err := p.directives.Parse(comment.Text, p.location(comment.Pos(), fileName))
		if err != nil {
			return nil, err
		}
		if directive.Kind != directives.GenerateKind {
			return nil, &models.GeneratorError{
				Type:    models.ErrorTypeDirectiveSyntax,
				File:    fileName,
				Line:    directive.Location.Line,
				Message: fmt.Sprintf("directive '%s%s' belongs on a method, not a type declaration", directives.Prefix, directive.Kind),
			}
		}
		found = directive
	}
	return found, nil
}

// parseMarkers collects marker directives from a method's doc comment and
// returns the remaining doc lines with the directives stripped out.
func (p *Parser) parseMarkers(doc *ast.CommentGroup, fileName string) (models.MarkerSet, []string, error) {
	markers := make(models.MarkerSet)
	if doc == nil {
		return markers, nil, nil
	}

	var kept []string
	for _, comment := range doc.List {
		if !directives.IsDirective(comment.Text) {
			kept = append(kept, comment.Text)
			continue
		}
		directive, err := p.directives.Parse(comment.Text, p.location(comment.Pos(), fileName))
		if err != nil {
			return nil, nil, err
		}
		marker, ok := directive.Marker()
		if !ok {
			return nil, nil, &models.GeneratorError{
				Type:    models.ErrorTypeDirectiveSyntax,
				File:    fileName,
				Line:    directive.Location.Line,
				Message: fmt.Sprintf("directive '%sgenerate' belongs on a type declaration, not a method", directives.Prefix),
			}
		}
		markers[marker] = true
	}
	return markers, kept, nil
}

func (p *Parser) location(pos token.Pos, fileName string) models.SourceLocation {
	position := p.fileSet.Position(pos)
	return models.SourceLocation{
		File:   fileName,
		Line:   position.Line,
		Column: position.Column,
	}
}

// receiverBaseName resolves the base type name of a method receiver,
// unwrapping pointers and type parameter instantiations.
func receiverBaseName(recv *ast.FieldList) string {
	if recv == nil || len(recv.List) == 0 {
		return ""
	}
	expr := recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return ident.Name
		}
	case *ast.IndexListExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return ident.Name
		}
	}
	return ""
}

// isSourceFile filters out tests and previously generated files
func isSourceFile(info fs.FileInfo) bool {
	name := info.Name()
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		!strings.HasPrefix(name, "autogen_")
}

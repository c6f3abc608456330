package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/toyz/overwrites/internal/classifier"
	"github.com/toyz/overwrites/internal/generator"
	"github.com/toyz/overwrites/internal/models"
	"github.com/toyz/overwrites/internal/parser"
	"github.com/toyz/overwrites/internal/utils"
)

// Generator coordinates the CLI generation process
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	parser         *parser.Parser
	codeGenerator  *generator.Generator
	reporter       *DiagnosticReporter
	diagnostics    *utils.DiagnosticSystem
	customModule   string
	summary        GenerationSummary
}

// GenerationSummary contains information about one generation run
type GenerationSummary struct {
	PackagesProcessed     int
	BlocksFound           int
	InterfacesGenerated   int
	PassthroughsGenerated int
	FailedPackages        int
	GeneratedFiles        []string
}

// NewGenerator creates a new CLI generator
func NewGenerator(verbose bool) *Generator {
	return NewGeneratorWithDiagnostics(verbose, nil)
}

// NewGeneratorWithDiagnostics creates a new CLI generator with a diagnostic system
func NewGeneratorWithDiagnostics(verbose bool, diagnostics *utils.DiagnosticSystem) *Generator {
	sourceParser := parser.NewParser()
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		parser:         sourceParser,
		codeGenerator:  generator.NewGenerator(sourceParser.FileSet()),
		reporter:       NewDiagnosticReporter(verbose),
		diagnostics:    diagnostics,
		summary:        GenerationSummary{GeneratedFiles: make([]string, 0)},
	}
}

// SetCustomModule sets a custom module name for the next run
func (g *Generator) SetCustomModule(moduleName string) {
	g.customModule = moduleName
}

// GetSummary returns the generation summary
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Generate executes the generation process for the given directories
func (g *Generator) Generate(directories []string) error {
	return g.Run(Config{
		Directories: directories,
		ModuleName:  g.customModule,
		Verbose:     g.reporter.verbose,
	})
}

// Run executes the complete generation process. Each package is an
// independent invocation: a failing package is reported and counted but the
// remaining packages are still processed.
func (g *Generator) Run(config Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}

	if g.diagnostics != nil {
		g.diagnostics.Verbose("Starting generation at %s", startTime.Format("15:04:05"))
		g.diagnostics.Debug("Scanning directories: %v", config.Directories)
	}

	moduleName, err := g.moduleResolver.ResolveModuleName(config.ModuleName)
	if err != nil {
		return err
	}
	if g.diagnostics != nil {
		g.diagnostics.Verbose("Resolved module: %s", moduleName)
	}

	packageDirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		return err
	}
	if len(packageDirs) == 0 {
		g.reporter.ReportWarning("no Go packages found in the given directories")
		return nil
	}

	for _, dir := range packageDirs {
		if err := g.processPackage(dir, moduleName); err != nil {
			g.summary.FailedPackages++
			g.reporter.ReportError(err)
		}
	}

	if g.diagnostics != nil {
		g.diagnostics.Verbose("Generation finished in %s", time.Since(startTime).Round(time.Millisecond))
	}

	if g.summary.FailedPackages > 0 {
		return fmt.Errorf("generation failed for %d of %d packages", g.summary.FailedPackages, g.summary.PackagesProcessed)
	}
	return nil
}

// processPackage runs the pipeline for one package directory: parse blocks,
// classify methods, render declarations, write the generated file. A failure
// anywhere leaves the package without any generated file.
func (g *Generator) processPackage(dir, moduleName string) error {
	g.summary.PackagesProcessed++

	blocks, packageName, err := g.parser.ParseDirectory(dir)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		if g.diagnostics != nil {
			g.diagnostics.Debug("No generate directives in %s", dir)
		}
		return nil
	}
	g.summary.BlocksFound += len(blocks)

	if g.diagnostics != nil {
		packagePath, pathErr := g.moduleResolver.BuildPackagePath(moduleName, dir)
		if pathErr != nil {
			packagePath = dir
		}
		g.diagnostics.Verbose("Processing %s (%d annotated types)", packagePath, len(blocks))
	}

	artifacts := make([]*generator.BlockArtifact, 0, len(blocks))
	for _, block := range blocks {
		// The inclusion set is computed exactly once per block and feeds
		// both the interface and the passthrough rendering.
		qualifying := classifier.Qualify(block.Options, block.Methods)
		artifact, err := g.codeGenerator.RenderBlock(block, qualifying)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, artifact)
		g.summary.InterfacesGenerated++
		if artifact.PassthroughName != "" {
			g.summary.PassthroughsGenerated++
		}
	}

	file, err := g.codeGenerator.GenerateFile(packageName, artifacts)
	if err != nil {
		return err
	}

	file.FilePath = filepath.Join(dir, generator.GeneratedFileName)
	if err := os.WriteFile(file.FilePath, []byte(file.Content), 0644); err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			File:    file.FilePath,
			Message: "failed to write generated file",
			Cause:   err,
		}
	}

	if g.diagnostics != nil {
		g.diagnostics.WriteStep(file.FilePath)
	}
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, file.FilePath)
	return nil
}

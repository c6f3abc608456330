package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/toyz/overwrites/internal/cli"
	"github.com/toyz/overwrites/internal/utils"
)

func main() {
	var (
		moduleFlag  = flag.String("module", "", "Custom module name (defaults to go.mod module)")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		cleanFlag   = flag.Bool("clean", false, "Delete all autogen_overwrites.go files from the specified directories")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Overwrites Interface Generator\n")
		fmt.Fprintf(os.Stderr, "Scans directories for Go types with overwrites:: directives and generates\n")
		fmt.Fprintf(os.Stderr, "overwrite interfaces and passthrough implementations.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for annotated Go files\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nDirectives:\n")
		fmt.Fprintf(os.Stderr, "  //overwrites::generate [args]   on a type declaration\n")
		fmt.Fprintf(os.Stderr, "      default = \"overwrite\"       include exported methods by default (the default)\n")
		fmt.Fprintf(os.Stderr, "      default = \"skip\"            exclude methods unless marked\n")
		fmt.Fprintf(os.Stderr, "      name = \"MyInterface\"        override the derived interface name\n")
		fmt.Fprintf(os.Stderr, "      passthrough                 also generate a forwarding implementation\n")
		fmt.Fprintf(os.Stderr, "  //overwrites::skip              exclude this method under the default policy\n")
		fmt.Fprintf(os.Stderr, "  //overwrites::overwrite         include this method under default = \"skip\"\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                    # Scan everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s ./internal/...           # Scan internal directory recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --verbose ./pkg/counter  # Scan one directory with detailed output\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --clean ./...            # Delete all generated files\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	diagnostics.Section("Overwrites Interface Generator")

	if *cleanFlag {
		cleaner := cli.NewCleaner()
		removed, err := cleaner.CleanGeneratedFiles(args)
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			os.Exit(1)
		}
		for _, path := range removed {
			diagnostics.List("removed %s", path)
		}
		diagnostics.Success("All autogen_overwrites.go files have been removed")
		return
	}

	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(args, ", "))
		if *moduleFlag != "" {
			diagnostics.List("Custom module: %s", *moduleFlag)
		}
	}

	generator := cli.NewGeneratorWithDiagnostics(*verboseFlag, diagnostics)
	if *moduleFlag != "" {
		generator.SetCustomModule(*moduleFlag)
	}

	err := generator.Generate(args)
	summary := generator.GetSummary()

	if err != nil {
		diagnostics.Error("Generation failed: %v", err)
		os.Exit(1)
	}

	diagnostics.Summary("Generation Complete!", []utils.Stat{
		{Name: "Packages processed", Value: summary.PackagesProcessed},
		{Name: "Annotated types", Value: summary.BlocksFound},
		{Name: "Interfaces generated", Value: summary.InterfacesGenerated},
		{Name: "Passthrough types", Value: summary.PassthroughsGenerated},
		{Name: "Files written", Value: len(summary.GeneratedFiles)},
	})

	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}
}

package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	owerrors "github.com/toyz/overwrites/internal/errors"
	"github.com/toyz/overwrites/internal/models"
)

// DiagnosticReporter provides user-friendly error reporting
type DiagnosticReporter struct {
	verbose bool
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{verbose: verbose}
}

// ReportWarning prints a warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprint(os.Stderr, "! ")
	fmt.Fprintf(os.Stderr, "%s\n", message)
}

// ReportError prints an error with as much context as its type carries
func (r *DiagnosticReporter) ReportError(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(os.Stderr, "ERROR: ")

	var genErr *models.GeneratorError
	if stderrors.As(err, &genErr) {
		r.reportGeneratorError(genErr)
		return
	}

	var dirErr *owerrors.DirectiveError
	if stderrors.As(err, &dirErr) {
		r.reportDirectiveError(dirErr)
		return
	}

	fmt.Fprintf(os.Stderr, "%s\n", err.Error())
}

// reportGeneratorError reports a GeneratorError with its type and location
func (r *DiagnosticReporter) reportGeneratorError(genErr *models.GeneratorError) {
	fmt.Fprintf(os.Stderr, "%s\n", r.errorTypeName(genErr.Type))

	if genErr.File != "" && genErr.Line > 0 {
		fmt.Fprintf(os.Stderr, "  Location: %s:%d\n", genErr.File, genErr.Line)
	} else if genErr.File != "" {
		fmt.Fprintf(os.Stderr, "  File: %s\n", genErr.File)
	}
	fmt.Fprintf(os.Stderr, "  Message: %s\n", genErr.Message)

	if r.verbose && genErr.Cause != nil {
		fmt.Fprintf(os.Stderr, "  Cause: %s\n", genErr.Cause.Error())
	}

	r.printHints(r.hintsForType(genErr.Type))
}

// reportDirectiveError reports a directive syntax error with its suggestions
func (r *DiagnosticReporter) reportDirectiveError(dirErr *owerrors.DirectiveError) {
	fmt.Fprintf(os.Stderr, "%s\n", dirErr.Code)
	if dirErr.File != "" {
		fmt.Fprintf(os.Stderr, "  Location: %s:%d\n", dirErr.File, dirErr.Line)
	}
	fmt.Fprintf(os.Stderr, "  Message: %s\n", dirErr.Message)
	r.printHints(dirErr.Suggestions)
}

func (r *DiagnosticReporter) errorTypeName(errorType models.ErrorType) string {
	switch errorType {
	case models.ErrorTypeDirectiveSyntax:
		return "Directive Syntax Error"
	case models.ErrorTypeUnresolvableTarget:
		return "Unresolvable Target Error"
	case models.ErrorTypeEmptySet:
		return "Empty Overwrite Set Error"
	case models.ErrorTypeGeneration:
		return "Code Generation Error"
	case models.ErrorTypeFileSystem:
		return "File System Error"
	default:
		return "Unknown Error"
	}
}

func (r *DiagnosticReporter) hintsForType(errorType models.ErrorType) []string {
	switch errorType {
	case models.ErrorTypeDirectiveSyntax:
		return []string{
			"directives start with //overwrites::",
			`generate arguments: default = "overwrite"|"skip", name = "Ident", passthrough`,
		}
	case models.ErrorTypeUnresolvableTarget:
		return []string{
			"attach //overwrites::generate to a single named type declaration",
			`or supply an explicit interface name with name = "..."`,
		}
	case models.ErrorTypeEmptySet:
		return []string{
			"unexported methods never qualify",
			`with default = "skip", mark the methods to include with //overwrites::overwrite`,
			"without it, remove //overwrites::skip from at least one exported method",
		}
	default:
		return nil
	}
}

func (r *DiagnosticReporter) printHints(hints []string) {
	for _, hint := range hints {
		fmt.Fprintf(os.Stderr, "  Hint: %s\n", hint)
	}
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

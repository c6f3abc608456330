package models

import "fmt"

// ErrorType classifies generator failures
type ErrorType int

const (
	ErrorTypeDirectiveSyntax ErrorType = iota // malformed overwrites:: directive
	ErrorTypeUnresolvableTarget                // target type name cannot be determined
	ErrorTypeEmptySet                          // no method qualifies for the interface
	ErrorTypeGeneration                        // rendering or formatting failed
	ErrorTypeFileSystem                        // reading or writing files failed
)

// GeneratorError represents an error that occurred while processing one
// generate directive. Failures are local to their invocation: one bad block
// never corrupts processing of other packages.
type GeneratorError struct {
	Type    ErrorType // type of error
	File    string    // file where the error occurred
	Line    int       // line number where the error occurred
	Message string    // error message
	Cause   error     // underlying error cause
}

// Error implements the error interface
func (e *GeneratorError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error cause
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

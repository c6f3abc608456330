// Package errors defines the rich error values shared by the directive
// parser and the CLI reporter.
package errors

import (
	"fmt"
	"strings"
)

// Code represents the kind of failure
type Code int

const (
	UnknownCode Code = iota
	SyntaxCode
	UnresolvableTargetCode
	EmptySetCode
	GenerationCode
	FileSystemCode
)

// String returns the string representation of the code
func (c Code) String() string {
	switch c {
	case SyntaxCode:
		return "SyntaxError"
	case UnresolvableTargetCode:
		return "UnresolvableTargetError"
	case EmptySetCode:
		return "EmptySetError"
	case GenerationCode:
		return "GenerationError"
	case FileSystemCode:
		return "FileSystemError"
	default:
		return "UnknownError"
	}
}

// DirectiveError is an error tied to a position in user source. The CLI
// reporter renders its location, message and suggestions.
type DirectiveError struct {
	Code        Code
	Message     string
	File        string
	Line        int
	Column      int
	Cause       error
	Suggestions []string
}

// Error implements the error interface
func (e *DirectiveError) Error() string {
	loc := e.location()
	if loc == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", loc, e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *DirectiveError) Unwrap() error {
	return e.Cause
}

func (e *DirectiveError) location() string {
	if e.File == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.File)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ":%d", e.Column)
		}
	}
	return b.String()
}

// NewSyntaxError creates a DirectiveError for a malformed directive
func NewSyntaxError(message, file string, line, column int, suggestions ...string) *DirectiveError {
	return &DirectiveError{
		Code:        SyntaxCode,
		Message:     message,
		File:        file,
		Line:        line,
		Column:      column,
		Suggestions: suggestions,
	}
}

// WrapWithOperation wraps an error with a short operation description,
// keeping the original error in the chain.
func WrapWithOperation(operation, subject string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s %s: %w", operation, subject, err)
}

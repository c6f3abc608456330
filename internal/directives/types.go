package directives

import (
	"fmt"
	"strings"

	"github.com/toyz/overwrites/internal/models"
)

// Prefix is the comment prefix shared by all directives
const Prefix = "overwrites::"

// Kind represents the type of directive
type Kind int

const (
	GenerateKind Kind = iota
	SkipKind
	OverwriteKind
)

// String returns the string representation of the directive kind
func (k Kind) String() string {
	switch k {
	case GenerateKind:
		return "generate"
	case SkipKind:
		return "skip"
	case OverwriteKind:
		return "overwrite"
	default:
		return "unknown"
	}
}

// ParseKind converts a directive name to its Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "generate":
		return GenerateKind, nil
	case "skip":
		return SkipKind, nil
	case "overwrite":
		return OverwriteKind, nil
	default:
		return 0, fmt.Errorf("unknown directive: %s", s)
	}
}

// Directive is a fully parsed overwrites:: comment directive
type Directive struct {
	Kind     Kind                   // directive kind
	Options  models.GenerateOptions // populated for generate directives only
	Location models.SourceLocation  // position of the comment in source
	Raw      string                 // original comment text
}

// Marker returns the marker kind for skip and overwrite directives
func (d *Directive) Marker() (models.MarkerKind, bool) {
	switch d.Kind {
	case SkipKind:
		return models.MarkerSkip, true
	case OverwriteKind:
		return models.MarkerOverwrite, true
	default:
		return 0, false
	}
}

// IsDirective reports whether a comment line carries an overwrites:: directive.
// Both "//overwrites::..." and "// overwrites::..." are accepted.
func IsDirective(comment string) bool {
	content := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
	return strings.HasPrefix(content, Prefix)
}

// splitDirective strips the comment and directive prefixes and separates the
// directive name from its argument list.
func splitDirective(comment string) (name, args string, err error) {
	content := strings.TrimSpace(comment)
	if !strings.HasPrefix(content, "//") {
		return "", "", fmt.Errorf("directive must start with '//'")
	}
	content = strings.TrimSpace(strings.TrimPrefix(content, "//"))
	if !strings.HasPrefix(content, Prefix) {
		return "", "", fmt.Errorf("directive must contain '%s' prefix", Prefix)
	}
	content = strings.TrimPrefix(content, Prefix)

	fields := strings.Fields(content)
	if len(fields) == 0 {
		return "", "", fmt.Errorf("empty directive")
	}
	name = fields[0]
	args = strings.TrimSpace(strings.TrimPrefix(content, name))
	return name, args, nil
}

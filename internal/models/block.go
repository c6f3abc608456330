package models

import "go/ast"

// ImplBlock is the method set of one annotated type, collected in declaration
// order across the package's files. It is the single input entity of an
// invocation and is never mutated after parsing.
type ImplBlock struct {
	TargetType string          // simple name of the annotated type
	TypeParams *ast.FieldList  // type parameters of the target type, nil when not generic
	Options    GenerateOptions // parsed arguments of the generate directive
	Methods    []MethodDecl    // ordered method set of the target type
	Location   SourceLocation  // position of the annotated type declaration
	FileName   string          // file containing the generate directive
}

// Policy selects which methods qualify by default
type Policy int

const (
	// PolicyInclude promotes every exported method unless it carries a skip
	// marker. This is the default when no arguments are given.
	PolicyInclude Policy = iota
	// PolicyExclude promotes only exported methods carrying an overwrite marker.
	PolicyExclude
)

// String returns the directive literal that selects the policy
func (p Policy) String() string {
	if p == PolicyExclude {
		return "skip"
	}
	return "overwrite"
}

// GenerateOptions is the parsed configuration of one generate directive.
// Immutable once parsed; its lifetime is a single invocation.
type GenerateOptions struct {
	DefaultPolicy Policy // include or exclude by default
	Passthrough   bool   // also emit a forwarding implementation
	InterfaceName string // explicit interface name, empty means derive from the target
}

// Package directives parses overwrites:: comment directives: the generate
// directive with its argument grammar, and the skip/overwrite method markers.
package directives

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/overwrites/internal/errors"
	"github.com/toyz/overwrites/internal/models"
)

// argumentList is the participle grammar for the generate argument list:
// comma-separated key/value pairs or bare flags, with a tolerated trailing
// comma. Example: default = "skip", name = "CounterShadow", passthrough
type argumentList struct {
	Args []argument `parser:"(@@ (',' @@)* ','?)?"`
}

type argument struct {
	Pos   lexer.Position
	Key   string  `parser:"@Ident"`
	Value *string `parser:"('=' @String)?"`
}

// Parser parses overwrites:: directives into Directive values
type Parser struct {
	args *participle.Parser[argumentList]
}

// NewParser creates a directive parser
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Punct", Pattern: `[=,]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	return &Parser{
		args: participle.MustBuild[argumentList](
			participle.Lexer(lex),
			participle.Elide("Whitespace"),
		),
	}
}

// Parse parses a single directive comment. Marker directives take no
// arguments; the generate directive accepts the argument grammar above.
func (p *Parser) Parse(comment string, location models.SourceLocation) (*Directive, error) {
	name, args, err := splitDirective(comment)
	if err != nil {
		return nil, p.syntaxError(location, err.Error())
	}

	kind, err := ParseKind(name)
	if err != nil {
		return nil, p.syntaxError(location, fmt.Sprintf("unknown directive '%s%s'", Prefix, name))
	}

	directive := &Directive{
		Kind:     kind,
		Location: location,
		Raw:      comment,
	}

	if kind != GenerateKind {
		if args != "" {
			return nil, p.syntaxError(location, fmt.Sprintf("directive '%s%s' takes no arguments, got '%s'", Prefix, name, args))
		}
		return directive, nil
	}

	options, err := p.parseOptions(args, location)
	if err != nil {
		return nil, err
	}
	directive.Options = options
	return directive, nil
}

// parseOptions parses the generate argument list into GenerateOptions.
// Token order is irrelevant; each token may appear at most once.
func (p *Parser) parseOptions(args string, location models.SourceLocation) (models.GenerateOptions, error) {
	options := models.GenerateOptions{DefaultPolicy: models.PolicyInclude}
	if strings.TrimSpace(args) == "" {
		return options, nil
	}

	list, err := p.args.ParseString(location.File, args)
	if err != nil {
		return options, p.syntaxError(location, fmt.Sprintf("invalid argument list '%s': %v", args, err))
	}

	seen := make(map[string]bool)
	for _, arg := range list.Args {
		if seen[arg.Key] {
			return options, p.syntaxError(location, fmt.Sprintf("duplicate argument '%s'", arg.Key))
		}
		seen[arg.Key] = true

		switch arg.Key {
		case "default":
			if arg.Value == nil {
				return options, p.syntaxError(location, "argument 'default' requires a value",
					`use default = "overwrite" or default = "skip"`)
			}
			switch unquote(*arg.Value) {
			case "overwrite":
				options.DefaultPolicy = models.PolicyInclude
			case "skip":
				options.DefaultPolicy = models.PolicyExclude
			default:
				return options, p.syntaxError(location, fmt.Sprintf("invalid 'default' value %s, expected \"overwrite\" or \"skip\"", *arg.Value))
			}
		case "name":
			if arg.Value == nil {
				return options, p.syntaxError(location, "argument 'name' requires a value",
					`use name = "MyInterface"`)
			}
			value := unquote(*arg.Value)
			if !token.IsIdentifier(value) {
				return options, p.syntaxError(location, fmt.Sprintf("invalid 'name' value %s, expected a Go identifier", *arg.Value))
			}
			options.InterfaceName = value
		case "passthrough":
			if arg.Value != nil {
				return options, p.syntaxError(location, "argument 'passthrough' is a bare flag and takes no value")
			}
			options.Passthrough = true
		default:
			return options, p.syntaxError(location, fmt.Sprintf("unknown argument '%s'", arg.Key),
				"supported arguments: default, name, passthrough")
		}
	}

	return options, nil
}

func (p *Parser) syntaxError(location models.SourceLocation, message string, suggestions ...string) error {
	return errors.NewSyntaxError(message, location.File, location.Line, location.Column, suggestions...)
}

// unquote strips the surrounding quotes of a String token
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

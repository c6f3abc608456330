package directives

import (
	"strings"
	"testing"

	"github.com/toyz/overwrites/internal/models"
)

var testLocation = models.SourceLocation{File: "counter.go", Line: 10, Column: 1}

func TestParseGenerateDefaults(t *testing.T) {
	parser := NewParser()

	directive, err := parser.Parse("//overwrites::generate", testLocation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if directive.Kind != GenerateKind {
		t.Errorf("expected GenerateKind, got %v", directive.Kind)
	}
	if directive.Options.DefaultPolicy != models.PolicyInclude {
		t.Errorf("expected PolicyInclude by default, got %v", directive.Options.DefaultPolicy)
	}
	if directive.Options.Passthrough {
		t.Error("passthrough should default to false")
	}
	if directive.Options.InterfaceName != "" {
		t.Errorf("interface name should default to empty, got %q", directive.Options.InterfaceName)
	}
}

func TestParseGenerateArguments(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name string
		args string
		want models.GenerateOptions
	}{
		{"default overwrite", `default = "overwrite"`, models.GenerateOptions{DefaultPolicy: models.PolicyInclude}},
		{"default skip", `default = "skip"`, models.GenerateOptions{DefaultPolicy: models.PolicyExclude}},
		{"explicit name", `name = "CounterShadow"`, models.GenerateOptions{InterfaceName: "CounterShadow"}},
		{"passthrough flag", `passthrough`, models.GenerateOptions{Passthrough: true}},
		{"all three", `default = "skip", name = "Shadow", passthrough`,
			models.GenerateOptions{DefaultPolicy: models.PolicyExclude, InterfaceName: "Shadow", Passthrough: true}},
		{"order is irrelevant", `passthrough, name = "Shadow", default = "skip"`,
			models.GenerateOptions{DefaultPolicy: models.PolicyExclude, InterfaceName: "Shadow", Passthrough: true}},
		{"trailing comma tolerated", `passthrough,`, models.GenerateOptions{Passthrough: true}},
		{"no spaces around equals", `default="skip",name="S"`,
			models.GenerateOptions{DefaultPolicy: models.PolicyExclude, InterfaceName: "S"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directive, err := parser.Parse("//overwrites::generate "+tt.args, testLocation)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if directive.Options != tt.want {
				t.Errorf("got %+v, want %+v", directive.Options, tt.want)
			}
		})
	}
}

func TestParseGenerateErrors(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name    string
		args    string
		wantMsg string
	}{
		{"unknown argument", `frobnicate`, "unknown argument"},
		{"bad default value", `default = "maybe"`, "invalid 'default' value"},
		{"default without value", `default`, "requires a value"},
		{"name without value", `name`, "requires a value"},
		{"name not an identifier", `name = "not an ident"`, "expected a Go identifier"},
		{"passthrough with value", `passthrough = "yes"`, "bare flag"},
		{"duplicate default", `default = "skip", default = "overwrite"`, "duplicate argument 'default'"},
		{"duplicate name", `name = "A", name = "B"`, "duplicate argument 'name'"},
		{"duplicate passthrough", `passthrough, passthrough`, "duplicate argument 'passthrough'"},
		{"garbage", `== ,,`, "invalid argument list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse("//overwrites::generate "+tt.args, testLocation)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
			if !strings.Contains(err.Error(), "counter.go:10") {
				t.Errorf("error %q does not carry the directive location", err.Error())
			}
		})
	}
}

func TestParseMarkers(t *testing.T) {
	parser := NewParser()

	skip, err := parser.Parse("//overwrites::skip", testLocation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if marker, ok := skip.Marker(); !ok || marker != models.MarkerSkip {
		t.Errorf("expected MarkerSkip, got %v (ok=%v)", marker, ok)
	}

	overwrite, err := parser.Parse("// overwrites::overwrite", testLocation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if marker, ok := overwrite.Marker(); !ok || marker != models.MarkerOverwrite {
		t.Errorf("expected MarkerOverwrite, got %v (ok=%v)", marker, ok)
	}

	if _, err := parser.Parse("//overwrites::skip now", testLocation); err == nil {
		t.Error("marker directives must not accept arguments")
	}
}

func TestParseUnknownDirective(t *testing.T) {
	parser := NewParser()

	_, err := parser.Parse("//overwrites::ignore", testLocation)
	if err == nil {
		t.Fatal("expected an error for unknown directive")
	}
	if !strings.Contains(err.Error(), "unknown directive") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestIsDirective(t *testing.T) {
	tests := []struct {
		comment string
		want    bool
	}{
		{"//overwrites::generate", true},
		{"// overwrites::skip", true},
		{"//  overwrites::overwrite", true},
		{"// just a comment", false},
		{"//go:generate overwrites ./...", false},
		{"// overwrite the buffer before reuse", false},
	}

	for _, tt := range tests {
		if got := IsDirective(tt.comment); got != tt.want {
			t.Errorf("IsDirective(%q) = %v, want %v", tt.comment, got, tt.want)
		}
	}
}

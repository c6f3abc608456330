package parser

import (
	"strings"
	"testing"

	"github.com/toyz/overwrites/internal/models"
)

const counterSource = `package counter

// Counter counts things.
//overwrites::generate
type Counter struct {
	count int
}

// Tick advances the counter by one.
//overwrites::skip
func (c *Counter) Tick() {
	c.count++
}

// TickBy advances the counter by the given amount.
func (c *Counter) TickBy(amount int) {
	c.count += amount
}

func (c *Counter) reset() {
	c.count = 0
}
`

func TestParseSourceCollectsBlock(t *testing.T) {
	p := NewParser()

	blocks, err := p.ParseSource("counter.go", counterSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	block := blocks[0]
	if block.TargetType != "Counter" {
		t.Errorf("expected target Counter, got %s", block.TargetType)
	}
	if block.Options.DefaultPolicy != models.PolicyInclude {
		t.Errorf("expected default policy include, got %v", block.Options.DefaultPolicy)
	}
	if block.Location.Line == 0 {
		t.Error("block location is missing")
	}

	if len(block.Methods) != 3 {
		t.Fatalf("expected 3 methods, got %d", len(block.Methods))
	}

	// Declaration order is preserved.
	names := []string{block.Methods[0].Name, block.Methods[1].Name, block.Methods[2].Name}
	want := []string{"Tick", "TickBy", "reset"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("method %d: expected %s, got %s", i, want[i], names[i])
		}
	}

	tick := block.Methods[0]
	if !tick.Markers.Has(models.MarkerSkip) {
		t.Error("Tick should carry the skip marker")
	}
	if !tick.Exported {
		t.Error("Tick should be exported")
	}
	// The marker line is stripped, the doc line kept.
	if len(tick.Doc) != 1 || !strings.Contains(tick.Doc[0], "advances the counter") {
		t.Errorf("unexpected pruned doc: %v", tick.Doc)
	}

	if block.Methods[2].Exported {
		t.Error("reset should not be exported")
	}
}

func TestParseSourceGenerateArguments(t *testing.T) {
	p := NewParser()

	source := `package widget

//overwrites::generate default = "skip", name = "WidgetShadow", passthrough
type Widget struct{}

//overwrites::overwrite
func (w Widget) Render() string { return "" }
`
	blocks, err := p.ParseSource("widget.go", source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	block := blocks[0]

	if block.Options.DefaultPolicy != models.PolicyExclude {
		t.Errorf("expected exclude policy, got %v", block.Options.DefaultPolicy)
	}
	if block.Options.InterfaceName != "WidgetShadow" {
		t.Errorf("expected name WidgetShadow, got %q", block.Options.InterfaceName)
	}
	if !block.Options.Passthrough {
		t.Error("expected passthrough to be set")
	}
	if !block.Methods[0].Markers.Has(models.MarkerOverwrite) {
		t.Error("Render should carry the overwrite marker")
	}
}

func TestParseSourceGenericReceivers(t *testing.T) {
	p := NewParser()

	source := `package stack

//overwrites::generate
type Stack[T any] struct {
	items []T
}

func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

func (s *Stack[T]) Len() int { return len(s.items) }
`
	blocks, err := p.ParseSource("stack.go", source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	block := blocks[0]

	if block.TypeParams == nil {
		t.Fatal("expected type parameters on the block")
	}
	if len(block.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(block.Methods))
	}
}

func TestParseSourceIgnoresUnannotatedTypes(t *testing.T) {
	p := NewParser()

	source := `package mixed

//overwrites::generate
type Annotated struct{}

func (a Annotated) Touch() {}

type Plain struct{}

func (p Plain) Touch() {}
`
	blocks, err := p.ParseSource("mixed.go", source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if len(blocks[0].Methods) != 1 {
		t.Errorf("methods of unannotated types must not be collected, got %d", len(blocks[0].Methods))
	}
}

func TestParseSourceAliasTarget(t *testing.T) {
	p := NewParser()

	source := `package alias

//overwrites::generate
type Numbers = []int
`
	_, err := p.ParseSource("alias.go", source)
	if err == nil {
		t.Fatal("expected an error for an alias target")
	}
	genErr, ok := err.(*models.GeneratorError)
	if !ok {
		t.Fatalf("expected GeneratorError, got %T", err)
	}
	if genErr.Type != models.ErrorTypeUnresolvableTarget {
		t.Errorf("expected ErrorTypeUnresolvableTarget, got %v", genErr.Type)
	}
}

func TestParseSourceGroupedDeclaration(t *testing.T) {
	p := NewParser()

	source := `package grouped

//overwrites::generate
type (
	First  struct{}
	Second struct{}
)
`
	_, err := p.ParseSource("grouped.go", source)
	if err == nil {
		t.Fatal("expected an error for a grouped declaration")
	}
	if !strings.Contains(err.Error(), "no single target") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestParseSourceMultipleBlocks(t *testing.T) {
	p := NewParser()

	source := `package multi

//overwrites::generate
type First struct{}

func (f First) Touch() {}

//overwrites::generate passthrough
type Second struct{}

func (s Second) Touch() {}
`
	blocks, err := p.ParseSource("multi.go", source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].TargetType != "First" || blocks[1].TargetType != "Second" {
		t.Errorf("blocks out of order: %s, %s", blocks[0].TargetType, blocks[1].TargetType)
	}
	if !blocks[1].Options.Passthrough {
		t.Error("second block should have passthrough set")
	}
}

func TestParseSourceMarkerOnType(t *testing.T) {
	p := NewParser()

	source := `package bad

//overwrites::skip
type Thing struct{}
`
	_, err := p.ParseSource("bad.go", source)
	if err == nil {
		t.Fatal("expected an error for a marker on a type declaration")
	}
	if !strings.Contains(err.Error(), "belongs on a method") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestParseSourceBadDirective(t *testing.T) {
	p := NewParser()

	source := `package bad

//overwrites::generate default = "maybe"
type Thing struct{}
`
	_, err := p.ParseSource("bad.go", source)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if !strings.Contains(err.Error(), "bad.go:3") {
		t.Errorf("error should point at the directive line: %v", err)
	}
}

func TestReceiverBaseNameForms(t *testing.T) {
	p := NewParser()

	source := `package recv

//overwrites::generate
type Pair[K comparable, V any] struct{}

func (p Pair[K, V]) Keys() []K { return nil }

func (p *Pair[K, V]) Set(k K, v V) {}
`
	blocks, err := p.ParseSource("recv.go", source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks[0].Methods) != 2 {
		t.Fatalf("expected both value and pointer generic receivers to match, got %d", len(blocks[0].Methods))
	}
}

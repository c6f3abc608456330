package internal

import (
	"strings"
	"testing"

	"github.com/toyz/overwrites/internal/classifier"
	"github.com/toyz/overwrites/internal/generator"
	"github.com/toyz/overwrites/internal/parser"
)

// TestInterfaceGenerationIntegration tests the complete generation workflow
// from annotated source to a formatted generated file.
func TestInterfaceGenerationIntegration(t *testing.T) {
	source := `package services

import "context"

//overwrites::generate passthrough
type UserService struct {
	repo Repository
}

func (s *UserService) GetUser(id int) (*User, error) {
	return s.repo.FindByID(id)
}

func (s *UserService) CreateUser(user User) (*User, error) {
	return s.repo.Create(user)
}

func (s *UserService) ListUsers(ctx context.Context, limit int) ([]User, error) {
	return s.repo.List(ctx, limit)
}

//overwrites::skip
func (s *UserService) Ping() error {
	return nil
}

func (s *UserService) privateMethod() string {
	return "private"
}

//overwrites::generate name = "AuditSink"
type AuditLog struct{}

func (a *AuditLog) Record(event string) {}`

	// Parse the source
	p := parser.NewParser()
	blocks, err := p.ParseSource("services.go", source)
	if err != nil {
		t.Fatalf("failed to parse source: %v", err)
	}

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}

	// Classify and render each block, then assemble the file
	g := generator.NewGenerator(p.FileSet())
	var artifacts []*generator.BlockArtifact
	for _, block := range blocks {
		artifact, err := g.RenderBlock(block, classifier.Qualify(block.Options, block.Methods))
		if err != nil {
			t.Fatalf("failed to render block for %s: %v", block.TargetType, err)
		}
		artifacts = append(artifacts, artifact)
	}

	file, err := g.GenerateFile("services", artifacts)
	if err != nil {
		t.Fatalf("failed to generate file: %v", err)
	}

	// Verify the generated code contains expected elements
	expectedElements := []string{
		"// Code generated by overwrites. DO NOT EDIT.",
		"package services",
		"type UserServiceOverwrites interface {",
		"GetUser(id int) (*User, error)",
		"CreateUser(user User) (*User, error)",
		"ListUsers(ctx context.Context, limit int) ([]User, error)",
		"type UserServicePassthrough UserService",
		"func (s *UserServicePassthrough) GetUser(id int) (*User, error) {",
		"var _ UserServiceOverwrites = (*UserServicePassthrough)(nil)",
		"type AuditSink interface {",
		"Record(event string)",
	}

	for _, expected := range expectedElements {
		if !strings.Contains(file.Content, expected) {
			t.Errorf("generated file missing expected element: %s\n\nGenerated code:\n%s", expected, file.Content)
		}
	}

	// Skip-marked and unexported methods never reach the output
	if strings.Contains(file.Content, "Ping") {
		t.Errorf("skip-marked method should not be included")
	}
	if strings.Contains(file.Content, "privateMethod") {
		t.Errorf("unexported method should not be included")
	}

	// Verify interface methods land inside the interface body
	userService := extractInterfaceDefinition(file.Content, "UserServiceOverwrites")
	if userService == "" {
		t.Errorf("could not find UserServiceOverwrites definition")
	} else {
		for _, method := range []string{"GetUser", "CreateUser", "ListUsers"} {
			if !strings.Contains(userService, method) {
				t.Errorf("UserServiceOverwrites missing method: %s", method)
			}
		}
	}
}

// extractInterfaceDefinition extracts the interface definition from generated code
func extractInterfaceDefinition(code, interfaceName string) string {
	start := strings.Index(code, "type "+interfaceName+" interface {")
	if start == -1 {
		return ""
	}

	// Find the matching closing brace
	braceCount := 0
	i := start
	for i < len(code) {
		if code[i] == '{' {
			braceCount++
		} else if code[i] == '}' {
			braceCount--
			if braceCount == 0 {
				return code[start : i+1]
			}
		}
		i++
	}

	return ""
}

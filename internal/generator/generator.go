// Package generator assembles the output declarations for annotated blocks:
// the interface projection of the qualifying methods and, when requested,
// the passthrough implementation carrying the original method bodies.
package generator

import (
	"fmt"
	"go/token"
	"strings"
	"text/template"

	"github.com/toyz/overwrites/internal/models"
	"github.com/toyz/overwrites/internal/utils"
)

// GeneratedFileName is the name of the per-package output file
const GeneratedFileName = "autogen_overwrites.go"

var interfaceTemplate = template.Must(template.New("interface").Parse(
	`// {{.Name}} is the generated overwrite interface for {{.Target}}.
type {{.Name}}{{.TypeParams}} interface {
{{- range .Methods}}
{{- range .Doc}}
	{{.}}
{{- end}}
	{{.Signature}}
{{- end}}
}
`))

var passthroughTemplate = template.Must(template.New("passthrough").Parse(
	`// {{.Name}} forwards the {{.Interface}} methods of {{.Target}} with their
// original bodies. Wrap a value in it to satisfy {{.Interface}} without
// changing behavior.
type {{.Name}}{{.TypeParams}} {{.Target}}{{.TypeArgs}}

{{range .Methods}}
{{- range .Doc}}
{{.}}
{{end -}}
func {{.Receiver}} {{.Signature}} {{.Body}}

{{end}}
{{- if .Guard}}var _ {{.Interface}} = (*{{.Name}})(nil)
{{end}}`))

type interfaceData struct {
	Name       string
	Target     string
	TypeParams string
	Methods    []methodData
}

type passthroughData struct {
	Name       string
	Interface  string
	Target     string
	TypeParams string
	TypeArgs   string
	Guard      bool
	Methods    []methodData
}

type methodData struct {
	Doc       []string
	Signature string
	Receiver  string
	Body      string
}

// BlockArtifact holds the rendered declarations for one annotated block
type BlockArtifact struct {
	InterfaceName   string
	PassthroughName string // empty when passthrough was not requested
	Source          string
}

// Generator renders blocks into Go source. It must be constructed with the
// token.FileSet the blocks were parsed against so method bodies keep their
// original layout.
type Generator struct {
	fileSet *token.FileSet
}

// NewGenerator creates a new declaration generator
func NewGenerator(fileSet *token.FileSet) *Generator {
	return &Generator{fileSet: fileSet}
}

// RenderBlock renders the declarations for one block given its qualifying
// method sequence. The sequence must be the classifier's output; it is used
// unchanged for both the interface and the passthrough implementation.
func (g *Generator) RenderBlock(block *models.ImplBlock, qualifying []models.MethodDecl) (*BlockArtifact, error) {
	interfaceName, err := ResolveInterfaceName(block)
	if err != nil {
		return nil, err
	}

	if len(qualifying) == 0 {
		return nil, &models.GeneratorError{
			Type: models.ErrorTypeEmptySet,
			File: block.FileName,
			Line: block.Location.Line,
			Message: fmt.Sprintf("must overwrite at least one method: no exported method of %s qualifies (block at %s)",
				block.TargetType, block.Location),
		}
	}

	typeParams, err := typeParamList(g.fileSet, block.TypeParams)
	if err != nil {
		return nil, g.generationError(block, err)
	}

	var source strings.Builder

	interfaceSection, err := g.renderInterface(block, interfaceName, typeParams, qualifying)
	if err != nil {
		return nil, g.generationError(block, err)
	}
	source.WriteString(interfaceSection)

	artifact := &BlockArtifact{InterfaceName: interfaceName}

	if block.Options.Passthrough {
		artifact.PassthroughName = block.TargetType + PassthroughSuffix
		passthroughSection, err := g.renderPassthrough(block, interfaceName, artifact.PassthroughName, typeParams, qualifying)
		if err != nil {
			return nil, g.generationError(block, err)
		}
		source.WriteString("\n")
		source.WriteString(passthroughSection)
	}

	artifact.Source = source.String()
	return artifact, nil
}

// renderInterface builds the interface declaration from the qualifying
// signatures. Bodies are never copied; pruned doc comments are kept.
func (g *Generator) renderInterface(block *models.ImplBlock, name, typeParams string, qualifying []models.MethodDecl) (string, error) {
	data := interfaceData{
		Name:       name,
		Target:     block.TargetType,
		TypeParams: typeParams,
	}
	for _, method := range qualifying {
		signature, err := methodSignature(g.fileSet, method.Decl)
		if err != nil {
			return "", err
		}
		data.Methods = append(data.Methods, methodData{
			Doc:       method.Doc,
			Signature: signature,
		})
	}

	var buf strings.Builder
	if err := interfaceTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("interface template failed: %w", err)
	}
	return buf.String(), nil
}

// renderPassthrough builds the forwarding implementation: a defined type over
// the target plus the qualifying methods with their bodies copied verbatim,
// re-based onto the new type. Generic targets get no satisfaction guard since
// a var declaration cannot be generic.
func (g *Generator) renderPassthrough(block *models.ImplBlock, interfaceName, passthroughName, typeParams string, qualifying []models.MethodDecl) (string, error) {
	data := passthroughData{
		Name:       passthroughName,
		Interface:  interfaceName,
		Target:     block.TargetType,
		TypeParams: typeParams,
		TypeArgs:   typeArgList(block.TypeParams),
		Guard:      typeParams == "",
	}

	for _, method := range qualifying {
		signature, err := methodSignature(g.fileSet, method.Decl)
		if err != nil {
			return "", err
		}
		recv, err := methodReceiver(g.fileSet, method.Decl)
		if err != nil {
			return "", err
		}
		body, err := printNode(g.fileSet, method.Decl.Body)
		if err != nil {
			return "", err
		}
		data.Methods = append(data.Methods, methodData{
			Doc:       method.Doc,
			Signature: signature,
			Receiver:  recv.String(passthroughName),
			Body:      body,
		})
	}

	var buf strings.Builder
	if err := passthroughTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("passthrough template failed: %w", err)
	}
	return buf.String(), nil
}

// GenerateFile assembles the artifacts of one package into a formatted
// generated file. Artifacts appear in block declaration order.
func (g *Generator) GenerateFile(packageName string, artifacts []*BlockArtifact) (*models.GeneratedFile, error) {
	var buf strings.Builder
	buf.WriteString("// Code generated by overwrites. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", packageName)

	for i, artifact := range artifacts {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(artifact.Source)
	}

	formatted, err := utils.FormatGoCodeString(buf.String())
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeGeneration,
			Message: fmt.Sprintf("generated code for package %s does not format", packageName),
			Cause:   err,
		}
	}

	file := &models.GeneratedFile{
		PackageName: packageName,
		Content:     formatted,
	}
	for _, artifact := range artifacts {
		file.Interfaces = append(file.Interfaces, artifact.InterfaceName)
	}
	return file, nil
}

func (g *Generator) generationError(block *models.ImplBlock, err error) error {
	return &models.GeneratorError{
		Type:    models.ErrorTypeGeneration,
		File:    block.FileName,
		Line:    block.Location.Line,
		Message: fmt.Sprintf("failed to render declarations for %s", block.TargetType),
		Cause:   err,
	}
}

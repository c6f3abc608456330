package generator

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
	"strings"
)

// printNode renders an AST node with the file set it was parsed against,
// preserving the original line layout of bodies.
func printNode(fileSet *token.FileSet, node ast.Node) (string, error) {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fileSet, node); err != nil {
		return "", fmt.Errorf("failed to print node: %w", err)
	}
	return buf.String(), nil
}

// methodSignature renders a method's name and signature without the receiver,
// e.g. "TickBy(n int) error".
func methodSignature(fileSet *token.FileSet, decl *ast.FuncDecl) (string, error) {
	funcType, err := printNode(fileSet, decl.Type)
	if err != nil {
		return "", err
	}
	// printer renders a FuncType as "func(...) ...".
	return decl.Name.Name + strings.TrimPrefix(funcType, "func"), nil
}

// typeParamList renders type parameter declarations as "[T any, U comparable]".
// Returns "" for non-generic targets.
func typeParamList(fileSet *token.FileSet, params *ast.FieldList) (string, error) {
	if params == nil || len(params.List) == 0 {
		return "", nil
	}
	var parts []string
	for _, field := range params.List {
		names := make([]string, 0, len(field.Names))
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
		constraint, err := printNode(fileSet, field.Type)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.Join(names, ", ")+" "+constraint)
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// typeArgList renders type parameter usage as "[T, U]" for instantiating the
// target type. Returns "" for non-generic targets.
func typeArgList(params *ast.FieldList) string {
	if params == nil || len(params.List) == 0 {
		return ""
	}
	var names []string
	for _, field := range params.List {
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// receiver describes the original receiver of a method declaration
type receiver struct {
	name    string // binding name, may be empty
	pointer bool
	args    string // instantiation args of a generic receiver, e.g. "[T]"
}

// methodReceiver inspects a method's receiver field
func methodReceiver(fileSet *token.FileSet, decl *ast.FuncDecl) (receiver, error) {
	var r receiver
	if decl.Recv == nil || len(decl.Recv.List) == 0 {
		return r, fmt.Errorf("declaration %s has no receiver", decl.Name.Name)
	}

	field := decl.Recv.List[0]
	if len(field.Names) > 0 {
		r.name = field.Names[0].Name
	}

	expr := field.Type
	if star, ok := expr.(*ast.StarExpr); ok {
		r.pointer = true
		expr = star.X
	}

	switch t := expr.(type) {
	case *ast.IndexExpr:
		arg, err := printNode(fileSet, t.Index)
		if err != nil {
			return r, err
		}
		r.args = "[" + arg + "]"
	case *ast.IndexListExpr:
		var args []string
		for _, index := range t.Indices {
			arg, err := printNode(fileSet, index)
			if err != nil {
				return r, err
			}
			args = append(args, arg)
		}
		r.args = "[" + strings.Join(args, ", ") + "]"
	}
	return r, nil
}

// String renders the receiver clause for a re-based type, e.g. "(c *CounterPassthrough)"
func (r receiver) String(typeName string) string {
	var b strings.Builder
	b.WriteString("(")
	if r.name != "" {
		b.WriteString(r.name)
		b.WriteString(" ")
	}
	if r.pointer {
		b.WriteString("*")
	}
	b.WriteString(typeName)
	b.WriteString(r.args)
	b.WriteString(")")
	return b.String()
}

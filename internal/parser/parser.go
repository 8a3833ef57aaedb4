// Package parser extracts plugin entry-point metadata from Go source
// packages by walking their ASTs for plugen annotations.
package parser

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/printer"
	"go/token"
	"sort"
	"strings"

	"github.com/plugen/plugen/internal/annotations"
	"github.com/plugen/plugen/internal/models"
)

// Parser discovers annotated entry points in Go packages
type Parser struct {
	fileSet     *token.FileSet
	annotations *annotations.Parser
}

// NewParser creates a new entry-point parser
func NewParser() *Parser {
	return &Parser{
		fileSet:     token.NewFileSet(),
		annotations: annotations.NewParser(),
	}
}

// ParseSource parses source code from a string, used by tests
func (p *Parser) ParseSource(filename, source string) (*models.PackageMetadata, error) {
	file, err := goparser.ParseFile(p.fileSet, filename, source, goparser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	metadata := &models.PackageMetadata{
		PackageName: file.Name.Name,
		PackagePath: "./",
	}

	files := map[string]*ast.File{filename: file}
	if err := p.extractEntryPoints(files, metadata); err != nil {
		return nil, err
	}

	return metadata, nil
}

// ParseDirectory scans the Go package in the given directory and extracts
// all annotated entry points and their methods.
func (p *Parser) ParseDirectory(path string) (*models.PackageMetadata, error) {
	pkgs, err := goparser.ParseDir(p.fileSet, path, nil, goparser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory %s: %w", path, err)
	}

	// Test packages are scanned alongside the main package but entry
	// points only ever live in the main one
	for name := range pkgs {
		if strings.HasSuffix(name, "_test") {
			delete(pkgs, name)
		}
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages found in directory %s", path)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found in directory %s", path)
	}

	var pkg *ast.Package
	var packageName string
	for name, astPkg := range pkgs {
		pkg = astPkg
		packageName = name
	}

	metadata := &models.PackageMetadata{
		PackageName: packageName,
		PackagePath: path,
	}

	if err := p.extractEntryPoints(pkg.Files, metadata); err != nil {
		return nil, err
	}

	return metadata, nil
}

// extractEntryPoints walks the files twice: first collecting annotated
// types, then attaching annotated methods to them. Files are visited in
// name order so discovery order is deterministic.
func (p *Parser) extractEntryPoints(files map[string]*ast.File, metadata *models.PackageMetadata) error {
	fileNames := make([]string, 0, len(files))
	for name := range files {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)

	byStruct := make(map[string]*models.EntryPointMetadata)
	var order []string

	for _, fileName := range fileNames {
		file := files[fileName]
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}

			annotation, err := p.findAnnotation(genDecl.Doc, fileName, annotations.EntryPointAnnotation)
			if err != nil {
				return err
			}
			if annotation == nil {
				continue
			}

			typeSpec, ok := genDecl.Specs[0].(*ast.TypeSpec)
			if !ok {
				continue
			}
			if _, ok := typeSpec.Type.(*ast.StructType); !ok {
				return &models.GeneratorError{
					Type:    models.ErrorTypeValidation,
					File:    fileName,
					Line:    annotation.Location.Line,
					Message: fmt.Sprintf("entrypoint annotation on non-struct type %s", typeSpec.Name.Name),
					Suggestions: []string{
						"Apply //plugen::entrypoint to a struct type declaration",
					},
				}
			}

			structName := typeSpec.Name.Name
			if existing, exists := p.lookupByName(byStruct, annotation.Name); exists {
				return &models.GeneratorError{
					Type:    models.ErrorTypeValidation,
					File:    fileName,
					Line:    annotation.Location.Line,
					Message: fmt.Sprintf("duplicate entry point name %q", annotation.Name),
					Suggestions: []string{
						"Entry point names must be unique within a plugin",
					},
					Context: map[string]interface{}{
						"existing_type":    existing.StructName,
						"conflicting_type": structName,
					},
				}
			}

			pos := p.fileSet.Position(genDecl.Pos())
			byStruct[structName] = &models.EntryPointMetadata{
				Name:        annotation.Name,
				StructName:  structName,
				PackageName: metadata.PackageName,
				PackageDir:  metadata.PackagePath,
				Methods:     make(map[string]models.MethodMetadata),
				FileName:    fileName,
				Line:        pos.Line,
			}
			order = append(order, structName)
		}
	}

	for _, fileName := range fileNames {
		file := files[fileName]
		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok || funcDecl.Recv == nil {
				continue
			}

			annotation, err := p.findAnnotation(funcDecl.Doc, fileName, annotations.MethodAnnotation)
			if err != nil {
				return err
			}
			if annotation == nil {
				continue
			}

			receiver := receiverTypeName(funcDecl.Recv)
			entryPoint, exists := byStruct[receiver]
			if !exists {
				// Annotated method on a type that is not an entry
				// point, silently ignored like any other method
				continue
			}

			if _, dup := entryPoint.Methods[annotation.Name]; dup {
				return &models.GeneratorError{
					Type:    models.ErrorTypeValidation,
					File:    fileName,
					Line:    annotation.Location.Line,
					Message: fmt.Sprintf("duplicate entry point method name %q on %s", annotation.Name, receiver),
					Suggestions: []string{
						"Method names must be unique within an entry point",
					},
				}
			}

			pos := p.fileSet.Position(funcDecl.Pos())
			entryPoint.Methods[annotation.Name] = models.MethodMetadata{
				Name:       annotation.Name,
				GoName:     funcDecl.Name.Name,
				ArgTypes:   p.parameterTypes(funcDecl.Type),
				ReturnType: p.returnType(funcDecl.Type),
				FileName:   fileName,
				Line:       pos.Line,
			}
			entryPoint.MethodOrder = append(entryPoint.MethodOrder, annotation.Name)
		}
	}

	for _, structName := range order {
		metadata.EntryPoints = append(metadata.EntryPoints, *byStruct[structName])
	}

	return nil
}

// findAnnotation scans a doc comment for a plugen annotation of the given
// kind. A plugen annotation of a different kind in the same doc comment is
// an error: annotations never stack.
func (p *Parser) findAnnotation(doc *ast.CommentGroup, fileName string, want annotations.AnnotationKind) (*annotations.ParsedAnnotation, error) {
	if doc == nil {
		return nil, nil
	}

	for _, comment := range doc.List {
		if !annotations.IsAnnotation(comment.Text) {
			continue
		}

		pos := p.fileSet.Position(comment.Pos())
		location := annotations.SourceLocation{
			File:   fileName,
			Line:   pos.Line,
			Column: pos.Column,
		}

		parsed, err := p.annotations.ParseAnnotation(comment.Text, location)
		if err != nil {
			return nil, &models.GeneratorError{
				Type:    models.ErrorTypeAnnotationSyntax,
				File:    fileName,
				Line:    pos.Line,
				Message: err.Error(),
				Cause:   err,
			}
		}

		if parsed.Kind != want {
			return nil, &models.GeneratorError{
				Type:    models.ErrorTypeAnnotationSyntax,
				File:    fileName,
				Line:    pos.Line,
				Message: fmt.Sprintf("unexpected %s annotation here, expected %s", parsed.Kind, want),
				Suggestions: []string{
					"Use //plugen::entrypoint on struct types and //plugen::method on their methods",
				},
			}
		}

		return parsed, nil
	}

	return nil, nil
}

func (p *Parser) lookupByName(byStruct map[string]*models.EntryPointMetadata, name string) (*models.EntryPointMetadata, bool) {
	for _, ep := range byStruct {
		if ep.Name == name {
			return ep, true
		}
	}
	return nil, false
}

// parameterTypes renders the parameter type descriptors in declaration
// order, expanding grouped parameters like (a, b string).
func (p *Parser) parameterTypes(funcType *ast.FuncType) []string {
	if funcType.Params == nil {
		return nil
	}

	var types []string
	for _, field := range funcType.Params.List {
		rendered := p.renderType(field.Type)
		count := len(field.Names)
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			types = append(types, rendered)
		}
	}
	return types
}

// returnType renders the return type descriptor: empty for none, the bare
// type for one result, a parenthesized tuple for multiple.
func (p *Parser) returnType(funcType *ast.FuncType) string {
	if funcType.Results == nil || len(funcType.Results.List) == 0 {
		return ""
	}

	var types []string
	for _, field := range funcType.Results.List {
		rendered := p.renderType(field.Type)
		count := len(field.Names)
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			types = append(types, rendered)
		}
	}

	if len(types) == 1 {
		return types[0]
	}
	return "(" + strings.Join(types, ", ") + ")"
}

// renderType prints an AST type expression back to source form
func (p *Parser) renderType(expr ast.Expr) string {
	var b strings.Builder
	if err := printer.Fprint(&b, p.fileSet, expr); err != nil {
		return ""
	}
	return b.String()
}

// receiverTypeName resolves the receiver struct name, stripping pointers
// and type parameters
func receiverTypeName(recv *ast.FieldList) string {
	if recv == nil || len(recv.List) == 0 {
		return ""
	}

	expr := recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

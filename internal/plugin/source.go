package plugin

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"os"
	"path/filepath"
	"sort"
)

// Func describes a top-level function declared in a plugin source file.
type Func struct {
	Name string
	// Params lists declared parameter names in order; unnamed parameters are "".
	Params   []string
	Variadic bool
}

// Source is the static view of a plugin source file. Building it never
// executes plugin code.
type Source struct {
	Path    string
	Package string
	Code    []byte
	Funcs   map[string]Func
}

// SyntaxError reports a plugin source file that does not parse.
type SyntaxError struct {
	File string
	Line int
	Msg  string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("Syntax error in %s: %s (line %d)", e.File, e.Msg, e.Line)
	}
	return fmt.Sprintf("Syntax error in %s: %s", e.File, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Inspect parses a plugin source file and records its package clause and
// top-level functions. Methods are ignored.
func Inspect(path string) (*Source, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Failed to read %s: %w", filepath.Base(path), err)
	}
	return InspectSource(path, code)
}

// InspectSource is Inspect for in-memory source.
func InspectSource(path string, code []byte) (*Source, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, code, parser.SkipObjectResolution)
	if err != nil {
		syntaxErr := &SyntaxError{File: filepath.Base(path), Msg: err.Error(), Err: err}
		var list scanner.ErrorList
		if errors.As(err, &list) && len(list) > 0 {
			syntaxErr.Msg = list[0].Msg
			syntaxErr.Line = list[0].Pos.Line
		}
		return nil, syntaxErr
	}

	source := &Source{
		Path:    path,
		Package: file.Name.Name,
		Code:    code,
		Funcs:   make(map[string]Func),
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil {
			continue
		}
		source.Funcs[fn.Name.Name] = describeFunc(fn)
	}

	return source, nil
}

// Has reports whether the source declares a top-level function with the given name.
func (s *Source) Has(name string) bool {
	_, ok := s.Funcs[name]
	return ok
}

// Missing returns the required names the source does not declare, sorted.
func (s *Source) Missing(required []string) []string {
	var missing []string
	for _, name := range required {
		if !s.Has(name) {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

func describeFunc(fn *ast.FuncDecl) Func {
	desc := Func{Name: fn.Name.Name}
	if fn.Type.Params == nil {
		return desc
	}
	for _, field := range fn.Type.Params.List {
		if _, ok := field.Type.(*ast.Ellipsis); ok {
			desc.Variadic = true
		}
		if len(field.Names) == 0 {
			desc.Params = append(desc.Params, "")
			continue
		}
		for _, ident := range field.Names {
			desc.Params = append(desc.Params, ident.Name)
		}
	}
	return desc
}

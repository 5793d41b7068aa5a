// Package savegen generates gamesave.Schema implementations from struct
// declarations.
//
// Every struct declared in a file named schema.go or schemas.go gets a
// Fields method written to <file>_save.go next to it. Exported fields are
// persisted unless tagged `save:"-"`; `save:"name"` overrides the blob name.
package savegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

// DefaultImportPath is the import path of the gamesave package used in
// generated code.
const DefaultImportPath = "github.com/example/game-save-demo/domain/gamesave"

var (
	ErrNoStructName   = errors.New("struct name is required")
	ErrNoSourceFile   = errors.New("source file is required")
	ErrStructNotFound = errors.New("struct not found in file")
	ErrDuplicateName  = errors.New("duplicate save name")
	ErrNoSchemas      = errors.New("no schemas found")
)

// typeConsts maps Go type names to gamesave field type constants.
var typeConsts = map[string]string{
	"int16":   "TypeInt16",
	"int32":   "TypeInt32",
	"int64":   "TypeInt64",
	"uint16":  "TypeUint16",
	"uint32":  "TypeUint32",
	"uint64":  "TypeUint64",
	"float32": "TypeFloat32",
	"float64": "TypeFloat64",
	"bool":    "TypeBool",
	"string":  "TypeText",
}

// FieldInfo is one persisted struct field.
type FieldInfo struct {
	GoName   string
	SaveName string
	GoType   string
	TypeName string // gamesave constant, e.g. TypeInt32
}

// StructInfo is a parsed schema struct.
type StructInfo struct {
	Name        string
	PackageName string
	Fields      []FieldInfo
	SourceFile  string
}

// Generator parses schema structs and writes their Fields methods.
type Generator struct {
	logFn      func(messages ...any)
	rootDir    string
	importPath string
}

// New returns a Generator scanning the current directory.
func New() *Generator {
	return &Generator{rootDir: ".", importPath: DefaultImportPath}
}

// SetLog sets the sink for warnings. Messages are discarded when unset.
func (g *Generator) SetLog(fn func(messages ...any)) {
	g.logFn = fn
}

// SetRootDir sets the directory Run scans.
func (g *Generator) SetRootDir(dir string) {
	g.rootDir = dir
}

// SetImportPath overrides the gamesave import path in generated files.
func (g *Generator) SetImportPath(path string) {
	g.importPath = path
}

func (g *Generator) log(messages ...any) {
	if g.logFn != nil {
		g.logFn(messages...)
	}
}

// ParseStruct reads structName from goFile.
func (g *Generator) ParseStruct(structName, goFile string) (StructInfo, error) {
	if structName == "" {
		return StructInfo{}, ErrNoStructName
	}
	if goFile == "" {
		return StructInfo{}, ErrNoSourceFile
	}

	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, goFile, nil, parser.ParseComments)
	if err != nil {
		return StructInfo{}, fmt.Errorf("failed to parse %s: %w", goFile, err)
	}

	st := findStruct(node, structName)
	if st == nil {
		return StructInfo{}, fmt.Errorf("%w: %s", ErrStructNotFound, structName)
	}
	return g.parseFields(structName, node.Name.Name, st)
}

func findStruct(node *ast.File, structName string) *ast.StructType {
	var found *ast.StructType
	ast.Inspect(node, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if ts, ok := n.(*ast.TypeSpec); ok && ts.Name.Name == structName {
			if st, ok := ts.Type.(*ast.StructType); ok {
				found = st
				return false
			}
		}
		return true
	})
	return found
}

func (g *Generator) parseFields(structName, pkg string, st *ast.StructType) (StructInfo, error) {
	info := StructInfo{Name: structName, PackageName: pkg}
	seen := make(map[string]string)

	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			continue // embedded
		}

		saveTag := ""
		if field.Tag != nil {
			raw, err := strconv.Unquote(field.Tag.Value)
			if err == nil {
				saveTag = reflect.StructTag(raw).Get("save")
			}
		}
		if saveTag == "-" {
			continue
		}

		goType := typeString(field.Type)
		for _, name := range field.Names {
			if !ast.IsExported(name.Name) {
				continue
			}

			saveName := name.Name
			if saveTag != "" && len(field.Names) == 1 {
				saveName = saveTag
			}
			if prev, dup := seen[saveName]; dup {
				return StructInfo{}, fmt.Errorf("%w: %s.%s and %s.%s both save as %q",
					ErrDuplicateName, structName, prev, structName, name.Name, saveName)
			}
			seen[saveName] = name.Name

			typeName, ok := typeConsts[goType]
			if !ok {
				typeName = "TypeUnsupported"
				g.log(fmt.Sprintf("Warning: unsupported type %s for field %s.%s; it is skipped on save and load. Add save:\"-\" to suppress.",
					goType, structName, name.Name))
			}

			info.Fields = append(info.Fields, FieldInfo{
				GoName:   name.Name,
				SaveName: saveName,
				GoType:   goType,
				TypeName: typeName,
			})
		}
	}
	return info, nil
}

func typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			return pkg.Name + "." + t.Sel.Name
		}
	case *ast.StarExpr:
		return "*" + typeString(t.X)
	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + typeString(t.Elt)
		}
		return "[...]" + typeString(t.Elt)
	case *ast.MapType:
		return "map[" + typeString(t.Key) + "]" + typeString(t.Value)
	}
	return fmt.Sprintf("%T", expr)
}

// Render returns the gofmt-ed generated source for infos.
func (g *Generator) Render(infos []StructInfo) ([]byte, error) {
	if len(infos) == 0 {
		return nil, ErrNoSchemas
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by savegen; DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", infos[0].PackageName)
	fmt.Fprintf(&buf, "import %q\n\n", g.importPath)

	qual := filepath.Base(g.importPath)
	for _, info := range infos {
		fmt.Fprintf(&buf, "// Fields implements %s.Schema.\n", qual)
		fmt.Fprintf(&buf, "func (m *%s) Fields() []%s.Field {\n", info.Name, qual)
		fmt.Fprintf(&buf, "\treturn []%s.Field{\n", qual)
		for _, f := range info.Fields {
			fmt.Fprintf(&buf, "\t\t{Name: %q, Type: %s.%s, Ptr: &m.%s},\n", f.SaveName, qual, f.TypeName, f.GoName)
		}
		buf.WriteString("\t}\n}\n\n")
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return out, nil
}

// GenerateForFile writes the Fields methods for infos to <sourceFile>_save.go.
func (g *Generator) GenerateForFile(infos []StructInfo, sourceFile string) error {
	src, err := g.Render(infos)
	if err != nil {
		return err
	}
	outName := strings.TrimSuffix(sourceFile, ".go") + "_save.go"
	return os.WriteFile(outName, src, 0o644)
}

func isSchemaFile(name string) bool {
	return name == "schema.go" || name == "schemas.go"
}

// collect walks rootDir and parses every struct in schema files, grouped by
// file in walk order.
func (g *Generator) collect() ([][]StructInfo, error) {
	var groups [][]StructInfo

	err := filepath.Walk(g.rootDir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			switch fi.Name() {
			case "vendor", ".git", "testdata", "_examples":
				return filepath.SkipDir
			}
			return nil
		}
		if !isSchemaFile(fi.Name()) {
			return nil
		}

		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			g.log(fmt.Sprintf("Skipping unparseable file %s: %v", path, err))
			return nil
		}

		var infos []StructInfo
		for _, decl := range node.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}
				info, err := g.parseFields(ts.Name.Name, node.Name.Name, st)
				if err != nil {
					return err
				}
				if len(info.Fields) == 0 {
					g.log(fmt.Sprintf("Warning: %s has no persisted fields; skipping", ts.Name.Name))
					continue
				}
				info.SourceFile = path
				infos = append(infos, info)
			}
		}
		if len(infos) > 0 {
			groups = append(groups, infos)
		}
		return nil
	})
	return groups, err
}

// Run generates code for every schema file under the root directory.
func (g *Generator) Run() error {
	groups, err := g.collect()
	if err != nil {
		return fmt.Errorf("error walking directory: %w", err)
	}
	if len(groups) == 0 {
		return ErrNoSchemas
	}
	for _, infos := range groups {
		if err := g.GenerateForFile(infos, infos[0].SourceFile); err != nil {
			return fmt.Errorf("failed to write output for %s: %w", infos[0].SourceFile, err)
		}
	}
	return nil
}

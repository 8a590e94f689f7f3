package seqgen

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/go/packages"

	apperrors "github.com/louisbranch/copyless/internal/platform/errors"
	"github.com/louisbranch/copyless/internal/sequence"
)

// sequencePath is the import path of the sequence contract.
const sequencePath = "github.com/louisbranch/copyless/internal/sequence"

// Model is a manifest resolved against the handler package.
type Model struct {
	// Source is the manifest file name recorded in the generated header.
	Source       string
	Package      string
	Output       string
	Imports      []Import
	Compositions []CompositionModel
}

// Import is one import of the generated file.
type Import struct {
	Name string
	Path string
}

// CompositionModel is one validated composition.
type CompositionModel struct {
	Name string
	// Context is the shared context type as written in the generated file.
	Context   string
	Flag      sequence.Flag
	Sequences []SequenceModel
}

// SequenceModel is one handler of a composition.
type SequenceModel struct {
	Type     string
	Field    string
	Accessor string
	Opcode   string
	ID       sequence.ID
}

// handlerInfo is what inspection learns about one handler type.
type handlerInfo struct {
	id      sequence.ID
	context types.Type
	opcode  *types.Named
}

// Inspect loads the package in dir and resolves every composition of m
// against it. An existing generated output file is blanked during loading so
// a stale file cannot break type checking; a hand-written file at that path
// is refused.
func Inspect(ctx context.Context, dir string, m Manifest, source string) (Model, error) {
	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return Model{}, fmt.Errorf("resolve dir: %w", err)
	}
	overlay, err := blankOutput(filepath.Join(absDir, m.Output))
	if err != nil {
		return Model{}, err
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:     absDir,
		Overlay: overlay,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return Model{}, fmt.Errorf("load package: %w", err)
	}
	if len(pkgs) != 1 {
		return Model{}, fmt.Errorf("load package: expected one package in %s, got %d", absDir, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return Model{}, fmt.Errorf("load %s: %v", pkg.PkgPath, pkg.Errors[0])
	}

	imports := map[string]string{sequencePath: "sequence"}
	qualifier := func(p *types.Package) string {
		if p == pkg.Types {
			return ""
		}
		imports[p.Path()] = p.Name()
		return p.Name()
	}

	model := Model{Source: source, Package: pkg.Name, Output: m.Output}
	handlers := make(map[string]handlerInfo)
	for _, spec := range m.Compositions {
		comp := CompositionModel{Name: spec.Name}
		ids := make([]sequence.ID, 0, len(spec.Sequences))
		var shared types.Type
		fields := make(map[string]string, len(spec.Sequences))
		for _, typeName := range spec.Sequences {
			info, ok := handlers[typeName]
			if !ok {
				info, err = inspectHandler(pkg, typeName)
				if err != nil {
					return Model{}, fmt.Errorf("composition %s: %w", spec.Name, err)
				}
				handlers[typeName] = info
			}
			if shared == nil {
				shared = info.context
			} else if !types.Identical(shared, info.context) {
				return Model{}, fmt.Errorf("composition %s: %w", spec.Name, contractMismatch(typeName,
					fmt.Sprintf("Init takes *%s but the composition shares *%s",
						types.TypeString(info.context, qualifier), types.TypeString(shared, qualifier))))
			}
			field := fieldName(typeName)
			if other, ok := fields[field]; ok {
				return Model{}, fmt.Errorf("composition %s: sequences %s and %s map to the same field", spec.Name, other, typeName)
			}
			fields[field] = typeName
			ids = append(ids, info.id)
			comp.Sequences = append(comp.Sequences, SequenceModel{
				Type:     typeName,
				Field:    field,
				Accessor: accessorName(typeName),
				Opcode:   types.TypeString(info.opcode, qualifier),
				ID:       info.id,
			})
		}
		def, err := sequence.Define(spec.Name, ids...)
		if err != nil {
			return Model{}, err
		}
		comp.Flag = def.Flag()
		comp.Context = types.TypeString(shared, qualifier)
		model.Compositions = append(model.Compositions, comp)
	}

	byName := make(map[string]string, len(imports))
	for path, name := range imports {
		if other, ok := byName[name]; ok {
			return Model{}, fmt.Errorf("imports %s and %s share the package name %s", other, path, name)
		}
		byName[name] = path
		model.Imports = append(model.Imports, Import{Name: name, Path: path})
	}
	sort.Slice(model.Imports, func(i, j int) bool {
		return model.Imports[i].Path < model.Imports[j].Path
	})
	return model, nil
}

// inspectHandler checks typeName against the sequence contract.
func inspectHandler(pkg *packages.Package, typeName string) (handlerInfo, error) {
	obj, ok := pkg.Types.Scope().Lookup(typeName).(*types.TypeName)
	if !ok || obj.IsAlias() {
		return handlerInfo{}, apperrors.WithMetadata(apperrors.CodeGeneratorTypeNotFound,
			fmt.Sprintf("type %s not found in %s", typeName, pkg.PkgPath),
			map[string]string{"Type": typeName, "Package": pkg.PkgPath})
	}
	named, ok := obj.Type().(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		return handlerInfo{}, contractMismatch(typeName, "must be a non-generic named type")
	}

	idMethod := lookupMethod(named, pkg.Types, "SequenceID")
	if idMethod == nil {
		return handlerInfo{}, contractMismatch(typeName, "SequenceID must be declared with a value receiver")
	}
	sig := idMethod.Type().(*types.Signature)
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 || !isSequenceID(sig.Results().At(0).Type()) {
		return handlerInfo{}, contractMismatch(typeName, "SequenceID must have signature func() sequence.ID")
	}
	id, err := constantIdentity(pkg, typeName, idMethod)
	if err != nil {
		return handlerInfo{}, err
	}

	ptr := types.NewPointer(named)
	initMethod := lookupMethod(ptr, pkg.Types, "Init")
	if initMethod == nil {
		return handlerInfo{}, contractMismatch(typeName, "Init is not declared")
	}
	sig = initMethod.Type().(*types.Signature)
	if sig.Params().Len() != 1 || sig.Results().Len() != 0 {
		return handlerInfo{}, contractMismatch(typeName, "Init must have signature func(*C)")
	}
	ctxPtr, ok := sig.Params().At(0).Type().(*types.Pointer)
	if !ok {
		return handlerInfo{}, contractMismatch(typeName, "Init must take a pointer to the shared context")
	}

	processMethod := lookupMethod(ptr, pkg.Types, "Process")
	if processMethod == nil {
		return handlerInfo{}, contractMismatch(typeName, "Process is not declared")
	}
	sig = processMethod.Type().(*types.Signature)
	if sig.Params().Len() != 1 || sig.Results().Len() != 1 || !isError(sig.Results().At(0).Type()) {
		return handlerInfo{}, contractMismatch(typeName, "Process must have signature func(O) error")
	}
	opcode, err := opcodeSet(typeName, sig.Params().At(0).Type())
	if err != nil {
		return handlerInfo{}, err
	}
	return handlerInfo{id: id, context: ctxPtr.Elem(), opcode: opcode}, nil
}

// constantIdentity reads the constant returned by a SequenceID declared in
// pkg with a single return statement.
func constantIdentity(pkg *packages.Package, typeName string, method *types.Func) (sequence.ID, error) {
	var decl *ast.FuncDecl
	for _, file := range pkg.Syntax {
		for _, d := range file.Decls {
			if fd, ok := d.(*ast.FuncDecl); ok && fd.Name.Pos() == method.Pos() {
				decl = fd
			}
		}
	}
	if decl == nil || decl.Body == nil {
		return 0, contractMismatch(typeName, "SequenceID must be declared in the handler package")
	}
	if len(decl.Body.List) != 1 {
		return 0, contractMismatch(typeName, "SequenceID must be a single return statement")
	}
	ret, ok := decl.Body.List[0].(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return 0, contractMismatch(typeName, "SequenceID must be a single return statement")
	}
	tv, ok := pkg.TypesInfo.Types[ret.Results[0]]
	if !ok || tv.Value == nil {
		return 0, contractMismatch(typeName, "SequenceID must return a constant")
	}
	v, exact := constant.Uint64Val(constant.ToInt(tv.Value))
	if !exact {
		return 0, contractMismatch(typeName, "SequenceID must return an integer constant")
	}
	return sequence.ID(v), nil
}

// opcodeSet checks that t is a named uint32 type with Valid and String.
func opcodeSet(typeName string, t types.Type) (*types.Named, error) {
	named, ok := t.(*types.Named)
	if !ok {
		return nil, contractMismatch(typeName, "Process must take a named opcode type")
	}
	basic, ok := named.Underlying().(*types.Basic)
	if !ok || basic.Kind() != types.Uint32 {
		return nil, contractMismatch(typeName, fmt.Sprintf("opcode %s must have underlying type uint32", named.Obj().Name()))
	}
	for _, want := range []struct {
		name   string
		result types.Type
	}{
		{"Valid", types.Typ[types.Bool]},
		{"String", types.Typ[types.String]},
	} {
		m := lookupMethod(named, named.Obj().Pkg(), want.name)
		if m == nil {
			return nil, contractMismatch(typeName, fmt.Sprintf("opcode %s must declare %s with a value receiver", named.Obj().Name(), want.name))
		}
		sig := m.Type().(*types.Signature)
		if sig.Params().Len() != 0 || sig.Results().Len() != 1 || !types.Identical(sig.Results().At(0).Type(), want.result) {
			return nil, contractMismatch(typeName, fmt.Sprintf("opcode %s.%s has the wrong signature", named.Obj().Name(), want.name))
		}
	}
	return named, nil
}

func lookupMethod(t types.Type, pkg *types.Package, name string) *types.Func {
	sel := types.NewMethodSet(t).Lookup(pkg, name)
	if sel == nil {
		return nil
	}
	fn, _ := sel.Obj().(*types.Func)
	return fn
}

func isSequenceID(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}
	return named.Obj().Pkg().Path() == sequencePath && named.Obj().Name() == "ID"
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

func contractMismatch(typeName, reason string) error {
	return apperrors.WithMetadata(apperrors.CodeGeneratorContractMismatch,
		fmt.Sprintf("type %s does not satisfy the sequence contract: %s", typeName, reason),
		map[string]string{"Type": typeName, "Reason": reason})
}

// blankOutput returns an overlay replacing a previously generated file with
// its bare package clause.
func blankOutput(path string) (map[string][]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	file, err := parser.ParseFile(token.NewFileSet(), path, data, parser.PackageClauseOnly|parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse output: %w", err)
	}
	if !ast.IsGenerated(file) {
		return nil, fmt.Errorf("output %s exists and is not generated code", path)
	}
	return map[string][]byte{path: []byte("package " + file.Name.Name + "\n")}, nil
}

func fieldName(typeName string) string {
	r, size := utf8.DecodeRuneInString(typeName)
	name := string(unicode.ToLower(r)) + typeName[size:]
	if token.IsKeyword(name) {
		name += "Seq"
	}
	return name
}

func accessorName(typeName string) string {
	r, size := utf8.DecodeRuneInString(typeName)
	return string(unicode.ToUpper(r)) + typeName[size:]
}

// joinMembers renders "E (0), F (1) and G (2)".
func joinMembers(seqs []SequenceModel) string {
	parts := make([]string, len(seqs))
	for i, s := range seqs {
		parts[i] = fmt.Sprintf("%s (%d)", s.Type, s.ID)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

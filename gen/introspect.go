package gen

import (
	"fmt"
	"go/ast"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Import path of the sdk package generated code links against.
const sdkPath = "github.com/dreadful-dev/fvm-macro/sdk"

// Introspect loads the actor package and builds its model: the state record's
// field set and the method table, numbered by declaration order (file order,
// then position within the file).
//
// expectMethods, when non-nil, is the explicit ordered method sequence the
// declarations must match; any drift fails the build loudly. Passing nil
// skips the guard and derives numbering from declaration order alone.
//
// All failures here are build-time errors, never runtime aborts.
func Introspect(pkgPath, actorType, stateType string, expectMethods []string) (*ActorModel, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", pkgPath, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found for %s", pkgPath)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors in %s: %v", pkgPath, pkg.Errors)
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("type information not available for %s", pkgPath)
	}

	model := &ActorModel{
		PackagePath: pkg.PkgPath,
		PackageName: pkg.Name,
		ActorType:   actorType,
		EmitInvoke:  true,
	}
	if len(pkg.GoFiles) > 0 {
		model.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	record, err := introspectState(pkg, stateType)
	if err != nil {
		return nil, err
	}
	model.State = *record

	if err := checkActorType(pkg, actorType); err != nil {
		return nil, err
	}

	methods, err := collectMethods(pkg, actorType, stateType)
	if err != nil {
		return nil, err
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("actor %s declares no exported methods; the first exported method is the constructor and is required", actorType)
	}
	model.Methods = methods

	if expectMethods != nil {
		if err := checkSequence(actorType, model.MethodNames(), expectMethods); err != nil {
			return nil, err
		}
	}

	return model, nil
}

// introspectState validates the state record and captures its fields. The
// record must be a struct with only exported fields so the binary codec can
// encode and decode every field; a Go struct is inherently clonable and
// default-constructible, which covers the remaining capability requirements.
func introspectState(pkg *packages.Package, stateType string) (*RecordModel, error) {
	obj := pkg.Types.Scope().Lookup(stateType)
	if obj == nil {
		return nil, fmt.Errorf("state type %s not found in %s", stateType, pkg.PkgPath)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("state %s is not a type", stateType)
	}
	st, ok := tn.Type().Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("state type %s must be a struct", stateType)
	}

	record := &RecordModel{Name: stateType}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Exported() {
			return nil, fmt.Errorf("state type %s has unexported field %s; every field must be encodable", stateType, f.Name())
		}
		record.Fields = append(record.Fields, FieldModel{
			Name:    f.Name(),
			TypeStr: types.TypeString(f.Type(), qualifier(pkg.Types)),
		})
	}
	return record, nil
}

// checkActorType enforces the structural precondition that dispatch glue
// attaches to a named struct type, not an interface or alias.
func checkActorType(pkg *packages.Package, actorType string) error {
	obj := pkg.Types.Scope().Lookup(actorType)
	if obj == nil {
		return fmt.Errorf("actor type %s not found in %s", actorType, pkg.PkgPath)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return fmt.Errorf("actor %s is not a type", actorType)
	}
	if _, ok := tn.Type().Underlying().(*types.Struct); !ok {
		return fmt.Errorf("actor type %s must be a struct", actorType)
	}
	return nil
}

// collectMethods walks the package AST in declaration order and records every
// exported method declared directly on the actor type. Position determines
// the wire method number, so this walk is the numbering authority.
func collectMethods(pkg *packages.Package, actorType, stateType string) ([]MethodModel, error) {
	var methods []MethodModel

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || len(fd.Recv.List) != 1 {
				continue
			}
			if receiverTypeName(fd.Recv.List[0].Type) != actorType {
				continue
			}
			if !fd.Name.IsExported() {
				continue
			}

			fn, ok := pkg.TypesInfo.Defs[fd.Name].(*types.Func)
			if !ok {
				return nil, fmt.Errorf("no type information for method %s.%s", actorType, fd.Name.Name)
			}
			hasReturn, err := checkMethodSignature(pkg, fn, stateType)
			if err != nil {
				return nil, err
			}

			methods = append(methods, MethodModel{
				Num:       uint64(len(methods) + 1),
				Name:      fd.Name.Name,
				HasReturn: hasReturn,
			})
		}
	}
	return methods, nil
}

// checkMethodSignature enforces the uniform dispatchable shape:
//
//	func (T) Name(rt sdk.Runtime, params sdk.RawBytes, st *State)
//	func (T) Name(rt sdk.Runtime, params sdk.RawBytes, st *State) sdk.RawBytes
//
// and reports whether the method produces a payload.
func checkMethodSignature(pkg *packages.Package, fn *types.Func, stateType string) (bool, error) {
	sig := fn.Type().(*types.Signature)
	name := fn.Name()

	params := sig.Params()
	if params.Len() != 3 {
		return false, signatureError(name, "expected (rt sdk.Runtime, params sdk.RawBytes, st *"+stateType+")")
	}
	if params.At(0).Type().String() != sdkPath+".Runtime" {
		return false, signatureError(name, "first parameter must be sdk.Runtime")
	}
	if params.At(1).Type().String() != sdkPath+".RawBytes" {
		return false, signatureError(name, "second parameter must be sdk.RawBytes")
	}
	if !isStatePointer(params.At(2).Type(), pkg.Types, stateType) {
		return false, signatureError(name, "third parameter must be *"+stateType)
	}

	results := sig.Results()
	switch results.Len() {
	case 0:
		return false, nil
	case 1:
		if results.At(0).Type().String() != sdkPath+".RawBytes" {
			return false, signatureError(name, "result must be sdk.RawBytes or absent")
		}
		return true, nil
	default:
		return false, signatureError(name, "at most one result is allowed")
	}
}

func signatureError(method, detail string) error {
	return fmt.Errorf("method %s has an undispatchable signature: %s", method, detail)
}

func isStatePointer(t types.Type, pkg *types.Package, stateType string) bool {
	ptr, ok := t.(*types.Pointer)
	if !ok {
		return false
	}
	named, ok := ptr.Elem().(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Name() == stateType && obj.Pkg() != nil && obj.Pkg().Path() == pkg.Path()
}

// receiverTypeName unwraps `T`, `*T` and generic receivers down to the bare
// type name.
func receiverTypeName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return receiverTypeName(e.X)
	case *ast.IndexExpr:
		return receiverTypeName(e.X)
	default:
		return ""
	}
}

// checkSequence compares declared method order against the expected explicit
// sequence. Reordering methods is a wire-breaking change, so any drift is an
// error that shows both sequences in full.
func checkSequence(actorType string, declared, expected []string) error {
	if len(declared) == len(expected) {
		match := true
		for i := range declared {
			if declared[i] != expected[i] {
				match = false
				break
			}
		}
		if match {
			return nil
		}
	}
	return fmt.Errorf(
		"method sequence for %s has drifted from the declared wire order\n  manifest: %s\n  declared: %s\nmethod numbers derive from this order; update the manifest only if the wire contract is allowed to break",
		actorType, strings.Join(expected, ", "), strings.Join(declared, ", "))
}

func qualifier(pkg *types.Package) types.Qualifier {
	return func(other *types.Package) string {
		if other == pkg {
			return ""
		}
		return other.Name()
	}
}

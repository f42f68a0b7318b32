package analyze

import (
	"fmt"
	"go/types"
	"reflect"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Analyzer loads Go packages and collects their exported struct types.
type Analyzer struct {
	// Dir is the working directory for package patterns; empty means the
	// current directory.
	Dir string
}

// LoadPackages loads the packages matching patterns and returns their
// exported struct types, by package and then by name.
func (a *Analyzer) LoadPackages(patterns ...string) ([]Record, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	var records []Record

	for _, pkg := range pkgs {
		records = append(records, structsOf(pkg)...)
	}

	return records, nil
}

// structsOf extracts the exported struct types of a loaded package.
func structsOf(pkg *packages.Package) []Record {
	var records []Record

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		// Only exported type names
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() {
			continue
		}

		st, ok := typeName.Type().Underlying().(*types.Struct)
		if !ok {
			continue
		}

		records = append(records, Record{
			ID:     TypeID{PkgPath: pkg.PkgPath, Name: name},
			Fields: fieldsOf(st, map[*types.Struct]bool{}),
		})
	}

	return records
}

// fieldsOf lists the exported fields of st, flattening embedded structs.
// seen guards against recursive embedding through pointers.
func fieldsOf(st *types.Struct, seen map[*types.Struct]bool) []FieldInfo {
	if seen[st] {
		return nil
	}
	seen[st] = true

	var fields []FieldInfo

	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)

		if field.Embedded() {
			embedded := field.Type()
			if ptr, ok := embedded.(*types.Pointer); ok {
				embedded = ptr.Elem()
			}

			if inner, ok := embedded.Underlying().(*types.Struct); ok {
				fields = append(fields, fieldsOf(inner, seen)...)
				continue
			}
		}

		if !field.Exported() {
			continue
		}

		fields = append(fields, FieldInfo{
			Name: field.Name(),
			Type: field.Type(),
			Tag:  reflect.StructTag(st.Tag(i)),
		})
	}

	return fields
}

package scan

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/previewkit/internal/shape"
)

// ScanSource parses a single CUE source and returns the declarations it
// holds.
func ScanSource(filename string, src []byte) (*shape.Registry, error) {
	reg := shape.NewRegistry()
	if err := ScanInto(reg, filename, src); err != nil {
		return nil, err
	}
	return reg, nil
}

// ScanInto parses a CUE source and merges its declarations into reg.
// Duplicate declaration names across sources are an error.
func ScanInto(reg *shape.Registry, filename string, src []byte) error {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return formatCUEError(err)
	}
	return scanRoot(reg, v)
}

// scanRoot walks the top-level "types" struct.
func scanRoot(reg *shape.Registry, v cue.Value) error {
	typesVal := v.LookupPath(cue.ParsePath("types"))
	if !typesVal.Exists() {
		return &ScanError{
			Field:   "types",
			Message: "declaration file must contain a top-level types struct",
			Pos:     v.Pos(),
		}
	}

	iter, err := typesVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}

	for iter.Next() {
		name := iter.Label()
		declVal := iter.Value()

		if isEnumDecl(declVal) {
			decl, err := scanEnum(name, declVal)
			if err != nil {
				return err
			}
			if err := reg.AddEnum(decl); err != nil {
				return &ScanError{Field: name, Message: err.Error(), Pos: declVal.Pos()}
			}
			continue
		}

		decl, err := scanStruct(name, declVal)
		if err != nil {
			return err
		}
		if err := reg.AddStruct(decl); err != nil {
			return &ScanError{Field: name, Message: err.Error(), Pos: declVal.Pos()}
		}
	}
	return nil
}

// isEnumDecl reports whether the declaration is sum-typed: an explicit
// enum flag or a cases list.
func isEnumDecl(v cue.Value) bool {
	if flag := v.LookupPath(cue.ParsePath("enum")); flag.Exists() {
		if b, err := flag.Bool(); err == nil && b {
			return true
		}
	}
	return v.LookupPath(cue.ParsePath("cases")).Exists()
}

// scanStruct extracts the field descriptors of a product-typed declaration.
func scanStruct(name string, v cue.Value) (*shape.StructDecl, error) {
	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return nil, &ScanError{
			Field:   name,
			Message: "struct declaration requires a fields struct",
			Pos:     v.Pos(),
		}
	}

	decl := &shape.StructDecl{Name: name}

	iter, err := fieldsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		fieldName := iter.Label()
		fd, include, err := scanField(name, fieldName, iter.Value())
		if err != nil {
			return nil, err
		}
		if include {
			decl.Fields = append(decl.Fields, fd)
		}
	}
	return decl, nil
}

// scanField parses one field entry. The second return reports whether the
// field survives the structural exclusions.
func scanField(declName, fieldName string, v cue.Value) (shape.FieldDescriptor, bool, error) {
	var fd shape.FieldDescriptor
	fd.Name = fieldName

	// String shorthand: the whole entry is the declared type.
	if raw, err := v.String(); err == nil {
		ref, err := shape.ParseTypeRef(raw)
		if err != nil {
			return fd, false, &ScanError{
				Field:   fmt.Sprintf("%s.%s", declName, fieldName),
				Message: err.Error(),
				Pos:     v.Pos(),
			}
		}
		fd.DeclaredType = ref
		fd.Raw = raw
		return fd, true, nil
	}

	// Object form: {type: "...", computed?, static?, readonly?, hasDefault?}
	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return fd, false, &ScanError{
			Field:   fmt.Sprintf("%s.%s", declName, fieldName),
			Message: "field entry must be a type string or an object with a type field",
			Pos:     v.Pos(),
		}
	}
	raw, err := typeVal.String()
	if err != nil {
		return fd, false, formatCUEError(err)
	}

	// Structural exclusions: computed and static fields are not stored
	// state; immutable fields with defaults must not be re-initialized.
	if boolFlag(v, "computed") || boolFlag(v, "static") {
		return fd, false, nil
	}
	readonly := boolFlag(v, "readonly")
	if readonly && boolFlag(v, "hasDefault") {
		return fd, false, nil
	}

	ref, err := shape.ParseTypeRef(raw)
	if err != nil {
		return fd, false, &ScanError{
			Field:   fmt.Sprintf("%s.%s", declName, fieldName),
			Message: err.Error(),
			Pos:     typeVal.Pos(),
		}
	}
	fd.DeclaredType = ref
	fd.Raw = raw
	fd.ImmutableWithoutDefault = readonly
	return fd, true, nil
}

// scanEnum extracts the case list of a sum-typed declaration.
func scanEnum(name string, v cue.Value) (*shape.EnumDecl, error) {
	decl := &shape.EnumDecl{Name: name}
	decl.Shape.HasEnumerableCapability = boolFlag(v, "enumerable")

	casesVal := v.LookupPath(cue.ParsePath("cases"))
	if !casesVal.Exists() {
		return nil, &ScanError{
			Field:   name,
			Message: "enum declaration requires a cases list",
			Pos:     v.Pos(),
		}
	}

	iter, err := casesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		cd, err := scanCase(name, iter.Value())
		if err != nil {
			return nil, err
		}
		decl.Shape.Cases = append(decl.Shape.Cases, cd)
	}
	return decl, nil
}

// scanCase parses one case entry: a bare name string or
// {name: "...", associated: bool}.
func scanCase(declName string, v cue.Value) (shape.CaseDescriptor, error) {
	var cd shape.CaseDescriptor

	if s, err := v.String(); err == nil {
		cd.Name = s
		return cd, nil
	}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return cd, &ScanError{
			Field:   declName,
			Message: "case entry must be a name string or an object with a name field",
			Pos:     v.Pos(),
		}
	}
	s, err := nameVal.String()
	if err != nil {
		return cd, formatCUEError(err)
	}
	cd.Name = s
	cd.HasAssociatedData = boolFlag(v, "associated")
	return cd, nil
}

// boolFlag reads an optional boolean attribute, defaulting to false.
func boolFlag(v cue.Value, name string) bool {
	flag := v.LookupPath(cue.ParsePath(name))
	if !flag.Exists() {
		return false
	}
	b, err := flag.Bool()
	return err == nil && b
}

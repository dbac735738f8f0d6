package shape

import "fmt"

// FieldDescriptor describes one stored field of a product-typed declaration.
// Produced by the scanner, which has already excluded computed fields,
// static fields, and immutable fields carrying a default value.
type FieldDescriptor struct {
	Name         string  `json:"name"`
	DeclaredType TypeRef `json:"-"`

	// Raw preserves the declared-type text as written, for diagnostics.
	Raw string `json:"type"`

	// ImmutableWithoutDefault marks an immutable field that carries no
	// default value. (Immutable fields WITH defaults never reach the
	// descriptor list - initializing them would conflict.) The planner
	// treats such fields like any other; the flag exists for emission-side
	// consumers.
	ImmutableWithoutDefault bool `json:"immutable,omitempty"`
}

// CaseDescriptor describes one case of a sum-typed declaration.
type CaseDescriptor struct {
	Name              string `json:"name"`
	HasAssociatedData bool   `json:"associated,omitempty"`
}

// EnumShape describes a sum-typed declaration. Computed once from the
// declaration, consumed once by the enum planner, never mutated.
type EnumShape struct {
	Cases []CaseDescriptor `json:"cases"`

	// HasEnumerableCapability reports whether the declaration supports
	// enumerating its full case list.
	HasEnumerableCapability bool `json:"enumerable,omitempty"`
}

// StructDecl is a scanned product-typed declaration.
type StructDecl struct {
	Name   string            `json:"name"`
	Fields []FieldDescriptor `json:"fields"`
}

// EnumDecl is a scanned sum-typed declaration.
type EnumDecl struct {
	Name  string    `json:"name"`
	Shape EnumShape `json:"shape"`
}

// Registry holds scanned declarations by name, preserving insertion order
// so downstream output is deterministic.
type Registry struct {
	names   []string
	structs map[string]*StructDecl
	enums   map[string]*EnumDecl
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		structs: make(map[string]*StructDecl),
		enums:   make(map[string]*EnumDecl),
	}
}

// AddStruct registers a product-typed declaration.
func (r *Registry) AddStruct(d *StructDecl) error {
	if r.Has(d.Name) {
		return fmt.Errorf("duplicate declaration %q", d.Name)
	}
	r.structs[d.Name] = d
	r.names = append(r.names, d.Name)
	return nil
}

// AddEnum registers a sum-typed declaration.
func (r *Registry) AddEnum(d *EnumDecl) error {
	if r.Has(d.Name) {
		return fmt.Errorf("duplicate declaration %q", d.Name)
	}
	r.enums[d.Name] = d
	r.names = append(r.names, d.Name)
	return nil
}

// Struct looks up a product-typed declaration.
func (r *Registry) Struct(name string) (*StructDecl, bool) {
	d, ok := r.structs[name]
	return d, ok
}

// Enum looks up a sum-typed declaration.
func (r *Registry) Enum(name string) (*EnumDecl, bool) {
	d, ok := r.enums[name]
	return d, ok
}

// Has reports whether any declaration is registered under name.
func (r *Registry) Has(name string) bool {
	_, s := r.structs[name]
	_, e := r.enums[name]
	return s || e
}

// Names returns all declaration names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered declarations.
func (r *Registry) Len() int { return len(r.names) }

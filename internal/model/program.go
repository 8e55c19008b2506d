package model

// Program is the resolved class hierarchy the core observes. It is built
// and owned by an external front-end (see internal/goadapter for a
// reference implementation); the core only ever reads it.
type Program struct {
	Types   map[string]*Type // by Descriptor
	Methods map[string][]*MethodDef
	Fields  map[string][]*FieldDef
}

// NewProgram creates an empty Program ready for incremental population by
// a front-end.
func NewProgram() *Program {
	return &Program{
		Types:   make(map[string]*Type),
		Methods: make(map[string][]*MethodDef),
		Fields:  make(map[string][]*FieldDef),
	}
}

// AddType registers a type, keyed by its descriptor. Re-adding the same
// descriptor overwrites the previous entry.
func (p *Program) AddType(t *Type) { p.Types[t.Descriptor] = t }

// AddMethod registers a method declaration on its holder.
func (p *Program) AddMethod(m *MethodDef) {
	p.Methods[m.Ref.Holder.Descriptor] = append(p.Methods[m.Ref.Holder.Descriptor], m)
}

// AddField registers a field declaration on its holder.
func (p *Program) AddField(f *FieldDef) {
	p.Fields[f.Ref.Holder.Descriptor] = append(p.Fields[f.Ref.Holder.Descriptor], f)
}

// ProgramTypes returns every type of Kind Program, in a deterministic order
// (ascending by descriptor) so callers get reproducible iteration for free.
func (p *Program) ProgramTypes() []*Type {
	out := make([]*Type, 0, len(p.Types))
	for _, t := range p.Types {
		if t.Kind == ProgramKind {
			out = append(out, t)
		}
	}
	sortTypesByDescriptor(out)
	return out
}

// AllTypes returns every type known to the model, sorted by descriptor.
func (p *Program) AllTypes() []*Type {
	out := make([]*Type, 0, len(p.Types))
	for _, t := range p.Types {
		out = append(out, t)
	}
	sortTypesByDescriptor(out)
	return out
}

func sortTypesByDescriptor(types []*Type) {
	// insertion sort is fine here: front-ends produce at most a few
	// thousand types and this runs once per minification.
	for i := 1; i < len(types); i++ {
		for j := i; j > 0 && types[j].Descriptor < types[j-1].Descriptor; j-- {
			types[j], types[j-1] = types[j-1], types[j]
		}
	}
}

// DeclaredMethods returns the methods declared directly on t, in a
// deterministic order (ascending by name then by SignatureKey under the
// default, non-aggressive projection — callers that need the aggressive
// projection re-sort with model.KeyFor).
func (p *Program) DeclaredMethods(t *Type) []*MethodDef {
	defs := p.Methods[t.Descriptor]
	out := make([]*MethodDef, len(defs))
	copy(out, defs)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && lessMethodDef(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func lessMethodDef(a, b *MethodDef) bool {
	if a.Ref.Name != b.Ref.Name {
		return a.Ref.Name < b.Ref.Name
	}
	return string(KeyFor(a.Ref, false)) < string(KeyFor(b.Ref, false))
}

// DeclaredFields returns the fields declared directly on t, sorted by name
// then by type descriptor for determinism.
func (p *Program) DeclaredFields(t *Type) []*FieldDef {
	defs := p.Fields[t.Descriptor]
	out := make([]*FieldDef, len(defs))
	copy(out, defs)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && lessFieldDef(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func lessFieldDef(a, b *FieldDef) bool {
	if a.Ref.Name != b.Ref.Name {
		return a.Ref.Name < b.Ref.Name
	}
	return a.Ref.Type.Descriptor < b.Ref.Type.Descriptor
}

// ResolveMethod finds the MethodDef that would actually handle a call to
// ref if dispatched on holder, walking the supertype chain when holder does
// not declare it directly (virtual/up-lookup resolution). It returns nil,
// false if no declaration is found anywhere in the chain.
func (p *Program) ResolveMethod(holder *Type, name string, key SignatureKey, aggressive AggressiveOverloading) (*MethodDef, bool) {
	for t := holder; t != nil; t = t.Supertype {
		for _, m := range p.Methods[t.Descriptor] {
			if m.Ref.Name == name && KeyFor(m.Ref, aggressive) == key {
				return m, true
			}
		}
	}
	return nil, false
}

// Implements reports whether t (transitively, through supertypes and
// superinterfaces) implements iface.
func (p *Program) Implements(t, iface *Type) bool {
	if t == nil {
		return false
	}
	if t == iface {
		return true
	}
	for _, i := range t.Interfaces {
		if p.Implements(i, iface) {
			return true
		}
	}
	return p.Implements(t.Supertype, iface)
}

// ImplementedBy returns every other type in the model (of any kind,
// interfaces that extend iface included) that implements iface, directly
// or transitively, computed by scanning AllTypes — adequate at the
// scale the core is meant for (single module, not whole-ecosystem).
func (p *Program) ImplementedBy(iface *Type) []*Type {
	var out []*Type
	for _, t := range p.AllTypes() {
		if t == iface {
			continue
		}
		if p.Implements(t, iface) {
			out = append(out, t)
		}
	}
	return out
}

// SuperInterfaces returns the (direct + transitive) interfaces that iface
// itself extends.
func (p *Program) SuperInterfaces(iface *Type) []*Type {
	seen := map[*Type]bool{}
	var walk func(*Type)
	var out []*Type
	walk = func(t *Type) {
		for _, i := range t.Interfaces {
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
				walk(i)
			}
		}
	}
	walk(iface)
	return out
}

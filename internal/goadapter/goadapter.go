// Package goadapter is a reference ProgramModel front-end: it loads a real
// Go package via golang.org/x/tools/go/packages + go/types and adapts its
// named types, methods, and fields into internal/model's ProgramModel
// shape. It exists to demonstrate end-to-end wiring of the minification
// core against a real type system without pretending to parse JVM
// bytecode, which stays out of scope here. Go embedding stands in for
// class supertypes and types.Implements stands in for interface
// satisfaction — a deliberately loose analogy, adequate for exercising
// the minifier end to end, not a general-purpose Go-to-JVM model
// translator.
package goadapter

import (
	"fmt"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/chrispaulwu/minifier/internal/diagnostics"
	"github.com/chrispaulwu/minifier/internal/model"
)

// Options configures a load.
type Options struct {
	// Dir is the module directory to load from.
	Dir string
	// Patterns defaults to ["./..."] when empty.
	Patterns []string
}

// builder accumulates the adapted Program and deduplicates Type instances
// by descriptor, since the core relies on pointer identity for hierarchy
// and reservation-tree keys.
type builder struct {
	program *model.Program
	cache   map[string]*model.Type
}

// Load walks every package-level named type (exported or not) of the
// packages matching opts and adapts them into a *model.Program: each named
// type becomes a program Type, its declared methods become MethodDefs, and
// a struct's fields become FieldDefs. A struct's first embedded named
// non-interface field
// stands in for "supertype", and satisfied interfaces populate Interfaces —
// Go has no real class hierarchy, so this is a deliberately loose analogy,
// adequate for exercising the minifier end to end.
func Load(opts Options) (*model.Program, error) {
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	cfg := &packages.Config{
		Dir: opts.Dir,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedImports |
			packages.NeedDeps | packages.NeedTypes | packages.NeedTypesInfo |
			packages.NeedSyntax,
		Fset: token.NewFileSet(),
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("goadapter: load packages: %w", err)
	}
	if n := packages.PrintErrors(pkgs); n > 0 {
		diagnostics.Warnf("[goadapter] %d package load errors, proceeding with what loaded", n)
	}

	b := &builder{program: model.NewProgram(), cache: make(map[string]*model.Type)}

	var named []*types.Named
	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok {
				continue
			}
			if n, ok := tn.Type().(*types.Named); ok {
				named = append(named, n)
			}
		}
	}

	// Pass 1: register every named type, so pass 2's Supertype/field/method
	// wiring can resolve sibling types regardless of declaration order.
	for _, n := range named {
		b.typeFor(n)
	}
	// Pass 2: fields, methods, and embedding-derived Supertype.
	for _, n := range named {
		b.wireMembers(n)
	}
	// Pass 3: interface satisfaction, once every program Type exists.
	b.wireInterfaces(named)

	diagnostics.Infof("[goadapter] adapted %d named types from %d packages", len(named), len(pkgs))
	return b.program, nil
}

func descriptorFor(n *types.Named) string {
	pkgPath := ""
	if n.Obj().Pkg() != nil {
		pkgPath = n.Obj().Pkg().Path()
	}
	return "L" + pkgPath + "/" + n.Obj().Name() + ";"
}

// typeFor returns (creating if needed) the program Type for a named Go type.
func (b *builder) typeFor(n *types.Named) *model.Type {
	d := descriptorFor(n)
	if t, ok := b.cache[d]; ok {
		return t
	}
	_, isInterface := n.Underlying().(*types.Interface)
	t := &model.Type{
		Descriptor:  d,
		Kind:        model.ProgramKind,
		IsInterface: isInterface,
		Access:      access(n.Obj()),
	}
	b.cache[d] = t
	b.program.AddType(t)
	return t
}

// externalTypeFor adapts any go/types.Type into a Type: named program types
// already registered by typeFor are reused, everything else (parameters,
// results, field types outside the loaded packages) becomes a library Type
// keyed by its types.Type string form so repeats share one instance.
func (b *builder) externalTypeFor(t types.Type) *model.Type {
	if n, ok := t.(*types.Named); ok {
		if pt, ok := b.cache[descriptorFor(n)]; ok {
			return pt
		}
	}
	d := "L" + sanitizeDescriptor(t.String()) + ";"
	if mt, ok := b.cache[d]; ok {
		return mt
	}
	mt := &model.Type{Descriptor: d, Kind: model.Library}
	b.cache[d] = mt
	b.program.AddType(mt)
	return mt
}

func sanitizeDescriptor(s string) string {
	s = strings.ReplaceAll(s, ".", "/")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

func access(obj types.Object) model.Access {
	if obj.Exported() {
		return model.Access{Public: true}
	}
	return model.Access{Package: true}
}

// wireMembers populates a program type's Supertype and member lists.
func (b *builder) wireMembers(n *types.Named) {
	t := b.typeFor(n)

	if st, ok := n.Underlying().(*types.Struct); ok {
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			if f.Embedded() {
				if embedded, ok := underlyingNamed(f.Type()); ok {
					if _, isIface := embedded.Underlying().(*types.Interface); !isIface {
						if t.Supertype == nil {
							t.Supertype = b.typeFor(embedded)
						}
						continue
					}
				}
			}
			b.program.AddField(&model.FieldDef{
				Ref: model.FieldRef{
					Holder: t,
					Name:   f.Name(),
					Type:   b.externalTypeFor(f.Type()),
				},
				Access:    access(f),
				InProgram: true,
			})
		}
	}

	for i := 0; i < n.NumMethods(); i++ {
		m := n.Method(i)
		sig, ok := m.Type().(*types.Signature)
		if !ok {
			continue
		}
		b.program.AddMethod(&model.MethodDef{
			Ref: model.MethodRef{
				Holder: t,
				Name:   m.Name(),
				Proto:  b.protoFor(sig),
			},
			Access:    access(m),
			InProgram: true,
		})
	}
}

// wireInterfaces populates Interfaces on every struct-kind program type with
// the program interfaces it satisfies, the analogue of "implements" edges.
func (b *builder) wireInterfaces(named []*types.Named) {
	var ifaces []*types.Named
	for _, n := range named {
		if _, ok := n.Underlying().(*types.Interface); ok {
			ifaces = append(ifaces, n)
		}
	}
	for _, n := range named {
		if _, ok := n.Underlying().(*types.Interface); ok {
			continue
		}
		t := b.typeFor(n)
		ptr := types.NewPointer(n)
		for _, iface := range ifaces {
			ifaceType := iface.Underlying().(*types.Interface)
			if types.Implements(n, ifaceType) || types.Implements(ptr, ifaceType) {
				t.Interfaces = append(t.Interfaces, b.typeFor(iface))
			}
		}
	}
}

func underlyingNamed(t types.Type) (*types.Named, bool) {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	n, ok := t.(*types.Named)
	return n, ok
}

func (b *builder) protoFor(sig *types.Signature) model.Proto {
	params := make([]*model.Type, 0, sig.Params().Len())
	for i := 0; i < sig.Params().Len(); i++ {
		params = append(params, b.externalTypeFor(sig.Params().At(i).Type()))
	}
	var ret *model.Type
	if sig.Results().Len() > 0 {
		ret = b.externalTypeFor(sig.Results().At(0).Type())
	} else {
		ret = &model.Type{Descriptor: "V", Kind: model.Library}
	}
	return model.Proto{Params: params, ReturnType: ret}
}

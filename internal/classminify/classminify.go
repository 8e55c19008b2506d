// Package classminify implements the ClassMinifier: the two-visible-phase
// (plus a dangling-type cleanup pass) walk over program classes that
// assigns short, unique binary names while honoring inner-class nesting.
package classminify

import (
	"fmt"
	"strings"

	"github.com/chrispaulwu/minifier/internal/diagnostics"
	"github.com/chrispaulwu/minifier/internal/model"
	"github.com/chrispaulwu/minifier/internal/namespace"
	"github.com/chrispaulwu/minifier/internal/strategy"
)

// Options configures a minification run.
type Options struct {
	// KeepInnerClassStructure mirrors ProGuard/R8's -keepattributes
	// InnerClasses handling: when true, an inner class's final descriptor
	// is always prefixed by its (possibly itself-renamed) outer class.
	KeepInnerClassStructure bool
	// CaseSensitive, when false, folds the global used-name set to
	// lower-case so "Aa" and "aA" collide (-dontusemixedcaseclassnames).
	CaseSensitive bool
	// Repackage, when non-empty, is a flat target package binary-name
	// prefix (no trailing slash) that every non-kept class is moved into
	// (-repackageclasses). Under KeepInnerClassStructure, inner classes
	// stay under their outer class and outer classes of inner classes stay
	// in their source package.
	Repackage string
}

// Result is the ClassMinifier's output.
type Result struct {
	// ClassRenaming maps every type the core assigned a descriptor to:
	// program types, every missing type (under its own descriptor),
	// non-program outer classes force-reserved as a stable inner-class
	// prefix, and program types reached only through member signatures.
	ClassRenaming map[*model.Type]string
	// PackageRenaming records source package -> final package wherever
	// they differ.
	PackageRenaming map[string]string
}

type globalSet struct {
	caseSensitive bool
	used          map[string]bool
}

func newGlobalSet(caseSensitive bool) *globalSet {
	return &globalSet{caseSensitive: caseSensitive, used: make(map[string]bool)}
}

func (g *globalSet) fold(name string) string {
	if g.caseSensitive {
		return name
	}
	return strings.ToLower(name)
}

func (g *globalSet) mark(binaryName string) { g.used[g.fold(binaryName)] = true }

func (g *globalSet) isUsed(binaryName string) bool { return g.used[g.fold(binaryName)] }

// Minify runs the ClassMinifier over p using strat, returning the class and
// package renaming tables.
func Minify(p *model.Program, strat strategy.NamingStrategy, dictionary []string, opts Options) (*Result, error) {
	global := newGlobalSet(opts.CaseSensitive)
	renaming := make(map[*model.Type]string)
	packageRenaming := make(map[string]string)
	namespaces := make(map[string]*namespace.Namespace)

	getNamespace := func(prefix string) *namespace.Namespace {
		ns, ok := namespaces[prefix]
		if !ok {
			ns = namespace.New(prefix, dictionary)
			namespaces[prefix] = ns
		}
		return ns
	}

	// A class with a kept inner class must stay in its original package
	// even under -repackageclasses: this is the conservative resolution
	// of the ambiguity the original tool's source leaves commented-out
	// (see DESIGN.md).
	hasKeptInner := make(map[*model.Type]bool)
	if opts.KeepInnerClassStructure {
		for _, t := range p.AllTypes() {
			if t.Inner != nil && t.Inner.Outer != nil {
				hasKeptInner[t.Inner.Outer] = true
			}
		}
	}

	phase := diagnostics.ForPhase("classminify")
	phase.Infof("reserve phase over %d types", len(p.AllTypes()))

	// Phase 1: reserve.
	for _, t := range p.AllTypes() {
		switch t.Kind {
		case model.ProgramKind:
			if d, ok := strat.ReservedDescriptor(t); ok {
				renaming[t] = d
				global.mark(model.DescriptorToBinaryName(d))
				phase.RecordKept()
				phase.Debugf("reserved %s -> %s", t.Descriptor, d)
			}
		case model.Missing:
			// Missing types have no program identity of their own, but
			// their descriptor is still reserved so that program classes
			// referencing them keep a stable name.
			renaming[t] = t.Descriptor
			global.mark(model.DescriptorToBinaryName(t.Descriptor))
		}
	}

	// Phase 2: rename, recursing into outer classes first.
	inProgress := make(map[*model.Type]bool)
	var renameOne func(t *model.Type) (string, error)
	renameOne = func(t *model.Type) (string, error) {
		if d, ok := renaming[t]; ok {
			return d, nil
		}
		if inProgress[t] {
			return "", fmt.Errorf("classminify: cyclic inner-class nesting detected at %s", t.Descriptor)
		}
		inProgress[t] = true
		defer delete(inProgress, t)

		var ns *namespace.Namespace
		if t.Inner != nil && opts.KeepInnerClassStructure {
			outer := t.Inner.Outer
			var outerDescriptor string
			if outer.Kind == model.ProgramKind {
				d, err := renameOne(outer)
				if err != nil {
					return "", err
				}
				outerDescriptor = d
			} else if d, ok := renaming[outer]; ok {
				outerDescriptor = d
			} else {
				// Outer absent from the rename set (shrunk away): force-
				// reserve its original descriptor so this inner class
				// still has a stable prefix.
				outerDescriptor = outer.Descriptor
				renaming[outer] = outerDescriptor
				global.mark(model.DescriptorToBinaryName(outerDescriptor))
			}
			prefix := model.DescriptorToBinaryName(outerDescriptor) + string(t.Inner.Separator)
			ns = getNamespace(prefix)
		} else {
			srcPrefix := t.PackagePrefix()
			prefix := srcPrefix
			if opts.Repackage != "" && !hasKeptInner[t] {
				prefix = opts.Repackage + "/"
			}
			ns = getNamespace(prefix)
			recordPackageRenaming(packageRenaming, srcPrefix, prefix)
		}

		name := ns.NextFreshName(global.isUsed, opts.CaseSensitive)
		binaryName := ns.Prefix() + name
		descriptor := model.BinaryNameToDescriptor(binaryName)
		renaming[t] = descriptor
		global.mark(binaryName)
		phase.RecordRenamed()
		phase.Debugf("%s -> %s", t.Descriptor, descriptor)
		return descriptor, nil
	}

	for _, t := range p.ProgramTypes() {
		if _, err := renameOne(t); err != nil {
			return nil, err
		}
	}

	// Phase 3: dangling-type pass. Any program-kind Type reachable from a
	// surviving method/field signature but absent from the model (pruned)
	// still needs a stable name so descriptor-derived hashes don't shift.
	danglingNS := getNamespace("")
	ensureRenamed := func(t *model.Type) {
		if t == nil || t.Kind != model.ProgramKind {
			return
		}
		if _, ok := renaming[t]; ok {
			return
		}
		if d, ok := strat.ReservedDescriptor(t); ok {
			renaming[t] = d
			global.mark(model.DescriptorToBinaryName(d))
			return
		}
		name := danglingNS.NextFreshName(global.isUsed, opts.CaseSensitive)
		descriptor := model.BinaryNameToDescriptor(name)
		renaming[t] = descriptor
		global.mark(name)
		phase.RecordRenamed()
		phase.Debugf("dangling type %s -> %s", t.Descriptor, descriptor)
	}
	for _, t := range p.ProgramTypes() {
		for _, m := range p.DeclaredMethods(t) {
			for _, param := range m.Ref.Proto.Params {
				ensureRenamed(param)
			}
			ensureRenamed(m.Ref.Proto.ReturnType)
		}
		for _, f := range p.DeclaredFields(t) {
			ensureRenamed(f.Ref.Type)
		}
	}

	phase.Done()
	phase.Infof("%d package remappings", len(packageRenaming))
	return &Result{ClassRenaming: renaming, PackageRenaming: packageRenaming}, nil
}

func recordPackageRenaming(table map[string]string, src, final string) {
	srcPkg := strings.TrimSuffix(src, "/")
	finalPkg := strings.TrimSuffix(final, "/")
	if srcPkg != finalPkg {
		table[srcPkg] = finalPkg
	}
}


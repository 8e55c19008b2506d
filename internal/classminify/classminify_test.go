package classminify

import (
	"testing"

	"github.com/chrispaulwu/minifier/internal/model"
	"github.com/chrispaulwu/minifier/internal/strategy"
)

// scenario A: two unrelated classes in different packages both take the
// first dictionary name, since namespaces are package-scoped.
func TestTwoClassesDifferentPackagesShareFirstDictionaryName(t *testing.T) {
	p := model.NewProgram()
	a := &model.Type{Descriptor: "Lcom/a/X;", Kind: model.ProgramKind}
	b := &model.Type{Descriptor: "Lcom/b/X;", Kind: model.ProgramKind}
	p.AddType(a)
	p.AddType(b)

	s, err := strategy.Load([]byte(`dictionary_words: ["e"]`))
	if err != nil {
		t.Fatal(err)
	}

	res, err := Minify(p, s, s.Dictionary(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	if got := res.ClassRenaming[a]; got != "Lcom/a/e;" {
		t.Errorf("A renamed to %q, want %q", got, "Lcom/a/e;")
	}
	if got := res.ClassRenaming[b]; got != "Lcom/b/e;" {
		t.Errorf("B renamed to %q, want %q", got, "Lcom/b/e;")
	}
}

// scenario E: inner class attribute is honored and prefixed by the kept
// outer class's descriptor.
func TestInnerClassPrefixedByKeptOuter(t *testing.T) {
	p := model.NewProgram()
	outer := &model.Type{Descriptor: "Lcom/p/O;", Kind: model.ProgramKind}
	inner := &model.Type{
		Descriptor: "Lcom/p/O$I;",
		Kind:       model.ProgramKind,
		Inner:      &model.InnerClassAttribute{Outer: outer, Simple: "I", Separator: '$'},
	}
	p.AddType(outer)
	p.AddType(inner)

	s, err := strategy.Load([]byte(`
classes:
  keep:
    "Lcom/p/O;": "Lcom/p/O;"
`))
	if err != nil {
		t.Fatal(err)
	}

	res, err := Minify(p, s, s.Dictionary(), Options{KeepInnerClassStructure: true})
	if err != nil {
		t.Fatal(err)
	}

	if got := res.ClassRenaming[outer]; got != "Lcom/p/O;" {
		t.Errorf("outer renamed to %q, want kept %q", got, "Lcom/p/O;")
	}
	innerDescriptor := res.ClassRenaming[inner]
	wantPrefix := "Lcom/p/O$"
	if len(innerDescriptor) < len(wantPrefix) || innerDescriptor[:len(wantPrefix)] != wantPrefix {
		t.Errorf("inner descriptor %q does not start with %q", innerDescriptor, wantPrefix)
	}
}

func TestRepackageConservativelyKeepsOuterOfKeptInnerInPlace(t *testing.T) {
	p := model.NewProgram()
	outer := &model.Type{Descriptor: "Lcom/p/O;", Kind: model.ProgramKind}
	inner := &model.Type{
		Descriptor: "Lcom/p/O$I;",
		Kind:       model.ProgramKind,
		Inner:      &model.InnerClassAttribute{Outer: outer, Simple: "I", Separator: '$'},
	}
	p.AddType(outer)
	p.AddType(inner)

	s, err := strategy.Load([]byte(`dictionary_words: ["e"]`))
	if err != nil {
		t.Fatal(err)
	}

	res, err := Minify(p, s, s.Dictionary(), Options{KeepInnerClassStructure: true, Repackage: "shrunk"})
	if err != nil {
		t.Fatal(err)
	}

	outerDescriptor := res.ClassRenaming[outer]
	if got, want := model.DescriptorToBinaryName(outerDescriptor), "com/p/e"; got != want {
		t.Errorf("outer with a kept inner should stay in its original package; got %q, want %q", got, want)
	}
}

func TestPackageRenamingTableRecordsOnlyChangedPackages(t *testing.T) {
	p := model.NewProgram()
	a := &model.Type{Descriptor: "Lcom/a/X;", Kind: model.ProgramKind}
	p.AddType(a)

	s, err := strategy.Load([]byte(`dictionary_words: ["e"]`))
	if err != nil {
		t.Fatal(err)
	}

	res, err := Minify(p, s, s.Dictionary(), Options{Repackage: "z"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := res.PackageRenaming["com/a"], "z"; got != want {
		t.Errorf("PackageRenaming[com/a] = %q, want %q", got, want)
	}
}

func TestDanglingTypeGetsFreshName(t *testing.T) {
	p := model.NewProgram()
	survivor := &model.Type{Descriptor: "Lcom/a/A;", Kind: model.ProgramKind}
	pruned := &model.Type{Descriptor: "Lcom/a/Pruned;", Kind: model.ProgramKind} // not added to p.Types
	voidType := &model.Type{Descriptor: "V"}
	p.AddType(survivor)
	p.AddMethod(&model.MethodDef{
		Ref:       model.MethodRef{Holder: survivor, Name: "f", Proto: model.Proto{Params: []*model.Type{pruned}, ReturnType: voidType}},
		InProgram: true,
	})

	s, err := strategy.Load([]byte(`dictionary_words: ["e", "f"]`))
	if err != nil {
		t.Fatal(err)
	}

	res, err := Minify(p, s, s.Dictionary(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.ClassRenaming[pruned]; !ok {
		t.Errorf("expected the pruned-but-referenced type to still receive a renaming entry")
	}
}

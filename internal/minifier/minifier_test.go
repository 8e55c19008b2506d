package minifier

import (
	"context"
	"testing"

	"github.com/chrispaulwu/minifier/internal/model"
	"github.com/chrispaulwu/minifier/internal/renaming"
	"github.com/chrispaulwu/minifier/internal/strategy"
)

func mustStrategy(t *testing.T, yaml string) *strategy.YAMLStrategy {
	t.Helper()
	s, err := strategy.Load([]byte(yaml))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// scenario B: A.f() and B.h() (B extends A) both have empty-param
// SignatureKeys; B.h must not collide with A's zero-param method pool.
func TestScenarioBSubclassAvoidsParentZeroParamNames(t *testing.T) {
	voidType := &model.Type{Descriptor: "V"}
	intType := &model.Type{Descriptor: "I"}

	a := &model.Type{Descriptor: "Lcom/a/A;", Kind: model.ProgramKind}
	b := &model.Type{Descriptor: "Lcom/a/B;", Kind: model.ProgramKind, Supertype: a}

	p := model.NewProgram()
	p.AddType(a)
	p.AddType(b)
	p.AddMethod(&model.MethodDef{Ref: model.MethodRef{Holder: a, Name: "f", Proto: model.Proto{ReturnType: voidType}}, InProgram: true})
	p.AddMethod(&model.MethodDef{Ref: model.MethodRef{Holder: a, Name: "g", Proto: model.Proto{Params: []*model.Type{intType}, ReturnType: voidType}}, InProgram: true})
	p.AddMethod(&model.MethodDef{Ref: model.MethodRef{Holder: b, Name: "h", Proto: model.Proto{ReturnType: voidType}}, InProgram: true})
	p.AddMethod(&model.MethodDef{Ref: model.MethodRef{Holder: b, Name: "i", Proto: model.Proto{Params: []*model.Type{intType}, ReturnType: voidType}}, InProgram: true})

	s := mustStrategy(t, `dictionary_words: ["a", "b", "c", "d"]`)

	res, err := Run(context.Background(), p, s, Options{Dictionary: s.Dictionary()})
	if err != nil {
		t.Fatal(err)
	}

	fKey := renaming.MethodKey(model.MethodRef{Holder: a, Name: "f", Proto: model.Proto{ReturnType: voidType}})
	hKey := renaming.MethodKey(model.MethodRef{Holder: b, Name: "h", Proto: model.Proto{ReturnType: voidType}})

	if res.Methods.Methods[fKey] == res.Methods.Methods[hKey] {
		t.Errorf("A.f and B.h share zero-param SignatureKey and must not collide: both got %q", res.Methods.Methods[fKey])
	}
}

// scenario C: interface I.foo() implemented by two unrelated classes; both
// receive the same final name as I.foo.
func TestScenarioCUnrelatedImplementersShareInterfaceMethodName(t *testing.T) {
	voidType := &model.Type{Descriptor: "V"}
	iface := &model.Type{Descriptor: "Lcom/a/I;", Kind: model.ProgramKind, IsInterface: true}
	c1 := &model.Type{Descriptor: "Lcom/a/C1;", Kind: model.ProgramKind, Interfaces: []*model.Type{iface}}
	c2 := &model.Type{Descriptor: "Lcom/a/C2;", Kind: model.ProgramKind, Interfaces: []*model.Type{iface}}

	p := model.NewProgram()
	p.AddType(iface)
	p.AddType(c1)
	p.AddType(c2)
	fooOn := func(holder *model.Type) model.MethodRef {
		return model.MethodRef{Holder: holder, Name: "foo", Proto: model.Proto{ReturnType: voidType}}
	}
	p.AddMethod(&model.MethodDef{Ref: fooOn(iface), InProgram: true})
	p.AddMethod(&model.MethodDef{Ref: fooOn(c1), InProgram: true})
	p.AddMethod(&model.MethodDef{Ref: fooOn(c2), InProgram: true})

	s := mustStrategy(t, `dictionary_words: ["a", "b"]`)
	res, err := Run(context.Background(), p, s, Options{Dictionary: s.Dictionary()})
	if err != nil {
		t.Fatal(err)
	}

	ifaceName := res.Methods.Methods[renaming.MethodKey(fooOn(iface))]
	c1Name := res.Methods.Methods[renaming.MethodKey(fooOn(c1))]
	c2Name := res.Methods.Methods[renaming.MethodKey(fooOn(c2))]

	if ifaceName == "" || ifaceName != c1Name || ifaceName != c2Name {
		t.Errorf("expected all three to agree, got I=%q C1=%q C2=%q", ifaceName, c1Name, c2Name)
	}
}

// scenario D: apply-mapping pins A.m() -> x; B extends A declares m(); B.m
// must also map to x.
func TestScenarioDApplyMappingPropagatesToSubclass(t *testing.T) {
	voidType := &model.Type{Descriptor: "V"}
	a := &model.Type{Descriptor: "Lcom/a/A;", Kind: model.ProgramKind}
	b := &model.Type{Descriptor: "Lcom/a/B;", Kind: model.ProgramKind, Supertype: a}

	p := model.NewProgram()
	p.AddType(a)
	p.AddType(b)
	mOn := func(holder *model.Type) model.MethodRef {
		return model.MethodRef{Holder: holder, Name: "m", Proto: model.Proto{ReturnType: voidType}}
	}
	p.AddMethod(&model.MethodDef{Ref: mOn(a), InProgram: true})
	p.AddMethod(&model.MethodDef{Ref: mOn(b), InProgram: true})

	s := mustStrategy(t, `
dictionary_words: ["z"]
methods:
  apply_mapping:
    - holder: "Lcom/a/A;"
      name: "m"
      params: []
      to: "x"
`)
	res, err := Run(context.Background(), p, s, Options{Dictionary: s.Dictionary()})
	if err != nil {
		t.Fatal(err)
	}

	aName := res.Methods.Methods[renaming.MethodKey(mOn(a))]
	bName := res.Methods.Methods[renaming.MethodKey(mOn(b))]
	if aName != "x" {
		t.Errorf("A.m = %q, want %q", aName, "x")
	}
	if bName != "x" {
		t.Errorf("B.m = %q, want %q", bName, "x")
	}
}

// scenario F: A.p() reserved to "x"; B extends A declares p() and q(); B.p
// must be "x" and B.q must differ from it.
func TestScenarioFSubclassInheritsReservedNameButFreshForOthers(t *testing.T) {
	voidType := &model.Type{Descriptor: "V"}
	a := &model.Type{Descriptor: "Lcom/a/A;", Kind: model.ProgramKind}
	b := &model.Type{Descriptor: "Lcom/a/B;", Kind: model.ProgramKind, Supertype: a}

	p := model.NewProgram()
	p.AddType(a)
	p.AddType(b)
	pOn := func(holder *model.Type) model.MethodRef {
		return model.MethodRef{Holder: holder, Name: "p", Proto: model.Proto{ReturnType: voidType}}
	}
	qOn := model.MethodRef{Holder: b, Name: "q", Proto: model.Proto{ReturnType: voidType}}
	p.AddMethod(&model.MethodDef{Ref: pOn(a), InProgram: true})
	p.AddMethod(&model.MethodDef{Ref: pOn(b), InProgram: true})
	p.AddMethod(&model.MethodDef{Ref: qOn, InProgram: true})

	s := mustStrategy(t, `
dictionary_words: ["y"]
methods:
  keep:
    - holder: "Lcom/a/A;"
      name: "p"
      params: []
      to: "x"
`)
	res, err := Run(context.Background(), p, s, Options{Dictionary: s.Dictionary()})
	if err != nil {
		t.Fatal(err)
	}

	bpName := res.Methods.Methods[renaming.MethodKey(pOn(b))]
	bqName := res.Methods.Methods[renaming.MethodKey(qOn)]
	if bpName != "x" {
		t.Errorf("B.p = %q, want %q", bpName, "x")
	}
	if bqName == "x" {
		t.Errorf("B.q got the reserved name %q, expected a fresh one", bqName)
	}
}

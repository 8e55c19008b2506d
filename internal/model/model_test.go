package model

import "testing"

func TestDescriptorToBinaryName(t *testing.T) {
	tests := []struct {
		descriptor string
		want       string
	}{
		{"Lcom/x/A;", "com/x/A"},
		{"Lcom/a/b/C;", "com/a/b/C"},
		{"LA;", "A"},
	}
	for _, tt := range tests {
		if got := DescriptorToBinaryName(tt.descriptor); got != tt.want {
			t.Errorf("DescriptorToBinaryName(%q) = %q, want %q", tt.descriptor, got, tt.want)
		}
	}
}

func TestPackagePrefix(t *testing.T) {
	ty := &Type{Descriptor: "Lcom/x/A;"}
	if got, want := ty.PackagePrefix(), "com/x/"; got != want {
		t.Errorf("PackagePrefix() = %q, want %q", got, want)
	}
	ty2 := &Type{Descriptor: "LA;"}
	if got, want := ty2.PackagePrefix(), ""; got != want {
		t.Errorf("PackagePrefix() = %q, want %q", got, want)
	}
}

func TestKeyForDefaultIgnoresReturnType(t *testing.T) {
	intType := &Type{Descriptor: "I"}
	voidType := &Type{Descriptor: "V"}
	holder := &Type{Descriptor: "Lcom/x/A;"}

	a := MethodRef{Holder: holder, Name: "f", Proto: Proto{Params: []*Type{intType}, ReturnType: voidType}}
	b := MethodRef{Holder: holder, Name: "f", Proto: Proto{Params: []*Type{intType}, ReturnType: intType}}

	if KeyFor(a, false) != KeyFor(b, false) {
		t.Errorf("default SignatureKey should ignore return type: %q != %q", KeyFor(a, false), KeyFor(b, false))
	}
	if KeyFor(a, true) == KeyFor(b, true) {
		t.Errorf("aggressive SignatureKey should distinguish return type")
	}
}

func TestImplementsTransitive(t *testing.T) {
	p := NewProgram()
	iBase := &Type{Descriptor: "Lcom/x/IBase;", IsInterface: true}
	iMid := &Type{Descriptor: "Lcom/x/IMid;", IsInterface: true, Interfaces: []*Type{iBase}}
	class := &Type{Descriptor: "Lcom/x/C;", Interfaces: []*Type{iMid}}
	p.AddType(iBase)
	p.AddType(iMid)
	p.AddType(class)

	if !p.Implements(class, iBase) {
		t.Errorf("expected C to transitively implement IBase through IMid")
	}
}

func TestResolveMethodWalksSupertypeChain(t *testing.T) {
	p := NewProgram()
	voidType := &Type{Descriptor: "V"}
	a := &Type{Descriptor: "Lcom/x/A;", Kind: ProgramKind}
	b := &Type{Descriptor: "Lcom/x/B;", Kind: ProgramKind, Supertype: a}

	mref := MethodRef{Holder: a, Name: "f", Proto: Proto{ReturnType: voidType}}
	p.AddMethod(&MethodDef{Ref: mref, InProgram: true})

	resolved, ok := p.ResolveMethod(b, "f", KeyFor(mref, false), false)
	if !ok {
		t.Fatal("expected resolution to succeed via supertype walk")
	}
	if resolved.Ref.Holder != a {
		t.Errorf("resolved method holder = %v, want %v", resolved.Ref.Holder, a)
	}
}

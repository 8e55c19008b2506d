package renaming

import (
	"encoding/json"
	"testing"

	"github.com/chrispaulwu/minifier/internal/classminify"
	"github.com/chrispaulwu/minifier/internal/model"
)

func TestBuildClassRenamingUsesDescriptorKeys(t *testing.T) {
	a := &model.Type{Descriptor: "Lcom/a/X;"}
	r := &classminify.Result{
		ClassRenaming:   map[*model.Type]string{a: "Lcom/a/e;"},
		PackageRenaming: map[string]string{"com/a": "com/a"},
	}
	out := BuildClassRenaming(r)
	if out.Types["Lcom/a/X;"] != "Lcom/a/e;" {
		t.Errorf("got %v", out.Types)
	}
}

func TestMethodKeyIsStableAcrossEqualValueRefs(t *testing.T) {
	holder := &model.Type{Descriptor: "Lcom/a/X;"}
	intType := &model.Type{Descriptor: "I"}
	ref1 := model.MethodRef{Holder: holder, Name: "f", Proto: model.Proto{Params: []*model.Type{intType}}}
	ref2 := model.MethodRef{Holder: holder, Name: "f", Proto: model.Proto{Params: []*model.Type{intType}}}
	if MethodKey(ref1) != MethodKey(ref2) {
		t.Errorf("expected identical keys, got %q vs %q", MethodKey(ref1), MethodKey(ref2))
	}
}

func TestMarshalJSONRoundTrips(t *testing.T) {
	classes := &ClassRenaming{Types: map[string]string{"Lcom/a/X;": "Lcom/a/e;"}, PackageRenaming: map[string]string{}}
	methods := &MethodRenaming{Methods: map[string]string{"k": "a"}, Kept: map[string]bool{}}
	fields := &FieldRenaming{Fields: map[string]string{"k": "a"}}
	summary := Summary{ClassesRenamed: 1}

	data, err := MarshalJSON(classes, methods, fields, summary)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["classes"]; !ok {
		t.Errorf("missing classes key in %s", data)
	}
}

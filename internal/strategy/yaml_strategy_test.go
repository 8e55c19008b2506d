package strategy

import (
	"testing"

	"github.com/chrispaulwu/minifier/internal/model"
)

const testConfig = `
dictionary_words: ["e"]
classes:
  keep:
    "Lcom/p/O;": "Lcom/p/O;"
methods:
  apply_mapping:
    - holder: "Lcom/x/A;"
      name: "m"
      params: []
      to: "x"
fields:
  keep:
    - holder: "Lcom/x/A;"
      name: "f"
      type: "I"
      to: "f"
no_rename_members:
  - "Lcom/x/Kept;"
`

func TestLoadAndReservedDescriptor(t *testing.T) {
	s, err := Load([]byte(testConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	ty := &model.Type{Descriptor: "Lcom/p/O;"}
	got, ok := s.ReservedDescriptor(ty)
	if !ok || got != "Lcom/p/O;" {
		t.Errorf("ReservedDescriptor() = (%q, %v), want (\"Lcom/p/O;\", true)", got, ok)
	}
}

func TestReservedNameForMethodAppliesMapping(t *testing.T) {
	s, err := Load([]byte(testConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	holder := &model.Type{Descriptor: "Lcom/x/A;"}
	voidType := &model.Type{Descriptor: "V"}
	def := &model.MethodDef{Ref: model.MethodRef{Holder: holder, Name: "m", Proto: model.Proto{ReturnType: voidType}}}

	got, ok := s.ReservedName(def)
	if !ok || got != "x" {
		t.Errorf("ReservedName() = (%q, %v), want (\"x\", true)", got, ok)
	}
}

func TestAllowMemberRenamingRespectsNoRenameList(t *testing.T) {
	s, err := Load([]byte(testConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	kept := &model.Type{Descriptor: "Lcom/x/Kept;"}
	other := &model.Type{Descriptor: "Lcom/x/Other;"}

	if s.AllowMemberRenaming(kept) {
		t.Errorf("expected AllowMemberRenaming(Kept) = false")
	}
	if !s.AllowMemberRenaming(other) {
		t.Errorf("expected AllowMemberRenaming(Other) = true")
	}
}

func TestNextNameSkipsUnavailable(t *testing.T) {
	s, err := Load([]byte(`dictionary_words: ["e", "x"]`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	taken := map[string]bool{"e": true}
	got := s.NextName(model.MethodRef{}, nil, func(c string) bool { return !taken[c] })
	if got != "x" {
		t.Errorf("NextName() = %q, want %q", got, "x")
	}
}

func TestNextNameAcceptsFieldRef(t *testing.T) {
	s, err := Load([]byte(`dictionary_words: ["e", "x"]`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got := s.NextName(model.FieldRef{}, nil, func(string) bool { return true })
	if got != "e" {
		t.Errorf("NextName() = %q, want %q", got, "e")
	}
}

func TestLoadDefaultDictionaryIsEmpty(t *testing.T) {
	words, err := LoadDictionary("default")
	if err != nil {
		t.Fatalf("LoadDictionary() error = %v", err)
	}
	if len(words) != 0 {
		t.Errorf("expected the default dictionary to be empty, got %v", words)
	}
}

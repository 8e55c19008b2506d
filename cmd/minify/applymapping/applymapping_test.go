package applymapping

import (
	"testing"

	"github.com/chrispaulwu/minifier/internal/model"
	"github.com/chrispaulwu/minifier/internal/strategy"
)

func TestValidateFlagsCollidingApplyMapping(t *testing.T) {
	a := &model.Type{Descriptor: "Lcom/a/A;", Kind: model.ProgramKind}
	b := &model.Type{Descriptor: "Lcom/a/B;", Kind: model.ProgramKind}
	p := model.NewProgram()
	p.AddType(a)
	p.AddType(b)

	strat, err := strategy.Load([]byte(`
classes:
  apply_mapping:
    "Lcom/a/A;": "Lcom/a/X;"
    "Lcom/a/B;": "Lcom/a/X;"
`))
	if err != nil {
		t.Fatal(err)
	}

	problems := validate(p, strat)
	if len(problems) != 1 {
		t.Fatalf("expected exactly one collision, got %d: %v", len(problems), problems)
	}
}

func TestValidateAcceptsDistinctMappings(t *testing.T) {
	a := &model.Type{Descriptor: "Lcom/a/A;", Kind: model.ProgramKind}
	b := &model.Type{Descriptor: "Lcom/a/B;", Kind: model.ProgramKind}
	p := model.NewProgram()
	p.AddType(a)
	p.AddType(b)

	strat, err := strategy.Load([]byte(`
classes:
  apply_mapping:
    "Lcom/a/A;": "Lcom/a/X;"
    "Lcom/a/B;": "Lcom/a/Y;"
`))
	if err != nil {
		t.Fatal(err)
	}

	if problems := validate(p, strat); len(problems) != 0 {
		t.Errorf("expected no collisions, got %v", problems)
	}
}

package goadapter

import (
	"testing"

	"github.com/chrispaulwu/minifier/internal/model"
)

// TestLoadAdaptsNamespaceTypes exercises the adapter against a small,
// dependency-free package in this module (internal/namespace) so the test
// does not need network access to resolve third-party types.
func TestLoadAdaptsNamespaceTypes(t *testing.T) {
	p, err := Load(Options{Dir: "../namespace", Patterns: []string{"."}})
	if err != nil {
		t.Fatal(err)
	}

	var found *model.Type
	for _, ty := range p.ProgramTypes() {
		if ty.BinaryName() == "github.com/chrispaulwu/minifier/internal/namespace/Namespace" {
			found = ty
			break
		}
	}
	if found == nil {
		t.Fatalf("expected a program type for Namespace, got %d program types", len(p.ProgramTypes()))
	}
}

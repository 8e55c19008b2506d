package reservation

import (
	"testing"

	"github.com/chrispaulwu/minifier/internal/model"
)

const key1 = model.SignatureKey("(I)")

func TestIsReservedWalksAncestorChain(t *testing.T) {
	parent := newState(nil, true)
	parent.Reserve(key1, "x", "f")
	child := newState(parent, true)

	if !child.IsReserved(key1, "x") {
		t.Errorf("expected child to see parent's reservation")
	}
	if child.IsReserved(key1, "y") {
		t.Errorf("did not expect y to be reserved")
	}
}

func TestReservedForOtherDistinguishesOwner(t *testing.T) {
	s := newState(nil, true)
	s.Reserve(key1, "x", "f")

	if s.ReservedForOther(key1, "x", "f") {
		t.Errorf("reservation owned by f should not block f itself")
	}
	if !s.ReservedForOther(key1, "x", "g") {
		t.Errorf("reservation owned by f should block a different method g")
	}
}

func TestGetOrCreateBuildsParentChain(t *testing.T) {
	tr := NewTree(true)
	a := &model.Type{Descriptor: "Lcom/x/A;"}
	b := &model.Type{Descriptor: "Lcom/x/B;"}
	parentOf := func(t *model.Type) *model.Type {
		if t == b {
			return a
		}
		return nil
	}

	sa := tr.GetOrCreate(a, parentOf)
	sb := tr.GetOrCreate(b, parentOf)

	if sb.Parent() != sa {
		t.Errorf("expected B's reservation state parent to be A's")
	}
	if sa.Parent() != tr.Root() {
		t.Errorf("expected A's reservation state parent to be the synthetic root")
	}

	// Repeated calls return the same node rather than recreating it.
	if again := tr.GetOrCreate(a, parentOf); again != sa {
		t.Errorf("GetOrCreate should be idempotent for the same key")
	}
}

func TestAllReservedInChainUnionsAncestors(t *testing.T) {
	tr := NewTree(true)
	a := &model.Type{Descriptor: "Lcom/x/A;"}
	b := &model.Type{Descriptor: "Lcom/x/B;"}
	parentOf := func(t *model.Type) *model.Type {
		if t == b {
			return a
		}
		return nil
	}
	sa := tr.GetOrCreate(a, parentOf)
	sb := tr.GetOrCreate(b, parentOf)
	sa.Reserve(key1, "x", "f")
	sb.Reserve(key1, "y", "g")

	got := sb.AllReservedInChain(key1)
	if len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("AllReservedInChain() = %v, want [x y]", got)
	}
}

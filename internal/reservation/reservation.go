// Package reservation implements the ReservationState tree: a hierarchical
// store of names forbidden by keep rules or apply-mapping, parallel to the
// class hierarchy and rooted at a synthetic Object node.
//
// Reservations for a program class's declared methods are not stored on
// the class's own node; they are stored on the node for that class's
// frontier (see internal/frontier), so that a reservation sitting deep in
// one program subtree does not leak into an unrelated program subtree that
// merely shares the same non-program ancestor further up.
package reservation

import (
	"strings"

	"github.com/chrispaulwu/minifier/internal/model"
)

// reservedEntry keeps the name in its original case (for NamesFor /
// AllReservedInChain output) alongside the owner used for collision
// resolution; the map it lives in is keyed by the folded name so
// -dontusemixedcaseclassnames-style case-insensitive lookups still work.
type reservedEntry struct {
	name  string
	owner string
}

// State is one node of the ReservationState tree. Each reserved name
// records the original ("owner") method name it was reserved for, so a
// later availability check can distinguish "reserved for this same logical
// method" (fine — that's how an apply-mapping pin is honored by a
// subclass) from "reserved for an unrelated method of the same
// SignatureKey" (blocks the candidate).
type State struct {
	parent        *State
	reserved      map[model.SignatureKey]map[string]reservedEntry // foldedName -> entry
	caseSensitive bool
}

func newState(parent *State, caseSensitive bool) *State {
	return &State{parent: parent, reserved: make(map[model.SignatureKey]map[string]reservedEntry), caseSensitive: caseSensitive}
}

func (s *State) fold(name string) string {
	if s.caseSensitive {
		return name
	}
	return strings.ToLower(name)
}

// Reserve records name as reserved for key at this node, owned by
// ownerName (the original method name this reservation was made for).
func (s *State) Reserve(key model.SignatureKey, name, ownerName string) {
	set, ok := s.reserved[key]
	if !ok {
		set = make(map[string]reservedEntry)
		s.reserved[key] = set
	}
	set[s.fold(name)] = reservedEntry{name: name, owner: ownerName}
}

// NamesFor returns every name reserved for key at this node alone (not
// walking ancestors) as a stable, sorted slice.
func (s *State) NamesFor(key model.SignatureKey) []string {
	set := s.reserved[key]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for _, e := range set {
		out = append(out, e.name)
	}
	sortStrings(out)
	return out
}

// IsReserved reports whether name is reserved for key anywhere in this
// node's ancestor chain (this node included).
func (s *State) IsReserved(key model.SignatureKey, name string) bool {
	folded := s.fold(name)
	for n := s; n != nil; n = n.parent {
		if _, ok := n.reserved[key][folded]; ok {
			return true
		}
	}
	return false
}

// ReservedForOther reports whether candidate is reserved, anywhere in this
// node's ancestor chain, for a logical method other than ownerName.
func (s *State) ReservedForOther(key model.SignatureKey, candidate, ownerName string) bool {
	folded := s.fold(candidate)
	for n := s; n != nil; n = n.parent {
		if e, ok := n.reserved[key][folded]; ok && e.owner != ownerName {
			return true
		}
	}
	return false
}

// AllReservedInChain returns the union of names reserved for key across
// this node's entire ancestor chain, sorted for determinism.
func (s *State) AllReservedInChain(key model.SignatureKey) []string {
	seen := make(map[string]string) // foldedName -> original-case name
	for n := s; n != nil; n = n.parent {
		for folded, e := range n.reserved[key] {
			if _, ok := seen[folded]; !ok {
				seen[folded] = e.name
			}
		}
	}
	out := make([]string, 0, len(seen))
	for _, name := range seen {
		out = append(out, name)
	}
	sortStrings(out)
	return out
}

// OwnerOf returns the owner recorded for name under key at this node
// alone (not walking ancestors), or "", false if not reserved here.
func (s *State) OwnerOf(key model.SignatureKey, name string) (string, bool) {
	e, ok := s.reserved[key][s.fold(name)]
	return e.owner, ok
}

// Parent exposes the ancestor node, or nil at the synthetic Object root.
func (s *State) Parent() *State { return s.parent }

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// Tree is the arena owning every ReservationState, keyed by type identity.
// States are created lazily and never destroyed.
type Tree struct {
	root          *State
	byKey         map[*model.Type]*State
	caseSensitive bool
}

// NewTree creates a Tree with its synthetic Object root already present.
// caseSensitive false folds every reserved/looked-up name to lower case
// before comparison, matching -dontusemixedcaseclassnames.
func NewTree(caseSensitive bool) *Tree {
	return &Tree{
		root:          newState(nil, caseSensitive),
		byKey:         make(map[*model.Type]*State),
		caseSensitive: caseSensitive,
	}
}

// Root returns the synthetic Object node.
func (t *Tree) Root() *State { return t.root }

// GetOrCreate returns the ReservationState for key (usually a frontier
// type, but interfaces are also keyed directly by their own Type), creating
// it — and its parent chain — if absent. parentOf, when non-nil, is
// consulted to find key's parent type; a nil result or nil parentOf
// attaches the new node directly under the synthetic Object root.
func (t *Tree) GetOrCreate(key *model.Type, parentOf func(*model.Type) *model.Type) *State {
	if key == nil {
		return t.root
	}
	if s, ok := t.byKey[key]; ok {
		return s
	}
	var parent *State
	if parentOf != nil {
		if p := parentOf(key); p != nil && p != key {
			parent = t.GetOrCreate(p, parentOf)
		}
	}
	if parent == nil {
		parent = t.root
	}
	s := newState(parent, t.caseSensitive)
	t.byKey[key] = s
	return s
}

// Lookup returns the existing ReservationState for key, if any, without
// creating one.
func (t *Tree) Lookup(key *model.Type) (*State, bool) {
	s, ok := t.byKey[key]
	return s, ok
}

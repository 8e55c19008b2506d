// Package naming implements the NamingState tree: a hierarchical store of
// names already committed during method-name assignment, parallel to the
// ReservationState tree (see internal/reservation) and to the program
// class hierarchy itself.
//
// Two methods are considered the same logical method — and so are allowed
// to share a name via inheritance — when they have the same original name
// and the same SignatureKey; that pair is this package's stand-in for
// "same override chain position".
package naming

import (
	"strings"

	"github.com/chrispaulwu/minifier/internal/model"
	"github.com/chrispaulwu/minifier/internal/namesource"
	"github.com/chrispaulwu/minifier/internal/reservation"
)

// internalState is the per-SignatureKey bookkeeping living on one Node.
type internalState struct {
	// assigned maps the original method name (identifying a logical
	// override-chain slot) to the final name committed for it at or above
	// this node.
	assigned map[string]string
	// usedBy maps a folded final name to the original names of every
	// logical method that has claimed it at or above this node, so a fresh
	// candidate can be rejected if it is already claimed by a different
	// logical method sharing this SignatureKey.
	usedBy map[string][]string
	source *namesource.NameSource
}

func newInternalState(dictionary []string) *internalState {
	return &internalState{
		assigned: make(map[string]string),
		usedBy:   make(map[string][]string),
		source:   namesource.New(dictionary),
	}
}

// Node is one NamingState, bound to a program class and to the
// ReservationState of that class's frontier.
type Node struct {
	parent        *Node
	reservation   *reservation.State
	states        map[model.SignatureKey]*internalState
	dictionary    []string
	caseSensitive bool
}

func (n *Node) fold(name string) string {
	if n.caseSensitive {
		return name
	}
	return strings.ToLower(name)
}

// Tree is the arena owning every naming Node, keyed by program class.
type Tree struct {
	byType        map[*model.Type]*Node
	caseSensitive bool
}

// NewTree creates an empty Tree. caseSensitive false folds every assigned
// name to lower case before collision checks, matching
// -dontusemixedcaseclassnames.
func NewTree(caseSensitive bool) *Tree {
	return &Tree{byType: make(map[*model.Type]*Node), caseSensitive: caseSensitive}
}

// GetOrCreate returns the Node for t, creating it if absent. parentType
// gives t's immediate program superclass, or nil if t has none; the
// parent's node is looked up, not created, so a parentType without a node
// yet leaves the new node with no parent. res gives the ReservationState
// this node should be bound to (ordinarily the frontier's).
func (tr *Tree) GetOrCreate(t *model.Type, parentType *model.Type, res *reservation.State, dictionary []string) *Node {
	if n, ok := tr.byType[t]; ok {
		return n
	}
	var parent *Node
	if parentType != nil {
		parent = tr.byType[parentType] // caller must create ancestors first (top-down walk)
	}
	n := &Node{parent: parent, reservation: res, states: make(map[model.SignatureKey]*internalState), dictionary: dictionary, caseSensitive: tr.caseSensitive}
	tr.byType[t] = n
	return n
}

// Lookup returns the existing Node for t, if any.
func (tr *Tree) Lookup(t *model.Type) (*Node, bool) {
	n, ok := tr.byType[t]
	return n, ok
}

func (n *Node) stateFor(key model.SignatureKey) *internalState {
	s, ok := n.states[key]
	if !ok {
		s = newInternalState(n.dictionary)
		n.states[key] = s
	}
	return s
}

// AssignedFor walks this node's ancestor chain looking for an already
// committed name for originalName under key, returning "", false if none
// is found anywhere in the chain.
func (n *Node) AssignedFor(key model.SignatureKey, originalName string) (string, bool) {
	for node := n; node != nil; node = node.parent {
		if s, ok := node.states[key]; ok {
			if name, ok := s.assigned[originalName]; ok {
				return name, true
			}
		}
	}
	return "", false
}

// IsAvailable reports whether candidate may be used for originalName under
// key at this node: it must not already be claimed (usedBy) by a
// different logical method anywhere in the chain, and must not be
// reserved (in resState) for any other logical method of this key.
func (n *Node) IsAvailable(key model.SignatureKey, originalName, candidate string, resState *reservation.State) bool {
	folded := n.fold(candidate)
	for node := n; node != nil; node = node.parent {
		if s, ok := node.states[key]; ok {
			for _, claimant := range s.usedBy[folded] {
				if claimant != originalName {
					return false
				}
			}
		}
	}
	if resState != nil && resState.ReservedForOther(key, candidate, originalName) {
		return false
	}
	return true
}

// Assign commits candidate as the final name for originalName under key at
// this node, updating both assigned and usedBy.
func (n *Node) Assign(key model.SignatureKey, originalName, candidate string) {
	s := n.stateFor(key)
	s.assigned[originalName] = candidate
	folded := n.fold(candidate)
	s.usedBy[folded] = appendUnique(s.usedBy[folded], originalName)
}

// FreshCandidate draws the next not-yet-tried candidate from this node's
// per-SignatureKey NameSource (creating the source lazily on first use).
func (n *Node) FreshCandidate(key model.SignatureKey) string {
	return n.stateFor(key).source.Next()
}

// Reservation returns the ReservationState this node is bound to.
func (n *Node) Reservation() *reservation.State { return n.reservation }

func appendUnique(s []string, v string) []string {
	for _, e := range s {
		if e == v {
			return s
		}
	}
	return append(s, v)
}

// Package methodminify implements the class-side halves of the
// MethodMinifier: Phase 1 (class reservation) and Phase 4
// (class assignment). The interface sub-problem (Phases 2 and
// 3) lives in internal/interfaceminify, since interfaces form a lattice
// rather than a tree and need a distinct traversal.
package methodminify

import (
	"sort"

	"github.com/chrispaulwu/minifier/internal/diagnostics"
	"github.com/chrispaulwu/minifier/internal/frontier"
	"github.com/chrispaulwu/minifier/internal/model"
	"github.com/chrispaulwu/minifier/internal/reservation"
)

// ReservePhase is Phase 1: walk the class hierarchy top-down (supertypes
// before subtypes — a leaves-first walk would let a subclass's declared
// method miss a reservation its superclass is about to register) and, for
// every declared method with a strategy reservation, record it at the
// method holder's frontier.
//
// It returns the populated ReservationState tree and the Frontier map both
// later phases need. caseSensitive false folds reserved names to lower
// case before collision checks, matching -dontusemixedcaseclassnames.
func ReservePhase(p *model.Program, aggressive model.AggressiveOverloading, reservedName func(*model.MethodDef) (string, bool), caseSensitive bool) (*reservation.Tree, *frontier.Map) {
	fmap := frontier.ComputeAll(p)
	tree := reservation.NewTree(caseSensitive)
	phase := diagnostics.ForPhase("methodminify")

	types := p.ProgramTypes()
	sort.Slice(types, func(i, j int) bool { return depthOf(types[i]) < depthOf(types[j]) })

	for _, t := range types {
		f := fmap.Of(t)
		state := tree.GetOrCreate(f, nil) // frontiers pool directly under the synthetic Object root
		for _, m := range p.DeclaredMethods(t) {
			name, ok := reservedName(m)
			if !ok {
				continue
			}
			key := model.KeyFor(m.Ref, aggressive)
			state.Reserve(key, name, m.Ref.Name)
			phase.Debugf("reserved %s.%s -> %s (frontier %s)", t.Descriptor, m.Ref.Name, name, f.Descriptor)
		}
	}

	return tree, fmap
}

// depthOf returns a class's distance from a type with no supertype, used
// to order the reserve-phase and assign-phase walks so supertypes are
// always visited (and their frontier/reservation/naming state populated)
// before their subtypes. Determinism across ties is irrelevant here: reservation order
// within one frontier's bucket does not affect the resulting set.
func depthOf(t *model.Type) int {
	d := 0
	for s := t.Supertype; s != nil; s = s.Supertype {
		d++
	}
	return d
}

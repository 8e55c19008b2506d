package methodminify

import (
	"sort"

	"github.com/chrispaulwu/minifier/internal/diagnostics"
	"github.com/chrispaulwu/minifier/internal/errs"
	"github.com/chrispaulwu/minifier/internal/frontier"
	"github.com/chrispaulwu/minifier/internal/model"
	"github.com/chrispaulwu/minifier/internal/naming"
	"github.com/chrispaulwu/minifier/internal/reservation"
)

// AssignContext bundles everything Phase 4 needs beyond the Program
// itself: the reservation tree and frontier map Phase 1 built, the
// interface reservation tree Phase 2 built (internal/interfaceminify), and
// the strategy.
type AssignContext struct {
	ClassReservations     *reservation.Tree
	Frontier              *frontier.Map
	InterfaceReservations *reservation.Tree // lookup-only here
	Aggressive            model.AggressiveOverloading
	ReservedName          func(*model.MethodDef) (string, bool)
	AllowMemberRenaming   func(*model.Type) bool
	Dictionary            []string
	// CaseSensitive false folds assigned names to lower case before
	// collision checks, matching -dontusemixedcaseclassnames.
	CaseSensitive bool
}

// AssignPhase is Phase 4: top-down walk over program classes, excluding
// interfaces, assigning a final name to every declared method.
//
// It returns MethodRef -> final name, plus the set of refs whose final name
// is the one the strategy reserved for them (a keep rule or an
// apply-mapping entry, which may differ from the original name).
func AssignPhase(p *model.Program, ctx *AssignContext) (map[model.MethodRef]string, map[model.MethodRef]bool, error) {
	tree := naming.NewTree(ctx.CaseSensitive)
	final := make(map[model.MethodRef]string)
	kept := make(map[model.MethodRef]bool)
	phase := diagnostics.ForPhase("methodminify")

	types := p.ProgramTypes()
	sort.Slice(types, func(i, j int) bool { return depthOf(types[i]) < depthOf(types[j]) })

	nodeFor := func(t *model.Type) *naming.Node {
		f := ctx.Frontier.Of(t)
		res := ctx.ClassReservations.GetOrCreate(f, nil)
		var parentType *model.Type
		if t.Supertype != nil && t.Supertype.Kind == model.ProgramKind {
			parentType = t.Supertype
		}
		return tree.GetOrCreate(t, parentType, res, ctx.Dictionary)
	}

	for _, t := range types {
		if t.IsInterface {
			continue
		}
		node := nodeFor(t)
		resState := node.Reservation()

		for _, m := range p.DeclaredMethods(t) {
			if m.Ref.Name == "<init>" || m.Ref.Name == "<clinit>" {
				continue
			}
			key := model.KeyFor(m.Ref, ctx.Aggressive)
			name, err := assignName(p, t, node, resState, key, m, ctx)
			if err != nil {
				return nil, nil, err
			}
			final[m.Ref] = name
			if reserved, ok := ctx.ReservedName(m); ok && reserved == name {
				kept[m.Ref] = true
				phase.RecordKept()
			} else {
				phase.RecordRenamed()
			}
			phase.Debugf("%s.%s -> %s", t.Descriptor, m.Ref.Name, name)
		}
	}

	phase.Done()
	return final, kept, nil
}

func assignName(p *model.Program, t *model.Type, node *naming.Node, resState *reservation.State, key model.SignatureKey, m *model.MethodDef, ctx *AssignContext) (string, error) {
	originalName := m.Ref.Name

	if !ctx.AllowMemberRenaming(t) {
		node.Assign(key, originalName, originalName)
		return originalName, nil
	}

	if reserved, ok := ctx.ReservedName(m); ok {
		if reserved == originalName {
			node.Assign(key, originalName, reserved)
			return reserved, nil
		}
		if node.IsAvailable(key, originalName, reserved, resState) {
			node.Assign(key, originalName, reserved)
			return reserved, nil
		}
		if prior, ok := node.AssignedFor(key, originalName); ok {
			return prior, nil
		}
		return "", &errs.InvariantViolation{
			Member: t.Descriptor + "." + originalName,
			Name:   reserved,
			Reason: "reserved name unavailable and no prior assignment to fall back to",
		}
	}

	if prior, ok := node.AssignedFor(key, originalName); ok {
		return prior, nil
	}

	if candidates := resState.AllReservedInChain(key); len(candidates) > 0 {
		if len(candidates) == 1 {
			if node.IsAvailable(key, originalName, candidates[0], resState) {
				node.Assign(key, originalName, candidates[0])
				return candidates[0], nil
			}
		} else {
			for _, candidate := range candidates {
				if !node.IsAvailable(key, originalName, candidate, resState) {
					continue
				}
				if agreesWithAnyInterface(p, t, key, candidate, ctx) {
					node.Assign(key, originalName, candidate)
					return candidate, nil
				}
			}
		}
	}

	for {
		candidate := node.FreshCandidate(key)
		if node.IsAvailable(key, originalName, candidate, resState) {
			node.Assign(key, originalName, candidate)
			return candidate, nil
		}
	}
}

// agreesWithAnyInterface reports whether candidate is also reserved, for
// the same SignatureKey, in at least one interface t implements — the
// cross-hierarchy agreement check needed when multiple apply-mapping
// reservations are in play for one signature.
func agreesWithAnyInterface(p *model.Program, t *model.Type, key model.SignatureKey, candidate string, ctx *AssignContext) bool {
	for _, t2 := range p.AllTypes() {
		if !t2.IsInterface || !p.Implements(t, t2) {
			continue
		}
		if res, ok := ctx.InterfaceReservations.Lookup(t2); ok && res.IsReserved(key, candidate) {
			return true
		}
	}
	return false
}

// Package interfaceminify implements the InterfaceMethodMinifier: the
// transitive closure over the interface lattice needed for collision-free
// cross-interface method names. Interfaces do not form a tree,
// so this package computes connected components over the
// extends/implemented-by relation rather than reusing the class-side
// parent-chain ReservationState walk.
package interfaceminify

import (
	"sort"

	"github.com/chrispaulwu/minifier/internal/diagnostics"
	"github.com/chrispaulwu/minifier/internal/frontier"
	"github.com/chrispaulwu/minifier/internal/model"
	"github.com/chrispaulwu/minifier/internal/naming"
	"github.com/chrispaulwu/minifier/internal/reservation"
)

// components computes, for every interface-kind type reachable in p
// (including non-program ones, since a shared library ancestor can
// connect two unrelated program interfaces), its connected component
// under the undirected "extends" relation, with interfaces that share an
// implementing type also joined.
func components(p *model.Program) map[*model.Type][]*model.Type {
	adj := make(map[*model.Type][]*model.Type)
	var allIfaces []*model.Type
	for _, t := range p.AllTypes() {
		if t.IsInterface {
			allIfaces = append(allIfaces, t)
		}
	}
	addEdge := func(a, b *model.Type) {
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	for _, t := range allIfaces {
		for _, super := range t.Interfaces {
			if super.IsInterface {
				addEdge(t, super)
			}
		}
	}
	for _, t := range p.AllTypes() {
		if t.IsInterface {
			continue
		}
		var prev *model.Type
		for _, iface := range allIfaces {
			if p.Implements(t, iface) {
				if prev != nil {
					addEdge(prev, iface)
				}
				prev = iface
			}
		}
	}

	out := make(map[*model.Type][]*model.Type)
	visited := make(map[*model.Type]bool)
	for _, start := range allIfaces {
		if visited[start] {
			continue
		}
		var comp []*model.Type
		queue := []*model.Type{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, next := range adj[cur] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
		sortByDescriptor(comp)
		for _, t := range comp {
			out[t] = comp
		}
	}
	return out
}

func sortByDescriptor(types []*model.Type) {
	sort.Slice(types, func(i, j int) bool { return types[i].Descriptor < types[j].Descriptor })
}

// componentRoot picks a deterministic representative of a component: the
// lexicographically smallest descriptor among its program-kind members (or
// the smallest overall if it has none), so the choice is independent of
// traversal/insertion order.
func componentRoot(comp []*model.Type) *model.Type {
	var best *model.Type
	for _, t := range comp {
		if t.Kind != model.ProgramKind {
			continue
		}
		if best == nil || t.Descriptor < best.Descriptor {
			best = t
		}
	}
	if best != nil {
		return best
	}
	return comp[0]
}

func programInterfaces(p *model.Program) []*model.Type {
	var out []*model.Type
	for _, t := range p.AllTypes() {
		if t.IsInterface && t.Kind == model.ProgramKind {
			out = append(out, t)
		}
	}
	return out
}

// ReservePhase is Phase 2: for every reserved interface method, propagate
// the reservation to the declaring interface and to every interface in its
// connected component. caseSensitive false folds reserved names to lower
// case before collision checks, matching -dontusemixedcaseclassnames.
func ReservePhase(p *model.Program, aggressive model.AggressiveOverloading, reservedName func(*model.MethodDef) (string, bool), caseSensitive bool) *reservation.Tree {
	tree := reservation.NewTree(caseSensitive)
	comps := components(p)
	phase := diagnostics.ForPhase("interfaceminify")

	for _, iface := range programInterfaces(p) {
		for _, m := range p.DeclaredMethods(iface) {
			name, ok := reservedName(m)
			if !ok {
				continue
			}
			key := model.KeyFor(m.Ref, aggressive)
			for _, member := range comps[iface] {
				tree.GetOrCreate(member, nil).Reserve(key, name, m.Ref.Name)
			}
			phase.Debugf("reserved %s.%s -> %s across %d-interface component", iface.Descriptor, m.Ref.Name, name, len(comps[iface]))
		}
	}
	return tree
}

type group struct {
	root  *model.Type
	name  string
	key   model.SignatureKey
	defs  []*model.MethodDef
	hosts []*model.Type // every interface in the component
}

// AssignPhase is Phase 3: group interface methods by reachability set,
// then for each group in a deterministic order, find a name available
// across every class and interface that would host the signature.
func AssignPhase(
	p *model.Program,
	ifaceRes *reservation.Tree,
	classRes *reservation.Tree,
	fmap *frontier.Map,
	aggressive model.AggressiveOverloading,
	dictionary []string,
	caseSensitive bool,
) (map[model.MethodRef]string, error) {
	comps := components(p)

	groupsByKey := make(map[[3]string]*group)
	for _, iface := range programInterfaces(p) {
		host := comps[iface]
		root := componentRoot(host)
		for _, m := range p.DeclaredMethods(iface) {
			key := model.KeyFor(m.Ref, aggressive)
			gk := [3]string{root.Descriptor, m.Ref.Name, string(key)}
			g, ok := groupsByKey[gk]
			if !ok {
				g = &group{root: root, name: m.Ref.Name, key: key, hosts: host}
				groupsByKey[gk] = g
			}
			g.defs = append(g.defs, m)
		}
	}

	// Deterministic processing order.
	orderedKeys := make([][3]string, 0, len(groupsByKey))
	for gk := range groupsByKey {
		orderedKeys = append(orderedKeys, gk)
	}
	sort.Slice(orderedKeys, func(i, j int) bool {
		a, b := orderedKeys[i], orderedKeys[j]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		return a[2] < b[2]
	})

	namingTree := naming.NewTree(caseSensitive)
	result := make(map[model.MethodRef]string)
	phase := diagnostics.ForPhase("interfaceminify")

	for _, gk := range orderedKeys {
		g := groupsByKey[gk]

		classSet := make(map[*model.Type]bool)
		for _, iface := range g.hosts {
			for _, c := range p.ImplementedBy(iface) {
				if !c.IsInterface {
					classSet[c] = true
				}
			}
		}

		rootRes := ifaceRes.GetOrCreate(g.root, nil)
		node := namingTree.GetOrCreate(g.root, nil, rootRes, dictionary)

		isAvailable := func(candidate string) bool {
			for _, iface := range g.hosts {
				if res, ok := ifaceRes.Lookup(iface); ok && res.ReservedForOther(g.key, candidate, g.name) {
					return false
				}
			}
			for c := range classSet {
				f := fmap.Of(c)
				if res, ok := classRes.Lookup(f); ok && res.ReservedForOther(g.key, candidate, g.name) {
					return false
				}
			}
			return true
		}

		var chosen string
		for {
			candidate := node.FreshCandidate(g.key)
			if isAvailable(candidate) {
				chosen = candidate
				break
			}
			phase.Debugf("candidate %q rejected for group %s.%s", candidate, g.root.Descriptor, g.name)
		}
		node.Assign(g.key, g.name, chosen)

		for _, m := range g.defs {
			result[m.Ref] = chosen
		}
		for _, iface := range g.hosts {
			ifaceRes.GetOrCreate(iface, nil).Reserve(g.key, chosen, g.name)
		}
		for c := range classSet {
			f := fmap.Of(c)
			classRes.GetOrCreate(f, nil).Reserve(g.key, chosen, g.name)
		}
		if chosen == g.name {
			phase.RecordKept()
		} else {
			phase.RecordRenamed()
		}
		phase.Debugf("group root=%s name=%s -> %s (%d interfaces, %d classes)", g.root.Descriptor, g.name, chosen, len(g.hosts), len(classSet))
	}

	phase.Done()
	return result, nil
}

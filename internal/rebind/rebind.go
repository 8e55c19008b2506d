// Package rebind implements the non-rebound reference rewriting pass:
// after every class/method has a final name, references whose holder does
// not itself declare the resolved method still need a rename entry, found
// by walking the same resolution rule the JVM uses.
package rebind

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/chrispaulwu/minifier/internal/diagnostics"
	"github.com/chrispaulwu/minifier/internal/model"
)

// Candidate reports, for one unresolved reference, the set of final names its
// possible dispatch targets disagree on — used only for diagnostics.
type Candidate struct {
	Ref     model.MethodRef
	Targets []string
}

// ResolveAll runs the pass over refs concurrently — one goroutine per
// reference, since each resolves independently — and returns MethodRef ->
// final name for every reference that either declares the method directly
// or resolves to a single agreed-upon target.
//
// References that fail to resolve uniquely are omitted from the result (the
// writer preserves their original name) and reported through the returned
// disagreements slice, sorted by descriptor for deterministic output.
func ResolveAll(ctx context.Context, p *model.Program, aggressive model.AggressiveOverloading, refs []model.MethodRef, finalNames map[model.MethodRef]string) (map[model.MethodRef]string, []Candidate, error) {
	type outcome struct {
		ref        model.MethodRef
		name       string
		ok         bool
		disagree   bool
		candidates []string
	}

	outcomes := make([]outcome, len(refs))
	g, _ := errgroup.WithContext(ctx)

	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			if name, ok := finalNames[ref]; ok {
				outcomes[i] = outcome{ref: ref, name: name, ok: true}
				return nil
			}

			key := model.KeyFor(ref, aggressive)
			resolved, found := p.ResolveMethod(ref.Holder, ref.Name, key, aggressive)
			if found {
				if name, ok := finalNames[resolved.Ref]; ok {
					outcomes[i] = outcome{ref: ref, name: name, ok: true}
					return nil
				}
			}

			candidates := agreeingCandidates(p, ref, key, aggressive, finalNames)
			if len(candidates) == 1 {
				outcomes[i] = outcome{ref: ref, name: candidates[0], ok: true}
				return nil
			}
			outcomes[i] = outcome{ref: ref, disagree: len(candidates) > 1, candidates: candidates}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	out := make(map[model.MethodRef]string, len(refs))
	var disagreements []Candidate
	for _, o := range outcomes {
		if o.ok {
			out[o.ref] = o.name
			continue
		}
		if o.disagree {
			disagreements = append(disagreements, Candidate{Ref: o.ref, Targets: o.candidates})
		}
	}
	sort.Slice(disagreements, func(i, j int) bool {
		return disagreements[i].Ref.Holder.Descriptor < disagreements[j].Ref.Holder.Descriptor
	})
	diagnostics.ForPhase("rebind").Infof("resolved %d/%d references (%d disagreements)", len(out), len(refs), len(disagreements))
	return out, disagreements, nil
}

// agreeingCandidates gathers the distinct final names of every declared
// method across the program that shares ref's name and SignatureKey and
// whose holder is related to ref.Holder by subtyping in either direction —
// ref's dependency set: if all targets share a rename, that is the result.
func agreeingCandidates(p *model.Program, ref model.MethodRef, key model.SignatureKey, aggressive model.AggressiveOverloading, finalNames map[model.MethodRef]string) []string {
	seen := make(map[string]bool)
	for _, t := range p.AllTypes() {
		if !related(p, ref.Holder, t) {
			continue
		}
		for _, m := range p.DeclaredMethods(t) {
			if m.Ref.Name != ref.Name || model.KeyFor(m.Ref, aggressive) != key {
				continue
			}
			if name, ok := finalNames[m.Ref]; ok {
				seen[name] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func related(p *model.Program, a, b *model.Type) bool {
	if a == b {
		return true
	}
	return p.Implements(a, b) || p.Implements(b, a) || isAncestor(a, b) || isAncestor(b, a)
}

func isAncestor(ancestor, t *model.Type) bool {
	for cur := t.Supertype; cur != nil; cur = cur.Supertype {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// Package fieldminify implements the FieldMinifier. Field
// scopes are simpler than method scopes: a reference resolves to exactly
// one declaring class. Names handed out are unique within each declaring
// type, whatever the fields' types, and names reserved on a supertype are
// also avoided in its subtypes; non-reserved fields of different classes
// in one hierarchy may receive the same name.
package fieldminify

import (
	"strings"

	"github.com/chrispaulwu/minifier/internal/diagnostics"
	"github.com/chrispaulwu/minifier/internal/model"
)

// Strategy is what FieldMinifier needs from a NamingStrategy: the reserved-
// name and renaming-policy lookups every minifier shares, plus the
// candidate-generation and give-up hooks it drives directly.
type Strategy interface {
	ReservedName(interface{}) (string, bool)
	AllowMemberRenaming(*model.Type) bool
	NextName(ref interface{}, internalState interface{}, isAvailable func(string) bool) string
	BreakOnNotAvailable(ref model.FieldRef, name string) bool
}

// Options configures a field-minification run.
type Options struct {
	// CaseSensitive false folds candidate and reserved names to lower case
	// before collision checks, matching -dontusemixedcaseclassnames.
	CaseSensitive bool
}

// fieldState is the per-type bookkeeping: the set of (folded) names already
// handed out at this type, so two fields of different declared types in the
// same class still don't collide, matching shrinking convention rather than
// bare JVM legality.
type fieldState struct {
	used map[string]bool
}

// Tree owns one fieldState per type plus the ReservedFieldNames set that
// is inherited down the hierarchy.
type Tree struct {
	byType        map[*model.Type]*fieldState
	reserved      map[*model.Type]map[string]bool // folded names reserved at this type, inherited by subtypes
	dict          []string
	caseSensitive bool
}

// NewTree creates an empty field-state tree. caseSensitive false folds
// names to lower case before collision checks.
func NewTree(dictionary []string, caseSensitive bool) *Tree {
	return &Tree{
		byType:        make(map[*model.Type]*fieldState),
		reserved:      make(map[*model.Type]map[string]bool),
		dict:          dictionary,
		caseSensitive: caseSensitive,
	}
}

func (t *Tree) fold(name string) string {
	if t.caseSensitive {
		return name
	}
	return strings.ToLower(name)
}

func (t *Tree) stateFor(ty *model.Type) *fieldState {
	s, ok := t.byType[ty]
	if !ok {
		s = &fieldState{used: make(map[string]bool)}
		t.byType[ty] = s
	}
	return s
}

// Reserve adds name to ty's ReservedFieldNames set.
func (t *Tree) Reserve(ty *model.Type, name string) {
	set, ok := t.reserved[ty]
	if !ok {
		set = make(map[string]bool)
		t.reserved[ty] = set
	}
	set[t.fold(name)] = true
}

func (t *Tree) isReservedInChain(ty *model.Type, name string) bool {
	folded := t.fold(name)
	for cur := ty; cur != nil; cur = cur.Supertype {
		if t.reserved[cur][folded] {
			return true
		}
	}
	return false
}

// GetOrCreateNameFor implements the FieldMinifier's core operation.
func GetOrCreateNameFor(tree *Tree, f *model.FieldDef, strat Strategy, opts Options, phase *diagnostics.Phase) string {
	holder := f.Ref.Holder

	if reserved, ok := strat.ReservedName(f); ok {
		tree.Reserve(holder, reserved)
		phase.RecordKept()
		phase.Debugf("%s.%s reserved -> %s", holder.Descriptor, f.Ref.Name, reserved)
		return reserved
	}

	if holder.Kind == model.Library || holder.Kind == model.Classpath || !strat.AllowMemberRenaming(holder) {
		return f.Ref.Name
	}

	state := tree.stateFor(holder)

	// giveUp tracks whether strat.BreakOnNotAvailable told us to stop after
	// the first collision. isAvailable is still invoked by the strategy's
	// own candidate loop, so the flag forces that loop to terminate (by
	// answering true) and the result is then discarded in favor of the
	// field's original name.
	first := true
	giveUp := false
	isAvailable := func(candidate string) bool {
		if !state.used[tree.fold(candidate)] && !tree.isReservedInChain(holder, candidate) {
			first = false
			return true
		}
		if first && strat.BreakOnNotAvailable(f.Ref, candidate) {
			giveUp = true
			return true
		}
		first = false
		return false
	}

	candidate := strat.NextName(f.Ref, nil, isAvailable)
	if giveUp {
		phase.RecordKept()
		return f.Ref.Name
	}
	state.used[tree.fold(candidate)] = true
	phase.RecordRenamed()
	phase.Debugf("%s.%s -> %s", holder.Descriptor, f.Ref.Name, candidate)
	return candidate
}

// Minify runs the FieldMinifier over every declared field in p.
func Minify(p *model.Program, strat Strategy, dictionary []string, opts Options) map[model.FieldRef]string {
	tree := NewTree(dictionary, opts.CaseSensitive)
	phase := diagnostics.ForPhase("fieldminify")
	out := make(map[model.FieldRef]string)
	for _, t := range p.ProgramTypes() {
		for _, f := range p.DeclaredFields(t) {
			out[f.Ref] = GetOrCreateNameFor(tree, f, strat, opts, phase)
		}
	}
	phase.Done()
	return out
}

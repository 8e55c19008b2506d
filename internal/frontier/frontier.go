// Package frontier computes, for every type in a Program, the type at
// which method-name reservations coalesce: the topmost type of a
// contiguous run of program classes sitting below a non-program ancestor
// (or the type itself, for non-program types).
//
// The walk must proceed top-down (supertype before subtype): a subclass's
// frontier is only well-defined once its supertype's frontier is known.
package frontier

import "github.com/chrispaulwu/minifier/internal/model"

// Map is Type → Type, the frontier of every type visited so far.
type Map struct {
	byType map[*model.Type]*model.Type
}

// NewMap creates an empty frontier map.
func NewMap() *Map { return &Map{byType: make(map[*model.Type]*model.Type)} }

// Of returns the frontier of t, computing (and memoizing) it and its
// ancestors' frontiers first if not already known.
func (m *Map) Of(t *model.Type) *model.Type {
	if t == nil {
		return nil
	}
	if f, ok := m.byType[t]; ok {
		return f
	}
	var f *model.Type
	switch {
	case t.Kind != model.ProgramKind:
		// Library/classpath/missing types are their own frontier: they
		// are never renamed, so there is nothing to coalesce further.
		f = t
	case t.Supertype == nil || t.Supertype.Kind != model.ProgramKind:
		// t sits directly below a non-program ancestor (or has none): it
		// anchors a fresh reservation pool of its own.
		f = t
	default:
		f = m.Of(t.Supertype)
	}
	m.byType[t] = f
	return f
}

// ComputeAll walks every program type's supertype chain in a single pass,
// visiting supertypes before subtypes by repeatedly calling Of (which
// recurses up the chain itself), so the resulting map is independent of
// the order types are supplied in.
func ComputeAll(p *model.Program) *Map {
	m := NewMap()
	for _, t := range p.AllTypes() {
		m.Of(t)
	}
	return m
}

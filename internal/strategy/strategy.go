// Package strategy defines the NamingStrategy interface the minification
// core consumes and a reference YAML-backed implementation.
//
// The core never parses configuration files itself, but a host still needs
// a concrete strategy to drive it, so this package ships one concrete
// YAML-backed implementation alongside the abstract interface the core
// actually depends on.
package strategy

import "github.com/chrispaulwu/minifier/internal/model"

// NamingStrategy is consumed by every minifier phase.
type NamingStrategy interface {
	// ReservedName returns the locked-in name for member (a *model.MethodDef
	// or *model.FieldDef), or "", false for free members.
	ReservedName(member interface{}) (string, bool)

	// AllowMemberRenaming reports whether holder opts out of member
	// renaming entirely.
	AllowMemberRenaming(holder *model.Type) bool

	// NextName produces the next fresh candidate for ref (a model.MethodRef
	// or model.FieldRef), given the per-site internal state the caller
	// maintains and an availability predicate; it keeps drawing candidates
	// until isAvailable accepts one. internalState is opaque to the
	// strategy; the reference implementation ignores it and always draws
	// from the dictionary, then the base alphabet.
	NextName(ref interface{}, internalState interface{}, isAvailable func(string) bool) string

	// BreakOnNotAvailable reports, for field strategies, whether the field
	// minifier should stop looping (and fall back to the original name)
	// the first time a candidate is reserved rather than keep trying.
	BreakOnNotAvailable(ref model.FieldRef, name string) bool

	// ReservedDescriptor is the class-level analogue of ReservedName.
	ReservedDescriptor(t *model.Type) (string, bool)

	// IsKeepByProguardRules and IsRenamedByApplyMapping are diagnostics
	// hooks only; the core does not branch on them.
	IsKeepByProguardRules(t *model.Type) bool
	IsRenamedByApplyMapping(t *model.Type) bool
}

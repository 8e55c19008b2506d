// Package namespace implements per-package / per-outer-class pools of
// already-used short names, drawing fresh candidates from a NameSource.
package namespace

import (
	"strings"

	"github.com/chrispaulwu/minifier/internal/namesource"
)

// Namespace is bound to a binary-name prefix ("com/x/" for a package, or
// "com/x/A$" for an outer class) and hands out names unique within that
// prefix.
type Namespace struct {
	prefix string
	source *namesource.NameSource
	used   map[string]bool // keyed case-folded when !caseSensitive
}

// New creates a Namespace bound to prefix, drawing candidates from the
// given dictionary (nil is fine).
func New(prefix string, dictionary []string) *Namespace {
	return &Namespace{
		prefix: prefix,
		source: namesource.New(dictionary),
		used:   make(map[string]bool),
	}
}

// Prefix returns the binary-name prefix this namespace is bound to.
func (n *Namespace) Prefix() string { return n.prefix }

// PackageName returns the package portion of the prefix (without a
// trailing outer-class separator), for the PackageRenaming table. A
// Namespace bound to an outer class (prefix ending in a non-'/' separator)
// has no package name of its own.
func (n *Namespace) PackageName() (string, bool) {
	if n.prefix == "" {
		return "", true
	}
	if strings.HasSuffix(n.prefix, "/") {
		return strings.TrimSuffix(n.prefix, "/"), true
	}
	return "", false
}

func foldKey(name string, caseSensitive bool) string {
	if caseSensitive {
		return name
	}
	return strings.ToLower(name)
}

// MarkUsed records a name (e.g. a reserved one) as already taken in this
// namespace so subsequent NextFreshName calls skip it.
func (n *Namespace) MarkUsed(name string, caseSensitive bool) {
	n.used[foldKey(name, caseSensitive)] = true
}

// IsUsedLocally reports whether name collides with one already marked used
// or emitted in this namespace, under the given case-sensitivity policy.
func (n *Namespace) IsUsedLocally(name string, caseSensitive bool) bool {
	return n.used[foldKey(name, caseSensitive)]
}

// NextFreshName walks the NameSource until it finds a candidate rejected
// by neither this namespace's own used set nor predicateIsUsed (the
// caller's global/cross-package collision check), then marks it used here
// and returns it.
func (n *Namespace) NextFreshName(predicateIsUsed func(candidate string) bool, caseSensitive bool) string {
	for {
		candidate := n.source.Next()
		key := foldKey(candidate, caseSensitive)
		if n.used[key] {
			continue
		}
		if predicateIsUsed != nil && predicateIsUsed(candidate) {
			continue
		}
		n.used[key] = true
		return candidate
	}
}

// Package namesource produces the deterministic stream of candidate short
// identifiers every Namespace draws from: an optional dictionary first,
// then the base-alphabet enumeration a, b, ..., z, aa, ab, ...
package namesource

// alphabet is the obfuscation-tradition alphabet: 'l' is excluded so a
// generated identifier is never visually confused with the digit 1 or the
// "L" that opens a type descriptor.
const alphabet = "abcdefghijkmnopqrstuvwxyz"

// NameSource is a deterministic, stateful, infinite sequence of candidate
// identifiers. It is not safe for concurrent use; each Namespace owns one.
type NameSource struct {
	dictionary []string
	dictIdx    int
	counter    int64
}

// New creates a NameSource. dictionary may be nil; its entries (in order)
// are drained before the alphabet enumeration begins.
func New(dictionary []string) *NameSource {
	return &NameSource{dictionary: dictionary}
}

// Next returns the next candidate in the deterministic sequence. The
// caller (a Namespace) is responsible for rejecting candidates already in
// use; NameSource never looks at availability.
func (s *NameSource) Next() string {
	if s.dictIdx < len(s.dictionary) {
		name := s.dictionary[s.dictIdx]
		s.dictIdx++
		return name
	}
	name := indexToName(s.counter)
	s.counter++
	return name
}

// Reset rewinds the source to its initial state. Used when a Namespace
// needs to re-derive a name deterministically from scratch (e.g. tests
// asserting on exact sequences).
func (s *NameSource) Reset() {
	s.dictIdx = 0
	s.counter = 0
}

// indexToName maps 0, 1, 2, ... to "a", "b", ..., "z", "aa", "ab", ...
// using a bijective base-len(alphabet) numbering (there is no "digit" for
// zero, so this is not plain base conversion).
func indexToName(index int64) string {
	n := len(alphabet)
	var buf []byte
	for {
		r := index % int64(n)
		buf = append([]byte{alphabet[r]}, buf...)
		index = index/int64(n) - 1
		if index < 0 {
			break
		}
	}
	return string(buf)
}

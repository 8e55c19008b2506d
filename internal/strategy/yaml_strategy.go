package strategy

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chrispaulwu/minifier/dictionaries"
	"github.com/chrispaulwu/minifier/internal/model"
	"github.com/chrispaulwu/minifier/internal/namesource"
)

// rawConfig mirrors the on-disk YAML shape before it is resolved into
// lookup tables: a raw struct decoded first, then indexed into the
// lookup maps YAMLStrategy actually queries.
type rawConfig struct {
	Dictionary      string              `yaml:"dictionary"`
	DictionaryWords []string            `yaml:"dictionary_words"`
	Classes         rawClasses          `yaml:"classes"`
	Methods         rawMethods          `yaml:"methods"`
	Fields          rawFields           `yaml:"fields"`
	NoRenameMembers []string            `yaml:"no_rename_members"` // class descriptors
}

type rawClasses struct {
	Keep         map[string]string `yaml:"keep"`          // descriptor -> reserved descriptor (usually itself)
	ApplyMapping map[string]string `yaml:"apply_mapping"` // descriptor -> new descriptor
}

type rawMemberRule struct {
	Holder string   `yaml:"holder"`
	Name   string   `yaml:"name"`
	Params []string `yaml:"params"`
	To     string   `yaml:"to"`
}

type rawMethods struct {
	Keep         []rawMemberRule `yaml:"keep"`
	ApplyMapping []rawMemberRule `yaml:"apply_mapping"`
}

type rawFieldRule struct {
	Holder string `yaml:"holder"`
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	To     string `yaml:"to"`
}

type rawFields struct {
	Keep []rawFieldRule `yaml:"keep"`
}

// YAMLStrategy is a reference NamingStrategy backed by a YAML config: a
// dictionary, class keep/apply-mapping rules, method keep/apply-mapping
// rules, and field keep rules.
type YAMLStrategy struct {
	dictionary []string

	classReserved map[string]string // descriptor -> reserved descriptor
	classMapping  map[string]string // descriptor -> apply-mapping descriptor

	methodReserved map[methodKey]string
	methodMapped   map[methodKey]string

	fieldReserved map[fieldKey]string

	noRenameMembers map[string]bool
}

type methodKey struct {
	holder string
	name   string
	params string
}

type fieldKey struct {
	holder string
	name   string
	typ    string
}

func methodKeyFor(holder, name string, params []string) methodKey {
	return methodKey{holder: holder, name: name, params: strings.Join(params, ",")}
}

// Load parses a YAML config. When dictionary_words is unset, the
// "dictionary" key selects an embedded word list from the dictionaries
// package by file name (without extension), and "default" is used when
// that key is empty too.
func Load(data []byte) (*YAMLStrategy, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("strategy: parse config: %w", err)
	}

	dict := raw.DictionaryWords
	if len(dict) == 0 {
		name := raw.Dictionary
		if name == "" {
			name = "default"
		}
		loaded, err := LoadDictionary(name)
		if err != nil {
			return nil, err
		}
		dict = loaded
	}

	s := &YAMLStrategy{
		dictionary:      dict,
		classReserved:   raw.Classes.Keep,
		classMapping:    raw.Classes.ApplyMapping,
		methodReserved:  make(map[methodKey]string, len(raw.Methods.Keep)),
		methodMapped:    make(map[methodKey]string, len(raw.Methods.ApplyMapping)),
		fieldReserved:   make(map[fieldKey]string, len(raw.Fields.Keep)),
		noRenameMembers: make(map[string]bool, len(raw.NoRenameMembers)),
	}
	if s.classReserved == nil {
		s.classReserved = map[string]string{}
	}
	if s.classMapping == nil {
		s.classMapping = map[string]string{}
	}
	for _, r := range raw.Methods.Keep {
		s.methodReserved[methodKeyFor(r.Holder, r.Name, r.Params)] = r.To
	}
	for _, r := range raw.Methods.ApplyMapping {
		s.methodMapped[methodKeyFor(r.Holder, r.Name, r.Params)] = r.To
	}
	for _, r := range raw.Fields.Keep {
		s.fieldReserved[fieldKey{holder: r.Holder, name: r.Name, typ: r.Type}] = r.To
	}
	for _, d := range raw.NoRenameMembers {
		s.noRenameMembers[d] = true
	}
	return s, nil
}

// LoadDictionary reads an embedded dictionaries/<name>.yaml word list.
func LoadDictionary(name string) ([]string, error) {
	data, err := dictionaries.FS.ReadFile(name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("strategy: load dictionary %q: %w", name, err)
	}
	var parsed struct {
		Words []string `yaml:"words"`
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("strategy: parse dictionary %q: %w", name, err)
	}
	return parsed.Words, nil
}

// ReservedName implements NamingStrategy. member is a *model.MethodDef or
// *model.FieldDef; apply-mapping entries take priority over keep rules,
// matching -applymapping's precedence over plain keep rules in the host
// tool this strategy stands in for.
func (s *YAMLStrategy) ReservedName(member interface{}) (string, bool) {
	switch m := member.(type) {
	case *model.MethodDef:
		key := methodKeyFor(m.Ref.Holder.Descriptor, m.Ref.Name, paramDescriptors(m.Ref.Proto.Params))
		if to, ok := s.methodMapped[key]; ok {
			return to, true
		}
		if to, ok := s.methodReserved[key]; ok {
			return to, true
		}
		return "", false
	case *model.FieldDef:
		key := fieldKey{holder: m.Ref.Holder.Descriptor, name: m.Ref.Name, typ: m.Ref.Type.Descriptor}
		if to, ok := s.fieldReserved[key]; ok {
			return to, true
		}
		return "", false
	default:
		return "", false
	}
}

func paramDescriptors(params []*model.Type) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Descriptor
	}
	return out
}

// AllowMemberRenaming implements NamingStrategy.
func (s *YAMLStrategy) AllowMemberRenaming(holder *model.Type) bool {
	return !s.noRenameMembers[holder.Descriptor]
}

// NextName implements NamingStrategy: a fresh dictionary-then-alphabet
// candidate stream, skipping whatever isAvailable rejects. ref is a
// model.MethodRef or model.FieldRef; internalState is unused — the caller's
// own per-signature NamingState.Node already owns the NameSource; this
// method exists so callers can defer name generation entirely to the
// strategy, but this reference implementation is stateless and simply asks
// the caller's isAvailable predicate candidate by candidate using a
// throwaway source seeded with the configured dictionary.
func (s *YAMLStrategy) NextName(_ interface{}, _ interface{}, isAvailable func(string) bool) string {
	src := namesource.New(s.dictionary)
	for {
		candidate := src.Next()
		if isAvailable == nil || isAvailable(candidate) {
			return candidate
		}
	}
}

// BreakOnNotAvailable implements NamingStrategy: the reference strategy
// always keeps looping until it finds an available name rather than
// falling back to the original one.
func (s *YAMLStrategy) BreakOnNotAvailable(model.FieldRef, string) bool { return false }

// ReservedDescriptor implements NamingStrategy.
func (s *YAMLStrategy) ReservedDescriptor(t *model.Type) (string, bool) {
	if to, ok := s.classMapping[t.Descriptor]; ok {
		return to, true
	}
	if to, ok := s.classReserved[t.Descriptor]; ok {
		return to, true
	}
	return "", false
}

// IsKeepByProguardRules implements NamingStrategy (diagnostics only).
func (s *YAMLStrategy) IsKeepByProguardRules(t *model.Type) bool {
	_, ok := s.classReserved[t.Descriptor]
	return ok
}

// IsRenamedByApplyMapping implements NamingStrategy (diagnostics only).
func (s *YAMLStrategy) IsRenamedByApplyMapping(t *model.Type) bool {
	_, ok := s.classMapping[t.Descriptor]
	return ok
}

// Dictionary exposes the resolved word list (used by Namespace/NameSource
// construction in the minifier packages).
func (s *YAMLStrategy) Dictionary() []string { return s.dictionary }

var _ NamingStrategy = (*YAMLStrategy)(nil)

// Package model defines the ProgramModel entities the minification core
// observes: types, method and field references, and the access/attribute
// metadata needed to preserve virtual dispatch while renaming.
package model

import "strings"

// Kind classifies a Type by how much the core is allowed to know about it.
type Kind int

const (
	// ProgramKind types are eligible for renaming.
	ProgramKind Kind = iota
	// Classpath types are resolved locally but not renamed (e.g. another
	// module in the same build that isn't being shrunk).
	Classpath
	// Library types come from outside the build entirely.
	Library
	// Missing types were referenced but never resolved; the core treats
	// them as opaque frontier nodes rooted at java.lang.Object.
	Missing
)

func (k Kind) String() string {
	switch k {
	case ProgramKind:
		return "program"
	case Classpath:
		return "classpath"
	case Library:
		return "library"
	case Missing:
		return "missing"
	default:
		return "unknown"
	}
}

// InnerClassAttribute records the outer-class binding for a nested class.
type InnerClassAttribute struct {
	Outer     *Type
	Simple    string // simple (unqualified) name of the inner class
	Separator byte   // '$' by default; may differ for synthetic classes
}

// Access mirrors the subset of JVM access flags the core cares about.
type Access struct {
	Public    bool
	Private   bool
	Package   bool // package-private ("default" access)
	Static    bool
	Final     bool
	Synthetic bool
}

// Type is a class or interface identity.
type Type struct {
	// Descriptor is the JVM internal form, e.g. "Lcom/x/A;".
	Descriptor  string
	Kind        Kind
	Supertype   *Type
	Interfaces  []*Type
	Inner       *InnerClassAttribute // nil when not an inner class
	Access      Access
	IsInterface bool
}

// BinaryName strips the "L" and ";" wrapping, returning the slash-separated
// binary name ("com/x/A" for "Lcom/x/A;").
func (t *Type) BinaryName() string {
	return DescriptorToBinaryName(t.Descriptor)
}

// PackagePrefix returns the binary-name package prefix including the
// trailing slash ("com/x/" for "Lcom/x/A;"), or "" for the default package.
func (t *Type) PackagePrefix() string {
	bn := t.BinaryName()
	idx := strings.LastIndexByte(bn, '/')
	if idx < 0 {
		return ""
	}
	return bn[:idx+1]
}

// DescriptorToBinaryName converts "Lcom/x/A;" to "com/x/A".
func DescriptorToBinaryName(descriptor string) string {
	s := descriptor
	if strings.HasPrefix(s, "L") {
		s = s[1:]
	}
	if strings.HasSuffix(s, ";") {
		s = s[:len(s)-1]
	}
	return s
}

// BinaryNameToDescriptor converts "com/x/A" to "Lcom/x/A;".
func BinaryNameToDescriptor(binaryName string) string {
	return "L" + binaryName + ";"
}

// Proto is a method's parameter/return-type signature.
type Proto struct {
	Params     []*Type
	ReturnType *Type
}

// MethodRef identifies a method by holder, name, and proto.
type MethodRef struct {
	Holder *Type
	Name   string
	Proto  Proto
}

// FieldRef identifies a field by holder, name, and type.
type FieldRef struct {
	Holder *Type
	Name   string
	Type   *Type
}

// MethodDef is a MethodRef plus the declaration-site metadata the
// minifiers need.
type MethodDef struct {
	Ref          MethodRef
	Access       Access
	InProgram    bool // true when Ref.Holder is a program type eligible for rename
	IsInit       bool // "<init>"
	IsClinit     bool // "<clinit>"
}

// FieldDef is a FieldRef plus declaration-site metadata.
type FieldDef struct {
	Ref       FieldRef
	Access    Access
	InProgram bool
}

// AggressiveOverloading selects the SignatureKey projection: when false
// (the Android default) two methods with identical parameter lists but
// different return types must still share a name pool, since Android
// dispatch does not distinguish on return type. When true, the full Proto
// (including return type) is significant, matching non-Android bytecode
// targets where overloading purely on return type is legal.
type AggressiveOverloading bool

// SignatureKey is the string under which reservation/naming state is keyed
// for a given MethodRef, honoring the AggressiveOverloading policy.
type SignatureKey string

// KeyFor derives the SignatureKey for a MethodRef under the given policy.
func KeyFor(ref MethodRef, aggressive AggressiveOverloading) SignatureKey {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range ref.Proto.Params {
		b.WriteString(p.Descriptor)
	}
	b.WriteByte(')')
	if bool(aggressive) {
		b.WriteString(ref.Proto.ReturnType.Descriptor)
	}
	return SignatureKey(b.String())
}

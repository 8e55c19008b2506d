// Package renaming defines the three output tables a minification run
// produces and their JSON form, in the same JSON-first result-struct shape
// as this repo's other structured command output.
package renaming

import (
	"encoding/json"
	"strings"

	"github.com/chrispaulwu/minifier/internal/classminify"
	"github.com/chrispaulwu/minifier/internal/model"
)

// ClassRenaming is Type -> final descriptor, plus the informational
// PackageRenaming table. Keys are source descriptors rather than *model.Type
// pointers so the table survives JSON round-tripping.
type ClassRenaming struct {
	Types           map[string]string `json:"types"`
	PackageRenaming map[string]string `json:"package_renaming"`
}

// MethodRenaming is MethodRef -> final name, plus the set of refs whose
// final name coincides with the name a strategy reservation gave them.
type MethodRenaming struct {
	Methods map[string]string `json:"methods"`
	Kept    map[string]bool   `json:"kept"`
}

// FieldRenaming is FieldRef -> final name.
type FieldRenaming struct {
	Fields map[string]string `json:"fields"`
}

// Summary accumulates the end-of-run counters a host CLI prints.
type Summary struct {
	ClassesRenamed int `json:"classes_renamed"`
	ClassesKept    int `json:"classes_kept"`
	MethodsRenamed int `json:"methods_renamed"`
	MethodsKept    int `json:"methods_kept"`
	FieldsRenamed  int `json:"fields_renamed"`
}

// MethodKey produces a stable string key for a MethodRef: "holder->name(params)".
func MethodKey(ref model.MethodRef) string {
	var b strings.Builder
	b.WriteString(ref.Holder.Descriptor)
	b.WriteString("->")
	b.WriteString(ref.Name)
	b.WriteByte('(')
	for i, param := range ref.Proto.Params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(param.Descriptor)
	}
	b.WriteByte(')')
	return b.String()
}

// FieldKey produces a stable string key for a FieldRef: "holder->name:type".
func FieldKey(ref model.FieldRef) string {
	return ref.Holder.Descriptor + "->" + ref.Name + ":" + ref.Type.Descriptor
}

// BuildClassRenaming converts a classminify.Result into its serializable form.
func BuildClassRenaming(r *classminify.Result) *ClassRenaming {
	out := &ClassRenaming{
		Types:           make(map[string]string, len(r.ClassRenaming)),
		PackageRenaming: make(map[string]string, len(r.PackageRenaming)),
	}
	for t, name := range r.ClassRenaming {
		out.Types[t.Descriptor] = name
	}
	for src, dst := range r.PackageRenaming {
		out.PackageRenaming[src] = dst
	}
	return out
}

// BuildMethodRenaming converts the method final-name and kept-set maps
// produced by methodminify/interfaceminify/rebind into a serializable table.
func BuildMethodRenaming(final map[model.MethodRef]string, kept map[model.MethodRef]bool) *MethodRenaming {
	out := &MethodRenaming{
		Methods: make(map[string]string, len(final)),
		Kept:    make(map[string]bool, len(kept)),
	}
	for ref, name := range final {
		out.Methods[MethodKey(ref)] = name
	}
	for ref, isKept := range kept {
		if isKept {
			out.Kept[MethodKey(ref)] = true
		}
	}
	return out
}

// BuildFieldRenaming converts the field final-name map into a serializable table.
func BuildFieldRenaming(final map[model.FieldRef]string) *FieldRenaming {
	out := &FieldRenaming{Fields: make(map[string]string, len(final))}
	for ref, name := range final {
		out.Fields[FieldKey(ref)] = name
	}
	return out
}

// BuildSummary counts renamed-vs-kept members across the three tables.
func BuildSummary(p *model.Program, classes *ClassRenaming, methods *MethodRenaming, fields *FieldRenaming) Summary {
	var s Summary
	for _, t := range p.ProgramTypes() {
		final, ok := classes.Types[t.Descriptor]
		if !ok {
			continue
		}
		if final == t.Descriptor {
			s.ClassesKept++
		} else {
			s.ClassesRenamed++
		}
	}
	for ref := range methods.Methods {
		if methods.Kept[ref] {
			s.MethodsKept++
		} else {
			s.MethodsRenamed++
		}
	}
	for key, final := range fields.Fields {
		// FieldKey is "holder->name:type"; a field is renamed when its final
		// name differs from the original name in the key.
		original := key[strings.Index(key, "->")+2 : strings.LastIndex(key, ":")]
		if final != original {
			s.FieldsRenamed++
		}
	}
	return s
}

// MarshalJSON renders the three tables and the summary as one document, the
// shape `cmd/minify/run --json` emits.
func MarshalJSON(classes *ClassRenaming, methods *MethodRenaming, fields *FieldRenaming, summary Summary) ([]byte, error) {
	doc := struct {
		Classes *ClassRenaming  `json:"classes"`
		Methods *MethodRenaming `json:"methods"`
		Fields  *FieldRenaming  `json:"fields"`
		Summary Summary         `json:"summary"`
	}{classes, methods, fields, summary}
	return json.MarshalIndent(doc, "", "  ")
}

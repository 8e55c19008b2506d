// Package minifier is the top-level orchestrator: it sequences
// ClassMinifier, the (Interface)MethodMinifier phases, the non-rebound
// reference pass, and FieldMinifier over one ProgramModel and assembles the
// three output Renaming tables.
package minifier

import (
	"context"
	"fmt"

	"github.com/chrispaulwu/minifier/internal/classminify"
	"github.com/chrispaulwu/minifier/internal/diagnostics"
	"github.com/chrispaulwu/minifier/internal/fieldminify"
	"github.com/chrispaulwu/minifier/internal/interfaceminify"
	"github.com/chrispaulwu/minifier/internal/methodminify"
	"github.com/chrispaulwu/minifier/internal/model"
	"github.com/chrispaulwu/minifier/internal/rebind"
	"github.com/chrispaulwu/minifier/internal/renaming"
	"github.com/chrispaulwu/minifier/internal/strategy"
)

// Options configures one end-to-end run.
type Options struct {
	Aggressive model.AggressiveOverloading
	Dictionary []string
	// CaseSensitive false folds every generated/reserved name to lower
	// case before collision checks across all four minifiers, matching
	// -dontusemixedcaseclassnames; it overrides any CaseSensitive set
	// directly on ClassOptions or FieldOptions.
	CaseSensitive bool
	ClassOptions  classminify.Options
	FieldOptions  fieldminify.Options
	// References lists call-site MethodRefs that may not directly declare
	// their target method. The orchestrator has no call-graph of its own;
	// a front-end supplies these.
	References []model.MethodRef
}

// Result bundles the three output tables, the run summary, and any
// non-rebound references the rebind pass could not resolve uniquely.
type Result struct {
	Classes       *renaming.ClassRenaming
	Methods       *renaming.MethodRenaming
	Fields        *renaming.FieldRenaming
	Summary       renaming.Summary
	Disagreements []rebind.Candidate
}

func reservedMethodName(strat strategy.NamingStrategy) func(*model.MethodDef) (string, bool) {
	return func(m *model.MethodDef) (string, bool) { return strat.ReservedName(m) }
}

// Run executes the full pipeline: ClassMinifier, then MethodMinifier's four
// phases (class-reserve, interface-reserve, interface-assign, class-assign),
// the non-rebound rewriting pass, and finally FieldMinifier — the last two
// are independent of each other.
func Run(ctx context.Context, p *model.Program, strat strategy.NamingStrategy, opts Options) (*Result, error) {
	opts.ClassOptions.CaseSensitive = opts.CaseSensitive
	opts.FieldOptions.CaseSensitive = opts.CaseSensitive

	orchestrator := diagnostics.ForPhase("minifier")

	classResult, err := classminify.Minify(p, strat, opts.Dictionary, opts.ClassOptions)
	if err != nil {
		return nil, fmt.Errorf("minifier: class phase: %w", err)
	}
	orchestrator.Infof("class phase complete: %d types", len(classResult.ClassRenaming))

	reservedName := reservedMethodName(strat)

	classRes, fmap := methodminify.ReservePhase(p, opts.Aggressive, reservedName, opts.CaseSensitive)
	ifaceRes := interfaceminify.ReservePhase(p, opts.Aggressive, reservedName, opts.CaseSensitive)

	interfaceFinal, err := interfaceminify.AssignPhase(p, ifaceRes, classRes, fmap, opts.Aggressive, opts.Dictionary, opts.CaseSensitive)
	if err != nil {
		return nil, fmt.Errorf("minifier: interface-method phase: %w", err)
	}
	orchestrator.Infof("interface-method phase complete: %d methods", len(interfaceFinal))

	classFinal, kept, err := methodminify.AssignPhase(p, &methodminify.AssignContext{
		ClassReservations:     classRes,
		Frontier:              fmap,
		InterfaceReservations: ifaceRes,
		Aggressive:            opts.Aggressive,
		ReservedName:          reservedName,
		AllowMemberRenaming:   strat.AllowMemberRenaming,
		Dictionary:            opts.Dictionary,
		CaseSensitive:         opts.CaseSensitive,
	})
	if err != nil {
		return nil, fmt.Errorf("minifier: class-method phase: %w", err)
	}
	orchestrator.Infof("class-method phase complete: %d methods", len(classFinal))

	methodFinal := make(map[model.MethodRef]string, len(interfaceFinal)+len(classFinal))
	for ref, name := range interfaceFinal {
		methodFinal[ref] = name
	}
	for ref, name := range classFinal {
		methodFinal[ref] = name
	}

	var disagreements []rebind.Candidate
	if len(opts.References) > 0 {
		resolved, d, err := rebind.ResolveAll(ctx, p, opts.Aggressive, opts.References, methodFinal)
		if err != nil {
			return nil, fmt.Errorf("minifier: non-rebound reference phase: %w", err)
		}
		disagreements = d
		for ref, name := range resolved {
			methodFinal[ref] = name
		}
	}

	fieldFinal := fieldminify.Minify(p, strat, opts.Dictionary, opts.FieldOptions)
	orchestrator.Infof("field phase complete: %d fields", len(fieldFinal))

	classes := renaming.BuildClassRenaming(classResult)
	methods := renaming.BuildMethodRenaming(methodFinal, kept)
	fields := renaming.BuildFieldRenaming(fieldFinal)
	summary := renaming.BuildSummary(p, classes, methods, fields)
	orchestrator.Infof("run complete: %d classes, %d methods, %d fields renamed",
		summary.ClassesRenamed, summary.MethodsRenamed, summary.FieldsRenamed)

	return &Result{
		Classes:       classes,
		Methods:       methods,
		Fields:        fields,
		Summary:       summary,
		Disagreements: disagreements,
	}, nil
}

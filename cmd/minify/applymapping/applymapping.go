// Package applymapping implements "minify applymapping": validate an
// apply-mapping YAML file against a loaded ProgramModel, reporting
// IllegalConfiguration diagnostics without performing a full minification
// run.
package applymapping

import (
	"flag"
	"fmt"
	"os"

	"github.com/chrispaulwu/minifier/internal/errs"
	"github.com/chrispaulwu/minifier/internal/goadapter"
	"github.com/chrispaulwu/minifier/internal/model"
	"github.com/chrispaulwu/minifier/internal/strategy"
)

func Run(args []string) int {
	fs := flag.NewFlagSet("applymapping", flag.ExitOnError)
	dir := fs.String("dir", ".", "directory to load as the program model")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: minify applymapping [--dir path] <apply-mapping.yaml>")
		return 2
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "read mapping:", err)
		return 2
	}
	strat, err := strategy.Load(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse mapping:", err)
		return 2
	}

	program, err := goadapter.Load(goadapter.Options{Dir: *dir})
	if err != nil {
		fmt.Fprintln(os.Stderr, "load program:", err)
		return 2
	}

	problems := validate(program, strat)
	for _, p := range problems {
		fmt.Fprintln(os.Stderr, p)
	}
	if len(problems) > 0 {
		return 1
	}
	fmt.Println("apply-mapping is consistent with the loaded program")
	return 0
}

// validate checks every program type's reserved/apply-mapping descriptor
// for collisions with another type's reserved descriptor — two types pinned
// to the same final name is exactly what IllegalConfiguration reports.
func validate(program *model.Program, strat *strategy.YAMLStrategy) []error {
	seen := make(map[string]*model.Type)
	var problems []error
	for _, t := range program.ProgramTypes() {
		descriptor, ok := strat.ReservedDescriptor(t)
		if !ok {
			continue
		}
		if other, ok := seen[descriptor]; ok && other != t {
			problems = append(problems, &errs.IllegalConfiguration{
				Subject: descriptor,
				Reason:  fmt.Sprintf("both %s and %s are pinned to %s", other.Descriptor, t.Descriptor, descriptor),
			})
			continue
		}
		seen[descriptor] = t
	}
	return problems
}

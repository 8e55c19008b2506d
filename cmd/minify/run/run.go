// Package run implements "minify run": load a Go package through
// internal/goadapter, apply a YAMLStrategy config, execute the minifier
// pipeline, and print the renaming tables, with a flag.FlagSet driving
// both plain-text and JSON output.
package run

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/chrispaulwu/minifier/internal/diagnostics"
	"github.com/chrispaulwu/minifier/internal/goadapter"
	"github.com/chrispaulwu/minifier/internal/minifier"
	"github.com/chrispaulwu/minifier/internal/model"
	"github.com/chrispaulwu/minifier/internal/renaming"
	"github.com/chrispaulwu/minifier/internal/strategy"
)

func Run(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "JSON output")
	dir := fs.String("dir", ".", "directory to load as the program model")
	configPath := fs.String("config", "", "strategy YAML config (keep rules, apply-mapping, dictionary)")
	aggressive := fs.Bool("aggressive-overloading", false, "key signatures on the full proto, not just params")
	verbose := fs.Bool("verbose", false, "enable verbose debug logging")
	fs.Parse(args)

	if *verbose {
		diagnostics.SetVerbose(true)
	}

	configData := []byte(nil)
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read config:", err)
			return 2
		}
		configData = data
	}
	strat, err := strategy.Load(configData)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse config:", err)
		return 2
	}

	patterns := fs.Args()
	program, err := goadapter.Load(goadapter.Options{Dir: *dir, Patterns: patterns})
	if err != nil {
		fmt.Fprintln(os.Stderr, "load program:", err)
		return 2
	}

	result, err := minifier.Run(context.Background(), program, strat, minifier.Options{
		Aggressive: model.AggressiveOverloading(*aggressive),
		Dictionary: strat.Dictionary(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "minify:", err)
		return 1
	}

	if *jsonOut {
		data, err := renaming.MarshalJSON(result.Classes, result.Methods, result.Fields, result.Summary)
		if err != nil {
			fmt.Fprintln(os.Stderr, "render json:", err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	fmt.Printf("classes renamed: %d  kept: %d\n", result.Summary.ClassesRenamed, result.Summary.ClassesKept)
	fmt.Printf("methods renamed: %d  kept: %d\n", result.Summary.MethodsRenamed, result.Summary.MethodsKept)
	fmt.Printf("fields renamed:  %d\n", result.Summary.FieldsRenamed)
	if len(result.Disagreements) > 0 {
		fmt.Printf("unresolved non-rebound references: %d\n", len(result.Disagreements))
	}
	return 0
}

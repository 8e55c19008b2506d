package main

import (
	"fmt"
	"os"

	"github.com/chrispaulwu/minifier/cmd/minify/applymapping"
	"github.com/chrispaulwu/minifier/cmd/minify/run"
	"github.com/chrispaulwu/minifier/cmd/minify/version"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(run.Run(os.Args[2:]))
	case "applymapping":
		os.Exit(applymapping.Run(os.Args[2:]))
	case "version":
		fmt.Println(version.Version)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `minify — identifier minification core for a whole-program Go/JVM shrinker

Usage:
  minify run          [--json] [--dir path] [--config strategy.yaml] [pattern...]
  minify applymapping [--dir path] <apply-mapping.yaml>
  minify version`)
}

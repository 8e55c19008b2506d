// Package dictionaries embeds the obfuscation-dictionary word lists a
// strategy.YAMLStrategy may select by name. Each file is a YAML mapping
// whose "words" key holds a sequence of strings, drained in order before
// the base-alphabet
// enumeration takes over. Adding a new dictionary is dropping in a new
// *.yaml file here.
package dictionaries

import "embed"

// FS is an embed.FS containing every *.yaml file in this directory.
//
//go:embed *.yaml
var FS embed.FS

// Package data loads and normalises template contexts. Contexts come from JSON
// or YAML files, from key=value assignments given on the command line, or from
// arbitrary Go values that need to be flattened into plain maps for engines
// that only understand map[string]any.
package data

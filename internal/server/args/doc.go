// Package args implements argument parsing for the atelier binary.
//
// The same tokenizer handles both command line arguments and config file
// entries, so the two sources share one vocabulary and one set of parse
// rules:
//
//   - option.go: the closed schema of recognized flags
//   - argset.go: ArgSet, the typed result of one parse pass
//   - parse.go: the tokenizer (flags, short aliases, "--", positionals)
//   - configfile.go: config file loading, creation, and retokenizing
//   - errors.go: structured parse errors with stable messages
//
// Parsing is strict: unknown flags, missing values, and malformed typed
// values abort immediately with the first error found.
package args

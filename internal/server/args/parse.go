package args

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Source identifies where a token sequence came from. Config files may
// set options the command line must not (passwords), so the parser
// needs to know which one it is reading.
type Source int

const (
	SourceCLI Source = iota
	SourceConfigFile
)

var (
	authValues = []string{string(AuthPassword), string(AuthNone)}
	logValues  = []string{
		string(LogTrace), string(LogDebug), string(LogInfo),
		string(LogWarn), string(LogError),
	}
)

// Parse tokenizes one argument sequence into an ArgSet. It walks the
// tokens left to right in a single pass and stops at the first problem.
//
// A lone "--" switches the remainder into positional-only mode. Long
// flags split on the first "=" only, so later equals signs stay part of
// the value. A flag without an inline value consumes the next token as
// its value unless that token is empty or starts with a dash.
func Parse(tokens []string, source Source) (*ArgSet, error) {
	a := NewArgSet()
	ended := false

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if !ended && tok == "--" {
			ended = true
			continue
		}
		if ended || !strings.HasPrefix(tok, "-") {
			a.Positional = append(a.Positional, tok)
			continue
		}

		var (
			spec     *OptionSpec
			value    string
			hasValue bool
		)
		if strings.HasPrefix(tok, "--") {
			name, inline, found := strings.Cut(strings.TrimPrefix(tok, "--"), "=")
			spec = Lookup(name)
			if spec == nil {
				return nil, unknownOption("--" + name)
			}
			value, hasValue = inline, found
		} else {
			spec = LookupShort(strings.TrimPrefix(tok, "-"))
			if spec == nil {
				return nil, unknownOption(tok)
			}
		}

		if spec.FileOnly && source != SourceConfigFile {
			return nil, restrictedOption(spec.Name)
		}

		if spec.Kind == KindBool {
			*spec.boolField(a) = true
			a.markFlag(spec.Name)
			continue
		}

		if !hasValue && i+1 < len(tokens) && tokens[i+1] != "" && !strings.HasPrefix(tokens[i+1], "-") {
			i++
			value = tokens[i]
		}

		if value == "" {
			// "--cert" and "--cert=" both mean "present, generate one".
			if spec.Kind == KindOptionalString {
				*spec.optionalField(a) = OptionalString{Set: true}
				a.markFlag(spec.Name)
				continue
			}
			return nil, missingValue(spec.Name)
		}
		// Config files express "cert: false" to disable the flag.
		if spec.Kind == KindOptionalString && value == "false" {
			continue
		}
		if spec.Path {
			value = absPath(value)
		}

		switch spec.Kind {
		case KindOptionalString:
			*spec.optionalField(a) = OptionalString{Set: true, Value: value}
		case KindString:
			*spec.stringField(a) = value
		case KindStringList:
			list := spec.listField(a)
			*list = append(*list, value)
		case KindNumber:
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, invalidNumber(spec.Name)
			}
			*spec.numberField(a) = n
		case KindAuth:
			t, ok := parseAuthType(value)
			if !ok {
				return nil, invalidEnumValue(spec.Name, authValues)
			}
			*spec.authField(a) = t
		case KindLogLevel:
			l, ok := ParseLogLevel(value)
			if !ok {
				return nil, invalidEnumValue(spec.Name, logValues)
			}
			*spec.levelField(a) = l
		}
		a.markFlag(spec.Name)
	}

	inferOpenTarget(a)

	if a.Cert.Set && a.CertKey == "" {
		return nil, missingCertKey()
	}
	return a, nil
}

// inferOpenTarget decides whether leftover positional arguments name a
// workspace file or a folder. Fields it fills count as set for layering
// purposes but do not count as explicit flags.
func inferOpenTarget(a *ArgSet) {
	if len(a.Positional) == 0 || a.IsSet("workspace") || a.IsSet("folder") {
		return
	}
	if isWorkspaceFile(a.Positional[0]) {
		a.Workspace = a.Positional[0]
		a.Positional = a.Positional[1:]
		a.markSet("workspace")
		return
	}
	a.Folder = strings.Join(a.Positional, " ")
	a.markSet("folder")
}

func isWorkspaceFile(p string) bool {
	if !strings.HasSuffix(p, WorkspaceExt) {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// absPath resolves against the working directory, falling back to the
// raw value when the working directory is unavailable.
func absPath(v string) string {
	abs, err := filepath.Abs(v)
	if err != nil {
		return v
	}
	return abs
}

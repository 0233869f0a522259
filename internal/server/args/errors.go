package args

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	UnknownOption ErrorKind = iota
	MissingValue
	InvalidNumber
	InvalidEnumValue
	RestrictedOption
	MissingCertKey
)

// Kind sentinels for errors.Is. Matching ignores the option name and
// message, so errors.Is(err, args.ErrUnknownOption) classifies any
// unrecognized flag regardless of which flag it was.
var (
	ErrUnknownOption    = &ParseError{Kind: UnknownOption}
	ErrMissingValue     = &ParseError{Kind: MissingValue}
	ErrInvalidNumber    = &ParseError{Kind: InvalidNumber}
	ErrInvalidEnumValue = &ParseError{Kind: InvalidEnumValue}
	ErrRestrictedOption = &ParseError{Kind: RestrictedOption}
	ErrMissingCertKey   = &ParseError{Kind: MissingCertKey}
)

// ParseError is returned for any problem found while tokenizing
// arguments. The message is part of the CLI surface and is kept stable;
// Kind supports programmatic classification.
type ParseError struct {
	Kind   ErrorKind
	Option string
	msg    string
}

func (e *ParseError) Error() string { return e.msg }

// Is matches on Kind so the sentinels above work with errors.Is.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// IsParseError reports whether err is (or wraps) a ParseError of the
// given kind.
func IsParseError(err error, kind ErrorKind) bool {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Kind == kind
}

// unknownOption takes the flag exactly as typed, dashes included.
func unknownOption(flag string) *ParseError {
	return &ParseError{Kind: UnknownOption, Option: flag, msg: "Unknown option " + flag}
}

func missingValue(name string) *ParseError {
	return &ParseError{Kind: MissingValue, Option: name, msg: "--" + name + " requires a value"}
}

func invalidNumber(name string) *ParseError {
	return &ParseError{Kind: InvalidNumber, Option: name, msg: "--" + name + " must be a number"}
}

func invalidEnumValue(name string, valid []string) *ParseError {
	return &ParseError{
		Kind:   InvalidEnumValue,
		Option: name,
		msg:    fmt.Sprintf("--%s valid values: [%s]", name, strings.Join(valid, ", ")),
	}
}

func restrictedOption(name string) *ParseError {
	env := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return &ParseError{
		Kind:   RestrictedOption,
		Option: name,
		msg:    fmt.Sprintf("--%s can only be set in the config file or passed in via $%s", name, env),
	}
}

func missingCertKey() *ParseError {
	return &ParseError{Kind: MissingCertKey, Option: "cert-key", msg: "--cert-key is missing"}
}

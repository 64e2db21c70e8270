// Copyright 2021 Jonathan Amsterdam.

package clitree

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched by errors.Is against a *ResolveError or
// a *SchemaError.
var (
	ErrUnknownParameter   = errors.New("unknown parameter")
	ErrInvalidShortOption = errors.New("invalid short option")
	ErrMissingOptionValue = errors.New("missing value for option")
	ErrMissingRequired    = errors.New("missing required parameter")
	ErrInvalidValue       = errors.New("invalid value")
	ErrMisconfigured      = errors.New("misconfigured command")
)

// ErrorKind classifies a ResolveError.
type ErrorKind int

const (
	// UnknownParameter: a token matches no flag, option, alias, sub-command or
	// remaining argument.
	UnknownParameter ErrorKind = iota + 1
	// InvalidShortOption: an option alias appears before the end of a short cluster.
	InvalidShortOption
	// MissingOptionValue: an option is the last token.
	MissingOptionValue
	// MissingRequiredParameter: a required option was never supplied.
	MissingRequiredParameter
	// InvalidValue: a parser rejected a token.
	InvalidValue
	// Misconfigured: the command tree itself is wrong.
	Misconfigured
)

var kindSentinels = map[ErrorKind]error{
	UnknownParameter:         ErrUnknownParameter,
	InvalidShortOption:       ErrInvalidShortOption,
	MissingOptionValue:       ErrMissingOptionValue,
	MissingRequiredParameter: ErrMissingRequired,
	InvalidValue:             ErrInvalidValue,
	Misconfigured:            ErrMisconfigured,
}

func (k ErrorKind) String() string {
	if err, ok := kindSentinels[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// A ResolveError reports why an argument list could not be resolved.
type ResolveError struct {
	Kind ErrorKind
	// Param is the offending token, or the name of the option, flag or
	// argument involved.
	Param string
	// Path is the command path active when the error occurred.
	Path string
	// Err is the underlying error, if any, such as a parser's.
	Err error
}

func (e *ResolveError) Error() string {
	switch {
	case e.Err != nil && e.Param == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s for %s: %v", e.Kind, e.Param, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Kind, e.Param)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

func (e *ResolveError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// UsageError is an error in how the command is invoked.
type UsageError struct {
	Path    string
	Command *Command // the command to show help for; may be nil
	Err     error
}

// NewUsageError returns a UsageError wrapping err. Handlers can return one to
// have help printed for the current command.
func NewUsageError(err error) *UsageError {
	return &UsageError{Err: err}
}

func (u *UsageError) Error() string {
	if u.Path == "" {
		return u.Err.Error()
	}
	return fmt.Sprintf("%s: %v", u.Path, u.Err)
}

func (u *UsageError) Unwrap() error {
	return u.Err
}

// Copyright 2021 Jonathan Amsterdam.

package clitree

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// A ParseFunc converts a raw command-line token into a typed value.
// It may block; the resolver calls parsers one at a time, in token order.
type ParseFunc func(ctx context.Context, s string) (any, error)

// A Flag is a boolean switch that takes no value.
type Flag struct {
	Description string
	Default     bool
}

// An Option is a named parameter that consumes one value per occurrence.
type Option struct {
	Description string
	// Required options must be supplied. A required option has no default.
	Required bool
	// Multiple options keep every supplied value, in order.
	// Otherwise the last occurrence wins.
	Multiple bool
	// Default is used when the option is not supplied. Nil means no default.
	// For a Multiple option it may be a slice. An option that is neither
	// supplied, defaulted nor required is absent from Data.Options.
	Default any
	// Parser converts each value. If nil, the raw string is kept.
	Parser ParseFunc
}

// An Argument is a positional parameter, identified by its position in
// Command.Arguments.
type Argument struct {
	Name        string
	Description string
	Parser      ParseFunc
}

// Alias maps short names to the canonical keys of a command's
// sub-commands, flags and options.
type Alias struct {
	Commands map[string]string
	Flags    map[string]string
	Options  map[string]string
}

// A Command describes a command and its children.
// A Command must not be modified once it has been passed to New or Resolve.
type Command struct {
	Description string
	Flags       map[string]Flag
	Options     map[string]Option
	Arguments   []Argument
	Commands    map[string]*Command
	// Templates are sub-commands that are built when the resolver descends
	// into them, from the declarations of their parent.
	Templates map[string]Template
	Alias     Alias
}

// Inherited holds the declarations a Template receives from its parent.
type Inherited struct {
	Flags     map[string]Flag
	Options   map[string]Option
	Arguments []Argument
}

// A Template builds a sub-command from its parent's declarations.
// The flags and options in Inherited are merged into the result, with the
// template's own declarations taking precedence.
type Template func(Inherited) *Command

func (c *Command) inherited() Inherited {
	return Inherited{Flags: c.Flags, Options: c.Options, Arguments: c.Arguments}
}

// build calls t and composes the result with the inherited declarations.
func (t Template) build(parent *Command) *Command {
	in := parent.inherited()
	child := t(in)
	if child == nil {
		child = &Command{}
	}
	return Merge(&Command{Flags: in.Flags, Options: in.Options}, child)
}

// SchemaError describes a mistake in a Command tree.
type SchemaError struct {
	Path string // space-separated path of the command with the problem
	Msg  string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrMisconfigured
}

// Validate checks c and all its static sub-commands, and reports every
// problem it finds. Each problem is a *SchemaError; the returned error
// matches ErrMisconfigured.
//
// Templates are not called; they are checked when the resolver builds them.
func Validate(c *Command) error {
	return validateAt(c, "")
}

func validateAt(c *Command, path string) error {
	var result *multierror.Error
	validate(c, path, &result)
	return result.ErrorOrNil()
}

func validate(c *Command, path string, result **multierror.Error) {
	add := func(format string, args ...any) {
		*result = multierror.Append(*result, &SchemaError{Path: path, Msg: fmt.Sprintf(format, args...)})
	}
	for _, short := range sortedKeys(c.Alias.Commands) {
		target := c.Alias.Commands[short]
		if c.Commands[target] == nil && c.Templates[target] == nil {
			add("command alias %q: no command named %q", short, target)
		}
	}
	for _, short := range sortedKeys(c.Alias.Flags) {
		if target := c.Alias.Flags[short]; !hasKey(c.Flags, target) {
			add("flag alias %q: no flag named %q", short, target)
		}
	}
	for _, short := range sortedKeys(c.Alias.Options) {
		if target := c.Alias.Options[short]; !hasKey(c.Options, target) {
			add("option alias %q: no option named %q", short, target)
		}
	}
	for _, name := range sortedKeys(c.Options) {
		if o := c.Options[name]; o.Required && o.Default != nil {
			add("option %q is required and has a default", name)
		}
	}
	for _, name := range sortedKeys(c.Flags) {
		if hasKey(c.Options, name) {
			add("%q is both a flag and an option", name)
		}
	}
	for i, a := range c.Arguments {
		if a.Name == "" {
			add("argument %d has no name", i)
		}
	}
	for _, name := range sortedKeys(c.Templates) {
		if c.Templates[name] == nil {
			add("template %q is nil", name)
		}
		if hasKey(c.Commands, name) {
			add("%q is both a command and a template", name)
		}
	}
	for _, name := range sortedKeys(c.Commands) {
		sub := c.Commands[name]
		if sub == nil {
			add("command %q is nil", name)
			continue
		}
		validate(sub, joinPath(path, name), result)
	}
}

func hasKey[V any](m map[string]V, k string) bool {
	_, ok := m[k]
	return ok
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinPath(path, name string) string {
	return strings.TrimSpace(path + " " + name)
}

// CommandNames returns the sorted names of c's sub-commands, including templates.
func (c *Command) CommandNames() []string {
	names := sortedKeys(c.Commands)
	for _, n := range sortedKeys(c.Templates) {
		if c.Commands[n] == nil {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// FlagNames returns the sorted names of c's flags.
func (c *Command) FlagNames() []string { return sortedKeys(c.Flags) }

// OptionNames returns the sorted names of c's options.
func (c *Command) OptionNames() []string { return sortedKeys(c.Options) }

// CommandShorts returns the sorted short names that alias the command name.
func (a Alias) CommandShorts(name string) []string { return shortsFor(a.Commands, name) }

// FlagShorts returns the sorted short names that alias the flag name.
func (a Alias) FlagShorts(name string) []string { return shortsFor(a.Flags, name) }

// OptionShorts returns the sorted short names that alias the option name.
func (a Alias) OptionShorts(name string) []string { return shortsFor(a.Options, name) }

func shortsFor(m map[string]string, name string) []string {
	var shorts []string
	for _, short := range sortedKeys(m) {
		if m[short] == name {
			shorts = append(shorts, short)
		}
	}
	return shorts
}

// DisplayName formats a flag or option name the way it is written on the
// command line: one dash for a single character, two otherwise.
func DisplayName(name string) string {
	if len([]rune(name)) == 1 {
		return "-" + name
	}
	return "--" + name
}

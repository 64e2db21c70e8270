// Copyright 2021 Jonathan Amsterdam.

package clitree

import (
	"fmt"
	"reflect"
)

// Data holds the values resolved from an argument list.
type Data struct {
	// Flags maps every flag declared along the command path to its value.
	Flags map[string]bool
	// Options maps option names to values. The value of a Multiple option is
	// a []any; other options hold a single value. Options that were not
	// supplied and have no default are absent.
	Options map[string]any
	// Arguments holds the parsed positional arguments, in order.
	Arguments []any
	// Raw is the text following the word after "--".
	Raw string
}

// A Result describes the command that an argument list invokes.
type Result struct {
	// Path is the space-separated list of canonical sub-command names,
	// or "" for the root command.
	Path string
	Data Data
	// Command is the active command: the last one descended into, with the
	// help flag and any inherited declarations merged in.
	Command *Command
}

// state is the accumulating state of one resolution.
type state struct {
	path      string
	nodes     []*Command // root first; the last is active
	flags     map[string]bool
	options   map[string][]any
	arguments []any
	raw       string
}

func newState(root *Command) *state {
	return &state{
		nodes:   []*Command{root},
		flags:   map[string]bool{},
		options: map[string][]any{},
	}
}

func (s *state) active() *Command {
	return s.nodes[len(s.nodes)-1]
}

// finalize applies defaults and collapses options, starting at the active
// command and moving up. A name already settled by a nearer command is
// skipped. Only options declared by the active command can be missing;
// it returns the first such required option.
func (s *state) finalize() (Data, error) {
	d := s.data()
	d.Options = map[string]any{}
	seen := map[string]bool{}
	var firstErr error
	for i := len(s.nodes) - 1; i >= 0; i-- {
		c := s.nodes[i]
		for _, name := range sortedKeys(c.Options) {
			if seen[name] {
				continue
			}
			seen[name] = true
			o := c.Options[name]
			vals := s.options[name]
			switch {
			case len(vals) > 0:
				d.Options[name] = collapse(o, vals)
			case o.Default != nil:
				d.Options[name] = defaultValue(o)
			case o.Required && i == len(s.nodes)-1:
				if firstErr == nil {
					firstErr = &ResolveError{Kind: MissingRequiredParameter, Param: name, Path: s.path}
				}
			}
		}
		for name, f := range c.Flags {
			if _, ok := d.Flags[name]; !ok {
				d.Flags[name] = f.Default
			}
		}
	}
	return d, firstErr
}

// partial returns the data accumulated so far, without defaults.
func (s *state) partial() Data {
	d := s.data()
	d.Options = map[string]any{}
	for name, vals := range s.options {
		if len(vals) == 0 {
			continue
		}
		o, _ := s.lookupOption(name)
		d.Options[name] = collapse(o, vals)
	}
	return d
}

func (s *state) data() Data {
	d := Data{
		Flags:     make(map[string]bool, len(s.flags)),
		Arguments: append([]any{}, s.arguments...),
		Raw:       s.raw,
	}
	for k, v := range s.flags {
		d.Flags[k] = v
	}
	return d
}

// lookupOption finds the declaration of name nearest the active command.
func (s *state) lookupOption(name string) (Option, bool) {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		if o, ok := s.nodes[i].Options[name]; ok {
			return o, true
		}
	}
	return Option{}, false
}

func collapse(o Option, vals []any) any {
	if o.Multiple {
		return append([]any(nil), vals...)
	}
	return vals[len(vals)-1]
}

// defaultValue returns o's default in the same shape as a supplied value.
func defaultValue(o Option) any {
	if !o.Multiple {
		return o.Default
	}
	v := reflect.ValueOf(o.Default)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return []any{o.Default}
	}
	vals := make([]any, v.Len())
	for i := range vals {
		vals[i] = v.Index(i).Interface()
	}
	return vals
}

// Get returns the value of the named option as a T.
// It reports false if the option is absent or holds a different type.
func Get[T any](d Data, name string) (T, bool) {
	v, ok := d.Options[name].(T)
	return v, ok
}

// GetAll returns the values of the named Multiple option as a []T.
// Values of other types are skipped.
func GetAll[T any](d Data, name string) []T {
	var ts []T
	switch v := d.Options[name].(type) {
	case []any:
		for _, x := range v {
			if t, ok := x.(T); ok {
				ts = append(ts, t)
			}
		}
	case T:
		ts = append(ts, v)
	}
	return ts
}

// Arg returns the i'th positional argument as a T.
func Arg[T any](d Data, i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(d.Arguments) {
		return zero, false
	}
	v, ok := d.Arguments[i].(T)
	return v, ok
}

// String returns a readable summary of d, for debugging.
func (d Data) String() string {
	return fmt.Sprintf("flags=%v options=%v arguments=%v raw=%q", d.Flags, d.Options, d.Arguments, d.Raw)
}

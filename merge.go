// Copyright 2021 Jonathan Amsterdam.

package clitree

// Merge returns a new Command combining a and b. Neither argument is modified.
//
// Values in b take precedence. Maps are combined entry by entry, with entries
// of b replacing those of a, except that sub-commands present in both are
// merged recursively. Arguments are concatenated, a's first.
// Either argument may be nil.
func Merge(a, b *Command) *Command {
	switch {
	case a == nil && b == nil:
		return &Command{}
	case a == nil:
		a = &Command{}
	case b == nil:
		b = &Command{}
	}
	c := &Command{
		Description: a.Description,
		Flags:       mergeMaps(a.Flags, b.Flags),
		Options:     mergeMaps(a.Options, b.Options),
		Templates:   mergeMaps(a.Templates, b.Templates),
		Alias: Alias{
			Commands: mergeMaps(a.Alias.Commands, b.Alias.Commands),
			Flags:    mergeMaps(a.Alias.Flags, b.Alias.Flags),
			Options:  mergeMaps(a.Alias.Options, b.Alias.Options),
		},
	}
	if b.Description != "" {
		c.Description = b.Description
	}
	if len(a.Arguments)+len(b.Arguments) > 0 {
		c.Arguments = append(append([]Argument(nil), a.Arguments...), b.Arguments...)
	}
	if len(a.Commands)+len(b.Commands) > 0 {
		c.Commands = make(map[string]*Command, len(a.Commands)+len(b.Commands))
		for k, v := range a.Commands {
			c.Commands[k] = v
		}
		for k, v := range b.Commands {
			if av, ok := a.Commands[k]; ok && av != nil && v != nil {
				c.Commands[k] = Merge(av, v)
			} else {
				c.Commands[k] = v
			}
		}
	}
	return c
}

// mergeMaps returns the union of a and b, preferring b. It returns nil
// when both are empty.
func mergeMaps[V any](a, b map[string]V) map[string]V {
	if len(a)+len(b) == 0 {
		return nil
	}
	m := make(map[string]V, len(a)+len(b))
	for k, v := range a {
		m[k] = v
	}
	for k, v := range b {
		m[k] = v
	}
	return m
}

const helpFlagName = "help"

const defaultHelpDescription = "Display help information about the command"

// withHelp returns c with a "help" flag added, unless c already declares
// a flag or option of that name.
func withHelp(c *Command, description string) *Command {
	if hasKey(c.Flags, helpFlagName) || hasKey(c.Options, helpFlagName) {
		return c
	}
	if description == "" {
		description = defaultHelpDescription
	}
	help := &Command{Flags: map[string]Flag{helpFlagName: {Description: description}}}
	return Merge(help, c)
}

// Copyright 2021 Jonathan Amsterdam.

package clitree

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

var heading = color.New(color.Bold)

// Help returns the help text for c, headed by title.
func Help(title string, c *Command) string {
	var b strings.Builder
	// Writes to a strings.Builder do not fail.
	_ = WriteHelp(&b, title, c)
	return b.String()
}

// WriteHelp writes the help text for c to w. It lists c's sub-commands,
// flags, options and arguments, each with the short names that alias it.
// Section headings are bold when color output is enabled.
func WriteHelp(w io.Writer, title string, c *Command) error {
	var b strings.Builder
	if title != "" {
		fmt.Fprintln(&b, title)
	}
	if c.Description != "" {
		fmt.Fprintln(&b, c.Description)
	}
	var rows [][2]string
	section := func(name string) {
		if len(rows) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s\n", heading.Sprint(name+":"))
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, r := range rows {
			fmt.Fprintf(tw, "  %s\t%s\n", r[0], r[1])
		}
		tw.Flush()
		rows = nil
	}

	for _, name := range c.CommandNames() {
		desc := ""
		if sub := c.Commands[name]; sub != nil {
			desc = sub.Description
		} else if t := c.Templates[name]; t != nil {
			desc = t.build(c).Description
		}
		rows = append(rows, [2]string{joinNames(name, c.Alias.CommandShorts(name), nil), desc})
	}
	section("Commands")

	for _, name := range c.FlagNames() {
		f := c.Flags[name]
		desc := f.Description
		if f.Default {
			desc += " (default true)"
		}
		rows = append(rows, [2]string{joinNames(name, c.Alias.FlagShorts(name), DisplayName), desc})
	}
	section("Flags")

	for _, name := range c.OptionNames() {
		o := c.Options[name]
		rows = append(rows, [2]string{
			joinNames(name, c.Alias.OptionShorts(name), DisplayName) + " <value>",
			optionDoc(o),
		})
	}
	section("Options")

	for i, a := range c.Arguments {
		rows = append(rows, [2]string{fmt.Sprintf("<%d:%s>", i, a.Name), a.Description})
	}
	section("Arguments")

	_, err := io.WriteString(w, b.String())
	return err
}

// joinNames lists the short names before name, formatted with display.
func joinNames(name string, shorts []string, display func(string) string) string {
	if display == nil {
		display = func(s string) string { return s }
	}
	var parts []string
	for _, s := range shorts {
		parts = append(parts, display(s))
	}
	parts = append(parts, display(name))
	return strings.Join(parts, ", ")
}

func optionDoc(o Option) string {
	doc := o.Description
	var notes []string
	if o.Required {
		notes = append(notes, "required")
	}
	if o.Multiple {
		notes = append(notes, "repeatable")
	}
	if o.Default != nil {
		notes = append(notes, fmt.Sprintf("default %v", o.Default))
	}
	if len(notes) > 0 {
		doc += " (" + strings.Join(notes, ", ") + ")"
	}
	return strings.TrimSpace(doc)
}

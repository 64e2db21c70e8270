// Copyright 2021 Jonathan Amsterdam.

package clitree

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Config controls a Parser.
type Config struct {
	// Logger receives a debug-level event for each step of a resolution.
	// If nil, nothing is logged. The Parser reads it once, in New, so it
	// cannot be switched on by a flag in the argument list being resolved.
	Logger *zerolog.Logger
	// NoHelp disables the implicit "help" flag.
	NoHelp bool
	// HelpDescription overrides the description of the implicit "help" flag.
	HelpDescription string
}

// A Parser resolves argument lists against a validated Command tree.
// It is safe for concurrent use.
type Parser struct {
	root *Command
	cfg  Config
	log  zerolog.Logger
}

// New validates root and returns a Parser for it.
// The error, if any, matches ErrMisconfigured.
func New(root *Command, cfg Config) (*Parser, error) {
	if root == nil {
		return nil, &SchemaError{Msg: "nil command"}
	}
	if err := Validate(root); err != nil {
		return nil, err
	}
	p := &Parser{root: root, cfg: cfg, log: zerolog.Nop()}
	if cfg.Logger != nil {
		p.log = *cfg.Logger
	}
	return p, nil
}

// Resolve validates root and resolves argv against it.
// A problem with root is reported as a *ResolveError of kind Misconfigured.
func Resolve(ctx context.Context, argv []string, root *Command) (*Result, error) {
	p, err := New(root, Config{})
	if err != nil {
		res := &Result{Command: root, Data: Data{Flags: map[string]bool{}, Options: map[string]any{}}}
		return res, &ResolveError{Kind: Misconfigured, Err: err}
	}
	return p.Resolve(ctx, argv)
}

// Resolve matches argv, which should not include the program name, against
// the Parser's command tree.
//
// The returned Result is never nil. If there is an error, it is a
// *ResolveError, and the Result holds what was resolved before the error
// along with the command that was active, so the caller can show help for it.
func (p *Parser) Resolve(ctx context.Context, argv []string) (*Result, error) {
	r := &resolver{p: p, st: newState(p.prepare(p.root))}
	tokens := argv
	for len(tokens) > 0 {
		var err error
		tokens, err = r.step(ctx, tokens)
		if err != nil {
			p.log.Debug().Str("path", r.st.path).Err(err).Msg("error")
			return r.result(r.st.partial()), err
		}
	}
	d, err := r.st.finalize()
	p.log.Debug().Str("path", r.st.path).Err(err).Msg("finalize")
	return r.result(d), err
}

func (p *Parser) prepare(c *Command) *Command {
	if p.cfg.NoHelp {
		return c
	}
	return withHelp(c, p.cfg.HelpDescription)
}

type resolver struct {
	p  *Parser
	st *state
}

func (r *resolver) result(d Data) *Result {
	return &Result{Path: r.st.path, Data: d, Command: r.st.active()}
}

func (r *resolver) fail(kind ErrorKind, param string, err error) error {
	return &ResolveError{Kind: kind, Param: param, Path: r.st.path, Err: err}
}

func (r *resolver) trace(msg, token string) {
	r.p.log.Debug().Str("path", r.st.path).Str("token", token).Msg(msg)
}

// step consumes one or more tokens from the front of tokens and returns
// what remains. Rewritten aliases are pushed back onto the front.
func (r *resolver) step(ctx context.Context, tokens []string) ([]string, error) {
	head, tail := tokens[0], tokens[1:]
	switch {
	case head == "--":
		if len(tail) > 1 {
			r.st.raw = strings.Join(tail[1:], " ")
		}
		r.trace("raw", head)
		return nil, nil
	case !strings.HasPrefix(head, "-"):
		return r.word(ctx, head, tail)
	case !strings.HasPrefix(head, "--"):
		return r.cluster(head, tail)
	default:
		return r.long(ctx, head, tail)
	}
}

// word handles a token that does not start with a dash: a sub-command,
// a sub-command alias, or the next positional argument. Arguments share one
// list across descents, so the active command's slot is the list's length.
func (r *resolver) word(ctx context.Context, head string, tail []string) ([]string, error) {
	c := r.st.active()
	if m := lookupWord(c, head); m.kind != matchNone {
		return tail, r.descend(m.name)
	}
	n := len(r.st.arguments)
	if n >= len(c.Arguments) {
		return nil, r.fail(UnknownParameter, head, nil)
	}
	a := c.Arguments[n]
	v, err := parseValue(ctx, a.Parser, head)
	if err != nil {
		return nil, r.fail(InvalidValue, a.Name, err)
	}
	r.trace("argument", head)
	r.st.arguments = append(r.st.arguments, v)
	return tail, nil
}

func (r *resolver) descend(name string) error {
	parent := r.st.active()
	path := joinPath(r.st.path, name)
	child := parent.Commands[name]
	if child == nil {
		child = parent.Templates[name].build(parent)
		if err := validateAt(child, path); err != nil {
			return r.fail(Misconfigured, name, err)
		}
	}
	r.st.path = path
	r.st.nodes = append(r.st.nodes, r.p.prepare(child))
	r.trace("descend", name)
	return nil
}

// cluster handles a token with a single leading dash. Every character but
// the last must be a flag alias; the last may also be an option alias, in
// which case the option consumes the next token.
func (r *resolver) cluster(head string, tail []string) ([]string, error) {
	c := r.st.active()
	keys := []rune(head[1:])
	if len(keys) == 0 {
		return nil, r.fail(UnknownParameter, head, nil)
	}
	for i, k := range keys {
		m := lookupShort(c, string(k))
		switch m.kind {
		case matchFlagAlias:
			r.trace("flag", head)
			r.st.flags[m.name] = true
		case matchOptionAlias:
			if i != len(keys)-1 {
				return nil, r.fail(InvalidShortOption, m.name, nil)
			}
			return rewrite(m.name, tail), nil
		default:
			return nil, r.fail(UnknownParameter, head, nil)
		}
	}
	return tail, nil
}

// long handles a token with two leading dashes.
func (r *resolver) long(ctx context.Context, head string, tail []string) ([]string, error) {
	c := r.st.active()
	m := lookupLong(c, head[2:])
	switch m.kind {
	case matchFlag:
		r.trace("flag", head)
		r.st.flags[m.name] = true
		return tail, nil
	case matchFlagAlias, matchOptionAlias:
		return rewrite(m.name, tail), nil
	case matchOption:
		if len(tail) == 0 {
			return nil, r.fail(MissingOptionValue, m.name, nil)
		}
		v, err := parseValue(ctx, c.Options[m.name].Parser, tail[0])
		if err != nil {
			return nil, r.fail(InvalidValue, m.name, err)
		}
		r.trace("option", head)
		r.st.options[m.name] = append(r.st.options[m.name], v)
		return tail[1:], nil
	default:
		return nil, r.fail(UnknownParameter, head, nil)
	}
}

func rewrite(name string, tail []string) []string {
	return append([]string{"--" + name}, tail...)
}

func parseValue(ctx context.Context, parse ParseFunc, s string) (any, error) {
	if parse == nil {
		return s, nil
	}
	return parse(ctx, s)
}

type matchKind int

const (
	matchNone matchKind = iota
	matchFlag
	matchOption
	matchCommand
	matchFlagAlias
	matchOptionAlias
	matchCommandAlias
)

// A match is the classification of a name looked up in a command.
// For aliases, name is the canonical key.
type match struct {
	kind matchKind
	name string
}

func lookupWord(c *Command, word string) match {
	if c.Commands[word] != nil || c.Templates[word] != nil {
		return match{matchCommand, word}
	}
	if target, ok := c.Alias.Commands[word]; ok {
		return match{matchCommandAlias, target}
	}
	return match{}
}

func lookupShort(c *Command, key string) match {
	if target, ok := c.Alias.Flags[key]; ok {
		return match{matchFlagAlias, target}
	}
	if target, ok := c.Alias.Options[key]; ok {
		return match{matchOptionAlias, target}
	}
	return match{}
}

func lookupLong(c *Command, key string) match {
	if _, ok := c.Flags[key]; ok {
		return match{matchFlag, key}
	}
	if target, ok := c.Alias.Flags[key]; ok {
		return match{matchFlagAlias, target}
	}
	if _, ok := c.Options[key]; ok {
		return match{matchOption, key}
	}
	if target, ok := c.Alias.Options[key]; ok {
		return match{matchOptionAlias, target}
	}
	return match{}
}

// Copyright 2021 Jonathan Amsterdam.

package clitree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Code for running commands.

// A Handler runs the command selected by a resolution.
type Handler func(ctx context.Context, r *Result) error

// An App ties a command tree to the handlers that carry out its commands.
type App struct {
	// Name is the program name shown in help. It defaults to the base name
	// of os.Args[0].
	Name string
	Root *Command
	// Handlers maps command paths, as in Result.Path, to handlers.
	Handlers map[string]Handler
	// Stdout and Stderr default to os.Stdout and os.Stderr.
	Stdout, Stderr io.Writer
	Config         Config
}

// Main runs the app with the process's arguments and returns an exit code:
// 0 on success or when help was requested, 1 when a handler fails, and
// 2 when the command line is wrong.
func (a *App) Main(ctx context.Context) int {
	return a.mainWithArgs(ctx, os.Args[1:])
}

func (a *App) mainWithArgs(ctx context.Context, args []string) int {
	err := a.Run(ctx, args)
	if err == nil {
		return 0
	}
	fmt.Fprintln(a.stderr(), err)
	var uerr *UsageError
	if errors.As(err, &uerr) {
		if uerr.Command != nil {
			fmt.Fprintln(a.stderr())
			// The exit status is 2 whether or not help can be written.
			_ = WriteHelp(a.stderr(), a.title(uerr.Path), uerr.Command)
		}
		return 2
	}
	return 1
}

// Run resolves args and calls the handler for the resulting path.
// If the help flag is set, Run writes help for the selected command to
// Stdout and returns nil. Resolution errors, and paths with no handler, are
// returned as a *UsageError.
func (a *App) Run(ctx context.Context, args []string) error {
	p, err := New(a.Root, a.Config)
	if err != nil {
		return err
	}
	res, err := p.Resolve(ctx, args)
	if err != nil {
		return &UsageError{Path: res.Path, Command: res.Command, Err: err}
	}
	if !a.Config.NoHelp && res.Data.Flags[helpFlagName] {
		return WriteHelp(a.stdout(), a.title(res.Path), res.Command)
	}
	h := a.Handlers[res.Path]
	if h == nil {
		return &UsageError{Path: res.Path, Command: res.Command, Err: errors.New("missing sub-command")}
	}
	err = h(ctx, res)
	var uerr *UsageError
	if errors.As(err, &uerr) && uerr.Command == nil {
		uerr.Path = res.Path
		uerr.Command = res.Command
	}
	return err
}

func (a *App) title(path string) string {
	name := a.Name
	if name == "" {
		name = filepath.Base(os.Args[0])
	}
	return "Usage: " + joinPath(name, path)
}

func (a *App) stdout() io.Writer {
	if a.Stdout != nil {
		return a.Stdout
	}
	return os.Stdout
}

func (a *App) stderr() io.Writer {
	if a.Stderr != nil {
		return a.Stderr
	}
	return os.Stderr
}

// Copyright 2021 Jonathan Amsterdam.

/*
Package clitree resolves command lines against a declarative tree of commands.

A [Command] declares flags (boolean switches), options (named parameters that
take a value), positional arguments, nested sub-commands, and short aliases for
its flags, options and sub-commands. For example, here is a command with a
"compare" sub-command that takes two files and a "-v" flag:

	var top = &clitree.Command{
	  Description: "file tools",
	  Commands: map[string]*clitree.Command{
	    "compare": {
	      Description: "compare two files",
	      Flags:       map[string]clitree.Flag{"verbose": {Description: "verbose output"}},
	      Arguments: []clitree.Argument{
	        {Name: "file1", Description: "first file"},
	        {Name: "file2", Description: "second file"},
	      },
	      Alias: clitree.Alias{Flags: map[string]string{"v": "verbose"}},
	    },
	  },
	}

# Resolution

[Resolve] walks an argument list from left to right:

  - A word that names a sub-command, or a sub-command alias, descends into it.
    Otherwise the word is the next positional argument.
  - "--name" sets a flag, or consumes the following word as an option value.
    A long alias is rewritten to the canonical name.
  - "-abc" sets the flags aliased by a, b and c. The last letter may instead
    alias an option, which then consumes the following word.
  - "--" ends resolution. The word after it is dropped and the rest are joined
    with spaces into [Data].Raw.

At the end, options that were not supplied take their defaults, a missing
required option is an error, and unless an option is Multiple only its last
value is kept. Every command also gets a "help" flag.

The result is a [Result] naming the command path ("compare", or "" for the top
command), the resolved [Data], and the active command. On failure the error is a
[*ResolveError] and the Result still describes the partial resolution, so
callers can print help for the command that was being resolved.

Values are converted by [ParseFunc]s, which may block. [Typed], [OneOf] and
[List] build the common ones. [Get], [GetAll], [Arg] and [Bind] extract typed
values from the result.

# Templates

A sub-command can also be a [Template]: a function that receives the flags,
options and arguments of its parent and returns the sub-command. It is called
when the resolver descends into it, and the inherited flags and options are
merged into what it returns with [Merge].

# Execution

An [App] pairs a command tree with a [Handler] for each command path. Its Main
method resolves the process's arguments, prints help on "--help" or on a usage
error, and returns an exit code:

	func main() {
	  os.Exit(app.Main(context.Background()))
	}
*/
package clitree

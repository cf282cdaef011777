// Package cli is the jackc command-line driver: one positional argument (a
// .jack file or a directory of them), no flags.
package cli

import (
	"fmt"

	"github.com/mna/mainer"

	"github.com/libklein/jackc/internal/driver"
)

// Cmd is the jackc command. It carries no flags: the only input is the
// positional file-or-directory argument captured by SetArgs.
type Cmd struct {
	args []string
}

// SetArgs implements the argument-setter interface mainer.Parser expects.
func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

// SetFlags implements the flag-setter interface mainer.Parser expects.
// jackc defines no flags, so this is a no-op.
func (c *Cmd) SetFlags(map[string]bool) {}

// Validate checks that exactly one positional argument was given.
func (c *Cmd) Validate() error {
	switch len(c.args) {
	case 0:
		return fmt.Errorf("missing file or directory argument")
	case 1:
		return nil
	default:
		return fmt.Errorf("too many arguments: %v", c.args[1:])
	}
}

// Main parses args, validates them, and compiles every .jack file reachable
// from the single positional argument, returning a mainer.ExitCode: 0 on
// success, non-zero on any error.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n", err)
		return mainer.InvalidArgs
	}

	files, err := driver.CollectFiles(c.args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}

	ok := true
	for _, file := range files {
		fmt.Fprintf(stdio.Stdout, "Compiling file %q\n", file)
		outputPath, err := driver.CompileFile(file)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "failed to compile %q: %s\n", file, err)
			ok = false
			continue
		}
		fmt.Fprintf(stdio.Stdout, "Saved as %q\n", outputPath)
	}

	if !ok {
		return mainer.Failure
	}
	return mainer.Success
}

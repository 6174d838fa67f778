package execpipe

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/goaux/stacktrace/v2"
)

// CheckPath checks if the given executable exists in the system's PATH.
// It returns an error if the executable is not found, or nil if it is.
func CheckPath(executable string) error {
	_, err := stacktrace.Trace2(exec.LookPath(executable))
	return err
}

// Command describes one invocation of an external program in a directory.
type Command struct {
	Dir    string
	Name   string
	Args   []string
	Stdout io.Writer // nil discards
	Stderr io.Writer // nil discards
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// RunContext starts c and waits for it to exit. The process is killed when
// ctx is done.
//
// Returns:
//
//	An error naming the command line and the directory if the command could
//	not be started or exited with a non-zero status.
func RunContext(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := stacktrace.Trace(cmd.Run()); err != nil {
		return fmt.Errorf("%q in %s: %w", c.String(), c.Dir, err)
	}
	return nil
}

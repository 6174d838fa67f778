// Package installer installs the npm dependencies of a generated project.
package installer

import (
	"context"
	"io"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/OniCoders/microservice-script-ts/execpipe"
)

// Dependencies are the packages installed into one project.
type Dependencies struct {
	Runtime []string
	Dev     []string
}

// Installer sets up the package manifest in dir and installs deps there.
type Installer interface {
	Install(ctx context.Context, dir string, deps Dependencies) error
}

// NPM drives an npm compatible executable.
type NPM struct {
	Executable string // "npm" when empty
	Stdout     io.Writer
	Stderr     io.Writer
	Log        logrus.FieldLogger

	// run is replaced in tests.
	run func(context.Context, execpipe.Command) error
}

// Commands returns the command lines Install runs, in order.
// A dependency list that is empty has no command.
func (n *NPM) Commands(dir string, deps Dependencies) []execpipe.Command {
	exe := n.executable()
	cmds := []execpipe.Command{n.command(dir, exe, "init", "-y")}
	if len(deps.Runtime) > 0 {
		cmds = append(cmds, n.command(dir, exe, append([]string{"install"}, deps.Runtime...)...))
	}
	if len(deps.Dev) > 0 {
		cmds = append(cmds, n.command(dir, exe, append([]string{"install", "--save-dev"}, deps.Dev...)...))
	}
	return cmds
}

// Install runs the commands one after another and stops at the first
// failure.
func (n *NPM) Install(ctx context.Context, dir string, deps Dependencies) error {
	run := n.run
	if run == nil {
		if err := execpipe.CheckPath(n.executable()); err != nil {
			return err
		}
		run = execpipe.RunContext
	}
	for _, c := range n.Commands(dir, deps) {
		n.logger().WithField("dir", dir).WithField("cmd", c.String()).Debug("running")
		if err := run(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (n *NPM) command(dir, exe string, args ...string) execpipe.Command {
	return execpipe.Command{Dir: dir, Name: exe, Args: args, Stdout: n.Stdout, Stderr: n.Stderr}
}

func (n *NPM) executable() string {
	if n.Executable == "" {
		return "npm"
	}
	return n.Executable
}

func (n *NPM) logger() logrus.FieldLogger {
	if n.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return n.Log
}

// Call is one recorded Install.
type Call struct {
	Dir  string
	Deps Dependencies
}

// Recorder is an Installer that only remembers what it was asked to do.
type Recorder struct {
	Err error // returned from every Install

	mu    sync.Mutex
	calls []Call
}

func (r *Recorder) Install(ctx context.Context, dir string, deps Dependencies) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{
		Dir:  dir,
		Deps: Dependencies{Runtime: slices.Clone(deps.Runtime), Dev: slices.Clone(deps.Dev)},
	})
	return r.Err
}

func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

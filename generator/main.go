// Package generator provides the command that scaffolds TypeScript CRUD
// microservices.
package generator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/goaux/contextvalue"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/OniCoders/microservice-script-ts/installer"
	"github.com/OniCoders/microservice-script-ts/prompt"
	"github.com/OniCoders/microservice-script-ts/scaffold"
	"github.com/OniCoders/microservice-script-ts/settings"
	"github.com/OniCoders/microservice-script-ts/ui"
)

// Main is the entry point of the binary. It exits the process.
func Main(ctx context.Context, config Config) {
	cmd := Command(ctx, config)
	if err := cmd.ExecuteContext(cmd.Context()); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	ui.New(io.Discard, w, false).Error("error: %v", err)
}

// Command builds the root command without running it.
func Command(ctx context.Context, config Config) *cobra.Command {
	var flags flagsType
	cmd := &cobra.Command{
		Use:     config.Use,
		Short:   config.Short,
		Long:    render(config.Long),
		Version: config.Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags)
		},

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	bindFlags(cmd.Flags(), &flags, config)
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.MarkFlagDirname("dir")
	cmd.MarkFlagFilename("config", "yaml", "yml")

	cmd.SetContext(contextvalue.With(ctx, &config))
	return cmd
}

type flagsType struct {
	Dir         string
	Config      string
	SkipInstall bool
	Verbose     bool
}

func bindFlags(fl *pflag.FlagSet, flags *flagsType, config Config) {
	dir := config.DefaultDir
	if dir == "" {
		dir = "."
	}
	fl.SortFlags = false
	fl.StringVarP(&flags.Dir, "dir", "C", dir, "Output `directory`; services/ is created below it")
	fl.StringVar(&flags.Config, "config", "", "Settings `file.yaml` (default <dir>/"+settings.FileName+" when present)")
	fl.BoolVar(&flags.SkipInstall, "skip-install", false, "Write files only, do not run the package manager")
	fl.BoolVarP(&flags.Verbose, "verbose", "v", false, "Log every directory, file and command")
}

// newInstaller is replaced in tests.
var newInstaller = func(s *settings.Settings, u *ui.UI) installer.Installer {
	return &installer.NPM{
		Executable: s.PackageManager,
		Stdout:     u.Out(),
		Stderr:     os.Stderr,
		Log:        u.Logger(),
	}
}

func run(cmd *cobra.Command, flags flagsType) error {
	config, ok := contextvalue.From[*Config](cmd.Context())
	if !ok {
		panic("never")
	}
	u := ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), flags.Verbose)

	path, optional := flags.Config, false
	if path == "" {
		path, optional = filepath.Join(flags.Dir, settings.FileName), true
	}
	s, err := settings.Load(path, optional)
	if err != nil {
		return err
	}

	g := &Generator{
		Workspace: scaffold.New(flags.Dir, u.Logger()),
		Prompter:  prompt.NewLine(cmd.InOrStdin(), cmd.OutOrStdout()),
		Settings:  s,
		UI:        u,
	}
	if !flags.SkipInstall {
		g.Installer = newInstaller(s, u)
	}

	u.Logger().WithField("dir", flags.Dir).WithField("version", config.Version).Debug("starting")
	report, err := g.Run(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderTo(cmd.OutOrStdout(), nextSteps(g.Workspace, report, s, flags.SkipInstall)))
	return nil
}

func nextSteps(w *scaffold.Workspace, r *Report, s *settings.Settings, skipInstall bool) string {
	var b strings.Builder
	b.WriteString("## Next steps\n\n")
	fmt.Fprintf(&b, "1. `cd %s`\n", w.Abs(r.Service.Dir))
	if skipInstall {
		fmt.Fprintf(&b, "1. `%s`\n", installLine(s.PackageManager, installer.Dependencies{
			Runtime: s.Service.Runtime,
			Dev:     s.Service.Dev,
		}))
	}
	b.WriteString("1. Start MongoDB and `npx ts-node-dev src/index.ts`\n")
	if r.Gateway != nil && !r.Gateway.Skipped {
		if skipInstall {
			fmt.Fprintf(&b, "1. `cd %s && %s`\n", w.Abs(r.Gateway.Dir), installLine(s.PackageManager, installer.Dependencies{
				Runtime: s.Gateway.Runtime,
				Dev:     s.Gateway.Dev,
			}))
		}
		fmt.Fprintf(&b, "1. Run the gateway from `%s`\n", w.Abs(r.Gateway.Dir))
	}
	return b.String()
}

// installLine is the shell form of what the installer would have run.
func installLine(executable string, deps installer.Dependencies) string {
	n := &installer.NPM{Executable: executable}
	var cmds []string
	for _, c := range n.Commands("", deps) {
		cmds = append(cmds, c.String())
	}
	return strings.Join(cmds, " && ")
}

func render(usage string) string {
	return renderTo(os.Stdout, usage)
}

func renderTo(w io.Writer, markdown string) string {
	if isTTY(w) {
		r, err := glamour.NewTermRenderer(
			glamour.WithEnvironmentConfig(),
			glamour.WithWordWrap(100),
		)
		if err == nil { // if NO error
			if s, err := r.Render(markdown); err == nil { // if NO error
				return s
			}
		}
	}
	return markdown
}

func isTTY(io any) bool {
	if f, ok := io.(*os.File); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

package generator

import (
	"context"
	"fmt"

	"github.com/OniCoders/microservice-script-ts/installer"
	"github.com/OniCoders/microservice-script-ts/naming"
	"github.com/OniCoders/microservice-script-ts/prompt"
	"github.com/OniCoders/microservice-script-ts/scaffold"
	"github.com/OniCoders/microservice-script-ts/settings"
	"github.com/OniCoders/microservice-script-ts/ui"
)

// Generator runs one generation: ask, write the service, install, then the
// optional gateway.
type Generator struct {
	Workspace *scaffold.Workspace
	Prompter  prompt.Prompter
	Installer installer.Installer // nil skips installation
	Settings  *settings.Settings
	UI        *ui.UI
}

// Report is what a run produced.
type Report struct {
	Answers  prompt.Answers
	Names    naming.Variants
	Service  scaffold.Result
	Gateway  *scaffold.Result // nil when not requested
	Installs int
}

// Run performs the whole flow and stops at the first error.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	answers, err := g.Prompter.Ask(ctx)
	if err != nil {
		return nil, err
	}
	if !naming.Valid(answers.ModelName) {
		return nil, fmt.Errorf("invalid model name %q", answers.ModelName)
	}
	r := &Report{Answers: answers, Names: naming.Derive(answers.ModelName)}

	total, err := g.steps(r.Names, answers.IncludeGateway)
	if err != nil {
		return r, err
	}
	if g.Installer == nil {
		g.UI.Info("Skipping dependency installation")
	}
	step := 0
	next := func(format string, args ...any) {
		step++
		g.UI.Step(step, total, format, args...)
	}

	next("Writing %s service to %s", r.Names.Pascal, scaffold.ServiceDir(r.Names))
	r.Service, err = g.Workspace.Service(r.Names, g.Settings.Service.Port)
	if err != nil {
		return r, fmt.Errorf("write service: %w", err)
	}
	if err := g.install(ctx, next, r, r.Service.Dir, installer.Dependencies{
		Runtime: g.Settings.Service.Runtime,
		Dev:     g.Settings.Service.Dev,
	}); err != nil {
		return r, err
	}

	if answers.IncludeGateway {
		next("Writing API gateway to %s", scaffold.GatewayDir)
		gw, err := g.Workspace.Gateway(g.Settings.Gateway)
		r.Gateway = &gw
		if err != nil {
			return r, fmt.Errorf("write gateway: %w", err)
		}
		if gw.Skipped {
			g.UI.Warning("Gateway already exists at %s, skipping", g.Workspace.Abs(gw.Dir))
		} else if err := g.install(ctx, next, r, gw.Dir, installer.Dependencies{
			Runtime: g.Settings.Gateway.Runtime,
			Dev:     g.Settings.Gateway.Dev,
		}); err != nil {
			return r, err
		}
	}

	g.UI.Success("%s service generated in %s", r.Names.Pascal, g.Workspace.Abs(r.Service.Dir))
	return r, nil
}

// steps counts the progress lines Run prints. An existing gateway, or a
// service that takes its directory, is neither written nor installed.
func (g *Generator) steps(v naming.Variants, gateway bool) (int, error) {
	n := 1
	if g.Installer != nil {
		n++
	}
	if !gateway {
		return n, nil
	}
	n++
	exists, err := g.Workspace.Exists(scaffold.GatewayDir)
	if err != nil {
		return 0, err
	}
	if g.Installer != nil && !exists && scaffold.ServiceDir(v) != scaffold.GatewayDir {
		n++
	}
	return n, nil
}

func (g *Generator) install(ctx context.Context, next func(string, ...any), r *Report, dir string, deps installer.Dependencies) error {
	if g.Installer == nil {
		return nil
	}
	next("Installing dependencies in %s", dir)
	if err := g.Installer.Install(ctx, g.Workspace.Abs(dir), deps); err != nil {
		return fmt.Errorf("install dependencies in %s: %w", dir, err)
	}
	r.Installs++
	return nil
}

package generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OniCoders/microservice-script-ts/installer"
	"github.com/OniCoders/microservice-script-ts/prompt"
	"github.com/OniCoders/microservice-script-ts/scaffold"
	"github.com/OniCoders/microservice-script-ts/settings"
	"github.com/OniCoders/microservice-script-ts/ui"
)

func init() {
	color.NoColor = true
}

func newGenerator(root string, answers prompt.Answers, inst installer.Installer, out *bytes.Buffer) *Generator {
	return &Generator{
		Workspace: scaffold.New(root, nil),
		Prompter:  prompt.Static(answers),
		Installer: inst,
		Settings:  settings.Default(),
		UI:        ui.New(out, out, false),
	}
}

func TestRunService(t *testing.T) {
	root := t.TempDir()
	rec := &installer.Recorder{}
	out := new(bytes.Buffer)

	r, err := newGenerator(root, prompt.Answers{ModelName: "OrderItem"}, rec, out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "services/order-item", r.Service.Dir)
	assert.Nil(t, r.Gateway)
	assert.Equal(t, 1, r.Installs)
	assert.FileExists(t, filepath.Join(root, "services", "order-item", "src", "di", "orderitem.di.ts"))
	assert.NoDirExists(t, filepath.Join(root, "services", "gateway"))

	s := settings.Default()
	assert.Equal(t, []installer.Call{{
		Dir:  filepath.Join(root, "services", "order-item"),
		Deps: installer.Dependencies{Runtime: s.Service.Runtime, Dev: s.Service.Dev},
	}}, rec.Calls())
	assert.Contains(t, out.String(), "[1/2] Writing OrderItem service to services/order-item")
	assert.Contains(t, out.String(), "[2/2] Installing dependencies in services/order-item")
	assert.Contains(t, out.String(), "OrderItem service generated in")
}

func TestRunWithGateway(t *testing.T) {
	root := t.TempDir()
	rec := &installer.Recorder{}
	answers := prompt.Answers{ModelName: "Product", IncludeGateway: true}

	out := new(bytes.Buffer)
	r, err := newGenerator(root, answers, rec, out).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[4/4] Installing dependencies in services/gateway")
	require.NotNil(t, r.Gateway)
	assert.False(t, r.Gateway.Skipped)
	assert.DirExists(t, filepath.Join(root, "services", "product"))
	assert.FileExists(t, filepath.Join(root, "services", "gateway", "src", "index.ts"))

	calls := rec.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, filepath.Join(root, "services", "product"), calls[0].Dir)
	assert.Equal(t, filepath.Join(root, "services", "gateway"), calls[1].Dir)
	assert.Contains(t, calls[1].Deps.Runtime, "http-proxy-middleware")

	// second run leaves the gateway alone and says so
	index := filepath.Join(root, "services", "gateway", "src", "index.ts")
	require.NoError(t, os.WriteFile(index, []byte("// mine\n"), 0o644))
	rec = &installer.Recorder{}
	out.Reset()
	r, err = newGenerator(root, answers, rec, out).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, r.Gateway.Skipped)
	assert.Contains(t, out.String(), "[3/3] Writing API gateway to services/gateway")
	assert.NotContains(t, out.String(), "/4]")
	assert.Contains(t, out.String(), "Gateway already exists")
	b, err := os.ReadFile(index)
	require.NoError(t, err)
	assert.Equal(t, "// mine\n", string(b))
	require.Len(t, rec.Calls(), 1)
	assert.Equal(t, filepath.Join(root, "services", "product"), rec.Calls()[0].Dir)
}

func TestRunOverwritesService(t *testing.T) {
	root := t.TempDir()
	answers := prompt.Answers{ModelName: "Product"}
	_, err := newGenerator(root, answers, nil, new(bytes.Buffer)).Run(context.Background())
	require.NoError(t, err)

	ctrl := filepath.Join(root, "services", "product", "src", "controllers", "Product.controller.ts")
	require.NoError(t, os.WriteFile(ctrl, []byte("changed"), 0o644))

	out := new(bytes.Buffer)
	r, err := newGenerator(root, answers, nil, out).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, r.Installs)
	assert.Contains(t, out.String(), "i Skipping dependency installation")
	assert.Contains(t, out.String(), "[1/1] Writing Product service")
	b, err := os.ReadFile(ctrl)
	require.NoError(t, err)
	assert.Contains(t, string(b), "export class ProductController")
}

func TestRunInstallFailureAborts(t *testing.T) {
	root := t.TempDir()
	rec := &installer.Recorder{Err: errors.New("npm: network unavailable")}
	answers := prompt.Answers{ModelName: "Product", IncludeGateway: true}

	_, err := newGenerator(root, answers, rec, new(bytes.Buffer)).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network unavailable")
	assert.Len(t, rec.Calls(), 1)
	assert.NoDirExists(t, filepath.Join(root, "services", "gateway"))
}

func TestRunPromptFailure(t *testing.T) {
	root := t.TempDir()
	g := newGenerator(root, prompt.Answers{}, nil, new(bytes.Buffer))
	g.Prompter = prompt.NewLine(strings.NewReader(""), new(bytes.Buffer))

	_, err := g.Run(context.Background())
	assert.ErrorIs(t, err, prompt.ErrNoInput)
	assert.NoDirExists(t, filepath.Join(root, "services"))
}

func TestRunRejectsPathModelName(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "root")
	rec := &installer.Recorder{}

	_, err := newGenerator(root, prompt.Answers{ModelName: "../../Outside"}, rec, new(bytes.Buffer)).Run(context.Background())
	assert.ErrorContains(t, err, "invalid model name")
	assert.Empty(t, rec.Calls())
	assert.NoDirExists(t, filepath.Join(parent, "outside"))
}

func TestGatewayNamedServiceCountsSteps(t *testing.T) {
	root := t.TempDir()
	out := new(bytes.Buffer)
	answers := prompt.Answers{ModelName: "Gateway", IncludeGateway: true}

	r, err := newGenerator(root, answers, &installer.Recorder{}, out).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, r.Gateway.Skipped)
	assert.Contains(t, out.String(), "[3/3] Writing API gateway")
}

func TestPrintError(t *testing.T) {
	out := new(bytes.Buffer)
	printError(out, errors.New("boom"))
	assert.Equal(t, "✘ error: boom\n", out.String())
}

func execute(t *testing.T, input string, args ...string) (string, *installer.Recorder, error) {
	t.Helper()
	rec := &installer.Recorder{}
	saved := newInstaller
	newInstaller = func(*settings.Settings, *ui.UI) installer.Installer { return rec }
	t.Cleanup(func() { newInstaller = saved })

	cmd := Command(context.Background(), Config{Use: "microservice-script", Version: "v0.0.0-test"})
	out := new(bytes.Buffer)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(cmd.Context())
	return out.String(), rec, err
}

func TestCommand(t *testing.T) {
	root := t.TempDir()
	out, rec, err := execute(t, "\nOrderItem\nn\n", "--dir", root)
	require.NoError(t, err)

	assert.Contains(t, out, "Model name is required")
	assert.Contains(t, out, "## Next steps")
	assert.FileExists(t, filepath.Join(root, "services", "order-item", ".env"))
	assert.Len(t, rec.Calls(), 1)
}

func TestCommandSkipInstall(t *testing.T) {
	root := t.TempDir()
	out, rec, err := execute(t, "Product\ny\n", "-C", root, "--skip-install")
	require.NoError(t, err)
	assert.Empty(t, rec.Calls())
	assert.DirExists(t, filepath.Join(root, "services", "gateway"))
	assert.Contains(t, out, "`npm init -y && npm install express mongoose dotenv && "+
		"npm install --save-dev typescript ts-node-dev @types/express @types/node`")
	assert.Contains(t, out, "npm install express http-proxy-middleware dotenv")
}

func TestCommandSkipInstallPackageManager(t *testing.T) {
	root := t.TempDir()
	body := "package_manager: pnpm\nservice:\n  dev: []\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, settings.FileName), []byte(body), 0o644))

	out, _, err := execute(t, "Product\n\n", "-C", root, "--skip-install")
	require.NoError(t, err)
	assert.Contains(t, out, "`pnpm init -y && pnpm install express mongoose dotenv`")
	assert.NotContains(t, out, "`npm init")
	assert.NotContains(t, out, "--save-dev")
}

func TestCommandSettingsFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, settings.FileName), []byte("service:\n  port: 4100\n"), 0o644))

	_, _, err := execute(t, "Product\n\n", "-C", root)
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(root, "services", "product", "Dockerfile"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "EXPOSE 4100")
}

func TestCommandBadSettings(t *testing.T) {
	root := t.TempDir()
	_, _, err := execute(t, "Product\n\n", "-C", root, "--config", filepath.Join(root, "missing.yaml"))
	assert.Error(t, err)
	assert.NoDirExists(t, filepath.Join(root, "services"))
}

func TestCommandRejectsArgs(t *testing.T) {
	_, _, err := execute(t, "", "Product")
	assert.Error(t, err)
}

func TestCommandVersion(t *testing.T) {
	out, _, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "v0.0.0-test")
}

// Package templates renders the files of a generated service or gateway.
//
// Every file is a pair of a path pattern and an embedded text/template.
// Rendering is a pure function of Data, so each file can be checked on its
// own without touching the filesystem.
package templates

import (
	"embed"
	"path"
	"slices"
	"strings"
	"text/template"

	"github.com/goaux/stacktrace/v2"

	"github.com/OniCoders/microservice-script-ts/naming"
	"github.com/OniCoders/microservice-script-ts/settings"
)

//go:embed common service gateway
var files embed.FS

// Data is what templates see.
type Data struct {
	naming.Variants
	Port   int
	Routes []settings.Route
}

// File is one generated file.
type File struct {
	Path     string // relative to the service root; may use Data fields
	Template string // embedded template path
}

var service = []File{
	{".env", "service/env.tmpl"},
	{"Dockerfile", "common/Dockerfile.tmpl"},
	{"tsconfig.json", "common/tsconfig.json.tmpl"},
	{"src/index.ts", "service/index.ts.tmpl"},
	{"src/types/{{.Lower}}.types.ts", "service/types.ts.tmpl"},
	{"src/models/{{.Pascal}}.model.ts", "service/model.ts.tmpl"},
	{"src/dtos/create-{{.Lower}}.dto.ts", "service/create.dto.ts.tmpl"},
	{"src/dtos/update-{{.Lower}}.dto.ts", "service/update.dto.ts.tmpl"},
	{"src/repositories/{{.Pascal}}.repository.ts", "service/repository.ts.tmpl"},
	{"src/services/{{.Pascal}}.service.ts", "service/service.ts.tmpl"},
	{"src/controllers/{{.Pascal}}.controller.ts", "service/controller.ts.tmpl"},
	{"src/routes/{{.Lower}}.routes.ts", "service/routes.ts.tmpl"},
	{"src/di/{{.Lower}}.di.ts", "service/di.ts.tmpl"},
}

var gateway = []File{
	{".env", "gateway/env.tmpl"},
	{"Dockerfile", "common/Dockerfile.tmpl"},
	{"tsconfig.json", "common/tsconfig.json.tmpl"},
	{"src/index.ts", "gateway/index.ts.tmpl"},
}

// Service lists the files of a CRUD service.
func Service() []File { return slices.Clone(service) }

// Gateway lists the files of the API gateway.
func Gateway() []File { return slices.Clone(gateway) }

// Render returns the relative path and the content of f for d.
func Render(f File, d Data) (string, string, error) {
	name, err := execute(f.Path, f.Path, d)
	if err != nil {
		return "", "", err
	}
	body, err := stacktrace.Trace2(files.ReadFile(f.Template))
	if err != nil {
		return "", "", err
	}
	content, err := execute(f.Template, string(body), d)
	if err != nil {
		return "", "", err
	}
	return path.Clean(name), content, nil
}

func execute(name, text string, d Data) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", stacktrace.Trace(err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, d); err != nil {
		return "", stacktrace.Trace(err)
	}
	return b.String(), nil
}

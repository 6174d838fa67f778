package scaffold

import (
	"fmt"
	"path"

	"github.com/OniCoders/microservice-script-ts/naming"
	"github.com/OniCoders/microservice-script-ts/settings"
	"github.com/OniCoders/microservice-script-ts/templates"
)

// ServicesDir holds every generated project.
const ServicesDir = "services"

// GatewayDir is the gateway project, relative to the root.
var GatewayDir = path.Join(ServicesDir, "gateway")

// CodeDirs are created under src/ of every service.
var CodeDirs = []string{
	"controllers",
	"services",
	"repositories",
	"routes",
	"models",
	"types",
	"di",
	"dtos",
}

// Result describes one generated project.
type Result struct {
	Dir     string   // relative to the root
	Files   []string // relative to Dir, in write order
	Skipped bool
}

// ServiceDir is the directory of the service for v, relative to the root.
func ServiceDir(v naming.Variants) string {
	return path.Join(ServicesDir, v.Kebab)
}

// Service writes the CRUD service for v. Existing files are overwritten.
func (w *Workspace) Service(v naming.Variants, port int) (Result, error) {
	res := Result{Dir: ServiceDir(v)}
	if err := w.EnsureDirectory(res.Dir); err != nil {
		return res, err
	}
	for _, d := range CodeDirs {
		if err := w.EnsureDirectory(path.Join(res.Dir, "src", d)); err != nil {
			return res, err
		}
	}
	files, err := w.write(res.Dir, templates.Service(), templates.Data{Variants: v, Port: port})
	res.Files = files
	return res, err
}

// Gateway writes the API gateway unless its directory already exists, in
// which case nothing is touched and the result is marked Skipped.
func (w *Workspace) Gateway(g settings.Gateway) (Result, error) {
	res := Result{Dir: GatewayDir}
	exists, err := w.Exists(res.Dir)
	if err != nil {
		return res, err
	}
	if exists {
		res.Skipped = true
		return res, nil
	}
	files, err := w.write(res.Dir, templates.Gateway(), templates.Data{Port: g.Port, Routes: g.Routes})
	res.Files = files
	return res, err
}

func (w *Workspace) write(dir string, files []templates.File, d templates.Data) ([]string, error) {
	var written []string
	for _, f := range files {
		rel, content, err := templates.Render(f, d)
		if err != nil {
			return written, fmt.Errorf("render %s: %w", f.Template, err)
		}
		if err := w.WriteFile(path.Join(dir, rel), content); err != nil {
			return written, err
		}
		written = append(written, rel)
	}
	return written, nil
}

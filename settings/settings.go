// Package settings holds the knobs of the generator that are not asked for
// interactively: package manager, ports and dependency lists.
//
// Defaults are embedded. A YAML file with the same shape may override any
// subset of them.
package settings

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/goaux/results"
	"github.com/goaux/stacktrace/v2"
	"gopkg.in/yaml.v3"
)

// FileName is the override file looked up in the output root.
const FileName = "scaffold.yaml"

//go:embed defaults.yaml
var defaults []byte

type Settings struct {
	PackageManager string  `yaml:"package_manager"`
	Service        Service `yaml:"service"`
	Gateway        Gateway `yaml:"gateway"`
}

type Service struct {
	Port    int      `yaml:"port"`
	Runtime []string `yaml:"runtime"`
	Dev     []string `yaml:"dev"`
}

type Gateway struct {
	Port    int      `yaml:"port"`
	Routes  []Route  `yaml:"routes"`
	Runtime []string `yaml:"runtime"`
	Dev     []string `yaml:"dev"`
}

// Route is one proxied path prefix of the gateway.
type Route struct {
	Path   string `yaml:"path"`
	Target string `yaml:"target"`
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Settings {
	s := new(Settings)
	results.Must(decode(bytes.NewReader(defaults), s))
	return s
}

// Load returns the defaults overlaid with the file at path.
// A missing file is not an error when optional is true.
func Load(path string, optional bool) (*Settings, error) {
	s := Default()
	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, stacktrace.Trace(err)
	}
	defer f.Close()
	if err := decode(f, s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func decode(r io.Reader, s *Settings) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return stacktrace.Trace(err)
	}
	return nil
}

func (s *Settings) Validate() error {
	if s.PackageManager == "" {
		return errors.New("package_manager must not be empty")
	}
	if !validPort(s.Service.Port) {
		return fmt.Errorf("service.port out of range: %d", s.Service.Port)
	}
	if !validPort(s.Gateway.Port) {
		return fmt.Errorf("gateway.port out of range: %d", s.Gateway.Port)
	}
	for i, r := range s.Gateway.Routes {
		if r.Path == "" || r.Target == "" {
			return fmt.Errorf("gateway.routes[%d]: path and target are required", i)
		}
	}
	return nil
}

func validPort(p int) bool { return p > 0 && p < 65536 }

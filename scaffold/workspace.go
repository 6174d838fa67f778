// Package scaffold writes generated projects below a single root directory.
//
// Overview:
//   - Responsibility: create the services/<name> and services/gateway trees
//   - Key Types: Workspace (root-anchored file operations), Result
//   - Error Semantics: every filesystem error is returned, nothing is retried
//
// Every path handed to a Workspace is relative to its root; nothing depends
// on the process working directory. Paths that would leave the root are
// rejected with ErrOutsideRoot.
package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goaux/stacktrace/v2"
	"github.com/sirupsen/logrus"
)

// Workspace performs file operations relative to a root directory.
type Workspace struct {
	root string
	log  logrus.FieldLogger
}

// New returns a Workspace rooted at root. A nil log discards debug output.
func New(root string, log logrus.FieldLogger) *Workspace {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Workspace{root: root, log: log}
}

// ErrOutsideRoot is returned for a path that is absolute or climbs above
// the root.
var ErrOutsideRoot = errors.New("path outside workspace root")

// Abs joins rel to the root.
func (w *Workspace) Abs(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

func (w *Workspace) resolve(rel string) (string, error) {
	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return "", stacktrace.Trace(fmt.Errorf("%q: %w", rel, ErrOutsideRoot))
	}
	return w.Abs(rel), nil
}

// EnsureDirectory creates rel and its parents.
//
// Parameters:
//   - rel: directory path relative to the root
//
// Returns:
//   - error: filesystem error if any
func (w *Workspace) EnsureDirectory(rel string) error {
	full, err := w.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(full, 0o755); err != nil {
		return stacktrace.Trace(err)
	}
	w.log.WithField("dir", rel).Debug("ensured directory")
	return nil
}

// WriteFile writes content to rel, creating parent directories and
// replacing any existing file.
//
// Parameters:
//   - rel: file path relative to the root
//   - content: file content
//
// Returns:
//   - error: filesystem error if any
func (w *Workspace) WriteFile(rel, content string) error {
	full, err := w.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return stacktrace.Trace(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return stacktrace.Trace(err)
	}
	w.log.WithField("path", rel).Debug("wrote file")
	return nil
}

// Exists reports whether rel exists.
func (w *Workspace) Exists(rel string) (bool, error) {
	full, err := w.resolve(rel)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, stacktrace.Trace(err)
}

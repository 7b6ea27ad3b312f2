// SPDX-License-Identifier: MPL-2.0

// Package targets discovers the buildable commands of a Go module and picks
// the one whose name is nearest to the module name.
package targets

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"

	"github.com/invowk/buildinfo/pkg/nearest"
)

const (
	// GoModFile is the module definition file read by Preferred.
	GoModFile = "go.mod"

	// commandPattern matches Go sources of main packages laid out as cmd/<name>.
	commandPattern = "cmd/*/*.go"
)

// ErrNoModule is returned when go.mod declares no module path.
var ErrNoModule = errors.New("go.mod has no module directive")

// ModuleName returns the last element of the module path declared in the
// given go.mod contents, without a major version suffix, so
// "github.com/acme/tool/v2" yields "tool".
func ModuleName(goMod []byte) (string, error) {
	modPath := modfile.ModulePath(goMod)
	if modPath == "" {
		return "", ErrNoModule
	}
	if prefix, _, ok := module.SplitPathVersion(modPath); ok && prefix != "" {
		modPath = prefix
	}
	return path.Base(modPath), nil
}

// Preferred reads root/go.mod from fsys and returns its ModuleName.
func Preferred(fsys afero.Fs, root string) (string, error) {
	data, err := afero.ReadFile(fsys, filepath.Join(root, GoModFile))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", GoModFile, err)
	}
	return ModuleName(data)
}

// Discover returns the sorted names of the cmd/* directories under root that
// hold at least one non-test Go file.
func Discover(fsys afero.Fs, root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}
	matches, err := doublestar.Glob(afero.NewIOFS(afero.NewBasePathFs(fsys, abs)), commandPattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", commandPattern, err)
	}

	var names []string
	for _, m := range matches {
		if strings.HasSuffix(m, "_test.go") {
			continue
		}
		names = append(names, path.Base(path.Dir(m)))
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// Pick returns the discovered target nearest to the module name. It wraps
// nearest.ErrNoCandidates when root has no commands.
func Pick(fsys afero.Fs, root string) (string, error) {
	preferred, err := Preferred(fsys, root)
	if err != nil {
		return "", err
	}
	candidates, err := Discover(fsys, root)
	if err != nil {
		return "", err
	}
	return nearest.Select(preferred, candidates)
}

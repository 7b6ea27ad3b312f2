// SPDX-License-Identifier: MPL-2.0

package version

import (
	"fmt"

	"github.com/spf13/afero"
)

// DirtyState records whether the working tree has local modifications to
// tracked files and, if so, the latest modification time among them.
// The zero value is a clean tree.
type DirtyState struct {
	modTime int64
	present bool
}

// Clean returns the state of an unmodified working tree.
func Clean() DirtyState { return DirtyState{} }

// DirtyAt returns a modified-tree state with the given latest modification
// time in Unix seconds. Times before the Unix epoch are clamped to 0.
func DirtyAt(unix int64) DirtyState {
	return DirtyState{modTime: max(unix, 0), present: true}
}

// Present reports whether the tree is modified.
func (d DirtyState) Present() bool { return d.present }

// ModTime returns the latest modification time in Unix seconds and whether the
// tree is modified at all.
func (d DirtyState) ModTime() (int64, bool) { return d.modTime, d.present }

// Fragment returns the version fragment "m<hex-mtime>", at least eight
// lowercase hex digits, or "" for a clean tree. Values wider than 32 bits are
// printed in full.
func (d DirtyState) Fragment() string {
	if !d.present {
		return ""
	}
	return fmt.Sprintf("m%08x", d.modTime)
}

// String implements fmt.Stringer.
func (d DirtyState) String() string {
	if !d.present {
		return "clean"
	}
	return d.Fragment()
}

// TagModified computes the DirtyState of a working tree from the paths of its
// locally modified tracked files, resolved against fsys. A path whose
// modification time cannot be read (typically a file deleted since the status
// snapshot) contributes nothing; it never aborts the computation. The tree is
// reported clean when no modification time could be read.
func TagModified(fsys afero.Fs, paths []string) DirtyState {
	var state DirtyState
	for _, p := range paths {
		info, err := fsys.Stat(p)
		if err != nil {
			continue
		}
		t := info.ModTime().Unix()
		if !state.present || t > state.modTime {
			state = DirtyAt(t)
		}
	}
	return state
}

package transfer

import (
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/mtth/igloo/pkg/cerr"
	"github.com/mtth/igloo/pkg/sfs"
)

// Materialize computes the destination path of one candidate and, when the
// hierarchy is preserved, makes sure every parent directory exists before
// any bytes are written. Flattened transfers land in the destination root
// under their base filename and create nothing.
func Materialize(fsys sfs.FS, rel string, preserve bool) (string, error) {
	if !preserve {
		return path.Base(rel), nil
	}
	dir := path.Dir(rel)
	if dir != "." {
		if mErr := makeDirs(fsys, dir); mErr != nil {
			return "", mErr
		}
	}
	return rel, nil
}

// makeDirs creates the directory chain component by component from the top,
// so a deeper failure never leaves a child without its parents. Recreating
// an existing directory is not an error, a file squatting on a component is.
func makeDirs(fsys sfs.FS, dir string) error {
	parts := strings.Split(dir, "/")
	for depth := range parts {
		part := path.Join(parts[:depth+1]...)
		fi, sErr := fsys.Stat(part)
		if sErr != nil {
			if !errors.Is(sErr, fs.ErrNotExist) {
				return sideError(fsys, sErr, "cannot probe directory %q", part)
			}
			if mkErr := fsys.Mkdir(part); mkErr != nil {
				return sideError(fsys, mkErr, "cannot create directory %q", part)
			}
			continue
		}
		if !fi.IsDir() {
			return cerr.New(cerr.HierarchyConflict, "%s file %q occupies a directory slot", sideName(fsys), part)
		}
	}
	return nil
}

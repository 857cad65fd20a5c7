package sfs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local implements the FS capability over a directory of the local
// filesystem, default the working directory.
type Local struct {
	root string
}

func NewLocal(root string) *Local {
	if root == "" {
		root = "."
	}
	return &Local{root: root}
}

// resolve converts a slash-relative path to an OS path under the root.
func (l *Local) resolve(path string) string {
	return filepath.Join(l.root, filepath.FromSlash(path))
}

func (l *Local) List(dir string) ([]os.FileInfo, error) {
	entries, rErr := os.ReadDir(l.resolve(dir))
	if rErr != nil {
		return nil, rErr
	}
	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, iErr := entry.Info()
		if iErr != nil {
			return nil, iErr
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (l *Local) Stat(path string) (os.FileInfo, error) {
	return os.Stat(l.resolve(path))
}

func (l *Local) Exists(path string) (bool, error) {
	_, sErr := os.Stat(l.resolve(path))
	if sErr != nil {
		if errors.Is(sErr, fs.ErrNotExist) {
			return false, nil
		}
		return false, sErr
	}
	return true, nil
}

func (l *Local) Mkdir(path string) error {
	return os.Mkdir(l.resolve(path), 0755)
}

func (l *Local) Open(path string) (io.ReadCloser, error) {
	return os.Open(l.resolve(path))
}

func (l *Local) Create(path string) (io.WriteCloser, error) {
	return os.Create(l.resolve(path))
}

func (l *Local) Remove(path string) error {
	return os.Remove(l.resolve(path))
}

func (l *Local) Remote() bool {
	return false
}

package sfs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/pkg/sftp"
)

// Remote implements the FS capability over an SFTP session, rooted at the
// target's base directory. SFTP paths are always slash-separated.
type Remote struct {
	cli  *sftp.Client
	base string
}

func NewRemote(cli *sftp.Client, base string) *Remote {
	if base == "" {
		base = "."
	}
	return &Remote{cli: cli, base: base}
}

func (r *Remote) resolve(p string) string {
	return path.Join(r.base, p)
}

func (r *Remote) List(dir string) ([]os.FileInfo, error) {
	return r.cli.ReadDir(r.resolve(dir))
}

func (r *Remote) Stat(p string) (os.FileInfo, error) {
	return r.cli.Stat(r.resolve(p))
}

func (r *Remote) Exists(p string) (bool, error) {
	_, sErr := r.cli.Stat(r.resolve(p))
	if sErr != nil {
		// pkg/sftp normalizes SSH_FX_NO_SUCH_FILE to os.ErrNotExist
		if errors.Is(sErr, fs.ErrNotExist) {
			return false, nil
		}
		return false, sErr
	}
	return true, nil
}

func (r *Remote) Mkdir(p string) error {
	return r.cli.Mkdir(r.resolve(p))
}

func (r *Remote) Open(p string) (io.ReadCloser, error) {
	return r.cli.Open(r.resolve(p))
}

func (r *Remote) Create(p string) (io.WriteCloser, error) {
	return r.cli.Create(r.resolve(p))
}

func (r *Remote) Remove(p string) error {
	return r.cli.Remove(r.resolve(p))
}

func (r *Remote) Remote() bool {
	return true
}

package transfer

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"time"

	"github.com/mtth/igloo/pkg/sfs"
	"github.com/mtth/igloo/pkg/slog"
)

// memInfo is a minimal os.FileInfo for the in-memory filesystem.
type memInfo struct {
	name string
	size int64
	dir  bool
}

func (i memInfo) Name() string { return i.name }
func (i memInfo) Size() int64  { return i.size }
func (i memInfo) Mode() os.FileMode {
	if i.dir {
		return os.ModeDir | 0755
	}
	return 0644
}
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return i.dir }
func (i memInfo) Sys() interface{}   { return nil }

// memFS implements the sfs.FS capability in memory, with injectable stat
// failures for probe error tests.
type memFS struct {
	files    map[string][]byte
	dirs     map[string]bool
	remote   bool
	statErrs map[string]error
	removed  []string
}

func newMemFS(remote bool) *memFS {
	return &memFS{
		files:    map[string][]byte{},
		dirs:     map[string]bool{".": true},
		remote:   remote,
		statErrs: map[string]error{},
	}
}

// addFile registers a file and its parent directories.
func (m *memFS) addFile(p string, content []byte) {
	m.files[p] = content
	for dir := path.Dir(p); dir != "."; dir = path.Dir(dir) {
		m.dirs[dir] = true
	}
}

func (m *memFS) List(dir string) ([]os.FileInfo, error) {
	if err := m.statErrs[dir]; err != nil {
		return nil, err
	}
	if !m.dirs[dir] {
		return nil, &fs.PathError{Op: "list", Path: dir, Err: fs.ErrNotExist}
	}
	var infos []os.FileInfo
	for p, content := range m.files {
		if path.Dir(p) == dir {
			infos = append(infos, memInfo{name: path.Base(p), size: int64(len(content))})
		}
	}
	for p := range m.dirs {
		if p != "." && path.Dir(p) == dir {
			infos = append(infos, memInfo{name: path.Base(p), dir: true})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	return infos, nil
}

func (m *memFS) Stat(p string) (os.FileInfo, error) {
	if err := m.statErrs[p]; err != nil {
		return nil, err
	}
	if m.dirs[p] {
		return memInfo{name: path.Base(p), dir: true}, nil
	}
	if content, ok := m.files[p]; ok {
		return memInfo{name: path.Base(p), size: int64(len(content))}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

func (m *memFS) Exists(p string) (bool, error) {
	_, sErr := m.Stat(p)
	if sErr != nil {
		if os.IsNotExist(sErr) {
			return false, nil
		}
		return false, sErr
	}
	return true, nil
}

func (m *memFS) Mkdir(p string) error {
	if m.dirs[p] {
		return &fs.PathError{Op: "mkdir", Path: p, Err: fs.ErrExist}
	}
	if _, ok := m.files[p]; ok {
		return &fs.PathError{Op: "mkdir", Path: p, Err: fs.ErrExist}
	}
	m.dirs[p] = true
	return nil
}

func (m *memFS) Open(p string) (io.ReadCloser, error) {
	content, ok := m.files[p]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

type memWriter struct {
	fs   *memFS
	path string
	buf  bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *memWriter) Close() error {
	w.fs.addFile(w.path, w.buf.Bytes())
	return nil
}

func (m *memFS) Create(p string) (io.WriteCloser, error) {
	return &memWriter{fs: m, path: p}, nil
}

func (m *memFS) Remove(p string) error {
	if _, ok := m.files[p]; !ok {
		return &fs.PathError{Op: "remove", Path: p, Err: fs.ErrNotExist}
	}
	delete(m.files, p)
	m.removed = append(m.removed, p)
	return nil
}

func (m *memFS) Remote() bool {
	return m.remote
}

var _ sfs.FS = (*memFS)(nil)

// quietLogger returns a logger that keeps test output clean.
func quietLogger() *slog.Logger {
	logger := slog.NewLogger("test")
	logger.SetOutput(io.Discard)
	return logger
}

// countingCloser records connection releases.
type countingCloser struct {
	closed int
}

func (c *countingCloser) Close() error {
	c.closed++
	return nil
}

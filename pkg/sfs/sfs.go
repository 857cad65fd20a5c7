// Package sfs abstracts the two filesystems a transfer touches behind one
// capability, so discovery and materialization are written once instead of
// per side. Paths are always relative, slash-separated and resolved against
// the filesystem root, regardless of the OS on either end.
package sfs

import (
	"io"
	"os"
)

// FS is the filesystem capability used by the transfer engine. The Local and
// Remote variants implement it over the working directory and the SFTP base
// directory respectively.
type FS interface {
	// List returns the immediate children of a directory.
	List(dir string) ([]os.FileInfo, error)

	// Stat probes a single path.
	Stat(path string) (os.FileInfo, error)

	// Exists distinguishes "absent" (false, nil) from "present" (true, nil)
	// from "unknown" (false, err). A permission failure is an error, never
	// an existence verdict.
	Exists(path string) (bool, error)

	// Mkdir creates a single directory component.
	Mkdir(path string) error

	Open(path string) (io.ReadCloser, error)
	Create(path string) (io.WriteCloser, error)
	Remove(path string) error

	// Remote reports which side of the transfer this filesystem is on.
	Remote() bool
}

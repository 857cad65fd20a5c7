package transfer

import (
	"fmt"
	"path"
	"regexp"

	"github.com/mtth/igloo/pkg/cerr"
	"github.com/mtth/igloo/pkg/sfs"
)

// DiscoverOptions controls candidate enumeration.
type DiscoverOptions struct {
	// Recursive walks the whole tree instead of listing immediate children.
	Recursive bool
	// CaseInsensitive relaxes the pattern matching.
	CaseInsensitive bool
	// Invert keeps the paths the pattern does not match.
	Invert bool
}

// Discover enumerates transfer candidates under the filesystem root.
// Directories are traversed but never returned. Paths are relative and
// slash-separated, with the same shape on both local and remote
// filesystems so one filter and one materializer serve both.
func Discover(fsys sfs.FS, expr string, opts DiscoverOptions) ([]string, error) {
	var re *regexp.Regexp
	if expr != "" {
		pattern := expr
		if opts.CaseInsensitive {
			pattern = "(?i)" + pattern
		}
		compiled, cErr := regexp.Compile(pattern)
		if cErr != nil {
			return nil, fmt.Errorf("invalid expression %q: %w", expr, cErr)
		}
		re = compiled
	}

	var candidates []string
	if opts.Recursive {
		walked, wErr := walk(fsys, ".")
		if wErr != nil {
			return nil, wErr
		}
		candidates = walked
	} else {
		infos, lErr := fsys.List(".")
		if lErr != nil {
			return nil, sideError(fsys, lErr, "cannot list directory")
		}
		for _, info := range infos {
			if !info.IsDir() {
				candidates = append(candidates, info.Name())
			}
		}
	}

	if re == nil {
		return candidates, nil
	}
	kept := candidates[:0]
	for _, candidate := range candidates {
		if re.MatchString(candidate) != opts.Invert {
			kept = append(kept, candidate)
		}
	}
	return kept, nil
}

// walk performs a depth-first traversal, one remote round trip per
// directory when the filesystem is remote.
func walk(fsys sfs.FS, dir string) ([]string, error) {
	infos, lErr := fsys.List(dir)
	if lErr != nil {
		return nil, sideError(fsys, lErr, "cannot list directory %q", dir)
	}
	var candidates []string
	for _, info := range infos {
		rel := path.Join(dir, info.Name())
		if info.IsDir() {
			sub, wErr := walk(fsys, rel)
			if wErr != nil {
				return nil, wErr
			}
			candidates = append(candidates, sub...)
		} else {
			candidates = append(candidates, rel)
		}
	}
	return candidates, nil
}

// sideError wraps a filesystem failure with the side it happened on, since
// local and remote problems are reported distinctly.
func sideError(fsys sfs.FS, err error, format string, args ...interface{}) error {
	kind := cerr.LocalError
	if fsys.Remote() {
		kind = cerr.RemoteError
	}
	return cerr.Wrap(kind, err, format, args...)
}

// sideName names the filesystem side for messages.
func sideName(fsys sfs.FS) string {
	if fsys.Remote() {
		return "remote"
	}
	return "local"
}

// Package target resolves locator strings of the form [user@]host[:dir]
// into a structured remote target. The grammar is deliberately simple, no
// percent decoding and no IPv6 brackets.
package target

import (
	"os/user"
	"strings"

	"github.com/mtth/igloo/pkg/cerr"
)

// Target identifies a remote principal, host and base directory. Immutable
// once resolved.
type Target struct {
	User string
	Host string
	Dir  string
}

// Parse splits a locator on the first "@" to separate the user (default:
// the invoking user) and on the first ":" to separate the host from the
// base directory (default "."). An empty host is an error.
func Parse(locator string) (Target, error) {
	var t Target
	rest := locator
	if i := strings.Index(rest, "@"); i >= 0 {
		t.User = rest[:i]
		rest = rest[i+1:]
	}
	t.Host = rest
	t.Dir = "."
	if i := strings.Index(rest, ":"); i >= 0 {
		t.Host = rest[:i]
		if dir := rest[i+1:]; dir != "" {
			t.Dir = dir
		}
	}
	if t.Host == "" {
		return Target{}, cerr.New(cerr.InvalidLocator, "invalid url %q, empty host", locator)
	}
	if t.User == "" {
		current, uErr := user.Current()
		if uErr != nil {
			return Target{}, cerr.Wrap(cerr.InvalidLocator, uErr, "invalid url %q, cannot resolve current user", locator)
		}
		t.User = current.Username
	}
	return t, nil
}

func (t Target) String() string {
	return t.User + "@" + t.Host + ":" + t.Dir
}

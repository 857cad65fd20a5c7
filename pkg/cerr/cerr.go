// Package cerr classifies client failures into stable kinds so the session
// can tell fatal connection problems from per-file ones, and the CLI can
// print consistent messages.
package cerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a specific failure condition. Kinds are string-based for
// debuggability.
type Kind string

const (
	// Connection-level failures, fatal to the whole run.

	// ConnectionFailed indicates the SSH connection could not be established.
	ConnectionFailed Kind = "CONNECTION_FAILED"

	// AuthenticationFailed indicates the server rejected every credential.
	AuthenticationFailed Kind = "AUTHENTICATION_FAILED"

	// HostKeysUnavailable indicates the known hosts file could not be read.
	HostKeysUnavailable Kind = "HOST_KEYS_UNAVAILABLE"

	// InvalidRemoteBase indicates the target directory is missing or not a directory.
	InvalidRemoteBase Kind = "INVALID_REMOTE_BASE"

	// Per-candidate failures, fail a single transfer only.

	// RemoteNotFound indicates a remote source file does not exist.
	RemoteNotFound Kind = "REMOTE_NOT_FOUND"

	// LocalNotFound indicates a local source file does not exist.
	LocalNotFound Kind = "LOCAL_NOT_FOUND"

	// DecodeError indicates received data could not be decoded to text.
	DecodeError Kind = "DECODE_ERROR"

	// OverwriteRefusedLocal indicates a download would clobber a local file.
	OverwriteRefusedLocal Kind = "OVERWRITE_REFUSED_LOCAL"

	// OverwriteRefusedRemote indicates an upload would clobber a remote file.
	OverwriteRefusedRemote Kind = "OVERWRITE_REFUSED_REMOTE"

	// HierarchyConflict indicates a file occupies a needed directory slot.
	HierarchyConflict Kind = "HIERARCHY_CONFLICT"

	// LocalError wraps any other local filesystem failure.
	LocalError Kind = "LOCAL_ERROR"

	// RemoteError wraps any other remote filesystem failure.
	RemoteError Kind = "REMOTE_ERROR"

	// Configuration failures.

	// ProfileNotFound indicates a named profile is absent from the store.
	ProfileNotFound Kind = "PROFILE_NOT_FOUND"

	// InvalidLocator indicates a locator string with an empty host.
	InvalidLocator Kind = "INVALID_LOCATOR"

	// ConfigLoadError indicates the profile file exists but cannot be parsed.
	ConfigLoadError Kind = "CONFIG_LOAD_ERROR"
)

// ClientError carries a Kind along a human readable message and the
// underlying cause, if any.
type ClientError struct {
	Kind Kind
	Err  error
	msg  string
}

func New(kind Kind, format string, args ...interface{}) *ClientError {
	return &ClientError{
		Kind: kind,
		msg:  fmt.Sprintf(format, args...),
	}
}

func Wrap(kind Kind, err error, format string, args ...interface{}) *ClientError {
	return &ClientError{
		Kind: kind,
		Err:  err,
		msg:  fmt.Sprintf(format, args...),
	}
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return e.msg + " - " + e.Err.Error()
	}
	return e.msg
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err or any error it wraps carries the given kind.
func IsKind(err error, kind Kind) bool {
	var cErr *ClientError
	if errors.As(err, &cErr) {
		return cErr.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first ClientError in the chain, or an empty
// kind if there is none.
func KindOf(err error) Kind {
	var cErr *ClientError
	if errors.As(err, &cErr) {
		return cErr.Kind
	}
	return ""
}

// Chain renders the full causal chain of an error, outermost first. Used by
// debug mode instead of the plain message.
func Chain(err error) string {
	var parts []string
	for err != nil {
		parts = append(parts, err.Error())
		err = errors.Unwrap(err)
	}
	return strings.Join(parts, "\n  caused by: ")
}

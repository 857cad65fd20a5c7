// Package transfer is the orchestration core: it resolves what to move,
// where each file lands, and moves the bytes with the requested overwrite,
// move and streaming semantics.
package transfer

// Direction selects which side is read and which is written.
type Direction int

const (
	// Upload reads the local filesystem and writes the remote one.
	Upload Direction = iota
	// Download is the reverse.
	Download
)

func (d Direction) String() string {
	if d == Download {
		return "download"
	}
	return "upload"
}

// Mode selects whole-file transfers or process stream binding.
type Mode int

const (
	// FileMode reads and writes whole files by path on both ends.
	FileMode Mode = iota
	// StreamMode binds stdin (upload) or stdout (download) as one endpoint.
	StreamMode
)

// Policy carries the per-run transfer options.
type Policy struct {
	// Overwrite allows transfers to replace existing destination files.
	Overwrite bool
	// PreserveHierarchy replicates the source directory structure instead
	// of flattening into the destination root.
	PreserveHierarchy bool
	// DeleteSource removes the origin copy after a successful transfer.
	DeleteSource bool
	// CaseInsensitive applies to pattern matching during discovery.
	CaseInsensitive bool
	// InvertMatch keeps the candidates the pattern does not match.
	InvertMatch bool
}

// Status is the terminal state of one candidate.
type Status int

const (
	Succeeded Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Skipped:
		return "skipped"
	}
	return "failed"
}

// Outcome records what happened to one candidate. Every candidate yields
// exactly one outcome, nothing is dropped silently.
type Outcome struct {
	// Path is the candidate's relative path.
	Path string
	// Status is the terminal state.
	Status Status
	// Dest is the destination path of a successful transfer, empty when the
	// sink is a stream.
	Dest string
	// Reason explains a skip.
	Reason string
	// Err is the failure cause.
	Err error
}

package transfer

import (
	"errors"
	"io"
	"io/fs"

	"github.com/mtth/igloo/pkg/cerr"
	"github.com/mtth/igloo/pkg/conf"
	"github.com/mtth/igloo/pkg/sfs"
	"github.com/mtth/igloo/pkg/sio"
	"github.com/mtth/igloo/pkg/slog"
)

// Executor moves bytes for one candidate in one direction. All transfers go
// through the same chunked copy, whole files get an optional progress
// side-channel, streams get none since their total size is unknown.
type Executor struct {
	Local  sfs.FS
	Remote sfs.FS
	Logger *slog.Logger

	// Progress, when set, receives (transferred, total) during FileMode
	// transfers. It must not block and never alters the transferred bytes.
	Progress sio.ProgressFunc

	// In is the source of streamed uploads, normally stdin.
	In io.Reader
	// Out is the sink of streamed downloads, normally a console writer
	// over stdout.
	Out io.WriteCloser
}

// ends returns the two filesystems in (source, destination) order.
func (e *Executor) ends(direction Direction) (sfs.FS, sfs.FS) {
	if direction == Upload {
		return e.Local, e.Remote
	}
	return e.Remote, e.Local
}

func failed(rel string, err error) Outcome {
	return Outcome{Path: rel, Status: Failed, Err: err}
}

// Transfer executes one whole-file transfer: destination check, chunked
// copy, then source removal when the policy moves instead of copies.
func (e *Executor) Transfer(rel string, direction Direction, policy Policy) Outcome {
	src, dst := e.ends(direction)

	dest, mErr := Materialize(dst, rel, policy.PreserveHierarchy)
	if mErr != nil {
		return failed(rel, mErr)
	}

	if !policy.Overwrite {
		exists, eErr := dst.Exists(dest)
		if eErr != nil {
			// An unknown probe result is a hard error, never "exists"
			return failed(rel, sideError(dst, eErr, "cannot probe %q", dest))
		}
		if exists {
			kind := cerr.OverwriteRefusedLocal
			if dst.Remote() {
				kind = cerr.OverwriteRefusedRemote
			}
			return failed(rel, cerr.New(kind, "%s file %q would be overwritten by transfer (use --force)", sideName(dst), dest))
		}
	}

	reader, oErr := src.Open(rel)
	if oErr != nil {
		if errors.Is(oErr, fs.ErrNotExist) {
			kind := cerr.LocalNotFound
			if src.Remote() {
				kind = cerr.RemoteNotFound
			}
			return failed(rel, cerr.Wrap(kind, oErr, "%s file %q not found", sideName(src), rel))
		}
		return failed(rel, sideError(src, oErr, "cannot open %q", rel))
	}
	defer func() { _ = reader.Close() }()

	total := int64(-1)
	if fi, sErr := src.Stat(rel); sErr == nil {
		total = fi.Size()
	}

	writer, cErr := dst.Create(dest)
	if cErr != nil {
		return failed(rel, sideError(dst, cErr, "cannot create %q", dest))
	}

	written, cpErr := e.copyChunks(reader, writer, total)
	if clErr := writer.Close(); cpErr == nil {
		cpErr = clErr
	}
	if cpErr != nil {
		return failed(rel, sideError(dst, cpErr, "transfer of %q interrupted after %d bytes", rel, written))
	}
	if e.Progress != nil && total >= 0 {
		// Guaranteed final call with transferred == total
		e.Progress(written, written)
	}

	if policy.DeleteSource {
		if rmErr := src.Remove(rel); rmErr != nil {
			// The transfer itself succeeded, keep the outcome but warn
			e.Logger.Warnf("Could not remove %s source %q - %v", sideName(src), rel, rmErr)
		}
	}

	return Outcome{Path: rel, Status: Succeeded, Dest: dest}
}

// Stream executes one streamed transfer, binding stdin or the console as
// one endpoint. No progress, no overwrite check on the streamed end.
func (e *Executor) Stream(rel string, direction Direction) Outcome {
	if direction == Upload {
		writer, cErr := e.Remote.Create(rel)
		if cErr != nil {
			return failed(rel, sideError(e.Remote, cErr, "cannot create %q", rel))
		}
		_, cpErr := io.CopyBuffer(writer, e.In, make([]byte, conf.TransferBufferSize))
		if clErr := writer.Close(); cpErr == nil {
			cpErr = clErr
		}
		if cpErr != nil {
			return failed(rel, sideError(e.Remote, cpErr, "stream upload of %q interrupted", rel))
		}
		return Outcome{Path: rel, Status: Succeeded}
	}

	reader, oErr := e.Remote.Open(rel)
	if oErr != nil {
		if errors.Is(oErr, fs.ErrNotExist) {
			return failed(rel, cerr.Wrap(cerr.RemoteNotFound, oErr, "remote file %q not found", rel))
		}
		return failed(rel, sideError(e.Remote, oErr, "cannot open %q", rel))
	}
	defer func() { _ = reader.Close() }()

	_, cpErr := io.CopyBuffer(e.Out, reader, make([]byte, conf.TransferBufferSize))
	if clErr := e.Out.Close(); cpErr == nil {
		cpErr = clErr
	}
	if cpErr != nil {
		if sio.IsDecodeError(cpErr) {
			return failed(rel, cerr.Wrap(cerr.DecodeError, cpErr, "unable to decode received data, try with --binary"))
		}
		return failed(rel, cerr.Wrap(cerr.LocalError, cpErr, "stream download of %q interrupted", rel))
	}
	// A stream sink has no destination path
	return Outcome{Path: rel, Status: Succeeded}
}

// copyChunks moves bytes in fixed-size chunks, read and write strictly
// alternated so a write stall back-pressures the read side. Progress is
// reported after every chunk when a total is known.
func (e *Executor) copyChunks(src io.Reader, dst io.Writer, total int64) (int64, error) {
	buffer := make([]byte, conf.TransferBufferSize)
	var written int64
	for {
		nr, rErr := src.Read(buffer)
		if nr > 0 {
			nw, wErr := dst.Write(buffer[:nr])
			if nw > 0 {
				written += int64(nw)
			}
			if wErr != nil {
				return written, wErr
			}
			if nw != nr {
				return written, io.ErrShortWrite
			}
			if e.Progress != nil && total >= 0 {
				e.Progress(written, total)
			}
		}
		if rErr != nil {
			if rErr != io.EOF {
				return written, rErr
			}
			break
		}
	}
	return written, nil
}

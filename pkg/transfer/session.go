package transfer

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/mtth/igloo/pkg/cerr"
	"github.com/mtth/igloo/pkg/sio"
	"github.com/mtth/igloo/pkg/slog"
)

// Params describes one invocation of the engine.
type Params struct {
	// Expr filters discovered candidates. When empty, Paths are used
	// verbatim and discovery is bypassed.
	Expr string
	// Paths are explicitly named candidates.
	Paths []string
	// Recursive extends discovery to the whole tree.
	Recursive bool
	// ListOnly prints the candidates and transfers nothing.
	ListOnly bool
	// Ask prompts for confirmation once per candidate, all up front.
	Ask bool

	Direction Direction
	Mode      Mode
	Policy    Policy
}

// Session sequences discovery, confirmation, materialization and execution
// across the candidate list under a single connection lifetime.
type Session struct {
	Executor *Executor
	Logger   *slog.Logger

	// Closer releases the connection. It is invoked exactly once on every
	// exit path, including fatal errors.
	Closer io.Closer

	// Prompter asks the per-candidate confirmations.
	Prompter *sio.Prompter

	// Echo receives one destination path per completed transfer.
	Echo io.Writer
	// Quiet suppresses the echo.
	Quiet bool
}

// Run executes the whole invocation and returns one outcome per candidate.
// A non-nil error is fatal to the run: no outcome was produced and the
// remaining candidates were not attempted.
func (s *Session) Run(params Params) ([]Outcome, error) {
	defer func() {
		if s.Closer != nil {
			_ = s.Closer.Close()
		}
	}()

	candidates, dErr := s.resolveCandidates(params)
	if dErr != nil {
		return nil, dErr
	}

	if params.ListOnly {
		for _, candidate := range candidates {
			_, _ = fmt.Fprintln(s.Echo, candidate)
		}
		return nil, nil
	}

	// All confirmations happen before any byte moves, so the operator is
	// never left mid-batch with a hanging prompt
	var outcomes []Outcome
	confirmed := candidates
	if params.Ask && s.Prompter != nil {
		confirmed = confirmed[:0]
		for _, candidate := range candidates {
			if s.Prompter.Confirm(fmt.Sprintf("Transfer %s?", candidate)) {
				confirmed = append(confirmed, candidate)
			} else {
				outcomes = append(outcomes, Outcome{Path: candidate, Status: Skipped, Reason: "declined"})
			}
		}
	}

	for _, candidate := range confirmed {
		var outcome Outcome
		if params.Mode == StreamMode {
			outcome = s.Executor.Stream(candidate, params.Direction)
		} else {
			outcome = s.Executor.Transfer(candidate, params.Direction, params.Policy)
		}
		outcomes = append(outcomes, outcome)
		s.report(outcome)
	}
	return outcomes, nil
}

// report surfaces one finished candidate immediately.
func (s *Session) report(outcome Outcome) {
	switch outcome.Status {
	case Succeeded:
		if !s.Quiet && outcome.Dest != "" {
			_, _ = fmt.Fprintln(s.Echo, outcome.Dest)
		}
	case Failed:
		if s.Logger.IsDebug() {
			s.Logger.Errorf("%s: %s", outcome.Path, cerr.Chain(outcome.Err))
		} else {
			s.Logger.Errorf("%s: %s", outcome.Path, outcome.Err)
		}
	}
}

// resolveCandidates produces the ordered candidate list, either by
// discovery against the source filesystem or from the explicit paths.
func (s *Session) resolveCandidates(params Params) ([]string, error) {
	fsys := s.Executor.Local
	if params.Direction == Download {
		fsys = s.Executor.Remote
	}

	if params.Expr != "" {
		return Discover(fsys, params.Expr, DiscoverOptions{
			Recursive:       params.Recursive,
			CaseInsensitive: params.Policy.CaseInsensitive,
			Invert:          params.Policy.InvertMatch,
		})
	}

	// Explicit filenames bypass discovery. Local directories are dropped;
	// remote names pass through untyped since a per-name stat round trip
	// is not worth it, a directory will fail its own transfer instead.
	candidates := make([]string, 0, len(params.Paths))
	for _, arg := range params.Paths {
		rel := filepath.ToSlash(arg)
		if params.Direction == Upload && params.Mode == FileMode {
			if fi, sErr := s.Executor.Local.Stat(rel); sErr == nil && fi.IsDir() {
				s.Logger.Debugf("Skipping directory %q", rel)
				continue
			}
		}
		candidates = append(candidates, rel)
	}
	return candidates, nil
}

package sio

import (
	"fmt"
	"io"

	"github.com/mtth/igloo/pkg/conf"
)

// ProgressFunc receives transfer progress. Calls are monotonically
// non-decreasing in transferred bytes, with a final call where transferred
// equals total.
type ProgressFunc func(transferred, total int64)

// NewProgress returns a ProgressFunc rendering an in-place percentage on the
// given writer, cleared once the transfer completes.
func NewProgress(w io.Writer) ProgressFunc {
	return func(transferred, total int64) {
		if total <= 0 {
			return
		}
		progress := int(conf.PercentageMultiplier * float64(transferred) / float64(total))
		if progress < 100 {
			_, _ = fmt.Fprintf(w, " %2d%%\r", progress)
		} else {
			_, _ = fmt.Fprintf(w, "      \r")
		}
	}
}

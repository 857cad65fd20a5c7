// Package sio covers the console side of a transfer run: decoding streamed
// bytes for text output, confirmation prompts and percentage progress.
package sio

import (
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewConsoleWriter wraps a destination stream for streamed downloads. In
// binary mode bytes pass through untouched. Otherwise they are decoded using
// the locale's preferred encoding, and invalid input surfaces as an error
// instead of being silently replaced.
func NewConsoleWriter(w io.Writer, binary bool) io.WriteCloser {
	if binary {
		return nopWriteCloser{w}
	}
	charset := localeCharset()
	if !isUTF8(charset) {
		if enc, eErr := ianaindex.IANA.Encoding(charset); eErr == nil && enc != nil {
			return transform.NewWriter(w, enc.NewDecoder())
		}
		// Unknown charset name, fall back to strict UTF-8
	}
	return transform.NewWriter(w, encoding.UTF8Validator)
}

// IsDecodeError reports whether an error from a console writer is a text
// decoding failure rather than an I/O one.
func IsDecodeError(err error) bool {
	return errors.Is(err, encoding.ErrInvalidUTF8) || errors.Is(err, transform.ErrShortSrc)
}

// localeCharset extracts the charset from the usual locale environment
// variables, e.g. "en_US.UTF-8" yields "UTF-8".
func localeCharset() string {
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		locale := os.Getenv(name)
		if locale == "" {
			continue
		}
		if i := strings.Index(locale, "."); i >= 0 {
			charset := locale[i+1:]
			if j := strings.Index(charset, "@"); j >= 0 {
				charset = charset[:j]
			}
			return charset
		}
	}
	return "UTF-8"
}

func isUTF8(charset string) bool {
	normalized := strings.ReplaceAll(strings.ToUpper(charset), "-", "")
	return normalized == "UTF8"
}

package wrappers

import (
	"errors"
	"io"
)

var ErrClosed = errors.New("closed")

// ReaderWrapper shields a reader from being closed for real. Closing the
// wrapper only stops further reads; the wrapped reader (usually stdin)
// stays open.
type ReaderWrapper struct {
	isClosed bool
	wrapped  io.Reader
}

func NewReaderWrapper(wraps io.Reader) *ReaderWrapper {
	return &ReaderWrapper{wrapped: wraps}
}

// Close implements repl.ReadCloser.
func (r *ReaderWrapper) Close() error {
	r.isClosed = true
	return nil
}

// Read implements repl.ReadCloser.
func (r *ReaderWrapper) Read(p []byte) (n int, err error) {
	if r.isClosed {
		return 0, ErrClosed
	}
	return r.wrapped.Read(p)
}

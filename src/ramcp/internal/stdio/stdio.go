// Package stdio exposes the process's standard streams as a single
// io.ReadWriteCloser suitable for a jsonrpc2 stream.
package stdio

import (
	"io"
	"os"
)

// ReadWriteCloser pairs a reader and a writer into one stream.
type ReadWriteCloser struct {
	reader io.ReadCloser
	writer io.WriteCloser
}

// New returns a stream reading from stdin and writing to stdout.
func New() *ReadWriteCloser {
	return &ReadWriteCloser{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewFrom returns a stream over the given reader and writer, for tests.
func NewFrom(r io.ReadCloser, w io.WriteCloser) *ReadWriteCloser {
	return &ReadWriteCloser{
		reader: r,
		writer: w,
	}
}

func (s *ReadWriteCloser) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

func (s *ReadWriteCloser) Write(p []byte) (int, error) {
	return s.writer.Write(p)
}

// Close closes both underlying streams.
func (s *ReadWriteCloser) Close() error {
	rErr := s.reader.Close()
	wErr := s.writer.Close()
	if rErr != nil {
		return rErr
	}
	return wErr
}

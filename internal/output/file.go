package output

import (
	"bufio"
	"fmt"
	"os"
)

// FileSink streams chunks straight to a buffered file.
type FileSink struct {
	path string
	f    *os.File
	w    *bufio.Writer
	done bool
}

// NewFileSink creates or truncates path. With noClobber set an existing
// path is an error instead.
func NewFileSink(path string, noClobber bool) (*FileSink, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if noClobber {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if noClobber && os.IsExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrOutputExists)
		}
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return &FileSink{path: path, f: f, w: bufio.NewWriter(f)}, nil
}

// Path returns the file being written.
func (s *FileSink) Path() string { return s.path }

func (s *FileSink) Consume(chunk []byte) error {
	if s.done {
		return ErrSinkClosed
	}
	if chunk == nil {
		return s.finish()
	}
	if _, err := s.w.Write(chunk); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileSink) finish() error {
	s.done = true
	flushErr := s.w.Flush()
	closeErr := s.f.Close()
	if flushErr != nil {
		return fmt.Errorf("flush %s: %w", s.path, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", s.path, closeErr)
	}
	return nil
}

// Abort releases the file without marking the stream complete. Bytes
// already flushed stay on disk.
func (s *FileSink) Abort() error {
	if s.done {
		return nil
	}
	s.done = true
	_ = s.w.Flush()
	return s.f.Close()
}

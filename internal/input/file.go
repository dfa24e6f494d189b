package input

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"
)

// FileReader reads a local text file in a fixed encoding.
type FileReader struct {
	enc encoding.Encoding
}

func (f *FileReader) Read(ctx context.Context, source string) (*Content, error) {
	if err := validateFile(source); err != nil {
		return nil, err
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", source, err)
	}
	defer file.Close()

	text, err := decodeAll(file, f.enc, source)
	if err != nil {
		return nil, err
	}
	return newContent(text, "", filepath.Base(source), SourceFile)
}

// StreamReader reads everything from an already open stream, normally
// stdin.
type StreamReader struct {
	r   io.Reader
	enc encoding.Encoding
}

func (s *StreamReader) Read(ctx context.Context, _ string) (*Content, error) {
	text, err := decodeAll(s.r, s.enc, "stdin")
	if err != nil {
		return nil, err
	}
	return newContent(text, "", "stdin", SourceStdin)
}

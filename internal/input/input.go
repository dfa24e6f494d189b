// Package input reads the text or SSML to be spoken from stdin, a local
// file, a PDF or a web page.
package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type SourceType string

const (
	SourceStdin SourceType = "stdin"
	SourceURL   SourceType = "url"
	SourcePDF   SourceType = "pdf"
	SourceFile  SourceType = "file"

	// maxInputSize is the maximum allowed size for input content (25 MB).
	maxInputSize = 25 * 1024 * 1024

	// DefaultEncoding applies to stdin and plain files.
	DefaultEncoding = "utf-8"
)

func (s SourceType) String() string {
	return string(s)
}

// ErrEmptyInput is returned when a source yields no text.
var ErrEmptyInput = errors.New("input is empty")

type Content struct {
	Text      string
	Title     string
	Source    string
	Type      SourceType
	WordCount int
}

// Reader extracts text from one kind of source.
type Reader interface {
	Read(ctx context.Context, source string) (*Content, error)
}

// Request names a source. Source "" or "-" reads Stdin.
type Request struct {
	Source   string
	Encoding string
	Stdin    io.Reader
}

func DetectSource(source string) SourceType {
	switch {
	case source == "" || source == "-":
		return SourceStdin
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return SourceURL
	case strings.HasSuffix(strings.ToLower(source), ".pdf"):
		return SourcePDF
	}
	return SourceFile
}

// NewReader picks the reader for req.Source. The encoding only applies to
// stdin and plain files; PDFs and web pages declare their own.
func NewReader(req Request) (Reader, error) {
	switch DetectSource(req.Source) {
	case SourceURL:
		return &URLReader{}, nil
	case SourcePDF:
		return &PDFReader{}, nil
	}

	enc, err := LookupEncoding(req.Encoding)
	if err != nil {
		return nil, err
	}
	if DetectSource(req.Source) == SourceStdin {
		stdin := req.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		return &StreamReader{r: stdin, enc: enc}, nil
	}
	return &FileReader{enc: enc}, nil
}

// Read is NewReader followed by Read.
func Read(ctx context.Context, req Request) (*Content, error) {
	r, err := NewReader(req)
	if err != nil {
		return nil, err
	}
	return r.Read(ctx, req.Source)
}

// LookupEncoding resolves a WHATWG encoding label such as "utf-8",
// "gbk" or "latin1". An empty label means UTF-8.
func LookupEncoding(label string) (encoding.Encoding, error) {
	if label == "" || strings.EqualFold(label, DefaultEncoding) || strings.EqualFold(label, "utf8") {
		return unicode.UTF8BOM, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	return enc, nil
}

// decodeAll reads at most maxInputSize bytes from r through enc. The limit
// applies to the encoded bytes, since decoding to UTF-8 can grow the text.
func decodeAll(r io.Reader, enc encoding.Encoding, name string) (string, error) {
	raw := &countingReader{r: io.LimitReader(r, maxInputSize+1)}
	data, err := io.ReadAll(transform.NewReader(raw, enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("could not decode %s: %w", name, err)
	}
	if raw.n > maxInputSize {
		return "", fmt.Errorf("%s is too large (max %d MB)", name, maxInputSize/(1024*1024))
	}
	return string(data), nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func newContent(text, title, source string, typ SourceType) (*Content, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyInput)
	}
	if title == "" {
		title = titleFromText(text, 80)
	}
	return &Content{
		Text:      text,
		Title:     title,
		Source:    source,
		Type:      typ,
		WordCount: wordCount(text),
	}, nil
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func titleFromText(text string, maxLen int) string {
	line := strings.TrimSpace(text)
	if idx := strings.IndexByte(line, '\n'); idx > 0 {
		line = strings.TrimSpace(line[:idx])
	}
	if r := []rune(line); len(r) > maxLen {
		line = string(r[:maxLen]) + "..."
	}
	if line == "" {
		return "Untitled"
	}
	return line
}

func validateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	if info.Size() > maxInputSize {
		return fmt.Errorf("%s is too large (%d MB, max %d MB)", path, info.Size()/(1024*1024), maxInputSize/(1024*1024))
	}
	return nil
}

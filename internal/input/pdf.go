package input

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFReader struct{}

func (p *PDFReader) Read(ctx context.Context, source string) (*Content, error) {
	if err := validateFile(source); err != nil {
		return nil, err
	}

	f, r, err := pdf.Open(source)
	if err != nil {
		return nil, fmt.Errorf("could not read PDF %s: %w", source, err)
	}
	defer f.Close()

	var sb strings.Builder
	numPages := r.NumPage()

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			slog.DebugContext(ctx, "Skipping unreadable PDF page", "page", i, "error", err)
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, fmt.Errorf("could not extract text from PDF %s, it may be scanned or image-based: %w", source, ErrEmptyInput)
	}
	return newContent(text, "", filepath.Base(source), SourcePDF)
}

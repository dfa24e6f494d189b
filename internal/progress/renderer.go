package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// StatusRenderer keeps a single status line updated on a TTY, or prints one
// timestamped line per stage change elsewhere.
type StatusRenderer struct {
	out       io.Writer
	start     time.Time
	isTTY     bool
	width     int
	lastEvent Event
	drawn     bool
}

// NewStatusRenderer creates a renderer that writes to out.
// It auto-detects TTY mode and terminal width.
func NewStatusRenderer(out *os.File) *StatusRenderer {
	tty := isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())

	width := 80
	if tty {
		if w, _, err := term.GetSize(out.Fd()); err == nil && w > 0 {
			width = w
		}
	}

	return newStatusRenderer(out, tty, width)
}

func newStatusRenderer(out io.Writer, tty bool, width int) *StatusRenderer {
	return &StatusRenderer{
		out:   out,
		start: time.Now(),
		isTTY: tty,
		width: width,
	}
}

// Handle processes a progress event. It satisfies the Callback type.
func (r *StatusRenderer) Handle(e Event) {
	e.Elapsed = time.Since(r.start)
	prev := r.lastEvent
	r.lastEvent = e

	if r.isTTY {
		r.renderTTY(e)
		return
	}
	// Byte-count updates within a stage are only interesting on a live line.
	if prev.Stage == e.Stage && prev.Message == e.Message {
		return
	}
	fmt.Fprintf(r.out, "[%s] %s\n", formatElapsed(e.Elapsed), e.Message)
}

// Finish clears the status line and prints a final summary.
func (r *StatusRenderer) Finish() {
	e := r.lastEvent
	if r.isTTY && r.drawn {
		fmt.Fprint(r.out, "\r\033[2K")
		r.drawn = false
	}

	if e.Error != nil {
		fmt.Fprintf(r.out, "  Error: %v\n", e.Error)
		return
	}
	if e.Stage != StageComplete {
		return
	}
	switch {
	case e.OutputFile != "" && e.Duration != "":
		fmt.Fprintf(r.out, "  Audio saved to %s (%s, %s)\n", e.OutputFile, e.Duration, FormatBytes(e.Bytes))
	case e.OutputFile != "":
		fmt.Fprintf(r.out, "  Audio saved to %s (%s)\n", e.OutputFile, FormatBytes(e.Bytes))
	default:
		fmt.Fprintf(r.out, "  %s (%s)\n", e.Message, formatElapsed(e.Elapsed))
	}
}

func (r *StatusRenderer) renderTTY(e Event) {
	line := fmt.Sprintf("  %s", e.Message)
	if e.Bytes > 0 {
		line += fmt.Sprintf("  %s", FormatBytes(e.Bytes))
	}
	line += fmt.Sprintf("  %s", formatElapsed(e.Elapsed))
	if len(line) > r.width-1 {
		line = line[:r.width-1]
	}
	fmt.Fprintf(r.out, "\r\033[2K%s", line)
	r.drawn = true
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %siB", float64(n)/float64(div), strings.Split("K M G T", " ")[exp])
}

// formatElapsed formats a duration as M:SS.
func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	mins := total / 60
	secs := total % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

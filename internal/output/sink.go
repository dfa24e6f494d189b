// Package output turns the audio stream produced by a synthesizer into a
// file on disk or sound on the default output device.
//
// Both destinations implement Sink. The synthesizer calls Consume once per
// chunk of encoded audio, in order, and then once with a nil chunk to mark
// the end of the stream. A failure part way through leaves whatever was
// already written or played; nothing is rolled back.
package output

import (
	"context"
	"errors"
	"fmt"

	"github.com/apresai/speak/internal/format"
)

// Sink consumes synthesized audio. A nil chunk marks the end of the stream;
// after it returns the sink holds no open resources.
type Sink interface {
	Consume(chunk []byte) error
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(chunk []byte) error

func (f SinkFunc) Consume(chunk []byte) error { return f(chunk) }

var (
	// ErrOutputExists is returned when NoClobber is set and the file exists.
	ErrOutputExists = errors.New("output file already exists")

	// ErrSinkClosed is returned when a chunk arrives after end of stream.
	ErrSinkClosed = errors.New("sink already received end of stream")
)

// Options selects and configures the destination.
type Options struct {
	// Path is the output file. Empty means play on the default device.
	Path string

	// Format is the resolved encoding of the bytes the sink will receive.
	Format format.AudioFormat

	// NoClobber refuses to replace an existing file. By default an
	// existing file is truncated without asking.
	NoClobber bool

	// Device overrides the playback device. Nil uses the system speaker.
	Device Device

	// Context interrupts playback when it is cancelled. Nil never does.
	Context context.Context
}

// New builds the sink for opts. The file variant creates the file
// immediately, so an unwritable path fails here rather than mid-stream.
func New(opts Options) (Sink, error) {
	if opts.Path != "" {
		return NewFileSink(opts.Path, opts.NoClobber)
	}
	if _, ok := opts.Format.Info(); !ok {
		return nil, fmt.Errorf("playback: unknown audio format %q", opts.Format)
	}
	dev := opts.Device
	if dev == nil {
		dev = SpeakerDevice{}
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return NewPlaybackSink(ctx, opts.Format, dev), nil
}

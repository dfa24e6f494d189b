package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"

	"github.com/apresai/speak/internal/format"
)

// ErrUnsupportedPlayback is wrapped by decode errors for formats that can be
// written to a file but not played locally.
var ErrUnsupportedPlayback = errors.New("format cannot be played locally, write it to a file with --output")

// PlaybackError reports a failure to open the output device ("open"), to
// decode the buffered audio ("decode") or an interrupted playback ("play").
type PlaybackError struct {
	Op     string
	Format format.AudioFormat
	Err    error
}

func (e *PlaybackError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("playback %s (%s): %v", e.Op, e.Format, e.Err)
	}
	return fmt.Sprintf("playback %s: %v", e.Op, e.Err)
}

func (e *PlaybackError) Unwrap() error { return e.Err }

// PlaybackSink collects the whole stream in memory and plays it when the
// stream ends. Decoders need a complete source, so nothing is played
// before end of stream.
type PlaybackSink struct {
	ctx    context.Context
	format format.AudioFormat
	device Device
	buf    bytes.Buffer
	done   bool
}

// NewPlaybackSink returns a sink that plays audio in format f on dev.
// Playback stops early when ctx is cancelled.
func NewPlaybackSink(ctx context.Context, f format.AudioFormat, dev Device) *PlaybackSink {
	return &PlaybackSink{ctx: ctx, format: f, device: dev}
}

// Buffered reports how many bytes are waiting to be played.
func (s *PlaybackSink) Buffered() int { return s.buf.Len() }

func (s *PlaybackSink) Consume(chunk []byte) error {
	if s.done {
		return ErrSinkClosed
	}
	if chunk != nil {
		s.buf.Write(chunk)
		return nil
	}
	s.done = true
	if s.buf.Len() == 0 {
		return nil
	}
	defer s.buf.Reset()
	return s.play()
}

func (s *PlaybackSink) play() error {
	slog.Info("Playing audio", "bytes", s.buf.Len(), "format", s.format)

	stream, bf, err := decode(s.format, s.buf.Bytes())
	if err != nil {
		return &PlaybackError{Op: "decode", Format: s.format, Err: err}
	}
	defer stream.Close()

	if err := s.device.Play(s.ctx, stream, bf); err != nil {
		var pe *PlaybackError
		if errors.As(err, &pe) {
			return err
		}
		return &PlaybackError{Op: "play", Format: s.format, Err: err}
	}
	if err := stream.Err(); err != nil {
		return &PlaybackError{Op: "decode", Format: s.format, Err: err}
	}
	return nil
}

func decode(f format.AudioFormat, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	info, ok := f.Info()
	if !ok {
		return nil, beep.Format{}, fmt.Errorf("unknown format %q", f)
	}

	switch {
	case info.Envelope == format.EnvelopeRIFF && info.Codec == format.CodecPCM:
		return wav.Decode(bytes.NewReader(data))
	case info.Envelope == format.EnvelopeMP3:
		return mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	case info.Envelope == format.EnvelopeRaw && info.Codec == format.CodecPCM && info.BitDepth == 16:
		return newPCMStream(data), beep.Format{
			SampleRate:  beep.SampleRate(info.SampleRate),
			NumChannels: 1,
			Precision:   2,
		}, nil
	}
	return nil, beep.Format{}, ErrUnsupportedPlayback
}

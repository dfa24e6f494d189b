package output

import (
	"context"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Device plays a decoded stream and returns once it has finished or ctx
// is done.
type Device interface {
	Play(ctx context.Context, s beep.Streamer, f beep.Format) error
}

// SpeakerDevice plays through the system's default output.
type SpeakerDevice struct{}

// Play opens the speaker at the stream's sample rate and blocks until the
// stream is exhausted. There is no timeout. Cancelling ctx stops the sound
// and returns ctx.Err().
func (SpeakerDevice) Play(ctx context.Context, s beep.Streamer, f beep.Format) error {
	if err := speaker.Init(f.SampleRate, f.SampleRate.N(time.Second/10)); err != nil {
		return &PlaybackError{Op: "open", Err: err}
	}
	defer speaker.Close()

	done := make(chan struct{})
	speaker.Play(beep.Seq(s, beep.Callback(func() {
		close(done)
	})))
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

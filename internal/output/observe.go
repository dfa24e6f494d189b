package output

import (
	"time"

	"github.com/apresai/speak/internal/progress"
)

// ObservedSink reports progress for the sink it wraps.
type ObservedSink struct {
	inner Sink
	cb    progress.Callback
	start time.Time
	total int64
}

// Observe wraps s so every chunk reports the running byte count to cb, and
// the end of stream announces playback when s is a PlaybackSink.
func Observe(s Sink, cb progress.Callback, start time.Time) *ObservedSink {
	return &ObservedSink{inner: s, cb: cb, start: start}
}

func (o *ObservedSink) Consume(chunk []byte) error {
	if chunk != nil {
		o.total += int64(len(chunk))
		e := progress.NewEvent(progress.StageSynthesize, "Synthesizing audio", o.start)
		e.Bytes = o.total
		o.cb(e)
		return o.inner.Consume(chunk)
	}

	if playsLocally(o.inner) && o.total > 0 {
		e := progress.NewEvent(progress.StagePlayback, "Playing audio", o.start)
		e.Bytes = o.total
		o.cb(e)
	}
	return o.inner.Consume(nil)
}

// Total is the number of audio bytes seen so far.
func (o *ObservedSink) Total() int64 { return o.total }

// Unwrap returns the wrapped sink.
func (o *ObservedSink) Unwrap() Sink { return o.inner }

// playsLocally looks through wrapping sinks for a PlaybackSink.
func playsLocally(s Sink) bool {
	for {
		switch v := s.(type) {
		case *PlaybackSink:
			return true
		case interface{ Unwrap() Sink }:
			s = v.Unwrap()
		default:
			return false
		}
	}
}

package progress

import "time"

// Stage identifies which step of a synthesis run is active.
type Stage string

const (
	StageInput      Stage = "input"
	StageConnect    Stage = "connect"
	StageSynthesize Stage = "synthesize"
	StagePlayback   Stage = "playback"
	StageComplete   Stage = "complete"
)

// Event carries progress information from the pipeline to the renderer.
type Event struct {
	Stage   Stage
	Message string
	// Bytes is the running total of audio bytes received.
	Bytes   int64
	Elapsed time.Duration
	Error   error
	// OutputFile is set on StageComplete when audio was written to disk.
	OutputFile string
	// Duration is the clip length string (e.g. "0:12"), set on StageComplete when known.
	Duration string
}

// Callback is the function signature for progress event handlers.
type Callback func(Event)

// NopCallback is a no-op progress callback for tests and silent mode.
func NopCallback(Event) {}

// NewEvent creates an Event with common fields populated.
func NewEvent(stage Stage, msg string, start time.Time) Event {
	return Event{
		Stage:   stage,
		Message: msg,
		Elapsed: time.Since(start),
	}
}

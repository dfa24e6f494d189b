package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apresai/speak/internal/format"
	"github.com/apresai/speak/internal/input"
	"github.com/apresai/speak/internal/output"
	"github.com/apresai/speak/internal/progress"
	"github.com/apresai/speak/internal/ssml"
	"github.com/apresai/speak/internal/synth"
)

// Mode says how the input is interpreted.
type Mode string

const (
	ModeText Mode = "text"
	ModeSSML Mode = "ssml"
)

// Stages reported in PipelineError.
const (
	StageInput      = "input"
	StageFormat     = "format"
	StageOutput     = "output"
	StageConnect    = "connect"
	StageSynthesize = "synthesize"
	StagePlayback   = "playback"
)

type Options struct {
	Mode Mode

	// Inline is the text or SSML given on the command line. When nil the
	// input is read from InputFile, or stdin when that is empty or "-".
	Inline    *string
	InputFile string
	Encoding  string
	Stdin     io.Reader

	// Output is the destination file; empty plays on the default device.
	Output    string
	Format    *format.AudioFormat
	Container *format.Container
	Quality   *int
	NoClobber bool

	// Text holds voice and prosody options for ModeText. Its Text field
	// is filled from the input.
	Text ssml.TextOptions

	Synth synth.Config

	Progress progress.Callback

	// Device and Connect replace the speaker and the synthesizer factory.
	Device  output.Device
	Connect func(ctx context.Context, cfg synth.Config) (synth.Synthesizer, error)
}

// Result summarizes a successful run.
type Result struct {
	Format     format.AudioFormat
	OutputFile string
	Bytes      int64
	Duration   time.Duration
	Elapsed    time.Duration
}

type PipelineError struct {
	Stage   string
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Stage, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run performs one synthesis: read the input, resolve the format, open the
// sink, connect, render SSML and stream audio into the sink. A failure
// after audio started flowing leaves the partial file in place.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	report := opts.Progress
	if report == nil {
		report = progress.NopCallback
	}
	fail := func(stage, msg string, err error) (*Result, error) {
		perr := &PipelineError{Stage: stage, Message: msg, Err: err}
		e := progress.NewEvent(progress.Stage(stage), msg, start)
		e.Error = perr
		report(e)
		return nil, perr
	}

	report(progress.NewEvent(progress.StageInput, "Reading input", start))
	text, err := readInput(ctx, opts)
	if err != nil {
		return fail(StageInput, "failed to read input", err)
	}

	f, err := format.Resolve(opts.Format, opts.Container, opts.Quality)
	if err != nil {
		return fail(StageFormat, "failed to resolve output format", err)
	}
	slog.DebugContext(ctx, "Resolved output format", "format", f)

	doc, cfg, err := document(opts, text, f)
	if err != nil {
		return fail(StageInput, "invalid text options", err)
	}

	sink, err := output.New(output.Options{
		Path:      opts.Output,
		Format:    f,
		NoClobber: opts.NoClobber,
		Device:    opts.Device,
		Context:   ctx,
	})
	if err != nil {
		return fail(StageOutput, "failed to open output", err)
	}
	var outputFile string
	if fs, ok := sink.(*output.FileSink); ok {
		outputFile = fs.Path()
		defer fs.Abort()
	}

	report(progress.NewEvent(progress.StageConnect, "Connecting to speech service", start))
	connect := opts.Connect
	if connect == nil {
		connect = synth.New
	}
	s, err := connect(ctx, cfg)
	if err != nil {
		return fail(StageConnect, "failed to connect", err)
	}
	defer s.Close()

	tracked := &trackedSink{inner: sink}
	observed := output.Observe(tracked, report, start)
	if err := s.Synthesize(ctx, doc, observed); err != nil {
		switch {
		case tracked.err == nil:
			return fail(StageSynthesize, "synthesis failed", err)
		case isPlayback(err):
			return fail(StagePlayback, "playback failed", err)
		default:
			return fail(StageOutput, "failed to write audio", err)
		}
	}

	res := &Result{
		Format:     f,
		OutputFile: outputFile,
		Bytes:      observed.Total(),
		Elapsed:    time.Since(start),
	}
	res.Duration, _ = estimateDuration(f, res.Bytes)

	done := progress.NewEvent(progress.StageComplete, "Done", start)
	done.Bytes = res.Bytes
	done.OutputFile = res.OutputFile
	if res.Duration > 0 {
		done.Duration = formatDuration(res.Duration)
	}
	report(done)
	slog.InfoContext(ctx, "Synthesis complete", "format", f, "bytes", res.Bytes, "output", res.OutputFile, "elapsed", res.Elapsed.Round(time.Millisecond))
	return res, nil
}

func readInput(ctx context.Context, opts Options) (string, error) {
	if opts.Inline != nil {
		if opts.InputFile != "" {
			return "", errors.New("only one input source can be given")
		}
		if *opts.Inline == "" {
			return "", input.ErrEmptyInput
		}
		return *opts.Inline, nil
	}
	c, err := input.Read(ctx, input.Request{Source: opts.InputFile, Encoding: opts.Encoding, Stdin: opts.Stdin})
	if err != nil {
		return "", err
	}
	slog.DebugContext(ctx, "Read input", "source", c.Source, "type", c.Type, "words", c.WordCount)
	return c.Text, nil
}

// document returns the SSML to send and the provider configuration with
// the resolved format, voice and locale filled in.
func document(opts Options, text string, f format.AudioFormat) (string, synth.Config, error) {
	cfg := opts.Synth
	cfg.Format = f

	if opts.Mode == ModeSSML {
		return text, cfg, nil
	}

	to := opts.Text
	to.Text = text
	if !synth.UsesAzureSSML(cfg.Provider) {
		if to.Style != "" || to.Role != "" || to.StyleDegree != nil {
			slog.Warn("Style and role are only supported by the azure provider; ignoring them", "provider", cfg.Provider)
		}
		cfg.Voice, cfg.Locale = to.Voice, to.Locale
		doc, err := ssml.Portable(to)
		return doc, cfg, err
	}

	doc, err := ssml.Interpolate(to)
	return doc, cfg, err
}

// trackedSink remembers the first error raised by the sink itself, so a
// failure can be attributed to the destination rather than the service.
type trackedSink struct {
	inner output.Sink
	err   error
}

func (t *trackedSink) Consume(chunk []byte) error {
	if err := t.inner.Consume(chunk); err != nil {
		if t.err == nil {
			t.err = err
		}
		return err
	}
	return nil
}

// Unwrap lets output.Observe see the real sink type.
func (t *trackedSink) Unwrap() output.Sink { return t.inner }

func isPlayback(err error) bool {
	var pe *output.PlaybackError
	return errors.As(err, &pe)
}

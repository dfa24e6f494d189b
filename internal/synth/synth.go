// Package synth sends SSML to a speech service and streams the returned
// audio into an output.Sink.
package synth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"

	"github.com/apresai/speak/internal/format"
	"github.com/apresai/speak/internal/output"
)

var tracer = otel.Tracer("github.com/apresai/speak/internal/synth")

// Synthesizer turns one SSML document into audio. Every chunk is handed to
// sink in arrival order, followed by a single nil chunk once the service
// signals the end of the turn.
type Synthesizer interface {
	Synthesize(ctx context.Context, ssml string, sink output.Sink) error
	Close() error
}

// Provider names accepted by New.
const (
	ProviderAzure  = "azure"
	ProviderGoogle = "google"
	ProviderPolly  = "polly"
)

// Providers lists the supported providers, default first.
var Providers = []string{ProviderAzure, ProviderGoogle, ProviderPolly}

var (
	// ErrUnsupportedFormat is returned when a provider has no encoding for
	// the requested output format.
	ErrUnsupportedFormat = errors.New("output format not supported by provider")

	// ErrEmptySSML is returned for a blank document.
	ErrEmptySSML = errors.New("ssml cannot be empty")
)

// SynthesisError is a failure reported by the speech service itself. It is
// surfaced unchanged to the caller.
type SynthesisError struct {
	Provider string
	Code     string
	Message  string
	Cause    error
}

func (e *SynthesisError) Error() string {
	msg := e.Provider + ": " + e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s (%s)", e.Provider, e.Message, e.Code)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SynthesisError) Unwrap() error { return e.Cause }

// Config carries everything needed to open a provider session.
type Config struct {
	Provider string
	Endpoint string
	Region   string
	Key      string
	Format   format.AudioFormat

	// Voice and Locale are used by providers that select the voice outside
	// the SSML document.
	Voice  string
	Locale string
}

// New opens a session with the configured provider. An empty provider
// means Azure.
func New(ctx context.Context, cfg Config) (Synthesizer, error) {
	var (
		s   Synthesizer
		err error
	)
	switch cfg.Provider {
	case "", ProviderAzure:
		s, err = Connect(ctx, AzureConfig{Endpoint: cfg.Endpoint, Format: cfg.Format, Key: cfg.Key})
	case ProviderGoogle:
		s, err = NewGoogle(ctx, cfg)
	case ProviderPolly:
		s, err = NewPolly(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q: choose one of %s", cfg.Provider, strings.Join(Providers, ", "))
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UsesAzureSSML reports whether provider understands the mstts extensions
// and per-document voice selection.
func UsesAzureSSML(provider string) bool {
	return provider == "" || provider == ProviderAzure
}

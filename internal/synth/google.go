package synth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	texttospeechpb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/apresai/speak/internal/format"
	"github.com/apresai/speak/internal/output"
)

const googleDefaultLocale = "en-US"

type googleClient interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// Google synthesizes through Google Cloud Text-to-Speech. The service
// returns the whole clip at once, so the sink sees a single chunk.
type Google struct {
	client   googleClient
	encoding texttospeechpb.AudioEncoding
	rate     int32
	voice    string
	locale   string
}

// NewGoogle creates a client using Application Default Credentials.
func NewGoogle(ctx context.Context, cfg Config) (*Google, error) {
	enc, err := googleEncoding(cfg.Format)
	if err != nil {
		return nil, err
	}
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create Google TTS client: %w", err)
	}
	return newGoogle(client, enc, cfg), nil
}

func newGoogle(client googleClient, enc texttospeechpb.AudioEncoding, cfg Config) *Google {
	info, _ := cfg.Format.Info()
	locale := cfg.Locale
	if locale == "" {
		locale = googleDefaultLocale
	}
	return &Google{
		client:   client,
		encoding: enc,
		rate:     int32(info.SampleRate),
		voice:    cfg.Voice,
		locale:   locale,
	}
}

// googleEncoding maps an output format onto the encodings Google can
// return. Google wraps LINEAR16, MULAW and ALAW in a WAV header.
func googleEncoding(f format.AudioFormat) (texttospeechpb.AudioEncoding, error) {
	info, ok := f.Info()
	if !ok {
		return 0, fmt.Errorf("google: unknown audio format %q", f)
	}
	switch {
	case info.Envelope == format.EnvelopeRIFF && info.Codec == format.CodecPCM && info.BitDepth == 16:
		return texttospeechpb.AudioEncoding_LINEAR16, nil
	case info.Envelope == format.EnvelopeRIFF && info.Codec == format.CodecMULaw:
		return texttospeechpb.AudioEncoding_MULAW, nil
	case info.Envelope == format.EnvelopeRIFF && info.Codec == format.CodecALaw:
		return texttospeechpb.AudioEncoding_ALAW, nil
	case info.Envelope == format.EnvelopeMP3:
		return texttospeechpb.AudioEncoding_MP3, nil
	case info.Envelope == format.EnvelopeOgg && info.Codec == format.CodecOpus:
		return texttospeechpb.AudioEncoding_OGG_OPUS, nil
	}
	return 0, fmt.Errorf("google: %s: %w", f, ErrUnsupportedFormat)
}

func (g *Google) Synthesize(ctx context.Context, ssml string, sink output.Sink) error {
	if strings.TrimSpace(ssml) == "" {
		return ErrEmptySSML
	}
	ctx, span := tracer.Start(ctx, "synth.Synthesize", trace.WithAttributes(
		attribute.String("speech.provider", ProviderGoogle),
		attribute.String("speech.encoding", g.encoding.String()),
	))
	defer span.End()

	start := time.Now()
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Ssml{Ssml: ssml},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.locale,
			Name:         g.voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   g.encoding,
			SampleRateHertz: g.rate,
		},
	}

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		span.RecordError(err)
		return &SynthesisError{Provider: ProviderGoogle, Message: "synthesize", Cause: err}
	}

	slog.DebugContext(ctx, "Google TTS response", "bytes", len(resp.AudioContent), "elapsed", time.Since(start).Round(time.Millisecond))
	if len(resp.AudioContent) > 0 {
		if err := sink.Consume(resp.AudioContent); err != nil {
			return err
		}
	}
	return sink.Consume(nil)
}

func (g *Google) Close() error { return g.client.Close() }

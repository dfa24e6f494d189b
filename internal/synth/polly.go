package synth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/apresai/speak/internal/awscfg"
	"github.com/apresai/speak/internal/format"
	"github.com/apresai/speak/internal/output"
)

const (
	pollyDefaultVoice = "Matthew"
	pollyReadSize     = 16 * 1024
)

type pollyAPI interface {
	SynthesizeSpeech(ctx context.Context, in *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// Polly synthesizes through AWS Polly's neural engine and streams the
// response body to the sink as it arrives.
type Polly struct {
	client pollyAPI
	output types.OutputFormat
	rate   string
	voice  string
	locale string
}

// NewPolly loads the default AWS configuration for cfg.Region.
func NewPolly(ctx context.Context, cfg Config) (*Polly, error) {
	of, rate, err := pollyFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	awsCfg, err := awscfg.Load(ctx, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("load AWS config for Polly: %w", err)
	}
	return newPolly(polly.NewFromConfig(awsCfg), of, rate, cfg), nil
}

func newPolly(client pollyAPI, of types.OutputFormat, rate int, cfg Config) *Polly {
	voice := cfg.Voice
	if voice == "" {
		voice = pollyDefaultVoice
	}
	return &Polly{
		client: client,
		output: of,
		rate:   strconv.Itoa(rate),
		voice:  voice,
		locale: cfg.Locale,
	}
}

// pollyFormat maps an output format onto Polly's mp3 and headerless pcm
// outputs, which only exist at a few sample rates.
func pollyFormat(f format.AudioFormat) (types.OutputFormat, int, error) {
	info, ok := f.Info()
	if !ok {
		return "", 0, fmt.Errorf("polly: unknown audio format %q", f)
	}
	switch {
	case info.Envelope == format.EnvelopeMP3 && (info.SampleRate == 16000 || info.SampleRate == 22050 || info.SampleRate == 24000):
		return types.OutputFormatMp3, info.SampleRate, nil
	case info.Envelope == format.EnvelopeRaw && info.Codec == format.CodecPCM && info.BitDepth == 16 &&
		(info.SampleRate == 8000 || info.SampleRate == 16000):
		return types.OutputFormatPcm, info.SampleRate, nil
	}
	return "", 0, fmt.Errorf("polly: %s: %w", f, ErrUnsupportedFormat)
}

func (p *Polly) Synthesize(ctx context.Context, ssml string, sink output.Sink) error {
	if strings.TrimSpace(ssml) == "" {
		return ErrEmptySSML
	}
	ctx, span := tracer.Start(ctx, "synth.Synthesize", trace.WithAttributes(
		attribute.String("speech.provider", ProviderPolly),
		attribute.String("speech.voice", p.voice),
	))
	defer span.End()

	in := &polly.SynthesizeSpeechInput{
		Engine:       types.EngineNeural,
		OutputFormat: p.output,
		SampleRate:   aws.String(p.rate),
		Text:         aws.String(ssml),
		TextType:     types.TextTypeSsml,
		VoiceId:      types.VoiceId(p.voice),
	}
	if p.locale != "" {
		in.LanguageCode = types.LanguageCode(p.locale)
	}

	resp, err := p.client.SynthesizeSpeech(ctx, in)
	if err != nil {
		span.RecordError(err)
		return &SynthesisError{Provider: ProviderPolly, Message: "synthesize", Cause: err}
	}
	defer resp.AudioStream.Close()

	buf := make([]byte, pollyReadSize)
	total := 0
	for {
		n, err := resp.AudioStream.Read(buf)
		if n > 0 {
			total += n
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if err := sink.Consume(chunk); err != nil {
				return err
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return &SynthesisError{Provider: ProviderPolly, Message: "read audio stream", Cause: err}
		}
	}
	slog.DebugContext(ctx, "Polly stream complete", "bytes", total)
	return sink.Consume(nil)
}

func (p *Polly) Close() error { return nil }

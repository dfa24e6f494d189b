package synth

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apresai/speak/internal/format"
)

type fakePolly struct {
	in   *polly.SynthesizeSpeechInput
	body io.Reader
	err  error
}

func (f *fakePolly) SynthesizeSpeech(_ context.Context, in *polly.SynthesizeSpeechInput, _ ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &polly.SynthesizeSpeechOutput{AudioStream: io.NopCloser(f.body)}, nil
}

func TestPollyFormat(t *testing.T) {
	of, rate, err := pollyFormat(format.Audio24Khz48KBitRateMonoMp3)
	require.NoError(t, err)
	assert.Equal(t, types.OutputFormatMp3, of)
	assert.Equal(t, 24000, rate)

	of, rate, err = pollyFormat(format.Raw16Khz16BitMonoPcm)
	require.NoError(t, err)
	assert.Equal(t, types.OutputFormatPcm, of)
	assert.Equal(t, 16000, rate)

	for _, f := range []format.AudioFormat{
		format.Audio48Khz192KBitRateMonoMp3,
		format.Raw24Khz16BitMonoPcm,
		format.Riff24Khz16BitMonoPcm,
		format.Ogg24Khz16BitMonoOpus,
	} {
		_, _, err := pollyFormat(f)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, f)
	}
}

func TestPolly_StreamsBody(t *testing.T) {
	body := strings.Repeat("x", 3*pollyReadSize+10)
	fake := &fakePolly{body: iotest.HalfReader(strings.NewReader(body))}
	p := newPolly(fake, types.OutputFormatMp3, 24000, Config{Locale: "en-GB"})

	sink := &recordSink{}
	require.NoError(t, p.Synthesize(context.Background(), "<speak>hi</speak>", sink))

	assert.Equal(t, body, string(sink.bytes()))
	assert.Greater(t, len(sink.chunks), 1)
	assert.Equal(t, 1, sink.ended)

	assert.Equal(t, types.VoiceId(pollyDefaultVoice), fake.in.VoiceId)
	assert.Equal(t, types.TextTypeSsml, fake.in.TextType)
	assert.Equal(t, "24000", aws.ToString(fake.in.SampleRate))
	assert.Equal(t, types.LanguageCode("en-GB"), fake.in.LanguageCode)
}

func TestPolly_ReadFailure(t *testing.T) {
	fake := &fakePolly{body: iotest.ErrReader(errors.New("connection reset"))}
	p := newPolly(fake, types.OutputFormatPcm, 16000, Config{Voice: "Joanna"})

	sink := &recordSink{}
	err := p.Synthesize(context.Background(), "<speak/>", sink)

	var se *SynthesisError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, err.Error(), "connection reset")
	assert.Zero(t, sink.ended)
}

func TestPolly_ServiceError(t *testing.T) {
	p := newPolly(&fakePolly{err: errors.New("throttled")}, types.OutputFormatMp3, 24000, Config{})
	err := p.Synthesize(context.Background(), "<speak/>", &recordSink{})
	var se *SynthesisError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, ProviderPolly, se.Provider)
}

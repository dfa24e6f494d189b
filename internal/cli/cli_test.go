package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apresai/speak/internal/config"
	"github.com/apresai/speak/internal/format"
	"github.com/apresai/speak/internal/output"
	"github.com/apresai/speak/internal/pipeline"
	"github.com/apresai/speak/internal/ssml"
	"github.com/apresai/speak/internal/storage"
	"github.com/apresai/speak/internal/synth"
	"github.com/apresai/speak/internal/voices"
)

func withSettings(t *testing.T, cfg config.Config) {
	t.Helper()
	prev := settings
	settings = cfg
	t.Cleanup(func() { settings = prev })
}

// newSpeakCommand registers the speech flags on a fresh command, which also
// resets the shared flag variables to their defaults.
func newSpeakCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addTextFlags(cmd)
	addInputFlags(cmd)
	addOutputFlags(cmd)
	cmd.Flags().StringVarP(&flagSSML, "ssml", "s", "", "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestBuildOptions_Defaults(t *testing.T) {
	withSettings(t, config.Default())
	opts, err := buildOptions(newSpeakCommand(t), pipeline.ModeText)
	require.NoError(t, err)

	assert.Nil(t, opts.Inline)
	assert.Nil(t, opts.Format)
	assert.Nil(t, opts.Quality)
	require.NotNil(t, opts.Container)
	assert.Equal(t, format.ContainerWAV, *opts.Container)
	assert.Equal(t, "en-US", opts.Text.Locale)
	assert.Empty(t, opts.Text.Voice)
	assert.Nil(t, opts.Text.StyleDegree)
	assert.Equal(t, "utf-8", opts.Encoding)
	assert.Equal(t, config.DefaultEndpoint, opts.Synth.Endpoint)
	assert.Equal(t, "azure", opts.Synth.Provider)
}

func TestBuildOptions_FlagsBeatConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Container = "ogg"
	q := 1
	cfg.Output.Quality = &q
	cfg.Output.NoClobber = true
	withSettings(t, cfg)

	opts, err := buildOptions(newSpeakCommand(t, "-c", "mp3", "-q", "-4", "-o", "out.mp3"), pipeline.ModeText)
	require.NoError(t, err)
	assert.Equal(t, format.ContainerMP3, *opts.Container)
	assert.Equal(t, -4, *opts.Quality)
	assert.Equal(t, "out.mp3", opts.Output)
	assert.True(t, opts.NoClobber)
}

func TestBuildOptions_ConfiguredFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Format = string(format.Ogg48Khz16BitMonoOpus)
	withSettings(t, cfg)

	opts, err := buildOptions(newSpeakCommand(t), pipeline.ModeText)
	require.NoError(t, err)
	require.NotNil(t, opts.Format)
	assert.Equal(t, format.Ogg48Khz16BitMonoOpus, *opts.Format)

	// A container on the command line replaces the configured format.
	opts, err = buildOptions(newSpeakCommand(t, "-c", "mp3"), pipeline.ModeText)
	require.NoError(t, err)
	assert.Nil(t, opts.Format)

	opts, err = buildOptions(newSpeakCommand(t, "-c", "mp3", "-F", "riff-8khz-16bit-mono-pcm"), pipeline.ModeText)
	require.NoError(t, err)
	assert.Equal(t, format.Riff8Khz16BitMonoPcm, *opts.Format)
}

func TestBuildOptions_InvalidValues(t *testing.T) {
	withSettings(t, config.Default())

	_, err := buildOptions(newSpeakCommand(t, "-c", "flac"), pipeline.ModeText)
	assert.ErrorContains(t, err, "flac")

	_, err = buildOptions(newSpeakCommand(t, "-F", "nope"), pipeline.ModeText)
	assert.Error(t, err)

	_, err = buildOptions(newSpeakCommand(t, "--publish"), pipeline.ModeText)
	assert.ErrorContains(t, err, "--publish")
}

func TestBuildOptions_Inline(t *testing.T) {
	withSettings(t, config.Default())

	opts, err := buildOptions(newSpeakCommand(t, "-t", ""), pipeline.ModeText)
	require.NoError(t, err)
	require.NotNil(t, opts.Inline)
	assert.Empty(t, *opts.Inline)

	opts, err = buildOptions(newSpeakCommand(t, "-s", "<speak/>", "-t", "ignored"), pipeline.ModeSSML)
	require.NoError(t, err)
	assert.Equal(t, "<speak/>", *opts.Inline)
	assert.Empty(t, opts.Text.Text)
}

func TestTextOptions_VoiceAndLocale(t *testing.T) {
	cfg := config.Default()
	cfg.Text.Voice = "en-GB-SoniaNeural"
	withSettings(t, cfg)

	to := textOptions(newSpeakCommand(t))
	assert.Equal(t, "en-GB-SoniaNeural", to.Voice)
	assert.Empty(t, to.Locale, "locale comes from the voice name")

	to = textOptions(newSpeakCommand(t, "-l", "fr-FR"))
	assert.Equal(t, "fr-FR", to.Locale)
	assert.Empty(t, to.Voice, "a locale flag drops the configured voice")

	to = textOptions(newSpeakCommand(t, "-v", "de-DE-KatjaNeural", "-l", "de-CH"))
	assert.Equal(t, "de-DE-KatjaNeural", to.Voice)
	assert.Equal(t, "de-CH", to.Locale)

	to = textOptions(newSpeakCommand(t, "-d", "1.5", "-S", "cheerful", "-r", "fast"))
	require.NotNil(t, to.StyleDegree)
	assert.InDelta(t, 1.5, *to.StyleDegree, 1e-9)
	assert.Equal(t, "cheerful", to.Style)
	assert.Equal(t, "fast", to.Rate)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: file.example.com\nprovider: polly\nregion: eu-west-1\n"), 0o600))

	t.Setenv("SPEAK_REGION", "us-west-2")
	t.Setenv("SPEAK_ENDPOINT", "env.example.com")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addGlobalFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path, "--endpoint", "flag.example.com"}))

	cfg, err := loadConfig(fs)
	require.NoError(t, err)
	assert.Equal(t, "flag.example.com", cfg.Endpoint)
	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Equal(t, "polly", cfg.Provider)
}

func TestLoadConfig_RejectsBadProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: azure\n"), 0o600))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addGlobalFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path, "--provider", "espeak"}))

	_, err := loadConfig(fs)
	assert.ErrorContains(t, err, "espeak")
}

func TestPrintQualities(t *testing.T) {
	var buf bytes.Buffer
	printQualities(&buf)
	out := buf.String()

	for _, c := range format.Containers {
		assert.Contains(t, out, "Qualities for "+c.String())
	}
	assert.Contains(t, out, "audio-48khz-192kbitrate-mono-mp3")
	assert.Contains(t, out, "webm-24khz-16bit-24kbps-mono-opus")
	assert.Equal(t, len(format.Containers), strings.Count(out, "(default)"))
}

func TestPrintFormats(t *testing.T) {
	var buf bytes.Buffer
	printFormats(&buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, len(format.AllFormats()))
	assert.Contains(t, lines, "riff-24khz-16bit-mono-pcm")
}

func TestPrintLocales(t *testing.T) {
	var buf bytes.Buffer
	printLocales(&buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, len(ssml.Locales()))

	voice, ok := ssml.DefaultVoice("en-US")
	require.True(t, ok)
	assert.Contains(t, buf.String(), voice)
}

func TestPrintVoices(t *testing.T) {
	var buf bytes.Buffer
	printVoices(&buf, nil)
	assert.Equal(t, "No matching voices.\n", buf.String())

	buf.Reset()
	printVoices(&buf, []voices.Voice{{Name: "Microsoft Server Speech Text to Speech Voice (en-US, JennyNeural)", ShortName: "en-US-JennyNeural", Locale: "en-US"}})
	assert.Contains(t, buf.String(), "ID: en-US-JennyNeural")
	assert.Contains(t, buf.String(), "1 voices")
}

// scriptedSynth streams fixed audio into the sink.
type scriptedSynth struct {
	doc  string
	data []byte
}

func (s *scriptedSynth) Synthesize(_ context.Context, doc string, sink output.Sink) error {
	s.doc = doc
	if err := sink.Consume(s.data); err != nil {
		return err
	}
	return sink.Consume(nil)
}

func (s *scriptedSynth) Close() error { return nil }

type fakePutObject struct {
	inputs []*s3.PutObjectInput
}

func (f *fakePutObject) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.inputs = append(f.inputs, in)
	return &s3.PutObjectOutput{}, nil
}

func TestExecute_SSMLToFileAndPublish(t *testing.T) {
	withSettings(t, config.Default())
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("publish:\n  bucket: speak-audio\n  base_url: https://cdn.example.com\n"), 0o600))
	outPath := filepath.Join(dir, "hello.mp3")

	fake := &scriptedSynth{data: []byte("ID3 not really mp3")}
	var gotCfg synth.Config
	connectSynth = func(_ context.Context, cfg synth.Config) (synth.Synthesizer, error) {
		gotCfg = cfg
		return fake, nil
	}
	s3fake := &fakePutObject{}
	prevStorage := newStorage
	newStorage = func(_ context.Context, _, bucket, baseURL string) (*storage.Storage, error) {
		return storage.New(s3fake, bucket, baseURL), nil
	}
	t.Cleanup(func() {
		connectSynth = nil
		newStorage = prevStorage
	})

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{
		"ssml", "--config", cfgPath, "--verbose",
		"-s", "<speak>hi</speak>", "-c", "mp3", "-q", "1", "-o", outPath, "--publish",
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.Equal(t, "<speak>hi</speak>", fake.doc)
	assert.Equal(t, format.Audio24Khz160KBitRateMonoMp3, gotCfg.Format)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, fake.data, data)

	require.Len(t, s3fake.inputs, 1)
	assert.Equal(t, "speak-audio", *s3fake.inputs[0].Bucket)
	assert.Equal(t, "hello.mp3", *s3fake.inputs[0].Key)
	assert.Equal(t, "audio/mpeg", *s3fake.inputs[0].ContentType)
	assert.Contains(t, stdout.String(), "Published: https://cdn.example.com/hello.mp3")
}

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
endpoint: westeurope.tts.speech.microsoft.com
provider: azure
output:
  container: mp3
  quality: -2
  no_clobber: true
text:
  locale: de-DE
publish:
  bucket: my-audio
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "westeurope.tts.speech.microsoft.com", cfg.Endpoint)
	assert.Equal(t, "mp3", cfg.Output.Container)
	require.NotNil(t, cfg.Output.Quality)
	assert.Equal(t, -2, *cfg.Output.Quality)
	assert.True(t, cfg.Output.NoClobber)
	assert.Equal(t, "de-DE", cfg.Text.Locale)
	assert.Equal(t, "my-audio", cfg.Publish.Bucket)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep defaults")
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeConfig(t, "endpoint: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "endpoint: from-file.example.com\nprovider: azure\n")
	t.Setenv("SPEAK_ENDPOINT", "from-env.example.com")
	t.Setenv("SPEAK_KEY", "k3y")
	t.Setenv("SPEAK_PROVIDER", "polly")
	t.Setenv("SPEAK_REGION", "us-west-2")
	t.Setenv("SPEAK_QUALITY", "1")
	t.Setenv("SPEAK_NO_CLOBBER", "true")
	t.Setenv("SPEAK_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.example.com", cfg.Endpoint)
	assert.Equal(t, "k3y", cfg.Key)
	assert.Equal(t, "polly", cfg.Provider)
	assert.Equal(t, "us-west-2", cfg.Region)
	require.NotNil(t, cfg.Output.Quality)
	assert.Equal(t, 1, *cfg.Output.Quality)
	assert.True(t, cfg.Output.NoClobber)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestBlankEnvIgnored(t *testing.T) {
	t.Setenv("SPEAK_ENDPOINT", "   ")
	cfg, err := Load(writeConfig(t, "endpoint: kept.example.com\n"))
	require.NoError(t, err)
	assert.Equal(t, "kept.example.com", cfg.Endpoint)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"provider", func(c *Config) { c.Provider = "espeak" }, "provider must be one of"},
		{"endpoint", func(c *Config) { c.Endpoint = "" }, "endpoint must not be empty"},
		{"container", func(c *Config) { c.Output.Container = "flac" }, "output.container"},
		{"format", func(c *Config) { c.Output.Format = "riff-1khz" }, "output.format"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	cfg := Default()
	cfg.Provider = "google"
	cfg.Endpoint = ""
	assert.NoError(t, cfg.Validate(), "endpoint only matters for azure")
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteTemplate(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	err = WriteTemplate(path, false)
	assert.ErrorIs(t, err, ErrConfigExists)
	assert.NoError(t, WriteTemplate(path, true))
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.Key = "plain-secret"
	assert.Equal(t, "********", cfg.Redacted().Key)
	assert.Equal(t, "plain-secret", cfg.Key)

	cfg.Key = "secretsmanager:speak/key"
	assert.Equal(t, "secretsmanager:speak/key", cfg.Redacted().Key)
}

type fakeSecrets struct {
	id    string
	value *string
	err   error
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.id = aws.ToString(in.SecretId)
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.value}, nil
}

func TestResolveKey(t *testing.T) {
	ctx := context.Background()

	key, err := ResolveKey(ctx, "plain", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain", key)

	fake := &fakeSecrets{value: aws.String("resolved\n")}
	key, err = ResolveKey(ctx, "secretsmanager:speak/azure-key", "", fake)
	require.NoError(t, err)
	assert.Equal(t, "resolved", key)
	assert.Equal(t, "speak/azure-key", fake.id)

	_, err = ResolveKey(ctx, "secretsmanager:", "", fake)
	assert.ErrorContains(t, err, "empty secret id")

	_, err = ResolveKey(ctx, "secretsmanager:x", "", &fakeSecrets{err: errors.New("not found")})
	assert.ErrorContains(t, err, "not found")

	_, err = ResolveKey(ctx, "secretsmanager:x", "", &fakeSecrets{})
	assert.ErrorContains(t, err, "no string value")
}

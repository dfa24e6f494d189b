// Package storage publishes synthesized audio to S3.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/apresai/speak/internal/format"
)

// PutObjectAPI is the subset of the S3 client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Storage uploads audio files to one bucket.
type Storage struct {
	client  PutObjectAPI
	bucket  string
	baseURL string // e.g. "https://cdn.example.com"; empty means s3:// URLs
}

// New creates an S3 storage handler.
func New(client PutObjectAPI, bucket, baseURL string) *Storage {
	return &Storage{client: client, bucket: bucket, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// NewFromConfig builds the S3 client from cfg.
func NewFromConfig(cfg aws.Config, bucket, baseURL string) *Storage {
	return New(s3.NewFromConfig(cfg), bucket, baseURL)
}

// Upload sends the file at path to key and returns its public URL. An
// empty key uses the file's base name. The content type is taken from the
// audio format the file was written in, or guessed from its extension.
func (s *Storage) Upload(ctx context.Context, path, key string, f format.AudioFormat) (string, error) {
	if key == "" {
		key = filepath.Base(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat audio: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	contentType := contentTypeFor(path, f)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(info.Size()),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}

	slog.InfoContext(ctx, "Uploaded audio", "bucket", s.bucket, "key", key, "bytes", info.Size(), "content_type", contentType)
	return s.URL(key), nil
}

// URL is where key can be fetched after upload.
func (s *Storage) URL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return "s3://" + s.bucket + "/" + key
}

func contentTypeFor(path string, f format.AudioFormat) string {
	if f != "" {
		return f.MIMEType()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".ogg":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	}
	return "application/octet-stream"
}

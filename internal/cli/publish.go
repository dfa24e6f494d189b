package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apresai/speak/internal/awscfg"
	"github.com/apresai/speak/internal/format"
	"github.com/apresai/speak/internal/progress"
	"github.com/apresai/speak/internal/storage"
)

var (
	flagPublishBucket  string
	flagPublishKey     string
	flagPublishBaseURL string
)

var publishCmd = &cobra.Command{
	Use:   "publish <audio-file>",
	Short: "Upload an audio file to S3",
	Long:  "Upload a synthesized audio file to an S3 bucket and print the URL it can be fetched from. The bucket and base URL default to the publish section of the config file.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPublish,
}

// newStorage builds the uploader for bucket; replaced in tests.
var newStorage = func(ctx context.Context, region, bucket, baseURL string) (*storage.Storage, error) {
	cfg, err := awscfg.Load(ctx, region)
	if err != nil {
		return nil, err
	}
	return storage.NewFromConfig(cfg, bucket, baseURL), nil
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().StringVar(&flagPublishBucket, "bucket", "", "S3 bucket (overrides publish.bucket)")
	publishCmd.Flags().StringVar(&flagPublishKey, "object-key", "", "Object key (default: the file name)")
	publishCmd.Flags().StringVar(&flagPublishBaseURL, "base-url", "", "Public URL prefix for the bucket (overrides publish.base_url)")
}

func runPublish(cmd *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "File: %s (%s)\n", path, progress.FormatBytes(info.Size()))

	bucket := settings.Publish.Bucket
	if cmd.Flags().Changed("bucket") {
		bucket = flagPublishBucket
	}
	baseURL := settings.Publish.BaseURL
	if cmd.Flags().Changed("base-url") {
		baseURL = flagPublishBaseURL
	}

	url, err := publishAudio(cmd.Context(), bucket, baseURL, path, flagPublishKey, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Published: %s\n", url)
	return nil
}

// publishAudio uploads path and returns its URL. An empty format lets the
// content type follow the file extension.
func publishAudio(ctx context.Context, bucket, baseURL, path, key string, f format.AudioFormat) (string, error) {
	if bucket == "" {
		return "", errors.New("no bucket configured: pass --bucket, set SPEAK_BUCKET, or set publish.bucket in the config file")
	}
	st, err := newStorage(ctx, settings.Region, bucket, baseURL)
	if err != nil {
		return "", err
	}
	return st.Upload(ctx, path, key, f)
}

package cmd

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/bartfrenk/remote-store/internal/observability"
	"github.com/bartfrenk/remote-store/pkg/creds"
	"github.com/bartfrenk/remote-store/pkg/provider"
	"github.com/bartfrenk/remote-store/pkg/provider/s3"
	"github.com/bartfrenk/remote-store/pkg/store"
)

var noProgress bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Suppress progress markers on stderr")
}

// buildStore assembles a store handle from the loaded configuration.
// The transport is built lazily on first use, assuming the configured role
// first when one is set.
func buildStore() (*store.Store, error) {
	bucket, err := requireBucket()
	if err != nil {
		return nil, err
	}

	var sink io.Writer = os.Stderr
	if noProgress {
		sink = io.Discard
	}

	return store.New(store.Config{
		Bucket:      bucket,
		CacheDir:    cfg.CacheDir,
		PageSize:    cfg.PageSize,
		RateLimit:   cfg.RateLimit,
		Sink:        sink,
		NewProvider: newS3Provider(bucket),
	})
}

// newS3Provider returns the lazy transport factory for the bucket.
func newS3Provider(bucket string) func(ctx context.Context) (provider.Provider, error) {
	return func(ctx context.Context) (provider.Provider, error) {
		s3cfg := s3.Config{
			Bucket:         bucket,
			Region:         cfg.S3.Region,
			Endpoint:       cfg.S3.Endpoint,
			Profile:        cfg.S3.Profile,
			ForcePathStyle: cfg.S3.ForcePathStyle,
			MaxKeys:        cfg.PageSize,
		}

		if cfg.S3.RoleARN != "" {
			exchanger, err := creds.New(ctx)
			if err != nil {
				return nil, err
			}
			c, err := exchanger.AssumeRole(ctx, cfg.S3.RoleARN, cfg.S3.SessionName)
			if err != nil {
				return nil, err
			}
			observability.CLILogger.Debug("Assumed role",
				zap.String("role_arn", cfg.S3.RoleARN))
			s3cfg.AccessKeyID = c.AccessKeyID
			s3cfg.SecretAccessKey = c.SecretAccessKey
			s3cfg.SessionToken = c.SessionToken
		}

		return s3.New(ctx, s3cfg)
	}
}

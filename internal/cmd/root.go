// Package cmd implements the remote-store command line interface.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartfrenk/remote-store/internal/config"
	"github.com/bartfrenk/remote-store/internal/observability"
)

var (
	cfgFile string
	verbose bool

	// Persistent overrides for config file values
	rootBucket   string
	rootCacheDir string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "remote-store",
	Short: "Read-through local cache for S3-style object stores",
	Long: `remote-store enumerates objects in a remote bucket and keeps locally
materialized, gzip-decompressed copies under a cache directory.

Examples:
  remote-store ls reports/ --bucket docs
  remote-store get reports/q1.txt.gz --bucket docs
  remote-store clear reports/q1.txt.gz --bucket docs`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if rootBucket != "" {
			cfg.Bucket = rootBucket
		}
		if rootCacheDir != "" {
			cfg.CacheDir = rootCacheDir
		}
		return observability.Init(cfg.Logging.Level, verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./remote-store.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&rootBucket, "bucket", "b", "", "Remote bucket name")
	rootCmd.PersistentFlags().StringVar(&rootCacheDir, "cache-dir", "", "Local cache root directory")
}

// Execute runs the root command.
func Execute() error {
	defer observability.Sync()
	return rootCmd.ExecuteContext(context.Background())
}

// requireBucket returns the configured bucket or an error when unset.
func requireBucket() (string, error) {
	if cfg.Bucket == "" {
		return "", fmt.Errorf("no bucket configured (use --bucket or the config file)")
	}
	return cfg.Bucket, nil
}

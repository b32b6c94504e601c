package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartfrenk/remote-store/internal/observability"
	"github.com/bartfrenk/remote-store/pkg/store"
)

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Materialize an object and print its decompressed contents",
	Long: `Fetch an object into the local cache (if not already present) and write
its gzip-decompressed contents to stdout or a file.

A second get of the same key reads from the cache without touching the
network.

Examples:
  remote-store get reports/q1.txt.gz --bucket docs
  remote-store get reports/q1.txt.gz -o q1.txt --bucket docs
  remote-store get reports/q1.txt.gz --cache-only --bucket docs`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

var (
	getOutput    string
	getCacheOnly bool
)

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&getOutput, "output", "o", "", "Write contents to file instead of stdout")
	getCmd.Flags().BoolVar(&getCacheOnly, "cache-only", false, "Materialize into the cache without printing contents")
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	key := args[0]

	st, err := buildStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	obj := &store.Object{Key: key}

	if getCacheOnly {
		if st.IsCached(obj) {
			observability.CLILogger.Debug("Already cached", zap.String("key", key))
			fmt.Println(store.CachePath(st.CacheRoot(), key))
			return nil
		}
		path, err := st.Download(ctx, obj)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	h, err := st.Open(ctx, obj, store.ModeRead)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	var dst io.Writer = os.Stdout
	if getOutput != "" {
		f, err := os.Create(getOutput)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		dst = f
	}

	n, err := io.Copy(dst, h)
	if err != nil {
		return err
	}

	observability.CLILogger.Debug("Object read",
		zap.String("key", key),
		zap.Int64("decompressed_bytes", n))
	return nil
}

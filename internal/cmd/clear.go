package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartfrenk/remote-store/internal/observability"
	"github.com/bartfrenk/remote-store/pkg/store"
)

var clearCmd = &cobra.Command{
	Use:   "clear <key>...",
	Short: "Remove locally cached copies",
	Long: `Remove the locally cached copies of the given keys. Keys that are not
cached are skipped silently.

Examples:
  remote-store clear reports/q1.txt.gz --bucket docs
  remote-store clear reports/q1.txt.gz reports/q2.txt.gz --bucket docs`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	st, err := buildStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	for _, key := range args {
		if err := st.ClearCached(&store.Object{Key: key}); err != nil {
			return err
		}
		observability.CLILogger.Debug("Cleared cached copy", zap.String("key", key))
	}
	return nil
}

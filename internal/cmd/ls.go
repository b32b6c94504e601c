package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartfrenk/remote-store/internal/observability"
	"github.com/bartfrenk/remote-store/pkg/match"
	"github.com/bartfrenk/remote-store/pkg/store"
)

var lsCmd = &cobra.Command{
	Use:   "ls [prefix...]",
	Short: "List objects under one or more prefixes",
	Long: `List remote objects whose keys start with the given prefixes, in
prefix order. With no arguments the whole bucket is listed.

Examples:
  remote-store ls --bucket docs
  remote-store ls reports/ archives/ --bucket docs
  remote-store ls reports/ --include '**/*.gz' --long`,
	RunE: runLs,
}

var (
	lsIncludes []string
	lsExcludes []string
	lsLong     bool
)

func init() {
	rootCmd.AddCommand(lsCmd)

	lsCmd.Flags().StringArrayVar(&lsIncludes, "include", nil, "Include glob pattern (repeatable)")
	lsCmd.Flags().StringArrayVar(&lsExcludes, "exclude", nil, "Exclude glob pattern (repeatable)")
	lsCmd.Flags().BoolVarP(&lsLong, "long", "l", false, "Show size, modification time, and ETag")
}

func runLs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := buildStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	matcher, err := match.New(lsIncludes, lsExcludes)
	if err != nil {
		return err
	}

	prefixes := args
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}

	// A listing failure surfaces once, through the returned error.
	total, err := writeListing(ctx, st, prefixes, matcher, os.Stdout, lsLong)
	if err != nil {
		return err
	}

	observability.CLILogger.Debug("Listing complete",
		zap.Strings("prefixes", prefixes),
		zap.Int("objects", total))
	return nil
}

// writeListing enumerates the prefixes in order and writes matching keys to
// out, returning the number of objects written.
func writeListing(ctx context.Context, st *store.Store, prefixes []string, matcher *match.Matcher, out io.Writer, long bool) (int, error) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	var total int
	for _, it := range st.ListPrefixes(prefixes) {
		for it.Next(ctx) {
			obj := it.Object()
			if !matcher.Match(obj.Key) {
				continue
			}
			total++
			if long {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					obj.Size, obj.Modified.Format("2006-01-02 15:04:05"), obj.ETag, obj.Key)
			} else {
				fmt.Fprintln(w, obj.Key)
			}
		}
		if err := it.Err(); err != nil {
			_ = w.Flush()
			return total, err
		}
	}
	return total, w.Flush()
}

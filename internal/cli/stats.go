package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show library statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	lib, closeLib := openLibrary(cmd)
	defer closeLib()

	stats := lib.Stats(cfg.ResolvedDataPath())
	if jsonOutput() {
		printJSON(cmd, stats)
		return
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "data:        %s (%d bytes, %s)\n", stats.DataPath, stats.DataSizeBytes, cfg.Backend)
	fmt.Fprintf(out, "actions:     %d\n", stats.TotalActions)
	fmt.Fprintf(out, "aliased:     %d\n", stats.Aliased)
	fmt.Fprintf(out, "transitions: %d\n", stats.Transitions)
	fmt.Fprintf(out, "published:   %d\n", stats.Published)
	fmt.Fprintf(out, "packs:       %d\n", len(stats.Packs))
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/action-shelf/internal/view"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search actions by keyword",
		Long:  "Search names, aliases, descriptions, transitions, publish variables and packs for matching text.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	addQueryFlags(cmd)

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	q := queryFromFlags(cmd, strings.Join(args, " "))

	lib, closeLib := openLibrary(cmd)
	defer closeLib()

	entries := view.ProjectEntries(lib.List(), q)
	if jsonOutput() {
		if len(entries) == 0 {
			printJSON(cmd, []view.Entry{})
			return
		}
		printJSON(cmd, entries)
		return
	}
	r := renderer(cmd, false)
	r.Positions = true
	r.Cards(entries)
}

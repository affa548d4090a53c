package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/action-shelf/internal/view"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List actions",
		Run:   runList,
	}

	addQueryFlags(cmd)
	cmd.Flags().StringP("filter", "q", "", "Case-insensitive text filter")

	RootCmd.AddCommand(cmd)
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("sort", "s", "", "Sort by: name, description, transitionMode, pack, alias, manual")
	cmd.Flags().Bool("desc", false, "Sort descending")
}

func queryFromFlags(cmd *cobra.Command, filter string) view.Query {
	sortStr, _ := cmd.Flags().GetString("sort")
	desc, _ := cmd.Flags().GetBool("desc")
	if sortStr == "" {
		sortStr = cfg.Sort
	}
	key, err := view.ParseSortKey(sortStr)
	if err != nil {
		exitErr("sort", err)
	}
	return view.Query{Filter: filter, Sort: key, Ascending: !desc}
}

func runList(cmd *cobra.Command, args []string) {
	filter, _ := cmd.Flags().GetString("filter")
	q := queryFromFlags(cmd, filter)

	lib, closeLib := openLibrary(cmd)
	defer closeLib()

	entries := view.ProjectEntries(lib.List(), q)
	if jsonOutput() {
		printJSON(cmd, entries)
		return
	}
	r := renderer(cmd, false)
	r.Positions = true
	r.Cards(entries)
}

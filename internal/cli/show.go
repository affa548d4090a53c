package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/action-shelf/internal/library"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <ref>",
		Short: "Show an action",
		Long:  "Show an action by store position or ID.",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	cmd.Flags().Bool("raw", false, "Print the original JSON")

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	raw, _ := cmd.Flags().GetBool("raw")

	lib, closeLib := openLibrary(cmd)
	defer closeLib()

	pos := mustFind(lib, args[0])
	a, _ := lib.Get(pos)

	r := renderer(cmd, false)
	switch {
	case raw:
		r.Raw(a)
	case jsonOutput():
		printJSON(cmd, a)
	default:
		r.Detail(a)
	}
}

func mustFind(lib *library.Library, ref string) int {
	pos, err := lib.Find(ref)
	if err != nil {
		exitErr("find", err)
	}
	return pos
}

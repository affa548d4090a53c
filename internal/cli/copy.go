package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/action-shelf/internal/clipboard"
)

func init() {
	cmd := &cobra.Command{
		Use:   "copy <ref>",
		Short: "Copy an action's JSON to the clipboard",
		Args:  cobra.ExactArgs(1),
		Run:   runCopy,
	}

	cmd.Flags().BoolP("print", "p", false, "Print the JSON instead of using the clipboard")

	RootCmd.AddCommand(cmd)
}

func runCopy(cmd *cobra.Command, args []string) {
	printOnly, _ := cmd.Flags().GetBool("print")

	lib, closeLib := openLibrary(cmd)
	defer closeLib()

	a, _ := lib.Get(mustFind(lib, args[0]))
	if printOnly {
		fmt.Fprint(cmd.OutOrStdout(), a.Raw)
		return
	}

	if err := (clipboard.System{}).Copy(a.Raw); err != nil {
		exitErr("copy", err)
	}
	renderer(cmd, true).Notice("copied JSON of %q to clipboard", a.DisplayName())
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <ref>",
		Short: "Delete an action",
		Long:  "Delete an action by store position or ID. Later positions shift down.",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	lib, closeLib := openLibrary(cmd)
	defer closeLib()

	pos := mustFind(lib, args[0])
	a, _ := lib.Get(pos)
	if err := lib.Delete(pos); err != nil {
		exitErr("rm", err)
	}

	if jsonOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q,"position":%d}`+"\n", a.ID, pos)
		return
	}
	renderer(cmd, false).Notice("deleted %q", a.DisplayName())
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "move <ref> <position>",
		Short: "Move an action in the manual order",
		Args:  cobra.ExactArgs(2),
		Run:   runMove,
	}

	RootCmd.AddCommand(cmd)
}

func runMove(cmd *cobra.Command, args []string) {
	to, err := strconv.Atoi(args[1])
	if err != nil {
		exitErr("move", fmt.Errorf("invalid position %q", args[1]))
	}

	lib, closeLib := openLibrary(cmd)
	defer closeLib()

	from := mustFind(lib, args[0])
	if err := lib.Move(from, to); err != nil {
		exitErr("move", err)
	}

	a, _ := lib.Get(to)
	if jsonOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q,"from":%d,"to":%d}`+"\n", a.ID, from, to)
		return
	}
	renderer(cmd, false).Notice("moved %q from %d to %d", a.DisplayName(), from, to)
}

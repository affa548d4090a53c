package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "alias <ref> <alias>",
		Short: "Set an action's alias",
		Long:  "Set the display alias of an action. A blank alias leaves the current one unchanged.",
		Args:  cobra.MinimumNArgs(2),
		Run:   runAlias,
	}

	RootCmd.AddCommand(cmd)
}

func runAlias(cmd *cobra.Command, args []string) {
	alias := strings.Join(args[1:], " ")

	lib, closeLib := openLibrary(cmd)
	defer closeLib()

	pos := mustFind(lib, args[0])
	if err := lib.SetAlias(pos, alias); err != nil {
		exitErr("alias", err)
	}

	a, _ := lib.Get(pos)
	if jsonOutput() {
		printJSON(cmd, a)
		return
	}
	if strings.TrimSpace(alias) == "" {
		renderer(cmd, false).Notice("alias unchanged: %q", a.DisplayName())
		return
	}
	renderer(cmd, false).Notice("%q is now aliased %q", a.Name, a.Alias)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "packs",
		Short: "List packs with action counts",
		Run:   runPacks,
	}

	RootCmd.AddCommand(cmd)
}

func runPacks(cmd *cobra.Command, args []string) {
	lib, closeLib := openLibrary(cmd)
	defer closeLib()

	packs := lib.Packs()
	if jsonOutput() {
		printJSON(cmd, packs)
		return
	}
	for _, p := range packs {
		fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", p.Count, p.Pack)
	}
}

package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export actions as JSON",
		Long:  "Export all actions as a JSON array in the data file format, in store order.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	lib, closeLib := openLibrary(cmd)
	defer closeLib()

	printJSON(cmd, lib.List())
}

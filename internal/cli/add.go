package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/action-shelf/internal/library"
	"github.com/rcliao/action-shelf/internal/parser"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [json]",
		Short: "Add an action",
		Long:  "Add an action from its JSON definition. The JSON can be a positional arg or piped via stdin.",
		Run:   runAdd,
	}

	cmd.Flags().StringP("alias", "a", "", "Alias to set on the new action")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	alias, _ := cmd.Flags().GetString("alias")

	raw, err := readInput(cmd, args)
	if err != nil {
		exitErr("read input", err)
	}
	if raw == "" {
		exitErr("add", fmt.Errorf("json is required (positional arg or stdin)"))
	}

	lib, closeLib := openLibrary(cmd)
	defer closeLib()

	a, err := lib.Add(raw)
	var de *library.DuplicateError
	var pe *parser.ParseError
	switch {
	case errors.As(err, &de):
		closeLib()
		exitErr("add", fmt.Errorf("this action is already stored as %q", de.Name))
	case errors.As(err, &pe):
		closeLib()
		exitErr("add", fmt.Errorf("invalid JSON, please check your input: %w", pe))
	case err != nil:
		closeLib()
		exitErr("add", err)
	}

	if alias != "" {
		pos := lib.Len() - 1
		if err := lib.SetAlias(pos, alias); err != nil {
			closeLib()
			exitErr("alias", err)
		}
		a, _ = lib.Get(pos)
	}

	if jsonOutput() {
		printJSON(cmd, a)
		return
	}
	renderer(cmd, false).Notice("added %q (%s) at position %d", a.DisplayName(), a.ID, lib.Len()-1)
}

// readInput returns the joined args, or stdin when no args are given and
// stdin is not a terminal. Surrounding whitespace is trimmed.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

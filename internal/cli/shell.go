package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/action-shelf/internal/clipboard"
	"github.com/rcliao/action-shelf/internal/library"
	"github.com/rcliao/action-shelf/internal/parser"
	"github.com/rcliao/action-shelf/internal/render"
	"github.com/rcliao/action-shelf/internal/session"
	"github.com/rcliao/action-shelf/internal/view"
)

const shellHelp = `commands (N is the index shown by "list"):
  add <json>             add an action (single-line JSON)
  list                   show the filtered, sorted list
  show N | raw N         show details or the original JSON
  alias N <alias>        set an alias
  rm N                   delete
  copy N                 copy the JSON to the clipboard
  filter [text]          set or clear the filter
  sort <key> [asc|desc]  name, description, transitionMode, pack, alias, manual
  toggle                 flip the sort direction
  move N M               reorder (manual sort only)
  quit`

func init() {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive session",
		Long:  "Read commands from stdin against one loaded library, keeping filter and sort between commands.",
		Run:   runShellCmd,
	}

	cmd.Flags().Bool("print-copy", false, "Print copied JSON instead of using the clipboard")

	RootCmd.AddCommand(cmd)
}

func runShellCmd(cmd *cobra.Command, args []string) {
	printCopy, _ := cmd.Flags().GetBool("print-copy")

	lib, closeLib := openLibrary(cmd)
	defer closeLib()

	var clip clipboard.Copier = clipboard.System{}
	if printCopy {
		clip = printCopier{w: cmd.OutOrStdout()}
	}

	sess := session.New(lib, clip)
	if key, err := view.ParseSortKey(cfg.Sort); err == nil {
		sess.SetSort(key, true)
	}
	if err := runShell(cmd.InOrStdin(), sess, renderer(cmd, false)); err != nil {
		closeLib()
		exitErr("shell", err)
	}
}

type printCopier struct {
	w io.Writer
}

func (p printCopier) Copy(text string) error {
	_, err := fmt.Fprintln(p.w, text)
	return err
}

// runShell executes one command per input line until quit or EOF.
func runShell(in io.Reader, sess *session.Session, r render.Renderer) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		name, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		if name == "quit" || name == "exit" {
			return nil
		}
		if err := shellCommand(sess, r, name, rest); err != nil {
			r.Warn("%s", shellError(err))
		}
	}
	return sc.Err()
}

func shellCommand(sess *session.Session, r render.Renderer, name, rest string) error {
	switch name {
	case "help", "?":
		fmt.Fprintln(r.Out, shellHelp)
	case "add":
		a, err := sess.Add(rest)
		if err != nil {
			return err
		}
		r.Notice("added %q", a.DisplayName())
	case "list", "ls":
		r.Cards(sess.Visible())
	case "show", "raw":
		idx, err := shellIndex(rest)
		if err != nil {
			return err
		}
		visible := sess.Visible()
		if idx < 0 || idx >= len(visible) {
			return &library.IndexError{Position: idx, Len: len(visible)}
		}
		if name == "raw" {
			r.Raw(visible[idx].Action)
		} else {
			r.Detail(visible[idx].Action)
		}
	case "alias":
		idxStr, alias, _ := strings.Cut(rest, " ")
		idx, err := shellIndex(idxStr)
		if err != nil {
			return err
		}
		return sess.SetAlias(idx, alias)
	case "rm", "delete":
		idx, err := shellIndex(rest)
		if err != nil {
			return err
		}
		return sess.Delete(idx)
	case "copy":
		idx, err := shellIndex(rest)
		if err != nil {
			return err
		}
		a, err := sess.Copy(idx)
		if err != nil {
			return err
		}
		r.Notice("copied JSON of %q", a.DisplayName())
	case "filter":
		sess.SetFilter(rest)
		r.Cards(sess.Visible())
	case "sort":
		keyStr, dir, _ := strings.Cut(rest, " ")
		key, err := view.ParseSortKey(keyStr)
		if err != nil {
			return err
		}
		sess.SetSort(key, strings.TrimSpace(dir) != "desc")
		r.Cards(sess.Visible())
	case "toggle":
		sess.ToggleDirection()
		r.Cards(sess.Visible())
	case "move":
		fromStr, toStr, _ := strings.Cut(rest, " ")
		from, err := shellIndex(fromStr)
		if err != nil {
			return err
		}
		to, err := shellIndex(toStr)
		if err != nil {
			return err
		}
		return sess.Move(from, to)
	default:
		return fmt.Errorf("unknown command %q (try help)", name)
	}
	return nil
}

func shellIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("expected an index, got %q", s)
	}
	return n, nil
}

func shellError(err error) string {
	var de *library.DuplicateError
	var pe *parser.ParseError
	switch {
	case errors.As(err, &de):
		return fmt.Sprintf("already stored as %q", de.Name)
	case errors.As(err, &pe):
		return "invalid JSON, please check your input"
	}
	return err.Error()
}

// Package cli implements the action-shelf CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rcliao/action-shelf/internal/config"
	"github.com/rcliao/action-shelf/internal/library"
	"github.com/rcliao/action-shelf/internal/render"
	"github.com/rcliao/action-shelf/internal/store"
)

var (
	dataPath    string
	backendFlag string
	formatFlag  string
	configPath  string
	verbose     bool
	noColor     bool

	cfg config.Config
)

// closeTimeout bounds how long a command waits for its final save.
const closeTimeout = 30 * time.Second

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "action-shelf",
	Short: "A personal library of workflow action definitions",
	Long: "Paste workflow action JSON, keep it on a shelf with an alias, filter and sort it,\n" +
		"and copy the original JSON back out. Stored as a single JSON file.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "Data file path (default: $ACTION_SHELF_DATA or ~/.action-shelf/actions.json)")
	RootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Storage backend: json or sqlite")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "Output format: text or json")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $ACTION_SHELF_CONFIG or ~/.action-shelf/config.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.FilePath()
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		c.DataPath = dataPath
	}
	if flags.Changed("backend") {
		c.Backend = backendFlag
	}
	if flags.Changed("format") {
		c.Format = formatFlag
	}
	if verbose {
		c.LogLevel = "debug"
	}
	if noColor {
		off := false
		c.Color = &off
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)})
	slog.SetDefault(slog.New(handler))
	return nil
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func openGateway() (store.Gateway, error) {
	path := cfg.ResolvedDataPath()
	if cfg.Backend == config.BackendSQLite {
		return store.NewSQLiteGateway(path)
	}
	return store.NewFileGateway(path), nil
}

// openLibrary loads the library. The returned close func waits for pending
// saves and must run before the command returns.
func openLibrary(cmd *cobra.Command) (*library.Library, func()) {
	gw, err := openGateway()
	if err != nil {
		exitErr("open store", err)
	}

	warn := renderer(cmd, true)
	lib := library.New(gw,
		library.WithLogger(slog.Default()),
		library.WithPersistErrorHandler(func(err error) {
			warn.Warn("%v (changes kept in this session only)", err)
		}),
	)
	lib.Load(cmd.Context())

	var once sync.Once
	return lib, func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
			defer cancel()
			if err := lib.Close(ctx); err != nil {
				slog.Error("waiting for save", "error", err)
			}
			gw.Close()
		})
	}
}

func renderer(cmd *cobra.Command, stderr bool) render.Renderer {
	var out io.Writer = cmd.OutOrStdout()
	if stderr {
		out = cmd.ErrOrStderr()
	}
	on := !color.NoColor
	if cfg.Color != nil {
		on = *cfg.Color
	}
	return render.Renderer{Out: out, Color: on}
}

func jsonOutput() bool {
	return cfg.Format == config.FormatJSON
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/rcliao/action-shelf/internal/library"
	"github.com/rcliao/action-shelf/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import actions from JSON",
		Long: "Import actions from a file or stdin. Accepts the format produced by export,\n" +
			"a JSON array of action documents, or a single action document.",
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		exitErr("read input", err)
	}
	if !gjson.ValidBytes(data) {
		exitErr("parse json", fmt.Errorf("input is not valid JSON"))
	}

	lib, closeLib := openLibrary(cmd)
	defer closeLib()

	res := importData(lib, data)

	if jsonOutput() {
		printJSON(cmd, res)
		return
	}
	renderer(cmd, false).Notice("imported %d, skipped %d duplicates and %d invalid", res.Added, res.Duplicates, res.Invalid)
}

// importData recognises exported records by their "json" key; any other
// array is treated as a list of action documents.
func importData(lib *library.Library, data []byte) library.ImportResult {
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return lib.Import([]string{string(data)})
	}

	elems := doc.Array()
	exported := len(elems) > 0
	for _, e := range elems {
		if !e.IsObject() || e.Get("json").Type != gjson.String {
			exported = false
			break
		}
	}
	if exported {
		var actions []model.Action
		if err := json.Unmarshal(data, &actions); err == nil {
			return lib.ImportActions(actions)
		}
	}

	raws := make([]string, len(elems))
	for i, e := range elems {
		raws[i] = e.Raw
	}
	return lib.Import(raws)
}

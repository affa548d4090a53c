package library

import (
	"errors"

	"github.com/rcliao/action-shelf/internal/model"
	"github.com/rcliao/action-shelf/internal/parser"
)

// ImportResult counts what happened to each imported document.
type ImportResult struct {
	Added      int `json:"added"`
	Duplicates int `json:"duplicates"`
	Invalid    int `json:"invalid"`
}

// Import adds each raw document in order, skipping duplicates and invalid
// JSON instead of stopping.
func (l *Library) Import(raws []string) ImportResult {
	var res ImportResult
	for _, raw := range raws {
		_, err := l.Add(raw)
		var pe *parser.ParseError
		switch {
		case err == nil:
			res.Added++
		case errors.Is(err, ErrDuplicate):
			res.Duplicates++
		case errors.As(err, &pe):
			res.Invalid++
		}
	}
	return res
}

// ImportActions imports exported records, carrying their aliases over when
// the document was newly added.
func (l *Library) ImportActions(actions []model.Action) ImportResult {
	var res ImportResult
	for _, a := range actions {
		_, err := l.Add(a.Raw)
		switch {
		case err == nil:
			res.Added++
			if a.Alias != "" {
				l.SetAlias(len(l.actions)-1, a.Alias)
			}
		case errors.Is(err, ErrDuplicate):
			res.Duplicates++
		default:
			res.Invalid++
		}
	}
	return res
}

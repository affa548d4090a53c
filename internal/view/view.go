// Package view derives filtered, ordered projections of the action library.
package view

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rcliao/action-shelf/internal/model"
)

// SortKey names the field a projection is ordered by.
type SortKey string

const (
	SortName           SortKey = "name"
	SortDescription    SortKey = "description"
	SortTransitionMode SortKey = "transitionMode"
	SortPack           SortKey = "pack"
	SortAlias          SortKey = "alias"
	// SortManual keeps store order.
	SortManual SortKey = "manual"
)

// SortKeys lists every accepted key.
var SortKeys = []SortKey{SortName, SortDescription, SortTransitionMode, SortPack, SortAlias, SortManual}

// ParseSortKey accepts a key case-insensitively; "transition-mode" and
// "transition_mode" are accepted for transitionMode.
func ParseSortKey(s string) (SortKey, error) {
	norm := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range SortKeys {
		if strings.ToLower(string(k)) == norm {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q (valid: name, description, transitionMode, pack, alias, manual)", s)
}

// Query selects and orders a projection.
type Query struct {
	Filter    string
	Sort      SortKey
	Ascending bool
}

// Entry is a projected action with its position in the store.
type Entry struct {
	Position int `json:"position"`
	model.Action
}

// Project returns the actions matching q in display order.
func Project(actions []model.Action, q Query) []model.Action {
	entries := ProjectEntries(actions, q)
	out := make([]model.Action, len(entries))
	for i, e := range entries {
		out[i] = e.Action
	}
	return out
}

// ProjectEntries is Project keeping each action's store position, so a
// caller can address the store from a displayed row. The input is never
// modified.
func ProjectEntries(actions []model.Action, q Query) []Entry {
	fold := cases.Fold()
	needle := fold.String(q.Filter)

	entries := make([]Entry, 0, len(actions))
	for i, a := range actions {
		if needle != "" && !strings.Contains(fold.String(haystack(a)), needle) {
			continue
		}
		entries = append(entries, Entry{Position: i, Action: a.Clone()})
	}

	if q.Sort == SortManual || q.Sort == "" {
		return entries
	}

	lower := cases.Lower(language.Und)
	keys := make(map[int]string, len(entries))
	for _, e := range entries {
		keys[e.Position] = lower.String(e.Field(string(q.Sort)))
	}

	col := collate.New(language.Und)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		c := col.CompareString(keys[a.Position], keys[b.Position])
		if !q.Ascending {
			c = -c
		}
		return c
	})
	return entries
}

// haystack joins every searchable field of a.
func haystack(a model.Action) string {
	parts := []string{a.Alias, a.Name, a.Description, a.TransitionMode}
	for _, t := range a.Transitions {
		parts = append(parts, t.When)
	}
	for _, t := range a.Transitions {
		parts = append(parts, t.Publish...)
	}
	parts = append(parts, a.Pack)
	return strings.Join(parts, " ")
}

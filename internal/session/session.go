// Package session drives the action library the way a single window does:
// it holds the current filter and sort, and addresses actions by their
// index in the visible list.
package session

import (
	"errors"
	"strings"

	"github.com/rcliao/action-shelf/internal/clipboard"
	"github.com/rcliao/action-shelf/internal/library"
	"github.com/rcliao/action-shelf/internal/model"
	"github.com/rcliao/action-shelf/internal/view"
)

// ErrNotManual reports a reorder while the list is sorted by a field.
var ErrNotManual = errors.New("reordering requires manual sort")

// Session is a presentation-side view over one Library.
type Session struct {
	lib   *library.Library
	clip  clipboard.Copier
	query view.Query
}

// New starts a session sorted by name, ascending, with no filter.
func New(lib *library.Library, clip clipboard.Copier) *Session {
	return &Session{
		lib:   lib,
		clip:  clip,
		query: view.Query{Sort: view.SortName, Ascending: true},
	}
}

// Query returns the current filter and sort.
func (s *Session) Query() view.Query {
	return s.query
}

// Visible returns the projection the user currently sees.
func (s *Session) Visible() []view.Entry {
	return view.ProjectEntries(s.lib.List(), s.query)
}

// Add stores raw JSON text.
func (s *Session) Add(text string) (model.Action, error) {
	return s.lib.Add(text)
}

// Delete removes the idx-th visible action.
func (s *Session) Delete(idx int) error {
	pos, err := s.resolve(idx)
	if err != nil {
		return err
	}
	return s.lib.Delete(pos)
}

// SetAlias aliases the idx-th visible action.
func (s *Session) SetAlias(idx int, alias string) error {
	pos, err := s.resolve(idx)
	if err != nil {
		return err
	}
	return s.lib.SetAlias(pos, alias)
}

// SetFilter replaces the free-text filter.
func (s *Session) SetFilter(text string) {
	s.query.Filter = strings.TrimSpace(text)
}

// SetSort sets the sort key and direction.
func (s *Session) SetSort(key view.SortKey, ascending bool) {
	s.query.Sort = key
	s.query.Ascending = ascending
}

// ToggleDirection flips the sort direction and returns the new one.
func (s *Session) ToggleDirection() bool {
	s.query.Ascending = !s.query.Ascending
	return s.query.Ascending
}

// Copy puts the idx-th visible action's raw JSON on the clipboard.
func (s *Session) Copy(idx int) (model.Action, error) {
	pos, err := s.resolve(idx)
	if err != nil {
		return model.Action{}, err
	}
	a, err := s.lib.Get(pos)
	if err != nil {
		return model.Action{}, err
	}
	if err := s.clip.Copy(a.Raw); err != nil {
		return a, err
	}
	return a, nil
}

// Move reorders the idx-th visible action to the place of the to-th one.
func (s *Session) Move(idx, to int) error {
	if s.query.Sort != view.SortManual {
		return ErrNotManual
	}
	from, err := s.resolve(idx)
	if err != nil {
		return err
	}
	dest, err := s.resolve(to)
	if err != nil {
		return err
	}
	return s.lib.Move(from, dest)
}

func (s *Session) resolve(idx int) (int, error) {
	visible := s.Visible()
	if idx < 0 || idx >= len(visible) {
		return 0, &library.IndexError{Position: idx, Len: len(visible)}
	}
	return visible[idx].Position, nil
}

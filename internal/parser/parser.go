// Package parser turns pasted workflow action JSON into normalized records.
//
// The source documents are third-party exports with a loose shape, so every
// field is looked up optionally and falls back to a default. Only text that
// is not JSON at all is rejected.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/rcliao/action-shelf/internal/model"
)

// ParseError reports input that is not syntactically valid JSON.
type ParseError struct {
	Offset int64 // byte offset of the syntax error, -1 if unknown
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("invalid json at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("invalid json: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var errEmpty = errors.New("empty input")

// Parse extracts an action record from raw. The returned record keeps raw
// verbatim in Raw and has every default applied.
func Parse(raw string) (model.Action, error) {
	if !gjson.Valid(raw) {
		return model.Action{}, syntaxError(raw)
	}

	a := model.Action{
		Name:           str(raw, "data.name", model.DefaultName),
		Description:    str(raw, "data.description", model.DefaultDescription),
		TransitionMode: str(raw, "data.transitionMode", model.DefaultTransitionMode),
		Pack:           str(raw, "data.action.pack.name", model.DefaultPack),
		Transitions:    []model.Transition{},
		Raw:            raw,
	}

	next := gjson.Get(raw, "data.next")
	if next.IsArray() {
		for _, entry := range next.Array() {
			a.Transitions = append(a.Transitions, transition(entry))
		}
	}
	return a, nil
}

func transition(entry gjson.Result) model.Transition {
	t := model.Transition{When: model.DefaultWhen, Publish: []string{}}
	if !entry.IsObject() {
		return t
	}
	if when := entry.Get("when"); when.Type == gjson.String && when.Str != "" {
		t.When = when.Str
	}
	publish := entry.Get("publish")
	if !publish.IsArray() {
		return t
	}
	for _, p := range publish.Array() {
		if !p.IsObject() {
			continue
		}
		t.Publish = append(t.Publish, text(p.Get("key"))+": "+text(p.Get("value")))
	}
	return t
}

// str returns the value at path when it is a non-empty string.
func str(raw, path, def string) string {
	r := gjson.Get(raw, path)
	if r.Type == gjson.String && r.Str != "" {
		return r.Str
	}
	return def
}

// text renders a publish key or value the way a template literal would,
// except that objects and arrays print as compact JSON.
func text(r gjson.Result) string {
	if !r.Exists() {
		return "undefined"
	}
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.String:
		return r.Str
	case gjson.JSON:
		return string(pretty.Ugly([]byte(r.Raw)))
	default:
		return r.Raw
	}
}

func syntaxError(raw string) *ParseError {
	if len(raw) == 0 {
		return &ParseError{Offset: -1, Err: errEmpty}
	}
	var v any
	err := json.Unmarshal([]byte(raw), &v)
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return &ParseError{Offset: se.Offset, Err: se}
	}
	if err == nil {
		err = errors.New("malformed document")
	}
	return &ParseError{Offset: -1, Err: err}
}

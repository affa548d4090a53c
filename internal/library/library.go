// Package library implements the in-memory action store.
//
// A Library owns an ordered collection of actions. Every mutation updates
// memory immediately and queues a save of the whole collection; callers never
// wait for the write. A Library is not safe for concurrent use.
package library

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/action-shelf/internal/model"
	"github.com/rcliao/action-shelf/internal/parser"
	"github.com/rcliao/action-shelf/internal/store"
)

// Library is the authoritative action collection for a process.
type Library struct {
	gw      store.Gateway
	log     *slog.Logger
	onErr   func(error)
	newID   func() string
	actions []model.Action
	p       *persister
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(lib *Library) { lib.log = l }
}

// WithPersistErrorHandler registers a callback for failed loads and saves.
// It runs on the persister goroutine for saves.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(lib *Library) { lib.onErr = fn }
}

// WithIDSource overrides ID generation.
func WithIDSource(fn func() string) Option {
	return func(lib *Library) { lib.newID = fn }
}

// New returns an empty Library backed by gw. Call Load to rehydrate it and
// Close before exit so the last save lands.
func New(gw store.Gateway, opts ...Option) *Library {
	lib := &Library{
		gw:      gw,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		actions: []model.Action{},
	}
	for _, opt := range opts {
		opt(lib)
	}
	if lib.newID == nil {
		entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
		lib.newID = func() string {
			return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
		}
	}
	lib.p = newPersister(gw, lib.log, lib.onErr)
	return lib
}

// Load replaces the collection with what the gateway holds. Failures never
// propagate: they are logged, reported to the error handler, and leave the
// library empty.
func (l *Library) Load(ctx context.Context) {
	loaded, err := l.gw.Load(ctx)
	if err != nil {
		l.log.Warn("load actions failed, starting empty", "error", err)
		if l.onErr != nil {
			l.onErr(&PersistenceError{Op: "load", Err: err})
		}
		l.actions = []model.Action{}
		return
	}

	actions := make([]model.Action, 0, len(loaded))
	seen := make(map[string]bool, len(loaded))
	assigned := false
	for _, a := range loaded {
		if a.Raw != "" && seen[a.Raw] {
			l.log.Warn("dropping duplicate action on load", "name", a.DisplayName())
			continue
		}
		seen[a.Raw] = true
		if a.ID == "" {
			a.ID = l.newID()
			assigned = true
		}
		actions = append(actions, a.Clone())
	}
	for i := range actions {
		if actions[i].Transitions == nil {
			actions[i].Transitions = []model.Transition{}
		}
	}
	l.actions = actions
	l.log.Debug("actions loaded", "actions", len(actions))

	if assigned || len(actions) != len(loaded) {
		l.persist()
	}
}

// Add parses raw and appends it. Raw text identical to a stored action fails
// with *DuplicateError before parsing; invalid JSON fails with
// *parser.ParseError.
func (l *Library) Add(raw string) (model.Action, error) {
	for i, a := range l.actions {
		if a.Raw == raw {
			return model.Action{}, &DuplicateError{Name: a.DisplayName(), Position: i}
		}
	}

	a, err := parser.Parse(raw)
	if err != nil {
		return model.Action{}, err
	}
	a.ID = l.newID()

	l.actions = append(l.actions, a)
	l.persist()
	return a.Clone(), nil
}

// Delete removes the action at pos; later actions shift down by one.
func (l *Library) Delete(pos int) error {
	if err := l.check(pos); err != nil {
		return err
	}
	l.actions = slices.Delete(l.actions, pos, pos+1)
	l.persist()
	return nil
}

// SetAlias trims alias and stores it. A blank alias leaves the current one.
func (l *Library) SetAlias(pos int, alias string) error {
	if err := l.check(pos); err != nil {
		return err
	}
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return nil
	}
	l.actions[pos].Alias = alias
	l.persist()
	return nil
}

// Move relocates the action at from so that it ends up at position to.
func (l *Library) Move(from, to int) error {
	if err := l.check(from); err != nil {
		return err
	}
	if err := l.check(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	a := l.actions[from]
	l.actions = slices.Delete(l.actions, from, from+1)
	l.actions = slices.Insert(l.actions, to, a)
	l.persist()
	return nil
}

// List returns a deep copy of the collection in store order.
func (l *Library) List() []model.Action {
	return model.CloneAll(l.actions)
}

// Get returns a copy of the action at pos.
func (l *Library) Get(pos int) (model.Action, error) {
	if err := l.check(pos); err != nil {
		return model.Action{}, err
	}
	return l.actions[pos].Clone(), nil
}

// Len returns the number of stored actions.
func (l *Library) Len() int {
	return len(l.actions)
}

// Find resolves ref, either a decimal position or an action ID, to a position.
func (l *Library) Find(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if err := l.check(n); err != nil {
			return 0, err
		}
		return n, nil
	}
	for i, a := range l.actions {
		if a.ID != "" && strings.EqualFold(a.ID, ref) {
			return i, nil
		}
	}
	return 0, &refError{ref: ref}
}

// Flush blocks until every mutation so far has been written or ctx ends.
func (l *Library) Flush(ctx context.Context) error {
	return l.p.flush(ctx)
}

// Close flushes pending saves and stops the persister. It does not close
// the gateway.
func (l *Library) Close(ctx context.Context) error {
	return l.p.close(ctx)
}

func (l *Library) check(pos int) error {
	if pos < 0 || pos >= len(l.actions) {
		return &IndexError{Position: pos, Len: len(l.actions)}
	}
	return nil
}

func (l *Library) persist() {
	if err := l.p.enqueue(model.CloneAll(l.actions)); err != nil {
		l.log.Error("mutation after close not persisted", "error", err)
		if l.onErr != nil {
			l.onErr(&PersistenceError{Op: "save", Err: err})
		}
	}
}

type refError struct {
	ref string
}

func (e *refError) Error() string {
	return "action not found: " + e.ref
}

func (e *refError) Is(target error) bool {
	return target == ErrNotFound
}

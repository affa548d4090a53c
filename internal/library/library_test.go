package library

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/action-shelf/internal/model"
	"github.com/rcliao/action-shelf/internal/parser"
	"github.com/rcliao/action-shelf/internal/store"
)

// memGateway records every save and can be told to fail or block.
type memGateway struct {
	mu      sync.Mutex
	stored  []model.Action
	saves   [][]model.Action
	loadErr error
	saveErr error
	gate    chan struct{} // when non-nil, Save waits for a receive
}

func (g *memGateway) Load(ctx context.Context) ([]model.Action, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.loadErr != nil {
		return []model.Action{}, g.loadErr
	}
	return model.CloneAll(g.stored), nil
}

func (g *memGateway) Save(ctx context.Context, actions []model.Action) error {
	if g.gate != nil {
		<-g.gate
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saves = append(g.saves, actions)
	if g.saveErr != nil {
		return g.saveErr
	}
	g.stored = model.CloneAll(actions)
	return nil
}

func (g *memGateway) Close() error { return nil }

func (g *memGateway) snapshot() ([]model.Action, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return model.CloneAll(g.stored), len(g.saves)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestLibrary(t *testing.T, g store.Gateway, opts ...Option) *Library {
	t.Helper()
	opts = append([]Option{WithIDSource(sequentialIDs())}, opts...)
	lib := New(g, opts...)
	t.Cleanup(func() { lib.Close(context.Background()) })
	return lib
}

func doc(name string) string {
	return fmt.Sprintf(`{"data":{"name":%q}}`, name)
}

func flush(t *testing.T, lib *Library) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, lib.Flush(ctx))
}

func TestAddPersists(t *testing.T) {
	g := &memGateway{}
	lib := newTestLibrary(t, g)

	a, err := lib.Add(doc("alpha"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", a.Name)
	assert.Equal(t, "id-1", a.ID)
	assert.Equal(t, doc("alpha"), a.Raw)

	flush(t, lib)
	stored, _ := g.snapshot()
	require.Len(t, stored, 1)
	assert.Equal(t, doc("alpha"), stored[0].Raw)
}

func TestAddDuplicate(t *testing.T) {
	lib := newTestLibrary(t, &memGateway{})

	_, err := lib.Add(doc("alpha"))
	require.NoError(t, err)
	require.NoError(t, lib.SetAlias(0, "Foo"))

	_, err = lib.Add(doc("alpha"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))

	var de *DuplicateError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Foo", de.Name)
	assert.Equal(t, 0, de.Position)
	assert.Equal(t, 1, lib.Len())
}

func TestAddDuplicateCheckedBeforeParse(t *testing.T) {
	g := &memGateway{stored: []model.Action{{ID: "x", Name: "broken", Raw: "not json"}}}
	lib := newTestLibrary(t, g)
	lib.Load(context.Background())

	_, err := lib.Add("not json")
	assert.True(t, errors.Is(err, ErrDuplicate))
}

func TestAddInvalid(t *testing.T) {
	g := &memGateway{}
	lib := newTestLibrary(t, g)

	_, err := lib.Add("{nope")
	var pe *parser.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 0, lib.Len())

	flush(t, lib)
	_, saves := g.snapshot()
	assert.Equal(t, 0, saves)
}

func TestDeleteShiftsIndices(t *testing.T) {
	lib := newTestLibrary(t, &memGateway{})
	for _, n := range []string{"a", "b", "c"} {
		_, err := lib.Add(doc(n))
		require.NoError(t, err)
	}

	require.NoError(t, lib.Delete(0))
	assert.Equal(t, 2, lib.Len())

	first, err := lib.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "b", first.Name)
}

func TestDeleteOutOfRange(t *testing.T) {
	lib := newTestLibrary(t, &memGateway{})
	lib.Add(doc("a"))

	for _, pos := range []int{-1, 1, 10} {
		err := lib.Delete(pos)
		assert.True(t, errors.Is(err, ErrIndex), "pos %d", pos)
		var ie *IndexError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, pos, ie.Position)
		assert.Equal(t, 1, ie.Len)
	}
	assert.Equal(t, 1, lib.Len())
}

func TestSetAlias(t *testing.T) {
	lib := newTestLibrary(t, &memGateway{})
	lib.Add(doc("a"))

	require.NoError(t, lib.SetAlias(0, "  Foo  "))
	a, _ := lib.Get(0)
	assert.Equal(t, "Foo", a.Alias)
	assert.Equal(t, "Foo", a.DisplayName())

	require.NoError(t, lib.SetAlias(0, "   "))
	a, _ = lib.Get(0)
	assert.Equal(t, "Foo", a.Alias)

	assert.True(t, errors.Is(lib.SetAlias(3, "x"), ErrIndex))
}

func TestBlankAliasDoesNotPersist(t *testing.T) {
	g := &memGateway{}
	lib := newTestLibrary(t, g)
	lib.Add(doc("a"))
	flush(t, lib)
	_, before := g.snapshot()

	require.NoError(t, lib.SetAlias(0, ""))
	flush(t, lib)
	_, after := g.snapshot()
	assert.Equal(t, before, after)
}

func TestMove(t *testing.T) {
	g := &memGateway{}
	lib := newTestLibrary(t, g)
	for _, n := range []string{"a", "b", "c", "d"} {
		lib.Add(doc(n))
	}

	require.NoError(t, lib.Move(0, 2))
	assert.Equal(t, []string{"b", "c", "a", "d"}, names(lib.List()))

	require.NoError(t, lib.Move(3, 0))
	assert.Equal(t, []string{"d", "b", "c", "a"}, names(lib.List()))

	assert.True(t, errors.Is(lib.Move(0, 4), ErrIndex))

	flush(t, lib)
	stored, _ := g.snapshot()
	assert.Equal(t, []string{"d", "b", "c", "a"}, names(stored))
}

func TestListIsSnapshot(t *testing.T) {
	lib := newTestLibrary(t, &memGateway{})
	lib.Add(`{"data":{"name":"a","next":[{"when":"w","publish":[{"key":"k","value":"v"}]}]}}`)

	list := lib.List()
	list[0].Name = "changed"
	list[0].Transitions[0].Publish[0] = "changed"

	a, _ := lib.Get(0)
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, "k: v", a.Transitions[0].Publish[0])
}

func TestFind(t *testing.T) {
	lib := newTestLibrary(t, &memGateway{})
	lib.Add(doc("a"))
	lib.Add(doc("b"))

	pos, err := lib.Find("1")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	pos, err = lib.Find("id-1")
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	_, err = lib.Find("5")
	assert.True(t, errors.Is(err, ErrIndex))

	_, err = lib.Find("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadDegradesToEmpty(t *testing.T) {
	var reported []error
	g := &memGateway{loadErr: errors.New("disk on fire")}
	lib := newTestLibrary(t, g, WithPersistErrorHandler(func(err error) { reported = append(reported, err) }))

	lib.Load(context.Background())
	assert.Equal(t, 0, lib.Len())
	require.Len(t, reported, 1)

	var pe *PersistenceError
	require.True(t, errors.As(reported[0], &pe))
	assert.Equal(t, "load", pe.Op)
}

func TestLoadNormalizes(t *testing.T) {
	g := &memGateway{stored: []model.Action{
		{Name: "a", Raw: doc("a")},
		{ID: "keep", Name: "b", Raw: doc("b"), Transitions: []model.Transition{}},
		{Name: "a again", Raw: doc("a")},
	}}
	lib := newTestLibrary(t, g)
	lib.Load(context.Background())

	list := lib.List()
	require.Len(t, list, 2)
	assert.Equal(t, "id-1", list[0].ID)
	assert.Equal(t, "keep", list[1].ID)
	assert.NotNil(t, list[0].Transitions)

	flush(t, lib)
	stored, _ := g.snapshot()
	assert.Len(t, stored, 2)
}

func TestPersistenceFailureKeepsState(t *testing.T) {
	errs := make(chan error, 4)
	g := &memGateway{saveErr: errors.New("read-only filesystem")}
	lib := newTestLibrary(t, g, WithPersistErrorHandler(func(err error) { errs <- err }))

	_, err := lib.Add(doc("a"))
	require.NoError(t, err)
	flush(t, lib)

	assert.Equal(t, 1, lib.Len())
	select {
	case err := <-errs:
		var pe *PersistenceError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "save", pe.Op)
	default:
		t.Fatal("expected a persistence error to be reported")
	}
}

func TestSavesCoalesce(t *testing.T) {
	g := &memGateway{gate: make(chan struct{})}
	lib := newTestLibrary(t, g)

	lib.Add(doc("a"))
	// The first save is now blocked on the gate; queue more behind it.
	time.Sleep(10 * time.Millisecond)
	lib.Add(doc("b"))
	lib.Add(doc("c"))

	done := make(chan struct{})
	go func() {
		for {
			select {
			case g.gate <- struct{}{}:
			case <-done:
				return
			}
		}
	}()
	flush(t, lib)
	close(done)

	stored, saves := g.snapshot()
	assert.Equal(t, []string{"a", "b", "c"}, names(stored))
	assert.LessOrEqual(t, saves, 3)
	assert.GreaterOrEqual(t, saves, 1)
}

func TestMutationAfterClose(t *testing.T) {
	var reported []error
	g := &memGateway{}
	lib := New(g, WithPersistErrorHandler(func(err error) { reported = append(reported, err) }))
	require.NoError(t, lib.Close(context.Background()))

	_, err := lib.Add(doc("a"))
	require.NoError(t, err)
	require.Len(t, reported, 1)
	assert.True(t, errors.Is(reported[0], ErrClosed))
}

func TestPersistenceSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.json")
	raw := `{"data":{"name":"Create VM","action":{"pack":{"name":"Azure"}}}}`

	lib := New(store.NewFileGateway(path))
	lib.Load(context.Background())
	_, err := lib.Add(raw)
	require.NoError(t, err)
	require.NoError(t, lib.SetAlias(0, "vm"))
	require.NoError(t, lib.Close(context.Background()))

	fresh := newTestLibrary(t, store.NewFileGateway(path))
	fresh.Load(context.Background())
	require.Equal(t, 1, fresh.Len())

	a, _ := fresh.Get(0)
	assert.Equal(t, raw, a.Raw)
	assert.Equal(t, "vm", a.Alias)
	assert.Equal(t, "Azure", a.Pack)
}

func TestImport(t *testing.T) {
	lib := newTestLibrary(t, &memGateway{})
	lib.Add(doc("a"))

	res := lib.Import([]string{doc("a"), doc("b"), "{bad", doc("c")})
	assert.Equal(t, ImportResult{Added: 2, Duplicates: 1, Invalid: 1}, res)
	assert.Equal(t, 3, lib.Len())
}

func TestImportActionsKeepsAlias(t *testing.T) {
	lib := newTestLibrary(t, &memGateway{})

	res := lib.ImportActions([]model.Action{
		{Raw: doc("a"), Alias: "first"},
		{Raw: doc("a"), Alias: "ignored"},
	})
	assert.Equal(t, ImportResult{Added: 1, Duplicates: 1}, res)

	a, _ := lib.Get(0)
	assert.Equal(t, "first", a.Alias)
}

func TestStats(t *testing.T) {
	lib := newTestLibrary(t, &memGateway{})
	lib.Add(`{"data":{"name":"a","action":{"pack":{"name":"core"}},"next":[{"when":"x","publish":[{"key":"k","value":1}]}]}}`)
	lib.Add(`{"data":{"name":"b","action":{"pack":{"name":"core"}}}}`)
	lib.Add(`{"data":{"name":"c"}}`)
	lib.SetAlias(2, "see")

	st := lib.Stats(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, 3, st.TotalActions)
	assert.Equal(t, 1, st.Aliased)
	assert.Equal(t, 1, st.Transitions)
	assert.Equal(t, 1, st.Published)
	assert.Equal(t, int64(0), st.DataSizeBytes)
	assert.Equal(t, []PackStats{{Pack: "core", Count: 2}, {Pack: "Unknown Pack", Count: 1}}, st.Packs)
}

func names(actions []model.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Name
	}
	return out
}

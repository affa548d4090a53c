package render

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/rcliao/action-shelf/internal/model"
	"github.com/rcliao/action-shelf/internal/view"
)

func goldenAssert(t *testing.T, name string, got []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, got)
}

func TestDetailFull(t *testing.T) {
	var buf bytes.Buffer
	Renderer{Out: &buf}.Detail(model.Action{
		Name:           "Create VM",
		Alias:          "vm",
		Description:    "Provision a virtual machine",
		TransitionMode: "parallel",
		Pack:           "Azure",
		Transitions: []model.Transition{
			{When: "{{ succeeded() }}", Publish: []string{"vm_id: 1", "attempts: 3"}},
			{When: "{{ failed() }}", Publish: []string{}},
		},
	})
	goldenAssert(t, "detail_full", buf.Bytes())
}

func TestDetailDefaults(t *testing.T) {
	var buf bytes.Buffer
	Renderer{Out: &buf}.Detail(model.Action{
		Name:           model.DefaultName,
		Description:    model.DefaultDescription,
		TransitionMode: model.DefaultTransitionMode,
		Pack:           model.DefaultPack,
		Transitions:    []model.Transition{},
	})
	goldenAssert(t, "detail_defaults", buf.Bytes())
}

func TestCardsPlain(t *testing.T) {
	var buf bytes.Buffer
	Renderer{Out: &buf}.Cards([]view.Entry{
		{Position: 3, Action: model.Action{Name: "Create VM", Alias: "vm", Pack: "Azure"}},
		{Position: 0, Action: model.Action{Name: "Delete VM", Pack: "Azure"}},
	})
	assert.Equal(t, "0    vm (Azure)\n1    Delete VM (Azure)\n", buf.String())
}

func TestCardsPositions(t *testing.T) {
	var buf bytes.Buffer
	Renderer{Out: &buf, Positions: true}.Cards([]view.Entry{
		{Position: 3, Action: model.Action{Name: "Create VM", Pack: "Azure"}},
	})
	assert.Equal(t, "3    Create VM (Azure)\n", buf.String())
}

func TestCardsEmpty(t *testing.T) {
	var buf bytes.Buffer
	Renderer{Out: &buf}.Cards(nil)
	assert.Equal(t, "No actions.\n", buf.String())
}

func TestRawPretty(t *testing.T) {
	var buf bytes.Buffer
	Renderer{Out: &buf}.Raw(model.Action{Raw: `{"data":{"name":"a"}}`})
	assert.Equal(t, "{\n  \"data\": {\n    \"name\": \"a\"\n  }\n}\n", buf.String())
}

func TestRawNotJSON(t *testing.T) {
	var buf bytes.Buffer
	Renderer{Out: &buf}.Raw(model.Action{Raw: "legacy text"})
	assert.Equal(t, "legacy text\n", buf.String())
}

func TestNoticePlain(t *testing.T) {
	var buf bytes.Buffer
	r := Renderer{Out: &buf}
	r.Notice("added %q", "vm")
	r.Warn("save failed: %s", "disk full")
	assert.Equal(t, "added \"vm\"\nwarning: save failed: disk full\n", buf.String())
}

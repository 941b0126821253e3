package jsontree_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin-hq/microfin/pkg/jsontree"
)

const analysisJSON = `{
  "loan_amount": 5000,
  "risk": {"score": 0.45, "flags": ["late", null]},
  "approved": true
}`

func newAnalysisView(t *testing.T, opts ...jsontree.Option) *jsontree.View {
	t.Helper()
	payload, err := jsontree.DecodeString(analysisJSON)
	require.NoError(t, err)
	return jsontree.NewView(payload, append([]jsontree.Option{jsontree.WithTitle("Contract Analysis")}, opts...)...)
}

func TestView_SelectEmitsLeafEvent(t *testing.T) {
	t.Parallel()

	payload, err := jsontree.DecodeString(`{"a": {"b": 1}}`)
	require.NoError(t, err)

	var events []jsontree.LeafEvent
	view := jsontree.NewView(payload, jsontree.WithSelectHandler(func(ev jsontree.LeafEvent) {
		events = append(events, ev)
	}))

	ev, err := view.Select(jsontree.Path{"a", "b"})
	require.NoError(t, err)

	want := jsontree.LeafEvent{Key: "b", Value: 1.0, Path: jsontree.Path{"a", "b"}}
	assert.Equal(t, want, ev)
	require.Len(t, events, 1)
	assert.Equal(t, want, events[0])
}

func TestView_SelectErrors(t *testing.T) {
	t.Parallel()

	view := newAnalysisView(t)

	_, err := view.Select(jsontree.Path{"risk"})
	assert.ErrorIs(t, err, jsontree.ErrNotLeaf)

	_, err = view.Select(jsontree.Path{"risk", "nope"})
	assert.ErrorIs(t, err, jsontree.ErrPathNotFound)

	ev, err := view.Select(jsontree.Path{"risk", "flags", "1"})
	require.NoError(t, err)
	assert.Equal(t, "1", ev.Key)
	assert.Nil(t, ev.Value)
}

func TestView_BasePath(t *testing.T) {
	t.Parallel()

	view := newAnalysisView(t, jsontree.WithBasePath(jsontree.Path{"analysis"}))

	ev, err := view.Select(jsontree.Path{"analysis", "risk", "score"})
	require.NoError(t, err)
	assert.Equal(t, jsontree.Path{"analysis", "risk", "score"}, ev.Path)
	assert.Equal(t, 0.45, ev.Value)

	_, err = view.Select(jsontree.Path{"risk", "score"})
	assert.ErrorIs(t, err, jsontree.ErrPathNotFound)

	lines, err := view.Lines()
	require.NoError(t, err)
	assert.Equal(t, jsontree.Path{"analysis"}, lines[0].Path)
	assert.Equal(t, "Contract Analysis", lines[0].Label)
}

func TestView_ToggleTwiceRestoresState(t *testing.T) {
	t.Parallel()

	view := newAnalysisView(t)
	risk := jsontree.Path{"risk"}
	flags := jsontree.Path{"risk", "flags"}

	expanded, err := view.Toggle(flags)
	require.NoError(t, err)
	require.False(t, expanded)

	before, err := view.Lines()
	require.NoError(t, err)

	expanded, err = view.Toggle(risk)
	require.NoError(t, err)
	assert.False(t, expanded)
	assert.False(t, view.Expanded(flags), "child state is untouched")

	expanded, err = view.Toggle(risk)
	require.NoError(t, err)
	assert.True(t, expanded)

	after, err := view.Lines()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.False(t, view.Expanded(flags))
	assert.True(t, view.Expanded(nil))
}

func TestView_ToggleErrors(t *testing.T) {
	t.Parallel()

	view := newAnalysisView(t)

	_, err := view.Toggle(jsontree.Path{"loan_amount"})
	assert.ErrorIs(t, err, jsontree.ErrNotContainer)

	_, err = view.Toggle(jsontree.Path{"ghost"})
	assert.ErrorIs(t, err, jsontree.ErrPathNotFound)

	assert.True(t, view.Expanded(jsontree.Path{"loan_amount"}))
}

func TestView_Lines(t *testing.T) {
	t.Parallel()

	view := newAnalysisView(t)
	_, err := view.Toggle(jsontree.Path{"risk", "flags"})
	require.NoError(t, err)

	lines, err := view.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 6)

	assert.Equal(t, jsontree.Line{Depth: 0, Key: "", Label: "Contract Analysis", Display: "3 fields", Kind: jsontree.KindObject, Expanded: true, Path: jsontree.Path{}}, lines[0])
	assert.Equal(t, jsontree.Line{Depth: 1, Key: "loan_amount", Label: "Loan Amount", Display: "5,000", Kind: jsontree.KindLeaf, Path: jsontree.Path{"loan_amount"}}, lines[1])
	assert.Equal(t, "Score", lines[3].Label)
	assert.Equal(t, "45.00%", lines[3].Display)
	assert.Equal(t, jsontree.Line{Depth: 2, Key: "flags", Label: "Flags", Display: "2 items", Kind: jsontree.KindArray, Expanded: false, Path: jsontree.Path{"risk", "flags"}}, lines[4])
	assert.Equal(t, "Approved", lines[5].Label)
	assert.Equal(t, 1, lines[5].Depth)
}

func TestView_WriteText(t *testing.T) {
	t.Parallel()

	view := newAnalysisView(t)

	var buf bytes.Buffer
	require.NoError(t, view.WriteText(&buf))
	assert.Equal(t, `▾ Contract Analysis
  Loan Amount: 5,000
  ▾ Risk
    Score: 45.00%
    ▾ Flags
      Item 1: late
      Item 2: Not specified
  Approved: Yes
`, buf.String())

	require.NoError(t, view.SetExpanded(jsontree.Path{"risk", "flags"}, false))
	buf.Reset()
	require.NoError(t, view.WriteText(&buf))
	assert.Contains(t, buf.String(), "    ▸ Flags (2 items)\n")
	assert.NotContains(t, buf.String(), "Item 1")
}

func TestView_CollapseExpandAllAndReplace(t *testing.T) {
	t.Parallel()

	view := newAnalysisView(t)
	require.NoError(t, view.CollapseAll())

	lines, err := view.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.False(t, lines[0].Expanded)

	view.ExpandAll()
	lines, err = view.Lines()
	require.NoError(t, err)
	assert.Len(t, lines, 8)

	require.NoError(t, view.SetExpanded(jsontree.Path{"risk"}, false))
	next, err := jsontree.DecodeString(`{"risk": {"score": 0.9}}`)
	require.NoError(t, err)
	view.Replace(next)

	assert.True(t, view.Expanded(jsontree.Path{"risk"}))
	lines, err = view.Lines()
	require.NoError(t, err)
	assert.Len(t, lines, 3)
	assert.Equal(t, "90.00%", lines[2].Display)
}

func TestView_ScalarPayload(t *testing.T) {
	t.Parallel()

	view := jsontree.NewView("plain text")
	lines, err := view.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, jsontree.DefaultTitle, lines[0].Label)
	assert.Equal(t, "plain text", lines[0].Display)

	ev, err := view.Select(nil)
	require.NoError(t, err)
	assert.Equal(t, "plain text", ev.Value)
	assert.Empty(t, ev.Path)
}

package jsontree_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin-hq/microfin/pkg/jsontree"
)

func TestView_Component(t *testing.T) {
	t.Parallel()

	payload, err := jsontree.DecodeString(`{"terms": {"note": "<b>net</b>", "rate": 0.1}, "tags": ["a"]}`)
	require.NoError(t, err)

	view := jsontree.NewView(payload,
		jsontree.WithTitle("Analysis"),
		jsontree.WithID("tree-1"),
		jsontree.WithLeafAction(func(p jsontree.Path) string {
			return "@post('/explain" + p.Pointer() + "')"
		}),
	)
	_, err = view.Toggle(jsontree.Path{"tags"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, view.Component().Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, `<div class="json-tree" id="tree-1">`)
	assert.Contains(t, html, `<details class="json-tree-node" data-path="" open><summary><span class="json-tree-key">Analysis</span>`)
	assert.Contains(t, html, `<details class="json-tree-node" data-path="/terms" open>`)
	assert.Contains(t, html, `<details class="json-tree-node" data-path="/tags"><summary>`)
	assert.Contains(t, html, `&lt;b&gt;net&lt;/b&gt;`)
	assert.NotContains(t, html, `<b>net</b>`)
	assert.Contains(t, html, `data-on-click="@post(&#39;/explain/terms/rate&#39;)"`)
	assert.Contains(t, html, `<span class="json-tree-value">10.00%</span>`)
	assert.Contains(t, html, `<span class="json-tree-key">Item 1</span>`)
}

func TestView_ComponentWithoutAction(t *testing.T) {
	t.Parallel()

	view := jsontree.NewView(jsontree.Object{{Key: "due_date", Value: nil}})

	var buf bytes.Buffer
	require.NoError(t, view.Component().Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "data-on-click")
	assert.Contains(t, buf.String(), `<span class="json-tree-key">Due Date</span> <span class="json-tree-value">Not specified</span>`)
}

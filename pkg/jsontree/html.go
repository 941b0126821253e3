package jsontree

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Component renders the view as nested <details> elements. Expanded
// containers carry the open attribute, so the browser toggles nodes
// independently afterwards. Leaves get a data-on-click attribute when a
// leaf action is configured.
func (v *View) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="json-tree"`)
		if v.opts.id != "" {
			writeAttr(&b, "id", v.opts.id)
		}
		b.WriteString(`>`)

		root := Node{
			Key:   v.opts.basePath.Last(),
			Path:  v.opts.basePath.Join(nil),
			Kind:  Classify(v.payload),
			Value: v.payload,
		}
		if err := v.renderNode(&b, root, v.opts.title); err != nil {
			return err
		}

		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func (v *View) renderNode(b *strings.Builder, n Node, label string) error {
	if n.Depth > v.opts.maxDepth {
		return ErrMaxDepth
	}
	f := v.opts.formatter

	if !n.Kind.IsContainer() {
		b.WriteString(`<div class="json-tree-leaf"`)
		writeAttr(b, "data-path", n.Path.Pointer())
		if v.opts.leafAction != nil {
			writeAttr(b, "data-on-click", v.opts.leafAction(n.Path))
		}
		b.WriteString(`><span class="json-tree-key">`)
		b.WriteString(templ.EscapeString(label))
		b.WriteString(`</span> <span class="json-tree-value">`)
		b.WriteString(templ.EscapeString(f.Leaf(n.Value)))
		b.WriteString(`</span></div>`)
		return nil
	}

	b.WriteString(`<details class="json-tree-node"`)
	writeAttr(b, "data-path", n.Path.Pointer())
	if v.Expanded(n.Path) {
		b.WriteString(` open`)
	}
	b.WriteString(`><summary><span class="json-tree-key">`)
	b.WriteString(templ.EscapeString(label))
	b.WriteString(`</span> <span class="json-tree-summary">`)
	b.WriteString(templ.EscapeString(f.Summary(n.Value)))
	b.WriteString(`</span></summary>`)

	for _, m := range children(n.Value) {
		child := Node{
			Key:    m.Key,
			Parent: n.Kind,
			Path:   n.Path.Child(m.Key),
			Depth:  n.Depth + 1,
			Kind:   Classify(m.Value),
			Value:  m.Value,
		}
		if err := v.renderNode(b, child, f.Label(n.Kind, m.Key)); err != nil {
			return err
		}
	}

	b.WriteString(`</details>`)
	return nil
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(templ.EscapeString(value))
	b.WriteByte('"')
}

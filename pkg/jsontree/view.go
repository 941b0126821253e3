package jsontree

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// LeafEvent is emitted when a leaf is selected. Path runs from the tree root
// (plus any base path) to the leaf and never includes the title.
type LeafEvent struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	Path  Path   `json:"path"`
}

// Line is one visible row of a view.
type Line struct {
	Depth    int
	Key      string
	Label    string
	Display  string
	Kind     Kind
	Expanded bool
	Path     Path
}

// View is a collapsible presentation of a payload. Every container starts
// expanded and changes state only through Toggle, SetExpanded, ExpandAll or
// CollapseAll. Paths accepted and returned by a View include the base path.
// A View is owned by a single page and is not safe for concurrent use.
type View struct {
	payload   any
	opts      *options
	collapsed map[string]bool
}

// NewView wraps payload. The payload is not copied and must not change while
// the view is in use; call Replace to show a new one.
func NewView(payload any, opts ...Option) *View {
	return &View{
		payload:   payload,
		opts:      newOptions(opts...),
		collapsed: map[string]bool{},
	}
}

// Payload returns the value being displayed.
func (v *View) Payload() any { return v.payload }

// Title returns the root label.
func (v *View) Title() string { return v.opts.title }

// BasePath returns the path prefix of the root node.
func (v *View) BasePath() Path { return v.opts.basePath.Join(nil) }

// Replace swaps the payload and resets every node to expanded.
func (v *View) Replace(payload any) {
	v.payload = payload
	v.collapsed = map[string]bool{}
}

// Lookup returns the node at path.
func (v *View) Lookup(p Path) (Node, error) {
	if !p.HasPrefix(v.opts.basePath) {
		return Node{}, fmt.Errorf("%w: %s", ErrPathNotFound, p)
	}
	rel := p[len(v.opts.basePath):]
	if len(rel) > v.opts.maxDepth {
		return Node{}, fmt.Errorf("%w: %d at %s", ErrMaxDepth, v.opts.maxDepth, p)
	}
	val, err := Resolve(v.payload, rel)
	if err != nil {
		return Node{}, err
	}
	return Node{
		Key:   p.Last(),
		Path:  p.Join(nil),
		Depth: len(rel),
		Kind:  Classify(val),
		Value: val,
		Len:   len(children(val)),
	}, nil
}

// Expanded reports whether the container at path is expanded.
// Unknown paths and leaves report the default state, true.
func (v *View) Expanded(p Path) bool {
	return !v.collapsed[p.Pointer()]
}

// Toggle flips the container at path and returns its new state.
// Only that node changes; descendants keep their own state.
func (v *View) Toggle(p Path) (bool, error) {
	expanded := v.Expanded(p)
	if err := v.SetExpanded(p, !expanded); err != nil {
		return expanded, err
	}
	return !expanded, nil
}

// SetExpanded sets the state of the container at path.
func (v *View) SetExpanded(p Path, expanded bool) error {
	n, err := v.Lookup(p)
	if err != nil {
		return err
	}
	if !n.Kind.IsContainer() {
		return fmt.Errorf("%w: %s", ErrNotContainer, p)
	}
	if expanded {
		delete(v.collapsed, p.Pointer())
	} else {
		v.collapsed[p.Pointer()] = true
	}
	return nil
}

// ExpandAll resets every container to expanded.
func (v *View) ExpandAll() {
	v.collapsed = map[string]bool{}
}

// CollapseAll collapses every container, the root included.
func (v *View) CollapseAll() error {
	collapsed := map[string]bool{}
	err := v.walk(func(n Node) error {
		if n.Kind.IsContainer() {
			collapsed[n.Path.Pointer()] = true
		}
		return nil
	})
	if err != nil {
		return err
	}
	v.collapsed = collapsed
	return nil
}

// Select resolves the leaf at path, passes the event to the select handler
// and returns it.
func (v *View) Select(p Path) (LeafEvent, error) {
	n, err := v.Lookup(p)
	if err != nil {
		return LeafEvent{}, err
	}
	if n.Kind != KindLeaf {
		return LeafEvent{}, fmt.Errorf("%w: %s", ErrNotLeaf, p)
	}

	ev := LeafEvent{Key: n.Key, Value: n.Value, Path: n.Path}
	if v.opts.onSelect != nil {
		v.opts.onSelect(ev)
	}
	return ev, nil
}

// Lines returns the visible rows in display order. Children of collapsed
// containers are omitted.
func (v *View) Lines() ([]Line, error) {
	f := v.opts.formatter
	var lines []Line
	err := v.walk(func(n Node) error {
		line := Line{
			Depth: n.Depth,
			Key:   n.Key,
			Kind:  n.Kind,
			Path:  n.Path,
		}
		if n.Depth == 0 {
			line.Label = v.opts.title
		} else {
			line.Label = f.Label(n.Parent, n.Key)
		}

		if n.Kind.IsContainer() {
			line.Expanded = v.Expanded(n.Path)
			line.Display = f.Summary(n.Value)
		} else {
			line.Display = f.Leaf(n.Value)
		}
		lines = append(lines, line)

		if n.Kind.IsContainer() && !line.Expanded {
			return SkipChildren
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// WriteText renders the visible rows as an indented outline.
func (v *View) WriteText(w io.Writer) error {
	lines, err := v.Lines()
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strings.Repeat("  ", l.Depth))
		switch {
		case l.Kind.IsContainer() && l.Expanded:
			b.WriteString("▾ ")
			b.WriteString(l.Label)
		case l.Kind.IsContainer():
			b.WriteString("▸ ")
			b.WriteString(l.Label)
			b.WriteString(" (")
			b.WriteString(l.Display)
			b.WriteString(")")
		default:
			b.WriteString(l.Label)
			b.WriteString(": ")
			b.WriteString(l.Display)
		}
		b.WriteByte('\n')
	}
	_, err = io.WriteString(w, b.String())
	return err
}

func (v *View) walk(fn WalkFunc) error {
	err := Walk(v.payload, fn, WithBasePath(v.opts.basePath), WithMaxDepth(v.opts.maxDepth))
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

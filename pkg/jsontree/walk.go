package jsontree

import (
	"errors"
	"fmt"
	"strconv"
)

// DefaultMaxDepth bounds every traversal unless overridden with WithMaxDepth.
const DefaultMaxDepth = 64

// Node describes one visited value.
type Node struct {
	Key    string // original key within the parent; "" for the root
	Parent Kind   // kind of the parent container; KindLeaf for the root
	Path   Path
	Depth  int
	Kind   Kind
	Value  any
	Len    int // number of children for containers
}

// IsLeaf reports whether the node is a scalar.
func (n Node) IsLeaf() bool { return n.Kind == KindLeaf }

// WalkFunc is called for every node in pre-order. Returning SkipChildren from
// a container skips its children; any other error stops the walk.
type WalkFunc func(n Node) error

// Walk visits v depth-first with children in insertion order.
func Walk(v any, fn WalkFunc, opts ...Option) error {
	o := newOptions(opts...)
	root := Node{Key: o.basePath.Last(), Path: o.basePath.Join(nil), Kind: Classify(v), Value: v}
	err := walk(root, fn, o.maxDepth)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func walk(n Node, fn WalkFunc, maxDepth int) error {
	if n.Depth > maxDepth {
		return fmt.Errorf("%w: %d at %s", ErrMaxDepth, maxDepth, n.Path)
	}

	members := children(n.Value)
	n.Len = len(members)

	if err := fn(n); err != nil {
		return err
	}
	if !n.Kind.IsContainer() {
		return nil
	}

	for _, m := range members {
		child := Node{
			Key:    m.Key,
			Parent: n.Kind,
			Path:   n.Path.Child(m.Key),
			Depth:  n.Depth + 1,
			Kind:   Classify(m.Value),
			Value:  m.Value,
		}
		if err := walk(child, fn, maxDepth); err != nil {
			if errors.Is(err, SkipChildren) {
				continue
			}
			return err
		}
	}
	return nil
}

// Leaf is a scalar value together with its location.
type Leaf struct {
	Key   string
	Path  Path
	Value any
}

// Flatten returns every leaf of v with its full path. Empty containers have no leaves.
func Flatten(v any, opts ...Option) ([]Leaf, error) {
	var leaves []Leaf
	err := Walk(v, func(n Node) error {
		if n.IsLeaf() {
			leaves = append(leaves, Leaf{Key: n.Key, Path: n.Path, Value: n.Value})
		}
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return leaves, nil
}

// Resolve returns the value addressed by path, relative to v.
func Resolve(v any, path Path) (any, error) {
	cur := v
	for i, key := range path {
		switch c := cur.(type) {
		case Object:
			val, ok := c.Get(key)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path[:i+1])
			}
			cur = val
		case map[string]any:
			val, ok := c[key]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path[:i+1])
			}
			cur = val
		case []any:
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(c) || strconv.Itoa(idx) != key {
				return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path[:i+1])
			}
			cur = c[idx]
		default:
			val, ok := lookup(cur, key)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path[:i+1])
			}
			cur = val
		}
	}
	return cur, nil
}

// lookup finds key among the children of a typed slice or map.
func lookup(v any, key string) (any, bool) {
	for _, m := range children(v) {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

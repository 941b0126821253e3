package jsontree

import "errors"

var (
	// ErrInvalidJSON is returned by Decode when the input is not a single valid JSON value.
	ErrInvalidJSON = errors.New("jsontree: invalid json")

	// ErrMaxDepth is returned when a traversal nests deeper than the configured limit.
	// Cyclic Go values end up here instead of recursing forever.
	ErrMaxDepth = errors.New("jsontree: maximum depth exceeded")

	// ErrPathNotFound is returned when a path does not address a node of the tree.
	ErrPathNotFound = errors.New("jsontree: path not found")

	// ErrNotContainer is returned when an expand/collapse operation targets a leaf.
	ErrNotContainer = errors.New("jsontree: node is not a container")

	// ErrNotLeaf is returned when a selection targets a container.
	ErrNotLeaf = errors.New("jsontree: node is not a leaf")

	// SkipChildren can be returned from a WalkFunc to skip the children of a container.
	SkipChildren = errors.New("jsontree: skip children")
)

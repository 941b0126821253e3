// Package jsontree walks and presents arbitrary JSON-shaped values as a
// collapsible tree.
//
// Values are either leaves (nil, bool, number, string) or containers
// (Object, maps keyed by strings, slices and arrays). Decode parses raw JSON and keeps object keys
// in document order; Normalize converts native Go values. Every node is
// addressed by a Path, the list of original keys (array indices as decimal
// strings) from the root. Walk, Flatten and Resolve traverse and address
// values, bounded by a maximum depth so cyclic Go values fail with
// ErrMaxDepth instead of recursing forever.
//
// A View adds presentation state on top of a payload: every container is
// expanded until toggled, labels are produced by a Formatter, and Select
// reports a LeafEvent carrying the leaf's key, value and full path to the
// registered handler:
//
//	payload, _ := jsontree.Decode(body)
//	view := jsontree.NewView(payload,
//	    jsontree.WithTitle("Contract Analysis"),
//	    jsontree.WithSelectHandler(func(ev jsontree.LeafEvent) {
//	        explain(ev.Key, ev.Value, ev.Path)
//	    }),
//	)
//	_ = view.WriteText(os.Stdout)
//
// View.Component renders the same tree as HTML for templ pages.
package jsontree

package jsontree

type options struct {
	title      string
	basePath   Path
	maxDepth   int
	formatter  *Formatter
	onSelect   func(LeafEvent)
	leafAction func(Path) string
	id         string
}

// Option configures Walk, Flatten and View.
type Option func(*options)

func newOptions(opts ...Option) *options {
	o := &options{
		title:    DefaultTitle,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.formatter == nil {
		o.formatter = DefaultFormatter()
	}
	return o
}

// WithTitle sets the label shown for the root node. The title is never part of a path.
func WithTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.title = title
		}
	}
}

// WithBasePath prefixes every reported path, for trees that display a sub-document.
func WithBasePath(p Path) Option {
	return func(o *options) {
		o.basePath = p.Join(nil)
	}
}

// WithMaxDepth overrides DefaultMaxDepth. Non-positive values are ignored.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithFormatter sets the formatter used for labels and leaf values.
func WithFormatter(f *Formatter) Option {
	return func(o *options) {
		if f != nil {
			o.formatter = f
		}
	}
}

// WithSelectHandler registers the callback fired by View.Select.
func WithSelectHandler(fn func(LeafEvent)) Option {
	return func(o *options) {
		o.onSelect = fn
	}
}

// WithLeafAction sets the datastar expression attached to leaves in HTML output.
func WithLeafAction(fn func(Path) string) Option {
	return func(o *options) {
		o.leafAction = fn
	}
}

// WithID sets the id attribute of the HTML root element.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

package jsontree

import "strings"

// Path is the ordered list of keys from the tree root to a node.
// Array elements are addressed by their decimal index.
type Path []string

// Child returns a new path with key appended. The receiver is never modified.
func (p Path) Child(key string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = key
	return out
}

// Join returns a new path made of p followed by rest.
func (p Path) Join(rest Path) Path {
	out := make(Path, 0, len(p)+len(rest))
	out = append(out, p...)
	return append(out, rest...)
}

// Last returns the final key, or "" for the root.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// HasPrefix reports whether p starts with prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Equal reports whether both paths have the same keys.
func (p Path) Equal(other Path) bool {
	return len(p) == len(other) && p.HasPrefix(other)
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders the path as an RFC 6901 JSON pointer ("" for the root).
func (p Path) Pointer() string {
	var b strings.Builder
	for _, key := range p {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(key))
	}
	return b.String()
}

// String renders the path for logs.
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	return p.Pointer()
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// ParsePointer parses an RFC 6901 JSON pointer.
func ParsePointer(ptr string) (Path, error) {
	if ptr == "" {
		return Path{}, nil
	}
	if ptr[0] != '/' {
		return nil, ErrPathNotFound
	}
	parts := strings.Split(ptr[1:], "/")
	out := make(Path, len(parts))
	for i, part := range parts {
		out[i] = pointerUnescaper.Replace(part)
	}
	return out, nil
}

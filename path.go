package piper

import "strings"

// Path is an immutable, slash-joined sequence of non-empty labels. It is
// used as the printable handle for an Instance (an instance stringifies to
// its path), and its string form is part of the address-resolution cache
// key. Path holds a slice, so it is not comparable and cannot itself be a
// map key.
type Path struct {
	labels []string
}

// NewPath splits s on "/" into a Path. Empty components (leading/trailing
// or doubled slashes) are dropped.
func NewPath(s string) Path {
	return Path{labels: splitLabels(s)}
}

func splitLabels(s string) []string {
	parts := strings.Split(s, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// pathOf builds a Path directly from an already-split, already-validated
// label slice, without re-parsing. The slice is copied defensively.
func pathOf(labels ...string) Path {
	cp := make([]string, len(labels))
	copy(cp, labels)
	return Path{labels: cp}
}

// Child returns a new Path with label appended.
func (p Path) Child(label string) Path {
	out := make([]string, len(p.labels)+1)
	copy(out, p.labels)
	out[len(p.labels)] = label
	return Path{labels: out}
}

// Split returns the path's components. The returned slice is owned by the
// caller and safe to mutate.
func (p Path) Split() []string {
	out := make([]string, len(p.labels))
	copy(out, p.labels)
	return out
}

// Name returns the last component, or "" for an empty path.
func (p Path) Name() string {
	if len(p.labels) == 0 {
		return ""
	}
	return p.labels[len(p.labels)-1]
}

// Len reports the number of components.
func (p Path) Len() int { return len(p.labels) }

// String joins the components with "/".
func (p Path) String() string {
	return strings.Join(p.labels, "/")
}

// Equal reports whether two paths have identical components.
func (p Path) Equal(other Path) bool {
	if len(p.labels) != len(other.labels) {
		return false
	}
	for i := range p.labels {
		if p.labels[i] != other.labels[i] {
			return false
		}
	}
	return true
}

// HasSuffix reports whether other's components equal the last
// other.Len() components of p, in order and without gaps.
func (p Path) HasSuffix(other Path) bool {
	if len(other.labels) > len(p.labels) {
		return false
	}
	offset := len(p.labels) - len(other.labels)
	for i, l := range other.labels {
		if p.labels[offset+i] != l {
			return false
		}
	}
	return true
}

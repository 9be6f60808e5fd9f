package piper

import (
	"strconv"
	"sync/atomic"
)

// Handler transforms a batch of items. It is invoked once per
// process_batch with the leaf instance itself (so it can call Emit, Inject,
// Eject, Recycle, InjectAt, InjectAfter and the logger facade), the
// dequeued batch, and the pipeline's init-time arguments. A handler must
// call one of the routing methods per item it wishes to forward; items it
// neither routes nor recycles are silently dropped.
type Handler func(self *Instance, batch []any, args ...any)

// AllowFunc decides whether an item should enter a segment's queue (true)
// or bypass straight to the segment's drain (false).
type AllowFunc func(item any) bool

var (
	leafCounter      atomic.Uint64
	containerCounter atomic.Uint64
)

// Segment is the immutable, user-visible definition of a pipeline node.
// Build it with Leaf or Container, then Build the resulting tree into a
// runnable Instance.
type Segment struct {
	label     string
	handler   Handler // non-nil iff leaf
	allow     AllowFunc
	batchSize *int
	enabled   *bool // nil: inherit; non-nil: shadows the parent chain
	debug     *int
	verbose   *int
	children  []*Segment // non-empty iff container
	extra     map[string]any
}

// Leaf declares a handler segment. An empty label is auto-generated from a
// process-wide, type-scoped counter ("leaf-1", "leaf-2", ...).
func Leaf(label string, handler Handler) *Segment {
	if label == "" {
		label = autoLabel("leaf", &leafCounter)
	}
	return &Segment{
		label:   label,
		handler: handler,
		extra:   map[string]any{},
	}
}

// Container declares a composing segment over an ordered, non-empty list of
// children. An empty label is auto-generated the same way as Leaf's.
func Container(label string, children ...*Segment) *Segment {
	if label == "" {
		label = autoLabel("container", &containerCounter)
	}
	return &Segment{
		label:    label,
		children: children,
		extra:    map[string]any{},
	}
}

func autoLabel(kind string, counter *atomic.Uint64) string {
	n := counter.Add(1)
	return kind + "-" + strconv.FormatUint(n, 10)
}

// WithAllow attaches an allow predicate; items failing it bypass the queue
// straight to the segment's drain.
func (s *Segment) WithAllow(fn AllowFunc) *Segment {
	s.allow = fn
	return s
}

// WithBatchSize sets this segment's own batch size, overriding whatever an
// ancestor or the global default would otherwise resolve to.
func (s *Segment) WithBatchSize(n int) *Segment {
	s.batchSize = &n
	return s
}

// Disabled marks the segment disabled: it becomes a pure passthrough.
func (s *Segment) Disabled() *Segment {
	v := false
	s.enabled = &v
	return s
}

// WithEnabled explicitly sets this segment's enablement, shadowing whatever
// an ancestor or the global default would otherwise resolve to.
func (s *Segment) WithEnabled(v bool) *Segment {
	s.enabled = &v
	return s
}

// WithDebug sets this segment's own debug verbosity level.
func (s *Segment) WithDebug(n int) *Segment {
	s.debug = &n
	return s
}

// WithVerbose sets this segment's own verbose level.
func (s *Segment) WithVerbose(n int) *Segment {
	s.verbose = &n
	return s
}

// WithExtra attaches a free-form construction-time option.
func (s *Segment) WithExtra(key string, value any) *Segment {
	s.extra[key] = value
	return s
}

// Label returns the segment's label.
func (s *Segment) Label() string { return s.label }

// IsContainer reports whether the segment composes children.
func (s *Segment) IsContainer() bool { return len(s.children) > 0 }

// IsLeaf reports whether the segment wraps a handler.
func (s *Segment) IsLeaf() bool { return !s.IsContainer() }

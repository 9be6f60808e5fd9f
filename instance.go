package piper

import "github.com/google/uuid"

// Overrides are per-instance settings that shadow the descriptor and the
// parent chain. Assigning nil to a field clears that override.
type Overrides struct {
	BatchSize *int
	Enabled   *bool
	Debug     *int
	Verbose   *int
}

// Instance is the runtime incarnation of a Segment: it owns a pending
// queue (or aliases its leftmost leaf's, if it's a container), a drain, and
// — for containers — a label directory and a follower map used by the
// scheduler and the addressing algorithm.
type Instance struct {
	segment  *Segment
	parent   *Instance
	children []*Instance
	path     Path

	queue Queue
	drain Queue

	directory map[string]*Instance
	follower  map[*Instance]Queue

	overrides Overrides
	logger    Logger

	// root-only
	args      []any
	config    *Config
	addrCache *addressCache
	rootID    string
}

// Build constructs a running Instance tree from root, recording args for
// forwarding to every handler invocation. cfg may be nil to use
// NewConfig()'s defaults.
func Build(root *Segment, cfg *Config, args ...any) (*Instance, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	inst, err := buildNode(root, nil, cfg)
	if err != nil {
		return nil, err
	}
	inst.args = args
	inst.config = cfg
	inst.addrCache = newAddressCache()
	inst.rootID = uuid.NewString()
	inst.logger = cfg.LoggerFactory(inst.path)
	resolveDrains(inst, cfg.QueueFactory())
	return inst, nil
}

func buildNode(seg *Segment, parent *Instance, cfg *Config) (*Instance, error) {
	path := pathOf(seg.label)
	if parent != nil {
		path = parent.path.Child(seg.label)
	}

	inst := &Instance{
		segment: seg,
		parent:  parent,
		path:    path,
	}

	if seg.IsLeaf() {
		if seg.handler == nil {
			return nil, newConstructionError(seg.label, "segment has no handler and no children")
		}
		inst.queue = cfg.QueueFactory()
		return inst, nil
	}

	if len(seg.children) == 0 {
		return nil, newConstructionError(seg.label, "container has no children")
	}

	seen := map[string]bool{}
	children := make([]*Instance, 0, len(seg.children))
	directory := make(map[string]*Instance, len(seg.children))
	for _, childSeg := range seg.children {
		if seen[childSeg.label] {
			return nil, newConstructionError(childSeg.label, "duplicate sibling label")
		}
		seen[childSeg.label] = true

		child, err := buildNode(childSeg, inst, cfg)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		directory[childSeg.label] = child
	}

	inst.children = children
	inst.directory = directory
	inst.queue = children[0].queue
	return inst, nil
}

// resolveDrains is the top-down pass that fills in drain (and, for
// containers, the follower map) once the whole tree — and in particular
// the root's fresh output queue — exists. Invariant 2: drain(child) equals
// follower[child], which is next_sibling.queue if a next sibling exists,
// else parent.drain.
func resolveDrains(inst *Instance, drain Queue) {
	inst.drain = drain
	if !inst.segment.IsContainer() {
		return
	}
	inst.follower = make(map[*Instance]Queue, len(inst.children))
	for i, child := range inst.children {
		var childDrain Queue
		if i == len(inst.children)-1 {
			childDrain = inst.drain
		} else {
			childDrain = inst.children[i+1].queue
		}
		inst.follower[child] = childDrain
		resolveDrains(child, childDrain)
	}
}

// IsLeaf reports whether this instance wraps a handler.
func (i *Instance) IsLeaf() bool { return i.segment.IsLeaf() }

// IsContainer reports whether this instance composes children.
func (i *Instance) IsContainer() bool { return i.segment.IsContainer() }

// Path returns the instance's immutable path.
func (i *Instance) Path() Path { return i.path }

// String renders the instance as its path, e.g. "main/pipeA/processA".
func (i *Instance) String() string { return i.path.String() }

// Label returns the instance's own (last-component) label.
func (i *Instance) Label() string { return i.segment.label }

// Parent returns the parent instance, or nil at the root.
func (i *Instance) Parent() *Instance { return i.parent }

// Children returns the child instances in order, or nil for a leaf.
func (i *Instance) Children() []*Instance { return i.children }

// Root walks parent links to the instance with no parent.
func (i *Instance) Root() *Instance {
	n := i
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Args returns the varargs passed to Build, inherited by every descendant.
func (i *Instance) Args() []any {
	return i.Root().args
}

// Overrides exposes the mutable per-instance overrides for direct editing.
func (i *Instance) Overrides() *Overrides {
	return &i.overrides
}

// ResolvedBatchSize implements the batch_size inheritance chain (§4.3).
func (i *Instance) ResolvedBatchSize() int {
	if i.overrides.BatchSize != nil {
		return *i.overrides.BatchSize
	}
	if i.segment.batchSize != nil {
		return *i.segment.batchSize
	}
	if i.parent != nil {
		return i.parent.ResolvedBatchSize()
	}
	return i.Root().config.DefaultBatchSize
}

// ResolvedEnabled implements the enabled inheritance chain (§4.3).
func (i *Instance) ResolvedEnabled() bool {
	if i.overrides.Enabled != nil {
		return *i.overrides.Enabled
	}
	if i.segment.enabled != nil {
		return *i.segment.enabled
	}
	if i.parent != nil {
		return i.parent.ResolvedEnabled()
	}
	return i.Root().config.DefaultEnabled
}

// ResolvedVerbose implements the verbose inheritance chain (§4.3).
func (i *Instance) ResolvedVerbose() int {
	if i.overrides.Verbose != nil {
		return *i.overrides.Verbose
	}
	if i.segment.verbose != nil {
		return *i.segment.verbose
	}
	if i.parent != nil {
		return i.parent.ResolvedVerbose()
	}
	return i.Root().config.DefaultVerbose
}

// ResolvedDebug implements the debug inheritance chain (§4.3), with
// PIPER_DEBUG applied as a final, global override (spec §6 "Environment").
func (i *Instance) ResolvedDebug() int {
	if env := i.Root().config.debugEnvOverride; env != nil {
		return *env
	}
	return i.resolvedDebugChain()
}

func (i *Instance) resolvedDebugChain() int {
	if i.overrides.Debug != nil {
		return *i.overrides.Debug
	}
	if i.segment.debug != nil {
		return *i.segment.debug
	}
	if i.parent != nil {
		return i.parent.resolvedDebugChain()
	}
	return 0
}

// log returns a Logger gated to this instance's resolved debug/verbose
// levels, with this instance's path auto-prepended as context (§4.8).
func (i *Instance) log() *gatedLogger {
	return &gatedLogger{
		inner:   i.Root().logger,
		ctx:     i.path.String(),
		debug:   i.ResolvedDebug(),
		verbose: i.ResolvedVerbose(),
	}
}

// INFO logs at info level; fires when debug>0 or verbose>0.
func (i *Instance) INFO(msg string, items ...any) { i.log().INFO(i.path.String(), msg, items...) }

// DEBUG logs at debug level; fires only when debug>0.
func (i *Instance) DEBUG(msg string, items ...any) { i.log().DEBUG(i.path.String(), msg, items...) }

// WARN logs a non-fatal warning.
func (i *Instance) WARN(msg string, items ...any) { i.log().WARN(i.path.String(), msg, items...) }

// ERROR logs a fatal error, then aborts the current handler invocation by
// panicking with a *HandlerError; the scheduler recovers the panic and
// returns it, wrapped in a *HandlerError, from ProcessBatch.
func (i *Instance) ERROR(msg string, items ...any) {
	i.log().ERROR(i.path.String(), msg, items...)
	panic(newHandlerError(i.path, msg))
}

// Enqueue feeds items into this instance per spec §4.7: a disabled segment
// forwards everything straight to drain; an allow predicate partitions
// items between the queue and drain; otherwise everything goes to the
// queue. A container delegates to its leftmost leaf (invariant 3).
func (i *Instance) Enqueue(items ...any) {
	if len(items) == 0 {
		return
	}

	if !i.ResolvedEnabled() {
		i.INFO("segment disabled, forwarding to drain", items...)
		i.drain.Enqueue(items...)
		return
	}

	if i.segment.allow != nil {
		var allowed, bypassed []any
		for _, item := range items {
			if i.segment.allow(item) {
				allowed = append(allowed, item)
			} else {
				bypassed = append(bypassed, item)
			}
		}
		if len(bypassed) > 0 {
			i.INFO("items rejected by allow predicate, forwarding to drain", bypassed...)
			i.drain.Enqueue(bypassed...)
		}
		if len(allowed) > 0 {
			i.enqueueLocal(allowed)
		}
		return
	}

	i.enqueueLocal(items)
}

func (i *Instance) enqueueLocal(items []any) {
	if i.IsContainer() {
		i.children[0].Enqueue(items...)
		return
	}
	i.queue.Enqueue(items...)
}

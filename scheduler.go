package piper

// Pressure is the scheduling metric from spec §4.4: 0 when a leaf has
// nothing pending, else max(1, floor(100*pending/batch_size)) — saturating
// over 100% when the leaf is overfull. A container's pressure is the max
// pressure of its children.
func Pressure(inst *Instance) int {
	if inst.IsLeaf() {
		pending := inst.queue.Ready()
		if pending == 0 {
			return 0
		}
		bs := inst.ResolvedBatchSize()
		if bs <= 0 {
			bs = 1
		}
		p := (100 * pending) / bs
		if p < 1 {
			p = 1
		}
		return p
	}
	max := 0
	for _, child := range inst.children {
		if p := Pressure(child); p > max {
			max = p
		}
	}
	return max
}

// ProcessBatch advances the pipeline by exactly one leaf handler
// invocation, per spec §4.4: a container prefers the rightmost child at
// full pressure (>=100), else the child under the most pressure, ties
// broken towards the leftmost child. It reports whether any work was done
// and propagates a HandlerError if the chosen leaf's handler panicked.
func ProcessBatch(inst *Instance) (bool, error) {
	if inst.IsLeaf() {
		return processLeafBatch(inst)
	}

	fullIdx := -1
	for idx := len(inst.children) - 1; idx >= 0; idx-- {
		if Pressure(inst.children[idx]) >= 100 {
			fullIdx = idx
			break
		}
	}
	if fullIdx >= 0 {
		return ProcessBatch(inst.children[fullIdx])
	}

	best := 0
	bestPressure := Pressure(inst.children[0])
	for idx := 1; idx < len(inst.children); idx++ {
		if p := Pressure(inst.children[idx]); p > bestPressure {
			bestPressure = p
			best = idx
		}
	}
	return ProcessBatch(inst.children[best])
}

func processLeafBatch(leaf *Instance) (ran bool, err error) {
	n := leaf.ResolvedBatchSize()
	batch := leaf.queue.Dequeue(n)
	if len(batch) == 0 {
		return false, nil
	}

	if sink := leaf.Root().config.metrics; sink != nil {
		sink.ObserveBatch(leaf.path.String(), len(batch))
		sink.ObservePressure(leaf.path.String(), Pressure(leaf))
	}

	// A disabled leaf is a pure passthrough (spec §4.7): items that reached
	// its queue via drain-aliasing, not just those Enqueue saw directly,
	// skip the handler entirely and go straight to drain.
	if !leaf.ResolvedEnabled() {
		leaf.INFO("segment disabled, forwarding batch to drain", batch...)
		leaf.drain.Enqueue(batch...)
		return true, nil
	}

	handler := leaf.segment.handler
	if handler == nil {
		return false, newInvariantViolationError("leaf " + leaf.path.String() + " has no handler")
	}

	err = runHandler(leaf, handler, batch)
	return true, err
}

// runHandler invokes a leaf's handler, recovering a panic into a
// HandlerError exactly as the handler-error policy in spec §7 describes:
// the scheduler never self-heals, it only converts a panic into the typed
// error so callers can inspect it with errors.As.
func runHandler(leaf *Instance, handler Handler, batch []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newHandlerError(leaf.path, r)
		}
	}()
	handler(leaf, batch, leaf.Args()...)
	return nil
}

// HasPending reports whether any leaf descendant of this instance (or the
// instance itself, if it is a leaf) has items queued.
func (i *Instance) HasPending() bool {
	return i.Pending() > 0
}

// Pending sums ready() across all leaf descendants (spec invariant 5).
func (i *Instance) Pending() int {
	if i.IsLeaf() {
		return i.queue.Ready()
	}
	total := 0
	for _, child := range i.children {
		total += child.Pending()
	}
	return total
}

// Ready reports the size of the root's output drain. Calling it on a
// non-root instance reports its own drain's size.
func (i *Instance) Ready() int {
	return i.drain.Ready()
}

// Prepare runs process_batch at the root until at least n items are ready
// at the root drain or no work remains, then returns the ready count.
// n defaults to 1 for n<=0.
func (i *Instance) Prepare(n int) (int, error) {
	root := i.Root()
	if n <= 0 {
		n = 1
	}
	for root.HasPending() && root.Ready() < n {
		ran, err := ProcessBatch(root)
		if err != nil {
			return root.Ready(), err
		}
		if !ran {
			break
		}
	}
	return root.Ready(), nil
}

// Flush runs process_batch at the root until no items are pending anywhere.
func (i *Instance) Flush() error {
	root := i.Root()
	for root.HasPending() {
		ran, err := ProcessBatch(root)
		if err != nil {
			return err
		}
		if !ran {
			break
		}
	}
	return nil
}

// IsExhausted reports whether no items will ever become ready without new
// input: prepare(1) == 0.
func (i *Instance) IsExhausted() (bool, error) {
	ready, err := i.Prepare(1)
	if err != nil {
		return false, err
	}
	return ready == 0, nil
}

// Dequeue implicitly calls Prepare(n), then pulls up to n ready items from
// the root drain.
func (i *Instance) Dequeue(n int) ([]any, error) {
	root := i.Root()
	if n <= 0 {
		n = 1
	}
	if _, err := root.Prepare(n); err != nil {
		return nil, err
	}
	return root.drain.Dequeue(n), nil
}

package piper

// Emit pushes items onto self's drain — the next stage. Called from within
// a handler running on this instance.
func (i *Instance) Emit(items ...any) {
	if len(items) == 0 {
		return
	}
	i.drain.Enqueue(items...)
}

// Eject pushes items onto the parent's drain, skipping the rest of the
// enclosing sub-pipeline. With no parent (the root itself), it behaves like
// Emit.
func (i *Instance) Eject(items ...any) {
	if len(items) == 0 {
		return
	}
	if i.parent != nil {
		i.parent.drain.Enqueue(items...)
		return
	}
	i.drain.Enqueue(items...)
}

// Inject pushes items onto the parent's queue, re-running the enclosing
// sub-pipeline from its head. With no parent, it re-enters self. Per spec
// §9's resolved ambiguity, this funnels through Enqueue so allow/enabled
// gating is re-applied exactly as a direct external Enqueue would be.
func (i *Instance) Inject(items ...any) {
	if len(items) == 0 {
		return
	}
	if i.parent != nil {
		i.parent.Enqueue(items...)
		return
	}
	i.Enqueue(items...)
}

// Recycle requeues items at the head of self's own queue, re-running the
// current segment with these items first in line. It bypasses allow/enabled
// gating — it targets the raw queue, not Enqueue.
func (i *Instance) Recycle(items ...any) {
	if len(items) == 0 {
		return
	}
	i.queue.Requeue(items...)
}

// InjectAt resolves addr with FindSegment and enqueues items there (gated,
// like a direct Enqueue on the target). It returns a *RoutingError if addr
// does not resolve.
func (i *Instance) InjectAt(addr string, items ...any) error {
	target, err := i.FindSegment(addr)
	if err != nil {
		return err
	}
	target.Enqueue(items...)
	return nil
}

// InjectAfter resolves addr and pushes items directly onto the resolved
// segment's drain, skipping its own queue entirely. It returns a
// *RoutingError if addr does not resolve.
func (i *Instance) InjectAfter(addr string, items ...any) error {
	target, err := i.FindSegment(addr)
	if err != nil {
		return err
	}
	target.drain.Enqueue(items...)
	return nil
}

// Package piper provides an in-process, batched data-flow pipeline engine.
//
// # Overview
//
// A pipeline is a tree of named segments: leaf segments ("processes") wrap a
// handler function that transforms batches of items; interior segments
// ("containers") compose children in order. Building the tree produces an
// Instance — a runnable incarnation that accepts items, drives them through
// staged handlers in configurable batch sizes, and produces results for the
// caller to drain.
//
// # Basic usage
//
// Describe the pipeline with Segment builders:
//
//	double := piper.Leaf("double", func(self *piper.Instance, batch []any, args ...any) {
//	    for _, item := range batch {
//	        self.Emit(item.(int) * 2)
//	    }
//	}).WithBatchSize(2)
//
//	root := piper.Container("main", double)
//
// Build it into a running instance and drive it:
//
//	inst, err := piper.Build(root, nil)
//	inst.Enqueue(1, 2, 3)
//	inst.Flush()
//	out, err := inst.Dequeue(3) // []any{2, 4, 6}
//
// # Addressing
//
// Handlers reach other segments by label or slash-joined path through the
// Instance passed into them: self.InjectAt("main/other", item) resolves the
// address with FindSegment and funnels the item through the target's
// Enqueue gating (allow/enabled), exactly as a direct Enqueue would.
//
// # Scheduling
//
// The scheduler is pressure-driven: at each container, the child closest to
// a full batch (pressure >= 100) is preferred, breaking towards the segment
// nearest the drain; otherwise the child under the most backlog runs next,
// ties broken towards the leftmost child. See scheduler.go for the exact
// algorithm and rationale.
//
// # Swappable collaborators
//
// The Queue (C1) and Logger (C8) interfaces are the only collaborators the
// engine depends on; Config.QueueFactory and Config.LoggerFactory let a
// caller swap in their own, e.g. the bundled queueredis.Queue backed by
// Redis instead of the in-memory default.
//
// # Thread safety
//
// An Instance is not safe for concurrent external mutation: enqueue,
// dequeue, prepare and flush must be serialized by the caller. Exactly one
// handler runs at a time within a pipeline.
package piper

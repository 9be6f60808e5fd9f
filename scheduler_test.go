package piper

import "testing"

func doubleHandler(self *Instance, batch []any, args ...any) {
	for _, item := range batch {
		self.Emit(item.(int) * 2)
	}
}

func buildDoublingPipeline(t *testing.T, batchSize int) *Instance {
	t.Helper()
	root := Container("main", Leaf("double", doubleHandler).WithBatchSize(batchSize))
	inst, err := Build(root, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return inst
}

func TestPressureZeroWhenEmpty(t *testing.T) {
	inst := buildDoublingPipeline(t, 10)
	double := inst.directory["double"]
	if got := Pressure(double); got != 0 {
		t.Fatalf("Pressure() = %d, want 0", got)
	}
}

func TestPressureScalesWithBacklog(t *testing.T) {
	inst := buildDoublingPipeline(t, 10)
	double := inst.directory["double"]
	double.queue.Enqueue(1, 2, 3)
	if got := Pressure(double); got != 30 {
		t.Fatalf("Pressure() = %d, want 30", got)
	}
}

func TestPressureSaturatesOverFull(t *testing.T) {
	inst := buildDoublingPipeline(t, 2)
	double := inst.directory["double"]
	double.queue.Enqueue(1, 2, 3, 4, 5)
	if got := Pressure(double); got < 100 {
		t.Fatalf("Pressure() = %d, want >= 100", got)
	}
}

func TestPressureNonEmptyBelowOneBatchIsAtLeastOne(t *testing.T) {
	inst := buildDoublingPipeline(t, 100)
	double := inst.directory["double"]
	double.queue.Enqueue(1)
	if got := Pressure(double); got != 1 {
		t.Fatalf("Pressure() = %d, want 1 (max(1, floor(...)) clamp)", got)
	}
}

func TestContainerPressureIsMaxOfChildren(t *testing.T) {
	root := Container("main",
		Leaf("a", doubleHandler).WithBatchSize(10),
		Leaf("b", doubleHandler).WithBatchSize(10),
	)
	inst, err := Build(root, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	inst.directory["a"].queue.Enqueue(1)
	inst.directory["b"].queue.Enqueue(1, 2, 3, 4, 5)

	if got := Pressure(inst); got != Pressure(inst.directory["b"]) {
		t.Fatalf("container Pressure() = %d, want max child pressure %d", got, Pressure(inst.directory["b"]))
	}
}

func TestProcessBatchRunsLeafHandler(t *testing.T) {
	inst := buildDoublingPipeline(t, 10)
	inst.Enqueue(1, 2, 3)

	ran, err := ProcessBatch(inst)
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if !ran {
		t.Fatal("expected ProcessBatch to report it ran")
	}
	if got := inst.drain.Ready(); got != 3 {
		t.Fatalf("drain.Ready() = %d, want 3", got)
	}
}

func TestProcessBatchOnEmptyPipelineReportsNoWork(t *testing.T) {
	inst := buildDoublingPipeline(t, 10)
	ran, err := ProcessBatch(inst)
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if ran {
		t.Fatal("expected ProcessBatch to report no work on an empty pipeline")
	}
}

func TestProcessBatchPropagatesHandlerPanic(t *testing.T) {
	root := Container("main", Leaf("boom", func(self *Instance, batch []any, args ...any) {
		panic("kaboom")
	}))
	inst, err := Build(root, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	inst.Enqueue(1)

	_, err = ProcessBatch(inst)
	if err == nil {
		t.Fatal("expected a HandlerError from the panicking handler")
	}
	if _, ok := err.(*HandlerError); !ok {
		t.Fatalf("expected *HandlerError, got %T", err)
	}
}

func TestProcessBatchPrefersRightmostFullChild(t *testing.T) {
	root := Container("main",
		Leaf("a", doubleHandler).WithBatchSize(2),
		Leaf("b", doubleHandler).WithBatchSize(2),
	)
	inst, err := Build(root, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	inst.directory["a"].queue.Enqueue(1, 2)
	inst.directory["b"].queue.Enqueue(1, 2)

	if _, err := ProcessBatch(inst); err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if got := inst.directory["b"].queue.Ready(); got != 0 {
		t.Fatalf("expected the rightmost full child (b) to run first, b.queue.Ready() = %d", got)
	}
	if got := inst.directory["a"].queue.Ready(); got != 2 {
		t.Fatalf("expected a to be untouched, a.queue.Ready() = %d", got)
	}
}

func TestFlushDrainsEverything(t *testing.T) {
	inst := buildDoublingPipeline(t, 2)
	inst.Enqueue(1, 2, 3, 4, 5)
	if err := inst.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if inst.HasPending() {
		t.Fatal("expected no pending items after Flush")
	}
	if got := inst.Ready(); got != 5 {
		t.Fatalf("Ready() = %d, want 5", got)
	}
}

func TestIsExhaustedOnEmptyPipeline(t *testing.T) {
	inst := buildDoublingPipeline(t, 10)
	exhausted, err := inst.IsExhausted()
	if err != nil {
		t.Fatalf("IsExhausted: %v", err)
	}
	if !exhausted {
		t.Fatal("expected an empty pipeline to be exhausted")
	}
}

func TestDequeueRunsEnoughBatchesToFillRequest(t *testing.T) {
	inst := buildDoublingPipeline(t, 2)
	inst.Enqueue(1, 2, 3)
	out, err := inst.Dequeue(3)
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	want := []any{2, 4, 6}
	if len(out) != len(want) {
		t.Fatalf("Dequeue(3) = %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("Dequeue(3) = %v, want %v", out, want)
		}
	}
}

package piper

import "testing"

func TestSliceQueueEnqueueDequeueOrder(t *testing.T) {
	q := NewSliceQueue()
	q.Enqueue(1, 2, 3)
	if got := q.Ready(); got != 3 {
		t.Fatalf("Ready() = %d, want 3", got)
	}
	out := q.Dequeue(2)
	if len(out) != 2 || out[0] != 1 || out[1] != 2 {
		t.Fatalf("Dequeue(2) = %v, want [1 2]", out)
	}
	if got := q.Ready(); got != 1 {
		t.Fatalf("Ready() = %d, want 1", got)
	}
}

func TestSliceQueueDequeueMoreThanAvailable(t *testing.T) {
	q := NewSliceQueue()
	q.Enqueue("a")
	out := q.Dequeue(10)
	if len(out) != 1 || out[0] != "a" {
		t.Fatalf("Dequeue(10) = %v, want [a]", out)
	}
	if got := q.Ready(); got != 0 {
		t.Fatalf("Ready() = %d, want 0", got)
	}
}

func TestSliceQueueDequeueEmpty(t *testing.T) {
	q := NewSliceQueue()
	out := q.Dequeue(5)
	if len(out) != 0 {
		t.Fatalf("Dequeue(5) on empty queue = %v, want empty", out)
	}
}

func TestSliceQueueRequeuePrependsInOrder(t *testing.T) {
	q := NewSliceQueue()
	q.Enqueue("c", "d")
	q.Requeue("a", "b")
	out := q.Dequeue(4)
	want := []any{"a", "b", "c", "d"}
	if len(out) != len(want) {
		t.Fatalf("Dequeue(4) = %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("Dequeue(4) = %v, want %v", out, want)
		}
	}
}

func TestSliceQueueRequeueEmptyIsNoop(t *testing.T) {
	q := NewSliceQueue()
	q.Enqueue(1)
	q.Requeue()
	if got := q.Ready(); got != 1 {
		t.Fatalf("Ready() = %d, want 1", got)
	}
}

package piper

import "testing"

func buildAddressingTree(t *testing.T) *Instance {
	t.Helper()
	root := Container("main",
		Container("ingest", Leaf("parse", noopHandler), Leaf("validate", noopHandler)),
		Container("transform", Leaf("double", noopHandler), Leaf("square", noopHandler)),
		Leaf("sink", noopHandler),
	)
	inst, err := Build(root, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return inst
}

func TestFindSegmentSibling(t *testing.T) {
	inst := buildAddressingTree(t)
	double := inst.directory["transform"].directory["double"]

	got, err := double.FindSegment("square")
	if err != nil {
		t.Fatalf("FindSegment: %v", err)
	}
	if got.Path().String() != "main/transform/square" {
		t.Fatalf("resolved to %s, want main/transform/square", got.Path())
	}
}

func TestFindSegmentAscendsPastEmptyBranch(t *testing.T) {
	inst := buildAddressingTree(t)
	double := inst.directory["transform"].directory["double"]

	got, err := double.FindSegment("sink")
	if err != nil {
		t.Fatalf("FindSegment: %v", err)
	}
	if got.Path().String() != "main/sink" {
		t.Fatalf("resolved to %s, want main/sink", got.Path())
	}
}

func TestFindSegmentSlashPath(t *testing.T) {
	inst := buildAddressingTree(t)
	double := inst.directory["transform"].directory["double"]

	got, err := double.FindSegment("ingest/parse")
	if err != nil {
		t.Fatalf("FindSegment: %v", err)
	}
	if got.Path().String() != "main/ingest/parse" {
		t.Fatalf("resolved to %s, want main/ingest/parse", got.Path())
	}
}

func TestFindSegmentUnresolvedReturnsRoutingError(t *testing.T) {
	inst := buildAddressingTree(t)
	double := inst.directory["transform"].directory["double"]

	_, err := double.FindSegment("nonexistent")
	if err == nil {
		t.Fatal("expected a RoutingError")
	}
	if _, ok := err.(*RoutingError); !ok {
		t.Fatalf("expected *RoutingError, got %T", err)
	}
}

func TestFindSegmentTieBreaksLexicographically(t *testing.T) {
	root := Container("main",
		Container("b", Leaf("x", noopHandler)),
		Container("a", Leaf("x", noopHandler)),
		Leaf("trigger", noopHandler),
	)
	inst, err := Build(root, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	trigger := inst.directory["trigger"]

	got, err := trigger.FindSegment("x")
	if err != nil {
		t.Fatalf("FindSegment: %v", err)
	}
	if got.Path().String() != "main/a/x" {
		t.Fatalf("resolved to %s, want main/a/x (lexicographically nearest)", got.Path())
	}
}

func TestFindSegmentStandaloneLeafResolvesOnlyItself(t *testing.T) {
	standalone := Leaf("only", noopHandler)
	inst, err := Build(standalone, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, err := inst.FindSegment("only")
	if err != nil {
		t.Fatalf("FindSegment(own label): %v", err)
	}
	if got != inst {
		t.Fatal("expected standalone leaf to resolve to itself")
	}

	if _, err := inst.FindSegment("elsewhere"); err == nil {
		t.Fatal("expected a standalone leaf to fail to resolve any other address")
	}
}

func TestFindSegmentIsMemoized(t *testing.T) {
	inst := buildAddressingTree(t)
	double := inst.directory["transform"].directory["double"]

	first, err := double.FindSegment("sink")
	if err != nil {
		t.Fatalf("FindSegment: %v", err)
	}
	second, err := double.FindSegment("sink")
	if err != nil {
		t.Fatalf("FindSegment (cached): %v", err)
	}
	if first != second {
		t.Fatal("expected repeated resolution of the same address to return the same instance")
	}
}

// Package visual renders a pipeline's segment tree as ASCII art, for
// logging and debugging. It is grounded on the teacher's
// extensions/graph_debug.go, which builds the same kind of
// treedrawer.Tree recursively from a dependency graph.
package visual

import (
	"strconv"

	"github.com/m1gwings/treedrawer/tree"

	"github.com/dataflowhq/piper"
)

// DebugTree renders root and every descendant as an indented ASCII tree,
// one node per segment labelled with the segment's label. A leaf with
// queued items is also annotated with its pressure ("full" at 100 or more),
// so a stuck pipeline's hot spot is visible at a glance; containers carry
// no annotation.
func DebugTree(root *piper.Instance) string {
	t := buildTree(root)
	if t == nil {
		return ""
	}
	return t.String()
}

func buildTree(inst *piper.Instance) *tree.Tree {
	label := inst.Label()
	if inst.IsLeaf() {
		label += pressureSuffix(inst)
	}
	node := tree.NewTree(tree.NodeString(label))

	for _, child := range inst.Children() {
		childTree := buildTree(child)
		addChild(node, childTree)
	}
	return node
}

func addChild(parent *tree.Tree, child *tree.Tree) {
	newChild := parent.AddChild(child.Val())
	for _, grandchild := range child.Children() {
		addChild(newChild, grandchild)
	}
}

func pressureSuffix(inst *piper.Instance) string {
	p := piper.Pressure(inst)
	if p == 0 {
		return ""
	}
	return " (" + pressureLabel(p) + ")"
}

func pressureLabel(p int) string {
	if p >= 100 {
		return "full"
	}
	return strconv.Itoa(p) + "%"
}

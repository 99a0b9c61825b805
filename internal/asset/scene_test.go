package asset

import (
	"testing"

	"github.com/Faultbox/skinlab/pkg/math"
)

func testTree() *Node {
	leaf := func(name string) *Node { return &Node{Name: name, Transform: math.Identity()} }
	return &Node{
		Name:      "Scene",
		Transform: math.Identity(),
		Children: []*Node{
			{Name: "Deep", Children: []*Node{{Name: "Target", Children: []*Node{leaf("Inner")}}}},
			{Name: "Target", Children: []*Node{leaf("Shallow")}},
		},
	}
}

func TestFindNodeBreadthFirst(t *testing.T) {
	root := testTree()

	found := FindNode(root, "Target")
	if found == nil {
		t.Fatal("Target not found")
	}
	// The shallower of two equally named nodes wins.
	if len(found.Children) != 1 || found.Children[0].Name != "Shallow" {
		t.Errorf("expected the depth-1 Target, got one with children %+v", found.Children)
	}

	if FindNode(root, "Missing") != nil {
		t.Error("expected nil for a missing name")
	}
	if FindNode(nil, "Scene") != nil {
		t.Error("expected nil for a nil root")
	}
}

func TestWalkOrderAndDepth(t *testing.T) {
	var names []string
	var depths []int
	Walk(testTree(), func(n *Node, depth int) {
		names = append(names, n.Name)
		depths = append(depths, depth)
	})

	wantNames := []string{"Scene", "Deep", "Target", "Inner", "Target", "Shallow"}
	wantDepths := []int{0, 1, 2, 3, 1, 2}
	if len(names) != len(wantNames) {
		t.Fatalf("visited %v", names)
	}
	for i := range wantNames {
		if names[i] != wantNames[i] || depths[i] != wantDepths[i] {
			t.Errorf("visit %d: got %s@%d, want %s@%d", i, names[i], depths[i], wantNames[i], wantDepths[i])
		}
	}

	if got := CountNodes(nil); got != 0 {
		t.Errorf("CountNodes(nil) = %d", got)
	}
}

func TestSceneValidate(t *testing.T) {
	var nilScene *Scene
	if err := nilScene.Validate(); err != ErrNilScene {
		t.Errorf("nil scene: got %v", err)
	}
	if err := (&Scene{}).Validate(); err != ErrIncompleteScene {
		t.Errorf("rootless scene: got %v", err)
	}
	if err := (&Scene{Root: testTree(), Incomplete: true}).Validate(); err != ErrIncompleteScene {
		t.Errorf("incomplete scene: got %v", err)
	}
	if err := (&Scene{Root: testTree()}).Validate(); err != nil {
		t.Errorf("valid scene: got %v", err)
	}
}

func TestTextureRefEmpty(t *testing.T) {
	if !(TextureRef{}).Empty() {
		t.Error("zero ref should be empty")
	}
	if (TextureRef{Path: "a.png"}).Empty() || (TextureRef{Data: []byte{1}}).Empty() {
		t.Error("ref with path or data should not be empty")
	}
}

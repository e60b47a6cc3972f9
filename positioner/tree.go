package positioner

import (
	"errors"
	"fmt"

	"github.com/lavenderwm/lavender/desktop"
	"github.com/lavenderwm/lavender/geometry"
)

type NodeType int
type Direction int

const (
	NodeTypeLeaf = NodeType(iota)
	NodeTypeBranch
)

const (
	DirectionVertical = Direction(iota)
	DirectionHorizontal
)

type (
	// A tiling tree. One tree per workspace.
	// Children resolution calculated down the tree.
	Tree struct {
		Root        Node
		LastFocused *Leaf
	}

	// Wrapper container for leafs or branches
	Node struct {
		Type   NodeType
		Branch *Branch // Must be set if type is NodeTypeBranch, ignored otherwise
		Leaf   *Leaf   // Must be set if type is NodeTypeLeaf, ignored otherwise
	}

	Branch struct {
		Direction  Direction // Children stack top/bottom if vertical, left/right otherwise
		ChildLeft  Node      // Is the top child if split vertically
		ChildRight Node      // Is the bottom child if split vertically
		AspectLeft int       // Percentage the left child has of the container space
	}

	Leaf struct {
		Window *desktop.Window // nil marks an empty slot
	}
)

func NewTree() Tree {
	baseLeaf := &Leaf{}
	return Tree{
		Root:        Node{Type: NodeTypeLeaf, Leaf: baseLeaf},
		LastFocused: baseLeaf,
	}
}

// Find returns the leaf holding the window.
func (t *Tree) Find(w *desktop.Window) *Leaf {
	leaf, _ := findLeaf(&t.Root, w)
	return leaf
}

// findLeaf returns the leaf holding w plus the trace of nodes from the
// leaf up to the root.
func findLeaf(node *Node, w *desktop.Window) (*Leaf, []*Node) {
	switch node.Type {
	case NodeTypeLeaf:
		if node.Leaf.Window == w {
			return node.Leaf, []*Node{node}
		}
	case NodeTypeBranch:
		if leaf, trace := findLeaf(&node.Branch.ChildLeft, w); leaf != nil {
			return leaf, append(trace, node)
		}
		if leaf, trace := findLeaf(&node.Branch.ChildRight, w); leaf != nil {
			return leaf, append(trace, node)
		}
	}
	return nil, nil
}

// AddWindow splits the last focused leaf, keeping it as the left child and
// putting the new window in the right one. Split direction alternates with
// depth.
func (t *Tree) AddWindow(w *desktop.Window) {
	if t.LastFocused.Window == nil {
		// Reuse the empty slot.
		t.LastFocused.Window = w
		return
	}

	_, trace := findLeaf(&t.Root, t.LastFocused.Window)
	direction := DirectionVertical
	if len(trace) > 1 && trace[1].Branch.Direction == DirectionVertical {
		direction = DirectionHorizontal
	}

	newLeaf := &Leaf{Window: w}
	branch := &Branch{
		Direction:  direction,
		ChildLeft:  Node{Type: NodeTypeLeaf, Leaf: t.LastFocused},
		ChildRight: Node{Type: NodeTypeLeaf, Leaf: newLeaf},
		AspectLeft: 50,
	}

	if len(trace) == 0 {
		// Last focused leaf vanished; start over from the root.
		t.Root = Node{Type: NodeTypeBranch, Branch: branch}
	} else {
		*trace[0] = Node{Type: NodeTypeBranch, Branch: branch}
	}
	t.LastFocused = newLeaf
}

// RemoveWindow drops the window's leaf and replaces the parent branch with
// the sibling subtree.
func (t *Tree) RemoveWindow(w *desktop.Window) {
	leaf, trace := findLeaf(&t.Root, w)
	if leaf == nil {
		return
	}
	leaf.Window = nil

	if len(trace) < 2 {
		// Root leaf, keep it as the empty slot.
		t.LastFocused = leaf
		return
	}

	parent := trace[1]
	var sibling Node
	if parent.Branch.ChildLeft.Leaf == leaf {
		sibling = parent.Branch.ChildRight
	} else {
		sibling = parent.Branch.ChildLeft
	}
	*parent = sibling

	t.LastFocused = firstLeaf(parent)
}

func firstLeaf(node *Node) *Leaf {
	for node.Type == NodeTypeBranch {
		node = &node.Branch.ChildLeft
	}
	return node.Leaf
}

// Apply walks the tree splitting the given space along each branch and
// hands every occupied leaf its computed rect.
func (t *Tree) Apply(space geometry.Rect, place func(w *desktop.Window, r geometry.Rect)) {
	applyNode(&t.Root, space, place)
}

func applyNode(node *Node, space geometry.Rect, place func(w *desktop.Window, r geometry.Rect)) {
	switch node.Type {
	case NodeTypeLeaf:
		if node.Leaf.Window != nil {
			place(node.Leaf.Window, space)
		}
	case NodeTypeBranch:
		b := node.Branch
		left, right := splitRect(space, b.Direction, b.AspectLeft)
		applyNode(&b.ChildLeft, left, place)
		applyNode(&b.ChildRight, right, place)
	}
}

func splitRect(space geometry.Rect, dir Direction, aspectLeft int) (geometry.Rect, geometry.Rect) {
	left := space
	right := space
	if dir == DirectionVertical {
		left.Size.H = space.Size.H * aspectLeft / 100
		right.Loc.Y += left.Size.H
		right.Size.H = space.Size.H - left.Size.H
	} else {
		left.Size.W = space.Size.W * aspectLeft / 100
		right.Loc.X += left.Size.W
		right.Size.W = space.Size.W - left.Size.W
	}
	return left, right
}

func checkNode(node *Node) error {
	if node == nil {
		return errors.New("node is nil")
	}
	switch node.Type {
	case NodeTypeLeaf:
		if node.Leaf == nil {
			return errors.New("leaf is nil")
		}
		return nil
	case NodeTypeBranch:
		if node.Branch == nil {
			return errors.New("stored branch is nil")
		}
		if node.Branch.AspectLeft < 0 || node.Branch.AspectLeft > 100 {
			return fmt.Errorf("invalid aspect: %d", node.Branch.AspectLeft)
		}
		if err := checkNode(&node.Branch.ChildLeft); err != nil {
			return fmt.Errorf("left child: %w", err)
		}
		if err := checkNode(&node.Branch.ChildRight); err != nil {
			return fmt.Errorf("right child: %w", err)
		}
		return nil
	}
	return errors.New("invalid node type")
}

package node

import (
	"slices"
	"weak"

	"github.com/hupe1980/stagekit/behavior"
	"github.com/hupe1980/stagekit/core"
)

// Type distinguishes plain containers from the live root and scene roots.
type Type int

const (
	// TypeContainer is an ordinary node.
	TypeContainer Type = iota
	// TypeStage is the live root. Subtrees under a stage are on screen.
	TypeStage
	// TypeScene is the root of a scene.
	TypeScene
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeStage:
		return "stage"
	case TypeScene:
		return "scene"
	default:
		return "container"
	}
}

// Lifecycle names fired on nodes.
const (
	OnNodeAdded         = "OnNodeAdded"
	OnChildNodeAdded    = "OnChildNodeAdded"
	OnDescendantAdded   = "OnDescendantAdded"
	OnNodeRemoved       = "OnNodeRemoved"
	OnChildNodeRemoved  = "OnChildNodeRemoved"
	OnDescendantRemoved = "OnDescendantRemoved"
	OnSceneLoad         = "OnSceneLoad"
	OnSceneBeforeOpen   = "OnSceneBeforeOpen"
)

var (
	nodeLifecycles  = behavior.Declare(OnNodeAdded, OnChildNodeAdded, OnDescendantAdded, OnNodeRemoved, OnChildNodeRemoved, OnDescendantRemoved)
	sceneLifecycles = behavior.Declare(OnSceneLoad, OnSceneBeforeOpen)
)

// Node is a scene-graph node and a primary behavior host. Back-references to
// the stage and the innermost enclosing scene are weak, so a detached subtree
// never keeps the live tree alive or the other way round.
type Node struct {
	behavior.Capability
	id        string
	name      string
	typ       Type
	parent    *Node
	children  []*Node
	stage     weak.Pointer[Node]
	scene     weak.Pointer[Node]
	destroyed bool
}

// New creates a detached container node.
func New(name string) *Node {
	return newNode(name, TypeContainer)
}

// NewScene creates a detached scene root.
func NewScene(name string) *Node {
	return newNode(name, TypeScene)
}

// NewStage creates a live root.
func NewStage() *Node {
	n := newNode("stage", TypeStage)
	n.stage = weak.Make(n)
	return n
}

func newNode(name string, typ Type) *Node {
	n := &Node{id: core.NewID(), name: name, typ: typ}
	n.Bind(n, behavior.Primary)
	return n
}

// Lifecycles declares the membership lifecycles, plus scene loading for
// scene roots.
func (n *Node) Lifecycles() []string {
	if n.typ == TypeScene {
		return append(slices.Clone(nodeLifecycles), sceneLifecycles...)
	}
	return nodeLifecycles
}

// ID returns the node id.
func (n *Node) ID() string { return n.id }

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// SetName renames the node.
func (n *Node) SetName(name string) { n.name = name }

// Type returns the node type.
func (n *Node) Type() Type { return n.typ }

// IsStage reports whether n is a live root.
func (n *Node) IsStage() bool { return n.typ == TypeStage }

// IsScene reports whether n is a scene root.
func (n *Node) IsScene() bool { return n.typ == TypeScene }

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the children in order.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// ChildAt returns the child at index i, or nil when out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Stage returns the live root n belongs to, or nil when n is off screen.
func (n *Node) Stage() *Node { return n.stage.Value() }

// Scene returns the innermost scene enclosing n, or nil.
func (n *Node) Scene() *Node { return n.scene.Value() }

// OnStage reports whether n is part of a live tree.
func (n *Node) OnStage() bool { return n.Stage() != nil }

// Destroyed reports whether Destroy has run.
func (n *Node) Destroyed() bool { return n.destroyed }

// Root returns the topmost ancestor.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth first, parents before children.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
}

// FindNode returns the first node named name in n's subtree.
func (n *Node) FindNode(name string) *Node {
	var found *Node
	n.Walk(func(cur *Node) bool {
		if found != nil {
			return false
		}
		if cur.name == name {
			found = cur
			return false
		}
		return true
	})
	return found
}

// String returns the node name and type.
func (n *Node) String() string {
	if n.name == "" {
		return n.typ.String()
	}
	return n.name + "(" + n.typ.String() + ")"
}

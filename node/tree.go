package node

import (
	"slices"

	"github.com/hupe1980/stagekit/behavior"
	"github.com/hupe1980/stagekit/core"
)

var (
	// ErrIndexOutOfRange is returned for child indexes outside the children.
	ErrIndexOutOfRange = core.Errorf(core.ErrUsage, "child index out of range")

	// ErrCycle is returned when a node would become its own descendant.
	ErrCycle = core.Errorf(core.ErrUsage, "node cannot be added to its own subtree")
)

func (n *Node) checkAlive(op string) error {
	if n.destroyed {
		return behavior.Report(core.Errorf(core.ErrNodeDestroyed, "%s on %s", op, n))
	}
	return nil
}

func (n *Node) checkChild(child *Node) error {
	if child == nil {
		return nil
	}
	if err := child.checkAlive("add"); err != nil {
		return err
	}
	if child.Contains(n) {
		return behavior.Report(ErrCycle, "parent", n.String(), "child", child.String())
	}
	return nil
}

// AddChild appends children in order. A child that already has a parent is
// removed from it first.
func (n *Node) AddChild(children ...*Node) error {
	return n.insert(-1, children)
}

// AddChildAt inserts child at index, 0 <= index <= NumChildren.
func (n *Node) AddChildAt(child *Node, index int) error {
	if index < 0 || index > len(n.children) {
		return behavior.Report(ErrIndexOutOfRange, "node", n.String(), "index", index)
	}
	return n.insert(index, []*Node{child})
}

func (n *Node) insert(index int, children []*Node) error {
	if err := n.checkAlive("add"); err != nil {
		return err
	}
	for _, child := range children {
		if err := n.checkChild(child); err != nil {
			return err
		}
	}
	for _, child := range children {
		if child == nil {
			continue
		}
		if child.parent != nil {
			child.parent.detach(child)
		}
		child.parent = n
		if index < 0 || index > len(n.children) {
			n.children = append(n.children, child)
		} else {
			n.children = slices.Insert(n.children, index, child)
			index++
		}
		added(child, n)
	}
	return nil
}

// RemoveChild detaches children. Nodes that are not children are ignored.
func (n *Node) RemoveChild(children ...*Node) error {
	if err := n.checkAlive("remove"); err != nil {
		return err
	}
	for _, child := range children {
		n.detach(child)
	}
	return nil
}

// RemoveChildAt detaches and returns the child at index.
func (n *Node) RemoveChildAt(index int) (*Node, error) {
	if err := n.checkAlive("remove"); err != nil {
		return nil, err
	}
	child := n.ChildAt(index)
	if child == nil {
		return nil, behavior.Report(ErrIndexOutOfRange, "node", n.String(), "index", index)
	}
	n.detach(child)
	return child, nil
}

// RemoveChildren detaches the children in [begin, end) and returns them in
// order. An end of zero or less means NumChildren.
func (n *Node) RemoveChildren(begin, end int) ([]*Node, error) {
	if err := n.checkAlive("remove"); err != nil {
		return nil, err
	}
	if end <= 0 {
		end = len(n.children)
	}
	if len(n.children) == 0 && begin == 0 {
		return nil, nil
	}
	if begin < 0 || begin > end || end > len(n.children) {
		return nil, behavior.Report(ErrIndexOutOfRange, "node", n.String(), "begin", begin, "end", end)
	}
	removed := slices.Clone(n.children[begin:end])
	n.children = slices.Delete(n.children, begin, end)
	for _, child := range removed {
		child.parent = nil
		removedFrom(child, n)
	}
	return removed, nil
}

func (n *Node) detach(child *Node) bool {
	i := slices.Index(n.children, child)
	if child == nil || i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	removedFrom(child, n)
	return true
}

// DestroyOption configures Destroy.
type DestroyOption func(o *DestroyOptions)

// DestroyOptions holds the Destroy settings.
type DestroyOptions struct {
	Children bool
}

// WithChildren destroys descendants instead of detaching them.
func WithChildren() DestroyOption {
	return func(o *DestroyOptions) { o.Children = true }
}

// Destroy detaches n from its parent, detaches or destroys its children and
// destroys every behavior mounted on n. It is irreversible; destroying twice
// is a no-op.
func (n *Node) Destroy(optFns ...DestroyOption) {
	if n.destroyed {
		return
	}
	opts := DestroyOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if n.parent != nil {
		n.parent.detach(n)
	}
	if opts.Children {
		for _, child := range slices.Clone(n.children) {
			child.Destroy(optFns...)
		}
	} else {
		_, _ = n.RemoveChildren(0, len(n.children))
	}

	n.destroyed = true
	n.stage = weakNil
	n.scene = weakNil
	if err := n.DestroyAll(); err != nil {
		behavior.Logger().Error("Failed to destroy node behaviors", "node", n.String(), "error", err)
	}
}

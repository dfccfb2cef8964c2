package node

import (
	"weak"

	"github.com/hupe1980/stagekit/behavior"
)

var weakNil weak.Pointer[Node]

type cascadeLogger interface {
	LogCascade(event, node string, subtree int, live bool)
}

// added runs after n was linked under addTo. Lifecycles bubble from n up to
// the root first, then the subtree walk refreshes back-references and the
// enabled state. Handlers may move n while bubbling; the nested cascade then
// owns the refresh, and the live state is read from the tree as it stands.
func added(n, addTo *Node) {
	bubble(n, addTo, OnNodeAdded, OnChildNodeAdded, OnDescendantAdded)
	if n.parent != addTo {
		return
	}
	root := n.Root()
	live := root.typ == TypeStage
	count := refresh(n, live, root, innermostScene(addTo))
	logCascade("added", n, count, live)
}

// removedFrom runs after n was unlinked from its former parent from. Behaviors
// under n are disabled but stay mounted. A handler that re-inserted n has
// already refreshed it.
func removedFrom(n, from *Node) {
	bubble(n, from, OnNodeRemoved, OnChildNodeRemoved, OnDescendantRemoved)
	if n.parent != nil {
		return
	}
	count := refresh(n, false, nil, nil)
	logCascade("removed", n, count, false)
}

// bubble fires self on n, child on at and descendant on at and every
// ancestor of at.
func bubble(n, at *Node, self, child, descendant string) {
	_ = n.Trigger(self, n)
	for cur := at; cur != nil; cur = cur.parent {
		if cur == at {
			_ = cur.Trigger(child, at, n)
		}
		_ = cur.Trigger(descendant, n)
	}
}

type frame struct {
	node  *Node
	scene *Node
}

// refresh walks n's subtree, setting or clearing the stage reference and the
// enabled state, and recomputing the innermost scene of every node. scene is
// the innermost scene above n. It returns the number of nodes visited.
func refresh(n *Node, live bool, stage, scene *Node) int {
	stack := []frame{{node: n, scene: scene}}
	count := 0
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur := f.node
		count++

		if live {
			cur.stage = weak.Make(stage)
		} else {
			cur.stage = weakNil
		}
		cur.SetEnabled(live)
		cur.scene = weakOf(f.scene)

		below := f.scene
		if cur.typ == TypeScene {
			below = cur
		}
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: cur.children[i], scene: below})
		}
	}
	return count
}

func innermostScene(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.typ == TypeScene {
			return cur
		}
	}
	return nil
}

func weakOf(n *Node) weak.Pointer[Node] {
	if n == nil {
		return weakNil
	}
	return weak.Make(n)
}

func logCascade(event string, n *Node, subtree int, live bool) {
	l := behavior.Logger()
	if cl, ok := l.(cascadeLogger); ok {
		cl.LogCascade(event, n.String(), subtree, live)
		return
	}
	l.Debug("Membership cascade", "event", event, "node", n.String(), "subtree", subtree, "live", live)
}

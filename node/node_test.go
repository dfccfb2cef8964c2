package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stagekit/behavior"
	"github.com/hupe1980/stagekit/core"
	"github.com/hupe1980/stagekit/internal/testutil"
	"github.com/hupe1980/stagekit/logging"
)

// -------------------- Fixtures --------------------

type logRuntime struct {
	log *testutil.LogRecorder
}

func (r *logRuntime) Logger() logging.Logger             { return r.log }
func (r *logRuntime) AnnounceBehavior(behavior.Behavior) {}

func installRuntime(t *testing.T) *testutil.LogRecorder {
	t.Helper()
	rec := testutil.NewLogRecorder()
	behavior.SetRuntime(&logRuntime{log: rec})
	t.Cleanup(func() { behavior.SetRuntime(nil) })
	return rec
}

type tracker struct {
	behavior.Base
	label string
	log   *testutil.CallLog
	ext   behavior.Extension
	pings int
}

func track(host *Node, label string, log *testutil.CallLog) *tracker {
	tr := behavior.New(&tracker{label: label, log: log})
	host.Mount(tr)
	return tr
}

func (tr *tracker) ExtendModules() behavior.Extension { return tr.ext }
func (tr *tracker) Lifecycles() []string              { return []string{"OnPing"} }

func (tr *tracker) OnDestroy()                  { tr.log.Add("%s.destroy", tr.label) }
func (tr *tracker) OnPing()                     { tr.pings++ }
func (tr *tracker) OnNodeAdded(n *Node)         { tr.log.Add("%s.added(%s)", tr.label, n.Name()) }
func (tr *tracker) OnNodeRemoved(n *Node)       { tr.log.Add("%s.removed(%s)", tr.label, n.Name()) }
func (tr *tracker) OnDescendantAdded(n *Node)   { tr.log.Add("%s.descendantAdded(%s)", tr.label, n.Name()) }
func (tr *tracker) OnDescendantRemoved(n *Node) { tr.log.Add("%s.descendantRemoved(%s)", tr.label, n.Name()) }

func (tr *tracker) OnChildNodeAdded(parent, child *Node) {
	tr.log.Add("%s.childAdded(%s,%s)", tr.label, parent.Name(), child.Name())
}

func (tr *tracker) OnChildNodeRemoved(parent, child *Node) {
	tr.log.Add("%s.childRemoved(%s,%s)", tr.label, parent.Name(), child.Name())
}

func enabledOf(n *Node) bool {
	return n.Manager() != nil && n.Manager().Enabled()
}

// -------------------- Cascade Tests --------------------

func TestAddChild_LiveRootEnablesAllBehaviors(t *testing.T) {
	installRuntime(t)
	log := &testutil.CallLog{}
	stage := NewStage()
	n := New("N")
	x := behavior.New(&tracker{label: "X", log: log, ext: behavior.ExtendAll()})
	y := behavior.New(&tracker{label: "Y", log: log, ext: behavior.ExtendNone()})
	n.Mount(x)
	n.Mount(y)

	require.NoError(t, stage.AddChild(n))

	assert.True(t, x.Enabled())
	assert.True(t, y.Enabled())
	assert.Same(t, stage, n.Stage())
	require.NoError(t, n.Trigger("OnPing"))
	assert.Equal(t, 1, x.pings)
	assert.Equal(t, 1, y.pings)
}

func TestAddChild_DetachedContainerEnablesOnlyOnJoin(t *testing.T) {
	installRuntime(t)
	log := &testutil.CallLog{}
	stage := NewStage()
	c := New("C")
	n := New("N")
	tr := track(n, "N", log)

	require.NoError(t, c.AddChild(n))
	assert.False(t, enabledOf(n))
	assert.False(t, tr.Enabled())
	assert.Nil(t, n.Stage())
	assert.False(t, n.OnStage())

	require.NoError(t, stage.AddChild(c))
	assert.True(t, enabledOf(n))
	assert.True(t, tr.Enabled())
	assert.Same(t, stage, n.Stage())
	assert.Same(t, stage, c.Stage())
}

func TestRemoveChild_DisablesButKeepsBehaviors(t *testing.T) {
	installRuntime(t)
	log := &testutil.CallLog{}
	stage := NewStage()
	a, b := New("A"), New("B")
	require.NoError(t, stage.AddChild(a))
	require.NoError(t, a.AddChild(b))
	ta := track(a, "A", log)
	tb := track(b, "B", log)

	require.NoError(t, stage.RemoveChild(a))

	for _, n := range []*Node{a, b} {
		assert.False(t, enabledOf(n), n.Name())
		assert.Nil(t, n.Stage(), n.Name())
		assert.Equal(t, 1, n.Manager().Len(), n.Name())
	}
	assert.True(t, ta.IsActive())
	assert.True(t, tb.IsActive())
	assert.Zero(t, log.Count("A.destroy"))

	require.NoError(t, stage.AddChild(a))
	assert.True(t, enabledOf(a))
	assert.True(t, enabledOf(b))
	assert.Equal(t, []behavior.Behavior{tb}, b.Manager().Behaviors())
}

func TestAddChild_ReenablesSubtreeDisabledByEarlierRemoval(t *testing.T) {
	installRuntime(t)
	log := &testutil.CallLog{}
	stage := NewStage()
	root, mid, leaf := New("T"), New("M"), New("L")
	require.NoError(t, root.AddChild(mid))
	require.NoError(t, mid.AddChild(leaf))
	require.NoError(t, stage.AddChild(root))
	for _, n := range []*Node{root, mid, leaf} {
		track(n, n.Name(), log)
	}
	require.NoError(t, stage.RemoveChild(root))

	// Rebuild partly while detached.
	extra := New("X")
	track(extra, "X", log)
	require.NoError(t, mid.AddChild(extra))
	require.NoError(t, stage.AddChild(root))

	root.Walk(func(n *Node) bool {
		assert.True(t, enabledOf(n), n.Name())
		assert.Same(t, stage, n.Stage(), n.Name())
		return true
	})
}

// relocator moves its own node once from inside a membership handler.
type relocator struct {
	behavior.Base
	onAdded   func(n *Node)
	onRemoved func(n *Node)
}

func (r *relocator) OnNodeAdded(n *Node) {
	if fn := r.onAdded; fn != nil {
		r.onAdded = nil
		fn(n)
	}
}

func (r *relocator) OnNodeRemoved(n *Node) {
	if fn := r.onRemoved; fn != nil {
		r.onRemoved = nil
		fn(n)
	}
}

func TestAddChild_HandlerDetachesNode(t *testing.T) {
	installRuntime(t)
	stage := NewStage()
	n := New("N")
	r := behavior.New(&relocator{})
	r.onAdded = func(n *Node) { require.NoError(t, stage.RemoveChild(n)) }
	n.Mount(r)

	require.NoError(t, stage.AddChild(n))

	assert.Nil(t, n.Parent())
	assert.Zero(t, stage.NumChildren())
	assert.False(t, n.OnStage())
	assert.False(t, r.Enabled())
	assert.False(t, enabledOf(n))
}

func TestAddChild_HandlerMovesNodeOffStage(t *testing.T) {
	installRuntime(t)
	stage := NewStage()
	holder := New("holder")
	n := New("N")
	r := behavior.New(&relocator{})
	r.onAdded = func(n *Node) { require.NoError(t, holder.AddChild(n)) }
	n.Mount(r)

	require.NoError(t, stage.AddChild(n))

	assert.Same(t, holder, n.Parent())
	assert.False(t, n.OnStage())
	assert.False(t, r.Enabled())
}

func TestRemoveChild_HandlerReattachesNode(t *testing.T) {
	installRuntime(t)
	stage := NewStage()
	scene := NewScene("S")
	n := New("N")
	child := New("child")
	require.NoError(t, n.AddChild(child))
	require.NoError(t, stage.AddChild(scene))
	require.NoError(t, scene.AddChild(n))
	r := behavior.New(&relocator{})
	r.onRemoved = func(n *Node) { require.NoError(t, scene.AddChild(n)) }
	n.Mount(r)
	childLog := &testutil.CallLog{}
	track(child, "C", childLog)

	require.NoError(t, scene.RemoveChild(n))

	assert.Same(t, scene, n.Parent())
	assert.True(t, n.OnStage())
	assert.True(t, child.OnStage())
	assert.Same(t, scene, child.Scene())
	assert.True(t, r.Enabled())
	assert.True(t, enabledOf(child))
}

func TestBubbleOrder(t *testing.T) {
	installRuntime(t)
	log := &testutil.CallLog{}
	stage := NewStage()
	stage.SetName("stage")
	a, b, c := New("A"), New("B"), New("C")
	require.NoError(t, stage.AddChild(a))
	require.NoError(t, a.AddChild(b))
	track(stage, "stage", log)
	track(a, "A", log)
	track(b, "B", log)
	track(c, "C", log)

	require.NoError(t, b.AddChild(c))
	assert.Equal(t, []string{
		"C.added(C)",
		"B.childAdded(B,C)",
		"B.descendantAdded(C)",
		"A.descendantAdded(C)",
		"stage.descendantAdded(C)",
	}, log.Calls())

	log.Reset()
	require.NoError(t, b.RemoveChild(c))
	assert.Equal(t, []string{
		"C.removed(C)",
		"B.childRemoved(B,C)",
		"B.descendantRemoved(C)",
		"A.descendantRemoved(C)",
		"stage.descendantRemoved(C)",
	}, log.Calls())
}

func TestAddChild_ReparentFiresRemoval(t *testing.T) {
	installRuntime(t)
	log := &testutil.CallLog{}
	p1, p2, c := New("P1"), New("P2"), New("C")
	require.NoError(t, p1.AddChild(c))
	track(p1, "P1", log)
	track(p2, "P2", log)

	require.NoError(t, p2.AddChild(c))

	assert.Equal(t, 0, p1.NumChildren())
	assert.Same(t, p2, c.Parent())
	assert.Equal(t, []string{
		"P1.childRemoved(P1,C)",
		"P1.descendantRemoved(C)",
		"P2.childAdded(P2,C)",
		"P2.descendantAdded(C)",
	}, log.Calls())
}

func TestSceneReferences(t *testing.T) {
	installRuntime(t)
	stage := NewStage()
	outer := NewScene("outer")
	a := New("A")
	inner := NewScene("inner")
	b := New("B")
	require.NoError(t, inner.AddChild(b))
	require.NoError(t, a.AddChild(inner))
	require.NoError(t, outer.AddChild(a))
	require.NoError(t, stage.AddChild(outer))

	assert.Nil(t, outer.Scene())
	assert.Same(t, outer, a.Scene())
	assert.Same(t, outer, inner.Scene())
	assert.Same(t, inner, b.Scene())

	require.NoError(t, outer.RemoveChild(a))
	assert.Nil(t, a.Scene())
	assert.Nil(t, inner.Scene())
	assert.Same(t, inner, b.Scene())
}

// -------------------- Tree API Tests --------------------

func TestAddChildAt(t *testing.T) {
	installRuntime(t)
	p := New("P")
	a, b, c := New("a"), New("b"), New("c")
	require.NoError(t, p.AddChild(a, c))
	require.NoError(t, p.AddChildAt(b, 1))

	assert.Equal(t, []*Node{a, b, c}, p.Children())
	assert.Same(t, b, p.ChildAt(1))
	assert.Nil(t, p.ChildAt(3))

	err := p.AddChildAt(New("d"), 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.True(t, core.IsUsage(err))
}

func TestRemoveChildAt(t *testing.T) {
	installRuntime(t)
	p := New("P")
	a, b := New("a"), New("b")
	require.NoError(t, p.AddChild(a, b))

	got, err := p.RemoveChildAt(0)
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Nil(t, a.Parent())
	assert.Equal(t, []*Node{b}, p.Children())

	_, err = p.RemoveChildAt(4)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRemoveChildren(t *testing.T) {
	installRuntime(t)
	p := New("P")
	a, b, c, d := New("a"), New("b"), New("c"), New("d")
	require.NoError(t, p.AddChild(a, b, c, d))

	removed, err := p.RemoveChildren(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []*Node{b, c}, removed)
	assert.Equal(t, []*Node{a, d}, p.Children())

	_, err = p.RemoveChildren(1, 9)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	removed, err = p.RemoveChildren(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []*Node{a, d}, removed)

	removed, err = p.RemoveChildren(0, 0)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestRemoveChild_NotAChildIsNoop(t *testing.T) {
	rec := installRuntime(t)
	p := New("P")
	assert.NoError(t, p.RemoveChild(New("stranger"), nil))
	assert.Zero(t, rec.Count(logging.LogLevelWarn))
}

func TestAddChild_Cycle(t *testing.T) {
	installRuntime(t)
	a, b := New("a"), New("b")
	require.NoError(t, a.AddChild(b))

	assert.ErrorIs(t, b.AddChild(a), ErrCycle)
	assert.ErrorIs(t, a.AddChild(a), ErrCycle)
	assert.Same(t, a, b.Parent())
	assert.Nil(t, a.Parent())
}

func TestDestroy(t *testing.T) {
	rec := installRuntime(t)
	log := &testutil.CallLog{}
	stage := NewStage()
	n, child := New("N"), New("child")
	require.NoError(t, stage.AddChild(n))
	require.NoError(t, n.AddChild(child))
	tn := track(n, "N", log)
	tc := track(child, "child", log)

	n.Destroy()

	assert.True(t, n.Destroyed())
	assert.Equal(t, 0, stage.NumChildren())
	assert.Nil(t, child.Parent())
	assert.Equal(t, behavior.Destroyed, tn.State())
	assert.True(t, tc.IsActive())
	assert.False(t, tc.Enabled())
	assert.Equal(t, 1, log.Count("N.destroy"))
	assert.Nil(t, n.Manager())

	err := n.AddChild(New("late"))
	assert.ErrorIs(t, err, core.ErrNodeDestroyed)
	assert.ErrorIs(t, stage.AddChild(n), core.ErrNodeDestroyed)
	assert.Equal(t, 2, rec.Count(logging.LogLevelWarn))

	n.Destroy()
	assert.Equal(t, 1, log.Count("N.destroy"))
}

func TestDestroy_WithChildren(t *testing.T) {
	installRuntime(t)
	log := &testutil.CallLog{}
	n, child, grandchild := New("N"), New("child"), New("grandchild")
	require.NoError(t, n.AddChild(child))
	require.NoError(t, child.AddChild(grandchild))
	track(n, "N", log)
	track(grandchild, "grandchild", log)

	n.Destroy(WithChildren())

	assert.True(t, child.Destroyed())
	assert.True(t, grandchild.Destroyed())
	assert.Equal(t, 1, log.Count("N.destroy"))
	assert.Equal(t, 1, log.Count("grandchild.destroy"))
}

// -------------------- Accessor Tests --------------------

func TestWalkAndFindNode(t *testing.T) {
	root := New("root")
	a, b, c := New("a"), New("b"), New("c")
	require.NoError(t, root.AddChild(a, c))
	require.NoError(t, a.AddChild(b))

	var order []string
	root.Walk(func(n *Node) bool {
		order = append(order, n.Name())
		return true
	})
	assert.Equal(t, []string{"root", "a", "b", "c"}, order)

	order = nil
	root.Walk(func(n *Node) bool {
		order = append(order, n.Name())
		return n != a
	})
	assert.Equal(t, []string{"root", "a", "c"}, order)

	assert.Same(t, b, root.FindNode("b"))
	assert.Nil(t, root.FindNode("zzz"))
	assert.Same(t, root, b.Root())
	assert.True(t, root.Contains(b))
	assert.False(t, a.Contains(c))
}

func TestNodeLifecycles(t *testing.T) {
	installRuntime(t)
	scene := NewScene("level")
	container := New("box")

	assert.Contains(t, scene.Lifecycles(), OnSceneLoad)
	assert.Contains(t, scene.Lifecycles(), OnNodeAdded)
	assert.NotContains(t, container.Lifecycles(), OnSceneLoad)
	assert.Equal(t, "level(scene)", scene.String())
	assert.Equal(t, TypeStage, NewStage().Type())

	m := scene.EnsureManager()
	assert.True(t, m.Has(OnSceneBeforeOpen))
	assert.Equal(t, behavior.Primary, m.Kind())
}

func TestStageReferencesItself(t *testing.T) {
	stage := NewStage()
	assert.Same(t, stage, stage.Stage())
	assert.True(t, stage.IsStage())
	assert.NotEmpty(t, stage.ID())
}

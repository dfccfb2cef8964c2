package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stagekit/behavior"
	"github.com/hupe1980/stagekit/core"
	"github.com/hupe1980/stagekit/game"
	"github.com/hupe1980/stagekit/internal/testutil"
	"github.com/hupe1980/stagekit/module"
	"github.com/hupe1980/stagekit/node"
)

type level struct {
	behavior.Base
	log *testutil.CallLog
}

func (l *level) OnSceneLoad(args ...any) { l.log.Add("load%v", args) }
func (l *level) OnSceneBeforeOpen()      { l.log.Add("beforeOpen") }

type observer struct {
	behavior.Base
	log *testutil.CallLog
}

func (o *observer) ExtendModules() behavior.Extension { return behavior.ExtendOnly(Definition) }
func (o *observer) OnSceneOpen(scene *node.Node)      { o.log.Add("open(%s)", scene.Name()) }
func (o *observer) OnSceneClose(scene *node.Node)     { o.log.Add("close(%s)", scene.Name()) }

func levelFactory(name string, log *testutil.CallLog, built *int) Factory {
	return func() *node.Node {
		*built++
		scene := node.NewScene(name)
		scene.Mount(&level{log: log})
		return scene
	}
}

func startGame(t *testing.T, args ...any) (*game.Game, *Manager) {
	t.Helper()
	t.Cleanup(game.Reset)
	r := module.NewRegistry()
	require.NoError(t, r.Register(Definition, args...))
	g, err := game.New(func(o *game.Options) { o.Registry = r })
	require.NoError(t, err)
	m, ok := game.ModuleOf[*Manager](g)
	require.True(t, ok)
	return g, m
}

func newManager(t *testing.T, args ...any) *Manager {
	t.Helper()
	m, err := New(args...)
	require.NoError(t, err)
	return m.(*Manager)
}

// -------------------- Options Tests --------------------

func TestNew_Options(t *testing.T) {
	m := newManager(t)
	assert.Equal(t, DefaultOptions, m.Options())

	m = newManager(t, map[string]any{"cache": false, "max_cached": "3"})
	assert.Equal(t, Options{Cache: false, MaxCached: 3}, m.Options())

	m = newManager(t, Options{Cache: true, MaxCached: 2})
	assert.Equal(t, 2, m.Options().MaxCached)

	_, err := New(map[string]any{"unknown": 1})
	assert.Error(t, err)

	_, err = New(map[string]any{"max_cached": -1})
	assert.Error(t, err)

	_, err = New(42)
	assert.Error(t, err)
}

func TestNew_ConfigErrorAbortsGame(t *testing.T) {
	t.Cleanup(game.Reset)
	r := module.NewRegistry()
	require.NoError(t, r.Register(Definition, map[string]any{"max_cached": "many"}))

	_, err := game.New(func(o *game.Options) { o.Registry = r })

	assert.True(t, core.IsConfiguration(err))
}

// -------------------- Load Tests --------------------

func TestLoad_CachesByID(t *testing.T) {
	m := newManager(t)
	log := &testutil.CallLog{}
	built := 0
	f := levelFactory("menu", log, &built)

	first := m.Load(f, "menu", 1, "x")
	second := m.Load(f, "menu")

	assert.Same(t, first, second)
	assert.Equal(t, 1, built)
	assert.Equal(t, []string{"load[1 x]", "beforeOpen", "load[]", "beforeOpen"}, log.Calls())
	assert.Equal(t, []string{"menu"}, m.CachedIDs())

	third := m.Load(f, "")
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, built)
	assert.Len(t, m.CachedIDs(), 1)
}

func TestLoad_ReloadAfterClose(t *testing.T) {
	_, m := startGame(t)
	log := &testutil.CallLog{}
	built := 0
	f := levelFactory("menu", log, &built)

	menu := m.Load(f, "menu", 1)
	require.NoError(t, m.Open(menu))
	require.NoError(t, m.Open(node.NewScene("battle")))
	require.False(t, menu.OnStage())

	again := m.Load(f, "menu", 2)

	assert.Same(t, menu, again)
	assert.Equal(t, 1, built)
	assert.Equal(t, []string{"load[1]", "beforeOpen", "load[2]", "beforeOpen"}, log.Calls())
	assert.False(t, menu.Manager().Enabled(), "closed scenes stay dormant until opened")

	require.NoError(t, m.Open(again))
	assert.True(t, menu.Manager().Enabled())
}

func TestLoad_CacheDisabled(t *testing.T) {
	m := newManager(t, Options{Cache: false})
	built := 0
	f := levelFactory("menu", &testutil.CallLog{}, &built)

	m.Load(f, "menu")
	m.Load(f, "menu")

	assert.Equal(t, 2, built)
	assert.Empty(t, m.CachedIDs())
}

func TestLoad_Eviction(t *testing.T) {
	m := newManager(t, Options{Cache: true, MaxCached: 1})
	built := 0
	log := &testutil.CallLog{}

	a := m.Load(levelFactory("a", log, &built), "a")
	b := m.Load(levelFactory("b", log, &built), "b")

	assert.True(t, a.Destroyed())
	assert.False(t, b.Destroyed())
	assert.Equal(t, []string{"b"}, m.CachedIDs())
	_, ok := m.Cached("a")
	assert.False(t, ok)
}

func TestLoad_NilFactory(t *testing.T) {
	m := newManager(t)
	assert.Nil(t, m.Load(nil, "missing"))
	assert.Nil(t, m.Load(func() *node.Node { return nil }, "x"))
}

// -------------------- Open & Close Tests --------------------

func TestOpenAndClose(t *testing.T) {
	g, m := startGame(t)
	log := &testutil.CallLog{}
	behavior.New(&observer{log: log})
	built := 0

	menu := m.Load(levelFactory("menu", &testutil.CallLog{}, &built), "menu")
	require.NoError(t, m.Open(menu))
	assert.Same(t, menu, m.Current())
	assert.Same(t, g.Stage(), menu.Parent())
	assert.True(t, menu.OnStage())

	battle := m.Load(levelFactory("battle", &testutil.CallLog{}, &built), "")
	require.NoError(t, m.Open(battle))
	assert.Nil(t, menu.Parent())
	assert.False(t, menu.Destroyed(), "cached scenes survive closing")
	assert.Equal(t, []*node.Node{battle}, g.Stage().Children())

	m.Close()
	assert.True(t, battle.Destroyed())
	assert.Nil(t, m.Current())
	m.Close()

	assert.Equal(t, []string{"open(menu)", "close(menu)", "open(battle)", "close(battle)"}, log.Calls())
}

func TestOpen_SameSceneIsNoop(t *testing.T) {
	_, m := startGame(t)
	log := &testutil.CallLog{}
	behavior.New(&observer{log: log})
	scene := node.NewScene("s")

	require.NoError(t, m.Open(scene))
	require.NoError(t, m.Open(scene))

	assert.Equal(t, []string{"open(s)"}, log.Calls())
}

func TestOpen_Errors(t *testing.T) {
	m := newManager(t)
	m.stage = func() *node.Node { return nil }

	assert.ErrorIs(t, m.Open(node.NewScene("s")), ErrNoStage)
	assert.Error(t, m.Open(nil))
}

package stagekit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stagekit/behavior"
	"github.com/hupe1980/stagekit/game"
	"github.com/hupe1980/stagekit/module"
	"github.com/hupe1980/stagekit/node"
)

type counter struct {
	module.Base
	hits int
}

type hitter struct {
	behavior.Base
}

func (h *hitter) OnNodeAdded(n *node.Node) {
	if c, ok := ModuleOf[*counter](); ok {
		c.hits++
	}
}

func TestFacade(t *testing.T) {
	t.Cleanup(game.Reset)
	def := Define("Counter", module.Root, func(args ...any) (module.Module, error) {
		return &counter{}, nil
	})
	require.NoError(t, RegisterModule(def))

	g, err := New(func(o *Options) { o.Width = 320 })
	require.NoError(t, err)
	cur, ok := Current()
	require.True(t, ok)
	assert.Same(t, g, cur)
	assert.Equal(t, 320, g.Options().Width)

	n := node.New("n")
	h := Mount(n, &hitter{})
	assert.True(t, h.IsActive())
	require.NoError(t, g.Stage().AddChild(n))

	c, ok := ModuleOf[*counter]()
	require.True(t, ok)
	assert.Equal(t, 1, c.hits)
}

func TestModuleOf_NoRoot(t *testing.T) {
	game.Reset()
	_, ok := ModuleOf[*counter]()
	assert.False(t, ok)
}
